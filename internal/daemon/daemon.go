// Package daemon polls the system clipboard and appends new content to
// the shared history file. The launcher process never talks to the
// daemon directly; the atomically replaced history file is the only
// shared state.
package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/atotto/clipboard"

	"github.com/bkwi/beacon/internal/appdirs"
	"github.com/bkwi/beacon/internal/config"
	"github.com/bkwi/beacon/internal/history"
	"github.com/bkwi/beacon/internal/safety"
)

// Clipboard reads the current system selection.
type Clipboard interface {
	Read() (string, error)
}

type systemClipboard struct{}

func (systemClipboard) Read() (string, error) {
	return clipboard.ReadAll()
}

type Daemon struct {
	store    *history.Store
	clip     Clipboard
	interval time.Duration
	logger   *slog.Logger

	lastHash string
}

func New(store *history.Store, clip Clipboard, interval time.Duration, logger *slog.Logger) *Daemon {
	if clip == nil {
		clip = systemClipboard{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Daemon{store: store, clip: clip, interval: interval, logger: logger}
}

// Run starts the daemon end to end: single-instance lock, history
// store, poll loop, signal-driven shutdown.
func Run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	lockPath, err := appdirs.LockFilePath()
	if err != nil {
		return err
	}
	lock, err := acquireLock(lockPath)
	if err != nil {
		return err
	}
	defer lock.Release()

	dataPath, err := appdirs.DataFilePath(history.FileName)
	if err != nil {
		return err
	}
	store, err := history.Open(dataPath, cfg.ClipboardHistorySize)
	if err != nil {
		return fmt.Errorf("could not open clipboard history: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	interval := time.Duration(cfg.PollIntervalMS) * time.Millisecond
	d := New(store, nil, interval, logger)
	if err := d.CheckClipboard(); err != nil {
		return err
	}
	logger.Info("clipboard daemon started", "interval", interval, "history", dataPath)
	d.Loop(ctx)
	logger.Info("clipboard daemon stopped")
	return nil
}

// CheckClipboard reads the clipboard once before the loop starts. A
// session with no clipboard at all (headless, no display) is a fatal
// startup condition; transient read errors during polling are
// tolerated.
func (d *Daemon) CheckClipboard() error {
	if _, err := d.clip.Read(); err != nil {
		return fmt.Errorf("could not access clipboard: %w", err)
	}
	return nil
}

// Loop polls until ctx is cancelled. Every mutation is persisted by
// the store, so shutdown needs no final flush.
func (d *Daemon) Loop(ctx context.Context) {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.poll()
		}
	}
}

func (d *Daemon) poll() {
	content, err := d.clip.Read()
	if err != nil {
		d.logger.Debug("could not read clipboard", "error", err)
		return
	}
	if strings.TrimSpace(content) == "" {
		return
	}

	hash := history.Hash(content)
	if hash == d.lastHash {
		return
	}
	// Remember secret-looking content by hash so it is skipped once,
	// not re-inspected every tick.
	d.lastHash = hash
	if safety.ContainsSecret(content) {
		d.logger.Debug("skipping clipboard content that looks like a secret")
		return
	}

	if err := d.store.Append(content); err != nil {
		d.logger.Warn("could not persist clipboard entry, retrying", "error", err)
		if err := d.store.Append(content); err != nil {
			d.logger.Error("dropping clipboard entry", "error", err)
		}
	}
}
