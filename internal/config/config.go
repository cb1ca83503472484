package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/bkwi/beacon/internal/appdirs"
	"github.com/bkwi/beacon/internal/store"
)

const (
	DefaultClipboardHistorySize = 50
	DefaultMaxRecentFiles       = 100
	DefaultMaxResults           = 50
	DefaultPollIntervalMS       = 500

	MinPollIntervalMS = 300
	MaxPollIntervalMS = 1000
)

type UIConfig struct {
	Backend string `json:"backend"`
}

type Config struct {
	Version              int      `json:"version"`
	GeminiAPIKey         string   `json:"gemini_api_key,omitempty"`
	BitwardenServer      string   `json:"bitwarden_server,omitempty"`
	BitwardenEmail       string   `json:"bitwarden_email,omitempty"`
	ClipboardHistorySize int      `json:"clipboard_history_size"`
	MaxRecentFiles       int      `json:"max_recent_files"`
	MaxResults           int      `json:"max_results"`
	PollIntervalMS       int      `json:"poll_interval_ms"`
	UI                   UIConfig `json:"ui"`
}

func Default() Config {
	return Config{
		Version:              1,
		ClipboardHistorySize: DefaultClipboardHistorySize,
		MaxRecentFiles:       DefaultMaxRecentFiles,
		MaxResults:           DefaultMaxResults,
		PollIntervalMS:       DefaultPollIntervalMS,
		UI:                   UIConfig{Backend: "auto"},
	}
}

// LoadOrCreate reads the config file, writing the defaults on first
// run. An unreadable or corrupt file falls back to defaults so a bad
// edit never blocks the launcher.
func LoadOrCreate() (Config, string, error) {
	path, err := appdirs.ConfigFilePath()
	if err != nil {
		return Config{}, "", err
	}

	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if _, err := appdirs.EnsureConfigDir(); err != nil {
			return Config{}, "", err
		}
		if err := Save(path, cfg); err != nil {
			return Config{}, "", err
		}
		return cfg, path, nil
	}
	if err != nil {
		return Config{}, "", fmt.Errorf("could not stat config path: %w", err)
	}

	bytes, err := os.ReadFile(path)
	if err != nil {
		return Config{}, "", fmt.Errorf("could not read config file: %w", err)
	}
	if err := json.Unmarshal(bytes, &cfg); err != nil {
		cfg = Default()
		return cfg, path, nil
	}
	cfg.normalize()
	return cfg, path, nil
}

func Save(path string, cfg Config) error {
	cfg.normalize()
	if _, err := appdirs.EnsureConfigDir(); err != nil {
		return err
	}
	return store.SaveJSON(path, cfg)
}

func (c *Config) normalize() {
	defaults := Default()
	if c.Version == 0 {
		c.Version = defaults.Version
	}
	if c.ClipboardHistorySize <= 0 {
		c.ClipboardHistorySize = defaults.ClipboardHistorySize
	}
	if c.MaxRecentFiles <= 0 {
		c.MaxRecentFiles = defaults.MaxRecentFiles
	}
	if c.MaxResults <= 0 {
		c.MaxResults = defaults.MaxResults
	}
	if c.PollIntervalMS <= 0 {
		c.PollIntervalMS = defaults.PollIntervalMS
	}
	if c.PollIntervalMS < MinPollIntervalMS {
		c.PollIntervalMS = MinPollIntervalMS
	}
	if c.PollIntervalMS > MaxPollIntervalMS {
		c.PollIntervalMS = MaxPollIntervalMS
	}
	c.UI.Backend = normalizeUIBackend(c.UI.Backend, defaults.UI.Backend)
}

func (c *Config) Set(key, value string) error {
	key = strings.TrimSpace(strings.ToLower(key))
	value = strings.TrimSpace(value)

	switch key {
	case "gemini_api_key":
		c.GeminiAPIKey = value
	case "bitwarden_server":
		c.BitwardenServer = value
	case "bitwarden_email":
		c.BitwardenEmail = value
	case "clipboard_history_size":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("clipboard_history_size must be a positive number")
		}
		c.ClipboardHistorySize = n
	case "max_recent_files":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("max_recent_files must be a positive number")
		}
		c.MaxRecentFiles = n
	case "max_results":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("max_results must be a positive number")
		}
		c.MaxResults = n
	case "poll_interval_ms":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("poll_interval_ms must be a positive number")
		}
		c.PollIntervalMS = n
	case "ui.backend":
		normalized := normalizeUIBackend(value, "")
		if normalized == "" {
			return fmt.Errorf("ui.backend must be one of auto|bubbletea|tview")
		}
		c.UI.Backend = normalized
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	c.normalize()
	return nil
}

func (c Config) Get(key string) (string, error) {
	key = strings.TrimSpace(strings.ToLower(key))

	switch key {
	case "gemini_api_key":
		return c.GeminiAPIKey, nil
	case "bitwarden_server":
		return c.BitwardenServer, nil
	case "bitwarden_email":
		return c.BitwardenEmail, nil
	case "clipboard_history_size":
		return strconv.Itoa(c.ClipboardHistorySize), nil
	case "max_recent_files":
		return strconv.Itoa(c.MaxRecentFiles), nil
	case "max_results":
		return strconv.Itoa(c.MaxResults), nil
	case "poll_interval_ms":
		return strconv.Itoa(c.PollIntervalMS), nil
	case "ui.backend":
		return c.UI.Backend, nil
	default:
		return "", fmt.Errorf("unknown config key: %s", key)
	}
}

func normalizeUIBackend(value string, fallback string) string {
	normalized := strings.ToLower(strings.TrimSpace(value))
	switch normalized {
	case "auto", "bubbletea", "tview":
		return normalized
	case "":
		return strings.ToLower(strings.TrimSpace(fallback))
	default:
		return strings.ToLower(strings.TrimSpace(fallback))
	}
}
