package ui

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/atotto/clipboard"
	"github.com/google/shlex"

	"github.com/bkwi/beacon/internal/appdirs"
	"github.com/bkwi/beacon/internal/config"
	"github.com/bkwi/beacon/internal/history"
	"github.com/bkwi/beacon/internal/provider"
)

// Executor turns a selected result's action into a side effect. The
// launcher exits right after, so everything spawned here is detached.
type Executor struct {
	registry *provider.Registry
	cfg      config.Config
}

func NewExecutor(registry *provider.Registry, cfg config.Config) *Executor {
	return &Executor{registry: registry, cfg: cfg}
}

func (e *Executor) Execute(result provider.Result) error {
	action := result.Action
	switch action.Kind {
	case provider.ActionNone:
		return nil

	case provider.ActionLaunch:
		argv, err := shlex.Split(action.Exec)
		if err != nil {
			return fmt.Errorf("could not parse launch command: %w", err)
		}
		if len(argv) == 0 {
			return fmt.Errorf("empty launch command")
		}
		if action.Terminal {
			argv = append([]string{"x-terminal-emulator", "-e"}, argv...)
		}
		return spawnDetached(argv)

	case provider.ActionRunScript:
		return spawnDetached([]string{action.Path})

	case provider.ActionFocusWindow:
		if os.Getenv("HYPRLAND_INSTANCE_SIGNATURE") != "" {
			return exec.Command("hyprctl", "dispatch", "focuswindow", "address:"+action.WindowID).Run()
		}
		return exec.Command("wmctrl", "-i", "-a", action.WindowID).Run()

	case provider.ActionKillProcess:
		process, err := os.FindProcess(action.PID)
		if err != nil {
			return fmt.Errorf("could not find process %d: %w", action.PID, err)
		}
		return process.Kill()

	case provider.ActionConnectNetwork:
		return exec.Command("nmcli", "device", "wifi", "connect", action.Device).Run()

	case provider.ActionConnectBluetooth:
		return exec.Command("bluetoothctl", "connect", action.Device).Run()

	case provider.ActionSetAudioSink:
		return exec.Command("pactl", "set-default-sink", action.Device).Run()

	case provider.ActionCopy:
		return e.copyText(action.Text)

	case provider.ActionOpenPath:
		if err := spawnDetached([]string{"xdg-open", action.Path}); err != nil {
			return err
		}
		// Best effort; a full recent list is not worth failing an open.
		_ = e.registry.Invoke(provider.ModeRecent, "touch", action.Path)
		return nil

	case provider.ActionOpenURL:
		return spawnDetached([]string{"xdg-open", action.URL})

	case provider.ActionSSHConnect:
		argv := []string{"x-terminal-emulator", "-e", "ssh"}
		if action.Port != 0 && action.Port != 22 {
			argv = append(argv, "-p", strconv.Itoa(action.Port))
		}
		argv = append(argv, action.Host)
		return spawnDetached(argv)

	case provider.ActionDockerToggle:
		verb := "start"
		if action.Running {
			verb = "stop"
		}
		return e.registry.Invoke(provider.ModeDocker, verb, action.ContainerID)

	case provider.ActionInvoke:
		return e.registry.Invoke(action.InvokeMode, action.InvokeID, action.InvokeArg)

	default:
		return fmt.Errorf("unknown action kind: %s", action.Kind)
	}
}

// copyText puts text on the clipboard and records it in the shared
// history so the copy shows up even when the daemon is not running.
func (e *Executor) copyText(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("could not copy to clipboard: %w", err)
	}
	path, err := appdirs.DataFilePath(history.FileName)
	if err != nil {
		return nil
	}
	store, err := history.Open(path, e.cfg.ClipboardHistorySize)
	if err != nil {
		return nil
	}
	_ = store.Append(text)
	return nil
}

// spawnDetached starts argv and lets go of it; the child outlives the
// launcher process.
func spawnDetached(argv []string) error {
	cmd := exec.Command(argv[0], argv[1:]...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("could not start %s: %w", argv[0], err)
	}
	return cmd.Process.Release()
}
