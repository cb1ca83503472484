package appdirs

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestEnsureConfigDirUsesPrivatePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not portable on windows")
	}

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", "")

	dir, err := EnsureConfigDir()
	if err != nil {
		t.Fatalf("EnsureConfigDir failed: %v", err)
	}

	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("stat config dir failed: %v", err)
	}
	if perms := info.Mode().Perm(); perms&0o077 != 0 {
		t.Fatalf("expected private config dir permissions, got %o", perms)
	}
}

func TestEnsureScriptsDirNestsUnderConfigDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", "")

	dir, err := EnsureScriptsDir()
	if err != nil {
		t.Fatalf("EnsureScriptsDir failed: %v", err)
	}

	configDir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir failed: %v", err)
	}
	if dir != filepath.Join(configDir, "scripts") {
		t.Fatalf("expected scripts dir under config dir, got %s", dir)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("scripts dir was not created: %v", err)
	}
}

func TestDataFilePathRespectsXDGConfigHome(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	if runtime.GOOS != "linux" {
		t.Skip("XDG layout only applies on linux")
	}

	path, err := DataFilePath("clipboard_history.json")
	if err != nil {
		t.Fatalf("DataFilePath failed: %v", err)
	}
	want := filepath.Join(xdg, AppName, "clipboard_history.json")
	if path != want {
		t.Fatalf("expected %s, got %s", want, path)
	}
}

func TestConfigFilePathIsJSON(t *testing.T) {
	path, err := ConfigFilePath()
	if err != nil {
		t.Fatalf("ConfigFilePath failed: %v", err)
	}
	if !strings.HasSuffix(path, "config.json") {
		t.Fatalf("expected config.json path, got %s", path)
	}
}
