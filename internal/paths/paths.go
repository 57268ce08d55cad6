// Package paths resolves the per-user files vimbridge reads.
package paths

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	appDir     = "vimbridge"
	rcName     = "vimbridgerc"
	hookName   = "hook.sh"
	configName = "config.yaml"
)

// ConfigDir returns ~/.config/vimbridge, or "" if the home directory is
// unknown.
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appDir)
}

// RCPath returns the default startup script path.
func RCPath() string {
	return inConfigDir(rcName)
}

// HookPath returns the default notification hook path.
func HookPath() string {
	return inConfigDir(hookName)
}

// ConfigFile returns the default user config file path.
func ConfigFile() string {
	return inConfigDir(configName)
}

// LocalConfigFile is the per-project config file, relative to the working
// directory.
func LocalConfigFile() string {
	return filepath.Join("."+appDir, configName)
}

// Expand replaces a leading "~" with the home directory and cleans the
// result. Empty input stays empty.
//
//   - "~/x"  -> "$HOME/x"
//   - "~"    -> "$HOME"
//   - "a/../b" -> "b"
func Expand(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Clean(path)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return filepath.Clean(path)
}

func inConfigDir(name string) string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, name)
}
