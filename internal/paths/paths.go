package paths

import (
	"os"
	"path/filepath"
)

func home() string {
	h, _ := os.UserHomeDir()
	return h
}

// ConfigDir returns $XDG_CONFIG_HOME/popcal, falling back to ~/.config/popcal.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "popcal")
	}
	return filepath.Join(home(), ".config", "popcal")
}

// ConfigFile returns the YAML config path.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// TOMLConfigFile returns the TOML config path, consulted when the YAML
// file does not exist.
func TOMLConfigFile() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// StateDir returns ~/.local/state/popcal, where logs go by default.
func StateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "popcal")
	}
	return filepath.Join(home(), ".local", "state", "popcal")
}

// LogFile returns the default debug log path.
func LogFile() string {
	return filepath.Join(StateDir(), "popcal.log")
}
