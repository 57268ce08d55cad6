// Package config provides configuration types, defaults and loading for
// vimbridge.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/zjrosen/vimbridge/internal/log"
	"github.com/zjrosen/vimbridge/internal/paths"
)

// Config holds all configuration options for vimbridge.
type Config struct {
	RCPath   string     `mapstructure:"rc_path"`  // Startup script; empty uses ~/.config/vimbridge/vimbridgerc
	Hook     HookConfig `mapstructure:"hook"`     // Notification hook
	Host     HostConfig `mapstructure:"host"`     // Interactive text field
	WatchRC  bool       `mapstructure:"watch_rc"` // Re-source the rc script when it changes
	Debug    bool       `mapstructure:"debug"`
	LogPath  string     `mapstructure:"log_path"`
	LogLevel string     `mapstructure:"log_level"` // debug, info, warn or error
}

// HookConfig configures the executable launched on mode and command-line
// changes.
type HookConfig struct {
	Path    string `mapstructure:"path"` // Empty uses ~/.config/vimbridge/hook.sh
	Enabled bool   `mapstructure:"enabled"`
	Cmdline bool   `mapstructure:"cmdline"` // Export CMDLINE to the hook
}

// HostConfig configures the interactive host.
type HostConfig struct {
	StatusLine  bool   `mapstructure:"status_line"` // Show mode, offsets and command line under the field
	Placeholder string `mapstructure:"placeholder"` // Shown while the field is empty
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		Hook: HookConfig{
			Enabled: true,
			Cmdline: true,
		},
		Host: HostConfig{
			StatusLine:  true,
			Placeholder: "Type to edit. Ctrl+[ for normal mode.",
		},
		LogPath:  "debug.log",
		LogLevel: "debug",
	}
}

// SetDefaults registers Defaults() with v so that keys missing from the
// config file fall back to them.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("rc_path", d.RCPath)
	v.SetDefault("hook.path", d.Hook.Path)
	v.SetDefault("hook.enabled", d.Hook.Enabled)
	v.SetDefault("hook.cmdline", d.Hook.Cmdline)
	v.SetDefault("host.status_line", d.Host.StatusLine)
	v.SetDefault("host.placeholder", d.Host.Placeholder)
	v.SetDefault("watch_rc", d.WatchRC)
	v.SetDefault("debug", d.Debug)
	v.SetDefault("log_path", d.LogPath)
	v.SetDefault("log_level", d.LogLevel)
}

// Load reads the config into a Config. When file is empty the lookup order
// is .vimbridge/config.yaml, then ~/.config/vimbridge/config.yaml. A missing
// config file is not an error; defaults apply.
func Load(v *viper.Viper, file string) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix("VIMBRIDGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	switch {
	case file != "":
		v.SetConfigFile(file)
	case fileExists(paths.LocalConfigFile()):
		v.SetConfigFile(paths.LocalConfigFile())
	default:
		if dir := paths.ConfigDir(); dir != "" {
			v.AddConfigPath(dir)
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
		log.Debug(log.CatConfig, "no config file, using defaults")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	log.Debug(log.CatConfig, "config loaded", "file", v.ConfigFileUsed())
	return cfg, nil
}

// Validate checks for settings that cannot work.
func Validate(cfg Config) error {
	if rc := cfg.ResolvedRCPath(); rc != "" && isDir(rc) {
		return fmt.Errorf("rc_path %s: %w", rc, ErrIsDirectory)
	}
	if hook := cfg.ResolvedHookPath(); hook != "" && isDir(hook) {
		return fmt.Errorf("hook.path %s: %w", hook, ErrIsDirectory)
	}
	if cfg.Debug && cfg.LogPath == "" {
		return errors.New("log_path is required when debug is enabled")
	}
	if _, err := log.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}

// ErrIsDirectory is returned for file settings that name a directory.
var ErrIsDirectory = errors.New("is a directory")

// ResolvedRCPath returns the rc script path with "~" expanded, falling back
// to the default location.
func (c Config) ResolvedRCPath() string {
	if c.RCPath == "" {
		return paths.RCPath()
	}
	return paths.Expand(c.RCPath)
}

// ResolvedHookPath returns the hook path to launch, or "" when the hook is
// disabled.
func (c Config) ResolvedHookPath() string {
	if !c.Hook.Enabled {
		return ""
	}
	if c.Hook.Path == "" {
		return paths.HookPath()
	}
	return paths.Expand(c.Hook.Path)
}

// DefaultConfigTemplate returns the default config as commented YAML.
func DefaultConfigTemplate() string {
	return `# vimbridge configuration

# Startup script sourced into every new buffer (ex commands, one per line).
# Default: ~/.config/vimbridge/vimbridgerc
# rc_path: ~/.config/vimbridge/vimbridgerc

# Re-source the startup script whenever it changes on disk
watch_rc: false

# Notification hook, launched on every mode or command-line change with
# MODE (I, N, V, C or _) and, if cmdline is true, CMDLINE in its environment.
hook:
  # path: ~/.config/vimbridge/hook.sh
  enabled: true
  cmdline: true

# Interactive text field
host:
  status_line: true
  placeholder: "Type to edit. Ctrl+[ for normal mode."

# Debug logging (also enabled by --debug or VIMBRIDGE_DEBUG=1)
debug: false
log_path: debug.log
log_level: debug
`
}

// WriteDefaultConfig writes DefaultConfigTemplate to configPath, creating
// the parent directory. An existing file is left alone unless force is set.
func WriteDefaultConfig(configPath string, force bool) error {
	log.Debug(log.CatConfig, "writing default config", "path", configPath)

	if !force && fileExists(configPath) {
		return fmt.Errorf("config file %s: %w", configPath, os.ErrExist)
	}

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "created default config", "path", configPath)
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
