// Package config loads optional ambient settings — log level and whether
// the REPL's debug meta-commands are enabled — from a YAML sidecar file.
// It never configures a data-model constant: PAGE_SIZE, MAX_PAGES, and the
// row field widths stay fixed at compile time in internal/layout.
package config

import (
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config is the ambient, optional runtime configuration for a minidb
// process.
type Config struct {
	// LogLevel is one of "debug", "info", "warn", "error". Default "warn".
	LogLevel string `yaml:"log_level"`
	// DebugCommandsEnabled gates the REPL's .btree/.constants meta-commands.
	// Default true.
	DebugCommandsEnabled *bool `yaml:"debug_commands_enabled"`
}

// Default returns the configuration used when no sidecar file is present.
func Default() Config {
	enabled := true
	return Config{LogLevel: "warn", DebugCommandsEnabled: &enabled}
}

// Load reads path if it exists and overlays it onto Default(). A missing
// file is not an error — it is the common case, since this config is
// entirely optional.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}
	if cfg.DebugCommandsEnabled == nil {
		enabled := true
		cfg.DebugCommandsEnabled = &enabled
	}
	return cfg, nil
}

// DebugEnabled reports whether the REPL's debug meta-commands should run.
func (c Config) DebugEnabled() bool {
	return c.DebugCommandsEnabled == nil || *c.DebugCommandsEnabled
}

// Logger builds a *logrus.Logger at the configured level, writing to
// stderr so it never perturbs the REPL's literal stdout transcript.
func (c Config) Logger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		level = logrus.WarnLevel
	}
	logger.SetLevel(level)

	return logger
}

// SidecarPath returns the config file path to load: MINIDB_CONFIG if set,
// otherwise defaultPath. Resolving defaultPath ("minidb.yaml" next to the
// database file) is the caller's responsibility; this just reads the
// environment override.
func SidecarPath(defaultPath string) string {
	if p := os.Getenv("MINIDB_CONFIG"); p != "" {
		return p
	}
	return defaultPath
}
