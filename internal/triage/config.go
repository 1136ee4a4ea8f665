package triage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds the optional user configuration.
type Config struct {
	// Output is the changelog path written on save-and-quit.
	Output string `toml:"output"`

	// LogFile and LogLevel control the debug log. The interactive screen
	// owns the terminal, so logs only ever go to a file.
	LogFile  string `toml:"log_file"`
	LogLevel string `toml:"log_level"`
}

// LoadConfig loads configuration from the given path. A missing file yields
// the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Output:   "proposed_changelog.md",
		LogLevel: "info",
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Output == "" {
		cfg.Output = "proposed_changelog.md"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	return cfg, nil
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, _ := os.UserHomeDir()
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "commits-of-interest", "config.toml")
}
