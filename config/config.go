// Package config handles runtime configuration for embedders of the
// red-packet module: where the packet database lives and which store
// backend to use.
//
// The configuration file is a simple "key = value" format with '#' comments.
// Unknown keys are ignored so older binaries can read newer files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config holds all runtime configuration values.
type Config struct {
	// DataDir is the directory holding the packet database.
	DataDir string

	// Backend selects the packet store implementation: "bolt" or "mem".
	Backend string

	// LogLevel controls the verbosity of the embedding application.
	LogLevel string
}

// DefaultDataDir returns the default data directory, ~/.redpacket.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".redpacket"
	}
	return filepath.Join(home, ".redpacket")
}

// DefaultConfig returns a Config populated with default values.
func DefaultConfig() Config {
	return Config{
		DataDir:  DefaultDataDir(),
		Backend:  "bolt",
		LogLevel: "info",
	}
}

// ConfigPath returns the path of the configuration file inside dataDir.
func ConfigPath(dataDir string) string {
	return filepath.Join(dataDir, "config")
}

// LoadConfig reads the configuration file at path. Missing keys retain
// their default values. Returns ErrConfigNotFound if the file does not
// exist and ErrInvalidConfigLine for lines that are not key = value.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, err := parseKeyValue(line)
		if err != nil {
			return cfg, fmt.Errorf("%w: line %d: %q", ErrInvalidConfigLine, i+1, line)
		}
		switch key {
		case "datadir":
			cfg.DataDir = value
		case "backend":
			cfg.Backend = value
		case "loglevel":
			cfg.LogLevel = value
		default:
			// Unknown keys are ignored for forward compatibility.
		}
	}

	return cfg, nil
}

// SaveConfig writes cfg to path, creating parent directories as needed.
func SaveConfig(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}

	var b strings.Builder
	b.WriteString("# RedPacket Configuration\n")
	fmt.Fprintf(&b, "datadir = %s\n", cfg.DataDir)
	fmt.Fprintf(&b, "backend = %s\n", cfg.Backend)
	fmt.Fprintf(&b, "loglevel = %s\n", cfg.LogLevel)

	if err := os.WriteFile(path, []byte(b.String()), 0600); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// parseKeyValue splits a config line on its first '=' and trims whitespace.
func parseKeyValue(line string) (key, value string, err error) {
	idx := strings.Index(line, "=")
	if idx < 0 {
		return "", "", ErrInvalidConfigLine
	}
	key = strings.ToLower(strings.TrimSpace(line[:idx]))
	value = strings.TrimSpace(line[idx+1:])
	if key == "" {
		return "", "", ErrInvalidConfigLine
	}
	return key, value, nil
}
