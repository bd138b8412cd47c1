// Copyright (c) 2026 The otpvault developers
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package config handles the otpvault configuration file: a flat
// key=value format with '#' comments.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// DefaultPadLength is the pad size in bytes created when the caller
// does not request one explicitly.
const DefaultPadLength = 1000000

// Config holds all otpvault settings.
type Config struct {
	// DataDir is the directory holding pad state and lock files.
	DataDir string

	// Backend selects the pad store implementation: "file" or "bolt".
	Backend string

	// PadLength is the default length for newly created pads.
	PadLength int

	// AssumedMessageLength is the average message size used by
	// capacity reporting.
	AssumedMessageLength int

	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string
}

// Default returns the configuration defaults for a data directory.
func Default(dataDir string) Config {
	return Config{
		DataDir:              dataDir,
		Backend:              "file",
		PadLength:            DefaultPadLength,
		AssumedMessageLength: 256,
		LogLevel:             "info",
	}
}

// ConfigPath returns the config file path inside a data directory.
func ConfigPath(dataDir string) string {
	return filepath.Join(dataDir, "otpvault.conf")
}

// Load reads a config file, applying defaults for keys not present.
func Load(path string) (Config, error) {
	cfg := Default(filepath.Dir(path))

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, ErrConfigNotFound
		}
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	for i, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return cfg, fmt.Errorf("%w: line %d: %q", ErrInvalidConfigLine, i+1, line)
		}
		if err := cfg.set(strings.TrimSpace(key), strings.TrimSpace(value)); err != nil {
			return cfg, fmt.Errorf("%w: line %d: %v", ErrInvalidConfigLine, i+1, err)
		}
	}

	return cfg, nil
}

// set applies one key=value pair.
func (c *Config) set(key, value string) error {
	switch key {
	case "data_dir":
		c.DataDir = value
	case "backend":
		c.Backend = value
	case "pad_length":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("pad_length: %v", err)
		}
		c.PadLength = n
	case "assumed_message_length":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("assumed_message_length: %v", err)
		}
		c.AssumedMessageLength = n
	case "log_level":
		c.LogLevel = value
	default:
		return fmt.Errorf("unknown key %q", key)
	}
	return nil
}

// Save writes the config file to path.
func (c Config) Save(path string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "data_dir = %s\n", c.DataDir)
	fmt.Fprintf(&b, "backend = %s\n", c.Backend)
	fmt.Fprintf(&b, "pad_length = %d\n", c.PadLength)
	fmt.Fprintf(&b, "assumed_message_length = %d\n", c.AssumedMessageLength)
	fmt.Fprintf(&b, "log_level = %s\n", c.LogLevel)

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}
	return os.WriteFile(path, []byte(b.String()), 0600)
}
