// Copyright (c) 2026 The otpvault developers
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package config

import "strings"

// validLogLevels lists the accepted log level strings.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// ValidateConfig checks that all configuration values are within
// acceptable ranges and returns the first error encountered, or nil if
// valid.
func ValidateConfig(cfg Config) error {
	if cfg.DataDir == "" {
		return ErrEmptyDataDir
	}

	if cfg.Backend != "file" && cfg.Backend != "bolt" {
		return ErrInvalidBackend
	}

	if cfg.PadLength <= 0 {
		return ErrInvalidPadLength
	}

	if cfg.AssumedMessageLength <= 0 {
		return ErrInvalidMessageLength
	}

	if !validLogLevels[strings.ToLower(cfg.LogLevel)] {
		return ErrInvalidLogLevel
	}

	return nil
}
