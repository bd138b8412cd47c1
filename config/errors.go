// Copyright (c) 2026 The otpvault developers
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package config

import "errors"

var (
	// ErrEmptyDataDir indicates the data directory path is empty.
	ErrEmptyDataDir = errors.New("config: data directory must not be empty")

	// ErrInvalidBackend indicates the store backend is not recognized.
	ErrInvalidBackend = errors.New("config: invalid backend (must be \"file\" or \"bolt\")")

	// ErrInvalidPadLength indicates the default pad length is not positive.
	ErrInvalidPadLength = errors.New("config: default pad length must be positive")

	// ErrInvalidMessageLength indicates the assumed message length is not positive.
	ErrInvalidMessageLength = errors.New("config: assumed message length must be positive")

	// ErrInvalidLogLevel indicates the log level is not recognized.
	ErrInvalidLogLevel = errors.New("config: invalid log level (must be \"debug\", \"info\", \"warn\", or \"error\")")

	// ErrConfigNotFound indicates the configuration file does not exist.
	ErrConfigNotFound = errors.New("config: configuration file not found")

	// ErrInvalidConfigLine indicates a line in the config file is malformed.
	ErrInvalidConfigLine = errors.New("config: invalid configuration line")
)
