package config

import (
	"errors"

	"github.com/dshills/linestorm/internal/config/loader"
)

// Errors returned by configuration operations.
var (
	// ErrValidationFailed indicates a setting has a value out of range.
	ErrValidationFailed = errors.New("validation failed")

	// ErrTypeMismatch indicates a setting has a value of the wrong type.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrNoPath indicates watching a source that has no config file.
	ErrNoPath = errors.New("no config file path")

	// ErrUnsupportedFormat indicates a config file extension with no loader.
	ErrUnsupportedFormat = loader.ErrUnsupportedFormat
)

// ParseError represents an error while parsing a configuration file.
type ParseError = loader.ParseError
