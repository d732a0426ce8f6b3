package tmplexpr

import "errors"

// Common errors used throughout the tmplexpr package
var (
	// ErrConfigValidation is returned when configuration validation fails.
	ErrConfigValidation = errors.New("configuration validation failed")
	// ErrConfigFileNotFound indicates an explicitly requested configuration file does not exist.
	ErrConfigFileNotFound = errors.New("configuration file not found")
	// ErrInvalidClassName indicates a configured class or package is not a dotted identifier chain.
	ErrInvalidClassName = errors.New("invalid class name")
)
