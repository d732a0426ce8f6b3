package main

import "errors"

// Sentinel errors for command operations
var (
	ErrUnknownFormat = errors.New("unknown output format")
	ErrProblemsFound = errors.New("problems found in templates")
)
