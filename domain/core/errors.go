package core

import (
	"errors"
)

// Domain errors - centralized error definitions
var (
	// Input errors
	ErrEmptyInput         = errors.New("sample is empty")
	ErrInsufficientSample = errors.New("sample too small for statistic")

	// Distribution errors
	ErrInvalidParameter = errors.New("distribution parameter out of domain")

	// Lookup errors
	ErrUnknownTest = errors.New("unknown uniformity test")

	// Execution errors
	ErrTestAborted = errors.New("uniformity test aborted")
)
