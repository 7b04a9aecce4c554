package mcode

import (
	"errors"
	"fmt"
)

// ErrInvalidOptions is the sentinel for rejected configuration.
var ErrInvalidOptions = errors.New("invalid options")

// OptionError reports which option field failed validation.
type OptionError struct {
	Field  string
	Detail string
}

// Error implements the error interface.
func (e *OptionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Detail)
}

// Unwrap ties every OptionError to ErrInvalidOptions for errors.Is checks.
func (e *OptionError) Unwrap() error {
	return ErrInvalidOptions
}

// IsInvalidOptions returns true if the error indicates rejected configuration.
func IsInvalidOptions(err error) bool {
	return errors.Is(err, ErrInvalidOptions)
}
