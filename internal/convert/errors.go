package convert

import (
	"errors"
	"fmt"
)

// Common registration error types
var (
	// ErrAmbiguousConverter is returned when a converter's source and target
	// types are both native, or both non-native, and no direction hint
	// disambiguates it.
	ErrAmbiguousConverter = errors.New("converter direction is ambiguous")

	// ErrDuplicateConverter is returned when a converter for the same type
	// pair and direction is already registered.
	ErrDuplicateConverter = errors.New("converter is already registered")

	// ErrNilApply is returned when a rule is registered without a
	// conversion function.
	ErrNilApply = errors.New("conversion function is nil")
)

// ConfigError reports an invalid converter registration. It names the
// offending source and target types so startup failures are actionable.
type ConfigError struct {
	Source TypeDescriptor
	Target TypeDescriptor
	Err    error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("converter %s -> %s: %v", e.Source, e.Target, e.Err)
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ConversionError reports a failed conversion of a single value. It aborts
// only the read or write in progress; callers do not retry it.
type ConversionError struct {
	Source TypeDescriptor
	Target TypeDescriptor
	Err    error
}

// Error implements the error interface.
func (e *ConversionError) Error() string {
	return fmt.Sprintf("convert %s -> %s: %v", e.Source, e.Target, e.Err)
}

// Unwrap returns the underlying error.
func (e *ConversionError) Unwrap() error {
	return e.Err
}

// IsAmbiguous returns true if the error is ErrAmbiguousConverter.
func IsAmbiguous(err error) bool {
	return errors.Is(err, ErrAmbiguousConverter)
}
