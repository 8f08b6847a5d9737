package dictionary

import (
	"errors"
	"fmt"
)

var (
	ErrMissingResource = errors.New("dictionary resource missing")
	ErrResourceRead    = errors.New("dictionary resource unreadable")
)

// MissingResourceError is returned when the word list file does not exist.
type MissingResourceError struct {
	Path string
	Err  error
}

func (e *MissingResourceError) Error() string {
	return fmt.Sprintf("word list %s does not exist", e.Path)
}

func (e *MissingResourceError) Unwrap() []error { return []error{ErrMissingResource, e.Err} }

// ResourceReadError is returned when the word list exists but cannot be read or decoded.
type ResourceReadError struct {
	Path string
	Err  error
}

func (e *ResourceReadError) Error() string {
	return fmt.Sprintf("failed to read word list %s: %v", e.Path, e.Err)
}

func (e *ResourceReadError) Unwrap() []error { return []error{ErrResourceRead, e.Err} }
