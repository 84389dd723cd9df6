package model

import (
	"errors"
	"fmt"
)

var (
	ErrFileNotFound     = errors.New("file not found")
	ErrMissingParameter = errors.New("missing parameter")
	ErrInvalidParameter = errors.New("invalid parameter")
)

// FileNotFoundError is returned when the file to import does not exist or cannot be read.
type FileNotFoundError struct {
	Path string
	Err  error
}

func (e *FileNotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("file %q not found: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("file %q not found", e.Path)
}

func (e *FileNotFoundError) Unwrap() error { return e.Err }

func (e *FileNotFoundError) Is(target error) bool { return target == ErrFileNotFound }

// MissingParameterError is returned when a conditionally required option was omitted.
type MissingParameterError struct {
	Parameter string
	Reason    string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("missing parameter %q: %s", e.Parameter, e.Reason)
}

func (e *MissingParameterError) Is(target error) bool { return target == ErrMissingParameter }

// InvalidParameterError is returned when an option carries a value that cannot be used.
type InvalidParameterError struct {
	Parameter string
	Value     any
	Err       error
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid value %v for parameter %q: %v", e.Value, e.Parameter, e.Err)
}

func (e *InvalidParameterError) Unwrap() error { return e.Err }

func (e *InvalidParameterError) Is(target error) bool { return target == ErrInvalidParameter }

// StatusError is returned when the service answers with a non-2xx status code.
type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d, body: %s", e.StatusCode, string(e.Body))
}
