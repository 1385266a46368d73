package errors

import (
	"errors"
	"fmt"
)

// Common error types for the VK API client
var (
	// Authorization errors
	ErrAuthRequired      = errors.New("no access_token found, use AuthURI then Authorize")
	ErrEmptyAccessToken  = errors.New("token response has no access_token")
	ErrInvalidClientID   = errors.New("client id is required")
	ErrInvalidMethodName = errors.New("invalid method name")

	// Session errors
	ErrEmptySessionKey = errors.New("session key cannot be empty")
	ErrNilSession      = errors.New("session cannot be nil")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
