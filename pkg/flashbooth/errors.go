package flashbooth

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	caption, err := enhancer.GenerateCaption(ctx, 5)
//	if errors.Is(err, flashbooth.ErrInvalidInput) {
//	    // Ask the user to fix the input, retrying won't help
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrMissingAPIKey indicates no API key was configured for the remote service.
	ErrMissingAPIKey = errors.New("API key not configured")

	// ErrInvalidInput is the parent of all caller input errors. Input errors are
	// rejected before any remote attempt is made.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMalformedImage indicates an image payload without a data delimiter or
	// with an undecodable body.
	ErrMalformedImage = fmt.Errorf("%w: malformed image payload", ErrInvalidInput)

	// ErrInvalidAspectRatio indicates an aspect ratio outside the supported set.
	ErrInvalidAspectRatio = fmt.Errorf("%w: unsupported aspect ratio", ErrInvalidInput)

	// ErrInvalidPhotoCount indicates a non-positive photo count.
	ErrInvalidPhotoCount = fmt.Errorf("%w: photo count must be positive", ErrInvalidInput)

	// ErrInvalidPrompt indicates an empty image generation prompt.
	ErrInvalidPrompt = fmt.Errorf("%w: prompt is required", ErrInvalidInput)

	// ErrEnhancementFailed is matched by every OperationError.
	ErrEnhancementFailed = errors.New("enhancement failed")

	// ErrServiceUnavailable indicates the remote service could not be reached.
	ErrServiceUnavailable = errors.New("service unavailable")

	// ErrSessionNotFound indicates a session that was never saved or has expired.
	ErrSessionNotFound = errors.New("session not found")
)

// OperationError wraps the final error of an enhancement operation with the
// name of the operation that failed. The wrapped error is the error of the last
// attempt, unmodified.
type OperationError struct {
	Op  string
	Err error
}

func (e *OperationError) Error() string {
	return e.Op + " failed: " + e.Err.Error()
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// Is makes every OperationError match ErrEnhancementFailed.
func (e *OperationError) Is(target error) bool {
	return target == ErrEnhancementFailed
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Input errors are checked before ErrEnhancementFailed: an OperationError
	// may wrap one.
	switch {
	case errors.Is(err, ErrInvalidConfig), errors.Is(err, ErrMissingAPIKey):
		return ExitConfigError
	case errors.Is(err, ErrInvalidInput):
		return ExitInvalidInput
	case errors.Is(err, ErrSessionNotFound):
		return ExitSessionNotFound
	case errors.Is(err, ErrServiceUnavailable):
		return ExitServiceError
	case errors.Is(err, ErrEnhancementFailed):
		return ExitEnhancementFailed
	}

	errStr := err.Error()
	for _, pattern := range []string{
		"unknown flag",
		"unknown shorthand flag",
		"unknown command",
		"accepts ",
		"requires at least",
		"required flag",
		"invalid argument",
		"missing required argument",
	} {
		if strings.Contains(errStr, pattern) {
			return ExitUsageError
		}
	}

	return ExitGeneralError
}
