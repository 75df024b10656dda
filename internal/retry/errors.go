package retry

import (
	"context"
	"fmt"
	"time"

	"github.com/RogelioAlcantarRangel/Cabina-de-Fotograf-a/pkg/flashbooth"
)

// ErrorKind aliases flashbooth.ErrorKind for callers that only import retry.
type ErrorKind = flashbooth.ErrorKind

const (
	KindFatal     = flashbooth.KindFatal
	KindTransient = flashbooth.KindTransient
	KindTimeout   = flashbooth.KindTimeout
)

// ErrInvalidPolicy is returned for policies that cannot drive an attempt loop.
var ErrInvalidPolicy = fmt.Errorf("%w: retry policy", flashbooth.ErrInvalidConfig)

// TimeoutError reports an attempt that did not settle before its deadline.
type TimeoutError struct {
	Duration time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("operation timed out after %s", e.Duration)
}

// Is lets errors.Is(err, context.DeadlineExceeded) match attempt timeouts.
func (e *TimeoutError) Is(target error) bool {
	return target == context.DeadlineExceeded
}

// ClassifiedError is a failed attempt's error tagged with its retry
// classification. Error returns the underlying message unchanged.
type ClassifiedError struct {
	Kind ErrorKind
	Err  error
}

func (e *ClassifiedError) Error() string {
	return e.Err.Error()
}

func (e *ClassifiedError) Unwrap() error {
	return e.Err
}

// PanicError carries a panic recovered from an operation.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("operation panicked: %v", e.Value)
}
