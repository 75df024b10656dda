package retry

import (
	"context"
	"fmt"
	"time"
)

type attemptResult[T any] struct {
	value T
	err   error
}

// WithTimeout runs op and returns its result if it settles before timeout.
//
// op receives an attempt context that is cancelled when the deadline fires, the
// parent context ends, or WithTimeout returns, whichever comes first. The
// context owns the deadline timer, so the timer is released on every path.
//
// When the deadline wins, WithTimeout returns immediately with a
// *ClassifiedError of KindTimeout wrapping a *TimeoutError. It does not wait
// for op to observe the cancellation. When the parent context ends first, the
// parent's error is returned. Errors returned by op are passed through as is.
func WithTimeout[T any](ctx context.Context, timeout time.Duration, op OperationValue[T]) (T, error) {
	var zero T
	if timeout <= 0 {
		return zero, fmt.Errorf("%w: timeout must be positive, got %s", ErrInvalidPolicy, timeout)
	}

	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// Buffered so a late result never blocks the abandoned goroutine.
	results := make(chan attemptResult[T], 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				results <- attemptResult[T]{err: &PanicError{Value: r}}
			}
		}()
		value, err := op(attemptCtx)
		results <- attemptResult[T]{value: value, err: err}
	}()

	select {
	case r := <-results:
		return r.value, r.err
	case <-attemptCtx.Done():
		if err := ctx.Err(); err != nil {
			return zero, err
		}
		return zero, &ClassifiedError{Kind: KindTimeout, Err: &TimeoutError{Duration: timeout}}
	}
}
