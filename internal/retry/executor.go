package retry

import (
	"context"
	"time"

	"github.com/RogelioAlcantarRangel/Cabina-de-Fotograf-a/pkg/flashbooth"
)

// Operation is a unit of work without a result value.
type Operation func(ctx context.Context) error

// OperationValue is a unit of work yielding a T. It is invoked once per
// attempt and must honour ctx as its cancellation signal.
type OperationValue[T any] func(ctx context.Context) (T, error)

// AttemptRecord describes one settled attempt. Err is nil on success.
type AttemptRecord struct {
	Attempt  int
	Duration time.Duration
	Kind     ErrorKind
	Err      error
}

// Executor orchestrates retry attempts with backoff and error classification.
//
// Thread Safety:
// The Executor itself is safe for concurrent use when calling Execute() or Do().
// The With* methods return a NEW instance with the option applied; the
// original Executor remains unchanged.
type Executor struct {
	classifier flashbooth.ErrorClassifier
	onRetry    func(attempt int, err error, delay time.Duration)
	onAttempt  func(AttemptRecord)
	sleep      func(ctx context.Context, d time.Duration) error
	clock      func() time.Time
}

// NewExecutor creates a new retry executor with the given classifier.
// Panics if classifier is nil.
func NewExecutor(classifier flashbooth.ErrorClassifier) *Executor {
	if classifier == nil {
		panic("classifier cannot be nil")
	}
	return &Executor{
		classifier: classifier,
		sleep:      sleepWithContext,
		clock:      time.Now,
	}
}

// WithOnRetry returns a new Executor that calls callback before each backoff
// wait. attempt is the one-indexed attempt that just failed.
//
// Example:
//
//	executor := retry.NewExecutor(classifier)
//	logged := executor.WithOnRetry(func(attempt int, err error, delay time.Duration) {
//	    logger.Verbose("attempt %d failed: %v, retrying in %s", attempt, err, delay)
//	})
func (e *Executor) WithOnRetry(callback func(attempt int, err error, delay time.Duration)) *Executor {
	clone := *e
	clone.onRetry = callback
	return &clone
}

// WithOnAttempt returns a new Executor that reports every settled attempt.
func (e *Executor) WithOnAttempt(callback func(AttemptRecord)) *Executor {
	clone := *e
	clone.onAttempt = callback
	return &clone
}

// WithSleeper returns a new Executor that waits between attempts with sleep.
// sleep must return ctx.Err() if ctx ends before d elapses.
func (e *Executor) WithSleeper(sleep func(ctx context.Context, d time.Duration) error) *Executor {
	clone := *e
	clone.sleep = sleep
	return &clone
}

// Execute runs the operation with retry logic.
// Returns nil on success or the classified error of the last attempt.
func (e *Executor) Execute(ctx context.Context, policy Policy, operation Operation) error {
	_, err := Do(ctx, e, policy, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, operation(ctx)
	})
	return err
}

// Do runs op until it succeeds, fails fatally, or policy.MaxAttempts() attempts
// have been made. Each attempt is bounded by policy.Timeout().
//
// A failed attempt's error is returned as a *ClassifiedError whose message is
// the operation's own. An invalid policy is rejected before any attempt. If
// ctx ends, the loop stops with ctx.Err() without starting another attempt.
func Do[T any](ctx context.Context, e *Executor, policy Policy, op OperationValue[T]) (T, error) {
	var zero T
	if err := policy.Validate(); err != nil {
		return zero, err
	}

	maxAttempts := policy.MaxAttempts()
	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		start := e.clock()
		value, err := WithTimeout(ctx, policy.Timeout(), op)
		elapsed := e.clock().Sub(start)

		if err == nil {
			e.report(AttemptRecord{Attempt: attempt, Duration: elapsed})
			return value, nil
		}

		classified := e.classify(err)
		e.report(AttemptRecord{Attempt: attempt, Duration: elapsed, Kind: classified.Kind, Err: classified})

		// The attempt failed because ctx ended: no retry can follow.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return zero, ctxErr
		}

		if !classified.Kind.Retryable() || attempt >= maxAttempts {
			return zero, classified
		}

		delay := policy.DelayFor(attempt)
		if e.onRetry != nil {
			e.onRetry(attempt, classified, delay)
		}

		if err := e.sleep(ctx, delay); err != nil {
			return zero, err
		}
	}
}

// classify tags err, keeping an existing classification made by WithTimeout.
func (e *Executor) classify(err error) *ClassifiedError {
	if classified, ok := err.(*ClassifiedError); ok {
		return classified
	}
	return &ClassifiedError{Kind: e.classifier.Classify(err), Err: err}
}

func (e *Executor) report(rec AttemptRecord) {
	if e.onAttempt != nil {
		e.onAttempt(rec)
	}
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
