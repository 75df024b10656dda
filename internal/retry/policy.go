package retry

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/RogelioAlcantarRangel/Cabina-de-Fotograf-a/pkg/flashbooth"
)

// Policy governs one scheduler run: how many attempts, how long to wait
// between them, and how long each attempt may take.
//
// Policy is immutable. The With* methods return modified copies and the delay
// table is copied on the way in and on the way out.
type Policy struct {
	maxAttempts int
	delays      []time.Duration
	timeout     time.Duration
}

// NewPolicy creates a validated Policy.
func NewPolicy(maxAttempts int, timeout time.Duration, delays ...time.Duration) (Policy, error) {
	p := Policy{
		maxAttempts: maxAttempts,
		delays:      slices.Clone(delays),
		timeout:     timeout,
	}
	if err := p.Validate(); err != nil {
		return Policy{}, err
	}
	return p, nil
}

// DefaultPolicy returns 3 attempts, delays of 1s, 2s, 4s, and a 30s timeout.
func DefaultPolicy() Policy {
	return Policy{
		maxAttempts: flashbooth.DefaultRetryMaxAttempts,
		delays:      slices.Clone(flashbooth.DefaultRetryDelays),
		timeout:     flashbooth.DefaultRetryTimeout,
	}
}

// Validate reports every reason the policy cannot drive an attempt loop.
func (p Policy) Validate() error {
	var errs []error

	if p.maxAttempts < 1 {
		errs = append(errs, fmt.Errorf("%w: max attempts must be at least 1, got %d", ErrInvalidPolicy, p.maxAttempts))
	}
	if p.timeout <= 0 {
		errs = append(errs, fmt.Errorf("%w: timeout must be positive, got %s", ErrInvalidPolicy, p.timeout))
	}
	for i, d := range p.delays {
		if d < 0 {
			errs = append(errs, fmt.Errorf("%w: delay %d is negative (%s)", ErrInvalidPolicy, i, d))
		}
	}

	return errors.Join(errs...)
}

// MaxAttempts returns the total number of attempts, the first one included.
func (p Policy) MaxAttempts() int {
	return p.maxAttempts
}

// Timeout returns the per-attempt deadline.
func (p Policy) Timeout() time.Duration {
	return p.timeout
}

// Delays returns a copy of the backoff delay table.
func (p Policy) Delays() []time.Duration {
	return slices.Clone(p.delays)
}

// DelayFor returns the wait after the attempt-th failed attempt (one-indexed).
// Attempts past the end of the table reuse its last entry. An empty table
// means no wait.
func (p Policy) DelayFor(attempt int) time.Duration {
	return delayAt(p.delays, attempt)
}

// WithMaxAttempts returns a copy with a different attempt count.
func (p Policy) WithMaxAttempts(n int) Policy {
	p.delays = slices.Clone(p.delays)
	p.maxAttempts = n
	return p
}

// WithTimeout returns a copy with a different per-attempt timeout.
func (p Policy) WithTimeout(d time.Duration) Policy {
	p.delays = slices.Clone(p.delays)
	p.timeout = d
	return p
}

// WithDelays returns a copy with a different delay table.
func (p Policy) WithDelays(delays ...time.Duration) Policy {
	p.delays = slices.Clone(delays)
	return p
}

// String renders the policy for verbose logs.
func (p Policy) String() string {
	return fmt.Sprintf("attempts=%d delays=%v timeout=%s", p.maxAttempts, p.delays, p.timeout)
}
