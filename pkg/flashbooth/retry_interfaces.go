package flashbooth

// ErrorKind is the retry classification of a failed attempt.
type ErrorKind int

const (
	// KindFatal failures stop the attempt loop immediately.
	KindFatal ErrorKind = iota
	// KindTransient failures are retried while attempts remain.
	KindTransient
	// KindTimeout marks an attempt that overran its deadline. Retried like KindTransient.
	KindTimeout
)

func (k ErrorKind) String() string {
	switch k {
	case KindFatal:
		return "fatal"
	case KindTransient:
		return "transient"
	case KindTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Retryable reports whether failures of this kind may be attempted again.
func (k ErrorKind) Retryable() bool {
	return k == KindTransient || k == KindTimeout
}

// ErrorClassifier determines whether an error is transient (retryable) or fatal.
// Implementations must be pure: the same error always yields the same kind.
type ErrorClassifier interface {
	// Classify maps err to its retry classification. Must not panic.
	Classify(err error) ErrorKind

	// IsTransient returns true if the error is temporary and the operation should be retried.
	IsTransient(err error) bool
}
