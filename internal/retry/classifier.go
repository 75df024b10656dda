package retry

import (
	"context"
	"errors"
	"io"
	"net"
	"strings"
	"syscall"

	"google.golang.org/grpc/codes"

	"github.com/RogelioAlcantarRangel/Cabina-de-Fotograf-a/internal/genai"
	"github.com/RogelioAlcantarRangel/Cabina-de-Fotograf-a/pkg/flashbooth"
)

// networkPatterns mark errors raised by HTTP stacks that do not expose a
// typed error, e.g. "TypeError: Failed to fetch" relayed from a browser.
var networkPatterns = []string{
	"network",
	"fetch",
}

// connectionPatterns are the message forms of connectivity failures that lost
// their type while being wrapped.
var connectionPatterns = []string{
	"connection refused",
	"connection reset",
	"broken pipe",
	"no such host",
	"network is unreachable",
	"i/o timeout",
	"unexpected eof",
}

// GenAIErrorClassifier implements flashbooth.ErrorClassifier for errors from
// the generative service and the transport beneath it.
type GenAIErrorClassifier struct{}

// NewGenAIErrorClassifier creates a new classifier.
func NewGenAIErrorClassifier() *GenAIErrorClassifier {
	return &GenAIErrorClassifier{}
}

// Classify maps err to a retry classification. First match wins:
// timeouts, service codes, network message patterns, connectivity error
// shapes, then fatal.
func (c *GenAIErrorClassifier) Classify(err error) ErrorKind {
	if err == nil {
		return KindFatal
	}

	var classified *ClassifiedError
	if errors.As(err, &classified) {
		return classified.Kind
	}

	if c.isTimeout(err) {
		return KindTimeout
	}

	var apiErr *genai.APIError
	if errors.As(err, &apiErr) {
		return c.classifyCode(apiErr.Code)
	}

	var panicErr *PanicError
	if errors.Is(err, context.Canceled) || errors.As(err, &panicErr) {
		return KindFatal
	}

	if containsAny(err.Error(), networkPatterns) {
		return KindTransient
	}

	if c.isConnectionError(err) {
		return KindTransient
	}

	return KindFatal
}

// IsTransient determines if an error is temporary and retryable.
func (c *GenAIErrorClassifier) IsTransient(err error) bool {
	return c.Classify(err).Retryable()
}

func (c *GenAIErrorClassifier) isTimeout(err error) bool {
	var timeoutErr *TimeoutError
	if errors.As(err, &timeoutErr) {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}

// classifyCode follows the retry guidance for Google APIs: only codes that
// describe a momentary server-side condition are retried.
func (c *GenAIErrorClassifier) classifyCode(code codes.Code) ErrorKind {
	switch code {
	case codes.DeadlineExceeded:
		return KindTimeout
	case codes.Unavailable,
		codes.ResourceExhausted,
		codes.Aborted,
		codes.Internal:
		return KindTransient
	default:
		return KindFatal
	}
}

// isConnectionError checks for network-level error types and their messages.
func (c *GenAIErrorClassifier) isConnectionError(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}

	for _, errno := range []syscall.Errno{
		syscall.ECONNREFUSED,
		syscall.ECONNRESET,
		syscall.ENETUNREACH,
		syscall.EHOSTUNREACH,
		syscall.EPIPE,
	} {
		if errors.Is(err, errno) {
			return true
		}
	}

	if errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	return containsAny(err.Error(), connectionPatterns)
}

func containsAny(msg string, patterns []string) bool {
	lower := strings.ToLower(msg)
	for _, pattern := range patterns {
		if strings.Contains(lower, pattern) {
			return true
		}
	}
	return false
}

var _ flashbooth.ErrorClassifier = (*GenAIErrorClassifier)(nil)
