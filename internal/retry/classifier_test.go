package retry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"syscall"
	"testing"
	"time"

	"google.golang.org/grpc/codes"

	"github.com/RogelioAlcantarRangel/Cabina-de-Fotograf-a/internal/genai"
)

func TestGenAIErrorClassifier_Classify(t *testing.T) {
	classifier := NewGenAIErrorClassifier()

	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		// Timeouts
		{"timeout error", &TimeoutError{Duration: time.Second}, KindTimeout},
		{"wrapped timeout error", fmt.Errorf("attempt: %w", &TimeoutError{Duration: time.Second}), KindTimeout},
		{"deadline exceeded", context.DeadlineExceeded, KindTimeout},
		{"already classified", &ClassifiedError{Kind: KindTimeout, Err: errors.New("x")}, KindTimeout},

		// Service codes
		{"unavailable", &genai.APIError{Code: codes.Unavailable}, KindTransient},
		{"resource exhausted", &genai.APIError{Code: codes.ResourceExhausted}, KindTransient},
		{"aborted", &genai.APIError{Code: codes.Aborted}, KindTransient},
		{"internal", &genai.APIError{Code: codes.Internal}, KindTransient},
		{"service deadline", &genai.APIError{Code: codes.DeadlineExceeded}, KindTimeout},
		{"invalid argument", &genai.APIError{Code: codes.InvalidArgument, Message: "API key not valid"}, KindFatal},
		{"unauthenticated", &genai.APIError{Code: codes.Unauthenticated}, KindFatal},
		{"permission denied", &genai.APIError{Code: codes.PermissionDenied}, KindFatal},
		{"response too large", &genai.APIError{Code: codes.OutOfRange}, KindFatal},
		{"canceled code", &genai.APIError{Code: codes.Canceled}, KindFatal},
		{"code beats message", &genai.APIError{Code: codes.InvalidArgument, Message: "failed to fetch model"}, KindFatal},

		// Message patterns
		{"network error", errors.New("Network error"), KindTransient},
		{"failed to fetch", errors.New("TypeError: Failed to fetch"), KindTransient},
		{"connection refused text", errors.New("dial tcp: connection refused"), KindTransient},

		// Connectivity shapes
		{"op error", &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("boom")}, KindTransient},
		{"dns error", &net.DNSError{Err: "lookup failed", Name: "example.invalid"}, KindTransient},
		{"econnreset", fmt.Errorf("read: %w", syscall.ECONNRESET), KindTransient},
		{"unexpected eof", io.ErrUnexpectedEOF, KindTransient},

		// Fatal
		{"invalid api key", errors.New("Invalid API key"), KindFatal},
		{"context canceled", context.Canceled, KindFatal},
		{"panic", &PanicError{Value: "network down"}, KindFatal},
		{"nil", nil, KindFatal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifier.Classify(tt.err); got != tt.want {
				t.Errorf("Classify(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestGenAIErrorClassifier_IsTransient(t *testing.T) {
	classifier := NewGenAIErrorClassifier()

	if !classifier.IsTransient(&TimeoutError{Duration: time.Second}) {
		t.Error("timeouts should be transient")
	}
	if !classifier.IsTransient(errors.New("network unreachable")) {
		t.Error("network errors should be transient")
	}
	if classifier.IsTransient(errors.New("Invalid API key")) {
		t.Error("invalid API key should not be transient")
	}
	if classifier.IsTransient(nil) {
		t.Error("nil should not be transient")
	}
}

func TestGenAIErrorClassifier_Idempotent(t *testing.T) {
	classifier := NewGenAIErrorClassifier()

	for _, err := range []error{
		errors.New("Invalid API key"),
		errors.New("network error"),
		&TimeoutError{Duration: time.Millisecond},
		&genai.APIError{Code: codes.Unavailable},
	} {
		first := classifier.Classify(err)
		second := classifier.Classify(err)
		if first != second {
			t.Errorf("Classify(%v) not stable: %v then %v", err, first, second)
		}
	}
}
