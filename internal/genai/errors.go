package genai

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"

	json "github.com/goccy/go-json"
	"google.golang.org/grpc/codes"

	"github.com/RogelioAlcantarRangel/Cabina-de-Fotograf-a/pkg/flashbooth"
)

// APIError is the single error type returned by Client. Code is drawn from the
// closed gRPC code set; Err keeps the underlying transport error, if any.
type APIError struct {
	Code       codes.Code
	HTTPStatus int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return e.Code.String()
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Is matches flashbooth.ErrServiceUnavailable for errors that mean the service
// could not be reached.
func (e *APIError) Is(target error) bool {
	return target == flashbooth.ErrServiceUnavailable && e.Code == codes.Unavailable
}

type errorBody struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// errorFromResponse converts a non-2xx response into an APIError. The status
// name in the body wins over the HTTP status when it names a known code.
func errorFromResponse(httpStatus int, body []byte) *APIError {
	apiErr := &APIError{
		Code:       codeFromHTTPStatus(httpStatus),
		HTTPStatus: httpStatus,
		Message:    http.StatusText(httpStatus),
	}

	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err != nil {
		return apiErr
	}
	if parsed.Error.Message != "" {
		apiErr.Message = parsed.Error.Message
	}
	if parsed.Error.Status != "" {
		var c codes.Code
		if err := c.UnmarshalJSON([]byte(strconv.Quote(parsed.Error.Status))); err == nil {
			apiErr.Code = c
		}
	}
	return apiErr
}

func codeFromHTTPStatus(status int) codes.Code {
	switch status {
	case http.StatusBadRequest:
		return codes.InvalidArgument
	case http.StatusUnauthorized:
		return codes.Unauthenticated
	case http.StatusForbidden:
		return codes.PermissionDenied
	case http.StatusNotFound:
		return codes.NotFound
	case http.StatusConflict:
		return codes.Aborted
	case http.StatusTooManyRequests:
		return codes.ResourceExhausted
	case 499:
		return codes.Canceled
	case http.StatusNotImplemented:
		return codes.Unimplemented
	case http.StatusBadGateway, http.StatusServiceUnavailable:
		return codes.Unavailable
	case http.StatusGatewayTimeout:
		return codes.DeadlineExceeded
	}
	if status >= 500 {
		return codes.Internal
	}
	return codes.Unknown
}

// errorFromTransport converts an http.Client failure into an APIError.
func errorFromTransport(err error) *APIError {
	apiErr := &APIError{Code: codes.Unavailable, Message: err.Error(), Err: err}

	var netErr net.Error
	switch {
	case errors.Is(err, context.Canceled):
		apiErr.Code = codes.Canceled
	case errors.Is(err, context.DeadlineExceeded):
		apiErr.Code = codes.DeadlineExceeded
	case errors.As(err, &netErr) && netErr.Timeout():
		apiErr.Code = codes.DeadlineExceeded
	}
	return apiErr
}
