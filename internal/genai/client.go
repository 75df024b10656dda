package genai

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"google.golang.org/grpc/codes"

	"github.com/RogelioAlcantarRangel/Cabina-de-Fotograf-a/pkg/flashbooth"
)

// maxResponseBytes caps the body read from the service. Generated 1K images
// are a few megabytes once base64-encoded.
const maxResponseBytes = 32 << 20

// Generator produces content from a model. Client is the production
// implementation; tests substitute fakes.
type Generator interface {
	GenerateContent(ctx context.Context, model string, req *Request) (*Response, error)
}

// Client calls the Gemini generateContent REST endpoint.
// Safe for concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	maxBody    int64
}

// ClientOption is a functional option for configuring Client.
type ClientOption func(*Client)

// WithBaseURL overrides the service root, e.g. for a proxy or a test server.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithRequestTimeout sets an outer bound on a single HTTP exchange. The
// per-attempt timeout of the retry layer is normally tighter. Any client set
// by WithHTTPClient keeps its transport.
func WithRequestTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		var hc http.Client
		if c.httpClient != nil {
			hc = *c.httpClient
		}
		hc.Timeout = d
		c.httpClient = &hc
	}
}

// NewClient creates a Client. Returns flashbooth.ErrMissingAPIKey when apiKey is empty.
func NewClient(apiKey string, opts ...ClientOption) (*Client, error) {
	if apiKey == "" {
		return nil, flashbooth.ErrMissingAPIKey
	}

	c := &Client{
		baseURL:    flashbooth.DefaultAPIBaseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 2 * time.Minute},
		maxBody:    maxResponseBytes,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// GenerateContent sends req to model. Every returned error is an *APIError.
func (c *Client) GenerateContent(ctx context.Context, model string, req *Request) (*Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, &APIError{Code: codes.InvalidArgument, Message: fmt.Sprintf("encode request: %v", err), Err: err}
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, url.PathEscape(model))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &APIError{Code: codes.InvalidArgument, Message: fmt.Sprintf("create request: %v", err), Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, errorFromTransport(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, errorFromTransport(err)
	}
	if int64(len(data)) > c.maxBody {
		return nil, &APIError{
			Code:       codes.OutOfRange,
			HTTPStatus: resp.StatusCode,
			Message:    fmt.Sprintf("response body exceeds %d bytes", c.maxBody),
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errorFromResponse(resp.StatusCode, data)
	}

	var out Response
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, &APIError{
			Code:       codes.Internal,
			HTTPStatus: resp.StatusCode,
			Message:    fmt.Sprintf("decode response: %v", err),
			Err:        err,
		}
	}
	return &out, nil
}

var _ Generator = (*Client)(nil)
