package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RogelioAlcantarRangel/Cabina-de-Fotograf-a/internal/logging"
	"github.com/RogelioAlcantarRangel/Cabina-de-Fotograf-a/internal/session"
	"github.com/RogelioAlcantarRangel/Cabina-de-Fotograf-a/pkg/flashbooth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// mockEnhancer records its inputs and returns canned results.
type mockEnhancer struct {
	caption   string
	vibe      string
	image     *flashbooth.Image
	err       error
	gotCount  int
	gotPhoto  string
	gotPrompt string
	gotRatio  flashbooth.AspectRatio
}

func (m *mockEnhancer) GenerateCaption(_ context.Context, n int) (string, error) {
	m.gotCount = n
	if n < 1 {
		return "", &flashbooth.OperationError{Op: "caption generation", Err: flashbooth.ErrInvalidPhotoCount}
	}
	return m.caption, m.err
}

func (m *mockEnhancer) AnalyzeVibe(_ context.Context, photo string) (string, error) {
	m.gotPhoto = photo
	return m.vibe, m.err
}

func (m *mockEnhancer) GenerateImage(_ context.Context, prompt string, ratio flashbooth.AspectRatio) (*flashbooth.Image, error) {
	m.gotPrompt = prompt
	m.gotRatio = ratio
	return m.image, m.err
}

func newTestServer(enhancer Enhancer) *Server {
	return New(enhancer, session.NewMemoryStore(time.Hour), logging.NewNullLogger())
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), "body: %s", rec.Body.String())
}

func TestHealthz(t *testing.T) {
	rec := do(t, newTestServer(&mockEnhancer{}), http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRequestID_Propagated(t *testing.T) {
	s := newTestServer(&mockEnhancer{})
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "req-123")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "req-123", rec.Header().Get("X-Request-ID"))
}

func TestMetricsEndpoint(t *testing.T) {
	rec := do(t, newTestServer(&mockEnhancer{}), http.MethodGet, "/metrics", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestCaption(t *testing.T) {
	enhancer := &mockEnhancer{caption: "Flash forward!"}
	rec := do(t, newTestServer(enhancer), http.MethodPost, "/api/ai/caption", `{"numPhotos": 4}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp captionResponse
	decode(t, rec, &resp)
	assert.Equal(t, "Flash forward!", resp.Caption)
	assert.Equal(t, 4, enhancer.gotCount)
}

func TestCaption_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing count", `{}`},
		{"zero count", `{"numPhotos": 0}`},
		{"negative count", `{"numPhotos": -2}`},
		{"wrong type", `{"numPhotos": "four"}`},
		{"not json", `numPhotos=4`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, newTestServer(&mockEnhancer{}), http.MethodPost, "/api/ai/caption", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			var resp errorResponse
			decode(t, rec, &resp)
			assert.NotEmpty(t, resp.Error)
			assert.Equal(t, rec.Header().Get("X-Request-ID"), resp.RequestID)
		})
	}
}

func TestAI_MissingAPIKey(t *testing.T) {
	for _, path := range []string{"/api/ai/caption", "/api/ai/vibe", "/api/ai/image"} {
		t.Run(path, func(t *testing.T) {
			rec := do(t, newTestServer(nil), http.MethodPost, path, `{}`)

			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			var resp errorResponse
			decode(t, rec, &resp)
			assert.Equal(t, flashbooth.ErrMissingAPIKey.Error(), resp.Error)
		})
	}
}

func TestVibe(t *testing.T) {
	enhancer := &mockEnhancer{vibe: "Pure sunshine."}
	rec := do(t, newTestServer(enhancer), http.MethodPost, "/api/ai/vibe", `{"photo": "data:image/jpeg;base64,aGk="}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp vibeResponse
	decode(t, rec, &resp)
	assert.Equal(t, "Pure sunshine.", resp.Vibe)
	assert.Equal(t, "data:image/jpeg;base64,aGk=", enhancer.gotPhoto)
}

func TestVibe_MalformedImage(t *testing.T) {
	enhancer := &mockEnhancer{err: &flashbooth.OperationError{Op: "vibe analysis", Err: flashbooth.ErrMalformedImage}}
	rec := do(t, newTestServer(enhancer), http.MethodPost, "/api/ai/vibe", `{"photo": "garbage"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAI_RemoteFailureIsBadGateway(t *testing.T) {
	enhancer := &mockEnhancer{err: &flashbooth.OperationError{Op: "caption generation", Err: errors.New("quota exceeded")}}
	rec := do(t, newTestServer(enhancer), http.MethodPost, "/api/ai/caption", `{"numPhotos": 3}`)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	var resp errorResponse
	decode(t, rec, &resp)
	assert.Equal(t, "caption generation failed: quota exceeded", resp.Error)
}

func TestImage(t *testing.T) {
	enhancer := &mockEnhancer{image: &flashbooth.Image{MIMEType: "image/png", Data: []byte("png")}}
	rec := do(t, newTestServer(enhancer), http.MethodPost, "/api/ai/image", `{"prompt": "retro arcade", "aspectRatio": "9:16"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp imageResponse
	decode(t, rec, &resp)
	require.NotNil(t, resp.Image)
	assert.Equal(t, "data:image/png;base64,cG5n", *resp.Image)
	assert.Equal(t, "retro arcade", enhancer.gotPrompt)
	assert.Equal(t, flashbooth.AspectPortrait9x16, enhancer.gotRatio)
}

func TestImage_DefaultsToSquare(t *testing.T) {
	enhancer := &mockEnhancer{}
	rec := do(t, newTestServer(enhancer), http.MethodPost, "/api/ai/image", `{"prompt": "confetti"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"image":null}`, rec.Body.String())
	assert.Equal(t, flashbooth.AspectSquare, enhancer.gotRatio)
}

func TestImage_InvalidAspectRatio(t *testing.T) {
	enhancer := &mockEnhancer{}
	rec := do(t, newTestServer(enhancer), http.MethodPost, "/api/ai/image", `{"prompt": "x", "aspectRatio": "5:4"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, enhancer.gotPrompt, "enhancer must not be called")
}

func TestSessions_Lifecycle(t *testing.T) {
	s := newTestServer(&mockEnhancer{})

	body := `{"photos":[{"id":"p1","dataUrl":"data:image/jpeg;base64,aGk=","timestamp":"2026-05-01T12:00:00Z"}],"caption":"Cheese"}`
	rec := do(t, s, http.MethodPost, "/api/sessions", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	var saved session.Session
	decode(t, rec, &saved)
	assert.True(t, strings.HasPrefix(saved.ID, "session_"))
	assert.Equal(t, "Cheese", saved.Caption)

	rec = do(t, s, http.MethodGet, "/api/sessions/"+saved.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var loaded session.Session
	decode(t, rec, &loaded)
	assert.Equal(t, saved.ID, loaded.ID)
	require.Len(t, loaded.Photos, 1)
	assert.Equal(t, "p1", loaded.Photos[0].ID)

	rec = do(t, s, http.MethodDelete, "/api/sessions/"+saved.ID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/sessions/"+saved.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSessions_AssignsPhotoIDs(t *testing.T) {
	s := newTestServer(&mockEnhancer{})

	body := `{"photos":[{"dataUrl":"data:image/jpeg;base64,aGk="},{"dataUrl":"data:image/png;base64,aGk="}]}`
	rec := do(t, s, http.MethodPost, "/api/sessions", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	var saved session.Session
	decode(t, rec, &saved)
	require.Len(t, saved.Photos, 2)
	assert.True(t, strings.HasPrefix(saved.Photos[0].ID, "photo_"))
	assert.Equal(t, saved.Photos[0].ID, saved.Photos[1].ID, "same image content yields the same id")
}

func TestSessions_MalformedPhotoWithoutID(t *testing.T) {
	body := `{"photos":[{"dataUrl":"not-a-data-url"}]}`
	rec := do(t, newTestServer(&mockEnhancer{}), http.MethodPost, "/api/sessions", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSessions_DeleteUnknown(t *testing.T) {
	rec := do(t, newTestServer(&mockEnhancer{}), http.MethodDelete, "/api/sessions/session_nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStatusForError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{flashbooth.ErrInvalidPrompt, http.StatusBadRequest},
		{fmt.Errorf("wrapped: %w", flashbooth.ErrSessionNotFound), http.StatusNotFound},
		{flashbooth.ErrMissingAPIKey, http.StatusInternalServerError},
		{&flashbooth.OperationError{Op: "x", Err: errors.New("boom")}, http.StatusBadGateway},
		{&flashbooth.OperationError{Op: "x", Err: flashbooth.ErrMalformedImage}, http.StatusBadRequest},
		{errors.New("unknown"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, statusForError(tt.err))
		})
	}
}

func TestRun_ShutsDownOnCancel(t *testing.T) {
	s := newTestServer(&mockEnhancer{})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestNew_NilStorePanics(t *testing.T) {
	assert.Panics(t, func() { New(nil, nil, logging.NewNullLogger()) })
	assert.Panics(t, func() { New(nil, session.NewMemoryStore(0), nil) })
}
