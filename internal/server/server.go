// Package server exposes the enhancement operations and session storage over
// a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/RogelioAlcantarRangel/Cabina-de-Fotograf-a/internal/session"
	"github.com/RogelioAlcantarRangel/Cabina-de-Fotograf-a/pkg/flashbooth"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "requestId"
	shutdownTimeout = 10 * time.Second
)

// Enhancer is the set of AI operations served by the API.
type Enhancer interface {
	GenerateCaption(ctx context.Context, photoCount int) (string, error)
	AnalyzeVibe(ctx context.Context, photo string) (string, error)
	GenerateImage(ctx context.Context, prompt string, ratio flashbooth.AspectRatio) (*flashbooth.Image, error)
}

// Server routes API requests to an Enhancer and a session Store.
type Server struct {
	enhancer Enhancer
	store    session.Store
	logger   flashbooth.Logger
	router   *gin.Engine
}

// New creates a Server. A nil enhancer means no API key is configured: the AI
// routes then answer 500 while session routes keep working.
// Panics if store or logger is nil.
func New(enhancer Enhancer, store session.Store, logger flashbooth.Logger) *Server {
	if store == nil {
		panic("store cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	s := &Server{
		enhancer: enhancer,
		store:    store,
		logger:   logger,
	}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler serving the API.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() *gin.Engine {
	router := gin.New()
	router.Use(requestID(), s.accessLog(), gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	ai := router.Group("/api/ai", s.requireEnhancer())
	{
		ai.POST("/caption", s.handleCaption)
		ai.POST("/vibe", s.handleVibe)
		ai.POST("/image", s.handleImage)
	}

	sessions := router.Group("/api/sessions")
	{
		sessions.POST("", s.handleSaveSession)
		sessions.GET("/:id", s.handleLoadSession)
		sessions.DELETE("/:id", s.handleDeleteSession)
	}

	return router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("Shutting down server")
		return srv.Shutdown(shutdownCtx)
	}
}

// requestID tags every request with an id, reusing the caller's when present.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Verbose("%s %s %d %s request_id=%s",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start), c.GetString(requestIDKey))
	}
}

func (s *Server) requireEnhancer() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.enhancer == nil {
			s.abortWithError(c, flashbooth.ErrMissingAPIKey)
			return
		}
		c.Next()
	}
}

// statusForError maps domain errors to HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, flashbooth.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, flashbooth.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, flashbooth.ErrMissingAPIKey):
		return http.StatusInternalServerError
	case errors.Is(err, flashbooth.ErrEnhancementFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) abortWithError(c *gin.Context, err error) {
	status := statusForError(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("%s %s: %v (request_id=%s)", c.Request.Method, c.Request.URL.Path, err, c.GetString(requestIDKey))
	}
	c.AbortWithStatusJSON(status, errorResponse{
		Error:     err.Error(),
		RequestID: c.GetString(requestIDKey),
	})
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId"`
}
