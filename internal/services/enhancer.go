package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/RogelioAlcantarRangel/Cabina-de-Fotograf-a/internal/genai"
	"github.com/RogelioAlcantarRangel/Cabina-de-Fotograf-a/internal/logging"
	"github.com/RogelioAlcantarRangel/Cabina-de-Fotograf-a/internal/metrics"
	"github.com/RogelioAlcantarRangel/Cabina-de-Fotograf-a/internal/retry"
	"github.com/RogelioAlcantarRangel/Cabina-de-Fotograf-a/pkg/flashbooth"
)

// Operation names, used in failure messages and as metric labels.
const (
	OpCaption = "caption generation"
	OpVibe    = "vibe analysis"
	OpImage   = "image generation"
)

const defaultImageMIMEType = "image/png"

// Models selects the model used by each enhancement.
type Models struct {
	Caption string
	Vibe    string
	Image   string
}

// DefaultModels returns the production model identifiers.
func DefaultModels() Models {
	return Models{
		Caption: flashbooth.DefaultCaptionModel,
		Vibe:    flashbooth.DefaultVibeModel,
		Image:   flashbooth.DefaultImageModel,
	}
}

// Enhancer runs the three AI enhancements of a photo strip against a
// generator, each call under the retry policy.
//
// Thread-Safety: safe for concurrent use. Invocations share no mutable state.
type Enhancer struct {
	generator genai.Generator
	executor  *retry.Executor
	policy    retry.Policy
	models    Models
	logger    flashbooth.Logger
}

// EnhancerOption is a functional option for configuring Enhancer.
type EnhancerOption func(*Enhancer)

// WithPolicy overrides the default retry policy.
func WithPolicy(policy retry.Policy) EnhancerOption {
	return func(e *Enhancer) {
		e.policy = policy
	}
}

// WithModels overrides the model identifiers.
func WithModels(models Models) EnhancerOption {
	return func(e *Enhancer) {
		e.models = models
	}
}

// WithLogger sets the logger receiving retry diagnostics.
func WithLogger(logger flashbooth.Logger) EnhancerOption {
	return func(e *Enhancer) {
		e.logger = logger
	}
}

// WithExecutor replaces the retry executor. Its retry and attempt hooks are
// replaced per operation.
func WithExecutor(executor *retry.Executor) EnhancerOption {
	return func(e *Enhancer) {
		e.executor = executor
	}
}

// NewEnhancer creates an Enhancer calling generator.
// Panics if generator is nil.
func NewEnhancer(generator genai.Generator, opts ...EnhancerOption) *Enhancer {
	if generator == nil {
		panic("generator cannot be nil")
	}

	e := &Enhancer{
		generator: generator,
		executor:  retry.NewExecutor(retry.NewGenAIErrorClassifier()),
		policy:    retry.DefaultPolicy(),
		models:    DefaultModels(),
		logger:    logging.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// GenerateCaption returns a short caption for a strip of photoCount photos.
func (e *Enhancer) GenerateCaption(ctx context.Context, photoCount int) (string, error) {
	if photoCount < 1 {
		return "", &flashbooth.OperationError{
			Op:  OpCaption,
			Err: fmt.Errorf("%w, got %d", flashbooth.ErrInvalidPhotoCount, photoCount),
		}
	}

	prompt := fmt.Sprintf("Generate a short, witty, and fun caption for a photo booth strip containing %d photos. Keep it under 10 words.", photoCount)
	req := genai.NewRequest(genai.TextPart(prompt))

	resp, err := e.generate(ctx, OpCaption, e.models.Caption, req)
	if err != nil {
		return "", err
	}
	if text := resp.Text(); text != "" {
		return text, nil
	}
	return flashbooth.FallbackCaption, nil
}

// AnalyzeVibe describes the mood of a photo given as an image data URL.
func (e *Enhancer) AnalyzeVibe(ctx context.Context, photo string) (string, error) {
	img, err := flashbooth.ParseDataURL(photo)
	if err != nil {
		return "", &flashbooth.OperationError{Op: OpVibe, Err: err}
	}

	req := genai.NewRequest(
		genai.InlinePart(img.MIMEType, img.Data),
		genai.TextPart(flashbooth.VibeInstruction),
	)

	resp, err := e.generate(ctx, OpVibe, e.models.Vibe, req)
	if err != nil {
		return "", err
	}
	if text := resp.Text(); text != "" {
		return text, nil
	}
	return flashbooth.FallbackVibe, nil
}

// GenerateImage creates an image from prompt at the given aspect ratio.
// A successful response without image data returns (nil, nil).
func (e *Enhancer) GenerateImage(ctx context.Context, prompt string, ratio flashbooth.AspectRatio) (*flashbooth.Image, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, &flashbooth.OperationError{Op: OpImage, Err: flashbooth.ErrInvalidPrompt}
	}
	if !ratio.Valid() {
		return nil, &flashbooth.OperationError{
			Op:  OpImage,
			Err: fmt.Errorf("%w: %q", flashbooth.ErrInvalidAspectRatio, ratio),
		}
	}

	req := genai.NewRequest(genai.TextPart(prompt))
	req.GenerationConfig = &genai.GenerationConfig{
		ImageConfig: &genai.ImageConfig{
			AspectRatio: string(ratio),
			ImageSize:   flashbooth.DefaultImageSize,
		},
	}

	resp, err := e.generate(ctx, OpImage, e.models.Image, req)
	if err != nil {
		return nil, err
	}

	blob := resp.FirstImage()
	if blob == nil {
		e.logger.Verbose("%s: response contained no image", OpImage)
		return nil, nil
	}

	mimeType := blob.MIMEType
	if mimeType == "" {
		mimeType = defaultImageMIMEType
	}
	return &flashbooth.Image{MIMEType: mimeType, Data: blob.Data}, nil
}

// generate runs one remote call under the retry policy. The error of the last
// attempt is wrapped in an OperationError naming op.
func (e *Enhancer) generate(ctx context.Context, op, model string, req *genai.Request) (*genai.Response, error) {
	observeRetry := metrics.ObserveRetry(op)
	executor := e.executor.
		WithOnRetry(func(attempt int, err error, delay time.Duration) {
			e.logger.Verbose("%s attempt %d/%d failed: %v (retrying in %s)",
				op, attempt, e.policy.MaxAttempts(), err, delay)
			observeRetry(attempt, err, delay)
		}).
		WithOnAttempt(metrics.ObserveAttempt(op))

	resp, err := retry.Do(ctx, executor, e.policy, func(ctx context.Context) (*genai.Response, error) {
		return e.generator.GenerateContent(ctx, model, req)
	})
	if err != nil {
		return nil, &flashbooth.OperationError{Op: op, Err: err}
	}
	return resp, nil
}
