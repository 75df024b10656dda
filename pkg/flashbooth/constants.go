package flashbooth

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess           = 0  // Command completed successfully
	ExitGeneralError      = 1  // Unknown or unclassified error
	ExitUsageError        = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic             = 3  // Internal panic (unexpected crash)
	ExitConfigError       = 10 // Invalid configuration or missing API key
	ExitServiceError      = 11 // Remote generative service unreachable or rejected the call
	ExitInvalidInput      = 12 // Malformed image, bad aspect ratio, bad photo count
	ExitEnhancementFailed = 13 // Enhancement failed after exhausting its attempts
	ExitSessionNotFound   = 14 // Session missing or expired
)

const (
	// DefaultRetryMaxAttempts is the total number of attempts (first call included).
	DefaultRetryMaxAttempts = 3

	// DefaultRetryTimeout bounds a single attempt.
	DefaultRetryTimeout = 30 * time.Second

	// DefaultSessionTTL is how long a saved session stays loadable.
	DefaultSessionTTL = 24 * time.Hour

	// DefaultImageSize is the image size requested for generated images.
	DefaultImageSize = "1K"

	// DefaultAPIBaseURL is the Gemini REST endpoint root.
	DefaultAPIBaseURL = "https://generativelanguage.googleapis.com"

	// DefaultServerAddr is the listen address of the HTTP API.
	DefaultServerAddr = ":3001"
)

// DefaultRetryDelays is the backoff delay table applied between attempts.
// The last entry is reused for attempts beyond the end of the table.
var DefaultRetryDelays = []time.Duration{
	1 * time.Second,
	2 * time.Second,
	4 * time.Second,
}

// Model identifiers used by the three enhancement operations.
const (
	DefaultCaptionModel = "gemini-flash-lite-latest"
	DefaultVibeModel    = "gemini-3-pro-preview"
	DefaultImageModel   = "gemini-3-pro-image-preview"
)

// Booth limits and defaults.
const (
	DefaultPhotoCount       = 5
	MinPhotoCount           = 1
	MaxPhotoCount           = 20
	DefaultCountdownSeconds = 3
	MinCountdownSeconds     = 1
	MaxCountdownSeconds     = 10
	DefaultJPEGQuality      = 0.9
	MinJPEGQuality          = 0.5
	MaxJPEGQuality          = 1.0
)

// Fallback texts returned when the service answers successfully but with no text.
const (
	FallbackCaption = "Capture the moment!"
	FallbackVibe    = "You look amazing!"
)

// VibeInstruction is sent alongside the photo for vibe analysis.
const VibeInstruction = "Analyze the mood and vibe of this photo booth picture in 2-3 sentences. Be fun and descriptive like a fortune teller."
