package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/RogelioAlcantarRangel/Cabina-de-Fotograf-a/pkg/flashbooth"
)

const idPrefix = "session_"

// Session is a saved photo strip.
type Session struct {
	ID        string             `json:"sessionId"`
	Photos    []flashbooth.Photo `json:"photos"`
	Caption   string             `json:"caption"`
	CreatedAt time.Time          `json:"timestamp"`
}

// Store persists sessions. Implementations must be safe for concurrent use.
type Store interface {
	Save(ctx context.Context, photos []flashbooth.Photo, caption string) (Session, error)
	Load(ctx context.Context, id string) (Session, error)
	Delete(ctx context.Context, id string) error
}

// NewID returns a fresh session identifier.
func NewID() string {
	return idPrefix + uuid.NewString()
}

func newSession(photos []flashbooth.Photo, caption string, now time.Time) Session {
	if photos == nil {
		photos = []flashbooth.Photo{}
	}
	return Session{
		ID:        NewID(),
		Photos:    photos,
		Caption:   caption,
		CreatedAt: now.UTC(),
	}
}
