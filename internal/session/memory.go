package session

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/RogelioAlcantarRangel/Cabina-de-Fotograf-a/pkg/flashbooth"
)

// MemoryStore keeps sessions in process memory. Expired sessions are dropped
// lazily when they are next looked up.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]Session
	ttl      time.Duration
	now      func() time.Time
}

// MemoryOption is a functional option for configuring MemoryStore.
type MemoryOption func(*MemoryStore)

// WithClock replaces time.Now, e.g. to test expiry.
func WithClock(now func() time.Time) MemoryOption {
	return func(s *MemoryStore) {
		s.now = now
	}
}

// NewMemoryStore creates a MemoryStore whose sessions live for ttl.
// A non-positive ttl selects flashbooth.DefaultSessionTTL.
func NewMemoryStore(ttl time.Duration, opts ...MemoryOption) *MemoryStore {
	if ttl <= 0 {
		ttl = flashbooth.DefaultSessionTTL
	}
	s := &MemoryStore{
		sessions: make(map[string]Session),
		ttl:      ttl,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStore) Save(ctx context.Context, photos []flashbooth.Photo, caption string) (Session, error) {
	if err := ctx.Err(); err != nil {
		return Session{}, err
	}

	sess := newSession(slices.Clone(photos), caption, s.now())

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
	return sess, nil
}

func (s *MemoryStore) Load(ctx context.Context, id string) (Session, error) {
	if err := ctx.Err(); err != nil {
		return Session{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.lookup(id)
	if !ok {
		return Session{}, fmt.Errorf("%w: %s", flashbooth.ErrSessionNotFound, id)
	}
	sess.Photos = slices.Clone(sess.Photos)
	return sess, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.lookup(id); !ok {
		return fmt.Errorf("%w: %s", flashbooth.ErrSessionNotFound, id)
	}
	delete(s.sessions, id)
	return nil
}

// lookup returns the live session with id, evicting it if expired.
// Caller must hold s.mu.
func (s *MemoryStore) lookup(id string) (Session, bool) {
	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, false
	}
	if s.now().Sub(sess.CreatedAt) > s.ttl {
		delete(s.sessions, id)
		return Session{}, false
	}
	return sess, true
}
