package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/RogelioAlcantarRangel/Cabina-de-Fotograf-a/pkg/flashbooth"
)

const keyPrefix = "flashbooth:session:"

// kv is the subset of the Redis client used by RedisStore.
type kv interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisStore keeps sessions in Redis as JSON values with a TTL.
type RedisStore struct {
	rdb kv
	ttl time.Duration
	now func() time.Time
}

// NewRedisStore connects to the Redis server at url and verifies the
// connection. A non-positive ttl selects flashbooth.DefaultSessionTTL.
func NewRedisStore(ctx context.Context, url string, ttl time.Duration) (*RedisStore, func() error, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: failed to parse redis URL: %v", flashbooth.ErrInvalidConfig, err)
	}

	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return newRedisStore(rdb, ttl), rdb.Close, nil
}

func newRedisStore(rdb kv, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = flashbooth.DefaultSessionTTL
	}
	return &RedisStore{rdb: rdb, ttl: ttl, now: time.Now}
}

func sessionKey(id string) string {
	return keyPrefix + id
}

func (s *RedisStore) Save(ctx context.Context, photos []flashbooth.Photo, caption string) (Session, error) {
	sess := newSession(photos, caption, s.now())

	data, err := json.Marshal(sess)
	if err != nil {
		return Session{}, fmt.Errorf("failed to encode session: %w", err)
	}
	if err := s.rdb.Set(ctx, sessionKey(sess.ID), data, s.ttl).Err(); err != nil {
		return Session{}, fmt.Errorf("set failed: %w", err)
	}
	return sess, nil
}

func (s *RedisStore) Load(ctx context.Context, id string) (Session, error) {
	data, err := s.rdb.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Session{}, fmt.Errorf("%w: %s", flashbooth.ErrSessionNotFound, id)
		}
		return Session{}, fmt.Errorf("get failed: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return Session{}, fmt.Errorf("failed to decode session %s: %w", id, err)
	}
	return sess, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	n, err := s.rdb.Del(ctx, sessionKey(id)).Result()
	if err != nil {
		return fmt.Errorf("del failed: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", flashbooth.ErrSessionNotFound, id)
	}
	return nil
}
