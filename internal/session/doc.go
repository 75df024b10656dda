// Package session stores photo strips so they can be reloaded for a limited
// time after capture.
//
// Two Store implementations are provided:
//   - MemoryStore: process-local, used by the CLI and tests
//   - RedisStore: shared across server instances, expiry enforced by Redis
//
// Sessions expire after their TTL (24h by default). Loading or deleting an
// expired or unknown session returns flashbooth.ErrSessionNotFound.
package session
