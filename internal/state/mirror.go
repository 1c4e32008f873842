package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	keyPrefix     = "tally:page:"
	mirrorTimeout = 500 * time.Millisecond
)

// Mirror copies store snapshots to Redis so a restarted client (or a second
// terminal) can show the last known page before its first fetch completes.
// A nil *Mirror is a no-op. Redis failures are logged and never surface to
// callers.
type Mirror struct {
	redis *redis.Client
	ttl   time.Duration
	log   logrus.FieldLogger
}

// NewMirror wraps client. A non-positive ttl disables writes.
func NewMirror(client *redis.Client, ttl time.Duration, log logrus.FieldLogger) *Mirror {
	if ttl < 0 {
		ttl = 0
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Mirror{redis: client, ttl: ttl, log: log.WithField("component", "cache")}
}

// Dial connects to addr and verifies the connection with PING.
func Dial(ctx context.Context, addr string, ttl time.Duration, log logrus.FieldLogger) (*Mirror, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, ContextTimeoutEnabled: true})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return NewMirror(client, ttl, log), nil
}

func (m *Mirror) load(ctx context.Context, collection string) (Snapshot, bool) {
	if m == nil || m.redis == nil {
		return Snapshot{}, false
	}
	ctx, cancel := context.WithTimeout(ctx, mirrorTimeout)
	defer cancel()
	data, err := m.redis.Get(ctx, cacheKey(collection)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			m.log.WithError(err).WithField("collection", collection).Warn("cache read failed")
		}
		return Snapshot{}, false
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		m.log.WithError(err).WithField("collection", collection).Warn("dropping corrupt cache entry")
		_ = m.redis.Del(ctx, cacheKey(collection)).Err()
		return Snapshot{}, false
	}
	return snap, true
}

func (m *Mirror) store(ctx context.Context, snap Snapshot) {
	if m == nil || m.redis == nil || m.ttl == 0 {
		return
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, mirrorTimeout)
	defer cancel()
	if err := m.redis.Set(ctx, cacheKey(snap.Collection), data, m.ttl).Err(); err != nil {
		m.log.WithError(err).WithField("collection", snap.Collection).Warn("cache write failed")
	}
}

func (m *Mirror) evict(ctx context.Context, collection string) {
	if m == nil || m.redis == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, mirrorTimeout)
	defer cancel()
	_, _ = m.redis.Del(ctx, cacheKey(collection)).Result()
}

// Close closes the Redis client.
func (m *Mirror) Close() error {
	if m == nil || m.redis == nil {
		return nil
	}
	return m.redis.Close()
}

func cacheKey(collection string) string {
	return keyPrefix + collection
}
