package redisstore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Store wraps the shared redis client. It carries the cross-request
// concerns the database does not: per-session chat locks, the fixed-window
// rate limiter and the health ping. All callers tolerate a nil *Store —
// without redis the lock and limiter degrade to no-ops.
type Store struct {
	client *redis.Client
}

func New(addr, password string, db int) *Store {
	return &Store{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
	}
}

func (s *Store) Ping(ctx context.Context) error {
	if s == nil {
		return nil
	}
	return s.client.Ping(ctx).Err()
}

func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	return s.client.Close()
}

// releaseScript deletes the lock only while it still holds the caller's
// token, so a stale release can never remove another holder's lock.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// AcquireSessionLock serializes turn appends for one session id. The TTL
// bounds how long a crashed holder can block the session.
func (s *Store) AcquireSessionLock(ctx context.Context, sessionID string, ttl time.Duration) (release func(), ok bool, err error) {
	if s == nil {
		return func() {}, true, nil
	}
	key := "chat:lock:" + sessionID
	token := uuid.NewString()

	ok, err = s.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}
	release = func() {
		// best effort; the TTL reclaims the key if this fails
		_, _ = releaseScript.Run(context.Background(), s.client, []string{key}, token).Result()
	}
	return release, true, nil
}

// Allow implements a fixed-window counter: at most limit calls per window
// for the given key.
func (s *Store) Allow(ctx context.Context, bucket, id string, limit int, window time.Duration) (bool, error) {
	if s == nil || limit <= 0 {
		return true, nil
	}
	key := fmt.Sprintf("rl:%s:%s:%d", bucket, id, time.Now().Unix()/int64(window.Seconds()))
	n, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if n == 1 {
		_ = s.client.Expire(ctx, key, window).Err()
	}
	return n <= int64(limit), nil
}
