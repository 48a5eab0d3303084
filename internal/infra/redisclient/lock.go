package redisclient

import (
	"context"
	"fmt"
	"time"

	"eleva-booking/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the lock only when the caller still owns it, so
// a worker that outlived its TTL cannot release someone else's lock.
var releaseScript = redis.NewScript(`
	if redis.call("get", KEYS[1]) == ARGV[1] then
		return redis.call("del", KEYS[1])
	else
		return 0
	end
`)

// SlotLock serializes reservation attempts on a single (event, start
// time) pair. It reduces contention on the database upsert; correctness
// does not depend on it.
type SlotLock struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSlotLock(client *redis.Client, ttl time.Duration) *SlotLock {
	return &SlotLock{client: client, ttl: ttl}
}

func slotLockKey(eventID uuid.UUID, startTime time.Time) string {
	return fmt.Sprintf("slot_lock:%s:%d", eventID, startTime.UTC().Unix())
}

// Acquire returns a release func on success and ok=false when another
// request holds the lock. Redis being down is reported as an error so
// the caller can fall through to the database guard.
func (l *SlotLock) Acquire(ctx context.Context, eventID uuid.UUID, startTime time.Time) (release func(), ok bool, err error) {
	key := slotLockKey(eventID, startTime)
	token := uuid.NewString()

	acquired, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, false, errs.Wrap(err, "failed to acquire slot lock")
	}
	if !acquired {
		return nil, false, nil
	}

	release = func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = releaseScript.Run(releaseCtx, l.client, []string{key}, token).Err()
	}
	return release, true, nil
}
