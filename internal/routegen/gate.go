package routegen

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/bestway-backend/internal/pkg/logger"
)

// Gate admits at most one in-flight generation per user. The lock value is
// the owning generation id; only the owner may refresh or release it.
type Gate interface {
	TryAcquire(ctx context.Context, userID int64, owner string) (bool, error)
	Refresh(ctx context.Context, userID int64, owner string) (bool, error)
	Release(ctx context.Context, userID int64, owner string) error
	IsActive(ctx context.Context, userID int64) (bool, error)
}

// DefaultLockTTL covers the default worker budget for one generation plus queue wait.
const DefaultLockTTL = 10 * time.Minute

func LockKey(userID int64) string {
	return fmt.Sprintf("active_generation:%d", userID)
}

var (
	releaseScript = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`)
	// refreshScript extends the owner's lock, or re-takes it when it lapsed
	// and nobody else claimed the user in between.
	refreshScript = goredis.NewScript(`
local cur = redis.call("GET", KEYS[1])
if cur == ARGV[1] then
  redis.call("PEXPIRE", KEYS[1], ARGV[2])
  return 1
end
if not cur then
  redis.call("SET", KEYS[1], ARGV[1], "PX", ARGV[2])
  return 1
end
return 0
`)
)

type lockStore interface {
	goredis.Scripter
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *goredis.BoolCmd
	Exists(ctx context.Context, keys ...string) *goredis.IntCmd
}

type RedisGate struct {
	rdb lockStore
	ttl time.Duration
	log *logger.Logger
}

// NewRedisGate keeps locks under active_generation:{user_id}. ttl must outlive
// one queued and running generation; workers refresh it when a job starts.
func NewRedisGate(log *logger.Logger, rdb lockStore, ttl time.Duration) *RedisGate {
	if ttl <= 0 {
		ttl = DefaultLockTTL
	}
	return &RedisGate{rdb: rdb, ttl: ttl, log: log.With("component", "GenerationGate")}
}

func (g *RedisGate) TryAcquire(ctx context.Context, userID int64, owner string) (bool, error) {
	if owner == "" {
		return false, fmt.Errorf("acquire generation lock: owner required")
	}
	ok, err := g.rdb.SetNX(ctx, LockKey(userID), owner, g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("acquire generation lock: %w", err)
	}
	if !ok {
		g.log.Info("generation lock busy", "user", userID)
	}
	return ok, nil
}

// Refresh resets the ttl for owner. It reports false when another generation
// holds the user's lock.
func (g *RedisGate) Refresh(ctx context.Context, userID int64, owner string) (bool, error) {
	n, err := refreshScript.Run(ctx, g.rdb, []string{LockKey(userID)}, owner, g.ttl.Milliseconds()).Int()
	if err != nil {
		return false, fmt.Errorf("refresh generation lock: %w", err)
	}
	return n == 1, nil
}

// Release deletes the lock only while owner still holds it.
func (g *RedisGate) Release(ctx context.Context, userID int64, owner string) error {
	n, err := releaseScript.Run(ctx, g.rdb, []string{LockKey(userID)}, owner).Int()
	if err != nil {
		return fmt.Errorf("release generation lock: %w", err)
	}
	if n == 0 {
		g.log.Warn("generation lock not owned at release", "user", userID, "owner", owner)
	}
	return nil
}

func (g *RedisGate) IsActive(ctx context.Context, userID int64) (bool, error) {
	n, err := g.rdb.Exists(ctx, LockKey(userID)).Result()
	if err != nil {
		return false, fmt.Errorf("check generation lock: %w", err)
	}
	return n > 0, nil
}
