package routegen

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/bestway-backend/internal/pkg/logger"
)

const dayLayout = "2006-01-02"

// QuotaSlot identifies one reserved provider call and the day it was charged to.
type QuotaSlot struct {
	Day string
}

// QuotaTracker enforces the daily provider-call budget. One slot is reserved
// per logical generation before any network I/O; failed generations refund it.
type QuotaTracker interface {
	Reserve(ctx context.Context) (QuotaSlot, error)
	Refund(ctx context.Context, slot QuotaSlot) error
	Used(ctx context.Context) (int, error)
}

func quotaExceeded(max int) error {
	return newError(KindQuotaExceeded, "quota.reserve", nil, "daily limit of %d provider calls reached", max)
}

// LocalQuota is a per-process counter that resets when the calendar date changes.
type LocalQuota struct {
	mu    sync.Mutex
	max   int
	count int
	day   string
	now   func() time.Time
}

func NewLocalQuota(max int, now func() time.Time) *LocalQuota {
	if now == nil {
		now = time.Now
	}
	return &LocalQuota{max: max, now: now}
}

func (q *LocalQuota) rollLocked() string {
	today := q.now().Format(dayLayout)
	if q.day != today {
		q.day = today
		q.count = 0
	}
	return today
}

func (q *LocalQuota) Reserve(ctx context.Context) (QuotaSlot, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	day := q.rollLocked()
	if q.count >= q.max {
		return QuotaSlot{}, quotaExceeded(q.max)
	}
	q.count++
	return QuotaSlot{Day: day}, nil
}

func (q *LocalQuota) Refund(ctx context.Context, slot QuotaSlot) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	day := q.rollLocked()
	// a slot from a previous day has already been reset away
	if slot.Day == day && q.count > 0 {
		q.count--
	}
	return nil
}

func (q *LocalQuota) Used(ctx context.Context) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.rollLocked()
	return q.count, nil
}

var (
	reserveScript = goredis.NewScript(`
local n = redis.call('INCR', KEYS[1])
if n == 1 then
  redis.call('PEXPIRE', KEYS[1], ARGV[2])
end
if n > tonumber(ARGV[1]) then
  redis.call('DECR', KEYS[1])
  return -1
end
return n
`)
	refundScript = goredis.NewScript(`
local n = tonumber(redis.call('GET', KEYS[1]) or '0')
if n > 0 then
  return redis.call('DECR', KEYS[1])
end
return 0
`)
)

type quotaStore interface {
	goredis.Scripter
	Get(ctx context.Context, key string) *goredis.StringCmd
}

// SharedQuota keeps the counter in redis so every worker shares one daily budget.
type SharedQuota struct {
	rdb    quotaStore
	max    int
	prefix string
	keyTTL time.Duration
	now    func() time.Time
	log    *logger.Logger
}

func NewSharedQuota(log *logger.Logger, rdb quotaStore, max int, now func() time.Time) *SharedQuota {
	if now == nil {
		now = time.Now
	}
	return &SharedQuota{
		rdb:    rdb,
		max:    max,
		prefix: "generation_quota:",
		keyTTL: 48 * time.Hour,
		now:    now,
		log:    log.With("component", "SharedQuota"),
	}
}

func (q *SharedQuota) key(day string) string { return q.prefix + day }

func (q *SharedQuota) Reserve(ctx context.Context) (QuotaSlot, error) {
	day := q.now().Format(dayLayout)
	if q.max <= 0 {
		return QuotaSlot{}, quotaExceeded(q.max)
	}
	n, err := reserveScript.Run(ctx, q.rdb, []string{q.key(day)}, q.max, q.keyTTL.Milliseconds()).Int64()
	if err != nil {
		return QuotaSlot{}, fmt.Errorf("reserve quota: %w", err)
	}
	if n < 0 {
		q.log.Warn("daily provider quota exhausted", "day", day, "max", q.max)
		return QuotaSlot{}, quotaExceeded(q.max)
	}
	return QuotaSlot{Day: day}, nil
}

func (q *SharedQuota) Refund(ctx context.Context, slot QuotaSlot) error {
	if slot.Day == "" {
		return nil
	}
	if err := refundScript.Run(ctx, q.rdb, []string{q.key(slot.Day)}).Err(); err != nil {
		return fmt.Errorf("refund quota: %w", err)
	}
	return nil
}

func (q *SharedQuota) Used(ctx context.Context) (int, error) {
	n, err := q.rdb.Get(ctx, q.key(q.now().Format(dayLayout))).Int()
	if errors.Is(err, goredis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return n, nil
}
