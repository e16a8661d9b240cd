package service

import (
	"sync"
	"time"

	"siggibot/internal/core/domain"

	"github.com/rs/zerolog/log"
)

// UsageTracker counts paid answers per user and resets at local midnight. A limit of zero or less
// disables it.
type UsageTracker struct {
	mu    sync.Mutex
	users map[string]int
	limit int
	reset time.Time
	now   func() time.Time
}

func NewUsageTracker(limit int) *UsageTracker {
	t := &UsageTracker{
		users: make(map[string]int),
		limit: limit,
		now:   time.Now,
	}
	t.reset = nextResetTime(t.now())

	return t
}

const overLimit = "You have used all %d answers for today. The limit resets in %s."

func (t *UsageTracker) CheckLimit(userID string) error {
	if t.limit <= 0 {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.rollover()
	if t.users[userID] < t.limit {
		return nil
	}

	log.Debug().Str("userId", userID).Int("limit", t.limit).Msg("daily limit exceeded")

	return domain.NewValidationError(overLimit, t.limit, t.reset.Sub(now).Truncate(time.Minute))
}

func (t *UsageTracker) AddUsage(userID string) {
	if t.limit <= 0 {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.rollover()
	t.users[userID]++
}

// rollover clears the counters once the reset time has passed. Callers hold the lock.
func (t *UsageTracker) rollover() time.Time {
	now := t.now()
	if !now.Before(t.reset) {
		log.Debug().Time("reset", t.reset).Msg("resetting daily limit")
		t.users = make(map[string]int)
		t.reset = nextResetTime(now)
	}

	return now
}

func nextResetTime(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
}
