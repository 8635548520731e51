// Package quota enforces the daily swipe cap for free-tier users. The day
// boundary is a local calendar-day key, not elapsed time, so crossing
// midnight resets usage on the very next check.
package quota

import "time"

// Tier is the user's subscription level.
type Tier string

const (
	TierFree    Tier = "free"
	TierPremium Tier = "premium"
)

const (
	// FreeDailySwipeLimit is the number of swipes a free user gets per day.
	FreeDailySwipeLimit = 5
	// Unlimited is the RemainingToday sentinel for premium users.
	Unlimited = -1
)

// dayKeyFormat is the calendar-day key stored alongside the counter.
const dayKeyFormat = "2006-01-02"

// State is the persisted swipe-quota record.
type State struct {
	DailySwipesUsed int    `json:"dailySwipesUsed"`
	LastSwipeDate   string `json:"lastSwipeDate"`
	Tier            Tier   `json:"subscriptionTier"`
}

// Manager applies the quota rules against an injectable clock so day
// rollover is testable.
type Manager struct {
	now func() time.Time
}

// NewManager creates a quota manager. A nil clock defaults to time.Now.
func NewManager(now func() time.Time) *Manager {
	if now == nil {
		now = time.Now
	}
	return &Manager{now: now}
}

// Today returns the current local calendar-day key.
func (m *Manager) Today() string {
	return m.now().Format(dayKeyFormat)
}

// Normalize applies the day-boundary reset: if the stored day key differs
// from today, usage drops to zero. Also fills a missing tier with free.
func (m *Manager) Normalize(s State) State {
	if s.Tier == "" {
		s.Tier = TierFree
	}
	if today := m.Today(); s.LastSwipeDate != today {
		s.DailySwipesUsed = 0
		s.LastSwipeDate = today
	}
	return s
}

// CanSwipe reports whether another swipe is allowed right now. Premium is
// always allowed; free is capped per day.
func (m *Manager) CanSwipe(s State) bool {
	s = m.Normalize(s)
	if s.Tier == TierPremium {
		return true
	}
	return s.DailySwipesUsed < FreeDailySwipeLimit
}

// RecordSwipe resets on day rollover, then increments usage. The cap is
// checked before incrementing, so DailySwipesUsed can never pass the limit.
func (m *Manager) RecordSwipe(s State) (State, error) {
	s = m.Normalize(s)
	if s.Tier != TierPremium && s.DailySwipesUsed >= FreeDailySwipeLimit {
		return s, ErrQuotaExhausted
	}
	s.DailySwipesUsed++
	return s, nil
}

// RemainingToday returns how many swipes are left today, or Unlimited for
// premium users.
func (m *Manager) RemainingToday(s State) int {
	s = m.Normalize(s)
	if s.Tier == TierPremium {
		return Unlimited
	}
	remaining := FreeDailySwipeLimit - s.DailySwipesUsed
	if remaining < 0 {
		return 0
	}
	return remaining
}
