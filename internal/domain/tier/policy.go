package tier

import (
	"time"

	"prepmate/internal/domain/identity"
)

type Tier string

const (
	Free    Tier = "free"
	Premium Tier = "premium"
)

func Parse(raw string) (Tier, bool) {
	switch Tier(raw) {
	case Free, Premium:
		return Tier(raw), true
	default:
		return "", false
	}
}

// Entitlements is what a tier buys: how many interviews per calendar day, how
// many questions each round carries, and which round types may be selected.
type Entitlements struct {
	DailyLimit        int
	QuestionsPerRound int
	AllowedRoundTypes []string
}

var (
	freeEntitlements = Entitlements{
		DailyLimit:        1,
		QuestionsPerRound: 5,
		AllowedRoundTypes: []string{"hr", "technical", "behavioral", "aptitude"},
	}
	premiumEntitlements = Entitlements{
		DailyLimit:        10,
		QuestionsPerRound: 20,
		AllowedRoundTypes: []string{"hr", "technical", "behavioral", "aptitude", "full", "resume"},
	}
)

func EntitlementsFor(t Tier) Entitlements {
	if t == Premium {
		return premiumEntitlements
	}
	return freeEntitlements
}

func (e Entitlements) AllowsRound(round string) bool {
	for _, r := range e.AllowedRoundTypes {
		if r == round {
			return true
		}
	}
	return false
}

// SessionStamp is the slice of a stored session the daily-limit check needs.
type SessionStamp struct {
	Identity  identity.Identity
	Tier      Tier
	CreatedAt time.Time
}

// HasReachedDailyLimit reports whether the identity has already started its
// allowed number of interviews today. "Today" is a UTC calendar-day
// comparison, not a rolling 24h window, and only sessions whose frozen tier
// matches the current tier count. Stored timestamps may carry any offset
// (pgx decodes timestamptz in the server's location), so both sides are
// normalized to UTC before formatting.
func HasReachedDailyLimit(id identity.Identity, t Tier, sessions []SessionStamp, now time.Time) bool {
	limit := EntitlementsFor(t).DailyLimit
	today := now.UTC().Format("2006-01-02")

	count := 0
	for _, s := range sessions {
		if s.Identity != id || s.Tier != t {
			continue
		}
		if s.CreatedAt.UTC().Format("2006-01-02") != today {
			continue
		}
		count++
		if count >= limit {
			return true
		}
	}
	return false
}
