package tier

import (
	"testing"
	"time"

	"prepmate/internal/domain/identity"
)

func TestEntitlementsFor_Free(t *testing.T) {
	e := EntitlementsFor(Free)
	if e.DailyLimit != 1 {
		t.Fatalf("expected daily limit 1, got %d", e.DailyLimit)
	}
	if e.QuestionsPerRound != 5 {
		t.Fatalf("expected 5 questions per round, got %d", e.QuestionsPerRound)
	}
	if e.AllowsRound("full") {
		t.Fatalf("free tier must not allow full rounds")
	}
	if e.AllowsRound("resume") {
		t.Fatalf("free tier must not allow resume rounds")
	}
	for _, r := range []string{"hr", "technical", "behavioral", "aptitude"} {
		if !e.AllowsRound(r) {
			t.Fatalf("free tier should allow %q", r)
		}
	}
}

func TestEntitlementsFor_Premium(t *testing.T) {
	e := EntitlementsFor(Premium)
	if e.DailyLimit != 10 {
		t.Fatalf("expected daily limit 10, got %d", e.DailyLimit)
	}
	if e.QuestionsPerRound != 20 {
		t.Fatalf("expected 20 questions per round, got %d", e.QuestionsPerRound)
	}
	if !e.AllowsRound("full") || !e.AllowsRound("resume") {
		t.Fatalf("premium tier should allow full and resume rounds")
	}
}

func TestParse(t *testing.T) {
	if _, ok := Parse("premium"); !ok {
		t.Fatalf("premium should parse")
	}
	if _, ok := Parse("gold"); ok {
		t.Fatalf("unknown tier should not parse")
	}
}

func TestHasReachedDailyLimit_NewIdentity(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	if HasReachedDailyLimit("user-1", Free, nil, now) {
		t.Fatalf("brand-new identity must not be at its limit")
	}
}

func TestHasReachedDailyLimit_FreeTierSingleSession(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	stamps := []SessionStamp{
		{Identity: "user-1", Tier: Free, CreatedAt: now.Add(-time.Hour)},
	}
	if !HasReachedDailyLimit("user-1", Free, stamps, now) {
		t.Fatalf("one free session today should exhaust the free limit")
	}
}

func TestHasReachedDailyLimit_IgnoresOtherDays(t *testing.T) {
	now := time.Date(2025, 6, 10, 0, 30, 0, 0, time.UTC)
	stamps := []SessionStamp{
		{Identity: "user-1", Tier: Free, CreatedAt: now.Add(-time.Hour)}, // yesterday
	}
	if HasReachedDailyLimit("user-1", Free, stamps, now) {
		t.Fatalf("yesterday's session must not count against today")
	}
}

func TestHasReachedDailyLimit_IgnoresOtherIdentities(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	stamps := []SessionStamp{
		{Identity: identity.Identity(identity.GuestID), Tier: Free, CreatedAt: now},
	}
	if HasReachedDailyLimit("user-1", Free, stamps, now) {
		t.Fatalf("guest sessions must not count against a named identity")
	}
}

func TestHasReachedDailyLimit_NormalizesStampOffsets(t *testing.T) {
	// Stored timestamptz values come back in whatever location the driver
	// decoded them in; the same instant must count no matter the offset.
	now := time.Date(2025, 6, 10, 23, 0, 0, 0, time.UTC)
	plus2 := time.FixedZone("UTC+2", 2*60*60)
	stamps := []SessionStamp{
		{Identity: "user-1", Tier: Free, CreatedAt: now.Add(-time.Hour).In(plus2)},
	}
	if !HasReachedDailyLimit("user-1", Free, stamps, now) {
		t.Fatalf("session created today (UTC) must count regardless of its offset")
	}

	// 23:30 UTC on the 9th reads as the 10th in UTC+2 but is still yesterday.
	stamps = []SessionStamp{
		{Identity: "user-1", Tier: Free, CreatedAt: time.Date(2025, 6, 9, 23, 30, 0, 0, time.UTC).In(plus2)},
	}
	if HasReachedDailyLimit("user-1", Free, stamps, now) {
		t.Fatalf("yesterday's session must not count just because its offset shifts the date")
	}
}

func TestHasReachedDailyLimit_CountsOnlySameTier(t *testing.T) {
	// A free user who upgrades mid-day starts premium with a clean count:
	// sessions are attributed to the tier active when they were started.
	now := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)
	stamps := []SessionStamp{
		{Identity: "user-1", Tier: Free, CreatedAt: now.Add(-3 * time.Hour)},
	}
	if HasReachedDailyLimit("user-1", Premium, stamps, now) {
		t.Fatalf("free-tier sessions must not count toward the premium limit")
	}
}

func TestHasReachedDailyLimit_PremiumAtLimit(t *testing.T) {
	now := time.Date(2025, 6, 10, 20, 0, 0, 0, time.UTC)
	stamps := make([]SessionStamp, 0, 10)
	for i := 0; i < 10; i++ {
		stamps = append(stamps, SessionStamp{
			Identity:  "user-1",
			Tier:      Premium,
			CreatedAt: now.Add(-time.Duration(i) * time.Minute),
		})
	}
	if !HasReachedDailyLimit("user-1", Premium, stamps, now) {
		t.Fatalf("ten premium sessions today should exhaust the premium limit")
	}
	if HasReachedDailyLimit("user-1", Premium, stamps[:9], now) {
		t.Fatalf("nine premium sessions should leave headroom")
	}
}
