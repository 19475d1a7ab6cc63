package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"prepmate/internal/domain/identity"
	"prepmate/internal/domain/interview"
)

func nextBroadcast(t *testing.T, h *Hub) []byte {
	t.Helper()
	select {
	case b := <-h.broadcast:
		return b
	case <-time.After(time.Second):
		t.Fatalf("no event was broadcast")
		return nil
	}
}

func TestHub_PublishSessionCompleted(t *testing.T) {
	h := NewHub(nil)
	sessionID := uuid.New()

	h.PublishSessionCompleted(sessionID, "Backend Engineer", 7.5)

	var evt SessionCompletedEvent
	if err := json.Unmarshal(nextBroadcast(t, h), &evt); err != nil {
		t.Fatalf("unmarshal event: %v", err)
	}
	if evt.Type != "session_completed" {
		t.Fatalf("expected type session_completed, got %q", evt.Type)
	}
	if evt.SessionID != sessionID.String() {
		t.Fatalf("expected session id %s, got %s", sessionID, evt.SessionID)
	}
	if evt.JobRole != "Backend Engineer" {
		t.Fatalf("unexpected job role %q", evt.JobRole)
	}
	if evt.AverageScore != 7.5 {
		t.Fatalf("expected average score 7.5, got %v", evt.AverageScore)
	}
	if _, err := time.Parse(time.RFC3339, evt.Timestamp); err != nil {
		t.Fatalf("timestamp is not RFC3339: %v", err)
	}
}

func TestHub_PublishTierUpgraded(t *testing.T) {
	h := NewHub(nil)

	h.PublishTierUpgraded(identity.Identity("user-42"))

	var evt TierUpgradedEvent
	if err := json.Unmarshal(nextBroadcast(t, h), &evt); err != nil {
		t.Fatalf("unmarshal event: %v", err)
	}
	if evt.Type != "tier_upgraded" {
		t.Fatalf("expected type tier_upgraded, got %q", evt.Type)
	}
	if evt.Identity != "user-42" {
		t.Fatalf("unexpected identity %q", evt.Identity)
	}
}

func TestNotifier_SessionCompletedUsesInjectedHub(t *testing.T) {
	h := NewHub(nil)
	n := NewNotifier(h)

	s := interview.Session{
		ID:      uuid.New(),
		JobRole: "Data Analyst",
		Questions: []interview.Question{
			{Feedback: &interview.Feedback{Score: 6}},
			{Feedback: &interview.Feedback{Score: 8}},
		},
	}
	n.SessionCompleted(s)

	var evt SessionCompletedEvent
	if err := json.Unmarshal(nextBroadcast(t, h), &evt); err != nil {
		t.Fatalf("unmarshal event: %v", err)
	}
	if evt.SessionID != s.ID.String() {
		t.Fatalf("expected session id %s, got %s", s.ID, evt.SessionID)
	}
	if evt.AverageScore != 7 {
		t.Fatalf("expected average score 7, got %v", evt.AverageScore)
	}
}

func TestNotifier_NilHubIsNoOp(t *testing.T) {
	n := NewNotifier(nil)

	// Must not panic.
	n.SessionCompleted(interview.Session{ID: uuid.New()})
	n.TierUpgraded(identity.Identity("user-1"))
}
