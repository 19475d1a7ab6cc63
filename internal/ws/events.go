package ws

import (
	"time"

	"github.com/google/uuid"

	"prepmate/internal/domain/identity"
)

// Event payloads pushed over /ws. Type discriminates on the client side.
type SessionCompletedEvent struct {
	Type         string  `json:"type"`
	SessionID    string  `json:"session_id"`
	JobRole      string  `json:"job_role"`
	AverageScore float64 `json:"average_score"`
	Timestamp    string  `json:"timestamp"`
}

type TierUpgradedEvent struct {
	Type      string `json:"type"`
	Identity  string `json:"identity"`
	Timestamp string `json:"timestamp"`
}

func (h *Hub) PublishSessionCompleted(sessionID uuid.UUID, jobRole string, averageScore float64) {
	h.publishJSON(SessionCompletedEvent{
		Type:         "session_completed",
		SessionID:    sessionID.String(),
		JobRole:      jobRole,
		AverageScore: averageScore,
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Hub) PublishTierUpgraded(id identity.Identity) {
	h.publishJSON(TierUpgradedEvent{
		Type:      "tier_upgraded",
		Identity:  string(id),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
