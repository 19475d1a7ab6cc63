package ws

import (
	"prepmate/internal/domain/identity"
	"prepmate/internal/domain/interview"
	"prepmate/internal/usecase"
)

// Notifier adapts usecase results into hub events. A nil hub makes every
// publish a no-op, which keeps the usecases testable without a running hub.
type Notifier struct {
	hub *Hub
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub}
}

func (n *Notifier) SessionCompleted(s interview.Session) {
	if n == nil {
		return
	}
	n.hub.PublishSessionCompleted(s.ID, s.JobRole, usecase.AverageScore(s))
}

func (n *Notifier) TierUpgraded(id identity.Identity) {
	if n == nil {
		return
	}
	n.hub.PublishTierUpgraded(id)
}
