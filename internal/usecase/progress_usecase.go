package usecase

import (
	"context"
	"sort"
	"time"

	"prepmate/internal/domain/identity"
	"prepmate/internal/domain/interview"
)

type ScorePoint struct {
	Date         time.Time
	AverageScore float64
	JobRole      string
}

type ProgressUsecase interface {
	CompletedSessions(ctx context.Context, id identity.Identity) ([]interview.Session, error)
	TimeSeries(ctx context.Context, id identity.Identity) ([]ScorePoint, error)
}

// Progress is a read-only view over the session store.
type Progress struct {
	sessions interview.Repository
}

func NewProgress(sessions interview.Repository) *Progress {
	return &Progress{sessions: sessions}
}

// CompletedSessions returns the identity's finished sessions, newest first.
func (p *Progress) CompletedSessions(ctx context.Context, id identity.Identity) ([]interview.Session, error) {
	all, err := p.sessions.ListByIdentity(ctx, id)
	if err != nil {
		return nil, ErrInternal
	}

	completed := make([]interview.Session, 0, len(all))
	for _, s := range all {
		if s.Status == interview.StatusCompleted {
			completed = append(completed, s)
		}
	}
	sort.Slice(completed, func(i, j int) bool {
		return completed[i].CreatedAt.After(completed[j].CreatedAt)
	})
	return completed, nil
}

// TimeSeries returns one point per completed session, oldest first, for
// charting score progression.
func (p *Progress) TimeSeries(ctx context.Context, id identity.Identity) ([]ScorePoint, error) {
	completed, err := p.CompletedSessions(ctx, id)
	if err != nil {
		return nil, err
	}

	points := make([]ScorePoint, 0, len(completed))
	for i := len(completed) - 1; i >= 0; i-- {
		s := completed[i]
		points = append(points, ScorePoint{
			Date:         s.CreatedAt,
			AverageScore: AverageScore(s),
			JobRole:      s.JobRole,
		})
	}
	return points, nil
}

// AverageScore is the mean feedback score across a session's questions.
// Sessions with no questions score 0.
func AverageScore(s interview.Session) float64 {
	if len(s.Questions) == 0 {
		return 0
	}
	var total float64
	for _, q := range s.Questions {
		if q.Feedback != nil {
			total += q.Feedback.Score
		}
	}
	return total / float64(len(s.Questions))
}
