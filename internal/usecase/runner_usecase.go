package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"

	"prepmate/internal/domain/interview"
)

// AnswerAnalyzer is the external feedback service.
type AnswerAnalyzer interface {
	AnalyzeAnswer(ctx context.Context, question, answer, resume string) (interview.Feedback, error)
}

// CompletionNotifier is told when a session reaches its terminal state.
type CompletionNotifier interface {
	SessionCompleted(s interview.Session)
}

type RunnerUsecase interface {
	SubmitAnswer(ctx context.Context, sessionID uuid.UUID, answer string) (interview.Session, error)
	Advance(ctx context.Context, sessionID uuid.UUID) (interview.Session, error)
}

// Runner drives a session through its question list one answer at a time.
// Answers and feedback are written exactly once per question, in index order;
// the index never regresses.
type Runner struct {
	sessions interview.Repository
	analyzer AnswerAnalyzer
	notifier CompletionNotifier
	logger   *log.Logger
}

func NewRunner(sessions interview.Repository, analyzer AnswerAnalyzer, notifier CompletionNotifier, logger *log.Logger) *Runner {
	return &Runner{sessions: sessions, analyzer: analyzer, notifier: notifier, logger: logger}
}

func (r *Runner) SubmitAnswer(ctx context.Context, sessionID uuid.UUID, answer string) (interview.Session, error) {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return interview.Session{}, ErrInvalidInput
	}

	s, err := r.load(ctx, sessionID)
	if err != nil {
		return interview.Session{}, err
	}
	if s.Status != interview.StatusInProgress {
		return interview.Session{}, ErrSessionCompleted
	}

	q, ok := s.CurrentQuestion()
	if !ok {
		return interview.Session{}, ErrSessionCompleted
	}
	if q.Answered() {
		return interview.Session{}, ErrAlreadyAnswered
	}

	// The feedback call happens before any mutation: a failed call leaves the
	// session exactly as it was, so the caller can retry.
	feedback, err := r.analyzer.AnalyzeAnswer(ctx, q.Text, answer, s.ResumeText)
	if err != nil {
		if r.logger != nil {
			r.logger.Printf("[Runner] feedback call failed session=%s index=%d err=%v", s.ID, s.CurrentQuestionIndex, err)
		}
		return interview.Session{}, ErrServiceUnavailable
	}

	s.Questions[s.CurrentQuestionIndex].Answer = answer
	s.Questions[s.CurrentQuestionIndex].Feedback = &feedback

	if err := r.sessions.Update(ctx, s); err != nil {
		return interview.Session{}, r.storeErr(err)
	}
	return s, nil
}

func (r *Runner) Advance(ctx context.Context, sessionID uuid.UUID) (interview.Session, error) {
	s, err := r.load(ctx, sessionID)
	if err != nil {
		return interview.Session{}, err
	}
	if s.Status != interview.StatusInProgress {
		return interview.Session{}, ErrSessionCompleted
	}

	q, ok := s.CurrentQuestion()
	if !ok {
		return interview.Session{}, ErrSessionCompleted
	}
	if !q.Answered() {
		return interview.Session{}, ErrAnswerPending
	}

	if s.CurrentQuestionIndex+1 < len(s.Questions) {
		s.CurrentQuestionIndex++
	} else {
		s.Status = interview.StatusCompleted
	}

	if err := r.sessions.Update(ctx, s); err != nil {
		return interview.Session{}, r.storeErr(err)
	}

	if s.Status == interview.StatusCompleted && r.notifier != nil {
		r.notifier.SessionCompleted(s)
	}
	return s, nil
}

func (r *Runner) load(ctx context.Context, sessionID uuid.UUID) (interview.Session, error) {
	s, err := r.sessions.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, interview.ErrNotFound) {
			return interview.Session{}, interview.ErrNotFound
		}
		return interview.Session{}, ErrInternal
	}
	return s, nil
}

func (r *Runner) storeErr(err error) error {
	if errors.Is(err, interview.ErrNotFound) {
		return interview.ErrNotFound
	}
	return ErrInternal
}
