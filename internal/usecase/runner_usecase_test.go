package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"prepmate/internal/domain/interview"
	"prepmate/internal/domain/tier"
)

type mockAnalyzer struct {
	feedback interview.Feedback
	err      error
	calls    int
}

func (m *mockAnalyzer) AnalyzeAnswer(_ context.Context, _, _, _ string) (interview.Feedback, error) {
	m.calls++
	if m.err != nil {
		return interview.Feedback{}, m.err
	}
	return m.feedback, nil
}

type mockCompletionNotifier struct {
	completed []uuid.UUID
}

func (m *mockCompletionNotifier) SessionCompleted(s interview.Session) {
	m.completed = append(m.completed, s.ID)
}

func newRunnableSession(questions int) interview.Session {
	qs := make([]interview.Question, 0, questions)
	for i := 0; i < questions; i++ {
		qs = append(qs, interview.Question{
			ID:   uuid.New(),
			Type: interview.QuestionTypeTechnical,
			Text: "describe a production incident you debugged",
		})
	}
	return interview.Session{
		ID:                   uuid.New(),
		Identity:             "user-1",
		JobRole:              "Backend Engineer",
		InterviewType:        interview.RoundTechnical,
		Tier:                 tier.Free,
		Questions:            qs,
		CurrentQuestionIndex: 0,
		CreatedAt:            time.Now().UTC(),
		Status:               interview.StatusInProgress,
	}
}

func TestRunner_SubmitAnswer_WritesFeedbackOnce(t *testing.T) {
	s := newRunnableSession(2)
	repo := newMockSessionRepo(s)
	analyzer := &mockAnalyzer{feedback: interview.Feedback{Feedback: "solid", Score: 82}}

	uc := NewRunner(repo, analyzer, nil, nil)

	got, err := uc.SubmitAnswer(context.Background(), s.ID, "I traced it to a leaked connection")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	q := got.Questions[0]
	if q.Answer != "I traced it to a leaked connection" {
		t.Fatalf("answer not recorded: %q", q.Answer)
	}
	if q.Feedback == nil || q.Feedback.Score != 82 {
		t.Fatalf("feedback not recorded: %+v", q.Feedback)
	}
	if got.CurrentQuestionIndex != 0 {
		t.Fatalf("submit must not advance, index=%d", got.CurrentQuestionIndex)
	}

	_, err = uc.SubmitAnswer(context.Background(), s.ID, "second attempt")
	if !errors.Is(err, ErrAlreadyAnswered) {
		t.Fatalf("expected ErrAlreadyAnswered, got %v", err)
	}
	if analyzer.calls != 1 {
		t.Fatalf("expected 1 analyzer call, got %d", analyzer.calls)
	}
}

func TestRunner_Advance_RequiresFeedback(t *testing.T) {
	s := newRunnableSession(2)
	repo := newMockSessionRepo(s)

	uc := NewRunner(repo, &mockAnalyzer{}, nil, nil)

	_, err := uc.Advance(context.Background(), s.ID)
	if !errors.Is(err, ErrAnswerPending) {
		t.Fatalf("expected ErrAnswerPending, got %v", err)
	}
}

func TestRunner_FullSessionFlow(t *testing.T) {
	s := newRunnableSession(2)
	repo := newMockSessionRepo(s)
	notifier := &mockCompletionNotifier{}

	uc := NewRunner(repo, &mockAnalyzer{feedback: interview.Feedback{Score: 70}}, notifier, nil)
	ctx := context.Background()

	if _, err := uc.SubmitAnswer(ctx, s.ID, "answer one"); err != nil {
		t.Fatalf("submit 1: %v", err)
	}
	got, err := uc.Advance(ctx, s.ID)
	if err != nil {
		t.Fatalf("advance 1: %v", err)
	}
	if got.CurrentQuestionIndex != 1 {
		t.Fatalf("expected index 1, got %d", got.CurrentQuestionIndex)
	}
	if got.Status != interview.StatusInProgress {
		t.Fatalf("expected in-progress, got %s", got.Status)
	}

	if _, err := uc.SubmitAnswer(ctx, s.ID, "answer two"); err != nil {
		t.Fatalf("submit 2: %v", err)
	}
	got, err = uc.Advance(ctx, s.ID)
	if err != nil {
		t.Fatalf("advance 2: %v", err)
	}
	if got.Status != interview.StatusCompleted {
		t.Fatalf("expected completed, got %s", got.Status)
	}
	if got.CurrentQuestionIndex != 1 {
		t.Fatalf("index must not move past the last question, got %d", got.CurrentQuestionIndex)
	}
	if len(notifier.completed) != 1 || notifier.completed[0] != s.ID {
		t.Fatalf("expected one completion notification, got %v", notifier.completed)
	}

	if _, err := uc.Advance(ctx, s.ID); !errors.Is(err, ErrSessionCompleted) {
		t.Fatalf("expected ErrSessionCompleted after completion, got %v", err)
	}
	if _, err := uc.SubmitAnswer(ctx, s.ID, "too late"); !errors.Is(err, ErrSessionCompleted) {
		t.Fatalf("expected ErrSessionCompleted on submit, got %v", err)
	}
}

func TestRunner_AnalyzerFailureLeavesSessionUntouched(t *testing.T) {
	s := newRunnableSession(1)
	repo := newMockSessionRepo(s)

	uc := NewRunner(repo, &mockAnalyzer{err: errors.New("upstream 502")}, nil, nil)

	_, err := uc.SubmitAnswer(context.Background(), s.ID, "an answer")
	if !errors.Is(err, ErrServiceUnavailable) {
		t.Fatalf("expected ErrServiceUnavailable, got %v", err)
	}

	stored := repo.sessions[s.ID]
	if stored.Questions[0].Answer != "" || stored.Questions[0].Feedback != nil {
		t.Fatalf("session mutated on failed feedback call: %+v", stored.Questions[0])
	}
	if len(repo.updated) != 0 {
		t.Fatalf("expected no store writes, got %d", len(repo.updated))
	}
}

func TestRunner_EmptyAnswer_InvalidInput(t *testing.T) {
	s := newRunnableSession(1)
	uc := NewRunner(newMockSessionRepo(s), &mockAnalyzer{}, nil, nil)

	_, err := uc.SubmitAnswer(context.Background(), s.ID, "   ")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRunner_UnknownSession_NotFound(t *testing.T) {
	uc := NewRunner(newMockSessionRepo(), &mockAnalyzer{}, nil, nil)

	_, err := uc.SubmitAnswer(context.Background(), uuid.New(), "an answer")
	if !errors.Is(err, interview.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
