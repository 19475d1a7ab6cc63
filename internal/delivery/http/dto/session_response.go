package dto

import (
	"time"

	"github.com/google/uuid"

	"prepmate/internal/domain/interview"
)

type FeedbackResponse struct {
	Feedback        string  `json:"feedback"`
	Score           float64 `json:"score"`
	GrammarFeedback string  `json:"grammar_feedback"`
	KeywordFeedback string  `json:"keyword_feedback"`
}

type QuestionResponse struct {
	ID       uuid.UUID         `json:"id"`
	Type     string            `json:"type"`
	Text     string            `json:"text"`
	Answer   string            `json:"answer,omitempty"`
	Feedback *FeedbackResponse `json:"feedback,omitempty"`
}

type SessionResponse struct {
	ID                   uuid.UUID          `json:"id"`
	JobRole              string             `json:"job_role"`
	InterviewType        string             `json:"interview_type"`
	Tier                 string             `json:"tier"`
	Questions            []QuestionResponse `json:"questions"`
	CurrentQuestionIndex int                `json:"current_question_index"`
	Status               string             `json:"status"`
	CreatedAt            time.Time          `json:"created_at"`
}

func NewSessionResponse(s interview.Session) SessionResponse {
	questions := make([]QuestionResponse, 0, len(s.Questions))
	for _, q := range s.Questions {
		qr := QuestionResponse{
			ID:     q.ID,
			Type:   string(q.Type),
			Text:   q.Text,
			Answer: q.Answer,
		}
		if q.Feedback != nil {
			qr.Feedback = &FeedbackResponse{
				Feedback:        q.Feedback.Feedback,
				Score:           q.Feedback.Score,
				GrammarFeedback: q.Feedback.GrammarFeedback,
				KeywordFeedback: q.Feedback.KeywordFeedback,
			}
		}
		questions = append(questions, qr)
	}

	return SessionResponse{
		ID:                   s.ID,
		JobRole:              s.JobRole,
		InterviewType:        string(s.InterviewType),
		Tier:                 string(s.Tier),
		Questions:            questions,
		CurrentQuestionIndex: s.CurrentQuestionIndex,
		Status:               string(s.Status),
		CreatedAt:            s.CreatedAt,
	}
}
