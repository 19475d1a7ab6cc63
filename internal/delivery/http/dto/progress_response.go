package dto

import (
	"time"

	"github.com/google/uuid"

	"prepmate/internal/domain/interview"
	"prepmate/internal/usecase"
)

type CompletedSessionResponse struct {
	ID            uuid.UUID `json:"id"`
	JobRole       string    `json:"job_role"`
	InterviewType string    `json:"interview_type"`
	QuestionCount int       `json:"question_count"`
	AverageScore  float64   `json:"average_score"`
	CreatedAt     time.Time `json:"created_at"`
}

type ScorePointResponse struct {
	Date         time.Time `json:"date"`
	AverageScore float64   `json:"average_score"`
	JobRole      string    `json:"job_role"`
}

type ProgressResponse struct {
	Sessions   []CompletedSessionResponse `json:"sessions"`
	TimeSeries []ScorePointResponse       `json:"time_series"`
}

func NewProgressResponse(sessions []interview.Session, points []usecase.ScorePoint) ProgressResponse {
	out := ProgressResponse{
		Sessions:   make([]CompletedSessionResponse, 0, len(sessions)),
		TimeSeries: make([]ScorePointResponse, 0, len(points)),
	}
	for _, s := range sessions {
		out.Sessions = append(out.Sessions, CompletedSessionResponse{
			ID:            s.ID,
			JobRole:       s.JobRole,
			InterviewType: string(s.InterviewType),
			QuestionCount: len(s.Questions),
			AverageScore:  usecase.AverageScore(s),
			CreatedAt:     s.CreatedAt,
		})
	}
	for _, pt := range points {
		out.TimeSeries = append(out.TimeSeries, ScorePointResponse{
			Date:         pt.Date,
			AverageScore: pt.AverageScore,
			JobRole:      pt.JobRole,
		})
	}
	return out
}
