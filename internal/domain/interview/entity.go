package interview

import (
	"time"

	"github.com/google/uuid"

	"prepmate/internal/domain/identity"
	"prepmate/internal/domain/tier"
)

type QuestionType string

const (
	QuestionTypeHR         QuestionType = "hr"
	QuestionTypeTechnical  QuestionType = "technical"
	QuestionTypeBehavioral QuestionType = "behavioral"
	QuestionTypeAptitude   QuestionType = "aptitude"
	QuestionTypeResume     QuestionType = "resume"
)

// RoundType is the interview configuration selected at setup time. It covers
// the four standard question types plus the composite "full" round and the
// resume-only round.
type RoundType string

const (
	RoundFull       RoundType = "full"
	RoundHR         RoundType = "hr"
	RoundTechnical  RoundType = "technical"
	RoundBehavioral RoundType = "behavioral"
	RoundAptitude   RoundType = "aptitude"
	RoundResume     RoundType = "resume"
)

// StandardRoundOrder is the fixed category order for a full interview.
var StandardRoundOrder = []QuestionType{
	QuestionTypeHR,
	QuestionTypeTechnical,
	QuestionTypeBehavioral,
	QuestionTypeAptitude,
}

type Status string

const (
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// Feedback is the opaque payload returned by the answer-analysis service.
// Only Score is interpreted locally (progress aggregation).
type Feedback struct {
	Feedback        string  `json:"feedback"`
	Score           float64 `json:"score"`
	GrammarFeedback string  `json:"grammarFeedback"`
	KeywordFeedback string  `json:"keywordFeedback"`
}

type Question struct {
	ID       uuid.UUID    `json:"id"`
	Type     QuestionType `json:"type"`
	Text     string       `json:"text"`
	Answer   string       `json:"answer,omitempty"`
	Feedback *Feedback    `json:"feedback,omitempty"`
}

func (q Question) Answered() bool {
	return q.Feedback != nil
}

// Session is one complete interview attempt. Tier is frozen at creation time
// so daily-limit accounting stays attributed to the tier that started the
// session, even if the identity upgrades later.
type Session struct {
	ID                   uuid.UUID         `json:"id"`
	Identity             identity.Identity `json:"identity"`
	JobRole              string            `json:"jobRole"`
	InterviewType        RoundType         `json:"interviewType"`
	ResumeText           string            `json:"resumeText,omitempty"`
	Tier                 tier.Tier         `json:"tier"`
	Questions            []Question        `json:"questions"`
	CurrentQuestionIndex int               `json:"currentQuestionIndex"`
	CreatedAt            time.Time         `json:"createdAt"`
	Status               Status            `json:"status"`
}

// CurrentQuestion returns the question awaiting an answer. The second return
// is false once the session has moved past the last question.
func (s Session) CurrentQuestion() (Question, bool) {
	if s.CurrentQuestionIndex < 0 || s.CurrentQuestionIndex >= len(s.Questions) {
		return Question{}, false
	}
	return s.Questions[s.CurrentQuestionIndex], true
}
