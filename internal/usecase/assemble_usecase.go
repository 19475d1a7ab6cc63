package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"prepmate/internal/domain/identity"
	"prepmate/internal/domain/interview"
	"prepmate/internal/domain/tier"
	"prepmate/internal/infrastructure/genai"
)

// QuestionGenerator is the external question-generation service.
type QuestionGenerator interface {
	GenerateStandardQuestions(ctx context.Context, jobRole string, count int) (genai.StandardQuestions, error)
	GenerateResumeQuestions(ctx context.Context, resumeText string, count int) ([]string, error)
}

// QuestionCache holds generated standard batches keyed by role and count, so
// repeated setups for the same role skip the generator.
type QuestionCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

type AssembleInput struct {
	Identity      identity.Identity
	Tier          tier.Tier
	JobRole       string
	InterviewType interview.RoundType
	ResumeText    string
}

type AssembleUsecase interface {
	Assemble(ctx context.Context, in AssembleInput) (interview.Session, error)
}

type Assembler struct {
	sessions  interview.Repository
	generator QuestionGenerator
	cache     QuestionCache
	logger    *log.Logger
	now       func() time.Time
}

func NewAssembler(sessions interview.Repository, generator QuestionGenerator, cache QuestionCache, logger *log.Logger) *Assembler {
	return &Assembler{
		sessions:  sessions,
		generator: generator,
		cache:     cache,
		logger:    logger,
		now:       time.Now,
	}
}

func (a *Assembler) Assemble(ctx context.Context, in AssembleInput) (interview.Session, error) {
	jobRole := strings.TrimSpace(in.JobRole)
	if jobRole == "" && in.InterviewType != interview.RoundResume {
		return interview.Session{}, ErrInvalidInput
	}

	ent := tier.EntitlementsFor(in.Tier)
	if !ent.AllowsRound(string(in.InterviewType)) {
		return interview.Session{}, ErrRoundNotAllowed
	}

	if err := a.checkDailyLimit(ctx, in.Identity, in.Tier); err != nil {
		return interview.Session{}, err
	}

	questions, err := a.buildQuestionList(ctx, jobRole, in, ent.QuestionsPerRound)
	if err != nil {
		return interview.Session{}, err
	}
	if len(questions) == 0 {
		return interview.Session{}, ErrGenerationFailed
	}

	s := interview.Session{
		ID:                   uuid.New(),
		Identity:             in.Identity,
		JobRole:              jobRole,
		InterviewType:        in.InterviewType,
		ResumeText:           in.ResumeText,
		Tier:                 in.Tier,
		Questions:            questions,
		CurrentQuestionIndex: 0,
		CreatedAt:            a.now().UTC(),
		Status:               interview.StatusInProgress,
	}

	if err := a.sessions.Create(ctx, s); err != nil {
		if a.logger != nil {
			a.logger.Printf("[Assembler] session create failed id=%s err=%v", s.ID, err)
		}
		return interview.Session{}, ErrInternal
	}
	return s, nil
}

func (a *Assembler) checkDailyLimit(ctx context.Context, id identity.Identity, t tier.Tier) error {
	existing, err := a.sessions.ListByIdentity(ctx, id)
	if err != nil {
		return ErrInternal
	}

	stamps := make([]tier.SessionStamp, 0, len(existing))
	for _, s := range existing {
		stamps = append(stamps, tier.SessionStamp{
			Identity:  s.Identity,
			Tier:      s.Tier,
			CreatedAt: s.CreatedAt,
		})
	}
	if tier.HasReachedDailyLimit(id, t, stamps, a.now().UTC()) {
		return ErrLimitReached
	}
	return nil
}

// buildQuestionList assembles the ordered list for the session: standard
// categories first (in the fixed hr, technical, behavioral, aptitude order for
// full rounds), resume-based questions prepended when applicable.
func (a *Assembler) buildQuestionList(ctx context.Context, jobRole string, in AssembleInput, count int) ([]interview.Question, error) {
	questions := make([]interview.Question, 0, count)

	if in.InterviewType != interview.RoundResume {
		batch, err := a.standardQuestions(ctx, jobRole, count)
		if err != nil {
			return nil, ErrServiceUnavailable
		}

		byType := map[interview.QuestionType][]string{
			interview.QuestionTypeHR:         batch.HRQuestions,
			interview.QuestionTypeTechnical:  batch.TechnicalQuestions,
			interview.QuestionTypeBehavioral: batch.BehavioralQuestions,
			interview.QuestionTypeAptitude:   batch.AptitudeQuestions,
		}

		if in.InterviewType == interview.RoundFull {
			for _, qt := range interview.StandardRoundOrder {
				questions = appendQuestions(questions, qt, byType[qt])
			}
		} else {
			qt := interview.QuestionType(in.InterviewType)
			questions = appendQuestions(questions, qt, byType[qt])
		}
	}

	wantsResume := in.InterviewType == interview.RoundResume || in.InterviewType == interview.RoundFull
	if wantsResume && strings.TrimSpace(in.ResumeText) != "" {
		resumeQs, err := a.generator.GenerateResumeQuestions(ctx, in.ResumeText, count)
		if err != nil {
			return nil, ErrServiceUnavailable
		}
		prefix := make([]interview.Question, 0, len(resumeQs)+len(questions))
		prefix = appendQuestions(prefix, interview.QuestionTypeResume, resumeQs)
		questions = append(prefix, questions...)
	}

	return questions, nil
}

func (a *Assembler) standardQuestions(ctx context.Context, jobRole string, count int) (genai.StandardQuestions, error) {
	key := questionBatchCacheKey(jobRole, count)

	if a.cache != nil {
		var cached genai.StandardQuestions
		hit, err := a.cache.GetJSON(ctx, key, &cached)
		if err == nil && hit {
			if a.logger != nil {
				a.logger.Printf("[Assembler] Cache HIT: %s", key)
			}
			return cached, nil
		}
	}

	batch, err := a.generator.GenerateStandardQuestions(ctx, jobRole, count)
	if err != nil {
		return genai.StandardQuestions{}, err
	}

	if a.cache != nil {
		_ = a.cache.SetJSON(ctx, key, batch, 0)
	}
	return batch, nil
}

func appendQuestions(dst []interview.Question, qt interview.QuestionType, texts []string) []interview.Question {
	for _, text := range texts {
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		dst = append(dst, interview.Question{
			ID:   uuid.New(),
			Type: qt,
			Text: text,
		})
	}
	return dst
}

func questionBatchCacheKey(jobRole string, count int) string {
	return fmt.Sprintf("questions:standard:%s:%d", strings.ToLower(strings.TrimSpace(jobRole)), count)
}
