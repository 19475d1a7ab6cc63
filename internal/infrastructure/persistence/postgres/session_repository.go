package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"prepmate/internal/database"
	"prepmate/internal/domain/identity"
	"prepmate/internal/domain/interview"
)

// SessionRepository stores each session as one row with the question list as
// a JSONB document, replaced wholesale on every update.
type SessionRepository struct {
	db database.DB
}

func NewSessionRepository(db database.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, s interview.Session) error {
	questions, err := json.Marshal(s.Questions)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO interview_sessions
			(id, identity, job_role, interview_type, resume_text, tier, questions, current_question_index, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		s.ID, string(s.Identity), s.JobRole, string(s.InterviewType), s.ResumeText,
		string(s.Tier), questions, s.CurrentQuestionIndex, string(s.Status), s.CreatedAt,
	)
	return err
}

func (r *SessionRepository) GetByID(ctx context.Context, id uuid.UUID) (interview.Session, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, identity, job_role, interview_type, resume_text, tier, questions, current_question_index, status, created_at
		 FROM interview_sessions
		 WHERE id = $1`,
		id,
	)
	return scanSession(row)
}

func (r *SessionRepository) Update(ctx context.Context, s interview.Session) error {
	questions, err := json.Marshal(s.Questions)
	if err != nil {
		return err
	}

	affected, err := r.db.Exec(ctx,
		`UPDATE interview_sessions
		 SET questions = $2, current_question_index = $3, status = $4
		 WHERE id = $1`,
		s.ID, questions, s.CurrentQuestionIndex, string(s.Status),
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return interview.ErrNotFound
	}
	return nil
}

func (r *SessionRepository) List(ctx context.Context) ([]interview.Session, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, identity, job_role, interview_type, resume_text, tier, questions, current_question_index, status, created_at
		 FROM interview_sessions
		 ORDER BY created_at ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSessions(rows)
}

func (r *SessionRepository) ListByIdentity(ctx context.Context, id identity.Identity) ([]interview.Session, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, identity, job_role, interview_type, resume_text, tier, questions, current_question_index, status, created_at
		 FROM interview_sessions
		 WHERE identity = $1
		 ORDER BY created_at ASC`,
		string(id),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSessions(rows)
}

type sessionRow interface {
	Scan(dest ...any) error
}

func scanSession(row sessionRow) (interview.Session, error) {
	var (
		s         interview.Session
		ident     string
		itype     string
		tierRaw   string
		questions []byte
		status    string
	)
	err := row.Scan(&s.ID, &ident, &s.JobRole, &itype, &s.ResumeText, &tierRaw,
		&questions, &s.CurrentQuestionIndex, &status, &s.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return interview.Session{}, interview.ErrNotFound
		}
		return interview.Session{}, err
	}

	if err := json.Unmarshal(questions, &s.Questions); err != nil {
		return interview.Session{}, err
	}
	s.Identity = identity.Identity(ident)
	s.InterviewType = interview.RoundType(itype)
	s.Tier = tierFromRow(tierRaw)
	s.Status = interview.Status(status)
	return s, nil
}

func collectSessions(rows database.Rows) ([]interview.Session, error) {
	out := make([]interview.Session, 0)
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
