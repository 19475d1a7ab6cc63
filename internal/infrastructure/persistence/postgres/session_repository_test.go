package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"prepmate/internal/database"
	"prepmate/internal/domain/identity"
	"prepmate/internal/domain/interview"
	"prepmate/internal/domain/tier"
)

type fakeRow struct {
	vals []any
	err  error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != len(r.vals) {
		return fmt.Errorf("scan dest mismatch: %d vs %d", len(dest), len(r.vals))
	}
	for i := range dest {
		switch d := dest[i].(type) {
		case *uuid.UUID:
			*d = r.vals[i].(uuid.UUID)
		case *string:
			*d = r.vals[i].(string)
		case *[]byte:
			*d = r.vals[i].([]byte)
		case *int:
			*d = r.vals[i].(int)
		case *time.Time:
			*d = r.vals[i].(time.Time)
		default:
			return fmt.Errorf("unsupported scan type %T", dest[i])
		}
	}
	return nil
}

type fakeRows struct {
	rows []fakeRow
	pos  int
}

func (r *fakeRows) Close() {}
func (r *fakeRows) Err() error {
	return nil
}
func (r *fakeRows) Next() bool {
	if r.pos >= len(r.rows) {
		return false
	}
	r.pos++
	return true
}
func (r *fakeRows) Scan(dest ...any) error {
	return r.rows[r.pos-1].Scan(dest...)
}

// fakeSessionDB keeps the raw column values Exec received, in insertion
// order, and plays them back through Query/QueryRow.
type fakeSessionDB struct {
	order []uuid.UUID
	rows  map[uuid.UUID][]any
}

func newFakeSessionDB() *fakeSessionDB {
	return &fakeSessionDB{rows: map[uuid.UUID][]any{}}
}

func (db *fakeSessionDB) Ping(context.Context) error { return nil }
func (db *fakeSessionDB) Close() error               { return nil }
func (db *fakeSessionDB) SQLDB() *sql.DB             { return nil }

func (db *fakeSessionDB) Exec(_ context.Context, query string, args ...any) (int64, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	switch {
	case strings.HasPrefix(q, "insert into interview_sessions"):
		id := args[0].(uuid.UUID)
		db.order = append(db.order, id)
		db.rows[id] = append([]any(nil), args...)
		return 1, nil
	case strings.HasPrefix(q, "update interview_sessions"):
		id := args[0].(uuid.UUID)
		row, ok := db.rows[id]
		if !ok {
			return 0, nil
		}
		row[6] = args[1]
		row[7] = args[2]
		row[8] = args[3]
		return 1, nil
	default:
		return 0, fmt.Errorf("unexpected exec: %s", q)
	}
}

func (db *fakeSessionDB) QueryRow(_ context.Context, _ string, args ...any) database.Row {
	id := args[0].(uuid.UUID)
	row, ok := db.rows[id]
	if !ok {
		return fakeRow{err: sql.ErrNoRows}
	}
	return fakeRow{vals: row}
}

func (db *fakeSessionDB) Query(_ context.Context, query string, args ...any) (database.Rows, error) {
	q := strings.ToLower(query)
	out := &fakeRows{}
	for _, id := range db.order {
		row := db.rows[id]
		if strings.Contains(q, "where identity") && row[1].(string) != args[0].(string) {
			continue
		}
		out.rows = append(out.rows, fakeRow{vals: row})
	}
	return out, nil
}

func sampleSession(id identity.Identity) interview.Session {
	score := interview.Feedback{Feedback: "good structure", Score: 74, GrammarFeedback: "fine", KeywordFeedback: "mention tooling"}
	return interview.Session{
		ID:            uuid.New(),
		Identity:      id,
		JobRole:       "Backend Engineer",
		InterviewType: interview.RoundTechnical,
		ResumeText:    "five years of Go",
		Tier:          tier.Premium,
		Questions: []interview.Question{
			{ID: uuid.New(), Type: interview.QuestionTypeTechnical, Text: "q1", Answer: "a1", Feedback: &score},
			{ID: uuid.New(), Type: interview.QuestionTypeTechnical, Text: "q2"},
		},
		CurrentQuestionIndex: 1,
		CreatedAt:            time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC),
		Status:               interview.StatusInProgress,
	}
}

func TestSessionRepository_RoundTrip(t *testing.T) {
	repo := NewSessionRepository(newFakeSessionDB())
	ctx := context.Background()

	want := sampleSession("user-1")
	if err := repo.Create(ctx, want); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.GetByID(ctx, want.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch:\n got: %+v\nwant: %+v", got, want)
	}
}

func TestSessionRepository_GetMissing(t *testing.T) {
	repo := NewSessionRepository(newFakeSessionDB())

	_, err := repo.GetByID(context.Background(), uuid.New())
	if err != interview.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSessionRepository_UpdateReplacesDocument(t *testing.T) {
	repo := NewSessionRepository(newFakeSessionDB())
	ctx := context.Background()

	s := sampleSession("user-1")
	if err := repo.Create(ctx, s); err != nil {
		t.Fatalf("create: %v", err)
	}

	s.Questions[1].Answer = "a2"
	s.Status = interview.StatusCompleted
	if err := repo.Update(ctx, s); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := repo.GetByID(ctx, s.ID)
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}
	if got.Status != interview.StatusCompleted {
		t.Fatalf("status not replaced, got %s", got.Status)
	}
	if got.Questions[1].Answer != "a2" {
		t.Fatalf("questions document not replaced: %+v", got.Questions[1])
	}

	missing := sampleSession("user-1")
	if err := repo.Update(ctx, missing); err != interview.ErrNotFound {
		t.Fatalf("expected ErrNotFound for unknown session, got %v", err)
	}
}

func TestSessionRepository_ListByIdentityFilters(t *testing.T) {
	repo := NewSessionRepository(newFakeSessionDB())
	ctx := context.Background()

	mine := sampleSession("user-1")
	other := sampleSession("user-2")
	if err := repo.Create(ctx, mine); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Create(ctx, other); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.ListByIdentity(ctx, "user-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].ID != mine.ID {
		t.Fatalf("expected only user-1 sessions, got %+v", got)
	}
}
