package interview

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"prepmate/internal/domain/identity"
)

var ErrNotFound = errors.New("interview session not found")

// Repository persists sessions as whole documents. Update is a full replace
// keyed by id; sessions are never deleted.
type Repository interface {
	Create(ctx context.Context, s Session) error
	GetByID(ctx context.Context, id uuid.UUID) (Session, error)
	Update(ctx context.Context, s Session) error
	List(ctx context.Context) ([]Session, error)
	ListByIdentity(ctx context.Context, id identity.Identity) ([]Session, error)
}
