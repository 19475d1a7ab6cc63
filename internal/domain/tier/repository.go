package tier

import (
	"context"

	"prepmate/internal/domain/identity"
)

// Repository stores the current tier per identity. Identities without a row
// are free-tier.
type Repository interface {
	GetTier(ctx context.Context, id identity.Identity) (Tier, error)
	SetTier(ctx context.Context, id identity.Identity, t Tier) error
}
