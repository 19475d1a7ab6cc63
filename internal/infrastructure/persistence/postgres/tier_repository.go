package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"prepmate/internal/database"
	"prepmate/internal/domain/identity"
	"prepmate/internal/domain/tier"
)

type TierRepository struct {
	db database.DB
}

func NewTierRepository(db database.DB) *TierRepository {
	return &TierRepository{db: db}
}

func tierFromRow(raw string) tier.Tier {
	if t, ok := tier.Parse(raw); ok {
		return t
	}
	return tier.Free
}

// GetTier returns Free for identities without a stored row.
func (r *TierRepository) GetTier(ctx context.Context, id identity.Identity) (tier.Tier, error) {
	row := r.db.QueryRow(ctx,
		`SELECT tier FROM user_tiers WHERE identity = $1`,
		string(id),
	)

	var raw string
	if err := row.Scan(&raw); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return tier.Free, nil
		}
		return tier.Free, err
	}
	return tierFromRow(raw), nil
}

func (r *TierRepository) SetTier(ctx context.Context, id identity.Identity, t tier.Tier) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO user_tiers (identity, tier, updated_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (identity) DO UPDATE SET tier = EXCLUDED.tier, updated_at = EXCLUDED.updated_at`,
		string(id), string(t), time.Now().UTC(),
	)
	return err
}
