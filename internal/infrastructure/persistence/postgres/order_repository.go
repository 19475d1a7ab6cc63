package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"prepmate/internal/database"
	"prepmate/internal/domain/billing"
	"prepmate/internal/domain/identity"
)

type OrderRepository struct {
	db database.DB
}

func NewOrderRepository(db database.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(ctx context.Context, o billing.Order) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO payment_orders (id, identity, gateway_order_id, amount_cents, currency, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		o.ID, string(o.Identity), o.GatewayOrderID, o.AmountCents, o.Currency,
		string(o.Status), o.CreatedAt, o.UpdatedAt,
	)
	return err
}

func (r *OrderRepository) GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (billing.Order, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, identity, gateway_order_id, amount_cents, currency, status, created_at, updated_at
		 FROM payment_orders
		 WHERE gateway_order_id = $1`,
		gatewayOrderID,
	)

	var (
		o      billing.Order
		ident  string
		status string
	)
	err := row.Scan(&o.ID, &ident, &o.GatewayOrderID, &o.AmountCents, &o.Currency, &status, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return billing.Order{}, billing.ErrNotFound
		}
		return billing.Order{}, err
	}
	o.Identity = identity.Identity(ident)
	o.Status = billing.OrderStatus(status)
	return o, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status billing.OrderStatus) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE payment_orders SET status = $2, updated_at = $3 WHERE id = $1`,
		id, string(status), time.Now().UTC(),
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return billing.ErrNotFound
	}
	return nil
}
