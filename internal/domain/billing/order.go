package billing

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"prepmate/internal/domain/identity"
)

type OrderStatus string

const (
	OrderStatusCreated OrderStatus = "created"
	OrderStatusPaid    OrderStatus = "paid"
	OrderStatusFailed  OrderStatus = "failed"
)

// Order is a premium-upgrade checkout attempt. GatewayOrderID is the id the
// payment gateway knows the order by; verification is keyed on it.
type Order struct {
	ID             uuid.UUID
	Identity       identity.Identity
	GatewayOrderID string
	AmountCents    int64
	Currency       string
	Status         OrderStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

var ErrNotFound = errors.New("order not found")

type OrderRepository interface {
	Create(ctx context.Context, o Order) error
	GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status OrderStatus) error
}
