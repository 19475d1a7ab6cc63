package payment

import (
	"context"
	"errors"
)

type PaymentStatus string

const (
	StatusPaid    PaymentStatus = "PAID"
	StatusPending PaymentStatus = "PENDING"
	StatusFailed  PaymentStatus = "FAILED"
)

type OrderHandle struct {
	GatewayOrderID string
	PaymentLink    string
}

var ErrGatewayUnavailable = errors.New("payment gateway unavailable")

// Gateway is the narrow contract the billing flow needs from a payment
// provider. Webhook verification is the provider's concern, not ours; the
// status fetch backs the user-facing redirect check.
type Gateway interface {
	CreateOrder(ctx context.Context, amountCents int64, currency string, customerID string) (OrderHandle, error)
	FetchOrderStatus(ctx context.Context, gatewayOrderID string) (PaymentStatus, error)
}
