package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"prepmate/internal/domain/billing"
	"prepmate/internal/domain/identity"
	"prepmate/internal/domain/tier"
	"prepmate/internal/infrastructure/payment"
)

var (
	ErrOrderNotFound  = errors.New("order not found")
	ErrPaymentPending = errors.New("payment not completed")
)

// UpgradeNotifier is told when an identity becomes premium.
type UpgradeNotifier interface {
	TierUpgraded(id identity.Identity)
}

type CheckoutResult struct {
	Order       billing.Order
	PaymentLink string
}

type BillingUsecase interface {
	CreateOrder(ctx context.Context, id identity.Identity) (CheckoutResult, error)
	VerifyAndUpgrade(ctx context.Context, gatewayOrderID string) (billing.Order, error)
}

// Billing owns the premium checkout flow: create a gateway order, then on the
// redirect back verify payment status and persist the tier upgrade.
type Billing struct {
	orders     billing.OrderRepository
	tiers      tier.Repository
	gateway    payment.Gateway
	notifier   UpgradeNotifier
	logger     *log.Logger
	priceCents int64
	currency   string
	now        func() time.Time
}

func NewBilling(orders billing.OrderRepository, tiers tier.Repository, gateway payment.Gateway, notifier UpgradeNotifier, priceCents int64, currency string, logger *log.Logger) *Billing {
	return &Billing{
		orders:     orders,
		tiers:      tiers,
		gateway:    gateway,
		notifier:   notifier,
		logger:     logger,
		priceCents: priceCents,
		currency:   currency,
		now:        time.Now,
	}
}

func (b *Billing) CreateOrder(ctx context.Context, id identity.Identity) (CheckoutResult, error) {
	if id.IsGuest() {
		return CheckoutResult{}, ErrInvalidInput
	}

	handle, err := b.gateway.CreateOrder(ctx, b.priceCents, b.currency, string(id))
	if err != nil {
		if b.logger != nil {
			b.logger.Printf("[Billing] gateway create order failed identity=%s err=%v", id, err)
		}
		return CheckoutResult{}, ErrServiceUnavailable
	}

	now := b.now().UTC()
	o := billing.Order{
		ID:             uuid.New(),
		Identity:       id,
		GatewayOrderID: handle.GatewayOrderID,
		AmountCents:    b.priceCents,
		Currency:       b.currency,
		Status:         billing.OrderStatusCreated,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := b.orders.Create(ctx, o); err != nil {
		return CheckoutResult{}, ErrInternal
	}

	return CheckoutResult{Order: o, PaymentLink: handle.PaymentLink}, nil
}

// VerifyAndUpgrade checks the gateway's view of the order. Only a PAID order
// flips the identity to premium; anything else leaves the tier untouched.
func (b *Billing) VerifyAndUpgrade(ctx context.Context, gatewayOrderID string) (billing.Order, error) {
	o, err := b.orders.GetByGatewayOrderID(ctx, gatewayOrderID)
	if err != nil {
		if errors.Is(err, billing.ErrNotFound) {
			return billing.Order{}, ErrOrderNotFound
		}
		return billing.Order{}, ErrInternal
	}

	if o.Status == billing.OrderStatusPaid {
		return o, nil
	}

	status, err := b.gateway.FetchOrderStatus(ctx, gatewayOrderID)
	if err != nil {
		return billing.Order{}, ErrServiceUnavailable
	}

	switch status {
	case payment.StatusPaid:
		if err := b.tiers.SetTier(ctx, o.Identity, tier.Premium); err != nil {
			return billing.Order{}, ErrInternal
		}
		if err := b.orders.UpdateStatus(ctx, o.ID, billing.OrderStatusPaid); err != nil {
			return billing.Order{}, ErrInternal
		}
		o.Status = billing.OrderStatusPaid
		if b.notifier != nil {
			b.notifier.TierUpgraded(o.Identity)
		}
		if b.logger != nil {
			b.logger.Printf("[Billing] tier upgraded identity=%s order=%s", o.Identity, o.GatewayOrderID)
		}
		return o, nil
	case payment.StatusFailed:
		_ = b.orders.UpdateStatus(ctx, o.ID, billing.OrderStatusFailed)
		o.Status = billing.OrderStatusFailed
		return o, ErrPaymentPending
	default:
		return o, ErrPaymentPending
	}
}
