package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"prepmate/internal/config"
)

const apiVersion = "2023-08-01"

type cashfreeClient struct {
	baseURL      string
	clientID     string
	clientSecret string
	client       *http.Client
	logger       *log.Logger
}

func NewCashfreeGateway(cfg config.PaymentConfig, logger *log.Logger) Gateway {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = "https://sandbox.cashfree.com/pg"
	}
	return &cashfreeClient{
		baseURL:      strings.TrimRight(baseURL, "/"),
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		client:       &http.Client{Timeout: 15 * time.Second},
		logger:       logger,
	}
}

type createOrderRequest struct {
	OrderID         string          `json:"order_id"`
	OrderAmount     float64         `json:"order_amount"`
	OrderCurrency   string          `json:"order_currency"`
	CustomerDetails customerDetails `json:"customer_details"`
}

type customerDetails struct {
	CustomerID string `json:"customer_id"`
}

type createOrderResponse struct {
	OrderID     string `json:"order_id"`
	PaymentLink string `json:"payment_link"`
}

type orderPayment struct {
	PaymentStatus string `json:"payment_status"`
}

func (c *cashfreeClient) CreateOrder(ctx context.Context, amountCents int64, currency string, customerID string) (OrderHandle, error) {
	if c == nil || c.client == nil {
		return OrderHandle{}, errors.New("nil payment client")
	}

	body := createOrderRequest{
		OrderID:         "order_" + uuid.NewString(),
		OrderAmount:     float64(amountCents) / 100,
		OrderCurrency:   currency,
		CustomerDetails: customerDetails{CustomerID: customerID},
	}
	b, err := json.Marshal(body)
	if err != nil {
		return OrderHandle{}, err
	}

	endpoint := c.baseURL + "/orders"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return OrderHandle{}, err
	}
	c.setHeaders(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return OrderHandle{}, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rb, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		bodyStr := strings.TrimSpace(string(rb))
		if c.logger != nil {
			c.logger.Printf("[Payment] CreateOrder error status=%d body=%q", resp.StatusCode, bodyStr)
		}
		return OrderHandle{}, fmt.Errorf("create order failed: status=%d body=%s", resp.StatusCode, bodyStr)
	}

	var out createOrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return OrderHandle{}, err
	}
	if strings.TrimSpace(out.OrderID) == "" {
		return OrderHandle{}, errors.New("create order returned empty order id")
	}
	return OrderHandle{GatewayOrderID: out.OrderID, PaymentLink: out.PaymentLink}, nil
}

func (c *cashfreeClient) FetchOrderStatus(ctx context.Context, gatewayOrderID string) (PaymentStatus, error) {
	if c == nil || c.client == nil {
		return StatusPending, errors.New("nil payment client")
	}

	endpoint := c.baseURL + "/orders/" + gatewayOrderID + "/payments"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return StatusPending, err
	}
	c.setHeaders(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return StatusPending, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rb, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if c.logger != nil {
			c.logger.Printf("[Payment] FetchOrderStatus error status=%d body=%q", resp.StatusCode, strings.TrimSpace(string(rb)))
		}
		return StatusPending, fmt.Errorf("fetch order status failed: status=%d", resp.StatusCode)
	}

	var payments []orderPayment
	if err := json.NewDecoder(resp.Body).Decode(&payments); err != nil {
		return StatusPending, err
	}

	for _, p := range payments {
		switch strings.ToUpper(p.PaymentStatus) {
		case "SUCCESS", "PAID":
			return StatusPaid, nil
		case "FAILED":
			return StatusFailed, nil
		}
	}
	return StatusPending, nil
}

func (c *cashfreeClient) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-version", apiVersion)
	req.Header.Set("x-client-id", c.clientID)
	req.Header.Set("x-client-secret", c.clientSecret)
}

var _ Gateway = (*cashfreeClient)(nil)
