package domain

import (
	"strings"
	"time"

	"github.com/govalues/decimal"
)

// Inbound broker event types.
const (
	EventOrderAcknowledged   = "order.acknowledged"
	EventOrderConfirmed      = "order.confirmed"
	EventOrderExecuted       = "order.executed"
	EventOrderRejected       = "order.rejected"
	EventOrderCancelled      = "order.cancelled"
	EventOrderSold           = "order.sold"
	EventSweepOrders         = "sweep.orders"
	EventCredentialsValidate = "credentials.validate"
)

type Broker struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	WebhookURL string `json:"webhook_url"`
	Secret     string `json:"-"`
	APIKeyHash string `json:"-"`
}

type Merchant struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	WebhookURL     string          `json:"webhook_url"`
	Secret         string          `json:"-"`
	ConversionRate decimal.Decimal `json:"conversion_rate"`
}

type BrokerEventOrder struct {
	OrderID   string `json:"order_id"`
	Reference string `json:"reference,omitempty"`
}

type BrokerEvent struct {
	Type          string             `json:"event_type"`
	OrderID       string             `json:"order_id,omitempty"`
	BrokerID      string             `json:"broker_id,omitempty"`
	Reference     string             `json:"reference,omitempty"`
	ExecReference string             `json:"exec_reference,omitempty"`
	Execution     *Execution         `json:"execution,omitempty"`
	Reason        string             `json:"reason,omitempty"`
	Orders        []BrokerEventOrder `json:"orders,omitempty"`
	APIKey        string             `json:"api_key,omitempty"`
	ReceivedAt    time.Time          `json:"-"`
}

// OrderScoped reports whether the event addresses a single order.
func (e *BrokerEvent) OrderScoped() bool {
	return strings.HasPrefix(e.Type, "order.")
}

func (e *BrokerEvent) Validate() error {
	if strings.TrimSpace(e.Type) == "" {
		return ErrEventTypeRequired
	}
	if e.OrderScoped() && strings.TrimSpace(e.OrderID) == "" {
		return ErrOrderIDRequired
	}
	return nil
}

type CallbackItemResult struct {
	OrderID  string      `json:"order_id"`
	Status   OrderStatus `json:"status,omitempty"`
	Replayed bool        `json:"replayed,omitempty"`
	Error    string      `json:"error,omitempty"`
}

type CallbackResult struct {
	EventType        string               `json:"event_type"`
	OrderID          string               `json:"order_id,omitempty"`
	Status           OrderStatus          `json:"status,omitempty"`
	Replayed         bool                 `json:"replayed"`
	Held             bool                 `json:"held,omitempty"`
	ConfirmAttempts  int                  `json:"confirm_attempts,omitempty"`
	Items            []CallbackItemResult `json:"items,omitempty"`
	CredentialsValid *bool                `json:"credentials_valid,omitempty"`
}
