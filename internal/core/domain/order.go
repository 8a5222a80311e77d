package domain

import (
	"fmt"
	"time"

	"github.com/govalues/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusQueued    OrderStatus = "queued"
	OrderStatusPlaced    OrderStatus = "placed"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusExecuted  OrderStatus = "executed"
	OrderStatusSettled   OrderStatus = "settled"
	OrderStatusSell      OrderStatus = "sell"
	OrderStatusSold      OrderStatus = "sold"
	OrderStatusCancelled OrderStatus = "cancelled"
	OrderStatusFailed    OrderStatus = "failed"
)

// orderTransitions is the only place order status changes are defined.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusQueued, OrderStatusPlaced, OrderStatusCancelled, OrderStatusFailed},
	OrderStatusQueued:    {OrderStatusPlaced, OrderStatusFailed},
	OrderStatusPlaced:    {OrderStatusConfirmed, OrderStatusExecuted, OrderStatusCancelled, OrderStatusFailed},
	OrderStatusConfirmed: {OrderStatusExecuted, OrderStatusSettled},
	OrderStatusExecuted:  {OrderStatusSettled},
	OrderStatusSettled:   {OrderStatusSell},
	OrderStatusSell:      {OrderStatusSold, OrderStatusSettled},
}

// orderRank orders the forward path; absorbing states rank above everything.
var orderRank = map[OrderStatus]int{
	OrderStatusPending:   0,
	OrderStatusQueued:    1,
	OrderStatusPlaced:    2,
	OrderStatusConfirmed: 3,
	OrderStatusExecuted:  4,
	OrderStatusSettled:   5,
	OrderStatusSell:      6,
	OrderStatusSold:      7,
	OrderStatusCancelled: 100,
	OrderStatusFailed:    100,
}

// OpenOrderStatuses block a member from being prepared again.
var OpenOrderStatuses = []OrderStatus{OrderStatusPending, OrderStatusQueued, OrderStatusPlaced}

// IntermediateOrderStatuses are the pre-funding states a submitted batch must not contain.
var IntermediateOrderStatuses = []OrderStatus{OrderStatusPending, OrderStatusQueued}

// PayableOrderStatuses are the only statuses payment settlement selects.
var PayableOrderStatuses = []OrderStatus{OrderStatusConfirmed, OrderStatusExecuted}

func (s OrderStatus) IsValid() bool {
	_, ok := orderRank[s]
	return ok
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCancelled || s == OrderStatusFailed || s == OrderStatusSold
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// CheckTransition explains why s cannot move to next. A row that is already past
// next reports ErrStatusChanged, anything else ErrInvalidTransition.
func (s OrderStatus) CheckTransition(next OrderStatus) error {
	if s.CanTransitionTo(next) {
		return nil
	}
	if s.IsTerminal() || orderRank[s] > orderRank[next] {
		return fmt.Errorf("%w: %s -> %s", ErrStatusChanged, s, next)
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, next)
}

func StatusStrings(list []OrderStatus) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		out = append(out, string(s))
	}
	return out
}

// Execution is the broker-reported fill. It is nil until the order is confirmed.
type Execution struct {
	Price  decimal.Decimal `json:"price"`
	Shares decimal.Decimal `json:"shares"`
	Amount decimal.Decimal `json:"amount"`
	At     time.Time       `json:"at"`
}

func (e *Execution) Complete() bool {
	return e != nil && !e.At.IsZero() && e.Price.IsPos() && e.Shares.IsPos() && e.Amount.IsPos()
}

type Order struct {
	ID              string           `json:"id"`
	MemberID        string           `json:"member_id"`
	MerchantID      string           `json:"merchant_id"`
	BatchID         string           `json:"batch_id,omitempty"`
	PreparedOrderID string           `json:"prepared_order_id,omitempty"`
	BasketID        string           `json:"basket_id"`
	BrokerID        string           `json:"broker_id"`
	Symbol          string           `json:"symbol"`
	Shares          *decimal.Decimal `json:"shares,omitempty"`
	Amount          decimal.Decimal  `json:"amount"`
	PointsUsed      decimal.Decimal  `json:"points_used"`
	Status          OrderStatus      `json:"status"`
	BrokerReference string           `json:"broker_reference,omitempty"`
	ExecReference   string           `json:"exec_reference,omitempty"`
	Execution       *Execution       `json:"execution,omitempty"`
	ConfirmAttempts int              `json:"confirm_attempts"`
	StatusReason    string           `json:"status_reason,omitempty"`
	PaidFlag        bool             `json:"paid_flag"`
	PaidBatchID     string           `json:"paid_batch_id,omitempty"`
	PaidAt          *time.Time       `json:"paid_at,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	QueuedAt    *time.Time `json:"queued_at,omitempty"`
	PlacedAt    *time.Time `json:"placed_at,omitempty"`
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
	ExecutedAt  *time.Time `json:"executed_at,omitempty"`
	SettledAt   *time.Time `json:"settled_at,omitempty"`
	SellAt      *time.Time `json:"sell_at,omitempty"`
	SoldAt      *time.Time `json:"sold_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	FailedAt    *time.Time `json:"failed_at,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Transition moves the order to next and stamps the matching timestamp.
func (o *Order) Transition(next OrderStatus, at time.Time) error {
	if err := o.Status.CheckTransition(next); err != nil {
		return err
	}
	if next == OrderStatusConfirmed || next == OrderStatusExecuted {
		if o.Execution == nil {
			return fmt.Errorf("%w: %s requires execution data", ErrInvalidTransition, next)
		}
	}
	o.Status = next
	o.UpdatedAt = at
	t := at
	switch next {
	case OrderStatusQueued:
		o.QueuedAt = &t
	case OrderStatusPlaced:
		o.PlacedAt = &t
	case OrderStatusConfirmed:
		o.ConfirmedAt = &t
	case OrderStatusExecuted:
		o.ExecutedAt = &t
	case OrderStatusSettled:
		o.SettledAt = &t
	case OrderStatusSell:
		o.SellAt = &t
	case OrderStatusSold:
		o.SoldAt = &t
	case OrderStatusCancelled:
		o.CancelledAt = &t
	case OrderStatusFailed:
		o.FailedAt = &t
	}
	return nil
}

// ApplyExecution records the fill once. A later report never overwrites it.
func (o *Order) ApplyExecution(exec *Execution) {
	if o.Execution != nil || exec == nil {
		return
	}
	e := *exec
	o.Execution = &e
}

type OrderFilter struct {
	IDs             []string
	BatchID         string
	BasketID        string
	MemberID        string
	MerchantID      string
	BrokerReference string
	ExecReference   string
	PaidBatchID     string
	Statuses        []OrderStatus
	PlacedBefore    *time.Time
	Limit           uint64
}

// BulkTransition moves a set of orders in one statement. Rows not in From are left alone.
type BulkTransition struct {
	IDs             []string
	From            []OrderStatus
	To              OrderStatus
	Source          string
	BrokerReference string
	At              time.Time
}

type StatusChange struct {
	OrderID   string      `json:"order_id"`
	From      OrderStatus `json:"from,omitempty"`
	To        OrderStatus `json:"to"`
	Source    string      `json:"source"`
	ChangedAt time.Time   `json:"changed_at"`
}
