package domain

import (
	"fmt"
	"time"

	"github.com/govalues/decimal"
)

type BatchStatus string

const (
	BatchStatusDraft     BatchStatus = "draft"
	BatchStatusApproved  BatchStatus = "approved"
	BatchStatusDiscarded BatchStatus = "discarded"
	BatchStatusSubmitted BatchStatus = "submitted"
)

var batchTransitions = map[BatchStatus][]BatchStatus{
	BatchStatusDraft:    {BatchStatusApproved, BatchStatusDiscarded},
	BatchStatusApproved: {BatchStatusDiscarded, BatchStatusSubmitted},
}

func (s BatchStatus) CanTransitionTo(next BatchStatus) bool {
	for _, allowed := range batchTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type BatchFilters struct {
	MemberID   string `json:"member_id,omitempty"`
	MerchantID string `json:"merchant_id,omitempty"`
}

type PrepareBatch struct {
	ID          string          `json:"id"`
	Status      BatchStatus     `json:"status"`
	Filters     BatchFilters    `json:"filters"`
	MemberCount int             `json:"member_count"`
	OrderCount  int             `json:"order_count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	TotalPoints decimal.Decimal `json:"total_points"`
	Skipped     int             `json:"skipped,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	ApprovedAt  *time.Time      `json:"approved_at,omitempty"`
	PromotedAt  *time.Time      `json:"promoted_at,omitempty"`
	SubmittedAt *time.Time      `json:"submitted_at,omitempty"`
	DiscardedAt *time.Time      `json:"discarded_at,omitempty"`
}

func (b *PrepareBatch) Approve(at time.Time) error {
	if !b.Status.CanTransitionTo(BatchStatusApproved) {
		return fmt.Errorf("%w: status %s", ErrBatchNotDraft, b.Status)
	}
	b.Status = BatchStatusApproved
	b.ApprovedAt = &at
	return nil
}

func (b *PrepareBatch) Discard(at time.Time) error {
	if !b.Status.CanTransitionTo(BatchStatusDiscarded) || b.PromotedAt != nil {
		return fmt.Errorf("%w: status %s", ErrBatchNotDiscardable, b.Status)
	}
	b.Status = BatchStatusDiscarded
	b.DiscardedAt = &at
	return nil
}

// Promote is the gate for turning staged rows into live orders.
func (b *PrepareBatch) Promote(at time.Time) error {
	if b.PromotedAt != nil {
		return ErrBatchAlreadyPromoted
	}
	if b.Status != BatchStatusApproved {
		return fmt.Errorf("%w: status %s", ErrBatchNotApproved, b.Status)
	}
	b.PromotedAt = &at
	return nil
}

func (b *PrepareBatch) Submit(at time.Time) error {
	if b.PromotedAt == nil {
		return ErrBatchNotPromoted
	}
	if !b.Status.CanTransitionTo(BatchStatusSubmitted) {
		return fmt.Errorf("%w: status %s", ErrBatchNotApproved, b.Status)
	}
	b.Status = BatchStatusSubmitted
	b.SubmittedAt = &at
	return nil
}

// PreparedOrder is a staged order line. It is never updated after insert.
type PreparedOrder struct {
	ID         string           `json:"id"`
	BatchID    string           `json:"batch_id"`
	MemberID   string           `json:"member_id"`
	MerchantID string           `json:"merchant_id"`
	BasketID   string           `json:"basket_id"`
	BrokerID   string           `json:"broker_id"`
	Symbol     string           `json:"symbol"`
	Shares     *decimal.Decimal `json:"shares,omitempty"`
	Amount     decimal.Decimal  `json:"amount"`
	PointsUsed decimal.Decimal  `json:"points_used"`
	CreatedAt  time.Time        `json:"created_at"`
}

// ToOrder copies a staged line into a new live order.
func (p *PreparedOrder) ToOrder(id string, at time.Time) *Order {
	return &Order{
		ID:              id,
		MemberID:        p.MemberID,
		MerchantID:      p.MerchantID,
		BatchID:         p.BatchID,
		PreparedOrderID: p.ID,
		BasketID:        p.BasketID,
		BrokerID:        p.BrokerID,
		Symbol:          p.Symbol,
		Shares:          p.Shares,
		Amount:          p.Amount,
		PointsUsed:      p.PointsUsed,
		Status:          OrderStatusPending,
		CreatedAt:       at,
		UpdatedAt:       at,
	}
}

type BatchListFilter struct {
	Statuses   []BatchStatus
	MerchantID string
	Unpromoted bool
	Limit      uint64
}

type PreparedOrderFilter struct {
	BatchID  string
	BasketID string
	MemberID string
	Symbol   string
	BrokerID string
	Page     uint64
	PerPage  uint64
}

type DrilldownPage struct {
	BatchID string           `json:"batch_id"`
	Page    uint64           `json:"page"`
	PerPage uint64           `json:"per_page"`
	Total   int              `json:"total"`
	Rows    []*PreparedOrder `json:"rows"`
}

type EligibilityFilter struct {
	MerchantID string
	MemberID   string
}

type EligibilityCounts struct {
	MerchantID        string          `json:"merchant_id,omitempty"`
	Wallets           int             `json:"wallets"`
	Enrolled          int             `json:"enrolled"`
	PositiveBalance   int             `json:"positive_balance"`
	BlockedOpenOrders int             `json:"blocked_open_orders"`
	AlreadyStaged     int             `json:"already_staged"`
	Eligible          int             `json:"eligible"`
	EligibleCash      decimal.Decimal `json:"eligible_cash"`
}

type GroupTotal struct {
	Key    string          `json:"key"`
	Orders int             `json:"orders"`
	Amount decimal.Decimal `json:"amount"`
}

type BatchStats struct {
	Batch          *PrepareBatch       `json:"batch"`
	ByBroker       []GroupTotal        `json:"by_broker"`
	BySymbol       []GroupTotal        `json:"by_symbol"`
	ByMerchant     []GroupTotal        `json:"by_merchant"`
	PromotedOrders int                 `json:"promoted_orders"`
	OrderStatuses  map[OrderStatus]int `json:"order_statuses"`
}

const (
	SkipReasonInsufficientCash = "wallet no longer covers basket"
	SkipReasonOpenOrder        = "member already has an open order"
)

// SkippedMember is a member whose staged lines were left out of a promotion.
type SkippedMember struct {
	MemberID   string `json:"member_id"`
	MerchantID string `json:"merchant_id"`
	Lines      int    `json:"lines"`
	Reason     string `json:"reason"`
}

// Promotion is what a committed batch promotion produced.
type Promotion struct {
	Batch          *PrepareBatch   `json:"batch"`
	Orders         []*Order        `json:"orders"`
	SkippedMembers []SkippedMember `json:"skipped_members,omitempty"`
}
