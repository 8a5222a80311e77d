package domain

import (
	"fmt"
	"time"

	"github.com/govalues/decimal"
)

type PaymentResult struct {
	MerchantID  string          `json:"merchant_id"`
	Affected    int             `json:"affected"`
	PaidBatchID string          `json:"paid_batch_id,omitempty"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	OrderIDs    []string        `json:"order_ids,omitempty"`
	PaidAt      *time.Time      `json:"paid_at,omitempty"`
	TransferID  string          `json:"transfer_id,omitempty"`
	Warnings    []string        `json:"warnings,omitempty"`
}

type TransferStatus string

const (
	TransferStatusPending    TransferStatus = "pending"
	TransferStatusSubmitted  TransferStatus = "submitted"
	TransferStatusProcessing TransferStatus = "processing"
	TransferStatusCompleted  TransferStatus = "completed"
	TransferStatusFailed     TransferStatus = "failed"
	TransferStatusReturned   TransferStatus = "returned"
)

func (s TransferStatus) IsFinal() bool {
	return s == TransferStatusCompleted || s == TransferStatusFailed || s == TransferStatusReturned
}

// BankTransfer mirrors a transfer held by the bank rail.
type BankTransfer struct {
	ID             string          `json:"id"`
	IdempotencyKey string          `json:"idempotency_key"`
	PaidBatchID    string          `json:"paid_batch_id"`
	MerchantID     string          `json:"merchant_id"`
	Amount         decimal.Decimal `json:"amount"`
	Status         TransferStatus  `json:"status"`
	ExternalID     string          `json:"external_id,omitempty"`
	LastError      string          `json:"last_error,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

type TransferFilter struct {
	ID          string
	PaidBatchID string
	ExternalID  string
	Statuses    []TransferStatus
	Limit       uint64
}

type TransferRequest struct {
	IdempotencyKey string          `json:"-"`
	MerchantID     string          `json:"merchant_id"`
	Amount         decimal.Decimal `json:"amount"`
	Reference      string          `json:"reference"`
}

// TransferUpdate is the rail's view of a transfer, polled or pushed.
type TransferUpdate struct {
	ExternalID     string         `json:"id"`
	IdempotencyKey string         `json:"idempotency_key,omitempty"`
	Status         TransferStatus `json:"status"`
	Error          string         `json:"error,omitempty"`
}

// RailThrottledError is returned when the bank rail asks callers to back off.
type RailThrottledError struct {
	RetryAfter time.Duration
}

func (e *RailThrottledError) Error() string {
	return fmt.Sprintf("bank rail throttled, retry after %s", e.RetryAfter)
}

func (e *RailThrottledError) Unwrap() error {
	return ErrExternalDelivery
}

func (s TransferStatus) IsValid() bool {
	switch s {
	case TransferStatusPending, TransferStatusSubmitted, TransferStatusProcessing,
		TransferStatusCompleted, TransferStatusFailed, TransferStatusReturned:
		return true
	}
	return false
}

// PaymentBatchPaid is the merchant webhook payload for a settled payment batch.
type PaymentBatchPaid struct {
	PaidBatchID string          `json:"paid_batch_id"`
	MerchantID  string          `json:"merchant_id"`
	Orders      int             `json:"orders"`
	OrderIDs    []string        `json:"order_ids"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	PaidAt      time.Time       `json:"paid_at"`
	TransferID  string          `json:"transfer_id,omitempty"`
}
