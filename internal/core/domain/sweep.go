package domain

import (
	"time"

	"github.com/govalues/decimal"
)

type SweepKind string

const (
	SweepKindRun   SweepKind = "run"
	SweepKindRetry SweepKind = "retry"
)

type SweepStatus string

const (
	SweepStatusCompleted    SweepStatus = "completed"
	SweepStatusPartial      SweepStatus = "partial"
	SweepStatusFailed       SweepStatus = "failed"
	SweepStatusMarketClosed SweepStatus = "market_closed"
	SweepStatusNothingToDo  SweepStatus = "nothing_to_do"
)

// SweepGroupError is the outcome of one failed merchant/broker group, or of one
// member left out of the promotion.
type SweepGroupError struct {
	MerchantID     string `json:"merchant_id,omitempty"`
	BrokerID       string `json:"broker_id,omitempty"`
	MemberID       string `json:"member_id,omitempty"`
	Orders         int    `json:"orders"`
	NotificationID string `json:"notification_id,omitempty"`
	Error          string `json:"error"`
}

// SweepRun is one orchestrator execution for one batch. Immutable once finished.
type SweepRun struct {
	ID                 string            `json:"id"`
	BatchID            string            `json:"batch_id"`
	MerchantID         string            `json:"merchant_id,omitempty"`
	Kind               SweepKind         `json:"kind"`
	StartedAt          time.Time         `json:"started_at"`
	FinishedAt         *time.Time        `json:"finished_at,omitempty"`
	MerchantsProcessed int               `json:"merchants_processed"`
	OrdersProcessed    int               `json:"orders_processed"`
	OrdersConfirmed    int               `json:"orders_confirmed"`
	OrdersFailed       int               `json:"orders_failed"`
	Errors             []SweepGroupError `json:"errors"`
	BrokersNotified    []string          `json:"brokers_notified"`
}

func (r *SweepRun) AddError(e SweepGroupError) {
	r.Errors = append(r.Errors, e)
}

func (r *SweepRun) Status() SweepStatus {
	switch {
	case len(r.Errors) == 0:
		return SweepStatusCompleted
	case r.OrdersConfirmed > 0:
		return SweepStatusPartial
	default:
		return SweepStatusFailed
	}
}

type SweepResult struct {
	Status          SweepStatus `json:"status"`
	NextMarketOpen  *time.Time  `json:"next_market_open,omitempty"`
	Runs            []*SweepRun `json:"runs"`
	BatchErrors     []string    `json:"batch_errors,omitempty"`
	OrdersProcessed int         `json:"orders_processed"`
	OrdersConfirmed int         `json:"orders_confirmed"`
	OrdersFailed    int         `json:"orders_failed"`
}

// Add folds a finished run into the aggregate counters.
func (r *SweepResult) Add(run *SweepRun) {
	r.Runs = append(r.Runs, run)
	r.OrdersProcessed += run.OrdersProcessed
	r.OrdersConfirmed += run.OrdersConfirmed
	r.OrdersFailed += run.OrdersFailed
}

func (r *SweepResult) Finish() {
	if r.Status == SweepStatusMarketClosed {
		return
	}
	if len(r.Runs) == 0 && len(r.BatchErrors) == 0 {
		r.Status = SweepStatusNothingToDo
		return
	}
	failed := len(r.BatchErrors) > 0
	for _, run := range r.Runs {
		if len(run.Errors) > 0 {
			failed = true
		}
	}
	switch {
	case !failed:
		r.Status = SweepStatusCompleted
	case r.OrdersConfirmed > 0:
		r.Status = SweepStatusPartial
	default:
		r.Status = SweepStatusFailed
	}
}

type GroupProjection struct {
	MerchantID string          `json:"merchant_id"`
	BrokerID   string          `json:"broker_id"`
	Baskets    int             `json:"baskets"`
	Orders     int             `json:"orders"`
	Amount     decimal.Decimal `json:"amount"`
}

type BatchProjection struct {
	BatchID string             `json:"batch_id"`
	Groups  []*GroupProjection `json:"groups"`
	Orders  int                `json:"orders"`
}

// SweepPreview is a dry run of Run. Producing it writes nothing.
type SweepPreview struct {
	MarketOpen     bool               `json:"market_open"`
	NextMarketOpen *time.Time         `json:"next_market_open,omitempty"`
	Batches        []*BatchProjection `json:"batches"`
	Orders         int                `json:"orders"`
	Notifications  int                `json:"notifications"`
}

// BrokerOrderLine and BrokerOrderBatch form the outbound order-batch payload.
type BrokerOrderLine struct {
	OrderID  string           `json:"order_id"`
	BasketID string           `json:"basket_id"`
	MemberID string           `json:"member_id"`
	Symbol   string           `json:"symbol"`
	Shares   *decimal.Decimal `json:"shares,omitempty"`
	Amount   decimal.Decimal  `json:"amount"`
}

type BrokerOrderBatch struct {
	SweepBatchID   string            `json:"sweep_batch_id"`
	PrepareBatchID string            `json:"prepare_batch_id"`
	MerchantID     string            `json:"merchant_id"`
	BrokerID       string            `json:"broker_id"`
	Orders         []BrokerOrderLine `json:"orders"`
}

// BrokerAck is what a broker may answer to an order batch.
type BrokerAck struct {
	Reference      string `json:"reference"`
	BatchReference string `json:"batch_reference"`
}

func (a BrokerAck) Ref() string {
	if a.BatchReference != "" {
		return a.BatchReference
	}
	return a.Reference
}
