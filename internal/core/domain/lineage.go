package domain

import "time"

type LineageKind string

const (
	LineageBasket          LineageKind = "basket"
	LineageOrder           LineageKind = "order"
	LineagePrepareBatch    LineageKind = "prepare-batch"
	LineageSweepBatch      LineageKind = "sweep-batch"
	LineageBrokerReference LineageKind = "broker-reference"
	LineageExecReference   LineageKind = "exec-reference"
	LineageACHBatch        LineageKind = "ach-batch"
)

func (k LineageKind) IsValid() bool {
	switch k {
	case LineageBasket, LineageOrder, LineagePrepareBatch, LineageSweepBatch,
		LineageBrokerReference, LineageExecReference, LineageACHBatch:
		return true
	}
	return false
}

type LineageStage string

const (
	StagePrepareBatch  LineageStage = "prepare_batch"
	StagePreparedOrder LineageStage = "prepared_order"
	StageOrder         LineageStage = "order"
	StageSweepRun      LineageStage = "sweep_run"
	StageNotification  LineageStage = "notification"
	StagePaymentBatch  LineageStage = "payment_batch"
	StageBankTransfer  LineageStage = "bank_transfer"
)

// StageSequence lists stages in causal order.
var StageSequence = []LineageStage{
	StagePrepareBatch, StagePreparedOrder, StageOrder, StageSweepRun,
	StageNotification, StagePaymentBatch, StageBankTransfer,
}

type LineageNode struct {
	Stage   LineageStage      `json:"stage"`
	ID      string            `json:"id"`
	Parent  string            `json:"parent,omitempty"`
	Status  string            `json:"status,omitempty"`
	At      *time.Time        `json:"at,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// LineageGap is a hop that could not be resolved. Tracing continues past it.
type LineageGap struct {
	Stage  LineageStage `json:"stage"`
	Ref    string       `json:"ref"`
	Reason string       `json:"reason"`
}

type Lineage struct {
	AnchorID   string        `json:"anchor_id"`
	AnchorType LineageKind   `json:"anchor_type"`
	Chain      []LineageNode `json:"chain"`
	Gaps       []LineageGap  `json:"gaps,omitempty"`
}
