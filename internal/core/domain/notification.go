package domain

import (
	"strings"
	"time"
)

type NotificationStatus string

const (
	NotificationStatusPending NotificationStatus = "pending"
	NotificationStatusSent    NotificationStatus = "sent"
	NotificationStatusFailed  NotificationStatus = "failed"
)

type TargetKind string

const (
	TargetBroker   TargetKind = "broker"
	TargetMerchant TargetKind = "merchant"
)

// Event types sent over webhooks.
const (
	EventOrderBatch       = "order.batch"
	EventPaymentBatchPaid = "payment.batch_paid"
)

type NotificationTarget struct {
	Kind TargetKind `json:"kind"`
	ID   string     `json:"id"`
}

func (t NotificationTarget) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return ErrTargetRequired
	}
	if t.Kind != TargetBroker && t.Kind != TargetMerchant {
		return ErrTargetRequired
	}
	return nil
}

// Endpoint is where and how a target receives webhooks.
type Endpoint struct {
	Target NotificationTarget
	URL    string
	Secret string
}

type Notification struct {
	ID           string             `json:"id"`
	Target       NotificationTarget `json:"target"`
	EventType    string             `json:"event_type"`
	Status       NotificationStatus `json:"status"`
	Payload      string             `json:"payload"`
	ResponseCode *int               `json:"response_code,omitempty"`
	ResponseBody *string            `json:"response_body,omitempty"`
	ErrorMessage *string            `json:"error_message,omitempty"`
	Attempts     int                `json:"attempts"`
	CreatedAt    time.Time          `json:"created_at"`
	SentAt       *time.Time         `json:"sent_at,omitempty"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// Reset puts the notification back to pending before a new delivery attempt.
func (n *Notification) Reset(at time.Time) {
	n.Status = NotificationStatusPending
	n.ResponseCode = nil
	n.ResponseBody = nil
	n.ErrorMessage = nil
	n.Attempts++
	n.UpdatedAt = at
}

func (n *Notification) MarkSent(resp *WebhookResponse, at time.Time) {
	code := resp.StatusCode
	body := resp.Body
	n.Status = NotificationStatusSent
	n.ResponseCode = &code
	n.ResponseBody = &body
	n.ErrorMessage = nil
	n.SentAt = &at
	n.UpdatedAt = at
}

// MarkFailed keeps whatever the target answered verbatim. resp is nil on transport errors.
func (n *Notification) MarkFailed(resp *WebhookResponse, msg string, at time.Time) {
	n.Status = NotificationStatusFailed
	n.ResponseCode = nil
	n.ResponseBody = nil
	if resp != nil {
		code := resp.StatusCode
		body := resp.Body
		n.ResponseCode = &code
		n.ResponseBody = &body
	}
	n.ErrorMessage = &msg
	n.UpdatedAt = at
}

type NotificationFilter struct {
	TargetID     string
	EventType    string
	SweepBatchID string
	OrderID      string
	PaidBatchID  string
	ResponseText string
	Limit        uint64
}

type WebhookRequest struct {
	URL            string
	Secret         string
	EventType      string
	NotificationID string
	Body           []byte
}

type WebhookResponse struct {
	StatusCode int
	Body       string
}

func (r *WebhookResponse) OK() bool {
	return r != nil && r.StatusCode >= 200 && r.StatusCode < 300
}

type DeliveryResult struct {
	NotificationID string             `json:"notification_id"`
	Status         NotificationStatus `json:"status"`
	ResponseCode   *int               `json:"response_code,omitempty"`
	ResponseBody   *string            `json:"response_body,omitempty"`
	Error          string             `json:"error,omitempty"`
	Attempts       int                `json:"attempts"`
	SentAt         *time.Time         `json:"sent_at,omitempty"`
}

func NewDeliveryResult(n *Notification) *DeliveryResult {
	r := &DeliveryResult{
		NotificationID: n.ID,
		Status:         n.Status,
		ResponseCode:   n.ResponseCode,
		ResponseBody:   n.ResponseBody,
		Attempts:       n.Attempts,
		SentAt:         n.SentAt,
	}
	if n.ErrorMessage != nil {
		r.Error = *n.ErrorMessage
	}
	return r
}
