package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/MikeRez0/pointsweep/internal/core/domain"
	"github.com/MikeRez0/pointsweep/internal/core/port"
	"go.uber.org/zap"
)

// Event types published after a state change has been committed.
const (
	EventOrderStatusChanged = "order.status_changed"
	EventPaymentSettled     = "payment.settled"
	EventSweepFinished      = "sweep.finished"
)

type orderStatusChanged struct {
	OrderID    string             `json:"order_id"`
	BatchID    string             `json:"batch_id,omitempty"`
	MemberID   string             `json:"member_id"`
	MerchantID string             `json:"merchant_id"`
	From       domain.OrderStatus `json:"from"`
	To         domain.OrderStatus `json:"to"`
	Source     string             `json:"source"`
	At         time.Time          `json:"at"`
}

// publish never fails the caller: the state change is already committed.
func publish(ctx context.Context, pub port.EventPublisher, logger *zap.Logger,
	eventType string, key string, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		logger.Error("Marshal event", zap.String("event", eventType), zap.Error(err))
		return
	}
	if err := pub.Publish(ctx, eventType, key, payload); err != nil {
		logger.Warn("Publish event", zap.String("event", eventType), zap.String("key", key), zap.Error(err))
	}
}

func publishOrderChange(ctx context.Context, pub port.EventPublisher, logger *zap.Logger,
	o *domain.Order, from domain.OrderStatus, source string) {
	if o == nil || o.Status == from {
		return
	}
	publish(ctx, pub, logger, EventOrderStatusChanged, o.ID, orderStatusChanged{
		OrderID:    o.ID,
		BatchID:    o.BatchID,
		MemberID:   o.MemberID,
		MerchantID: o.MerchantID,
		From:       from,
		To:         o.Status,
		Source:     source,
		At:         o.UpdatedAt,
	})
}
