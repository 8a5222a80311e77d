package port

import (
	"context"
	"time"

	"github.com/MikeRez0/pointsweep/internal/core/domain"
)

//go:generate mockgen -source=clients.go -destination=mock/clients.go -package=mock
type MarketCalendar interface {
	IsOpen(now time.Time) bool
	NextOpen(now time.Time) time.Time
}

// Unlock releases a lock taken by Locker.Acquire.
type Unlock func(ctx context.Context) error

type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (Unlock, error)
}

// WebhookTransport signs and posts one webhook. It returns an error only when no
// HTTP response was received.
type WebhookTransport interface {
	Deliver(ctx context.Context, req *domain.WebhookRequest) (*domain.WebhookResponse, error)
}

type BankRail interface {
	RequestTransfer(ctx context.Context, req *domain.TransferRequest) (*domain.TransferUpdate, error)
	TransferStatus(ctx context.Context, externalID string) (*domain.TransferUpdate, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, eventType string, key string, payload []byte) error
}

type Metrics interface {
	SweepFinished(status domain.SweepStatus)
	OrdersPromoted(n int)
	NotificationDelivered(kind domain.TargetKind, status domain.NotificationStatus)
	CallbackHandled(eventType string, outcome string)
	OrdersPaid(n int)
}
