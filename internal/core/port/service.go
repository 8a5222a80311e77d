package port

import (
	"context"

	"github.com/MikeRez0/pointsweep/internal/core/domain"
)

//go:generate mockgen -source=service.go -destination=mock/service.go -package=mock
type BatchPreparer interface {
	PreviewCounts(ctx context.Context, merchantID string) (*domain.EligibilityCounts, error)
	Prepare(ctx context.Context, memberID string, merchantID string) (*domain.PrepareBatch, error)
	Approve(ctx context.Context, batchID string) (*domain.PrepareBatch, error)
	Discard(ctx context.Context, batchID string) (*domain.PrepareBatch, error)
	Stats(ctx context.Context, batchID string) (*domain.BatchStats, error)
	Drilldown(ctx context.Context, filter domain.PreparedOrderFilter) (*domain.DrilldownPage, error)
	Batches(ctx context.Context, limit int) ([]*domain.PrepareBatch, error)
}

type SweepOrchestrator interface {
	Run(ctx context.Context, merchantID string) (*domain.SweepResult, error)
	Preview(ctx context.Context, merchantID string) (*domain.SweepPreview, error)
	RetryFailed(ctx context.Context, batchID string) (*domain.SweepResult, error)
}

type BrokerCallbackHandler interface {
	Handle(ctx context.Context, event *domain.BrokerEvent) (*domain.CallbackResult, error)
	EscalateStale(ctx context.Context) (int, error)
}

type Notifier interface {
	Send(ctx context.Context, target domain.NotificationTarget, eventType string, payload any) (*domain.DeliveryResult, error)
	Retry(ctx context.Context, notificationID string) (*domain.DeliveryResult, error)
}

type PaymentSettlement interface {
	MarkPaid(ctx context.Context, merchantID string, paidBatchID string) (*domain.PaymentResult, error)
	ReconcileTransfers(ctx context.Context) (int, error)
	ApplyTransferUpdate(ctx context.Context, update *domain.TransferUpdate) (*domain.BankTransfer, error)
}

type LineageTracer interface {
	Trace(ctx context.Context, id string, kind domain.LineageKind) (*domain.Lineage, error)
}

type OrderService interface {
	GetOrder(ctx context.Context, id string) (*domain.Order, []domain.StatusChange, error)
	Cancel(ctx context.Context, id string) (*domain.Order, error)
	RequestSell(ctx context.Context, id string) (*domain.Order, error)
	RevertSell(ctx context.Context, id string) (*domain.Order, error)
}
