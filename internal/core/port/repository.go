package port

import (
	"context"
	"time"

	"github.com/MikeRez0/pointsweep/internal/core/domain"
)

// UpdateOrderFn mutates a locked order inside the repository transaction.
// Returning domain.ErrEventDeferred saves the order but leaves the event unapplied.
type UpdateOrderFn func(*domain.Order) error

// UpdateBatchFn mutates a locked batch inside the repository transaction.
type UpdateBatchFn func(*domain.PrepareBatch) error

//go:generate mockgen -source=repository.go -destination=mock/repository.go -package=mock
type OrderRepository interface {
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	ListOrders(ctx context.Context, filter domain.OrderFilter) ([]*domain.Order, error)
	UpdateOrder(ctx context.Context, id string, source string, updateFn UpdateOrderFn) (*domain.Order, error)
	ApplyOrderEvent(ctx context.Context, event *domain.BrokerEvent, updateFn UpdateOrderFn) (*domain.Order, bool, error)
	TransitionOrders(ctx context.Context, req domain.BulkTransition) (int, error)
	MarkOrdersPaid(ctx context.Context, merchantID string, paidBatchID string, paidAt time.Time) (*domain.PaymentResult, error)
	ListStatusHistory(ctx context.Context, orderID string) ([]domain.StatusChange, error)
}

type BatchRepository interface {
	CreateBatch(ctx context.Context, batch *domain.PrepareBatch, orders []*domain.PreparedOrder) (*domain.PrepareBatch, error)
	GetBatch(ctx context.Context, id string) (*domain.PrepareBatch, error)
	UpdateBatch(ctx context.Context, id string, updateFn UpdateBatchFn) (*domain.PrepareBatch, error)
	ListBatches(ctx context.Context, filter domain.BatchListFilter) ([]*domain.PrepareBatch, error)
	ListPreparedOrders(ctx context.Context, filter domain.PreparedOrderFilter) ([]*domain.PreparedOrder, int, error)
	BatchStats(ctx context.Context, id string) (*domain.BatchStats, error)
	PromoteBatch(ctx context.Context, id string, promoteFn UpdateBatchFn) (*domain.Promotion, error)
	SubmitIfFunded(ctx context.Context, id string, at time.Time) (bool, error)
}

type WalletRepository interface {
	CountEligibility(ctx context.Context, filter domain.EligibilityFilter) (*domain.EligibilityCounts, error)
	ListEligibleWallets(ctx context.Context, filter domain.EligibilityFilter) ([]*domain.Wallet, error)
	ListPicks(ctx context.Context, memberIDs []string) (map[string][]domain.Pick, error)
}

type SweepRepository interface {
	CreateSweepRun(ctx context.Context, run *domain.SweepRun) error
	CompleteSweepRun(ctx context.Context, run *domain.SweepRun) error
	GetSweepRun(ctx context.Context, id string) (*domain.SweepRun, error)
	ListSweepRuns(ctx context.Context, batchID string) ([]*domain.SweepRun, error)
}

type NotificationRepository interface {
	CreateNotification(ctx context.Context, n *domain.Notification) error
	UpdateNotification(ctx context.Context, n *domain.Notification) error
	GetNotification(ctx context.Context, id string) (*domain.Notification, error)
	FindNotifications(ctx context.Context, filter domain.NotificationFilter) ([]*domain.Notification, error)
}

type EndpointRepository interface {
	GetEndpoint(ctx context.Context, target domain.NotificationTarget) (*domain.Endpoint, error)
	GetBroker(ctx context.Context, id string) (*domain.Broker, error)
	GetMerchant(ctx context.Context, id string) (*domain.Merchant, error)
}

type TransferRepository interface {
	CreateTransfer(ctx context.Context, t *domain.BankTransfer) (*domain.BankTransfer, error)
	UpdateTransfer(ctx context.Context, t *domain.BankTransfer) error
	FindTransfers(ctx context.Context, filter domain.TransferFilter) ([]*domain.BankTransfer, error)
}
