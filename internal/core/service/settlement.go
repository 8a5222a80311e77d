package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/MikeRez0/pointsweep/internal/core/domain"
	"github.com/MikeRez0/pointsweep/internal/core/port"
	"go.uber.org/zap"
)

const (
	EventTransferUpdated = "payment.transfer_updated"

	reconcileBatchSize = 100
)

var paidBatchIDPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]{0,63}$`)

// SettlementService marks broker-confirmed orders paid and moves the money over the
// bank rail. The rail is optional; without it transfers stay pending locally.
type SettlementService struct {
	orders    port.OrderRepository
	transfers port.TransferRepository
	notifier  port.Notifier
	rail      port.BankRail
	locker    port.Locker
	events    port.EventPublisher
	metrics   port.Metrics
	lockTTL   time.Duration
	logger    *zap.Logger
}

func NewSettlementService(orders port.OrderRepository, transfers port.TransferRepository,
	notifier port.Notifier, rail port.BankRail, locker port.Locker, events port.EventPublisher,
	metrics port.Metrics, lockTTL time.Duration, logger *zap.Logger) *SettlementService {
	return &SettlementService{
		orders:    orders,
		transfers: transfers,
		notifier:  notifier,
		rail:      rail,
		locker:    locker,
		events:    events,
		metrics:   metrics,
		lockTTL:   lockTTL,
		logger:    logger,
	}
}

// MarkPaid settles every confirmed or executed unpaid order of the merchant under one
// paid batch id. Running it again affects nothing because paid orders are no longer
// selected.
func (s *SettlementService) MarkPaid(ctx context.Context, merchantID string, paidBatchID string) (*domain.PaymentResult, error) {
	if strings.TrimSpace(merchantID) == "" {
		return nil, domain.ErrMerchantIDRequired
	}
	if paidBatchID != "" && !paidBatchIDPattern.MatchString(paidBatchID) {
		return nil, domain.ErrInvalidPaidBatchID
	}

	unlock, err := s.locker.Acquire(ctx, "settle:merchant:"+merchantID, s.lockTTL)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := unlock(context.WithoutCancel(ctx)); err != nil {
			s.logger.Error("Release settlement lock", zap.String("merchant", merchantID), zap.Error(err))
		}
	}()

	if paidBatchID == "" {
		paidBatchID = domain.NewID(domain.PrefixPaidBatch)
	} else {
		release, err := s.reservePaidBatchID(ctx, paidBatchID)
		if err != nil {
			return nil, err
		}
		defer release()
	}
	result, err := s.orders.MarkOrdersPaid(ctx, merchantID, paidBatchID, time.Now().UTC())
	if err != nil {
		s.logger.Error("Mark orders paid", zap.String("merchant", merchantID), zap.Error(err))
		return nil, err
	}
	if result.Affected == 0 {
		result.PaidBatchID = ""
		return result, nil
	}

	s.metrics.OrdersPaid(result.Affected)
	s.logger.Info("Orders settled",
		zap.String("merchant", merchantID),
		zap.String("paid_batch", result.PaidBatchID),
		zap.Int("orders", result.Affected),
		zap.String("total", result.TotalAmount.String()))
	publish(ctx, s.events, s.logger, EventPaymentSettled, merchantID, result)

	if err := s.startTransfer(ctx, result); err != nil {
		result.Warnings = append(result.Warnings, "bank transfer: "+err.Error())
	}
	if err := s.notifyMerchant(ctx, result); err != nil {
		result.Warnings = append(result.Warnings, "merchant notification: "+err.Error())
	}
	return result, nil
}

// reservePaidBatchID locks a caller supplied paid batch id and checks that no order
// or transfer carries it yet.
func (s *SettlementService) reservePaidBatchID(ctx context.Context, paidBatchID string) (func(), error) {
	unlock, err := s.locker.Acquire(ctx, "settle:paid_batch:"+paidBatchID, s.lockTTL)
	if err != nil {
		return nil, err
	}
	release := func() {
		if err := unlock(context.WithoutCancel(ctx)); err != nil {
			s.logger.Error("Release paid batch lock", zap.String("paid_batch", paidBatchID), zap.Error(err))
		}
	}

	orders, err := s.orders.ListOrders(ctx, domain.OrderFilter{PaidBatchID: paidBatchID, Limit: 1})
	if err != nil {
		release()
		return nil, err
	}
	transfers, err := s.transfers.FindTransfers(ctx, domain.TransferFilter{PaidBatchID: paidBatchID, Limit: 1})
	if err != nil {
		release()
		return nil, err
	}
	if len(orders) > 0 || len(transfers) > 0 {
		release()
		return nil, fmt.Errorf("%w: %s", domain.ErrPaidBatchIDUsed, paidBatchID)
	}
	return release, nil
}

func (s *SettlementService) startTransfer(ctx context.Context, result *domain.PaymentResult) error {
	now := time.Now().UTC()
	transfer, err := s.transfers.CreateTransfer(ctx, &domain.BankTransfer{
		ID:             domain.NewID(domain.PrefixTransfer),
		IdempotencyKey: result.PaidBatchID,
		PaidBatchID:    result.PaidBatchID,
		MerchantID:     result.MerchantID,
		Amount:         result.TotalAmount,
		Status:         domain.TransferStatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		return err
	}
	if transfer.PaidBatchID != result.PaidBatchID || transfer.MerchantID != result.MerchantID ||
		transfer.Amount.Cmp(result.TotalAmount) != 0 {
		s.logger.Error("Idempotency key held by another transfer",
			zap.String("paid_batch", result.PaidBatchID),
			zap.String("transfer", transfer.ID),
			zap.String("transfer_merchant", transfer.MerchantID))
		return fmt.Errorf("%w: transfer %s already holds key %s",
			domain.ErrPaidBatchIDUsed, transfer.ID, result.PaidBatchID)
	}
	result.TransferID = transfer.ID

	if s.rail == nil || transfer.Status != domain.TransferStatusPending || transfer.ExternalID != "" {
		return nil
	}
	return s.submit(ctx, transfer)
}

func (s *SettlementService) submit(ctx context.Context, t *domain.BankTransfer) error {
	update, err := s.rail.RequestTransfer(ctx, &domain.TransferRequest{
		IdempotencyKey: t.IdempotencyKey,
		MerchantID:     t.MerchantID,
		Amount:         t.Amount,
		Reference:      t.PaidBatchID,
	})
	t.UpdatedAt = time.Now().UTC()
	if err != nil {
		t.LastError = err.Error()
		if saveErr := s.transfers.UpdateTransfer(context.WithoutCancel(ctx), t); saveErr != nil {
			s.logger.Error("Save transfer error", zap.String("transfer", t.ID), zap.Error(saveErr))
		}
		return err
	}

	t.ExternalID = update.ExternalID
	t.Status = domain.TransferStatusSubmitted
	if update.Status.IsValid() {
		t.Status = update.Status
	}
	t.LastError = update.Error
	return s.transfers.UpdateTransfer(context.WithoutCancel(ctx), t)
}

func (s *SettlementService) notifyMerchant(ctx context.Context, result *domain.PaymentResult) error {
	paidAt := time.Now().UTC()
	if result.PaidAt != nil {
		paidAt = *result.PaidAt
	}
	_, err := s.notifier.Send(ctx,
		domain.NotificationTarget{Kind: domain.TargetMerchant, ID: result.MerchantID},
		domain.EventPaymentBatchPaid,
		domain.PaymentBatchPaid{
			PaidBatchID: result.PaidBatchID,
			MerchantID:  result.MerchantID,
			Orders:      result.Affected,
			OrderIDs:    result.OrderIDs,
			TotalAmount: result.TotalAmount,
			PaidAt:      paidAt,
			TransferID:  result.TransferID,
		})
	return err
}

// ReconcileTransfers submits pending transfers and polls the rail for the others.
// A throttled rail ends the pass early.
func (s *SettlementService) ReconcileTransfers(ctx context.Context) (int, error) {
	if s.rail == nil {
		return 0, nil
	}

	open, err := s.transfers.FindTransfers(ctx, domain.TransferFilter{
		Statuses: []domain.TransferStatus{
			domain.TransferStatusPending, domain.TransferStatusSubmitted, domain.TransferStatusProcessing,
		},
		Limit: reconcileBatchSize,
	})
	if err != nil {
		return 0, err
	}

	var (
		updated int
		errs    []error
	)
	for _, t := range open {
		var err error
		if t.ExternalID == "" {
			err = s.submit(ctx, t)
			if err == nil {
				updated++
			}
		} else {
			var update *domain.TransferUpdate
			update, err = s.rail.TransferStatus(ctx, t.ExternalID)
			if err == nil {
				var changed bool
				changed, err = s.applyUpdate(ctx, t, update)
				if changed {
					updated++
				}
			}
		}

		var throttled *domain.RailThrottledError
		if errors.As(err, &throttled) {
			s.logger.Warn("Bank rail throttled, reconcile stopped",
				zap.Duration("retry_after", throttled.RetryAfter), zap.Int("updated", updated))
			break
		}
		if err != nil {
			s.logger.Error("Reconcile transfer", zap.String("transfer", t.ID), zap.Error(err))
			errs = append(errs, fmt.Errorf("transfer %s: %w", t.ID, err))
		}
	}
	return updated, errors.Join(errs...)
}

// ApplyTransferUpdate handles the rail's status callback.
func (s *SettlementService) ApplyTransferUpdate(ctx context.Context, update *domain.TransferUpdate) (*domain.BankTransfer, error) {
	if update.ExternalID == "" && update.IdempotencyKey == "" {
		return nil, domain.ErrTransferIDRequired
	}
	if !update.Status.IsValid() {
		return nil, fmt.Errorf("%w: unknown transfer status %q", domain.ErrValidation, update.Status)
	}

	var (
		list []*domain.BankTransfer
		err  error
	)
	if update.ExternalID != "" {
		list, err = s.transfers.FindTransfers(ctx, domain.TransferFilter{ExternalID: update.ExternalID, Limit: 1})
		if err != nil {
			return nil, err
		}
	}
	if len(list) == 0 && update.IdempotencyKey != "" {
		list, err = s.transfers.FindTransfers(ctx, domain.TransferFilter{PaidBatchID: update.IdempotencyKey, Limit: 1})
		if err != nil {
			return nil, err
		}
	}
	if len(list) == 0 {
		return nil, domain.ErrDataNotFound
	}

	t := list[0]
	if _, err := s.applyUpdate(ctx, t, update); err != nil {
		return nil, err
	}
	return t, nil
}

// applyUpdate moves a transfer forward. Final transfers never change again.
func (s *SettlementService) applyUpdate(ctx context.Context, t *domain.BankTransfer,
	u *domain.TransferUpdate) (bool, error) {
	if t.Status.IsFinal() || !u.Status.IsValid() {
		return false, nil
	}
	if u.Status == t.Status && (u.ExternalID == "" || u.ExternalID == t.ExternalID) {
		return false, nil
	}

	t.Status = u.Status
	if u.ExternalID != "" {
		t.ExternalID = u.ExternalID
	}
	t.LastError = u.Error
	t.UpdatedAt = time.Now().UTC()
	if err := s.transfers.UpdateTransfer(ctx, t); err != nil {
		return false, err
	}

	publish(ctx, s.events, s.logger, EventTransferUpdated, t.PaidBatchID, t)
	return true, nil
}
