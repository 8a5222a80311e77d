package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/MikeRez0/pointsweep/internal/core/domain"
	"github.com/MikeRez0/pointsweep/internal/core/port"
	"github.com/MikeRez0/pointsweep/internal/core/port/mock"
	"github.com/MikeRez0/pointsweep/internal/core/service"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type settlementMocks struct {
	orders    *mock.MockOrderRepository
	transfers *mock.MockTransferRepository
	notifier  *mock.MockNotifier
	rail      *mock.MockBankRail
}

func newSettlementService(ctrl *gomock.Controller, withRail bool) (*service.SettlementService, *settlementMocks) {
	logger, _ := zap.NewProduction()
	m := &settlementMocks{
		orders:    mock.NewMockOrderRepository(ctrl),
		transfers: mock.NewMockTransferRepository(ctrl),
		notifier:  mock.NewMockNotifier(ctrl),
	}
	var rail port.BankRail
	if withRail {
		m.rail = mock.NewMockBankRail(ctrl)
		rail = m.rail
	}
	s := service.NewSettlementService(m.orders, m.transfers, m.notifier, rail, newLocker(ctrl),
		newEvents(ctrl), newMetrics(ctrl), lockTTL, logger)
	return s, m
}

func paid(merchantID, paidBatchID string, affected int) *domain.PaymentResult {
	at := time.Now().UTC()
	r := &domain.PaymentResult{MerchantID: merchantID, Affected: affected, PaidBatchID: paidBatchID, TotalAmount: dec("0")}
	if affected > 0 {
		r.TotalAmount = dec("49.98")
		r.OrderIDs = []string{"ORD-1", "ORD-2"}
		r.PaidAt = &at
	}
	return r
}

func TestSettlement_MarkPaidTwice(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	s, m := newSettlementService(mockCtrl, false)

	var firstID string
	gomock.InOrder(
		m.orders.EXPECT().MarkOrdersPaid(gomock.Any(), "mrc-1", gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, merchantID, paidBatchID string, _ time.Time) (*domain.PaymentResult, error) {
				firstID = paidBatchID
				return paid(merchantID, paidBatchID, 2), nil
			}),
		m.orders.EXPECT().MarkOrdersPaid(gomock.Any(), "mrc-1", gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, merchantID, paidBatchID string, _ time.Time) (*domain.PaymentResult, error) {
				return paid(merchantID, paidBatchID, 0), nil
			}),
	)
	m.transfers.EXPECT().CreateTransfer(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tr *domain.BankTransfer) (*domain.BankTransfer, error) {
			assert.Equal(t, firstID, tr.IdempotencyKey)
			assert.Equal(t, domain.TransferStatusPending, tr.Status)
			assert.Zero(t, dec("49.98").Cmp(tr.Amount))
			return tr, nil
		})
	m.notifier.EXPECT().Send(gomock.Any(), domain.NotificationTarget{Kind: domain.TargetMerchant, ID: "mrc-1"},
		domain.EventPaymentBatchPaid, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ domain.NotificationTarget, _ string, payload any) (*domain.DeliveryResult, error) {
			body := payload.(domain.PaymentBatchPaid)
			assert.Equal(t, firstID, body.PaidBatchID)
			assert.Equal(t, 2, body.Orders)
			return &domain.DeliveryResult{Status: domain.NotificationStatusSent}, nil
		})

	first, err := s.MarkPaid(context.Background(), "mrc-1", "")
	require.NoError(t, err)
	assert.Equal(t, 2, first.Affected)
	assert.True(t, strings.HasPrefix(first.PaidBatchID, domain.PrefixPaidBatch+"-"))
	assert.NotEmpty(t, first.TransferID)
	assert.Empty(t, first.Warnings)

	second, err := s.MarkPaid(context.Background(), "mrc-1", "")
	require.NoError(t, err)
	assert.Zero(t, second.Affected)
	assert.Empty(t, second.PaidBatchID)
}

func TestSettlement_MarkPaidValidation(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	s, _ := newSettlementService(mockCtrl, false)

	_, err := s.MarkPaid(context.Background(), " ", "")
	assert.ErrorIs(t, err, domain.ErrMerchantIDRequired)

	for _, id := range []string{"  ", "PAY 1", "-leading-dash", strings.Repeat("x", 65)} {
		_, err = s.MarkPaid(context.Background(), "mrc-1", id)
		assert.ErrorIs(t, err, domain.ErrInvalidPaidBatchID, id)
	}
}

func TestSettlement_MarkPaidWithRail(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	s, m := newSettlementService(mockCtrl, true)

	m.expectUnused("PAY-OCT")
	m.orders.EXPECT().MarkOrdersPaid(gomock.Any(), "mrc-1", "PAY-OCT", gomock.Any()).
		Return(paid("mrc-1", "PAY-OCT", 2), nil)
	m.transfers.EXPECT().CreateTransfer(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tr *domain.BankTransfer) (*domain.BankTransfer, error) {
			return tr, nil
		})
	m.rail.EXPECT().RequestTransfer(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req *domain.TransferRequest) (*domain.TransferUpdate, error) {
			assert.Equal(t, "PAY-OCT", req.IdempotencyKey)
			return &domain.TransferUpdate{ExternalID: "bank-9", Status: domain.TransferStatusSubmitted}, nil
		})
	m.transfers.EXPECT().UpdateTransfer(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tr *domain.BankTransfer) error {
			assert.Equal(t, "bank-9", tr.ExternalID)
			assert.Equal(t, domain.TransferStatusSubmitted, tr.Status)
			return nil
		})
	m.notifier.EXPECT().Send(gomock.Any(), gomock.Any(), domain.EventPaymentBatchPaid, gomock.Any()).
		Return(&domain.DeliveryResult{Status: domain.NotificationStatusFailed}, domain.ErrExternalDelivery)

	result, err := s.MarkPaid(context.Background(), "mrc-1", "PAY-OCT")
	require.NoError(t, err)
	assert.Equal(t, "PAY-OCT", result.PaidBatchID)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "merchant notification")
}

func (m *settlementMocks) expectUnused(paidBatchID string) {
	m.orders.EXPECT().ListOrders(gomock.Any(), domain.OrderFilter{PaidBatchID: paidBatchID, Limit: 1}).
		Return([]*domain.Order{}, nil)
	m.transfers.EXPECT().FindTransfers(gomock.Any(), domain.TransferFilter{PaidBatchID: paidBatchID, Limit: 1}).
		Return([]*domain.BankTransfer{}, nil)
}

func TestSettlement_MarkPaidReusedBatchID(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	tests := []struct {
		name      string
		orders    []*domain.Order
		transfers []*domain.BankTransfer
	}{
		{
			name:      "stamped on earlier orders",
			orders:    []*domain.Order{{ID: "ORD-9", MerchantID: "mrc-2", PaidBatchID: "PAY-FIXED"}},
			transfers: []*domain.BankTransfer{},
		},
		{
			name:   "held by a transfer of another merchant",
			orders: []*domain.Order{},
			transfers: []*domain.BankTransfer{{
				ID: "TRF-OLD", PaidBatchID: "PAY-FIXED", MerchantID: "mrc-1",
				Amount: dec("10.00"), Status: domain.TransferStatusCompleted,
			}},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s, m := newSettlementService(mockCtrl, true)
			m.orders.EXPECT().ListOrders(gomock.Any(), domain.OrderFilter{PaidBatchID: "PAY-FIXED", Limit: 1}).
				Return(test.orders, nil)
			m.transfers.EXPECT().FindTransfers(gomock.Any(), domain.TransferFilter{PaidBatchID: "PAY-FIXED", Limit: 1}).
				Return(test.transfers, nil)

			result, err := s.MarkPaid(context.Background(), "mrc-2", "PAY-FIXED")
			assert.ErrorIs(t, err, domain.ErrPaidBatchIDUsed)
			assert.ErrorIs(t, err, domain.ErrConflictingData)
			assert.Nil(t, result)
		})
	}
}

func TestSettlement_MarkPaidForeignTransfer(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	s, m := newSettlementService(mockCtrl, true)

	m.expectUnused("PAY-FIXED")
	m.orders.EXPECT().MarkOrdersPaid(gomock.Any(), "mrc-2", "PAY-FIXED", gomock.Any()).
		Return(paid("mrc-2", "PAY-FIXED", 2), nil)
	m.transfers.EXPECT().CreateTransfer(gomock.Any(), gomock.Any()).
		Return(&domain.BankTransfer{
			ID: "TRF-OLD", IdempotencyKey: "PAY-FIXED", PaidBatchID: "PAY-FIXED", MerchantID: "mrc-1",
			Amount: dec("10.00"), Status: domain.TransferStatusCompleted, ExternalID: "bank-1",
		}, nil)
	m.notifier.EXPECT().Send(gomock.Any(), gomock.Any(), domain.EventPaymentBatchPaid, gomock.Any()).
		Return(&domain.DeliveryResult{Status: domain.NotificationStatusSent}, nil)

	result, err := s.MarkPaid(context.Background(), "mrc-2", "PAY-FIXED")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Affected)
	assert.Empty(t, result.TransferID)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "bank transfer")
	assert.Contains(t, result.Warnings[0], "TRF-OLD")
}

func TestSettlement_ReconcileStopsWhenThrottled(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	s, m := newSettlementService(mockCtrl, true)

	open := []*domain.BankTransfer{
		{ID: "TRF-1", PaidBatchID: "PAY-1", ExternalID: "bank-1", Status: domain.TransferStatusSubmitted},
		{ID: "TRF-2", PaidBatchID: "PAY-2", ExternalID: "bank-2", Status: domain.TransferStatusSubmitted},
		{ID: "TRF-3", PaidBatchID: "PAY-3", ExternalID: "bank-3", Status: domain.TransferStatusSubmitted},
	}
	m.transfers.EXPECT().FindTransfers(gomock.Any(), gomock.Any()).Return(open, nil)
	m.rail.EXPECT().TransferStatus(gomock.Any(), "bank-1").
		Return(&domain.TransferUpdate{ExternalID: "bank-1", Status: domain.TransferStatusCompleted}, nil)
	m.transfers.EXPECT().UpdateTransfer(gomock.Any(), open[0]).Return(nil)
	m.rail.EXPECT().TransferStatus(gomock.Any(), "bank-2").
		Return(nil, &domain.RailThrottledError{RetryAfter: 30 * time.Second})

	n, err := s.ReconcileTransfers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, domain.TransferStatusCompleted, open[0].Status)
	assert.Equal(t, domain.TransferStatusSubmitted, open[2].Status)
}

func TestSettlement_ReconcileWithoutRail(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	s, _ := newSettlementService(mockCtrl, false)
	n, err := s.ReconcileTransfers(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSettlement_ApplyTransferUpdate(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	t.Run("found by idempotency key", func(t *testing.T) {
		s, m := newSettlementService(mockCtrl, false)
		tr := &domain.BankTransfer{ID: "TRF-1", PaidBatchID: "PAY-1", Status: domain.TransferStatusPending}

		m.transfers.EXPECT().FindTransfers(gomock.Any(), domain.TransferFilter{ExternalID: "bank-1", Limit: 1}).
			Return([]*domain.BankTransfer{}, nil)
		m.transfers.EXPECT().FindTransfers(gomock.Any(), domain.TransferFilter{PaidBatchID: "PAY-1", Limit: 1}).
			Return([]*domain.BankTransfer{tr}, nil)
		m.transfers.EXPECT().UpdateTransfer(gomock.Any(), tr).Return(nil)

		updated, err := s.ApplyTransferUpdate(context.Background(), &domain.TransferUpdate{
			ExternalID: "bank-1", IdempotencyKey: "PAY-1", Status: domain.TransferStatusProcessing,
		})
		require.NoError(t, err)
		assert.Equal(t, domain.TransferStatusProcessing, updated.Status)
		assert.Equal(t, "bank-1", updated.ExternalID)
	})

	t.Run("final transfer never changes", func(t *testing.T) {
		s, m := newSettlementService(mockCtrl, false)
		tr := &domain.BankTransfer{ID: "TRF-1", ExternalID: "bank-1", Status: domain.TransferStatusCompleted}
		m.transfers.EXPECT().FindTransfers(gomock.Any(), gomock.Any()).Return([]*domain.BankTransfer{tr}, nil)

		updated, err := s.ApplyTransferUpdate(context.Background(), &domain.TransferUpdate{
			ExternalID: "bank-1", Status: domain.TransferStatusReturned,
		})
		require.NoError(t, err)
		assert.Equal(t, domain.TransferStatusCompleted, updated.Status)
	})

	t.Run("unknown transfer", func(t *testing.T) {
		s, m := newSettlementService(mockCtrl, false)
		m.transfers.EXPECT().FindTransfers(gomock.Any(), gomock.Any()).Return([]*domain.BankTransfer{}, nil)

		_, err := s.ApplyTransferUpdate(context.Background(), &domain.TransferUpdate{
			ExternalID: "bank-x", Status: domain.TransferStatusCompleted,
		})
		assert.ErrorIs(t, err, domain.ErrDataNotFound)
	})

	t.Run("reference required", func(t *testing.T) {
		s, _ := newSettlementService(mockCtrl, false)
		_, err := s.ApplyTransferUpdate(context.Background(), &domain.TransferUpdate{Status: domain.TransferStatusCompleted})
		assert.ErrorIs(t, err, domain.ErrTransferIDRequired)
	})
}
