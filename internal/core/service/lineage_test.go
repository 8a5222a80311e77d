package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MikeRez0/pointsweep/internal/core/domain"
	"github.com/MikeRez0/pointsweep/internal/core/port/mock"
	"github.com/MikeRez0/pointsweep/internal/core/service"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type lineageMocks struct {
	orders        *mock.MockOrderRepository
	batches       *mock.MockBatchRepository
	runs          *mock.MockSweepRepository
	notifications *mock.MockNotificationRepository
	transfers     *mock.MockTransferRepository
}

func newLineageService(ctrl *gomock.Controller) (*service.LineageService, *lineageMocks) {
	logger, _ := zap.NewProduction()
	m := &lineageMocks{
		orders:        mock.NewMockOrderRepository(ctrl),
		batches:       mock.NewMockBatchRepository(ctrl),
		runs:          mock.NewMockSweepRepository(ctrl),
		notifications: mock.NewMockNotificationRepository(ctrl),
		transfers:     mock.NewMockTransferRepository(ctrl),
	}
	return service.NewLineageService(m.orders, m.batches, m.runs, m.notifications, m.transfers, logger), m
}

func stages(l *domain.Lineage) []domain.LineageStage {
	out := make([]domain.LineageStage, 0, len(l.Chain))
	for _, n := range l.Chain {
		out = append(out, n.Stage)
	}
	return out
}

func settledOrder() *domain.Order {
	at := time.Date(2026, 10, 19, 14, 0, 0, 0, time.UTC)
	paidAt := at.Add(48 * time.Hour)
	return &domain.Order{
		ID:              "ORD-1",
		MerchantID:      "mrc-1",
		BatchID:         "PREP-1",
		PreparedOrderID: "PO-1",
		BasketID:        "BSK-1",
		BrokerID:        "brk-a",
		Status:          domain.OrderStatusSettled,
		BrokerReference: "BR-1",
		PaidBatchID:     "PAY-1",
		PaidAt:          &paidAt,
		PlacedAt:        &at,
		CreatedAt:       at,
		UpdatedAt:       paidAt,
	}
}

func (m *lineageMocks) expectFullChain() {
	m.batches.EXPECT().GetBatch(gomock.Any(), "PREP-1").
		Return(&domain.PrepareBatch{ID: "PREP-1", Status: domain.BatchStatusSubmitted}, nil)
	m.batches.EXPECT().ListPreparedOrders(gomock.Any(), domain.PreparedOrderFilter{BatchID: "PREP-1", BasketID: "BSK-1"}).
		Return([]*domain.PreparedOrder{{ID: "PO-1", BatchID: "PREP-1", BasketID: "BSK-1"}}, 1, nil)
	m.notifications.EXPECT().FindNotifications(gomock.Any(), domain.NotificationFilter{OrderID: "ORD-1"}).
		Return([]*domain.Notification{{
			ID:        "NTF-1",
			EventType: domain.EventOrderBatch,
			Status:    domain.NotificationStatusSent,
			Payload:   `{"sweep_batch_id":"SWP-1","prepare_batch_id":"PREP-1","orders":[{"order_id":"ORD-1"}]}`,
		}}, nil)
	m.runs.EXPECT().GetSweepRun(gomock.Any(), "SWP-1").
		Return(&domain.SweepRun{ID: "SWP-1", BatchID: "PREP-1", Kind: domain.SweepKindRun}, nil)
	m.notifications.EXPECT().FindNotifications(gomock.Any(), domain.NotificationFilter{PaidBatchID: "PAY-1"}).
		Return([]*domain.Notification{{
			ID:        "NTF-2",
			EventType: domain.EventPaymentBatchPaid,
			Status:    domain.NotificationStatusSent,
			Payload:   `{"paid_batch_id":"PAY-1","order_ids":["ORD-1"]}`,
		}}, nil)
	m.transfers.EXPECT().FindTransfers(gomock.Any(), domain.TransferFilter{PaidBatchID: "PAY-1"}).
		Return([]*domain.BankTransfer{{ID: "TRF-1", PaidBatchID: "PAY-1", Status: domain.TransferStatusCompleted}}, nil)
}

func TestLineage_TraceFullChain(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	want := []domain.LineageStage{
		domain.StagePrepareBatch,
		domain.StagePreparedOrder,
		domain.StageOrder,
		domain.StageSweepRun,
		domain.StageNotification,
		domain.StageNotification,
		domain.StagePaymentBatch,
		domain.StageBankTransfer,
	}

	anchors := []struct {
		name   string
		id     string
		kind   domain.LineageKind
		expect func(m *lineageMocks)
	}{
		{
			name: "from order",
			id:   "ORD-1",
			kind: domain.LineageOrder,
			expect: func(m *lineageMocks) {
				m.orders.EXPECT().GetOrder(gomock.Any(), "ORD-1").Return(settledOrder(), nil)
			},
		},
		{
			name: "from broker reference",
			id:   "BR-1",
			kind: domain.LineageBrokerReference,
			expect: func(m *lineageMocks) {
				m.orders.EXPECT().ListOrders(gomock.Any(), domain.OrderFilter{BrokerReference: "BR-1"}).
					Return([]*domain.Order{settledOrder()}, nil)
			},
		},
		{
			name: "from payment batch",
			id:   "PAY-1",
			kind: domain.LineageACHBatch,
			expect: func(m *lineageMocks) {
				m.orders.EXPECT().ListOrders(gomock.Any(), domain.OrderFilter{PaidBatchID: "PAY-1"}).
					Return([]*domain.Order{settledOrder()}, nil)
			},
		},
	}

	for _, anchor := range anchors {
		t.Run(anchor.name, func(t *testing.T) {
			s, m := newLineageService(mockCtrl)
			anchor.expect(m)
			m.expectFullChain()

			lineage, err := s.Trace(context.Background(), anchor.id, anchor.kind)
			require.NoError(t, err)

			assert.Equal(t, anchor.id, lineage.AnchorID)
			assert.Equal(t, anchor.kind, lineage.AnchorType)
			assert.Equal(t, want, stages(lineage))
			assert.Empty(t, lineage.Gaps)

			order := lineage.Chain[2]
			assert.Equal(t, "ORD-1", order.ID)
			assert.Equal(t, "PO-1", order.Parent)
			assert.Equal(t, "PAY-1", lineage.Chain[6].ID)
			assert.Equal(t, "1", lineage.Chain[6].Details["orders"])
		})
	}
}

func TestLineage_TraceFromSweepBatch(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	s, m := newLineageService(mockCtrl)
	m.runs.EXPECT().GetSweepRun(gomock.Any(), "SWP-1").
		Return(&domain.SweepRun{ID: "SWP-1", BatchID: "PREP-1", Kind: domain.SweepKindRun}, nil)
	m.notifications.EXPECT().FindNotifications(gomock.Any(), domain.NotificationFilter{SweepBatchID: "SWP-1"}).
		Return([]*domain.Notification{{
			ID:      "NTF-1",
			Status:  domain.NotificationStatusSent,
			Payload: `{"sweep_batch_id":"SWP-1","orders":[{"order_id":"ORD-1"}]}`,
		}}, nil)
	m.orders.EXPECT().ListOrders(gomock.Any(), domain.OrderFilter{IDs: []string{"ORD-1"}}).
		Return([]*domain.Order{settledOrder()}, nil)
	m.batches.EXPECT().GetBatch(gomock.Any(), "PREP-1").
		Return(&domain.PrepareBatch{ID: "PREP-1", Status: domain.BatchStatusSubmitted}, nil)
	m.batches.EXPECT().ListPreparedOrders(gomock.Any(), gomock.Any()).
		Return([]*domain.PreparedOrder{{ID: "PO-1", BatchID: "PREP-1", BasketID: "BSK-1"}}, 1, nil)
	m.notifications.EXPECT().FindNotifications(gomock.Any(), domain.NotificationFilter{OrderID: "ORD-1"}).
		Return([]*domain.Notification{{
			ID:      "NTF-1",
			Status:  domain.NotificationStatusSent,
			Payload: `{"sweep_batch_id":"SWP-1","orders":[{"order_id":"ORD-1"}]}`,
		}}, nil)
	m.notifications.EXPECT().FindNotifications(gomock.Any(), domain.NotificationFilter{PaidBatchID: "PAY-1"}).
		Return([]*domain.Notification{}, nil)
	m.transfers.EXPECT().FindTransfers(gomock.Any(), gomock.Any()).Return([]*domain.BankTransfer{}, nil)

	lineage, err := s.Trace(context.Background(), "SWP-1", domain.LineageSweepBatch)
	require.NoError(t, err)

	assert.Equal(t, []domain.LineageStage{
		domain.StagePrepareBatch,
		domain.StagePreparedOrder,
		domain.StageOrder,
		domain.StageSweepRun,
		domain.StageNotification,
		domain.StagePaymentBatch,
	}, stages(lineage))
	require.Len(t, lineage.Gaps, 1)
	assert.Equal(t, domain.StageBankTransfer, lineage.Gaps[0].Stage)
}

func TestLineage_GapsDoNotStopTrace(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	s, m := newLineageService(mockCtrl)
	o := settledOrder()
	o.PaidBatchID = ""
	o.PaidAt = nil

	m.orders.EXPECT().GetOrder(gomock.Any(), "ORD-1").Return(o, nil)
	m.batches.EXPECT().GetBatch(gomock.Any(), "PREP-1").Return(nil, domain.ErrDataNotFound)
	m.batches.EXPECT().ListPreparedOrders(gomock.Any(), gomock.Any()).
		Return(nil, 0, domain.Persistence(errors.New("connection reset")))
	m.notifications.EXPECT().FindNotifications(gomock.Any(), domain.NotificationFilter{OrderID: "ORD-1"}).
		Return([]*domain.Notification{}, nil)

	lineage, err := s.Trace(context.Background(), "ORD-1", domain.LineageOrder)
	require.NoError(t, err)

	assert.Equal(t, []domain.LineageStage{domain.StageOrder}, stages(lineage))
	gapStages := make([]domain.LineageStage, 0, len(lineage.Gaps))
	for _, g := range lineage.Gaps {
		gapStages = append(gapStages, g.Stage)
		assert.NotEmpty(t, g.Reason)
	}
	assert.ElementsMatch(t, []domain.LineageStage{
		domain.StagePrepareBatch, domain.StagePreparedOrder, domain.StageNotification,
	}, gapStages)
}

func TestLineage_Anchor(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	s, m := newLineageService(mockCtrl)

	_, err := s.Trace(context.Background(), "", domain.LineageOrder)
	assert.ErrorIs(t, err, domain.ErrLineageIDRequired)

	_, err = s.Trace(context.Background(), "ORD-1", domain.LineageKind("invoice"))
	assert.ErrorIs(t, err, domain.ErrUnknownLineageType)

	m.orders.EXPECT().GetOrder(gomock.Any(), "ORD-404").Return(nil, domain.ErrDataNotFound)
	_, err = s.Trace(context.Background(), "ORD-404", domain.LineageOrder)
	assert.ErrorIs(t, err, domain.ErrDataNotFound)

	m.orders.EXPECT().ListOrders(gomock.Any(), domain.OrderFilter{ExecReference: "EX-404"}).Return([]*domain.Order{}, nil)
	_, err = s.Trace(context.Background(), "EX-404", domain.LineageExecReference)
	assert.ErrorIs(t, err, domain.ErrDataNotFound)
}
