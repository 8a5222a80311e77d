package service_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
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

func newCallbackService(ctrl *gomock.Controller, budget int, maxAge time.Duration) (*service.CallbackService,
	*mock.MockOrderRepository, *mock.MockEndpointRepository) {
	logger, _ := zap.NewProduction()
	orders := mock.NewMockOrderRepository(ctrl)
	endpoints := mock.NewMockEndpointRepository(ctrl)
	s := service.NewCallbackService(orders, endpoints, newEvents(ctrl), newMetrics(ctrl), budget, maxAge, logger)
	return s, orders, endpoints
}

func placedOrder() *domain.Order {
	placedAt := time.Now().Add(-time.Hour)
	return &domain.Order{
		ID:         "ORD-1",
		MerchantID: "mrc-1",
		BrokerID:   "brk-a",
		Symbol:     "AAPL",
		Amount:     dec("25.00"),
		Status:     domain.OrderStatusPlaced,
		PlacedAt:   &placedAt,
	}
}

func TestCallback_Handle(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	now := time.Date(2026, 10, 19, 15, 0, 0, 0, time.UTC)
	fill := &domain.Execution{Price: dec("187.50"), Shares: dec("0.1333"), Amount: dec("24.99"), At: now}

	type callbackTest struct {
		name        string
		order       func() *domain.Order
		replayed    bool
		event       domain.BrokerEvent
		expError    error
		expStatus   domain.OrderStatus
		expReplayed bool
		expHeld     bool
		check       func(t *testing.T, o *domain.Order)
	}

	tests := []callbackTest{
		{
			name:      "confirmation with execution data",
			order:     placedOrder,
			event:     domain.BrokerEvent{Type: domain.EventOrderConfirmed, OrderID: "ORD-1", BrokerID: "brk-a", Execution: fill},
			expStatus: domain.OrderStatusConfirmed,
			check: func(t *testing.T, o *domain.Order) {
				require.NotNil(t, o.Execution)
				assert.Zero(t, dec("24.99").Cmp(o.Execution.Amount))
				assert.NotNil(t, o.ConfirmedAt)
			},
		},
		{
			name:  "confirmation without fill time",
			order: placedOrder,
			event: domain.BrokerEvent{
				Type: domain.EventOrderConfirmed, OrderID: "ORD-1",
				Execution: &domain.Execution{Price: dec("187.50"), Shares: dec("0.1333"), Amount: dec("24.99")},
			},
			expStatus: domain.OrderStatusConfirmed,
			check: func(t *testing.T, o *domain.Order) {
				require.NotNil(t, o.Execution)
				assert.Equal(t, now, o.Execution.At)
				assert.Zero(t, o.ConfirmAttempts)
			},
		},
		{
			name:  "execution without fill time",
			order: placedOrder,
			event: domain.BrokerEvent{
				Type: domain.EventOrderExecuted, OrderID: "ORD-1",
				Execution: &domain.Execution{Price: dec("187.50"), Shares: dec("0.1333"), Amount: dec("24.99")},
			},
			expStatus: domain.OrderStatusExecuted,
			check: func(t *testing.T, o *domain.Order) {
				assert.Equal(t, now, o.Execution.At)
			},
		},
		{
			name:      "confirmation without execution data is held",
			order:     placedOrder,
			event:     domain.BrokerEvent{Type: domain.EventOrderConfirmed, OrderID: "ORD-1"},
			expStatus: domain.OrderStatusPlaced,
			expHeld:   true,
			check: func(t *testing.T, o *domain.Order) {
				assert.Equal(t, 1, o.ConfirmAttempts)
			},
		},
		{
			name: "confirmation budget exhausted",
			order: func() *domain.Order {
				o := placedOrder()
				o.ConfirmAttempts = 2
				return o
			},
			event:     domain.BrokerEvent{Type: domain.EventOrderConfirmed, OrderID: "ORD-1"},
			expStatus: domain.OrderStatusFailed,
			check: func(t *testing.T, o *domain.Order) {
				assert.Equal(t, 3, o.ConfirmAttempts)
				assert.NotEmpty(t, o.StatusReason)
			},
		},
		{
			name:        "replayed event changes nothing",
			order:       placedOrder,
			replayed:    true,
			event:       domain.BrokerEvent{Type: domain.EventOrderConfirmed, OrderID: "ORD-1", Execution: fill},
			expStatus:   domain.OrderStatusPlaced,
			expReplayed: true,
		},
		{
			name:      "acknowledgement stores reference",
			order:     func() *domain.Order { o := placedOrder(); o.Status = domain.OrderStatusPending; o.PlacedAt = nil; return o },
			event:     domain.BrokerEvent{Type: domain.EventOrderAcknowledged, OrderID: "ORD-1", Reference: "BR-77"},
			expStatus: domain.OrderStatusPlaced,
			check: func(t *testing.T, o *domain.Order) {
				assert.Equal(t, "BR-77", o.BrokerReference)
			},
		},
		{
			name:      "rejection fails the order",
			order:     placedOrder,
			event:     domain.BrokerEvent{Type: domain.EventOrderRejected, OrderID: "ORD-1", Reason: "halted"},
			expStatus: domain.OrderStatusFailed,
			check: func(t *testing.T, o *domain.Order) {
				assert.Equal(t, "halted", o.StatusReason)
			},
		},
		{
			name:     "execution without data",
			order:    placedOrder,
			event:    domain.BrokerEvent{Type: domain.EventOrderExecuted, OrderID: "ORD-1"},
			expError: domain.ErrValidation,
		},
		{
			name: "cancel after confirmation",
			order: func() *domain.Order {
				o := placedOrder()
				o.Status = domain.OrderStatusConfirmed
				o.Execution = fill
				return o
			},
			event:    domain.BrokerEvent{Type: domain.EventOrderCancelled, OrderID: "ORD-1"},
			expError: domain.ErrEligibility,
		},
		{
			name:     "order of another broker",
			order:    placedOrder,
			event:    domain.BrokerEvent{Type: domain.EventOrderConfirmed, OrderID: "ORD-1", BrokerID: "brk-z", Execution: fill},
			expError: domain.ErrDataNotFound,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s, orders, _ := newCallbackService(mockCtrl, 3, 0)
			o := test.order()
			orders.EXPECT().ApplyOrderEvent(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(applyTo(o, test.replayed))

			event := test.event
			event.ReceivedAt = now
			result, err := s.Handle(context.Background(), &event)

			if test.expError != nil {
				assert.ErrorIs(t, err, test.expError)
				assert.Nil(t, result)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.expStatus, result.Status)
			assert.Equal(t, test.expReplayed, result.Replayed)
			assert.Equal(t, test.expHeld, result.Held)
			if test.check != nil {
				test.check(t, o)
			}
		})
	}
}

func TestCallback_Rejected(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	s, _, _ := newCallbackService(mockCtrl, 0, 0)

	_, err := s.Handle(context.Background(), &domain.BrokerEvent{Type: "order.teleported", OrderID: "ORD-1"})
	assert.ErrorIs(t, err, domain.ErrUnknownEventType)

	_, err = s.Handle(context.Background(), &domain.BrokerEvent{Type: domain.EventOrderConfirmed})
	assert.ErrorIs(t, err, domain.ErrOrderIDRequired)

	_, err = s.Handle(context.Background(), &domain.BrokerEvent{})
	assert.ErrorIs(t, err, domain.ErrEventTypeRequired)

	_, err = s.Handle(context.Background(), &domain.BrokerEvent{Type: domain.EventSweepOrders})
	assert.ErrorIs(t, err, domain.ErrOrderIDRequired)
}

func TestCallback_SweepOrders(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	s, orders, _ := newCallbackService(mockCtrl, 0, 0)

	first := placedOrder()
	first.Status = domain.OrderStatusPending
	second := placedOrder()
	second.ID = "ORD-2"

	orders.EXPECT().ApplyOrderEvent(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, event *domain.BrokerEvent, fn port.UpdateOrderFn) (*domain.Order, bool, error) {
			assert.Equal(t, domain.EventSweepOrders, event.Type)
			switch event.OrderID {
			case "ORD-1":
				assert.Equal(t, "BR-1", event.Reference)
				return applyTo(first, false)(ctx, event, fn)
			case "ORD-2":
				assert.Equal(t, "BATCH-REF", event.Reference)
				return applyTo(second, true)(ctx, event, fn)
			}
			return nil, false, domain.ErrDataNotFound
		}).Times(3)

	result, err := s.Handle(context.Background(), &domain.BrokerEvent{
		Type:      domain.EventSweepOrders,
		BrokerID:  "brk-a",
		Reference: "BATCH-REF",
		Orders: []domain.BrokerEventOrder{
			{OrderID: "ORD-1", Reference: "BR-1"},
			{OrderID: "ORD-2"},
			{OrderID: "ORD-404"},
		},
	})
	require.NoError(t, err)
	require.Len(t, result.Items, 3)

	assert.Equal(t, domain.OrderStatusPlaced, result.Items[0].Status)
	assert.False(t, result.Items[0].Replayed)
	assert.True(t, result.Items[1].Replayed)
	assert.NotEmpty(t, result.Items[2].Error)
	assert.False(t, result.Replayed)
	assert.Equal(t, "BR-1", first.BrokerReference)
}

func TestCallback_ValidateCredentials(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	s, _, endpoints := newCallbackService(mockCtrl, 0, 0)
	sum := sha256.Sum256([]byte("key-123"))
	broker := &domain.Broker{ID: "brk-a", APIKeyHash: hex.EncodeToString(sum[:])}
	endpoints.EXPECT().GetBroker(gomock.Any(), "brk-a").Return(broker, nil).Times(2)

	for key, want := range map[string]bool{"key-123": true, "key-124": false} {
		t.Run(fmt.Sprintf("key %s", key), func(t *testing.T) {
			result, err := s.Handle(context.Background(), &domain.BrokerEvent{
				Type: domain.EventCredentialsValidate, BrokerID: "brk-a", APIKey: key,
			})
			require.NoError(t, err)
			require.NotNil(t, result.CredentialsValid)
			assert.Equal(t, want, *result.CredentialsValid)
		})
	}
}

func TestCallback_EscalateStale(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	t.Run("disabled without max age", func(t *testing.T) {
		s, _, _ := newCallbackService(mockCtrl, 0, 0)
		n, err := s.EscalateStale(context.Background())
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("stale placed orders fail", func(t *testing.T) {
		s, orders, _ := newCallbackService(mockCtrl, 0, 30*time.Minute)

		stale := placedOrder()
		moved := placedOrder()
		moved.ID = "ORD-2"
		moved.Status = domain.OrderStatusConfirmed

		orders.EXPECT().ListOrders(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter domain.OrderFilter) ([]*domain.Order, error) {
				assert.Equal(t, []domain.OrderStatus{domain.OrderStatusPlaced}, filter.Statuses)
				require.NotNil(t, filter.PlacedBefore)
				assert.WithinDuration(t, time.Now().Add(-30*time.Minute), *filter.PlacedBefore, time.Minute)
				return []*domain.Order{placedOrder(), {ID: "ORD-2", Status: domain.OrderStatusPlaced}}, nil
			})
		orders.EXPECT().UpdateOrder(gomock.Any(), "ORD-1", "escalation", gomock.Any()).DoAndReturn(updateOn(stale))
		orders.EXPECT().UpdateOrder(gomock.Any(), "ORD-2", "escalation", gomock.Any()).DoAndReturn(updateOn(moved))

		n, err := s.EscalateStale(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.Equal(t, domain.OrderStatusFailed, stale.Status)
		assert.Equal(t, domain.OrderStatusConfirmed, moved.Status)
	})
}
