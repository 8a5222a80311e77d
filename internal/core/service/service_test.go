package service_test

import (
	"context"
	"errors"
	"time"

	"github.com/MikeRez0/pointsweep/internal/core/domain"
	"github.com/MikeRez0/pointsweep/internal/core/port"
	"github.com/MikeRez0/pointsweep/internal/core/port/mock"
	"github.com/golang/mock/gomock"
	"github.com/govalues/decimal"
)

const lockTTL = time.Minute

func dec(s string) decimal.Decimal {
	return decimal.MustParse(s)
}

func noopUnlock(context.Context) error {
	return nil
}

func newEvents(ctrl *gomock.Controller) *mock.MockEventPublisher {
	events := mock.NewMockEventPublisher(ctrl)
	events.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	return events
}

func newMetrics(ctrl *gomock.Controller) *mock.MockMetrics {
	m := mock.NewMockMetrics(ctrl)
	m.EXPECT().SweepFinished(gomock.Any()).AnyTimes()
	m.EXPECT().OrdersPromoted(gomock.Any()).AnyTimes()
	m.EXPECT().NotificationDelivered(gomock.Any(), gomock.Any()).AnyTimes()
	m.EXPECT().CallbackHandled(gomock.Any(), gomock.Any()).AnyTimes()
	m.EXPECT().OrdersPaid(gomock.Any()).AnyTimes()
	return m
}

func newLocker(ctrl *gomock.Controller) *mock.MockLocker {
	locker := mock.NewMockLocker(ctrl)
	locker.EXPECT().Acquire(gomock.Any(), gomock.Any(), lockTTL).Return(port.Unlock(noopUnlock), nil).AnyTimes()
	return locker
}

// applyTo mimics the repository: fn runs on o unless the event was already applied.
func applyTo(o *domain.Order, replayed bool) func(context.Context, *domain.BrokerEvent,
	port.UpdateOrderFn) (*domain.Order, bool, error) {
	return func(_ context.Context, _ *domain.BrokerEvent, fn port.UpdateOrderFn) (*domain.Order, bool, error) {
		if replayed {
			return o, true, nil
		}
		err := fn(o)
		if err != nil && !errors.Is(err, domain.ErrEventDeferred) {
			return nil, false, err
		}
		return o, false, err
	}
}

// updateOn mimics UpdateOrder on a stored copy of o.
func updateOn(o *domain.Order) func(context.Context, string, string, port.UpdateOrderFn) (*domain.Order, error) {
	return func(_ context.Context, _ string, _ string, fn port.UpdateOrderFn) (*domain.Order, error) {
		if err := fn(o); err != nil {
			return nil, err
		}
		return o, nil
	}
}
