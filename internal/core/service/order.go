package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MikeRez0/pointsweep/internal/core/domain"
	"github.com/MikeRez0/pointsweep/internal/core/port"
	"go.uber.org/zap"
)

type OrderService struct {
	repo   port.OrderRepository
	events port.EventPublisher
	logger *zap.Logger
}

func NewOrderService(repo port.OrderRepository, events port.EventPublisher, logger *zap.Logger) (*OrderService, error) {
	return &OrderService{
		repo:   repo,
		events: events,
		logger: logger,
	}, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id string) (*domain.Order, []domain.StatusChange, error) {
	if strings.TrimSpace(id) == "" {
		return nil, nil, domain.ErrOrderIDRequired
	}

	order, err := s.repo.GetOrder(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	history, err := s.repo.ListStatusHistory(ctx, id)
	if err != nil {
		s.logger.Error("Get order history", zap.String("order", id), zap.Error(err))
		return nil, nil, err
	}
	return order, history, nil
}

// Cancel is only possible while the order is pending or placed.
func (s *OrderService) Cancel(ctx context.Context, id string) (*domain.Order, error) {
	return s.transition(ctx, id, domain.OrderStatusCancelled, "admin.cancel", nil)
}

func (s *OrderService) RequestSell(ctx context.Context, id string) (*domain.Order, error) {
	return s.transition(ctx, id, domain.OrderStatusSell, "member.sell", nil)
}

// RevertSell corrects a sell request back to settled. Other routes to settled
// belong to payment settlement.
func (s *OrderService) RevertSell(ctx context.Context, id string) (*domain.Order, error) {
	return s.transition(ctx, id, domain.OrderStatusSettled, "member.sell_revert",
		[]domain.OrderStatus{domain.OrderStatusSell})
}

func (s *OrderService) transition(ctx context.Context, id string, next domain.OrderStatus,
	source string, from []domain.OrderStatus) (*domain.Order, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrOrderIDRequired
	}

	var prev domain.OrderStatus
	order, err := s.repo.UpdateOrder(ctx, id, source, func(o *domain.Order) error {
		prev = o.Status
		if len(from) > 0 && !hasStatus(from, o.Status) {
			return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, o.Status, next)
		}
		return o.Transition(next, time.Now().UTC())
	})
	if err != nil {
		return nil, err
	}

	publishOrderChange(ctx, s.events, s.logger, order, prev, source)
	return order, nil
}

func hasStatus(list []domain.OrderStatus, s domain.OrderStatus) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
