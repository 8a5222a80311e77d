package service

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MikeRez0/pointsweep/internal/core/domain"
	"github.com/MikeRez0/pointsweep/internal/core/port"
	"go.uber.org/zap"
)

// Callback outcomes reported to metrics.
const (
	outcomeApplied  = "applied"
	outcomeReplayed = "replayed"
	outcomeHeld     = "held"
	outcomeRejected = "rejected"
	outcomeUnknown  = "unknown"
)

type eventHandler func(ctx context.Context, event *domain.BrokerEvent) (*domain.CallbackResult, error)

// orderEventFn builds the state change one broker event applies to a locked order.
type orderEventFn func(event *domain.BrokerEvent) port.UpdateOrderFn

// CallbackService applies asynchronous broker events to orders. Each (order, event type)
// pair is applied at most once.
type CallbackService struct {
	orders        port.OrderRepository
	endpoints     port.EndpointRepository
	events        port.EventPublisher
	metrics       port.Metrics
	confirmBudget int
	placedMaxAge  time.Duration
	logger        *zap.Logger

	handlers map[string]eventHandler
}

func NewCallbackService(orders port.OrderRepository, endpoints port.EndpointRepository,
	events port.EventPublisher, metrics port.Metrics, confirmBudget int, placedMaxAge time.Duration,
	logger *zap.Logger) *CallbackService {
	s := &CallbackService{
		orders:        orders,
		endpoints:     endpoints,
		events:        events,
		metrics:       metrics,
		confirmBudget: confirmBudget,
		placedMaxAge:  placedMaxAge,
		logger:        logger,
	}

	s.handlers = map[string]eventHandler{
		domain.EventOrderAcknowledged:   s.orderEvent(s.acknowledge),
		domain.EventOrderConfirmed:      s.orderEvent(s.confirm),
		domain.EventOrderExecuted:       s.orderEvent(s.execute),
		domain.EventOrderRejected:       s.orderEvent(s.terminate(domain.OrderStatusFailed)),
		domain.EventOrderCancelled:      s.orderEvent(s.terminate(domain.OrderStatusCancelled)),
		domain.EventOrderSold:           s.orderEvent(s.sold),
		domain.EventSweepOrders:         s.sweepOrders,
		domain.EventCredentialsValidate: s.validateCredentials,
	}
	return s
}

func (s *CallbackService) Handle(ctx context.Context, event *domain.BrokerEvent) (*domain.CallbackResult, error) {
	if err := event.Validate(); err != nil {
		s.metrics.CallbackHandled(event.Type, outcomeRejected)
		return nil, err
	}
	if event.ReceivedAt.IsZero() {
		event.ReceivedAt = time.Now().UTC()
	}
	// a fill without its own time counts as filled on receipt
	if event.Execution != nil && event.Execution.At.IsZero() {
		fill := *event.Execution
		fill.At = event.ReceivedAt
		event.Execution = &fill
	}

	handler, ok := s.handlers[event.Type]
	if !ok {
		s.logger.Warn("Unknown broker event",
			zap.String("event", event.Type),
			zap.String("broker", event.BrokerID),
			zap.String("order", event.OrderID))
		s.metrics.CallbackHandled(event.Type, outcomeUnknown)
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownEventType, event.Type)
	}

	result, err := handler(ctx, event)
	switch {
	case err != nil:
		s.metrics.CallbackHandled(event.Type, outcomeRejected)
	case result.Replayed:
		s.metrics.CallbackHandled(event.Type, outcomeReplayed)
	case result.Held:
		s.metrics.CallbackHandled(event.Type, outcomeHeld)
	default:
		s.metrics.CallbackHandled(event.Type, outcomeApplied)
	}
	return result, err
}

func (s *CallbackService) orderEvent(build orderEventFn) eventHandler {
	return func(ctx context.Context, event *domain.BrokerEvent) (*domain.CallbackResult, error) {
		order, replayed, held, err := s.apply(ctx, event, build(event))
		if err != nil {
			return nil, err
		}
		return &domain.CallbackResult{
			EventType:       event.Type,
			OrderID:         order.ID,
			Status:          order.Status,
			Replayed:        replayed,
			Held:            held,
			ConfirmAttempts: order.ConfirmAttempts,
		}, nil
	}
}

// apply runs fn in the event transaction and publishes the committed change.
func (s *CallbackService) apply(ctx context.Context, event *domain.BrokerEvent,
	fn port.UpdateOrderFn) (*domain.Order, bool, bool, error) {
	var prev domain.OrderStatus
	order, replayed, err := s.orders.ApplyOrderEvent(ctx, event, func(o *domain.Order) error {
		if event.BrokerID != "" && o.BrokerID != event.BrokerID {
			return fmt.Errorf("%w: order %s", domain.ErrDataNotFound, o.ID)
		}
		prev = o.Status
		return fn(o)
	})
	held := errors.Is(err, domain.ErrEventDeferred)
	if err != nil && !held {
		if !errors.Is(err, domain.ErrConcurrencyConflict) && !errors.Is(err, domain.ErrDataNotFound) {
			s.logger.Error("Apply broker event",
				zap.String("event", event.Type), zap.String("order", event.OrderID), zap.Error(err))
		}
		return nil, false, false, err
	}
	if !replayed {
		publishOrderChange(ctx, s.events, s.logger, order, prev, event.Type)
	}
	return order, replayed, held, nil
}

func (s *CallbackService) acknowledge(event *domain.BrokerEvent) port.UpdateOrderFn {
	return func(o *domain.Order) error {
		if event.Reference != "" {
			o.BrokerReference = event.Reference
		}
		if o.Status == domain.OrderStatusPlaced {
			o.UpdatedAt = event.ReceivedAt
			return nil
		}
		return o.Transition(domain.OrderStatusPlaced, event.ReceivedAt)
	}
}

// confirm keeps an order placed while the broker confirms without execution data.
// After confirmBudget such confirmations the order fails.
func (s *CallbackService) confirm(event *domain.BrokerEvent) port.UpdateOrderFn {
	return func(o *domain.Order) error {
		if err := o.Status.CheckTransition(domain.OrderStatusConfirmed); err != nil {
			return err
		}
		if event.ExecReference != "" {
			o.ExecReference = event.ExecReference
		}
		if event.Execution.Complete() {
			o.ApplyExecution(event.Execution)
			return o.Transition(domain.OrderStatusConfirmed, event.ReceivedAt)
		}

		o.ConfirmAttempts++
		o.UpdatedAt = event.ReceivedAt
		if s.confirmBudget > 0 && o.ConfirmAttempts >= s.confirmBudget {
			o.StatusReason = fmt.Sprintf("confirmed %d times without execution data", o.ConfirmAttempts)
			return o.Transition(domain.OrderStatusFailed, event.ReceivedAt)
		}
		return domain.ErrEventDeferred
	}
}

func (s *CallbackService) execute(event *domain.BrokerEvent) port.UpdateOrderFn {
	return func(o *domain.Order) error {
		if err := o.Status.CheckTransition(domain.OrderStatusExecuted); err != nil {
			return err
		}
		if event.Execution.Complete() {
			o.ApplyExecution(event.Execution)
		}
		if !o.Execution.Complete() {
			return fmt.Errorf("%w: execution data is required", domain.ErrValidation)
		}
		if event.ExecReference != "" {
			o.ExecReference = event.ExecReference
		}
		return o.Transition(domain.OrderStatusExecuted, event.ReceivedAt)
	}
}

func (s *CallbackService) terminate(status domain.OrderStatus) orderEventFn {
	return func(event *domain.BrokerEvent) port.UpdateOrderFn {
		return func(o *domain.Order) error {
			if err := o.Transition(status, event.ReceivedAt); err != nil {
				return err
			}
			o.StatusReason = event.Reason
			return nil
		}
	}
}

func (s *CallbackService) sold(event *domain.BrokerEvent) port.UpdateOrderFn {
	return func(o *domain.Order) error {
		return o.Transition(domain.OrderStatusSold, event.ReceivedAt)
	}
}

// sweepOrders acknowledges every order listed in a broker's batch answer. Each item is
// its own idempotent event, so a partially applied list can be re-sent as a whole.
func (s *CallbackService) sweepOrders(ctx context.Context, event *domain.BrokerEvent) (*domain.CallbackResult, error) {
	if len(event.Orders) == 0 {
		return nil, domain.ErrOrderIDRequired
	}

	result := &domain.CallbackResult{EventType: event.Type, Replayed: true}
	for _, item := range event.Orders {
		itemResult := domain.CallbackItemResult{OrderID: item.OrderID}
		if strings.TrimSpace(item.OrderID) == "" {
			itemResult.Error = domain.ErrOrderIDRequired.Error()
			result.Items = append(result.Items, itemResult)
			result.Replayed = false
			continue
		}

		ref := item.Reference
		if ref == "" {
			ref = event.Reference
		}
		itemEvent := &domain.BrokerEvent{
			Type:       domain.EventSweepOrders,
			OrderID:    item.OrderID,
			BrokerID:   event.BrokerID,
			Reference:  ref,
			ReceivedAt: event.ReceivedAt,
		}
		order, replayed, _, err := s.apply(ctx, itemEvent, s.acknowledge(itemEvent))
		if err != nil {
			itemResult.Error = err.Error()
			result.Replayed = false
		} else {
			itemResult.Status = order.Status
			itemResult.Replayed = replayed
			if !replayed {
				result.Replayed = false
			}
		}
		result.Items = append(result.Items, itemResult)
	}
	return result, nil
}

// validateCredentials never touches orders.
func (s *CallbackService) validateCredentials(ctx context.Context, event *domain.BrokerEvent) (*domain.CallbackResult, error) {
	if strings.TrimSpace(event.BrokerID) == "" {
		return nil, fmt.Errorf("%w: broker id is required", domain.ErrValidation)
	}
	broker, err := s.endpoints.GetBroker(ctx, event.BrokerID)
	if err != nil {
		return nil, err
	}

	sum := sha256.Sum256([]byte(event.APIKey))
	hash := hex.EncodeToString(sum[:])
	valid := event.APIKey != "" && broker.APIKeyHash != "" &&
		subtle.ConstantTimeCompare([]byte(hash), []byte(strings.ToLower(broker.APIKeyHash))) == 1

	return &domain.CallbackResult{EventType: event.Type, CredentialsValid: &valid}, nil
}

// EscalateStale fails orders left in placed longer than the configured age.
func (s *CallbackService) EscalateStale(ctx context.Context) (int, error) {
	if s.placedMaxAge <= 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	cutoff := now.Add(-s.placedMaxAge)
	stale, err := s.orders.ListOrders(ctx, domain.OrderFilter{
		Statuses:     []domain.OrderStatus{domain.OrderStatusPlaced},
		PlacedBefore: &cutoff,
	})
	if err != nil {
		return 0, err
	}

	var (
		failed int
		errs   []error
	)
	for _, o := range stale {
		updated, err := s.orders.UpdateOrder(ctx, o.ID, "escalation", func(o *domain.Order) error {
			if o.Status != domain.OrderStatusPlaced {
				return fmt.Errorf("%w: order is %s", domain.ErrStatusChanged, o.Status)
			}
			o.StatusReason = fmt.Sprintf("no execution report within %s", s.placedMaxAge)
			return o.Transition(domain.OrderStatusFailed, now)
		})
		if err != nil {
			if errors.Is(err, domain.ErrStatusChanged) {
				continue
			}
			s.logger.Error("Escalate stale order", zap.String("order", o.ID), zap.Error(err))
			errs = append(errs, fmt.Errorf("order %s: %w", o.ID, err))
			continue
		}
		failed++
		publishOrderChange(ctx, s.events, s.logger, updated, domain.OrderStatusPlaced, "escalation")
	}

	if failed > 0 {
		s.logger.Info("Stale placed orders failed", zap.Int("orders", failed))
	}
	return failed, errors.Join(errs...)
}
