package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/MikeRez0/pointsweep/internal/core/domain"
	"github.com/MikeRez0/pointsweep/internal/core/port"
	"go.uber.org/zap"
)

// NotificationService delivers signed webhooks and keeps an auditable row per attempt.
// Input and output are ids and results, so it can sit behind a queue unchanged.
type NotificationService struct {
	repo      port.NotificationRepository
	endpoints port.EndpointRepository
	transport port.WebhookTransport
	metrics   port.Metrics
	logger    *zap.Logger
}

func NewNotificationService(repo port.NotificationRepository, endpoints port.EndpointRepository,
	transport port.WebhookTransport, metrics port.Metrics, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		repo:      repo,
		endpoints: endpoints,
		transport: transport,
		metrics:   metrics,
		logger:    logger,
	}
}

func (s *NotificationService) Send(ctx context.Context, target domain.NotificationTarget,
	eventType string, payload any) (*domain.DeliveryResult, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(eventType) == "" {
		return nil, domain.ErrEventTypeRequired
	}

	endpoint, err := s.endpoints.GetEndpoint(ctx, target)
	if err != nil {
		return nil, err
	}

	// serialized once: the stored payload, the signature and the wire body are the same bytes
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: payload: %w", domain.ErrValidation, err)
	}

	now := time.Now().UTC()
	n := &domain.Notification{
		ID:        domain.NewID(domain.PrefixNotification),
		Target:    target,
		EventType: eventType,
		Status:    domain.NotificationStatusPending,
		Payload:   string(body),
		Attempts:  1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.CreateNotification(ctx, n); err != nil {
		s.logger.Error("Create notification", zap.String("target", target.ID), zap.Error(err))
		return nil, err
	}

	return s.deliver(ctx, n, endpoint, body)
}

// Retry re-delivers a stored notification. The row goes back to pending and is saved
// before the attempt, so a crash mid-retry never leaves a stale sent or failed row.
func (s *NotificationService) Retry(ctx context.Context, notificationID string) (*domain.DeliveryResult, error) {
	if strings.TrimSpace(notificationID) == "" {
		return nil, domain.ErrNotificationIDRequired
	}

	n, err := s.repo.GetNotification(ctx, notificationID)
	if err != nil {
		return nil, err
	}
	endpoint, err := s.endpoints.GetEndpoint(ctx, n.Target)
	if err != nil {
		return nil, err
	}

	n.Reset(time.Now().UTC())
	if err := s.repo.UpdateNotification(ctx, n); err != nil {
		s.logger.Error("Reset notification", zap.String("notification", n.ID), zap.Error(err))
		return nil, err
	}

	return s.deliver(ctx, n, endpoint, []byte(n.Payload))
}

func (s *NotificationService) deliver(ctx context.Context, n *domain.Notification,
	endpoint *domain.Endpoint, body []byte) (*domain.DeliveryResult, error) {
	resp, err := s.transport.Deliver(ctx, &domain.WebhookRequest{
		URL:            endpoint.URL,
		Secret:         endpoint.Secret,
		EventType:      n.EventType,
		NotificationID: n.ID,
		Body:           body,
	})

	now := time.Now().UTC()
	var deliveryErr error
	switch {
	case err != nil:
		n.MarkFailed(nil, err.Error(), now)
		deliveryErr = fmt.Errorf("%w: notification %s: %w", domain.ErrExternalDelivery, n.ID, err)
	case !resp.OK():
		msg := fmt.Sprintf("target responded with status %d", resp.StatusCode)
		n.MarkFailed(resp, msg, now)
		deliveryErr = fmt.Errorf("%w: notification %s: %s", domain.ErrExternalDelivery, n.ID, msg)
	default:
		n.MarkSent(resp, now)
	}

	// the outcome is recorded even when the caller's context is already done
	if err := s.repo.UpdateNotification(context.WithoutCancel(ctx), n); err != nil {
		s.logger.Error("Save delivery outcome", zap.String("notification", n.ID), zap.Error(err))
		return domain.NewDeliveryResult(n), err
	}
	s.metrics.NotificationDelivered(n.Target.Kind, n.Status)

	if deliveryErr != nil {
		s.logger.Warn("Webhook delivery failed",
			zap.String("notification", n.ID),
			zap.String("target", n.Target.ID),
			zap.Error(deliveryErr))
	}
	return domain.NewDeliveryResult(n), deliveryErr
}
