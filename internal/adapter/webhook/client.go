package webhook

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"

	"github.com/MikeRez0/pointsweep/internal/adapter/config"
	"github.com/MikeRez0/pointsweep/internal/core/domain"
	"go.uber.org/zap"
)

// maxResponseBody caps how much of a target's answer is kept.
const maxResponseBody = 64 << 10

type Client struct {
	http   *http.Client
	logger *zap.Logger
}

func NewClient(cfg *config.Webhook, log *zap.Logger) *Client {
	dialer := &net.Dialer{Timeout: cfg.ConnectTimeout}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = dialer.DialContext
	transport.TLSHandshakeTimeout = cfg.ConnectTimeout

	return &Client{
		http: &http.Client{
			Timeout:   cfg.TotalTimeout,
			Transport: transport,
		},
		logger: log,
	}
}

// Deliver posts the signed body. An error means no response was received.
func (c *Client) Deliver(ctx context.Context, req *domain.WebhookRequest) (*domain.WebhookResponse, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, req.URL, bytes.NewReader(req.Body))
	if err != nil {
		return nil, fmt.Errorf("error on %s : %w", req.URL, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(HeaderSignature, Sign(req.Body, req.Secret))
	httpReq.Header.Set(HeaderEventType, req.EventType)
	httpReq.Header.Set(HeaderNotificationID, req.NotificationID)

	c.logger.Debug("Fire webhook",
		zap.String("notification", req.NotificationID),
		zap.String("event", req.EventType),
		zap.String("url", req.URL))

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request error %s : %w", req.URL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		c.logger.Warn("error reading webhook response",
			zap.String("notification", req.NotificationID), zap.Error(err))
	}

	return &domain.WebhookResponse{
		StatusCode: resp.StatusCode,
		Body:       string(body),
	}, nil
}
