package bank

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/MikeRez0/pointsweep/internal/adapter/config"
	"github.com/MikeRez0/pointsweep/internal/adapter/webhook"
	"github.com/MikeRez0/pointsweep/internal/core/domain"
	"go.uber.org/zap"
)

const (
	defaultRetryAfter = 10 * time.Second
	requestTimeout    = 15 * time.Second
)

// RailClient talks to the bank transfer rail.
type RailClient struct {
	logger *zap.Logger
	host   string
	secret string
	http   *http.Client
}

// NewRailClient returns nil when no rail address is configured.
func NewRailClient(cfg *config.Bank, log *zap.Logger) *RailClient {
	if cfg.HostString == "" {
		return nil
	}
	host := strings.TrimRight(cfg.HostString, "/")
	if !strings.Contains(host, "://") {
		host = "http://" + host
	}
	return &RailClient{
		host:   host,
		secret: cfg.Secret,
		logger: log,
		http:   &http.Client{Timeout: requestTimeout},
	}
}

func (c *RailClient) RequestTransfer(ctx context.Context, req *domain.TransferRequest) (*domain.TransferUpdate, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	requestStr := c.host + "/transfers"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, requestStr, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("error on %s : %w", requestStr, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Idempotency-Key", req.IdempotencyKey)
	if c.secret != "" {
		httpReq.Header.Set(webhook.HeaderSignature, webhook.Sign(body, c.secret))
	}

	c.logger.Debug("Fire transfer request",
		zap.String("idempotency_key", req.IdempotencyKey),
		zap.String("merchant", req.MerchantID))

	return c.do(httpReq, http.StatusOK, http.StatusCreated, http.StatusAccepted)
}

func (c *RailClient) TransferStatus(ctx context.Context, externalID string) (*domain.TransferUpdate, error) {
	requestStr := c.host + "/transfers/" + url.PathEscape(externalID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, requestStr, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("error on %s : %w", requestStr, err)
	}
	return c.do(httpReq, http.StatusOK)
}

func (c *RailClient) do(req *http.Request, okCodes ...int) (*domain.TransferUpdate, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request error %s : %w", domain.ErrExternalDelivery, req.URL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusTooManyRequests {
		retryAfter := defaultRetryAfter
		if sec, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil {
			retryAfter = time.Duration(sec) * time.Second
		}
		return nil, &domain.RailThrottledError{RetryAfter: retryAfter}
	}

	ok := false
	for _, code := range okCodes {
		if resp.StatusCode == code {
			ok = true
		}
	}
	if !ok {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		c.logger.Error("unexpected status for request",
			zap.String("url", req.URL.String()), zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w: bad response %v for request %s: %s",
			domain.ErrExternalDelivery, resp.StatusCode, req.URL, string(text))
	}

	var result domain.TransferUpdate
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: error on response decode: %w", domain.ErrExternalDelivery, err)
	}
	return &result, nil
}
