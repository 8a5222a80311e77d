package bank

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MikeRez0/pointsweep/internal/adapter/config"
	"github.com/MikeRez0/pointsweep/internal/adapter/webhook"
	"github.com/MikeRez0/pointsweep/internal/core/domain"
	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewRailClient_Disabled(t *testing.T) {
	assert.Nil(t, NewRailClient(&config.Bank{}, zap.NewNop()))
}

func TestRailClient_RequestTransfer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/transfers" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		body, _ := io.ReadAll(r.Body)
		if !webhook.Verify(body, "rail", r.Header.Get(webhook.HeaderSignature)) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"id":              "EXT-1",
			"idempotency_key": r.Header.Get("Idempotency-Key"),
			"status":          "submitted",
		})
	}))
	defer srv.Close()

	c := NewRailClient(&config.Bank{HostString: srv.URL, Secret: "rail"}, zap.NewNop())
	update, err := c.RequestTransfer(context.Background(), &domain.TransferRequest{
		IdempotencyKey: "PAY-1",
		MerchantID:     "M1",
		Amount:         decimal.MustParse("125.50"),
		Reference:      "PAY-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "EXT-1", update.ExternalID)
	assert.Equal(t, "PAY-1", update.IdempotencyKey)
	assert.Equal(t, domain.TransferStatusSubmitted, update.Status)
}

func TestRailClient_TransferStatus(t *testing.T) {
	tests := []struct {
		name        string
		handler     http.HandlerFunc
		wantStatus  domain.TransferStatus
		wantRetry   time.Duration
		wantErrKind error
	}{
		{
			name: "completed",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"id":"EXT-1","status":"completed"}`))
			},
			wantStatus: domain.TransferStatusCompleted,
		},
		{
			name: "throttled",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Retry-After", "7")
				w.WriteHeader(http.StatusTooManyRequests)
			},
			wantRetry:   7 * time.Second,
			wantErrKind: domain.ErrExternalDelivery,
		},
		{
			name: "throttled without header",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
			},
			wantRetry:   defaultRetryAfter,
			wantErrKind: domain.ErrExternalDelivery,
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
			wantErrKind: domain.ErrExternalDelivery,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			c := NewRailClient(&config.Bank{HostString: srv.URL}, zap.NewNop())
			update, err := c.TransferStatus(context.Background(), "EXT-1")
			if tt.wantErrKind != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErrKind)
				var throttled *domain.RailThrottledError
				if tt.wantRetry > 0 {
					require.True(t, errors.As(err, &throttled))
					assert.Equal(t, tt.wantRetry, throttled.RetryAfter)
				} else {
					assert.False(t, errors.As(err, &throttled))
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, update.Status)
		})
	}
}
