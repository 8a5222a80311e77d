package webhook

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MikeRez0/pointsweep/internal/adapter/config"
	"github.com/MikeRez0/pointsweep/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSignAndVerify(t *testing.T) {
	body := []byte(`{"sweep_batch_id":"SWP-1"}`)

	header := Sign(body, "secret")
	assert.True(t, strings.HasPrefix(header, "sha256="))
	assert.True(t, Verify(body, "secret", header))
	assert.True(t, Verify(body, "secret", strings.TrimPrefix(header, "sha256=")))

	assert.False(t, Verify(body, "other", header))
	assert.False(t, Verify([]byte(`{"sweep_batch_id":"SWP-2"}`), "secret", header))
	assert.False(t, Verify(body, "secret", ""))
	assert.False(t, Verify(body, "secret", "sha256=zz"))
}

func TestComputeSignature_Known(t *testing.T) {
	// RFC 4231 test case 2
	got := ComputeSignature([]byte("what do ya want for nothing?"), "Jefe")
	assert.Equal(t, "5bdcc146bf60754e6a042426089575c75a003f089d2739839dec58b964ec3843", got)
}

func TestClient_Deliver(t *testing.T) {
	body := []byte(`{"orders":[]}`)

	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantStatus int
		wantBody   string
		wantOK     bool
	}{
		{
			name: "accepted",
			handler: func(w http.ResponseWriter, r *http.Request) {
				got, _ := io.ReadAll(r.Body)
				if !Verify(got, "s3cret", r.Header.Get(HeaderSignature)) {
					w.WriteHeader(http.StatusUnauthorized)
					return
				}
				if r.Header.Get(HeaderEventType) != domain.EventOrderBatch ||
					r.Header.Get(HeaderNotificationID) != "NTF-1" {
					w.WriteHeader(http.StatusBadRequest)
					return
				}
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte(`{"batch_reference":"BR-1"}`))
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"batch_reference":"BR-1"}`,
			wantOK:     true,
		},
		{
			name: "rejected verbatim",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnprocessableEntity)
				_, _ = w.Write([]byte("unknown symbol"))
			},
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   "unknown symbol",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			c := NewClient(&config.Webhook{ConnectTimeout: time.Second, TotalTimeout: 2 * time.Second}, zap.NewNop())
			resp, err := c.Deliver(context.Background(), &domain.WebhookRequest{
				URL:            srv.URL,
				Secret:         "s3cret",
				EventType:      domain.EventOrderBatch,
				NotificationID: "NTF-1",
				Body:           body,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.wantBody, resp.Body)
			assert.Equal(t, tt.wantOK, resp.OK())
		})
	}
}

func TestClient_DeliverTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	c := NewClient(&config.Webhook{ConnectTimeout: time.Second, TotalTimeout: 50 * time.Millisecond}, zap.NewNop())
	resp, err := c.Deliver(context.Background(), &domain.WebhookRequest{
		URL:  srv.URL,
		Body: []byte(`{}`),
	})
	assert.Error(t, err)
	assert.Nil(t, resp)
}

func TestClient_ResponseBodyCapped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(strings.Repeat("x", maxResponseBody+100)))
	}))
	defer srv.Close()

	c := NewClient(&config.Webhook{ConnectTimeout: time.Second, TotalTimeout: 2 * time.Second}, zap.NewNop())
	resp, err := c.Deliver(context.Background(), &domain.WebhookRequest{URL: srv.URL, Body: []byte(`{}`)})
	require.NoError(t, err)
	assert.Len(t, resp.Body, maxResponseBody)
}
