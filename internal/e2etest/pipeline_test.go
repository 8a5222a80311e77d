package e2etest_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/MikeRez0/pointsweep/internal/adapter/config"
	"github.com/MikeRez0/pointsweep/internal/adapter/events"
	"github.com/MikeRez0/pointsweep/internal/adapter/metrics"
	"github.com/MikeRez0/pointsweep/internal/adapter/storage"
	"github.com/MikeRez0/pointsweep/internal/adapter/storage/repository"
	"github.com/MikeRez0/pointsweep/internal/adapter/webhook"
	"github.com/MikeRez0/pointsweep/internal/core/domain"
	"github.com/MikeRez0/pointsweep/internal/core/port/mock"
	"github.com/MikeRez0/pointsweep/internal/core/service"
	"github.com/golang/mock/gomock"
	"github.com/govalues/decimal"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	merchantID   = "mrc-e2e"
	brokerID     = "brk-e2e"
	brokerSecret = "e2e-broker-secret"
)

var tables = []string{
	"bank_transfers", "notifications", "sweep_runs", "order_events", "order_status_history", "orders",
	"prepared_orders", "prepare_batches", "member_picks", "wallet_entries", "wallets", "brokers", "merchants",
}

func getDB(t *testing.T) *storage.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URI")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URI is not set")
	}

	db, err := storage.NewDBStorage(context.Background(), &config.Database{DSN: dsn})
	require.NoError(t, err)
	t.Cleanup(db.Close)
	require.NoError(t, db.RunMigrations())

	for _, table := range tables {
		_, err := db.Exec(context.Background(), "TRUNCATE "+table+" CASCADE")
		require.NoError(t, err)
	}
	return db
}

// brokerStub records order batches and acknowledges them with a reference.
type brokerStub struct {
	mu       sync.Mutex
	batches  []domain.BrokerOrderBatch
	unsigned int
}

func (b *brokerStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	b.mu.Lock()
	defer b.mu.Unlock()

	if !webhook.Verify(body, brokerSecret, r.Header.Get(webhook.HeaderSignature)) {
		b.unsigned++
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	var batch domain.BrokerOrderBatch
	if err := json.Unmarshal(body, &batch); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	b.batches = append(b.batches, batch)
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"batch_reference":"BR-E2E"}`))
}

func seed(t *testing.T, db *storage.DB, brokerURL string, merchantURL string) {
	t.Helper()
	ctx := context.Background()
	stmts := []struct {
		sql  string
		args []any
	}{
		{`INSERT INTO merchants (id, name, webhook_url, conversion_rate) VALUES ($1, 'E2E', $2, 1)`,
			[]any{merchantID, merchantURL}},
		{`INSERT INTO brokers (id, name, webhook_url, webhook_secret) VALUES ($1, 'E2E broker', $2, $3)`,
			[]any{brokerID, brokerURL, brokerSecret}},
		{`INSERT INTO wallets (member_id, merchant_id, broker_id, cash_balance, sweep_percentage)
			VALUES ('mem-1', $1, $2, 100, 50), ('mem-2', $1, $2, 40, 100), ('mem-3', $1, $2, 0, 100)`,
			[]any{merchantID, brokerID}},
		{`INSERT INTO member_picks (member_id, symbol) VALUES
			('mem-1', 'AAPL'), ('mem-1', 'MSFT'), ('mem-2', 'VTI'), ('mem-3', 'VTI')`, nil},
	}
	for _, s := range stmts {
		_, err := db.Exec(ctx, s.sql, s.args...)
		require.NoError(t, err)
	}
}

func TestPipeline_PrepareSweepSettleTrace(t *testing.T) {
	db := getDB(t)
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger, _ := zap.NewProduction()
	ctx := context.Background()

	broker := &brokerStub{}
	brokerSrv := httptest.NewServer(broker)
	defer brokerSrv.Close()
	merchantSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer merchantSrv.Close()

	seed(t, db, brokerSrv.URL, merchantSrv.URL)

	repo, err := repository.NewRepository(db)
	require.NoError(t, err)

	calendar := mock.NewMockMarketCalendar(mockCtrl)
	calendar.EXPECT().IsOpen(gomock.Any()).Return(true).AnyTimes()

	m := metrics.New(prometheus.NewRegistry())
	publisher := events.NopPublisher{}
	locker := storage.NewAdvisoryLocker(db)
	transport := webhook.NewClient(&config.Webhook{ConnectTimeout: time.Second, TotalTimeout: 5 * time.Second}, logger)

	notifier := service.NewNotificationService(repo, repo, transport, m, logger)
	preparer := service.NewBatchPreparerService(repo, repo, repo, 50, logger)
	sweeps := service.NewSweepService(repo, repo, repo, notifier, calendar, locker, publisher, m, time.Minute, logger)
	callbacks := service.NewCallbackService(repo, repo, publisher, m, 0, 0, logger)
	settlement := service.NewSettlementService(repo, repo, notifier, nil, locker, publisher, m, time.Minute, logger)
	lineage := service.NewLineageService(repo, repo, repo, repo, repo, logger)

	// Prepare: mem-3 has no cash and is not eligible.
	counts, err := preparer.PreviewCounts(ctx, merchantID)
	require.NoError(t, err)
	assert.Equal(t, 2, counts.Eligible)

	batch, err := preparer.Prepare(ctx, "", merchantID)
	require.NoError(t, err)
	assert.Equal(t, domain.BatchStatusDraft, batch.Status)
	assert.Equal(t, 2, batch.MemberCount)
	assert.Equal(t, 3, batch.OrderCount)
	assert.Zero(t, decimal.MustParse("90").Cmp(batch.TotalAmount))

	_, err = preparer.Prepare(ctx, "", merchantID)
	assert.ErrorIs(t, err, domain.ErrNothingToPrepare, "staged members are not prepared twice")

	_, err = preparer.Approve(ctx, batch.ID)
	require.NoError(t, err)

	// Sweep: one broker batch, orders placed with the broker's reference.
	result, err := sweeps.Run(ctx, merchantID)
	require.NoError(t, err)
	assert.Equal(t, domain.SweepStatusCompleted, result.Status)
	assert.Equal(t, 3, result.OrdersConfirmed)
	require.Len(t, broker.batches, 1)
	assert.Zero(t, broker.unsigned)
	assert.Equal(t, batch.ID, broker.batches[0].PrepareBatchID)
	assert.Len(t, broker.batches[0].Orders, 3)

	again, err := sweeps.Run(ctx, merchantID)
	require.NoError(t, err)
	assert.Equal(t, domain.SweepStatusNothingToDo, again.Status, "a promoted batch is never swept twice")

	orders, err := repo.ListOrders(ctx, domain.OrderFilter{BatchID: batch.ID})
	require.NoError(t, err)
	require.Len(t, orders, 3)

	var cash decimal.Decimal
	require.NoError(t, db.QueryRow(ctx, `SELECT cash_balance FROM wallets WHERE member_id = 'mem-1'`).Scan(&cash))
	assert.Zero(t, decimal.MustParse("50").Cmp(cash), "promotion debits the swept part")

	// Callbacks: confirm every order with its fill; a replay changes nothing.
	now := time.Now().UTC()
	for _, o := range orders {
		assert.Equal(t, domain.OrderStatusPlaced, o.Status)
		assert.Equal(t, "BR-E2E", o.BrokerReference)

		event := &domain.BrokerEvent{
			Type:     domain.EventOrderConfirmed,
			OrderID:  o.ID,
			BrokerID: brokerID,
			Execution: &domain.Execution{
				Price: decimal.MustParse("100"), Shares: decimal.MustParse("0.25"), Amount: o.Amount, At: now,
			},
		}
		res, err := callbacks.Handle(ctx, event)
		require.NoError(t, err)
		assert.Equal(t, domain.OrderStatusConfirmed, res.Status)

		res, err = callbacks.Handle(ctx, event)
		require.NoError(t, err)
		assert.True(t, res.Replayed)
	}

	// Settlement: the second run finds nothing left to pay.
	paid, err := settlement.MarkPaid(ctx, merchantID, "")
	require.NoError(t, err)
	assert.Equal(t, 3, paid.Affected)
	assert.NotEmpty(t, paid.TransferID)
	assert.Empty(t, paid.Warnings)

	paidAgain, err := settlement.MarkPaid(ctx, merchantID, "")
	require.NoError(t, err)
	assert.Zero(t, paidAgain.Affected)

	// Lineage from the payment batch reaches back to the prepare batch.
	trace, err := lineage.Trace(ctx, paid.PaidBatchID, domain.LineageACHBatch)
	require.NoError(t, err)
	seen := make(map[domain.LineageStage]int)
	for _, n := range trace.Chain {
		seen[n.Stage]++
	}
	assert.Equal(t, 1, seen[domain.StagePrepareBatch])
	assert.Equal(t, 3, seen[domain.StagePreparedOrder])
	assert.Equal(t, 3, seen[domain.StageOrder])
	assert.Equal(t, 1, seen[domain.StageSweepRun])
	assert.Equal(t, 1, seen[domain.StagePaymentBatch])
	assert.Equal(t, 1, seen[domain.StageBankTransfer])
	assert.Empty(t, trace.Gaps)
}

func TestPipeline_PromotionSkipsMemberWithOpenOrder(t *testing.T) {
	db := getDB(t)
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger, _ := zap.NewProduction()
	ctx := context.Background()

	broker := &brokerStub{}
	brokerSrv := httptest.NewServer(broker)
	defer brokerSrv.Close()
	seed(t, db, brokerSrv.URL, brokerSrv.URL)

	repo, err := repository.NewRepository(db)
	require.NoError(t, err)

	calendar := mock.NewMockMarketCalendar(mockCtrl)
	calendar.EXPECT().IsOpen(gomock.Any()).Return(true).AnyTimes()

	m := metrics.New(prometheus.NewRegistry())
	transport := webhook.NewClient(&config.Webhook{ConnectTimeout: time.Second, TotalTimeout: 5 * time.Second}, logger)
	notifier := service.NewNotificationService(repo, repo, transport, m, logger)
	preparer := service.NewBatchPreparerService(repo, repo, repo, 50, logger)
	sweeps := service.NewSweepService(repo, repo, repo, notifier, calendar, storage.NewAdvisoryLocker(db),
		events.NopPublisher{}, m, time.Minute, logger)

	first, err := preparer.Prepare(ctx, "mem-1", merchantID)
	require.NoError(t, err)
	_, err = preparer.Approve(ctx, first.ID)
	require.NoError(t, err)

	// Stage mem-1 a second time as two racing prepares would.
	_, err = db.Exec(ctx, `UPDATE prepare_batches SET status = 'discarded' WHERE id = $1`, first.ID)
	require.NoError(t, err)
	second, err := preparer.Prepare(ctx, "mem-1", merchantID)
	require.NoError(t, err)
	_, err = db.Exec(ctx, `UPDATE prepare_batches SET status = 'approved' WHERE id = $1`, first.ID)
	require.NoError(t, err)
	_, err = preparer.Approve(ctx, second.ID)
	require.NoError(t, err)

	result, err := sweeps.Run(ctx, merchantID)
	require.NoError(t, err)
	assert.Equal(t, domain.SweepStatusPartial, result.Status)
	assert.Equal(t, 2, result.OrdersConfirmed)
	assert.Equal(t, 2, result.OrdersFailed)

	require.Len(t, result.Runs, 2)
	skipped := result.Runs[1]
	assert.Equal(t, second.ID, skipped.BatchID)
	require.Len(t, skipped.Errors, 1)
	assert.Equal(t, "mem-1", skipped.Errors[0].MemberID)
	assert.Equal(t, domain.SkipReasonOpenOrder, skipped.Errors[0].Error)

	var cash decimal.Decimal
	require.NoError(t, db.QueryRow(ctx, `SELECT cash_balance FROM wallets WHERE member_id = 'mem-1'`).Scan(&cash))
	assert.Zero(t, decimal.MustParse("50").Cmp(cash), "the wallet is debited once")
}
