package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/MikeRez0/pointsweep/internal/core/domain"
	"github.com/MikeRez0/pointsweep/internal/core/port"
	"github.com/govalues/decimal"
	"go.uber.org/zap"
)

const sweepSource = "sweep"

// SweepService promotes approved batches into live orders and hands them to brokers.
type SweepService struct {
	batches  port.BatchRepository
	orders   port.OrderRepository
	runs     port.SweepRepository
	notifier port.Notifier
	calendar port.MarketCalendar
	locker   port.Locker
	events   port.EventPublisher
	metrics  port.Metrics
	lockTTL  time.Duration
	logger   *zap.Logger
}

func NewSweepService(batches port.BatchRepository, orders port.OrderRepository, runs port.SweepRepository,
	notifier port.Notifier, calendar port.MarketCalendar, locker port.Locker, events port.EventPublisher,
	metrics port.Metrics, lockTTL time.Duration, logger *zap.Logger) *SweepService {
	return &SweepService{
		batches:  batches,
		orders:   orders,
		runs:     runs,
		notifier: notifier,
		calendar: calendar,
		locker:   locker,
		events:   events,
		metrics:  metrics,
		lockTTL:  lockTTL,
		logger:   logger,
	}
}

func batchLockKey(batchID string) string {
	return "sweep:batch:" + batchID
}

// marketClosed fills result and reports true when nothing may be written.
func (s *SweepService) marketClosed(result *domain.SweepResult) bool {
	now := time.Now().UTC()
	if s.calendar.IsOpen(now) {
		return false
	}
	next := s.calendar.NextOpen(now)
	result.Status = domain.SweepStatusMarketClosed
	result.NextMarketOpen = &next
	return true
}

func (s *SweepService) Run(ctx context.Context, merchantID string) (*domain.SweepResult, error) {
	result := &domain.SweepResult{}
	if s.marketClosed(result) {
		s.logger.Info("Market closed, sweep skipped", zap.Timep("next_open", result.NextMarketOpen))
		s.metrics.SweepFinished(result.Status)
		return result, nil
	}

	batches, err := s.batches.ListBatches(ctx, domain.BatchListFilter{
		Statuses:   []domain.BatchStatus{domain.BatchStatusApproved},
		MerchantID: merchantID,
		Unpromoted: true,
	})
	if err != nil {
		s.logger.Error("List approved batches", zap.Error(err))
		return nil, err
	}

	for _, b := range batches {
		run, err := s.sweepBatch(ctx, b.ID, merchantID)
		if run != nil {
			result.Add(run)
		}
		if err != nil {
			s.logger.Warn("Sweep batch failed", zap.String("batch", b.ID), zap.Error(err))
			result.BatchErrors = append(result.BatchErrors, fmt.Sprintf("%s: %v", b.ID, err))
		}
	}

	return s.finish(ctx, result), nil
}

func (s *SweepService) finish(ctx context.Context, result *domain.SweepResult) *domain.SweepResult {
	result.Finish()
	s.metrics.SweepFinished(result.Status)
	s.logger.Info("Sweep finished",
		zap.String("status", string(result.Status)),
		zap.Int("runs", len(result.Runs)),
		zap.Int("orders_processed", result.OrdersProcessed),
		zap.Int("orders_confirmed", result.OrdersConfirmed),
		zap.Int("orders_failed", result.OrdersFailed))
	for _, run := range result.Runs {
		publish(ctx, s.events, s.logger, EventSweepFinished, run.BatchID, run)
	}
	return result
}

// sweepBatch promotes one batch under its advisory lock. A returned run is always
// completed, also when err is set.
func (s *SweepService) sweepBatch(ctx context.Context, batchID string, merchantID string) (*domain.SweepRun, error) {
	unlock, err := s.locker.Acquire(ctx, batchLockKey(batchID), s.lockTTL)
	if err != nil {
		return nil, err
	}
	defer s.release(ctx, unlock, batchID)

	now := time.Now().UTC()
	run := &domain.SweepRun{
		ID:         domain.NewID(domain.PrefixSweepRun),
		BatchID:    batchID,
		MerchantID: merchantID,
		Kind:       domain.SweepKindRun,
		StartedAt:  now,
	}
	if err := s.runs.CreateSweepRun(ctx, run); err != nil {
		return nil, err
	}

	promotion, err := s.batches.PromoteBatch(ctx, batchID, func(b *domain.PrepareBatch) error {
		return b.Promote(now)
	})
	if err != nil {
		run.AddError(domain.SweepGroupError{Error: err.Error()})
		s.completeRun(ctx, run)
		return run, err
	}

	s.metrics.OrdersPromoted(len(promotion.Orders))
	for _, skipped := range promotion.SkippedMembers {
		s.logger.Warn("Member skipped on promotion",
			zap.String("batch", batchID),
			zap.String("member", skipped.MemberID),
			zap.String("reason", skipped.Reason))
		run.OrdersProcessed += skipped.Lines
		run.OrdersFailed += skipped.Lines
		run.AddError(domain.SweepGroupError{
			MerchantID: skipped.MerchantID,
			MemberID:   skipped.MemberID,
			Orders:     skipped.Lines,
			Error:      skipped.Reason,
		})
	}
	for _, o := range promotion.Orders {
		publishOrderChange(ctx, s.events, s.logger, o, "", "promotion")
	}

	s.dispatch(ctx, run, batchID, promotion.Orders, domain.OrderStatusPending)
	s.reconcile(ctx, batchID)
	s.completeRun(ctx, run)
	return run, nil
}

func (s *SweepService) release(ctx context.Context, unlock port.Unlock, batchID string) {
	if err := unlock(context.WithoutCancel(ctx)); err != nil {
		s.logger.Error("Release batch lock", zap.String("batch", batchID), zap.Error(err))
	}
}

type brokerGroup struct {
	merchantID string
	brokerID   string
	orders     []*domain.Order
}

// groupOrders splits orders by merchant, then broker, in a stable order.
func groupOrders(orders []*domain.Order) []*brokerGroup {
	byKey := make(map[string]*brokerGroup)
	var keys []string
	for _, o := range orders {
		key := o.MerchantID + "\x00" + o.BrokerID
		g, ok := byKey[key]
		if !ok {
			g = &brokerGroup{merchantID: o.MerchantID, brokerID: o.BrokerID}
			byKey[key] = g
			keys = append(keys, key)
		}
		g.orders = append(g.orders, o)
	}
	sort.Strings(keys)

	groups := make([]*brokerGroup, 0, len(keys))
	for _, k := range keys {
		groups = append(groups, byKey[k])
	}
	return groups
}

// dispatch sends one order batch per merchant/broker group. A failed group never
// stops the others.
func (s *SweepService) dispatch(ctx context.Context, run *domain.SweepRun, batchID string,
	orders []*domain.Order, from domain.OrderStatus) {
	merchants := make(map[string]struct{})
	for _, g := range groupOrders(orders) {
		merchants[g.merchantID] = struct{}{}
		run.OrdersProcessed += len(g.orders)

		ids := make([]string, 0, len(g.orders))
		lines := make([]domain.BrokerOrderLine, 0, len(g.orders))
		for _, o := range g.orders {
			ids = append(ids, o.ID)
			lines = append(lines, domain.BrokerOrderLine{
				OrderID:  o.ID,
				BasketID: o.BasketID,
				MemberID: o.MemberID,
				Symbol:   o.Symbol,
				Shares:   o.Shares,
				Amount:   o.Amount,
			})
		}

		payload := domain.BrokerOrderBatch{
			SweepBatchID:   run.ID,
			PrepareBatchID: batchID,
			MerchantID:     g.merchantID,
			BrokerID:       g.brokerID,
			Orders:         lines,
		}
		delivery, err := s.notifier.Send(ctx,
			domain.NotificationTarget{Kind: domain.TargetBroker, ID: g.brokerID}, domain.EventOrderBatch, payload)
		if err != nil {
			s.groupFailed(ctx, run, g, ids, from, delivery, err)
			continue
		}

		placedAt := time.Now().UTC()
		ref := brokerReference(delivery)
		n, err := s.orders.TransitionOrders(ctx, domain.BulkTransition{
			IDs:             ids,
			From:            []domain.OrderStatus{from},
			To:              domain.OrderStatusPlaced,
			Source:          sweepSource,
			BrokerReference: ref,
			At:              placedAt,
		})
		if err != nil {
			s.logger.Error("Mark orders placed", zap.String("broker", g.brokerID), zap.Error(err))
			run.OrdersFailed += len(g.orders)
			run.AddError(domain.SweepGroupError{
				MerchantID:     g.merchantID,
				BrokerID:       g.brokerID,
				Orders:         len(g.orders),
				NotificationID: delivery.NotificationID,
				Error:          err.Error(),
			})
			continue
		}

		run.OrdersConfirmed += n
		run.BrokersNotified = appendUnique(run.BrokersNotified, g.brokerID)
		for _, o := range g.orders {
			prev := o.Status
			o.Status = domain.OrderStatusPlaced
			o.BrokerReference = ref
			o.UpdatedAt = placedAt
			publishOrderChange(ctx, s.events, s.logger, o, prev, sweepSource)
		}
	}
	run.MerchantsProcessed = len(merchants)
}

func (s *SweepService) groupFailed(ctx context.Context, run *domain.SweepRun, g *brokerGroup, ids []string,
	from domain.OrderStatus, delivery *domain.DeliveryResult, sendErr error) {
	groupErr := domain.SweepGroupError{
		MerchantID: g.merchantID,
		BrokerID:   g.brokerID,
		Orders:     len(g.orders),
		Error:      sendErr.Error(),
	}
	if delivery != nil {
		groupErr.NotificationID = delivery.NotificationID
	}
	run.AddError(groupErr)
	run.OrdersFailed += len(g.orders)

	if from != domain.OrderStatusPending {
		return
	}
	queuedAt := time.Now().UTC()
	_, err := s.orders.TransitionOrders(ctx, domain.BulkTransition{
		IDs:    ids,
		From:   []domain.OrderStatus{domain.OrderStatusPending},
		To:     domain.OrderStatusQueued,
		Source: sweepSource,
		At:     queuedAt,
	})
	if err != nil {
		s.logger.Error("Queue orders after failed delivery", zap.String("broker", g.brokerID), zap.Error(err))
		return
	}
	for _, o := range g.orders {
		o.Status = domain.OrderStatusQueued
		o.UpdatedAt = queuedAt
		publishOrderChange(ctx, s.events, s.logger, o, domain.OrderStatusPending, sweepSource)
	}
}

// brokerReference extracts the broker's batch reference from its answer, if any.
func brokerReference(delivery *domain.DeliveryResult) string {
	if delivery == nil || delivery.ResponseBody == nil || *delivery.ResponseBody == "" {
		return ""
	}
	var ack domain.BrokerAck
	if err := json.Unmarshal([]byte(*delivery.ResponseBody), &ack); err != nil {
		return ""
	}
	return strings.TrimSpace(ack.Ref())
}

func appendUnique(list []string, v string) []string {
	for _, item := range list {
		if item == v {
			return list
		}
	}
	return append(list, v)
}

// reconcile moves the batch to submitted once no order waits for a broker.
// Errors are logged only.
func (s *SweepService) reconcile(ctx context.Context, batchID string) {
	submitted, err := s.batches.SubmitIfFunded(ctx, batchID, time.Now().UTC())
	if err != nil {
		s.logger.Error("Reconcile batch", zap.String("batch", batchID), zap.Error(err))
		return
	}
	if submitted {
		s.logger.Info("Batch submitted", zap.String("batch", batchID))
	}
}

func (s *SweepService) completeRun(ctx context.Context, run *domain.SweepRun) {
	finished := time.Now().UTC()
	run.FinishedAt = &finished
	if err := s.runs.CompleteSweepRun(context.WithoutCancel(ctx), run); err != nil {
		s.logger.Error("Complete sweep run", zap.String("run", run.ID), zap.Error(err))
	}
}

// RetryFailed re-sends the queued orders of a promoted batch.
func (s *SweepService) RetryFailed(ctx context.Context, batchID string) (*domain.SweepResult, error) {
	if strings.TrimSpace(batchID) == "" {
		return nil, domain.ErrBatchIDRequired
	}

	result := &domain.SweepResult{}
	if s.marketClosed(result) {
		s.metrics.SweepFinished(result.Status)
		return result, nil
	}

	unlock, err := s.locker.Acquire(ctx, batchLockKey(batchID), s.lockTTL)
	if err != nil {
		return nil, err
	}
	defer s.release(ctx, unlock, batchID)

	batch, err := s.batches.GetBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if batch.PromotedAt == nil {
		return nil, domain.ErrBatchNotPromoted
	}

	queued, err := s.orders.ListOrders(ctx, domain.OrderFilter{
		BatchID:  batchID,
		Statuses: []domain.OrderStatus{domain.OrderStatusQueued},
	})
	if err != nil {
		return nil, err
	}
	if len(queued) == 0 {
		s.reconcile(ctx, batchID)
		return s.finish(ctx, result), nil
	}

	run := &domain.SweepRun{
		ID:        domain.NewID(domain.PrefixSweepRun),
		BatchID:   batchID,
		Kind:      domain.SweepKindRetry,
		StartedAt: time.Now().UTC(),
	}
	if err := s.runs.CreateSweepRun(ctx, run); err != nil {
		return nil, err
	}

	s.dispatch(ctx, run, batchID, queued, domain.OrderStatusQueued)
	s.reconcile(ctx, batchID)
	s.completeRun(ctx, run)

	result.Add(run)
	return s.finish(ctx, result), nil
}

// Preview projects what Run would do. It writes nothing.
func (s *SweepService) Preview(ctx context.Context, merchantID string) (*domain.SweepPreview, error) {
	now := time.Now().UTC()
	preview := &domain.SweepPreview{MarketOpen: s.calendar.IsOpen(now)}
	if !preview.MarketOpen {
		next := s.calendar.NextOpen(now)
		preview.NextMarketOpen = &next
	}

	batches, err := s.batches.ListBatches(ctx, domain.BatchListFilter{
		Statuses:   []domain.BatchStatus{domain.BatchStatusApproved},
		MerchantID: merchantID,
		Unpromoted: true,
	})
	if err != nil {
		return nil, err
	}

	for _, b := range batches {
		rows, _, err := s.batches.ListPreparedOrders(ctx, domain.PreparedOrderFilter{BatchID: b.ID})
		if err != nil {
			return nil, err
		}
		projection, err := projectBatch(b.ID, rows)
		if err != nil {
			return nil, err
		}
		preview.Batches = append(preview.Batches, projection)
		preview.Orders += projection.Orders
		preview.Notifications += len(projection.Groups)
	}
	return preview, nil
}

func projectBatch(batchID string, rows []*domain.PreparedOrder) (*domain.BatchProjection, error) {
	projection := &domain.BatchProjection{BatchID: batchID}
	byKey := make(map[string]*domain.GroupProjection)
	baskets := make(map[string]map[string]struct{})
	var keys []string

	for _, p := range rows {
		key := p.MerchantID + "\x00" + p.BrokerID
		g, ok := byKey[key]
		if !ok {
			g = &domain.GroupProjection{MerchantID: p.MerchantID, BrokerID: p.BrokerID, Amount: decimal.Zero}
			byKey[key] = g
			baskets[key] = make(map[string]struct{})
			keys = append(keys, key)
		}
		g.Orders++
		var err error
		if g.Amount, err = g.Amount.Add(p.Amount); err != nil {
			return nil, err
		}
		baskets[key][p.BasketID] = struct{}{}
	}

	sort.Strings(keys)
	for _, k := range keys {
		g := byKey[k]
		g.Baskets = len(baskets[k])
		projection.Groups = append(projection.Groups, g)
		projection.Orders += g.Orders
	}
	return projection, nil
}
