package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/MikeRez0/pointsweep/internal/core/domain"
	"github.com/MikeRez0/pointsweep/internal/core/port"
	"github.com/govalues/decimal"
	"go.uber.org/zap"
)

const defaultBatchListLimit = 50

// BatchPreparerService stages eligible wallets into a draft batch for admin review.
// Nothing it writes is visible to brokers until a sweep promotes the batch.
type BatchPreparerService struct {
	batches   port.BatchRepository
	wallets   port.WalletRepository
	endpoints port.EndpointRepository
	pageSize  uint64
	logger    *zap.Logger
}

func NewBatchPreparerService(batches port.BatchRepository, wallets port.WalletRepository,
	endpoints port.EndpointRepository, pageSize uint64, logger *zap.Logger) *BatchPreparerService {
	if pageSize == 0 {
		pageSize = 50
	}
	return &BatchPreparerService{
		batches:   batches,
		wallets:   wallets,
		endpoints: endpoints,
		pageSize:  pageSize,
		logger:    logger,
	}
}

func (s *BatchPreparerService) PreviewCounts(ctx context.Context, merchantID string) (*domain.EligibilityCounts, error) {
	counts, err := s.wallets.CountEligibility(ctx, domain.EligibilityFilter{MerchantID: merchantID})
	if err != nil {
		s.logger.Error("Count eligibility", zap.String("merchant", merchantID), zap.Error(err))
		return nil, err
	}
	return counts, nil
}

func (s *BatchPreparerService) Prepare(ctx context.Context, memberID string, merchantID string) (*domain.PrepareBatch, error) {
	filter := domain.EligibilityFilter{MerchantID: merchantID, MemberID: memberID}
	wallets, err := s.wallets.ListEligibleWallets(ctx, filter)
	if err != nil {
		s.logger.Error("List eligible wallets", zap.Error(err))
		return nil, err
	}
	if len(wallets) == 0 {
		return nil, domain.ErrNothingToPrepare
	}

	memberIDs := make([]string, 0, len(wallets))
	for _, w := range wallets {
		memberIDs = append(memberIDs, w.MemberID)
	}
	picks, err := s.wallets.ListPicks(ctx, memberIDs)
	if err != nil {
		s.logger.Error("List picks", zap.Error(err))
		return nil, err
	}

	now := time.Now().UTC()
	batch := &domain.PrepareBatch{
		ID:          domain.NewID(domain.PrefixPrepareBatch),
		Status:      domain.BatchStatusDraft,
		Filters:     domain.BatchFilters{MemberID: memberID, MerchantID: merchantID},
		TotalAmount: decimal.Zero,
		TotalPoints: decimal.Zero,
		CreatedAt:   now,
	}

	rates := make(map[string]decimal.Decimal)
	var orders []*domain.PreparedOrder
	for _, w := range wallets {
		lines, err := s.stageMember(ctx, batch, w, picks[w.MemberID], rates, now)
		if err != nil {
			return nil, err
		}
		if len(lines) == 0 {
			batch.Skipped++
			continue
		}
		batch.MemberCount++
		for _, p := range lines {
			if batch.TotalAmount, err = batch.TotalAmount.Add(p.Amount); err != nil {
				return nil, err
			}
			if batch.TotalPoints, err = batch.TotalPoints.Add(p.PointsUsed); err != nil {
				return nil, err
			}
		}
		orders = append(orders, lines...)
	}
	if len(orders) == 0 {
		return nil, domain.ErrNothingToPrepare
	}
	batch.OrderCount = len(orders)

	created, err := s.batches.CreateBatch(ctx, batch, orders)
	if err != nil {
		s.logger.Error("Create batch", zap.String("batch", batch.ID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("Batch prepared",
		zap.String("batch", created.ID),
		zap.Int("members", created.MemberCount),
		zap.Int("orders", created.OrderCount),
		zap.Int("skipped", created.Skipped))
	return created, nil
}

// stageMember builds one member's basket. An empty result means the member is skipped.
func (s *BatchPreparerService) stageMember(ctx context.Context, batch *domain.PrepareBatch, w *domain.Wallet,
	picks []domain.Pick, rates map[string]decimal.Decimal, now time.Time) ([]*domain.PreparedOrder, error) {
	amount, err := w.SweepAmount()
	if err != nil {
		return nil, err
	}
	if !amount.IsPos() || len(picks) == 0 {
		return nil, nil
	}

	allocations, err := domain.Allocate(amount, picks)
	if err != nil {
		return nil, err
	}

	rate, err := s.conversionRate(ctx, w.MerchantID, rates)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			s.logger.Warn("Merchant not found, member skipped",
				zap.String("member", w.MemberID), zap.String("merchant", w.MerchantID))
			return nil, nil
		}
		return nil, err
	}

	basketID := domain.NewID(domain.PrefixBasket)
	lines := make([]*domain.PreparedOrder, 0, len(allocations))
	for _, a := range allocations {
		points, err := a.Amount.Mul(rate)
		if err != nil {
			return nil, err
		}
		lines = append(lines, &domain.PreparedOrder{
			ID:         domain.NewID(domain.PrefixPreparedOrder),
			BatchID:    batch.ID,
			MemberID:   w.MemberID,
			MerchantID: w.MerchantID,
			BasketID:   basketID,
			BrokerID:   w.BrokerID,
			Symbol:     a.Symbol,
			Amount:     a.Amount,
			PointsUsed: points.Round(2),
			CreatedAt:  now,
		})
	}
	return lines, nil
}

func (s *BatchPreparerService) conversionRate(ctx context.Context, merchantID string,
	cache map[string]decimal.Decimal) (decimal.Decimal, error) {
	if rate, ok := cache[merchantID]; ok {
		return rate, nil
	}
	m, err := s.endpoints.GetMerchant(ctx, merchantID)
	if err != nil {
		return decimal.Zero, err
	}
	cache[merchantID] = m.ConversionRate
	return m.ConversionRate, nil
}

func (s *BatchPreparerService) Approve(ctx context.Context, batchID string) (*domain.PrepareBatch, error) {
	if strings.TrimSpace(batchID) == "" {
		return nil, domain.ErrBatchIDRequired
	}
	return s.batches.UpdateBatch(ctx, batchID, func(b *domain.PrepareBatch) error {
		return b.Approve(time.Now().UTC())
	})
}

func (s *BatchPreparerService) Discard(ctx context.Context, batchID string) (*domain.PrepareBatch, error) {
	if strings.TrimSpace(batchID) == "" {
		return nil, domain.ErrBatchIDRequired
	}
	return s.batches.UpdateBatch(ctx, batchID, func(b *domain.PrepareBatch) error {
		return b.Discard(time.Now().UTC())
	})
}

func (s *BatchPreparerService) Stats(ctx context.Context, batchID string) (*domain.BatchStats, error) {
	if strings.TrimSpace(batchID) == "" {
		return nil, domain.ErrBatchIDRequired
	}
	return s.batches.BatchStats(ctx, batchID)
}

func (s *BatchPreparerService) Drilldown(ctx context.Context, filter domain.PreparedOrderFilter) (*domain.DrilldownPage, error) {
	if strings.TrimSpace(filter.BatchID) == "" {
		return nil, domain.ErrBatchIDRequired
	}
	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.PerPage == 0 {
		filter.PerPage = s.pageSize
	}

	if _, err := s.batches.GetBatch(ctx, filter.BatchID); err != nil {
		return nil, err
	}
	rows, total, err := s.batches.ListPreparedOrders(ctx, filter)
	if err != nil {
		s.logger.Error("List prepared orders", zap.String("batch", filter.BatchID), zap.Error(err))
		return nil, err
	}

	return &domain.DrilldownPage{
		BatchID: filter.BatchID,
		Page:    filter.Page,
		PerPage: filter.PerPage,
		Total:   total,
		Rows:    rows,
	}, nil
}

func (s *BatchPreparerService) Batches(ctx context.Context, limit int) ([]*domain.PrepareBatch, error) {
	if limit < 0 {
		return nil, domain.ErrInvalidLimit
	}
	if limit == 0 {
		limit = defaultBatchListLimit
	}
	return s.batches.ListBatches(ctx, domain.BatchListFilter{Limit: uint64(limit)})
}
