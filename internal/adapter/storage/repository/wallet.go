package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/MikeRez0/pointsweep/internal/core/domain"
	"github.com/govalues/decimal"
)

const (
	hasOpenOrder = `EXISTS (SELECT 1 FROM orders o WHERE o.member_id = w.member_id AND o.status = ANY(?))`
	isStaged     = `EXISTS (SELECT 1 FROM prepared_orders p JOIN prepare_batches b ON b.id = p.batch_id
		WHERE p.member_id = w.member_id AND b.promoted_at IS NULL AND b.status = ANY(?))`
)

func stagedStatuses() []string {
	return []string{string(domain.BatchStatusDraft), string(domain.BatchStatusApproved)}
}

func eligibilityWhere(filter domain.EligibilityFilter) sq.And {
	where := sq.And{}
	if filter.MerchantID != "" {
		where = append(where, sq.Eq{"w.merchant_id": filter.MerchantID})
	}
	if filter.MemberID != "" {
		where = append(where, sq.Eq{"w.member_id": filter.MemberID})
	}
	return where
}

// CountEligibility reports how many wallets pass each eligibility gate.
func (r *Repository) CountEligibility(ctx context.Context,
	filter domain.EligibilityFilter) (*domain.EligibilityCounts, error) {
	open := domain.StatusStrings(domain.OpenOrderStatuses)
	staged := stagedStatuses()

	statement := r.db.QueryBuilder.Select(
		"count(*)",
		"count(*) FILTER (WHERE w.status = 'active' AND w.sweep_percentage > 0)",
		"count(*) FILTER (WHERE w.cash_balance > 0)",
	).
		Column(sq.Expr("count(*) FILTER (WHERE "+hasOpenOrder+")", open)).
		Column(sq.Expr("count(*) FILTER (WHERE "+isStaged+")", staged)).
		Column(sq.Expr("count(*) FILTER (WHERE w.status = 'active' AND w.sweep_percentage > 0 "+
			"AND w.cash_balance > 0 AND NOT "+hasOpenOrder+" AND NOT "+isStaged+")", open, staged)).
		Column(sq.Expr("COALESCE(sum(w.cash_balance) FILTER (WHERE w.status = 'active' "+
			"AND w.sweep_percentage > 0 AND w.cash_balance > 0 AND NOT "+hasOpenOrder+
			" AND NOT "+isStaged+"), 0)", open, staged)).
		From("wallets w").
		Where(eligibilityWhere(filter))

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	counts := &domain.EligibilityCounts{MerchantID: filter.MerchantID}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&counts.Wallets, &counts.Enrolled, &counts.PositiveBalance,
		&counts.BlockedOpenOrders, &counts.AlreadyStaged, &counts.Eligible, &counts.EligibleCash)
	if err != nil {
		return nil, wrapErr(err)
	}
	return counts, nil
}

func (r *Repository) ListEligibleWallets(ctx context.Context,
	filter domain.EligibilityFilter) ([]*domain.Wallet, error) {
	statement := r.db.QueryBuilder.
		Select("w.member_id", "w.merchant_id", "w.broker_id", "w.cash_balance", "w.sweep_percentage", "w.status").
		From("wallets w").
		Where(eligibilityWhere(filter)).
		Where(sq.Eq{"w.status": domain.WalletStatusActive}).
		Where("w.sweep_percentage > 0").
		Where("w.cash_balance > 0").
		Where("NOT "+hasOpenOrder, domain.StatusStrings(domain.OpenOrderStatuses)).
		Where("NOT "+isStaged, stagedStatuses()).
		OrderBy("w.member_id")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, wrapErr(err)
	}
	defer rows.Close()

	list := make([]*domain.Wallet, 0)
	for rows.Next() {
		var w domain.Wallet
		err := rows.Scan(&w.MemberID, &w.MerchantID, &w.BrokerID, &w.CashBalance, &w.SweepPercentage, &w.Status)
		if err != nil {
			return nil, wrapErr(err)
		}
		list = append(list, &w)
	}
	return list, wrapErr(rows.Err())
}

func (r *Repository) ListPicks(ctx context.Context, memberIDs []string) (map[string][]domain.Pick, error) {
	picks := make(map[string][]domain.Pick, len(memberIDs))
	if len(memberIDs) == 0 {
		return picks, nil
	}

	sql, args, err := r.db.QueryBuilder.Select("member_id", "symbol", "allocation_pct").
		From("member_picks").
		Where(sq.Eq{"member_id": memberIDs}).
		OrderBy("member_id", "symbol").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, wrapErr(err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			p          domain.Pick
			allocation decimal.NullDecimal
		)
		if err := rows.Scan(&p.MemberID, &p.Symbol, &allocation); err != nil {
			return nil, wrapErr(err)
		}
		p.Allocation = decimalPtr(allocation)
		picks[p.MemberID] = append(picks[p.MemberID], p)
	}
	return picks, wrapErr(rows.Err())
}
