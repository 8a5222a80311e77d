package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/MikeRez0/pointsweep/internal/core/domain"
	"github.com/MikeRez0/pointsweep/internal/core/port"
	"github.com/govalues/decimal"
	"github.com/jackc/pgx/v5"
)

// insertChunk bounds the number of rows per multi-row INSERT.
const insertChunk = 500

var batchColumns = []string{
	"id", "status", "filters", "member_count", "order_count", "total_amount", "total_points",
	"created_at", "approved_at", "promoted_at", "submitted_at", "discarded_at",
}

var preparedOrderColumns = []string{
	"id", "batch_id", "member_id", "merchant_id", "basket_id", "broker_id",
	"symbol", "shares", "amount", "points_used", "created_at",
}

func scanBatch(row pgx.Row) (*domain.PrepareBatch, error) {
	var (
		b       domain.PrepareBatch
		filters []byte
	)
	err := row.Scan(&b.ID, &b.Status, &filters, &b.MemberCount, &b.OrderCount, &b.TotalAmount,
		&b.TotalPoints, &b.CreatedAt, &b.ApprovedAt, &b.PromotedAt, &b.SubmittedAt, &b.DiscardedAt)
	if err != nil {
		return nil, err
	}
	if len(filters) > 0 {
		if err := json.Unmarshal(filters, &b.Filters); err != nil {
			return nil, fmt.Errorf("batch %s filters: %w", b.ID, err)
		}
	}
	return &b, nil
}

func scanPreparedOrder(row pgx.Row) (*domain.PreparedOrder, error) {
	var (
		p      domain.PreparedOrder
		shares decimal.NullDecimal
	)
	err := row.Scan(&p.ID, &p.BatchID, &p.MemberID, &p.MerchantID, &p.BasketID, &p.BrokerID,
		&p.Symbol, &shares, &p.Amount, &p.PointsUsed, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	p.Shares = decimalPtr(shares)
	return &p, nil
}

func (r *Repository) CreateBatch(ctx context.Context, batch *domain.PrepareBatch,
	orders []*domain.PreparedOrder) (*domain.PrepareBatch, error) {
	filters, err := json.Marshal(batch.Filters)
	if err != nil {
		return nil, err
	}

	err = r.db.InTx(ctx, func(tx pgx.Tx) error {
		statement := r.db.QueryBuilder.Insert("prepare_batches").
			Columns("id", "status", "filters", "member_count", "order_count",
				"total_amount", "total_points", "created_at").
			Values(batch.ID, string(batch.Status), filters, batch.MemberCount, batch.OrderCount,
				batch.TotalAmount, batch.TotalPoints, batch.CreatedAt)
		sql, args, err := statement.ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return err
		}

		for start := 0; start < len(orders); start += insertChunk {
			end := min(start+insertChunk, len(orders))
			insert := r.db.QueryBuilder.Insert("prepared_orders").Columns(preparedOrderColumns...)
			for _, p := range orders[start:end] {
				insert = insert.Values(p.ID, p.BatchID, p.MemberID, p.MerchantID, p.BasketID, p.BrokerID,
					p.Symbol, nullDecimal(p.Shares), p.Amount, p.PointsUsed, p.CreatedAt)
			}
			sql, args, err := insert.ToSql()
			if err != nil {
				return err
			}
			if _, err := tx.Exec(ctx, sql, args...); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, wrapErr(err)
	}
	return batch, nil
}

func (r *Repository) GetBatch(ctx context.Context, id string) (*domain.PrepareBatch, error) {
	return r.getBatch(ctx, r.db, id, false)
}

func (r *Repository) getBatch(ctx context.Context, q querier, id string, forUpdate bool) (*domain.PrepareBatch, error) {
	statement := r.db.QueryBuilder.Select(batchColumns...).From("prepare_batches").Where(sq.Eq{"id": id})
	if forUpdate {
		statement = statement.Suffix("FOR UPDATE")
	}
	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}
	batch, err := scanBatch(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, wrapErr(err)
	}
	return batch, nil
}

func (r *Repository) writeBatch(ctx context.Context, q querier, b *domain.PrepareBatch) error {
	statement := r.db.QueryBuilder.Update("prepare_batches").
		Set("status", string(b.Status)).
		Set("approved_at", b.ApprovedAt).
		Set("promoted_at", b.PromotedAt).
		Set("submitted_at", b.SubmittedAt).
		Set("discarded_at", b.DiscardedAt).
		Where(sq.Eq{"id": b.ID})
	sql, args, err := statement.ToSql()
	if err != nil {
		return err
	}
	_, err = q.Exec(ctx, sql, args...)
	return err
}

func (r *Repository) UpdateBatch(ctx context.Context, id string,
	updateFn port.UpdateBatchFn) (*domain.PrepareBatch, error) {
	var batch *domain.PrepareBatch
	err := r.db.InTx(ctx, func(tx pgx.Tx) error {
		b, err := r.getBatch(ctx, tx, id, true)
		if err != nil {
			return err
		}
		if err := updateFn(b); err != nil {
			return err
		}
		if err := r.writeBatch(ctx, tx, b); err != nil {
			return err
		}
		batch = b
		return nil
	})
	if err != nil {
		return nil, wrapErr(err)
	}
	return batch, nil
}

func (r *Repository) ListBatches(ctx context.Context, filter domain.BatchListFilter) ([]*domain.PrepareBatch, error) {
	statement := r.db.QueryBuilder.Select(batchColumns...).From("prepare_batches")

	if len(filter.Statuses) > 0 {
		statuses := make([]string, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			statuses = append(statuses, string(s))
		}
		statement = statement.Where(sq.Eq{"status": statuses})
	}
	if filter.MerchantID != "" {
		statement = statement.Where(
			"EXISTS (SELECT 1 FROM prepared_orders p WHERE p.batch_id = prepare_batches.id AND p.merchant_id = ?)",
			filter.MerchantID)
	}
	if filter.Unpromoted {
		// oldest first so a sweep drains batches in approval order
		statement = statement.Where(sq.Eq{"promoted_at": nil}).OrderBy("created_at ASC", "id")
	} else {
		statement = statement.OrderBy("created_at DESC", "id")
	}
	if filter.Limit > 0 {
		statement = statement.Limit(filter.Limit)
	}

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, wrapErr(err)
	}
	defer rows.Close()

	list := make([]*domain.PrepareBatch, 0)
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, wrapErr(err)
		}
		list = append(list, b)
	}
	return list, wrapErr(rows.Err())
}

func (r *Repository) ListPreparedOrders(ctx context.Context,
	filter domain.PreparedOrderFilter) ([]*domain.PreparedOrder, int, error) {
	where := sq.And{}
	if filter.BatchID != "" {
		where = append(where, sq.Eq{"batch_id": filter.BatchID})
	}
	if filter.BasketID != "" {
		where = append(where, sq.Eq{"basket_id": filter.BasketID})
	}
	if filter.MemberID != "" {
		where = append(where, sq.Eq{"member_id": filter.MemberID})
	}
	if filter.Symbol != "" {
		where = append(where, sq.Eq{"symbol": filter.Symbol})
	}
	if filter.BrokerID != "" {
		where = append(where, sq.Eq{"broker_id": filter.BrokerID})
	}

	countSQL, countArgs, err := r.db.QueryBuilder.Select("count(*)").From("prepared_orders").
		Where(where).ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total int
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, wrapErr(err)
	}

	statement := r.db.QueryBuilder.Select(preparedOrderColumns...).From("prepared_orders").
		Where(where).OrderBy("member_id", "symbol", "id")
	if filter.PerPage > 0 {
		page := max(filter.Page, 1)
		statement = statement.Limit(filter.PerPage).Offset((page - 1) * filter.PerPage)
	}

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, wrapErr(err)
	}
	defer rows.Close()

	list := make([]*domain.PreparedOrder, 0)
	for rows.Next() {
		p, err := scanPreparedOrder(rows)
		if err != nil {
			return nil, 0, wrapErr(err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, wrapErr(err)
	}
	return list, total, nil
}

func (r *Repository) groupTotals(ctx context.Context, batchID string, column string) ([]domain.GroupTotal, error) {
	sql, args, err := r.db.QueryBuilder.
		Select(column, "count(*)", "COALESCE(sum(amount), 0)").
		From("prepared_orders").
		Where(sq.Eq{"batch_id": batchID}).
		GroupBy(column).
		OrderBy(column).
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]domain.GroupTotal, 0)
	for rows.Next() {
		var g domain.GroupTotal
		if err := rows.Scan(&g.Key, &g.Orders, &g.Amount); err != nil {
			return nil, err
		}
		list = append(list, g)
	}
	return list, rows.Err()
}

func (r *Repository) BatchStats(ctx context.Context, id string) (*domain.BatchStats, error) {
	batch, err := r.GetBatch(ctx, id)
	if err != nil {
		return nil, err
	}

	stats := &domain.BatchStats{
		Batch:         batch,
		OrderStatuses: make(map[domain.OrderStatus]int),
	}
	if stats.ByBroker, err = r.groupTotals(ctx, id, "broker_id"); err != nil {
		return nil, wrapErr(err)
	}
	if stats.BySymbol, err = r.groupTotals(ctx, id, "symbol"); err != nil {
		return nil, wrapErr(err)
	}
	if stats.ByMerchant, err = r.groupTotals(ctx, id, "merchant_id"); err != nil {
		return nil, wrapErr(err)
	}

	sql, args, err := r.db.QueryBuilder.Select("status", "count(*)").From("orders").
		Where(sq.Eq{"batch_id": id}).GroupBy("status").ToSql()
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
			status domain.OrderStatus
			count  int
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, wrapErr(err)
		}
		stats.OrderStatuses[status] = count
		stats.PromotedOrders += count
	}
	return stats, wrapErr(rows.Err())
}

// PromoteBatch turns the staged rows of an approved batch into pending orders in
// one transaction. Members whose wallet no longer covers their basket are skipped.
func (r *Repository) PromoteBatch(ctx context.Context, id string,
	promoteFn port.UpdateBatchFn) (*domain.Promotion, error) {
	promotion := &domain.Promotion{}

	err := r.db.InTx(ctx, func(tx pgx.Tx) error {
		batch, err := r.getBatch(ctx, tx, id, true)
		if err != nil {
			return err
		}
		if err := promoteFn(batch); err != nil {
			return err
		}
		if batch.PromotedAt == nil {
			return domain.ErrBatchNotPromoted
		}
		at := *batch.PromotedAt

		sql, args, err := r.db.QueryBuilder.Select(preparedOrderColumns...).From("prepared_orders").
			Where(sq.Eq{"batch_id": id}).OrderBy("member_id", "symbol", "id").ToSql()
		if err != nil {
			return err
		}
		rows, err := tx.Query(ctx, sql, args...)
		if err != nil {
			return err
		}
		byMember := make(map[string][]*domain.PreparedOrder)
		var members []string
		for rows.Next() {
			p, err := scanPreparedOrder(rows)
			if err != nil {
				rows.Close()
				return err
			}
			if _, ok := byMember[p.MemberID]; !ok {
				members = append(members, p.MemberID)
			}
			byMember[p.MemberID] = append(byMember[p.MemberID], p)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}

		for _, memberID := range members {
			lines := byMember[memberID]
			reason, err := r.promoteMember(ctx, tx, memberID, batch.ID, lines, at)
			if err != nil {
				return err
			}
			if reason != "" {
				promotion.SkippedMembers = append(promotion.SkippedMembers, domain.SkippedMember{
					MemberID:   memberID,
					MerchantID: lines[0].MerchantID,
					Lines:      len(lines),
					Reason:     reason,
				})
				continue
			}
			for _, p := range lines {
				promotion.Orders = append(promotion.Orders, p.ToOrder(domain.NewID(domain.PrefixOrder), at))
			}
		}

		if err := r.insertOrders(ctx, tx, promotion.Orders); err != nil {
			return err
		}
		if err := r.writeBatch(ctx, tx, batch); err != nil {
			return err
		}
		promotion.Batch = batch
		return nil
	})
	if err != nil {
		return nil, wrapErr(err)
	}
	return promotion, nil
}

// promoteMember locks the member's wallet and debits it for the staged lines. It
// returns a skip reason when the member got an open order from another batch
// since staging or the wallet no longer covers the lines.
func (r *Repository) promoteMember(ctx context.Context, tx pgx.Tx, memberID string, batchID string,
	lines []*domain.PreparedOrder, at time.Time) (string, error) {
	if _, err := tx.Exec(ctx, `SELECT 1 FROM wallets WHERE member_id = $1 FOR UPDATE`, memberID); err != nil {
		return "", err
	}

	var open bool
	err := tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM orders WHERE member_id = $1 AND status = ANY($2))`,
		memberID, domain.StatusStrings(domain.OpenOrderStatuses)).Scan(&open)
	if err != nil {
		return "", err
	}
	if open {
		return domain.SkipReasonOpenOrder, nil
	}

	funded, err := r.debitWallet(ctx, tx, memberID, batchID, lines, at)
	if err != nil {
		return "", err
	}
	if !funded {
		return domain.SkipReasonInsufficientCash, nil
	}
	return "", nil
}

func (r *Repository) debitWallet(ctx context.Context, tx pgx.Tx, memberID string, batchID string,
	lines []*domain.PreparedOrder, at time.Time) (bool, error) {
	total := decimal.Zero
	for _, p := range lines {
		var err error
		if total, err = total.Add(p.Amount); err != nil {
			return false, err
		}
	}

	tag, err := tx.Exec(ctx,
		`UPDATE wallets SET cash_balance = cash_balance - $1, updated_at = $2
		WHERE member_id = $3 AND cash_balance >= $1`,
		total, at, memberID)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO wallet_entries (member_id, amount_delta, reason, reference, created_at)
		VALUES ($1, $2, 'redemption', $3, $4)`,
		memberID, total.Neg(), batchID, at)
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *Repository) insertOrders(ctx context.Context, tx pgx.Tx, orders []*domain.Order) error {
	for start := 0; start < len(orders); start += insertChunk {
		end := min(start+insertChunk, len(orders))
		insert := r.db.QueryBuilder.Insert("orders").
			Columns("id", "member_id", "merchant_id", "batch_id", "prepared_order_id", "basket_id",
				"broker_id", "symbol", "shares", "amount", "points_used", "status", "created_at", "updated_at")
		changes := make([]domain.StatusChange, 0, end-start)
		for _, o := range orders[start:end] {
			insert = insert.Values(o.ID, o.MemberID, o.MerchantID, nullString(o.BatchID),
				nullString(o.PreparedOrderID), o.BasketID, o.BrokerID, o.Symbol, nullDecimal(o.Shares),
				o.Amount, o.PointsUsed, string(o.Status), o.CreatedAt, o.UpdatedAt)
			changes = append(changes, domain.StatusChange{
				OrderID: o.ID, To: o.Status, Source: "promotion", ChangedAt: o.CreatedAt,
			})
		}
		sql, args, err := insert.ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return err
		}
		if err := r.insertHistory(ctx, tx, changes); err != nil {
			return err
		}
	}
	return nil
}

// SubmitIfFunded marks a promoted batch submitted once none of its orders is
// still waiting for a broker.
func (r *Repository) SubmitIfFunded(ctx context.Context, id string, at time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE prepare_batches b SET status = $1, submitted_at = $2
		WHERE b.id = $3 AND b.status = $4 AND b.promoted_at IS NOT NULL
		AND NOT EXISTS (SELECT 1 FROM orders o WHERE o.batch_id = b.id AND o.status = ANY($5))`,
		string(domain.BatchStatusSubmitted), at, id, string(domain.BatchStatusApproved),
		domain.StatusStrings(domain.IntermediateOrderStatuses))
	if err != nil {
		return false, wrapErr(err)
	}
	return tag.RowsAffected() == 1, nil
}
