package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/MikeRez0/pointsweep/internal/core/domain"
	"github.com/MikeRez0/pointsweep/internal/core/port"
	"github.com/govalues/decimal"
	"github.com/jackc/pgx/v5"
)

var orderColumns = []string{
	"id", "member_id", "merchant_id", "batch_id", "prepared_order_id", "basket_id", "broker_id",
	"symbol", "shares", "amount", "points_used", "status", "broker_reference", "exec_reference",
	"executed_price", "executed_shares", "executed_amount", "executed_time", "confirm_attempts",
	"status_reason", "paid_flag", "paid_batch_id", "paid_at", "created_at", "queued_at", "placed_at",
	"confirmed_at", "executed_at", "settled_at", "sell_at", "sold_at", "cancelled_at", "failed_at",
	"updated_at",
}

// statusTimeColumn is the timestamp stamped when an order enters a status.
var statusTimeColumn = map[domain.OrderStatus]string{
	domain.OrderStatusQueued:    "queued_at",
	domain.OrderStatusPlaced:    "placed_at",
	domain.OrderStatusConfirmed: "confirmed_at",
	domain.OrderStatusExecuted:  "executed_at",
	domain.OrderStatusSettled:   "settled_at",
	domain.OrderStatusSell:      "sell_at",
	domain.OrderStatusSold:      "sold_at",
	domain.OrderStatusCancelled: "cancelled_at",
	domain.OrderStatusFailed:    "failed_at",
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var (
		o                                  domain.Order
		batchID, preparedID, paidBatchID   *string
		shares, price, execShares, execAmt decimal.NullDecimal
		execTime                           *time.Time
		paidFlag                           int16
	)
	err := row.Scan(
		&o.ID, &o.MemberID, &o.MerchantID, &batchID, &preparedID, &o.BasketID, &o.BrokerID,
		&o.Symbol, &shares, &o.Amount, &o.PointsUsed, &o.Status, &o.BrokerReference, &o.ExecReference,
		&price, &execShares, &execAmt, &execTime, &o.ConfirmAttempts,
		&o.StatusReason, &paidFlag, &paidBatchID, &o.PaidAt, &o.CreatedAt, &o.QueuedAt, &o.PlacedAt,
		&o.ConfirmedAt, &o.ExecutedAt, &o.SettledAt, &o.SellAt, &o.SoldAt, &o.CancelledAt, &o.FailedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	o.BatchID = derefString(batchID)
	o.PreparedOrderID = derefString(preparedID)
	o.PaidBatchID = derefString(paidBatchID)
	o.PaidFlag = paidFlag == 1
	o.Shares = decimalPtr(shares)
	if price.Valid && execShares.Valid && execAmt.Valid && execTime != nil {
		o.Execution = &domain.Execution{
			Price:  price.Decimal,
			Shares: execShares.Decimal,
			Amount: execAmt.Decimal,
			At:     *execTime,
		}
	}
	return &o, nil
}

func (r *Repository) selectOrders() sq.SelectBuilder {
	return r.db.QueryBuilder.Select(orderColumns...).From("orders")
}

func (r *Repository) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	return r.getOrder(ctx, r.db, id, false)
}

func (r *Repository) getOrder(ctx context.Context, q querier, id string, forUpdate bool) (*domain.Order, error) {
	statement := r.selectOrders().Where(sq.Eq{"id": id})
	if forUpdate {
		statement = statement.Suffix("FOR UPDATE")
	}

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	order, err := scanOrder(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, wrapErr(err)
	}
	return order, nil
}

func (r *Repository) ListOrders(ctx context.Context, filter domain.OrderFilter) ([]*domain.Order, error) {
	statement := r.selectOrders().OrderBy("created_at", "id")

	if len(filter.IDs) > 0 {
		statement = statement.Where(sq.Eq{"id": filter.IDs})
	}
	if filter.BatchID != "" {
		statement = statement.Where(sq.Eq{"batch_id": filter.BatchID})
	}
	if filter.BasketID != "" {
		statement = statement.Where(sq.Eq{"basket_id": filter.BasketID})
	}
	if filter.MemberID != "" {
		statement = statement.Where(sq.Eq{"member_id": filter.MemberID})
	}
	if filter.MerchantID != "" {
		statement = statement.Where(sq.Eq{"merchant_id": filter.MerchantID})
	}
	if filter.BrokerReference != "" {
		statement = statement.Where(sq.Eq{"broker_reference": filter.BrokerReference})
	}
	if filter.ExecReference != "" {
		statement = statement.Where(sq.Eq{"exec_reference": filter.ExecReference})
	}
	if filter.PaidBatchID != "" {
		statement = statement.Where(sq.Eq{"paid_batch_id": filter.PaidBatchID})
	}
	if len(filter.Statuses) > 0 {
		statement = statement.Where(sq.Eq{"status": domain.StatusStrings(filter.Statuses)})
	}
	if filter.PlacedBefore != nil {
		statement = statement.Where(sq.Lt{"placed_at": *filter.PlacedBefore})
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

	list := make([]*domain.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, wrapErr(err)
		}
		list = append(list, order)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(err)
	}
	return list, nil
}

// writeOrder persists the mutable part of an order. Amount, points and payment
// columns are never written here.
func (r *Repository) writeOrder(ctx context.Context, q querier, o *domain.Order) error {
	var price, shares, amount decimal.NullDecimal
	var execTime *time.Time
	if o.Execution != nil {
		price = decimal.NullDecimal{Decimal: o.Execution.Price, Valid: true}
		shares = decimal.NullDecimal{Decimal: o.Execution.Shares, Valid: true}
		amount = decimal.NullDecimal{Decimal: o.Execution.Amount, Valid: true}
		at := o.Execution.At
		execTime = &at
	}

	statement := r.db.QueryBuilder.Update("orders").
		Set("status", string(o.Status)).
		Set("broker_reference", o.BrokerReference).
		Set("exec_reference", o.ExecReference).
		Set("executed_price", price).
		Set("executed_shares", shares).
		Set("executed_amount", amount).
		Set("executed_time", execTime).
		Set("confirm_attempts", o.ConfirmAttempts).
		Set("status_reason", o.StatusReason).
		Set("queued_at", o.QueuedAt).
		Set("placed_at", o.PlacedAt).
		Set("confirmed_at", o.ConfirmedAt).
		Set("executed_at", o.ExecutedAt).
		Set("settled_at", o.SettledAt).
		Set("sell_at", o.SellAt).
		Set("sold_at", o.SoldAt).
		Set("cancelled_at", o.CancelledAt).
		Set("failed_at", o.FailedAt).
		Set("updated_at", o.UpdatedAt).
		Where(sq.Eq{"id": o.ID})

	sql, args, err := statement.ToSql()
	if err != nil {
		return err
	}
	_, err = q.Exec(ctx, sql, args...)
	return err
}

func (r *Repository) insertHistory(ctx context.Context, q querier, changes []domain.StatusChange) error {
	if len(changes) == 0 {
		return nil
	}
	statement := r.db.QueryBuilder.Insert("order_status_history").
		Columns("order_id", "from_status", "to_status", "source", "changed_at")
	for _, c := range changes {
		statement = statement.Values(c.OrderID, string(c.From), string(c.To), c.Source, c.ChangedAt)
	}

	sql, args, err := statement.ToSql()
	if err != nil {
		return err
	}
	_, err = q.Exec(ctx, sql, args...)
	return err
}

func (r *Repository) UpdateOrder(ctx context.Context, id string, source string,
	updateFn port.UpdateOrderFn) (*domain.Order, error) {
	var order *domain.Order

	err := r.db.InTx(ctx, func(tx pgx.Tx) error {
		o, err := r.getOrder(ctx, tx, id, true)
		if err != nil {
			return err
		}
		prev := o.Status

		if err := updateFn(o); err != nil {
			return err
		}
		if err := r.writeOrder(ctx, tx, o); err != nil {
			return err
		}
		if o.Status != prev {
			err = r.insertHistory(ctx, tx, []domain.StatusChange{
				{OrderID: o.ID, From: prev, To: o.Status, Source: source, ChangedAt: o.UpdatedAt},
			})
			if err != nil {
				return err
			}
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, wrapErr(err)
	}
	return order, nil
}

func (r *Repository) ApplyOrderEvent(ctx context.Context, event *domain.BrokerEvent,
	updateFn port.UpdateOrderFn) (*domain.Order, bool, error) {
	var (
		order    *domain.Order
		replayed bool
		deferred bool
	)

	payload, err := json.Marshal(event)
	if err != nil {
		return nil, false, err
	}

	err = r.db.InTx(ctx, func(tx pgx.Tx) error {
		o, err := r.getOrder(ctx, tx, event.OrderID, true)
		if err != nil {
			return err
		}

		// the order row lock serializes concurrent deliveries of the same event
		var applied bool
		err = tx.QueryRow(ctx,
			"SELECT EXISTS (SELECT 1 FROM order_events WHERE order_id = $1 AND event_type = $2)",
			event.OrderID, event.Type).Scan(&applied)
		if err != nil {
			return err
		}
		if applied {
			order = o
			replayed = true
			return nil
		}

		prev := o.Status
		fnErr := updateFn(o)
		if fnErr != nil && !errors.Is(fnErr, domain.ErrEventDeferred) {
			return fnErr
		}
		deferred = fnErr != nil

		if err := r.writeOrder(ctx, tx, o); err != nil {
			return err
		}
		if o.Status != prev {
			err = r.insertHistory(ctx, tx, []domain.StatusChange{
				{OrderID: o.ID, From: prev, To: o.Status, Source: event.Type, ChangedAt: o.UpdatedAt},
			})
			if err != nil {
				return err
			}
		}
		if !deferred {
			statement := r.db.QueryBuilder.Insert("order_events").
				Columns("order_id", "event_type", "payload", "received_at").
				Values(o.ID, event.Type, payload, event.ReceivedAt)
			sql, args, err := statement.ToSql()
			if err != nil {
				return err
			}
			if _, err := tx.Exec(ctx, sql, args...); err != nil {
				return err
			}
		}
		order = o
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			o, getErr := r.GetOrder(ctx, event.OrderID)
			if getErr != nil {
				return nil, false, getErr
			}
			return o, true, nil
		}
		return nil, false, wrapErr(err)
	}
	if deferred {
		return order, false, domain.ErrEventDeferred
	}
	return order, replayed, nil
}

func (r *Repository) TransitionOrders(ctx context.Context, req domain.BulkTransition) (int, error) {
	if len(req.IDs) == 0 {
		return 0, nil
	}
	column, ok := statusTimeColumn[req.To]
	if !ok {
		return 0, fmt.Errorf("%w: %s", domain.ErrInvalidTransition, req.To)
	}
	for _, from := range req.From {
		if err := from.CheckTransition(req.To); err != nil {
			return 0, err
		}
	}

	// column comes from statusTimeColumn, never from input
	sql := `WITH prev AS (
	SELECT id, status FROM orders WHERE id = ANY($1) AND status = ANY($2) FOR UPDATE
)
UPDATE orders o
SET status = $3, ` + column + ` = $4, updated_at = $4,
    broker_reference = COALESCE(NULLIF($5::text, ''), o.broker_reference)
FROM prev
WHERE o.id = prev.id
RETURNING o.id, prev.status`

	var count int
	err := r.db.InTx(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, sql, req.IDs, domain.StatusStrings(req.From),
			string(req.To), req.At, req.BrokerReference)
		if err != nil {
			return err
		}
		changes := make([]domain.StatusChange, 0, len(req.IDs))
		for rows.Next() {
			var c domain.StatusChange
			if err := rows.Scan(&c.OrderID, &c.From); err != nil {
				rows.Close()
				return err
			}
			c.To = req.To
			c.Source = req.Source
			c.ChangedAt = req.At
			changes = append(changes, c)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}
		count = len(changes)
		return r.insertHistory(ctx, tx, changes)
	})
	if err != nil {
		return 0, wrapErr(err)
	}
	return count, nil
}

func (r *Repository) MarkOrdersPaid(ctx context.Context, merchantID string, paidBatchID string,
	paidAt time.Time) (*domain.PaymentResult, error) {
	// paid_flag = 0 in the selection is what makes re-runs affect nothing
	sql := `WITH prev AS (
	SELECT id, status FROM orders
	WHERE merchant_id = $1 AND status = ANY($2) AND paid_flag = 0
	FOR UPDATE
)
UPDATE orders o
SET paid_flag = 1, paid_batch_id = $3, paid_at = $4,
    status = $5, settled_at = $4, updated_at = $4
FROM prev
WHERE o.id = prev.id AND o.paid_flag = 0
RETURNING o.id, prev.status, COALESCE(o.executed_amount, o.amount)`

	result := &domain.PaymentResult{
		MerchantID:  merchantID,
		PaidBatchID: paidBatchID,
		TotalAmount: decimal.Zero,
	}

	err := r.db.InTx(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, sql, merchantID, domain.StatusStrings(domain.PayableOrderStatuses),
			paidBatchID, paidAt, string(domain.OrderStatusSettled))
		if err != nil {
			return err
		}
		var changes []domain.StatusChange
		for rows.Next() {
			var (
				c      domain.StatusChange
				amount decimal.Decimal
			)
			if err := rows.Scan(&c.OrderID, &c.From, &amount); err != nil {
				rows.Close()
				return err
			}
			c.To = domain.OrderStatusSettled
			c.Source = "settlement"
			c.ChangedAt = paidAt
			changes = append(changes, c)
			result.OrderIDs = append(result.OrderIDs, c.OrderID)
			if result.TotalAmount, err = result.TotalAmount.Add(amount); err != nil {
				rows.Close()
				return err
			}
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}
		return r.insertHistory(ctx, tx, changes)
	})
	if err != nil {
		return nil, wrapErr(err)
	}

	result.Affected = len(result.OrderIDs)
	if result.Affected > 0 {
		result.PaidAt = &paidAt
	}
	return result, nil
}

func (r *Repository) ListStatusHistory(ctx context.Context, orderID string) ([]domain.StatusChange, error) {
	statement := r.db.QueryBuilder.
		Select("order_id", "from_status", "to_status", "source", "changed_at").
		From("order_status_history").
		Where(sq.Eq{"order_id": orderID}).
		OrderBy("id")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, wrapErr(err)
	}
	defer rows.Close()

	list := make([]domain.StatusChange, 0)
	for rows.Next() {
		var c domain.StatusChange
		if err := rows.Scan(&c.OrderID, &c.From, &c.To, &c.Source, &c.ChangedAt); err != nil {
			return nil, wrapErr(err)
		}
		list = append(list, c)
	}
	return list, wrapErr(rows.Err())
}
