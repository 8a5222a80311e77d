package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/MikeRez0/pointsweep/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

var notificationColumns = []string{
	"id", "target_kind", "target_id", "event_type", "status", "payload", "response_code",
	"response_body", "error_message", "attempts", "created_at", "sent_at", "updated_at",
}

func scanNotification(row pgx.Row) (*domain.Notification, error) {
	var n domain.Notification
	err := row.Scan(&n.ID, &n.Target.Kind, &n.Target.ID, &n.EventType, &n.Status, &n.Payload,
		&n.ResponseCode, &n.ResponseBody, &n.ErrorMessage, &n.Attempts, &n.CreatedAt, &n.SentAt, &n.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *Repository) CreateNotification(ctx context.Context, n *domain.Notification) error {
	sql, args, err := r.db.QueryBuilder.Insert("notifications").
		Columns(notificationColumns...).
		Values(n.ID, string(n.Target.Kind), n.Target.ID, n.EventType, string(n.Status), n.Payload,
			n.ResponseCode, n.ResponseBody, n.ErrorMessage, n.Attempts, n.CreatedAt, n.SentAt, n.UpdatedAt).
		ToSql()
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, sql, args...)
	return wrapErr(err)
}

// UpdateNotification stores delivery state. The payload is immutable.
func (r *Repository) UpdateNotification(ctx context.Context, n *domain.Notification) error {
	sql, args, err := r.db.QueryBuilder.Update("notifications").
		Set("status", string(n.Status)).
		Set("response_code", n.ResponseCode).
		Set("response_body", n.ResponseBody).
		Set("error_message", n.ErrorMessage).
		Set("attempts", n.Attempts).
		Set("sent_at", n.SentAt).
		Set("updated_at", n.UpdatedAt).
		Where(sq.Eq{"id": n.ID}).
		ToSql()
	if err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return wrapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDataNotFound
	}
	return nil
}

func (r *Repository) GetNotification(ctx context.Context, id string) (*domain.Notification, error) {
	sql, args, err := r.db.QueryBuilder.Select(notificationColumns...).From("notifications").
		Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	n, err := scanNotification(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, wrapErr(err)
	}
	return n, nil
}

// FindNotifications searches inside the stored payload, so every notification that
// carried a given sweep batch, order or payment batch can be found.
func (r *Repository) FindNotifications(ctx context.Context,
	filter domain.NotificationFilter) ([]*domain.Notification, error) {
	statement := r.db.QueryBuilder.Select(notificationColumns...).From("notifications").
		OrderBy("created_at", "id")

	if filter.TargetID != "" {
		statement = statement.Where(sq.Eq{"target_id": filter.TargetID})
	}
	if filter.EventType != "" {
		statement = statement.Where(sq.Eq{"event_type": filter.EventType})
	}
	if filter.SweepBatchID != "" {
		statement = statement.Where("(payload::jsonb ->> 'sweep_batch_id') = ?", filter.SweepBatchID)
	}
	if filter.OrderID != "" {
		statement = statement.Where(
			"(payload::jsonb -> 'orders') @> jsonb_build_array(jsonb_build_object('order_id', ?::text))",
			filter.OrderID)
	}
	if filter.PaidBatchID != "" {
		statement = statement.Where("(payload::jsonb ->> 'paid_batch_id') = ?", filter.PaidBatchID)
	}
	if filter.ResponseText != "" {
		statement = statement.Where("strpos(coalesce(response_body, ''), ?) > 0", filter.ResponseText)
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

	list := make([]*domain.Notification, 0)
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, wrapErr(err)
		}
		list = append(list, n)
	}
	return list, wrapErr(rows.Err())
}
