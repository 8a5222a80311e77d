package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/MikeRez0/pointsweep/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

var transferColumns = []string{
	"id", "idempotency_key", "paid_batch_id", "merchant_id", "amount", "status",
	"external_id", "last_error", "created_at", "updated_at",
}

func scanTransfer(row pgx.Row) (*domain.BankTransfer, error) {
	var t domain.BankTransfer
	err := row.Scan(&t.ID, &t.IdempotencyKey, &t.PaidBatchID, &t.MerchantID, &t.Amount, &t.Status,
		&t.ExternalID, &t.LastError, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateTransfer stores a new transfer. When one with the same idempotency key
// already exists the stored row is returned instead.
func (r *Repository) CreateTransfer(ctx context.Context, t *domain.BankTransfer) (*domain.BankTransfer, error) {
	sql, args, err := r.db.QueryBuilder.Insert("bank_transfers").
		Columns(transferColumns...).
		Values(t.ID, t.IdempotencyKey, t.PaidBatchID, t.MerchantID, t.Amount, string(t.Status),
			t.ExternalID, t.LastError, t.CreatedAt, t.UpdatedAt).
		Suffix("ON CONFLICT (idempotency_key) DO NOTHING").
		ToSql()
	if err != nil {
		return nil, err
	}
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return nil, wrapErr(err)
	}
	if tag.RowsAffected() == 1 {
		return t, nil
	}

	sql, args, err = r.db.QueryBuilder.Select(transferColumns...).From("bank_transfers").
		Where(sq.Eq{"idempotency_key": t.IdempotencyKey}).ToSql()
	if err != nil {
		return nil, err
	}
	existing, err := scanTransfer(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, wrapErr(err)
	}
	return existing, nil
}

func (r *Repository) UpdateTransfer(ctx context.Context, t *domain.BankTransfer) error {
	sql, args, err := r.db.QueryBuilder.Update("bank_transfers").
		Set("status", string(t.Status)).
		Set("external_id", t.ExternalID).
		Set("last_error", t.LastError).
		Set("updated_at", t.UpdatedAt).
		Where(sq.Eq{"id": t.ID}).
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

func (r *Repository) FindTransfers(ctx context.Context, filter domain.TransferFilter) ([]*domain.BankTransfer, error) {
	statement := r.db.QueryBuilder.Select(transferColumns...).From("bank_transfers").OrderBy("created_at", "id")

	if filter.ID != "" {
		statement = statement.Where(sq.Eq{"id": filter.ID})
	}
	if filter.PaidBatchID != "" {
		statement = statement.Where(sq.Eq{"paid_batch_id": filter.PaidBatchID})
	}
	if filter.ExternalID != "" {
		statement = statement.Where(sq.Eq{"external_id": filter.ExternalID})
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			statuses = append(statuses, string(s))
		}
		statement = statement.Where(sq.Eq{"status": statuses})
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

	list := make([]*domain.BankTransfer, 0)
	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			return nil, wrapErr(err)
		}
		list = append(list, t)
	}
	return list, wrapErr(rows.Err())
}
