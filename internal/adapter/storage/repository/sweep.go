package repository

import (
	"context"
	"encoding/json"

	sq "github.com/Masterminds/squirrel"
	"github.com/MikeRez0/pointsweep/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

var sweepRunColumns = []string{
	"id", "batch_id", "merchant_id", "kind", "started_at", "finished_at", "merchants_processed",
	"orders_processed", "orders_confirmed", "orders_failed", "errors", "brokers_notified",
}

func scanSweepRun(row pgx.Row) (*domain.SweepRun, error) {
	var (
		run             domain.SweepRun
		errs, notified []byte
	)
	err := row.Scan(&run.ID, &run.BatchID, &run.MerchantID, &run.Kind, &run.StartedAt, &run.FinishedAt,
		&run.MerchantsProcessed, &run.OrdersProcessed, &run.OrdersConfirmed, &run.OrdersFailed,
		&errs, &notified)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(errs, &run.Errors); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(notified, &run.BrokersNotified); err != nil {
		return nil, err
	}
	return &run, nil
}

func (r *Repository) CreateSweepRun(ctx context.Context, run *domain.SweepRun) error {
	sql, args, err := r.db.QueryBuilder.Insert("sweep_runs").
		Columns("id", "batch_id", "merchant_id", "kind", "started_at").
		Values(run.ID, run.BatchID, run.MerchantID, string(run.Kind), run.StartedAt).
		ToSql()
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, sql, args...)
	return wrapErr(err)
}

// CompleteSweepRun writes the final counters. A finished run is never updated again.
func (r *Repository) CompleteSweepRun(ctx context.Context, run *domain.SweepRun) error {
	errs := run.Errors
	if errs == nil {
		errs = []domain.SweepGroupError{}
	}
	errsJSON, err := json.Marshal(errs)
	if err != nil {
		return err
	}
	notified := run.BrokersNotified
	if notified == nil {
		notified = []string{}
	}
	notifiedJSON, err := json.Marshal(notified)
	if err != nil {
		return err
	}

	sql, args, err := r.db.QueryBuilder.Update("sweep_runs").
		Set("finished_at", run.FinishedAt).
		Set("merchants_processed", run.MerchantsProcessed).
		Set("orders_processed", run.OrdersProcessed).
		Set("orders_confirmed", run.OrdersConfirmed).
		Set("orders_failed", run.OrdersFailed).
		Set("errors", errsJSON).
		Set("brokers_notified", notifiedJSON).
		Where(sq.Eq{"id": run.ID}).
		Where(sq.Eq{"finished_at": nil}).
		ToSql()
	if err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return wrapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNoUpdatedData
	}
	return nil
}

func (r *Repository) GetSweepRun(ctx context.Context, id string) (*domain.SweepRun, error) {
	sql, args, err := r.db.QueryBuilder.Select(sweepRunColumns...).From("sweep_runs").
		Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	run, err := scanSweepRun(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, wrapErr(err)
	}
	return run, nil
}

func (r *Repository) ListSweepRuns(ctx context.Context, batchID string) ([]*domain.SweepRun, error) {
	sql, args, err := r.db.QueryBuilder.Select(sweepRunColumns...).From("sweep_runs").
		Where(sq.Eq{"batch_id": batchID}).OrderBy("started_at", "id").ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, wrapErr(err)
	}
	defer rows.Close()

	list := make([]*domain.SweepRun, 0)
	for rows.Next() {
		run, err := scanSweepRun(rows)
		if err != nil {
			return nil, wrapErr(err)
		}
		list = append(list, run)
	}
	return list, wrapErr(rows.Err())
}
