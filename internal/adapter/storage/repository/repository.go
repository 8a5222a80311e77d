package repository

import (
	"context"
	"errors"

	"github.com/MikeRez0/pointsweep/internal/adapter/storage"
	"github.com/MikeRez0/pointsweep/internal/core/domain"
	"github.com/govalues/decimal"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Repository implements every storage port on top of one PostgreSQL pool.
type Repository struct {
	db *storage.DB
}

func NewRepository(db *storage.DB) (*Repository, error) {
	return &Repository{db: db}, nil
}

// querier is satisfied by both the pool and a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

// wrapErr maps driver errors onto domain errors. Domain errors pass through.
func wrapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, pgx.ErrNoRows):
		return domain.ErrDataNotFound
	case isUniqueViolation(err):
		return domain.ErrConflictingData
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrEligibility),
		errors.Is(err, domain.ErrConcurrencyConflict),
		errors.Is(err, domain.ErrDataNotFound),
		errors.Is(err, domain.ErrEventDeferred):
		return err
	}
	return domain.Persistence(err)
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func decimalPtr(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
