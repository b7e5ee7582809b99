package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/dealership_ledger/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a read-committed transaction; callers serialize on SELECT ... FOR UPDATE row locks.
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", mapPgError(err))
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// mapPgError translates constraint and concurrency failures into application errors.
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case "23505": // unique_violation
		return fmt.Errorf("%w: %s", apperrors.ErrDuplicate, pgErr.ConstraintName)
	case "23503": // foreign_key_violation
		return fmt.Errorf("%w: %s", apperrors.ErrNotFound, pgErr.ConstraintName)
	case "23514": // check_violation
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, pgErr.ConstraintName)
	case "40001", "40P01": // serialization_failure, deadlock_detected
		return fmt.Errorf("%w: concurrent update, retry the request", apperrors.ErrConflict)
	}
	return err
}

// persistErr wraps an unexpected driver failure so it matches apperrors.ErrPersistence.
func persistErr(msg string, err error) error {
	mapped := mapPgError(err)
	if mapped != err {
		return mapped
	}
	return apperrors.NewAppError(500, msg, err)
}

func noRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
