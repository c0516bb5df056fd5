package database

import (
	"context"
	"database/sql"
	"errors"

	appErrors "gclub-api/core/errors"
	"gclub-api/core/logger"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Tx adapts a sqlx transaction to IDatabase so repositories can run inside
// a unit of work without knowing about it.
type Tx struct {
	tx *sqlx.Tx
}

func (t *Tx) ExecContext(ctx context.Context, query string, args ...any) error {
	_, err := t.tx.ExecContext(ctx, query, args...)
	return err
}

func (t *Tx) ExecResultContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return t.tx.ExecContext(ctx, query, args...)
}

func (t *Tx) GetContext(ctx context.Context, dest any, query string, args ...any) error {
	return t.tx.GetContext(ctx, dest, query, args...)
}

func (t *Tx) SelectContext(ctx context.Context, dest any, query string, args ...any) error {
	return t.tx.SelectContext(ctx, dest, query, args...)
}

func (t *Tx) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return t.tx.QueryRowContext(ctx, query, args...)
}

func (t *Tx) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return t.tx.QueryContext(ctx, query, args...)
}

func (t *Tx) NamedQueryContext(ctx context.Context, query string, arg any) (*sqlx.Rows, error) {
	return sqlx.NamedQueryContext(ctx, t.tx, query, arg)
}

func (t *Tx) NamedExecContext(ctx context.Context, query string, arg any) (sql.Result, error) {
	return t.tx.NamedExecContext(ctx, query, arg)
}

func (t *Tx) Rebind(query string) string {
	return t.tx.Rebind(query)
}

// WithinTx runs fn in a serializable transaction. A serialization failure or
// deadlock is retried exactly once; if the retry also fails the caller gets a
// TX_CONFLICT AppError. Any error from fn rolls back the whole transaction.
func (d *Database) WithinTx(ctx context.Context, fn func(ctx context.Context, tx IDatabase) error) error {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		err := d.runTx(ctx, fn)
		if err == nil {
			return nil
		}
		if !isSerializationFailure(err) {
			return err
		}
		lastErr = err
		logger.Warn("Database:WithinTx:SerializationFailure", "attempt", attempt+1, "error", err)
	}
	return appErrors.NewAppError(appErrors.ErrTxConflict, "concurrent conflicting update", lastErr)
}

func (d *Database) runTx(ctx context.Context, fn func(ctx context.Context, tx IDatabase) error) error {
	tx, err := d.sqlx.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return err
	}

	if err := fn(ctx, &Tx{tx: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			logger.Error("Database:WithinTx:Rollback", rbErr)
		}
		return err
	}

	return tx.Commit()
}

func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		// 40001 serialization_failure, 40P01 deadlock_detected
		return pqErr.Code == "40001" || pqErr.Code == "40P01"
	}
	return false
}
