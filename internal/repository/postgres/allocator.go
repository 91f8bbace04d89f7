package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lalith-99/lockerroom/internal/db"
	"github.com/lalith-99/lockerroom/internal/idalloc"
)

// Collections with application-assigned ids.
const (
	tableUsers          = "users"
	tableTeams          = "teams"
	tableTeamMessages   = "team_messages"
	tableDirectMessages = "direct_messages"
)

// allocateID returns the smallest free id in table, so ids freed by deletes
// are handed out again.
//
// Two concurrent inserts would otherwise read the same id set and pick the
// same gap; the loser then fails on the primary key. A transaction-scoped
// advisory lock keyed on the table name serialises allocations per table
// without blocking readers or the other tables. Because the lock is only
// released when the transaction ends, the next allocator in line reads the
// id set after our row is committed. That is why this must run inside the
// same transaction as the insert, and refuses to run outside one.
//
// Reading every id is linear in the table size. That is fine for chat-sized
// tables; a free-list table would be the next step if it stops being fine.
func allocateID(ctx context.Context, e db.Executor, table string) (int64, error) {
	if !db.InTransaction(ctx) {
		return 0, fmt.Errorf("allocate %s id: no transaction in context", table)
	}

	if _, err := e.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, idalloc.LockKey(table)); err != nil {
		return 0, fmt.Errorf("lock %s ids: %w", table, err)
	}

	rows, err := e.Query(ctx, "SELECT id FROM "+table)
	if err != nil {
		return 0, fmt.Errorf("read %s ids: %w", table, err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return 0, fmt.Errorf("scan %s ids: %w", table, err)
	}

	return idalloc.SmallestUnused(ids), nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

type scanner interface {
	Scan(dest ...any) error
}
