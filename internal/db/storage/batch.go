package storage

import (
	"context"
	"database/sql"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Statement is one SQL statement and its bound parameters. Args holds
// positional values or sql.Named values.
type Statement struct {
	SQL  string
	Args []any
}

// Stmt builds a Statement.
func Stmt(query string, args ...any) Statement {
	return Statement{SQL: query, Args: args}
}

// Apply executes stmts in order inside one transaction. If any statement
// fails the whole batch is rolled back and the error returned. On success
// the id of the row created by the last statement is returned, or ErrNoRow
// if the last statement is not an insert or inserted nothing.
func (d *DB) Apply(ctx context.Context, stmts ...Statement) (int64, error) {
	if len(stmts) == 0 {
		return 0, ErrNoRow
	}

	var (
		id      int64
		created bool
	)

	err := d.c.orm.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, st := range stmts {
			ev := d.log.Debug().Str("sql", st.SQL)
			if len(st.Args) > 0 {
				ev = ev.Interface("params", st.Args)
			}

			ev.Msg("execute")

			res, err := tx.Statement.ConnPool.ExecContext(ctx, st.SQL, st.Args...)
			if err != nil {
				return errors.Wrapf(err, "statement %d", i+1)
			}

			id, created = createdRow(st.SQL, res)
		}

		d.log.Debug().Msg("commit changes to database")

		return nil
	})
	if err != nil {
		batches.WithLabelValues(resultRollback).Inc()
		return 0, err //nolint:wrapcheck
	}

	batches.WithLabelValues(resultCommit).Inc()

	if !created {
		return 0, ErrNoRow
	}

	return id, nil
}

// ExecuteBatch executes stmts in one transaction like Apply, but reports
// failure only through the result: a failed batch is logged, rolled back
// and yields (0, false), which is also the result when the last statement
// created no row.
func (d *DB) ExecuteBatch(ctx context.Context, stmts ...Statement) (int64, bool) {
	id, err := d.Apply(ctx, stmts...)

	switch {
	case err == nil:
		return id, true
	case errors.Is(err, ErrNoRow):
		return 0, false
	case isConstraintViolation(err):
		d.log.Warn().Err(err).Msg("batch rolled back")
	default:
		d.log.Error().Err(err).Msg("batch rolled back")
	}

	return 0, false
}

// ExecuteQuery runs a single read statement and returns the live cursor.
// Batches may run while the cursor is open; the caller closes it.
func (d *DB) ExecuteQuery(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	ev := d.log.Debug().Str("sql", query)
	if len(args) > 0 {
		ev = ev.Interface("params", args)
	}

	ev.Msg("query")

	return d.c.pinned.QueryContext(ctx, query, args...) //nolint:wrapcheck
}

// createdRow returns the id of the row inserted by query, if any.
func createdRow(query string, res sql.Result) (int64, bool) {
	if !isInsert(query) {
		return 0, false
	}

	n, err := res.RowsAffected()
	if err != nil || n == 0 {
		return 0, false
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, false
	}

	return id, true
}

func isInsert(query string) bool {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return false
	}

	switch strings.ToUpper(fields[0]) {
	case "INSERT", "REPLACE":
		return true
	default:
		return false
	}
}
