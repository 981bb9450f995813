package testutil

import (
	"context"
	"database/sql"
	"sync/atomic"

	"github.com/pruizcastillo-design/Oposecurity/internal/db"
)

// FailOnNthExecUoW injects Err on the FailOn-th ExecContext inside the
// transaction, counting from 1. Reads are not counted. Saving a key runs one
// exec for the header plus one per answer, so FailOn = 3 fails on the
// second answer.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int32
	Err    error
}

// WithinTx runs fn in a real transaction whose DBTX fails on schedule.
func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return db.NewSQLiteUnitOfWork(u.DB).WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &failOnNthExec{DBTX: tx, failOn: u.FailOn, err: u.Err})
	})
}

type failOnNthExec struct {
	db.DBTX
	execs  atomic.Int32
	failOn int32
	err    error
}

func (f *failOnNthExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if f.execs.Add(1) == f.failOn {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
