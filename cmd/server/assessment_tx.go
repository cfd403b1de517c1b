package main

import (
	"context"
	"database/sql"
	"time"

	assessmentservice "ethicsaudit/internal/assessment/service"
	dErrors "ethicsaudit/pkg/domain-errors"
	txcontext "ethicsaudit/pkg/platform/tx"
)

const defaultAssessmentTxTimeout = 5 * time.Second

// assessmentPostgresTx runs a unit of work in one SQL transaction. The store
// picks the transaction up from the context it is handed.
type assessmentPostgresTx struct {
	db      *sql.DB
	store   assessmentservice.Store
	timeout time.Duration
}

func newAssessmentPostgresTx(db *sql.DB, store assessmentservice.Store, timeout time.Duration) *assessmentPostgresTx {
	return &assessmentPostgresTx{db: db, store: store, timeout: timeout}
}

func (t *assessmentPostgresTx) RunInTx(ctx context.Context, fn func(ctx context.Context, store assessmentservice.Store) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	timeout := t.timeout
	if timeout == 0 {
		timeout = defaultAssessmentTxTimeout
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(txcontext.WithTx(ctx, tx), t.store); err != nil {
		return err
	}
	return tx.Commit()
}
