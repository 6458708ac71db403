package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arkadata/userhub/internal/domain/derr"
	"github.com/arkadata/userhub/internal/domain/repository"
)

// TxContext carries one pgx transaction as the opaque unit of work the
// domain passes around. It is owned by exactly one in-flight call and must
// not be shared across concurrent calls.
type TxContext struct {
	tx pgx.Tx
}

func (*TxContext) UnitOfWork() {}

// txFrom unwraps the unit of work handed out by TxManager. A foreign
// implementation reaching this adapter is a wiring bug.
func txFrom(uow repository.UnitOfWork) (pgx.Tx, error) {
	c, ok := uow.(*TxContext)
	if !ok || c.tx == nil {
		return nil, derr.NewRepositoryError("context", errors.New("unit of work is not a postgres transaction"))
	}
	return c.tx, nil
}

// TxManager runs units of work on a pgxpool. Commit happens on a nil return
// from fn; any error or panic rolls every write in the transaction back.
type TxManager struct {
	pool *pgxpool.Pool
}

func NewTxManager(pool *pgxpool.Pool) *TxManager {
	return &TxManager{pool: pool}
}

func (m *TxManager) WithinTx(ctx context.Context, fn func(ctx context.Context, uow repository.UnitOfWork) error) error {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return derr.NewRepositoryError("begin transaction", err)
	}
	// Rollback after a successful commit is a no-op.
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(ctx, &TxContext{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return derr.NewRepositoryError("commit transaction", err)
	}
	return nil
}

var _ repository.TxManager = (*TxManager)(nil)
