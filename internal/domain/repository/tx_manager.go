package repository

import "context"

// TxManager runs a unit of work against storage. All repository calls made
// with the supplied UnitOfWork either commit together when fn returns nil or
// roll back together when fn returns an error or panics.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, uow UnitOfWork) error) error
}
