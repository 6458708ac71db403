package repository

import (
	"context"

	"github.com/arkadata/userhub/internal/domain/entity"
)

// UnitOfWork is the opaque transaction context every repository call runs
// under. The storage adapter provides the concrete type; domain code only
// passes it through. A repository method must never open its own
// transaction.
type UnitOfWork interface {
	// UnitOfWork is a marker method implemented by storage adapters.
	UnitOfWork()
}

// UserRepository defines the interface for user-related database operations.
// Lookups return (nil, nil) when no row matches; storage failures come back
// as *derr.RepositoryError except for the distinguished
// derr.ErrNoFieldsToUpdate condition on UpdatePartial.
type UserRepository interface {
	Create(ctx context.Context, uow UnitOfWork, u *entity.User) (*entity.User, error)
	GetByID(ctx context.Context, uow UnitOfWork, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, uow UnitOfWork, email string) (*entity.User, error)

	// Update replaces the mutable columns of an existing user.
	Update(ctx context.Context, uow UnitOfWork, u *entity.User) (*entity.User, error)

	// UpdatePartial applies only the fields provided by upd. When upd
	// carries no storable fields it returns derr.ErrNoFieldsToUpdate and
	// performs no write.
	UpdatePartial(ctx context.Context, uow UnitOfWork, id string, upd entity.UserUpdate) (*entity.User, error)

	Delete(ctx context.Context, uow UnitOfWork, id string) error
	List(ctx context.Context, uow UnitOfWork, limit, offset int) ([]entity.User, error)
	Count(ctx context.Context, uow UnitOfWork) (int, error)
}
