package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"

	"github.com/arkadata/userhub/internal/domain/derr"
	"github.com/arkadata/userhub/internal/domain/entity"
	"github.com/arkadata/userhub/internal/domain/repository"
)

const userColumns = "id, email, name, age, created_at, updated_at"

// pg error code for unique constraint violations
const uniqueViolation = "23505"

// UserRepository is the pgx implementation of the user repository. Every
// method runs on the transaction supplied by the caller and never opens one
// of its own. Storage failures are wrapped into derr.RepositoryError except
// for the unique-violation backstop, which maps to derr.DuplicateError so a
// race past the application-level email check still surfaces as a conflict.
type UserRepository struct {
	logger *logrus.Logger
}

func NewUserRepository(logger *logrus.Logger) *UserRepository {
	return &UserRepository{logger: logger}
}

func (r *UserRepository) Create(ctx context.Context, uow repository.UnitOfWork, u *entity.User) (*entity.User, error) {
	tx, err := txFrom(uow)
	if err != nil {
		return nil, err
	}

	row := tx.QueryRow(ctx, `
		INSERT INTO users (id, email, name, age, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+userColumns, u.ID, u.Email, u.Name, u.Age, u.CreatedAt, u.UpdatedAt)

	saved, err := scanUser(row)
	if err != nil {
		return nil, r.wrap("create user", err)
	}
	return saved, nil
}

func (r *UserRepository) GetByID(ctx context.Context, uow repository.UnitOfWork, id string) (*entity.User, error) {
	return r.getBy(ctx, uow, "id", id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, uow repository.UnitOfWork, email string) (*entity.User, error) {
	return r.getBy(ctx, uow, "email", email)
}

func (r *UserRepository) getBy(ctx context.Context, uow repository.UnitOfWork, column, value string) (*entity.User, error) {
	tx, err := txFrom(uow)
	if err != nil {
		return nil, err
	}

	row := tx.QueryRow(ctx, fmt.Sprintf(`SELECT %s FROM users WHERE %s = $1`, userColumns, column), value)
	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, r.wrap("get user by "+column, err)
	}
	return u, nil
}

func (r *UserRepository) Update(ctx context.Context, uow repository.UnitOfWork, u *entity.User) (*entity.User, error) {
	tx, err := txFrom(uow)
	if err != nil {
		return nil, err
	}

	row := tx.QueryRow(ctx, `
		UPDATE users
		SET email = $1, name = $2, age = $3, updated_at = $4
		WHERE id = $5
		RETURNING `+userColumns, u.Email, u.Name, u.Age, time.Now().UTC(), u.ID)

	updated, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, derr.NewNotFoundError("User", u.ID)
	}
	if err != nil {
		return nil, r.wrap("update user", err)
	}
	return updated, nil
}

func (r *UserRepository) UpdatePartial(ctx context.Context, uow repository.UnitOfWork, id string, upd entity.UserUpdate) (*entity.User, error) {
	tx, err := txFrom(uow)
	if err != nil {
		return nil, err
	}

	clauses, args := buildPartialUpdate(upd)
	if len(clauses) == 0 {
		return nil, derr.ErrNoFieldsToUpdate
	}

	// updated_at always advances with the row.
	clauses = append(clauses, fmt.Sprintf("updated_at = $%d", len(args)+1))
	args = append(args, time.Now().UTC())
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(clauses, ", "), len(args), userColumns)

	row := tx.QueryRow(ctx, query, args...)
	updated, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, derr.NewNotFoundError("User", id)
	}
	if err != nil {
		return nil, r.wrap("partially update user", err)
	}
	return updated, nil
}

func (r *UserRepository) Delete(ctx context.Context, uow repository.UnitOfWork, id string) error {
	tx, err := txFrom(uow)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, id); err != nil {
		return r.wrap("delete user", err)
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context, uow repository.UnitOfWork, limit, offset int) ([]entity.User, error) {
	tx, err := txFrom(uow)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, r.wrap("list users", err)
	}
	defer rows.Close()

	users := make([]entity.User, 0, limit)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, r.wrap("list users", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, r.wrap("list users", err)
	}
	return users, nil
}

func (r *UserRepository) Count(ctx context.Context, uow repository.UnitOfWork) (int, error) {
	tx, err := txFrom(uow)
	if err != nil {
		return 0, err
	}
	var total int
	if err := tx.QueryRow(ctx, `SELECT count(id) FROM users`).Scan(&total); err != nil {
		return 0, r.wrap("count users", err)
	}
	return total, nil
}

// wrap logs the storage error with full context and hides it behind the
// generic repository kind, keeping the unique-violation backstop
// distinguishable.
func (r *UserRepository) wrap(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return derr.NewDuplicateError("user with this email already exists")
	}
	if r.logger != nil {
		r.logger.WithError(err).WithField("op", op).Error("database error")
	}
	return derr.NewRepositoryError(op, err)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*entity.User, error) {
	u := &entity.User{}
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.Age, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return u, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
