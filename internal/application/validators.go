package application

import (
	"context"
	"strings"

	"github.com/arkadata/userhub/internal/domain/derr"
	"github.com/arkadata/userhub/internal/domain/entity"
	"github.com/arkadata/userhub/internal/domain/repository"
)

// validateName rejects names that are empty after trimming. Unset fields
// pass through untouched.
func validateName(name entity.Field[string]) error {
	if !name.Present {
		return nil
	}
	if name.Null || strings.TrimSpace(name.Value) == "" {
		return derr.NewValidationError("name", "name cannot be empty")
	}
	return nil
}

// validateEmailNotDuplicate checks email uniqueness against current
// repository state. Skipped when the field is absent or equal to the
// entity's current email (re-sending the own address is a no-op field).
// This read-then-write check is an optimization for a better error message;
// the unique index in storage is the authoritative backstop.
func validateEmailNotDuplicate(ctx context.Context, repo repository.UserRepository, uow repository.UnitOfWork, email entity.Field[string], currentEmail string) error {
	if !email.Present {
		return nil
	}
	if email.Null {
		return derr.NewValidationError("email", "email cannot be null")
	}
	if email.Value == currentEmail {
		return nil
	}
	existing, err := repo.GetByEmail(ctx, uow, email.Value)
	if err != nil {
		return err
	}
	if existing != nil {
		return derr.NewDuplicateError("user with email " + email.Value + " already exists")
	}
	return nil
}

func validateCreateUserRequest(ctx context.Context, repo repository.UserRepository, uow repository.UnitOfWork, email, name string) error {
	if strings.TrimSpace(name) == "" {
		return derr.NewValidationError("name", "name cannot be empty")
	}
	existing, err := repo.GetByEmail(ctx, uow, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return derr.NewDuplicateError("user with email " + email + " already exists")
	}
	return nil
}

// validatePatchUserRequest checks existence plus field rules and returns the
// current entity so the caller can diff against the pre-write state.
func validatePatchUserRequest(ctx context.Context, repo repository.UserRepository, uow repository.UnitOfWork, userID string, upd entity.UserUpdate) (*entity.User, error) {
	user, err := repo.GetByID(ctx, uow, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, derr.NewNotFoundError("User", userID)
	}

	if err := validateName(upd.Name); err != nil {
		return nil, err
	}
	if err := validateEmailNotDuplicate(ctx, repo, uow, upd.Email, user.Email); err != nil {
		return nil, err
	}
	return user, nil
}

func validateDeleteUserRequest(ctx context.Context, repo repository.UserRepository, uow repository.UnitOfWork, userID string) (*entity.User, error) {
	user, err := repo.GetByID(ctx, uow, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, derr.NewNotFoundError("User", userID)
	}
	return user, nil
}
