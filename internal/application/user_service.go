package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/arkadata/userhub/internal/domain/derr"
	"github.com/arkadata/userhub/internal/domain/entity"
	"github.com/arkadata/userhub/internal/domain/event"
	"github.com/arkadata/userhub/internal/domain/repository"
)

// Service orchestrates validation, transactional persistence, diff
// computation and event emission for the user aggregate. Each operation
// opens exactly one unit of work and performs all reads and writes for that
// use case inside it; events go out after the transaction commits.
type Service struct {
	Tx        repository.TxManager
	Repo      repository.UserRepository
	Publisher event.Publisher
	Logger    *logrus.Logger
}

func NewService(tx repository.TxManager, repo repository.UserRepository, pub event.Publisher, logger *logrus.Logger) *Service {
	return &Service{Tx: tx, Repo: repo, Publisher: pub, Logger: logger}
}

// CreateUser validates, persists and announces a new user. A publish
// failure surfaces to the caller even though the row is already committed:
// the write is durable, the notification is at-least-once but not atomic
// with it.
func (s *Service) CreateUser(ctx context.Context, email, name string, age *int) (*entity.User, error) {
	var created *entity.User
	err := s.Tx.WithinTx(ctx, func(ctx context.Context, uow repository.UnitOfWork) error {
		if err := validateCreateUserRequest(ctx, s.Repo, uow, email, name); err != nil {
			return err
		}

		now := time.Now().UTC()
		user := &entity.User{
			ID:        uuid.NewString(),
			Email:     email,
			Name:      name,
			Age:       age,
			CreatedAt: now,
			UpdatedAt: now,
		}

		saved, err := s.Repo.Create(ctx, uow, user)
		if err != nil {
			return err
		}
		created = saved
		return nil
	})
	if err != nil {
		return nil, err
	}

	ev := event.NewUserCreated(created.ID, created.Email, created.Name)
	if err := s.Publisher.Publish(ctx, ev); err != nil {
		s.logPublishFailure(ev.Header(), err)
		return nil, fmt.Errorf("publishing %s event: %w", event.TypeUserCreated, err)
	}
	return created, nil
}

// GetUser returns the user or (nil, nil) when absent.
func (s *Service) GetUser(ctx context.Context, userID string) (*entity.User, error) {
	var user *entity.User
	err := s.Tx.WithinTx(ctx, func(ctx context.Context, uow repository.UnitOfWork) error {
		var err error
		user, err = s.Repo.GetByID(ctx, uow, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// PatchUser applies a sparse update. The change record is computed against
// the pre-write entity; when the storage layer reports nothing to set the
// current entity comes back unchanged and no event is published. An event
// also stays out when every provided value equals the stored one.
func (s *Service) PatchUser(ctx context.Context, userID string, upd entity.UserUpdate) (*entity.User, error) {
	var (
		result  *entity.User
		changes entity.Changes
	)
	err := s.Tx.WithinTx(ctx, func(ctx context.Context, uow repository.UnitOfWork) error {
		current, err := validatePatchUserRequest(ctx, s.Repo, uow, userID, upd)
		if err != nil {
			return err
		}

		changes = generateUserChanges(upd, current)

		updated, err := s.Repo.UpdatePartial(ctx, uow, userID, upd)
		if errors.Is(err, derr.ErrNoFieldsToUpdate) {
			// Nothing storable in the update: succeed as a no-op.
			result = current
			changes = nil
			return nil
		}
		if err != nil {
			return err
		}
		result = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(changes) > 0 {
		ev := event.NewUserUpdated(result.ID, changes)
		if err := s.Publisher.Publish(ctx, ev); err != nil {
			s.logPublishFailure(ev.Header(), err)
			return nil, fmt.Errorf("publishing %s event: %w", event.TypeUserUpdated, err)
		}
	}
	return result, nil
}

// ListUsers returns one page of users plus the total count, both read
// inside the same transaction.
func (s *Service) ListUsers(ctx context.Context, limit, offset int) ([]entity.User, int, error) {
	var (
		users []entity.User
		total int
	)
	err := s.Tx.WithinTx(ctx, func(ctx context.Context, uow repository.UnitOfWork) error {
		var err error
		users, err = s.Repo.List(ctx, uow, limit, offset)
		if err != nil {
			return err
		}
		total, err = s.Repo.Count(ctx, uow)
		return err
	})
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// DeleteUser removes the user, failing with NotFoundError when absent.
func (s *Service) DeleteUser(ctx context.Context, userID string) error {
	return s.Tx.WithinTx(ctx, func(ctx context.Context, uow repository.UnitOfWork) error {
		if _, err := validateDeleteUserRequest(ctx, s.Repo, uow, userID); err != nil {
			return err
		}
		return s.Repo.Delete(ctx, uow, userID)
	})
}

func (s *Service) logPublishFailure(env event.Envelope, err error) {
	if s.Logger == nil {
		return
	}
	s.Logger.WithError(err).WithFields(logrus.Fields{
		"event_id":     env.EventID,
		"event_type":   env.EventType,
		"aggregate_id": env.AggregateID,
	}).Error("failed to publish event after commit")
}
