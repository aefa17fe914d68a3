// Package assignments schedules staff work against orders and advances each
// assignment along its linear status path.
package assignments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hoangtrn/fest-go/internal/domain"
	"github.com/hoangtrn/fest-go/internal/notify"
	redisx "github.com/hoangtrn/fest-go/internal/redis"
	"github.com/hoangtrn/fest-go/internal/repository"
	postgresrepo "github.com/hoangtrn/fest-go/internal/repository/postgres"
	"github.com/hoangtrn/fest-go/internal/uow"
)

type Service struct {
	store    *postgresrepo.Store
	pubsub   *redisx.EntityPubSub
	notifier notify.Notifier
	uow      *uow.UoW
}

func New(store *postgresrepo.Store, pubsub *redisx.EntityPubSub, notifier notify.Notifier) *Service {
	if notifier == nil {
		notifier = notify.Noop{}
	}

	return &Service{
		store:    store,
		pubsub:   pubsub,
		notifier: notifier,
		uow:      uow.NewUoW(store),
	}
}

// Create schedules a task for a staff member against an existing order.
func (s *Service) Create(ctx context.Context, orderID uuid.UUID, staffID int64, task string) (*domain.Assignment, error) {
	const op = "service.assignments.Create"

	if task == "" {
		return nil, fmt.Errorf("%s: task is required", op)
	}

	a := domain.Assignment{
		ID:        uuid.New(),
		OrderID:   orderID,
		StaffID:   staffID,
		Task:      task,
		Status:    domain.AssignmentPending,
		CreatedAt: time.Now(),
	}

	if err := s.store.Assignments().Create(ctx, a); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrOrderNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &a, nil
}

// Get retrieves one assignment.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Assignment, error) {
	const op = "service.assignments.Get"

	a, err := s.store.Assignments().Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrAssignmentNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return a, nil
}

// ListByStaff returns a staff member's assignments, newest first.
func (s *Service) ListByStaff(ctx context.Context, staffID int64, limit, offset int) ([]domain.Assignment, error) {
	const op = "service.assignments.ListByStaff"

	if limit <= 0 {
		limit = 50
	}

	out, err := s.store.Assignments().ListByStaff(ctx, staffID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// UpdateStatus moves an assignment forward along pending -> in_progress ->
// completed. Returns domain.ErrInvalidTransition for any other move.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, to domain.AssignmentStatus, actor string) error {
	const op = "service.assignments.UpdateStatus"

	err := s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		cur, err := s.store.Assignments().With(tx).Status(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%s: %w", op, ErrAssignmentNotFound)
			}

			return fmt.Errorf("%s: %w", op, err)
		}

		if !cur.CanTransition(to) {
			return fmt.Errorf("%s: %s -> %s: %w", op, cur, to, domain.ErrInvalidTransition)
		}

		if err := s.store.Assignments().With(tx).UpdateStatus(ctx, id, cur, to, actor); err != nil {
			if errors.Is(err, repository.ErrStatusChanged) {
				return fmt.Errorf("%s: %w", op, domain.ErrInvalidTransition)
			}

			return fmt.Errorf("%s: %w", op, err)
		}

		after(func(ctx context.Context) {
			_ = s.pubsub.PublishEntityChanged(ctx, "assignment", id.String())
			s.notifier.Notify(ctx, notify.KindInfo,
				"Assignment updated",
				fmt.Sprintf("assignment %s is now %s", id, to),
			)
		})

		return nil
	})

	return err
}
