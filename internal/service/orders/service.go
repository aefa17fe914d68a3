// Package orders tracks submitted orders along their fixed status path and
// owns the review unlocked on completion.
package orders

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
	redisrepo "github.com/hoangtrn/fest-go/internal/repository/redis"
	"github.com/hoangtrn/fest-go/internal/uow"
)

type Service struct {
	store    *postgresrepo.Store
	cache    *redisrepo.Cache
	pubsub   *redisx.EntityPubSub
	notifier notify.Notifier
	uow      *uow.UoW
}

func New(
	store *postgresrepo.Store,
	cache *redisrepo.Cache,
	pubsub *redisx.EntityPubSub,
	notifier notify.Notifier,
) *Service {
	if notifier == nil {
		notifier = notify.Noop{}
	}

	return &Service{
		store:    store,
		cache:    cache,
		pubsub:   pubsub,
		notifier: notifier,
		uow:      uow.NewUoW(store),
	}
}

// Get retrieves an order with its lines and history.
//
// Returns orders.ErrOrderNotFound when the order does not exist.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.OrderWithHistory, error) {
	const op = "service.orders.Get"

	o, err := s.store.Orders().Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrOrderNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return o, nil
}

// ListByCustomer returns a customer's orders, newest first.
func (s *Service) ListByCustomer(ctx context.Context, customerID int64, limit, offset int) ([]domain.Order, error) {
	const op = "service.orders.ListByCustomer"

	if limit <= 0 {
		limit = 50
	}

	out, err := s.store.Orders().ListByCustomer(ctx, customerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// UpdateStatus moves an order along its fixed path. The transition table is
// checked first, then the database write re-verifies the expected status, so
// a concurrent change cannot slip an order backward.
//
// Returns domain.ErrInvalidTransition for any move the path does not allow.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, to domain.OrderStatus, actor, note string) error {
	const op = "service.orders.UpdateStatus"

	err := s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		cur, err := s.store.Orders().With(tx).Status(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%s: %w", op, ErrOrderNotFound)
			}

			return fmt.Errorf("%s: %w", op, err)
		}

		if !cur.CanTransition(to) {
			return fmt.Errorf("%s: %s -> %s: %w", op, cur, to, domain.ErrInvalidTransition)
		}

		if err := s.store.Orders().With(tx).UpdateStatus(ctx, id, cur, to, actor, note); err != nil {
			if errors.Is(err, repository.ErrStatusChanged) {
				return fmt.Errorf("%s: %w", op, domain.ErrInvalidTransition)
			}

			return fmt.Errorf("%s: %w", op, err)
		}

		after(func(ctx context.Context) {
			_ = s.cache.InvalidateOrder(ctx, id.String())
			_ = s.pubsub.PublishEntityChanged(ctx, "order", id.String())
			s.notifier.Notify(ctx, notify.KindInfo,
				"Order updated",
				fmt.Sprintf("order %s is now %s", id, to),
			)
		})

		return nil
	})

	return err
}

// SubmitReview attaches the one-time review of a completed order.
//
// Returns orders.ErrNotCompleted unless the order has reached the completed
// status, and orders.ErrAlreadyReviewed on a second submission.
func (s *Service) SubmitReview(ctx context.Context, id uuid.UUID, rating int, comment string) error {
	const op = "service.orders.SubmitReview"

	if rating < 1 || rating > 5 {
		return fmt.Errorf("%s: rating must be between 1 and 5", op)
	}

	err := s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		cur, err := s.store.Orders().With(tx).Status(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%s: %w", op, ErrOrderNotFound)
			}

			return fmt.Errorf("%s: %w", op, err)
		}

		if cur != domain.OrderCompleted {
			return fmt.Errorf("%s: %w", op, ErrNotCompleted)
		}

		rv := domain.Review{
			OrderID:   id,
			Rating:    rating,
			Comment:   comment,
			CreatedAt: time.Now(),
		}
		if err := s.store.Orders().With(tx).CreateReview(ctx, rv); err != nil {
			if errors.Is(err, repository.ErrConflict) {
				return fmt.Errorf("%s: %w", op, ErrAlreadyReviewed)
			}

			return fmt.Errorf("%s: %w", op, err)
		}

		after(func(ctx context.Context) {
			s.notifier.Notify(ctx, notify.KindSuccess,
				"Review received",
				fmt.Sprintf("order %s rated %d/5", id, rating),
			)
		})

		return nil
	})

	return err
}
