// Package tickets runs the support-ticket flow: an append-only conversation
// over a forward-only status machine, with the declarative coupling rule
// that a customer message reopens triage unless the ticket is closed.
package tickets

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

// Create opens a new support ticket.
func (s *Service) Create(ctx context.Context, customerID int64, subject string) (*domain.Ticket, error) {
	const op = "service.tickets.Create"

	if subject == "" {
		return nil, fmt.Errorf("%s: subject is required", op)
	}

	t := domain.Ticket{
		ID:         uuid.New(),
		CustomerID: customerID,
		Subject:    subject,
		Status:     domain.TicketOpen,
		CreatedAt:  time.Now(),
	}

	if err := s.store.Tickets().Create(ctx, t); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &t, nil
}

// Get retrieves a ticket with its conversation.
//
// Returns tickets.ErrTicketNotFound when the ticket does not exist.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.TicketWithMessages, error) {
	const op = "service.tickets.Get"

	t, err := s.store.Tickets().Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrTicketNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return t, nil
}

// ListByCustomer returns a customer's tickets, newest first.
func (s *Service) ListByCustomer(ctx context.Context, customerID int64, limit, offset int) ([]domain.Ticket, error) {
	const op = "service.tickets.ListByCustomer"

	if limit <= 0 {
		limit = 50
	}

	out, err := s.store.Tickets().ListByCustomer(ctx, customerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// AppendMessage adds one message to the conversation. Appending alone never
// changes status; the event rule table decides whether this message does.
// A customer message moves any non-closed ticket back to pending.
func (s *Service) AppendMessage(ctx context.Context, id uuid.UUID, author, body string, fromStaff bool) error {
	const op = "service.tickets.AppendMessage"

	if body == "" {
		return fmt.Errorf("%s: message body is required", op)
	}

	err := s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		cur, err := s.store.Tickets().With(tx).Status(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%s: %w", op, ErrTicketNotFound)
			}

			return fmt.Errorf("%s: %w", op, err)
		}

		msg := domain.TicketMessage{
			TicketID:  id,
			Author:    author,
			FromStaff: fromStaff,
			Body:      body,
			CreatedAt: time.Now(),
		}
		if err := s.store.Tickets().With(tx).AppendMessage(ctx, msg); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		if !fromStaff {
			if next, changed := domain.ApplyTicketEvent(domain.EventCustomerMessage, cur); changed {
				if err := s.store.Tickets().With(tx).UpdateStatus(ctx, id, cur, next); err != nil {
					return fmt.Errorf("%s: %w", op, err)
				}
			}
		}

		after(func(ctx context.Context) {
			_ = s.cache.InvalidateTicket(ctx, id.String())
			_ = s.pubsub.PublishEntityChanged(ctx, "ticket", id.String())
			s.notifier.Notify(ctx, notify.KindInfo,
				"Message sent",
				fmt.Sprintf("ticket %s has a new message", id),
			)
		})

		return nil
	})

	return err
}

// UpdateStatus moves a ticket along its transition table.
//
// Returns domain.ErrInvalidTransition for any move the table does not allow,
// including any move off a closed ticket.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, to domain.TicketStatus) error {
	const op = "service.tickets.UpdateStatus"

	err := s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		cur, err := s.store.Tickets().With(tx).Status(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%s: %w", op, ErrTicketNotFound)
			}

			return fmt.Errorf("%s: %w", op, err)
		}

		if !cur.CanTransition(to) {
			return fmt.Errorf("%s: %s -> %s: %w", op, cur, to, domain.ErrInvalidTransition)
		}

		if err := s.store.Tickets().With(tx).UpdateStatus(ctx, id, cur, to); err != nil {
			if errors.Is(err, repository.ErrStatusChanged) {
				return fmt.Errorf("%s: %w", op, domain.ErrInvalidTransition)
			}

			return fmt.Errorf("%s: %w", op, err)
		}

		after(func(ctx context.Context) {
			_ = s.cache.InvalidateTicket(ctx, id.String())
			_ = s.pubsub.PublishEntityChanged(ctx, "ticket", id.String())
		})

		return nil
	})

	return err
}

// satisfactionGate decides whether a rating may be recorded for a ticket in
// the given status. A closed ticket already carries its rating, so re-rating
// is a status violation rather than a validation failure.
func satisfactionGate(cur domain.TicketStatus) error {
	if cur == domain.TicketClosed {
		return domain.ErrInvalidTransition
	}
	if cur != domain.TicketResolved {
		return ErrNotResolved
	}
	return nil
}

// SubmitSatisfaction records the one-time rating of a resolved ticket and
// closes it. The rating is immutable: once the ticket is closed any further
// submission fails with domain.ErrInvalidTransition, and a concurrent double
// submit loses with ErrAlreadyRated.
func (s *Service) SubmitSatisfaction(ctx context.Context, id uuid.UUID, rating int) error {
	const op = "service.tickets.SubmitSatisfaction"

	if rating < 1 || rating > 5 {
		return fmt.Errorf("%s: rating must be between 1 and 5", op)
	}

	err := s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		cur, err := s.store.Tickets().With(tx).Status(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%s: %w", op, ErrTicketNotFound)
			}

			return fmt.Errorf("%s: %w", op, err)
		}

		if err := satisfactionGate(cur); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		if err := s.store.Tickets().With(tx).SetSatisfaction(ctx, id, rating); err != nil {
			if errors.Is(err, repository.ErrAlreadyRated) {
				return fmt.Errorf("%s: %w", op, ErrAlreadyRated)
			}

			return fmt.Errorf("%s: %w", op, err)
		}

		after(func(ctx context.Context) {
			_ = s.cache.InvalidateTicket(ctx, id.String())
			_ = s.pubsub.PublishEntityChanged(ctx, "ticket", id.String())
			s.notifier.Notify(ctx, notify.KindSuccess,
				"Thanks for the feedback",
				fmt.Sprintf("ticket %s closed with rating %d/5", id, rating),
			)
		})

		return nil
	})

	return err
}
