// Package bookings drives the booking wizard: draft lifecycle, step
// transitions, live totals, and the single write path that finalizes a
// draft into an order.
package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hoangtrn/fest-go/internal/booking"
	"github.com/hoangtrn/fest-go/internal/domain"
	"github.com/hoangtrn/fest-go/internal/notify"
	redisx "github.com/hoangtrn/fest-go/internal/redis"
	"github.com/hoangtrn/fest-go/internal/repository"
	postgresrepo "github.com/hoangtrn/fest-go/internal/repository/postgres"
	redisrepo "github.com/hoangtrn/fest-go/internal/repository/redis"
	"github.com/hoangtrn/fest-go/internal/service/query"
	"github.com/hoangtrn/fest-go/internal/uow"
)

type Config struct{}

type Service struct {
	store    *postgresrepo.Store
	cache    *redisrepo.Cache
	pubsub   *redisx.EntityPubSub
	limiter  *redisrepo.SlidingWindowLimiter
	notifier notify.Notifier
	queries  *query.Service
	drafts   *booking.Manager
	uow      *uow.UoW
	cfg      Config
}

func New(
	store *postgresrepo.Store,
	cache *redisrepo.Cache,
	pubsub *redisx.EntityPubSub,
	limiter *redisrepo.SlidingWindowLimiter,
	notifier notify.Notifier,
	queries *query.Service,
	cfg Config,
) *Service {
	if notifier == nil {
		notifier = notify.Noop{}
	}

	return &Service{
		store:    store,
		cache:    cache,
		pubsub:   pubsub,
		limiter:  limiter,
		notifier: notifier,
		queries:  queries,
		drafts:   booking.NewManager(),
		uow:      uow.NewUoW(store),
		cfg:      cfg,
	}
}

// DraftView is a draft together with its derived total. The total is
// recomputed from the live catalog on every read, never stored.
type DraftView struct {
	Draft *booking.Draft
	Total int64
}

// CreateDraft starts a new wizard session for a customer. The draft's
// address defaults to the customer's default address.
func (s *Service) CreateDraft(ctx context.Context, customerID int64) (*booking.Draft, error) {
	const op = "service.bookings.CreateDraft"

	addrs, err := s.queries.Addresses(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	d := booking.NewDraft(customerID, addrs)
	s.drafts.Put(d)

	return d.Clone(), nil
}

// GetDraft returns a draft with its current derived total.
func (s *Service) GetDraft(ctx context.Context, id uuid.UUID) (*DraftView, error) {
	const op = "service.bookings.GetDraft"

	d, err := s.drafts.Get(id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrDraftNotFound)
	}

	priceOf, err := s.priceLookup(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	total, err := d.Total(priceOf)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrItemNotFound)
	}

	return &DraftView{Draft: d, Total: total}, nil
}

// SetItemQuantity upserts one selection line of a draft. The item must
// exist in the catalog; a quantity of zero removes the line.
func (s *Service) SetItemQuantity(ctx context.Context, id uuid.UUID, itemID int64, qty int) error {
	const op = "service.bookings.SetItemQuantity"

	if qty > 0 {
		if _, err := s.queries.GetItem(ctx, itemID); err != nil {
			if errors.Is(err, query.ErrItemNotFound) {
				return fmt.Errorf("%s: %w", op, ErrItemNotFound)
			}

			return fmt.Errorf("%s: %w", op, err)
		}
	}

	err := s.drafts.Update(id, func(d *booking.Draft) error {
		d.SetItemQuantity(itemID, qty)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, ErrDraftNotFound)
	}

	return nil
}

// Details carries the step-2 fields of the wizard. Nil fields are left
// untouched so partial edits are possible.
type Details struct {
	EventDate     *time.Time
	GuestCount    *int
	SpecialNotes  *string
	MenuNotes     *string
	AddressID     *int64
	PaymentMethod *domain.PaymentMethod
}

// UpdateDetails applies step-2/3 form fields to a draft. Validation happens
// at the step gates, not here, so users can save partial progress.
func (s *Service) UpdateDetails(ctx context.Context, id uuid.UUID, det Details) error {
	const op = "service.bookings.UpdateDetails"

	if det.AddressID != nil {
		if _, err := s.store.Addresses().Get(ctx, *det.AddressID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%s: %w", op, ErrAddressNotFound)
			}

			return fmt.Errorf("%s: %w", op, err)
		}
	}

	err := s.drafts.Update(id, func(d *booking.Draft) error {
		if det.EventDate != nil {
			d.EventDate = *det.EventDate
		}
		if det.GuestCount != nil {
			d.GuestCount = *det.GuestCount
		}
		if det.SpecialNotes != nil {
			d.SpecialNotes = *det.SpecialNotes
		}
		if det.MenuNotes != nil {
			d.MenuNotes = *det.MenuNotes
		}
		if det.AddressID != nil {
			d.AddressID = *det.AddressID
		}
		if det.PaymentMethod != nil {
			d.PaymentMethod = *det.PaymentMethod
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, ErrDraftNotFound)
	}

	return nil
}

// Next advances the wizard one step; the current step's gate must pass.
func (s *Service) Next(ctx context.Context, id uuid.UUID) (*booking.Draft, error) {
	const op = "service.bookings.Next"

	var out *booking.Draft
	err := s.drafts.Update(id, func(d *booking.Draft) error {
		if err := d.Next(time.Now()); err != nil {
			return err
		}
		out = d.Clone()
		return nil
	})
	if err != nil {
		if errors.Is(err, booking.ErrDraftNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrDraftNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// Back moves the wizard one step backward without losing entered data.
func (s *Service) Back(ctx context.Context, id uuid.UUID) (*booking.Draft, error) {
	const op = "service.bookings.Back"

	var out *booking.Draft
	err := s.drafts.Update(id, func(d *booking.Draft) error {
		if err := d.Back(); err != nil {
			return err
		}
		out = d.Clone()
		return nil
	})
	if err != nil {
		if errors.Is(err, booking.ErrDraftNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrDraftNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// Submit finalizes a draft into an order inside a transaction and discards
// the draft. Prices are read from the live catalog at submission time; the
// created order carries them as its own snapshot from then on.
func (s *Service) Submit(ctx context.Context, id uuid.UUID, rlKey string) (*domain.Order, error) {
	const op = "service.bookings.Submit"

	if s.limiter != nil && rlKey != "" {
		ok, _, retry, err := s.limiter.Allow(ctx, rlKey)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if !ok {
			return nil, fmt.Errorf("%s: %w, retry in %s", op, ErrRateLimited, retry)
		}
	}

	d, err := s.drafts.Get(id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrDraftNotFound)
	}

	now := time.Now()
	if err := d.Validate(now); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	priceOf, err := s.priceLookup(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	items, err := d.Items(priceOf)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrItemNotFound)
	}

	total, err := d.Total(priceOf)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrItemNotFound)
	}

	order := domain.Order{
		ID:            uuid.New(),
		CustomerID:    d.CustomerID,
		AddressID:     d.AddressID,
		Status:        domain.OrderPending,
		EventDate:     d.EventDate,
		GuestCount:    d.GuestCount,
		SpecialNotes:  d.SpecialNotes,
		MenuNotes:     d.MenuNotes,
		PaymentMethod: d.PaymentMethod,
		Total:         total,
		CreatedAt:     now,
	}

	err = s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		if err := s.store.Orders().With(tx).Create(ctx, order, items); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		after(func(ctx context.Context) {
			_ = s.cache.InvalidateOrder(ctx, order.ID.String())
			_ = s.pubsub.PublishEntityChanged(ctx, "order", order.ID.String())
			s.notifier.Notify(ctx, notify.KindSuccess,
				"Booking confirmed",
				fmt.Sprintf("order %s created, total %d", order.ID, order.Total),
			)
		})

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.drafts.Delete(id)

	return &order, nil
}

// priceLookup builds an id -> price function over the cached catalog.
func (s *Service) priceLookup(ctx context.Context) (func(int64) (int64, bool), error) {
	items, err := s.queries.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	prices := make(map[int64]int64, len(items))
	for _, it := range items {
		prices[it.ID] = it.Price
	}

	return func(id int64) (int64, bool) {
		p, ok := prices[id]
		return p, ok
	}, nil
}
