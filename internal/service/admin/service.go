// Package admin manages the reference catalog: creating items and seeding
// the initial data set.
package admin

import (
	"context"
	"errors"
	"fmt"

	"github.com/hoangtrn/fest-go/internal/domain"
	redisx "github.com/hoangtrn/fest-go/internal/redis"
	"github.com/hoangtrn/fest-go/internal/repository"
	postgresrepo "github.com/hoangtrn/fest-go/internal/repository/postgres"
	redisrepo "github.com/hoangtrn/fest-go/internal/repository/redis"
	"github.com/hoangtrn/fest-go/internal/uow"
)

type Service struct {
	store  *postgresrepo.Store
	cache  *redisrepo.Cache
	pubsub *redisx.EntityPubSub
	uow    *uow.UoW
}

func New(store *postgresrepo.Store, cache *redisrepo.Cache, pubsub *redisx.EntityPubSub) *Service {
	return &Service{
		store:  store,
		cache:  cache,
		pubsub: pubsub,
		uow:    uow.NewUoW(store),
	}
}

// CreateItem adds one catalog item and returns its ID.
//
// Returns admin.ErrItemConflict when an item with the same name exists.
func (s *Service) CreateItem(ctx context.Context, it domain.CatalogItem) (int64, error) {
	const op = "service.admin.CreateItem"

	if it.Name == "" {
		return 0, fmt.Errorf("%s: name is required", op)
	}
	if it.Price < 0 {
		return 0, fmt.Errorf("%s: price must not be negative", op)
	}
	if it.Rating < 0 || it.Rating > 5 {
		return 0, fmt.Errorf("%s: rating must be between 0 and 5", op)
	}

	var id int64
	err := s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		var err error
		id, err = s.store.Catalog().With(tx).Create(ctx, it)
		if err != nil {
			if errors.Is(err, repository.ErrConflict) {
				return fmt.Errorf("%s: %w", op, ErrItemConflict)
			}
			return fmt.Errorf("%s: %w", op, err)
		}

		after(func(ctx context.Context) {
			_ = s.cache.InvalidateCatalog(ctx, id)
			_ = s.pubsub.PublishEntityChanged(ctx, "catalog", fmt.Sprint(id))
		})

		return nil
	})

	return id, err
}

// SeedCatalog batch-inserts catalog items, skipping duplicates, and drops
// the cached catalog afterwards.
func (s *Service) SeedCatalog(ctx context.Context, items []domain.CatalogItem) error {
	const op = "service.admin.SeedCatalog"

	err := s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		if err := s.store.Catalog().With(tx).Seed(ctx, items); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		after(func(ctx context.Context) {
			_ = s.cache.InvalidateCatalog(ctx)
			_ = s.pubsub.PublishEntityChanged(ctx, "catalog", "seed")
		})

		return nil
	})

	return err
}
