// Package query serves the read path: catalog browsing with filter/sort,
// single-item lookup, and customer reference data. Reads go through the
// redis cache; the filter engine itself is pure and runs in memory.
package query

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hoangtrn/fest-go/internal/catalog"
	"github.com/hoangtrn/fest-go/internal/domain"
	redisx "github.com/hoangtrn/fest-go/internal/redis"
	"github.com/hoangtrn/fest-go/internal/repository"
	postgresrepo "github.com/hoangtrn/fest-go/internal/repository/postgres"
	redisrepo "github.com/hoangtrn/fest-go/internal/repository/redis"
)

type Config struct {
	CatalogTTL time.Duration
}

type Service struct {
	store *postgresrepo.Store
	cache *redisrepo.Cache
	cfg   Config
}

func New(store *postgresrepo.Store, cache *redisrepo.Cache, cfg Config) *Service {
	if cfg.CatalogTTL <= 0 {
		cfg.CatalogTTL = 60 * time.Second
	}

	return &Service{
		store: store,
		cache: cache,
		cfg:   cfg,
	}
}

// Catalog returns the full reference catalog, loading through the cache.
func (s *Service) Catalog(ctx context.Context) ([]domain.CatalogItem, error) {
	const op = "service.query.Catalog"

	items, err := redisrepo.GetOrSetJSON(
		ctx,
		s.cache,
		redisx.KeyCatalog(),
		s.cfg.CatalogTTL,
		func(ctx context.Context) ([]domain.CatalogItem, error) {
			return s.store.Catalog().List(ctx)
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return items, nil
}

// BrowseCatalog returns the visible subset of the catalog under the given
// filter, sorted by its sort key. An empty result is a valid outcome.
func (s *Service) BrowseCatalog(ctx context.Context, f catalog.Filter) ([]domain.CatalogItem, error) {
	const op = "service.query.BrowseCatalog"

	items, err := s.Catalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return catalog.Apply(items, f), nil
}

// GetItem retrieves a single catalog item through the cache.
//
// Returns query.ErrItemNotFound when the item does not exist.
func (s *Service) GetItem(ctx context.Context, id int64) (*domain.CatalogItem, error) {
	const op = "service.query.GetItem"

	item, err := redisrepo.GetOrSetJSON(
		ctx,
		s.cache,
		redisx.KeyCatalogItem(id),
		s.cfg.CatalogTTL,
		func(ctx context.Context) (domain.CatalogItem, error) {
			it, err := s.store.Catalog().Get(ctx, id)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return domain.CatalogItem{}, ErrItemNotFound
				}

				return domain.CatalogItem{}, err
			}

			return *it, nil
		},
	)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrItemNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &item, nil
}

// Addresses returns a customer's saved addresses ordered by ID.
func (s *Service) Addresses(ctx context.Context, customerID int64) ([]domain.Address, error) {
	const op = "service.query.Addresses"

	addrs, err := s.store.Addresses().ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return addrs, nil
}
