package postgresrepo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hoangtrn/fest-go/internal/domain"
)

type CatalogRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *CatalogRepo) With(db DB) *CatalogRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *CatalogRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// List returns the full catalog ordered by ID. Filtering and sorting happen
// in memory in the catalog package; the reference list is small and cached.
func (r *CatalogRepo) List(ctx context.Context) ([]domain.CatalogItem, error) {
	const op = "postgresrepo.CatalogRepo.List"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT id, name, description, price, category, rating, review_count,
		        features, location, capacity, duration
		 FROM catalog_items
		 ORDER BY id`,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	var out []domain.CatalogItem
	for rows.Next() {
		var it domain.CatalogItem
		if err := rows.Scan(
			&it.ID,
			&it.Name,
			&it.Description,
			&it.Price,
			&it.Category,
			&it.Rating,
			&it.ReviewCount,
			&it.Features,
			&it.Location,
			&it.Capacity,
			&it.Duration,
		); err != nil {
			return nil, wrapDBErr(op, err)
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

// Get retrieves a single catalog item.
//
// Returns repository.ErrNotFound when the item does not exist.
func (r *CatalogRepo) Get(ctx context.Context, id int64) (*domain.CatalogItem, error) {
	const op = "postgresrepo.CatalogRepo.Get"

	db := r.handle()

	var it domain.CatalogItem
	err := db.QueryRow(ctx,
		`SELECT id, name, description, price, category, rating, review_count,
		        features, location, capacity, duration
		 FROM catalog_items WHERE id = $1`,
		id,
	).Scan(
		&it.ID,
		&it.Name,
		&it.Description,
		&it.Price,
		&it.Category,
		&it.Rating,
		&it.ReviewCount,
		&it.Features,
		&it.Location,
		&it.Capacity,
		&it.Duration,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &it, nil
}

// Create inserts a catalog item and returns its ID.
//
// Returns repository.ErrConflict when an item with the same name exists.
func (r *CatalogRepo) Create(ctx context.Context, it domain.CatalogItem) (int64, error) {
	const op = "postgresrepo.CatalogRepo.Create"

	db := r.handle()

	var id int64
	err := db.QueryRow(ctx,
		`INSERT INTO catalog_items
		   (name, description, price, category, rating, review_count,
		    features, location, capacity, duration)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id`,
		it.Name, it.Description, it.Price, it.Category, it.Rating,
		it.ReviewCount, it.Features, it.Location, it.Capacity, it.Duration,
	).Scan(&id)
	if err != nil {
		return 0, wrapDBErr(op, err)
	}

	return id, nil
}

// Seed batch-inserts catalog items, skipping ones that already exist.
func (r *CatalogRepo) Seed(ctx context.Context, items []domain.CatalogItem) error {
	const op = "postgresrepo.CatalogRepo.Seed"

	db := r.handle()

	batch := &pgx.Batch{}
	for _, it := range items {
		batch.Queue(
			`INSERT INTO catalog_items
			   (name, description, price, category, rating, review_count,
			    features, location, capacity, duration)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			 ON CONFLICT (name) DO NOTHING`,
			it.Name, it.Description, it.Price, it.Category, it.Rating,
			it.ReviewCount, it.Features, it.Location, it.Capacity, it.Duration,
		)
	}
	if err := db.SendBatch(ctx, batch).Close(); err != nil {
		return wrapDBErr(op, err)
	}

	return nil
}
