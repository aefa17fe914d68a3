package postgresrepo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hoangtrn/fest-go/internal/domain"
)

type AddressRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *AddressRepo) With(db DB) *AddressRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *AddressRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// ListByCustomer returns a customer's addresses ordered by ID, so the first
// flagged default is also the lowest-ID default.
func (r *AddressRepo) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Address, error) {
	const op = "postgresrepo.AddressRepo.ListByCustomer"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT id, customer_id, name, phone, street, district, city, is_default
		 FROM addresses
		 WHERE customer_id = $1
		 ORDER BY id`,
		customerID,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	var out []domain.Address
	for rows.Next() {
		var a domain.Address
		if err := rows.Scan(
			&a.ID, &a.CustomerID, &a.Name, &a.Phone,
			&a.Street, &a.District, &a.City, &a.IsDefault,
		); err != nil {
			return nil, wrapDBErr(op, err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

// Get retrieves one address.
//
// Returns repository.ErrNotFound when the address does not exist.
func (r *AddressRepo) Get(ctx context.Context, id int64) (*domain.Address, error) {
	const op = "postgresrepo.AddressRepo.Get"

	db := r.handle()

	var a domain.Address
	err := db.QueryRow(ctx,
		`SELECT id, customer_id, name, phone, street, district, city, is_default
		 FROM addresses WHERE id = $1`,
		id,
	).Scan(
		&a.ID, &a.CustomerID, &a.Name, &a.Phone,
		&a.Street, &a.District, &a.City, &a.IsDefault,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &a, nil
}

// Create inserts an address and returns its ID.
func (r *AddressRepo) Create(ctx context.Context, a domain.Address) (int64, error) {
	const op = "postgresrepo.AddressRepo.Create"

	db := r.handle()

	var id int64
	err := db.QueryRow(ctx,
		`INSERT INTO addresses (customer_id, name, phone, street, district, city, is_default)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		a.CustomerID, a.Name, a.Phone, a.Street, a.District, a.City, a.IsDefault,
	).Scan(&id)
	if err != nil {
		return 0, wrapDBErr(op, err)
	}

	return id, nil
}
