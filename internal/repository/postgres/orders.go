package postgresrepo

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hoangtrn/fest-go/internal/domain"
	"github.com/hoangtrn/fest-go/internal/repository"
)

type OrderRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *OrderRepo) With(db DB) *OrderRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *OrderRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// Create inserts the order, its item lines, and the initial history event.
// Meant to run inside a unit-of-work transaction.
func (r *OrderRepo) Create(ctx context.Context, o domain.Order, items []domain.OrderItem) error {
	const op = "postgresrepo.OrderRepo.Create"

	db := r.handle()

	_, err := db.Exec(ctx,
		`INSERT INTO orders
		   (id, customer_id, address_id, status, event_date, guest_count,
		    special_notes, menu_notes, payment_method, total, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		o.ID, o.CustomerID, o.AddressID, o.Status, o.EventDate, o.GuestCount,
		o.SpecialNotes, o.MenuNotes, o.PaymentMethod, o.Total, o.CreatedAt,
	)
	if err != nil {
		return wrapDBErr(op, err)
	}

	batch := &pgx.Batch{}
	for _, it := range items {
		batch.Queue(
			`INSERT INTO order_items (order_id, item_id, quantity, unit_price)
			 VALUES ($1, $2, $3, $4)`,
			o.ID, it.ItemID, it.Quantity, it.UnitPrice,
		)
	}
	batch.Queue(
		`INSERT INTO order_events (order_id, status, note, actor, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		o.ID, o.Status, "order created", "customer", o.CreatedAt,
	)
	if err := db.SendBatch(ctx, batch).Close(); err != nil {
		return wrapDBErr(op, err)
	}

	return nil
}

// Get retrieves an order with its item lines and full history.
//
// Returns repository.ErrNotFound when the order does not exist.
func (r *OrderRepo) Get(ctx context.Context, id uuid.UUID) (*domain.OrderWithHistory, error) {
	const op = "postgresrepo.OrderRepo.Get"

	db := r.handle()

	var out domain.OrderWithHistory
	err := db.QueryRow(ctx,
		`SELECT id, customer_id, address_id, status, event_date, guest_count,
		        special_notes, menu_notes, payment_method, total, created_at
		 FROM orders WHERE id = $1`,
		id,
	).Scan(
		&out.Order.ID, &out.Order.CustomerID, &out.Order.AddressID,
		&out.Order.Status, &out.Order.EventDate, &out.Order.GuestCount,
		&out.Order.SpecialNotes, &out.Order.MenuNotes,
		&out.Order.PaymentMethod, &out.Order.Total, &out.Order.CreatedAt,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	rows, err := db.Query(ctx,
		`SELECT item_id, quantity, unit_price
		 FROM order_items WHERE order_id = $1
		 ORDER BY item_id`,
		id,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}
	defer rows.Close()

	for rows.Next() {
		var it domain.OrderItem
		if err := rows.Scan(&it.ItemID, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, wrapDBErr(op, err)
		}
		out.Items = append(out.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	events, err := db.Query(ctx,
		`SELECT id, order_id, status, note, actor, created_at
		 FROM order_events WHERE order_id = $1
		 ORDER BY id`,
		id,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}
	defer events.Close()

	for events.Next() {
		var ev domain.OrderEvent
		if err := events.Scan(&ev.ID, &ev.OrderID, &ev.Status, &ev.Note, &ev.Actor, &ev.CreatedAt); err != nil {
			return nil, wrapDBErr(op, err)
		}
		out.History = append(out.History, ev)
	}
	if err := events.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &out, nil
}

// Status returns the current status of an order.
func (r *OrderRepo) Status(ctx context.Context, id uuid.UUID) (domain.OrderStatus, error) {
	const op = "postgresrepo.OrderRepo.Status"

	db := r.handle()

	var s domain.OrderStatus
	if err := db.QueryRow(ctx, `SELECT status FROM orders WHERE id = $1`, id).Scan(&s); err != nil {
		return "", wrapDBErr(op, err)
	}

	return s, nil
}

// UpdateStatus moves an order from the expected status to the new one with a
// compare-and-set, appending a history event in the same round-trip. When
// the row no longer carries the expected status the update matches nothing
// and repository.ErrStatusChanged is returned; no history is written.
func (r *OrderRepo) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	from, to domain.OrderStatus,
	actor, note string,
) error {
	const op = "postgresrepo.OrderRepo.UpdateStatus"

	db := r.handle()

	tag, err := db.Exec(ctx,
		`UPDATE orders SET status = $1 WHERE id = $2 AND status = $3`,
		to, id, from,
	)
	if err != nil {
		return wrapDBErr(op, err)
	}
	if tag.RowsAffected() == 0 {
		return wrapDBErr(op, repository.ErrStatusChanged)
	}

	_, err = db.Exec(ctx,
		`INSERT INTO order_events (order_id, status, note, actor, created_at)
		 VALUES ($1, $2, $3, $4, now())`,
		id, to, note, actor,
	)
	if err != nil {
		return wrapDBErr(op, err)
	}

	return nil
}

// CreateReview attaches the one-time review of a completed order.
//
// Returns repository.ErrConflict when a review already exists.
func (r *OrderRepo) CreateReview(ctx context.Context, rv domain.Review) error {
	const op = "postgresrepo.OrderRepo.CreateReview"

	db := r.handle()

	_, err := db.Exec(ctx,
		`INSERT INTO order_reviews (order_id, rating, comment, created_at)
		 VALUES ($1, $2, $3, $4)`,
		rv.OrderID, rv.Rating, rv.Comment, rv.CreatedAt,
	)
	if err != nil {
		return wrapDBErr(op, err)
	}

	return nil
}

// ListByCustomer returns a customer's orders, newest first.
func (r *OrderRepo) ListByCustomer(ctx context.Context, customerID int64, limit, offset int) ([]domain.Order, error) {
	const op = "postgresrepo.OrderRepo.ListByCustomer"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT id, customer_id, address_id, status, event_date, guest_count,
		        special_notes, menu_notes, payment_method, total, created_at
		 FROM orders
		 WHERE customer_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`,
		customerID, limit, offset,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}
	defer rows.Close()

	var out []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(
			&o.ID, &o.CustomerID, &o.AddressID, &o.Status, &o.EventDate,
			&o.GuestCount, &o.SpecialNotes, &o.MenuNotes, &o.PaymentMethod,
			&o.Total, &o.CreatedAt,
		); err != nil {
			return nil, wrapDBErr(op, err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}
