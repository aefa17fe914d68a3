package postgresrepo

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hoangtrn/fest-go/internal/domain"
	"github.com/hoangtrn/fest-go/internal/repository"
)

type TicketRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *TicketRepo) With(db DB) *TicketRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *TicketRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// Create inserts a new ticket in the open status.
func (r *TicketRepo) Create(ctx context.Context, t domain.Ticket) error {
	const op = "postgresrepo.TicketRepo.Create"

	db := r.handle()

	_, err := db.Exec(ctx,
		`INSERT INTO tickets (id, customer_id, subject, status, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		t.ID, t.CustomerID, t.Subject, t.Status, t.CreatedAt,
	)
	if err != nil {
		return wrapDBErr(op, err)
	}

	return nil
}

// Get retrieves a ticket with its full conversation.
//
// Returns repository.ErrNotFound when the ticket does not exist.
func (r *TicketRepo) Get(ctx context.Context, id uuid.UUID) (*domain.TicketWithMessages, error) {
	const op = "postgresrepo.TicketRepo.Get"

	db := r.handle()

	var out domain.TicketWithMessages
	err := db.QueryRow(ctx,
		`SELECT id, customer_id, subject, status, satisfaction, created_at
		 FROM tickets WHERE id = $1`,
		id,
	).Scan(
		&out.Ticket.ID, &out.Ticket.CustomerID, &out.Ticket.Subject,
		&out.Ticket.Status, &out.Ticket.Satisfaction, &out.Ticket.CreatedAt,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	rows, err := db.Query(ctx,
		`SELECT id, ticket_id, author, from_staff, body, created_at
		 FROM ticket_messages WHERE ticket_id = $1
		 ORDER BY id`,
		id,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}
	defer rows.Close()

	for rows.Next() {
		var m domain.TicketMessage
		if err := rows.Scan(&m.ID, &m.TicketID, &m.Author, &m.FromStaff, &m.Body, &m.CreatedAt); err != nil {
			return nil, wrapDBErr(op, err)
		}
		out.Messages = append(out.Messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &out, nil
}

// Status returns the current status of a ticket.
func (r *TicketRepo) Status(ctx context.Context, id uuid.UUID) (domain.TicketStatus, error) {
	const op = "postgresrepo.TicketRepo.Status"

	db := r.handle()

	var s domain.TicketStatus
	if err := db.QueryRow(ctx, `SELECT status FROM tickets WHERE id = $1`, id).Scan(&s); err != nil {
		return "", wrapDBErr(op, err)
	}

	return s, nil
}

// AppendMessage adds one message to the ticket conversation. The message log
// is append-only; messages are never updated or deleted.
func (r *TicketRepo) AppendMessage(ctx context.Context, m domain.TicketMessage) error {
	const op = "postgresrepo.TicketRepo.AppendMessage"

	db := r.handle()

	_, err := db.Exec(ctx,
		`INSERT INTO ticket_messages (ticket_id, author, from_staff, body, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		m.TicketID, m.Author, m.FromStaff, m.Body, m.CreatedAt,
	)
	if err != nil {
		return wrapDBErr(op, err)
	}

	return nil
}

// UpdateStatus moves a ticket from the expected status to the new one with a
// compare-and-set. Returns repository.ErrStatusChanged when the row no
// longer carries the expected status.
func (r *TicketRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.TicketStatus) error {
	const op = "postgresrepo.TicketRepo.UpdateStatus"

	db := r.handle()

	tag, err := db.Exec(ctx,
		`UPDATE tickets SET status = $1 WHERE id = $2 AND status = $3`,
		to, id, from,
	)
	if err != nil {
		return wrapDBErr(op, err)
	}
	if tag.RowsAffected() == 0 {
		return wrapDBErr(op, repository.ErrStatusChanged)
	}

	return nil
}

// SetSatisfaction records the one-time satisfaction rating and closes the
// ticket in a single guarded update: the write only matches a resolved
// ticket with no rating yet. Returns repository.ErrAlreadyRated otherwise.
func (r *TicketRepo) SetSatisfaction(ctx context.Context, id uuid.UUID, rating int) error {
	const op = "postgresrepo.TicketRepo.SetSatisfaction"

	db := r.handle()

	tag, err := db.Exec(ctx,
		`UPDATE tickets
		 SET satisfaction = $1, status = $2
		 WHERE id = $3 AND status = $4 AND satisfaction IS NULL`,
		rating, domain.TicketClosed, id, domain.TicketResolved,
	)
	if err != nil {
		return wrapDBErr(op, err)
	}
	if tag.RowsAffected() == 0 {
		return wrapDBErr(op, repository.ErrAlreadyRated)
	}

	return nil
}

// ListByCustomer returns a customer's tickets, newest first.
func (r *TicketRepo) ListByCustomer(ctx context.Context, customerID int64, limit, offset int) ([]domain.Ticket, error) {
	const op = "postgresrepo.TicketRepo.ListByCustomer"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT id, customer_id, subject, status, satisfaction, created_at
		 FROM tickets
		 WHERE customer_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`,
		customerID, limit, offset,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}
	defer rows.Close()

	var out []domain.Ticket
	for rows.Next() {
		var t domain.Ticket
		if err := rows.Scan(&t.ID, &t.CustomerID, &t.Subject, &t.Status, &t.Satisfaction, &t.CreatedAt); err != nil {
			return nil, wrapDBErr(op, err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}
