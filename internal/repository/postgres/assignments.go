package postgresrepo

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hoangtrn/fest-go/internal/domain"
	"github.com/hoangtrn/fest-go/internal/repository"
)

type AssignmentRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *AssignmentRepo) With(db DB) *AssignmentRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *AssignmentRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// Create inserts a new staff assignment in the pending status.
func (r *AssignmentRepo) Create(ctx context.Context, a domain.Assignment) error {
	const op = "postgresrepo.AssignmentRepo.Create"

	db := r.handle()

	_, err := db.Exec(ctx,
		`INSERT INTO assignments (id, order_id, staff_id, task, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		a.ID, a.OrderID, a.StaffID, a.Task, a.Status, a.CreatedAt,
	)
	if err != nil {
		return wrapDBErr(op, err)
	}

	return nil
}

// Get retrieves one assignment.
func (r *AssignmentRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Assignment, error) {
	const op = "postgresrepo.AssignmentRepo.Get"

	db := r.handle()

	var a domain.Assignment
	err := db.QueryRow(ctx,
		`SELECT id, order_id, staff_id, task, status, created_at
		 FROM assignments WHERE id = $1`,
		id,
	).Scan(&a.ID, &a.OrderID, &a.StaffID, &a.Task, &a.Status, &a.CreatedAt)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &a, nil
}

// Status returns the current status of an assignment.
func (r *AssignmentRepo) Status(ctx context.Context, id uuid.UUID) (domain.AssignmentStatus, error) {
	const op = "postgresrepo.AssignmentRepo.Status"

	db := r.handle()

	var s domain.AssignmentStatus
	if err := db.QueryRow(ctx, `SELECT status FROM assignments WHERE id = $1`, id).Scan(&s); err != nil {
		return "", wrapDBErr(op, err)
	}

	return s, nil
}

// UpdateStatus moves an assignment forward with a compare-and-set and
// appends a history event. Returns repository.ErrStatusChanged when the row
// no longer carries the expected status.
func (r *AssignmentRepo) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	from, to domain.AssignmentStatus,
	actor string,
) error {
	const op = "postgresrepo.AssignmentRepo.UpdateStatus"

	db := r.handle()

	tag, err := db.Exec(ctx,
		`UPDATE assignments SET status = $1 WHERE id = $2 AND status = $3`,
		to, id, from,
	)
	if err != nil {
		return wrapDBErr(op, err)
	}
	if tag.RowsAffected() == 0 {
		return wrapDBErr(op, repository.ErrStatusChanged)
	}

	_, err = db.Exec(ctx,
		`INSERT INTO assignment_events (assignment_id, status, actor, created_at)
		 VALUES ($1, $2, $3, now())`,
		id, to, actor,
	)
	if err != nil {
		return wrapDBErr(op, err)
	}

	return nil
}

// ListByStaff returns a staff member's assignments, newest first.
func (r *AssignmentRepo) ListByStaff(ctx context.Context, staffID int64, limit, offset int) ([]domain.Assignment, error) {
	const op = "postgresrepo.AssignmentRepo.ListByStaff"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT id, order_id, staff_id, task, status, created_at
		 FROM assignments
		 WHERE staff_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`,
		staffID, limit, offset,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}
	defer rows.Close()

	var out []domain.Assignment
	for rows.Next() {
		var a domain.Assignment
		if err := rows.Scan(&a.ID, &a.OrderID, &a.StaffID, &a.Task, &a.Status, &a.CreatedAt); err != nil {
			return nil, wrapDBErr(op, err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}
