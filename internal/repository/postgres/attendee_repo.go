package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"whenandwhere/internal/domain"
)

type attendeeRepository struct {
	DB *sql.DB
}

func NewAttendeeRepository(db *sql.DB) domain.AttendeeRepository {
	return &attendeeRepository{
		DB: db,
	}
}

func (r *attendeeRepository) Create(ctx context.Context, a *domain.Attendee) error {
	query := `
		INSERT INTO attendees (name, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	return translateError(r.DB.QueryRowContext(ctx, query, a.Name, a.Email, a.CreatedAt, a.UpdatedAt).Scan(&a.ID))
}

func (r *attendeeRepository) GetByID(ctx context.Context, id string) (*domain.Attendee, error) {
	query := `
		SELECT id, name, email, created_at, updated_at
		FROM attendees
		WHERE id = $1
	`
	a := &domain.Attendee{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&a.ID, &a.Name, &a.Email, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, translateError(err)
	}
	return a, nil
}

// ListByIDs returns attendees in the order of ids; ids without a row are skipped.
func (r *attendeeRepository) ListByIDs(ctx context.Context, ids []string) ([]*domain.Attendee, error) {
	if len(ids) == 0 {
		return []*domain.Attendee{}, nil
	}
	query := `
		SELECT id, name, email, created_at, updated_at
		FROM attendees
		WHERE id = ANY($1::uuid[])
	`
	found, err := r.query(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, translateError(err)
	}
	byID := make(map[string]*domain.Attendee, len(found))
	for _, a := range found {
		byID[a.ID] = a
	}
	out := make([]*domain.Attendee, 0, len(ids))
	for _, id := range ids {
		if a, ok := byID[id]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *attendeeRepository) ListAll(ctx context.Context) ([]*domain.Attendee, error) {
	query := `
		SELECT id, name, email, created_at, updated_at
		FROM attendees
		ORDER BY created_at, id
	`
	return r.query(ctx, query)
}

func (r *attendeeRepository) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query := `DELETE FROM attendees WHERE id = ANY($1::uuid[])`
	result, err := r.DB.ExecContext(ctx, query, pq.Array(ids))
	if err != nil {
		return 0, translateError(err)
	}
	return result.RowsAffected()
}

func (r *attendeeRepository) query(ctx context.Context, query string, args ...any) ([]*domain.Attendee, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	attendees := make([]*domain.Attendee, 0)
	for rows.Next() {
		a := &domain.Attendee{}
		if err := rows.Scan(&a.ID, &a.Name, &a.Email, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		attendees = append(attendees, a)
	}
	return attendees, rows.Err()
}
