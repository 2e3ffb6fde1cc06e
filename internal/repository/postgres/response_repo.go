package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"whenandwhere/internal/domain"
)

type responseRepository struct {
	DB *sql.DB
}

func NewResponseRepository(db *sql.DB) domain.ResponseRepository {
	return &responseRepository{
		DB: db,
	}
}

// Upsert relies on the responses_event_attendee_key unique constraint: concurrent submissions
// for the same (event, attendee) serialize inside Postgres and the later one overwrites.
// xmax is zero only for a freshly inserted tuple.
func (r *responseRepository) Upsert(ctx context.Context, resp *domain.Response) (bool, error) {
	query := `
		INSERT INTO responses (event_id, attendee_id, available_slot_ids, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT ON CONSTRAINT responses_event_attendee_key DO UPDATE
		SET available_slot_ids = EXCLUDED.available_slot_ids,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at, (xmax = 0) AS inserted
	`
	slots := resp.AvailableSlotIDs
	if slots == nil {
		slots = []string{}
	}
	var inserted bool
	err := r.DB.QueryRowContext(ctx, query, resp.EventID, resp.AttendeeID, pq.Array(slots), resp.CreatedAt, resp.UpdatedAt).
		Scan(&resp.ID, &resp.CreatedAt, &inserted)
	if err != nil {
		return false, translateError(err)
	}
	resp.AvailableSlotIDs = slots
	return inserted, nil
}

func (r *responseRepository) GetByEventAndAttendee(ctx context.Context, eventID, attendeeID string) (*domain.Response, error) {
	query := `
		SELECT id, event_id, attendee_id, available_slot_ids, created_at, updated_at
		FROM responses
		WHERE event_id = $1 AND attendee_id = $2
	`
	resp, err := scanResponse(r.DB.QueryRowContext(ctx, query, eventID, attendeeID))
	if err != nil {
		return nil, translateError(err)
	}
	return resp, nil
}

func (r *responseRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Response, error) {
	query := `
		SELECT id, event_id, attendee_id, available_slot_ids, created_at, updated_at
		FROM responses
		WHERE event_id = $1
		ORDER BY created_at, id
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var responses []*domain.Response
	for rows.Next() {
		resp, err := scanResponse(rows)
		if err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if responses == nil {
		responses = []*domain.Response{}
	}
	return responses, nil
}

func (r *responseRepository) DeleteByEventID(ctx context.Context, eventID string) (int64, error) {
	query := `DELETE FROM responses WHERE event_id = $1`
	result, err := r.DB.ExecContext(ctx, query, eventID)
	if err != nil {
		return 0, translateError(err)
	}
	return result.RowsAffected()
}

func scanResponse(row rowScanner) (*domain.Response, error) {
	resp := &domain.Response{}
	var slots []string
	if err := row.Scan(&resp.ID, &resp.EventID, &resp.AttendeeID, pq.Array(&slots), &resp.CreatedAt, &resp.UpdatedAt); err != nil {
		return nil, err
	}
	if slots == nil {
		slots = []string{}
	}
	resp.AvailableSlotIDs = slots
	return resp, nil
}
