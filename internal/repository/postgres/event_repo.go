package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"whenandwhere/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

const selectEventColumns = `
		SELECT e.id, e.name, e.location, e.organizer_name, e.organizer_email, e.description, e.website, e.language,
			e.created_at, e.updated_at,
			COALESCE((SELECT array_agg(ea.attendee_id::text ORDER BY ea.position)
				FROM event_attendees ea WHERE ea.event_id = e.id), '{}') AS attendee_ids
		FROM events e`

// Create stores the event row, its date slots and its attendee links in one transaction.
func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO events (name, location, organizer_name, organizer_email, description, website, language, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	if err := tx.QueryRowContext(ctx, query,
		e.Name, e.Location, e.OrganizerName, e.OrganizerEmail, e.Description, e.Website, e.Language, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID); err != nil {
		return translateError(err)
	}

	slotQuery := `
		INSERT INTO event_date_slots (event_id, slot_id, position, date, start_time, end_time)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for i, s := range e.DateSlots {
		if _, err := tx.ExecContext(ctx, slotQuery, e.ID, s.ID, i, s.Date, s.StartTime, s.EndTime); err != nil {
			return fmt.Errorf("insert date slot %q: %w", s.ID, translateError(err))
		}
	}

	linkQuery := `
		INSERT INTO event_attendees (event_id, attendee_id, position)
		VALUES ($1, $2, $3)
	`
	for i, attendeeID := range e.InvitedAttendeeIDs {
		if _, err := tx.ExecContext(ctx, linkQuery, e.ID, attendeeID, i); err != nil {
			return fmt.Errorf("link attendee %s: %w", attendeeID, translateError(err))
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := selectEventColumns + `
		WHERE e.id = $1
	`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, translateError(err)
	}
	if err := r.loadDateSlots(ctx, []*domain.Event{e}); err != nil {
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) List(ctx context.Context, params domain.PaginationParams) ([]*domain.Event, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&total); err != nil {
		return nil, 0, err
	}
	query := selectEventColumns + `
		ORDER BY e.created_at DESC, e.id
		LIMIT $1 OFFSET $2
	`
	events, err := r.queryEvents(ctx, query, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

func (r *eventRepository) ListAll(ctx context.Context) ([]*domain.Event, error) {
	query := selectEventColumns + `
		ORDER BY e.created_at DESC, e.id
	`
	return r.queryEvents(ctx, query)
}

// Delete removes the event row; slots and attendee links cascade.
func (r *eventRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM events WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return translateError(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventRepository) queryEvents(ctx context.Context, query string, args ...any) ([]*domain.Event, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadDateSlots(ctx, events); err != nil {
		return nil, err
	}
	return events, nil
}

// loadDateSlots fills DateSlots for all events with a single query, keeping slot order.
func (r *eventRepository) loadDateSlots(ctx context.Context, events []*domain.Event) error {
	if len(events) == 0 {
		return nil
	}
	byID := make(map[string]*domain.Event, len(events))
	ids := make([]string, 0, len(events))
	for _, e := range events {
		e.DateSlots = []domain.DateSlot{}
		byID[e.ID] = e
		ids = append(ids, e.ID)
	}
	query := `
		SELECT event_id, slot_id, date, start_time, end_time
		FROM event_date_slots
		WHERE event_id = ANY($1::uuid[])
		ORDER BY event_id, position
	`
	rows, err := r.DB.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("list date slots: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var eventID string
		var s domain.DateSlot
		if err := rows.Scan(&eventID, &s.ID, &s.Date, &s.StartTime, &s.EndTime); err != nil {
			return err
		}
		if e, ok := byID[eventID]; ok {
			e.DateSlots = append(e.DateSlots, s)
		}
	}
	return rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	e := &domain.Event{}
	var attendeeIDs []string
	err := row.Scan(
		&e.ID, &e.Name, &e.Location, &e.OrganizerName, &e.OrganizerEmail, &e.Description, &e.Website, &e.Language,
		&e.CreatedAt, &e.UpdatedAt, pq.Array(&attendeeIDs),
	)
	if err != nil {
		return nil, err
	}
	if attendeeIDs == nil {
		attendeeIDs = []string{}
	}
	e.InvitedAttendeeIDs = attendeeIDs
	return e, nil
}
