package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"whenandwhere/internal/domain"
)

type logRepository struct {
	DB *sql.DB
}

func NewLogRepository(db *sql.DB) domain.LogRepository {
	return &logRepository{
		DB: db,
	}
}

func (r *logRepository) Create(ctx context.Context, entry *domain.LogEntry) error {
	var metadata []byte
	if len(entry.Metadata) > 0 {
		b, err := json.Marshal(entry.Metadata)
		if err != nil {
			return fmt.Errorf("marshal metadata: %w", err)
		}
		metadata = b
	}
	query := `
		INSERT INTO diagnostic_logs (timestamp, level, message, source, metadata)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, entry.Timestamp, entry.Level, entry.Message, entry.Source, metadata).
		Scan(&entry.ID)
}

func (r *logRepository) ListRecent(ctx context.Context, limit int) ([]*domain.LogEntry, error) {
	query := `
		SELECT id, timestamp, level, message, source, metadata
		FROM diagnostic_logs
		ORDER BY timestamp DESC
		LIMIT $1
	`
	rows, err := r.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*domain.LogEntry, 0)
	for rows.Next() {
		e := &domain.LogEntry{}
		var metadata []byte
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Level, &e.Message, &e.Source, &metadata); err != nil {
			return nil, err
		}
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &e.Metadata); err != nil {
				return nil, fmt.Errorf("unmarshal metadata of log %s: %w", e.ID, err)
			}
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *logRepository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM diagnostic_logs`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
