package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/meeting-seatmap/internal/model"
)

// exportsSchema creates the audit table on first use.
const exportsSchema = `CREATE TABLE IF NOT EXISTS seatmap_exports (
	id            CHAR(36)     NOT NULL PRIMARY KEY,
	file_name     VARCHAR(255) NOT NULL,
	attendees     INT UNSIGNED NOT NULL,
	seats_per_row INT UNSIGNED NOT NULL,
	row_count     INT UNSIGNED NOT NULL,
	locale        VARCHAR(8)   NOT NULL,
	created_at    DATETIME     NOT NULL,
	KEY idx_seatmap_exports_created (created_at)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`

// ExportRepo stores export audit entries.
type ExportRepo struct{ DB *sql.DB }

func NewExportRepo(db *sql.DB) *ExportRepo { return &ExportRepo{DB: db} }

// EnsureSchema creates the seatmap_exports table if it does not exist.
func (r *ExportRepo) EnsureSchema(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, exportsSchema)
	return err
}

// Insert records one export.  A zero CreatedAt is set to now.
func (r *ExportRepo) Insert(ctx context.Context, e *model.Export) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO seatmap_exports (id, file_name, attendees, seats_per_row, row_count, locale, created_at)
		 VALUES (?,?,?,?,?,?,?)`,
		e.ID, e.FileName, e.Attendees, e.SeatsPerRow, e.Rows, e.Locale, e.CreatedAt)
	return err
}

// GetByID loads a single export or returns ErrExportNotFound.
func (r *ExportRepo) GetByID(ctx context.Context, id string) (*model.Export, error) {
	var e model.Export
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, file_name, attendees, seats_per_row, row_count, locale, created_at
		 FROM seatmap_exports WHERE id=? LIMIT 1`, id).
		Scan(&e.ID, &e.FileName, &e.Attendees, &e.SeatsPerRow, &e.Rows, &e.Locale, &e.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrExportNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// ListRecent returns up to limit exports, newest first.
func (r *ExportRepo) ListRecent(ctx context.Context, limit int) ([]model.Export, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, file_name, attendees, seats_per_row, row_count, locale, created_at
		 FROM seatmap_exports ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Export, 0, limit)
	for rows.Next() {
		var e model.Export
		if err := rows.Scan(&e.ID, &e.FileName, &e.Attendees, &e.SeatsPerRow, &e.Rows, &e.Locale, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
