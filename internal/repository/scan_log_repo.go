package repository

import (
	"context"
	"database/sql"

	"farehub/internal/models"
)

// ScanLogRepository stores accepted scans for audit. The billing pass never
// reads this table; the tracker's in-memory log stays authoritative.
type ScanLogRepository struct {
	db *sql.DB
}

// NewScanLogRepository returns repository.
func NewScanLogRepository(db *sql.DB) *ScanLogRepository {
	return &ScanLogRepository{db: db}
}

// Append stores one scan event.
func (r *ScanLogRepository) Append(ctx context.Context, event models.ScanEvent) error {
	const query = `
		INSERT INTO scan_events (kind, card_id, reader_id, occurred_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.ExecContext(ctx, query, string(event.Kind), event.CardID, event.ReaderID, event.OccurredAt)
	return err
}
