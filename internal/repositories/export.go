package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/gbx/internal/models"
	"github.com/desertthunder/gbx/internal/shared"
)

// ExportRecord is a persisted schedule export.
type ExportRecord struct {
	ID        string
	Export    models.ScheduleExport
	CreatedAt time.Time
}

// ExportRepository persists assembled schedule exports for offline reading.
type ExportRepository struct {
	db *sql.DB
}

// NewExportRepository creates a new [ExportRepository] with the given database connection
func NewExportRepository(db *sql.DB) *ExportRepository {
	return &ExportRepository{db: db}
}

// Create inserts an export with a generated ID and returns the stored record.
func (r *ExportRepository) Create(export models.ScheduleExport) (*ExportRecord, error) {
	payload, err := json.Marshal(export)
	if err != nil {
		return nil, fmt.Errorf("failed to encode export: %w", err)
	}

	record := &ExportRecord{
		ID:        shared.GenerateID(),
		Export:    export,
		CreatedAt: time.Now().UTC(),
	}

	query := `
		INSERT INTO exports (id, provider_id, year, month, payload, created_at) VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.Exec(query, record.ID, export.ProviderID, export.Year, export.Month, string(payload), record.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert export: %w", err)
	}

	return record, nil
}

// Get retrieves an export by ID.
func (r *ExportRepository) Get(id string) (*ExportRecord, error) {
	var (
		payload   string
		createdAt time.Time
	)

	query := "SELECT payload, created_at FROM exports WHERE id = ?"
	err := r.db.QueryRow(query, id).Scan(&payload, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", shared.ErrExportNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query export: %w", err)
	}

	record := &ExportRecord{ID: id, CreatedAt: createdAt}
	if err := json.Unmarshal([]byte(payload), &record.Export); err != nil {
		return nil, fmt.Errorf("failed to decode export payload: %w", err)
	}

	return record, nil
}

// List retrieves all exports for a provider, newest first. An empty
// providerID lists everything.
func (r *ExportRepository) List(providerID string) ([]*ExportRecord, error) {
	query := "SELECT id, payload, created_at FROM exports"
	args := []any{}

	if providerID != "" {
		query += " WHERE provider_id = ?"
		args = append(args, providerID)
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query exports: %w", err)
	}
	defer rows.Close()

	var records []*ExportRecord
	for rows.Next() {
		var (
			id        string
			payload   string
			createdAt time.Time
		)
		if err := rows.Scan(&id, &payload, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan export: %w", err)
		}

		record := &ExportRecord{ID: id, CreatedAt: createdAt}
		if err := json.Unmarshal([]byte(payload), &record.Export); err != nil {
			return nil, fmt.Errorf("failed to decode export payload: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate exports: %w", err)
	}

	return records, nil
}

// Delete removes an export by ID.
func (r *ExportRepository) Delete(id string) error {
	result, err := r.db.Exec("DELETE FROM exports WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete export: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrExportNotFound, id)
	}

	return nil
}
