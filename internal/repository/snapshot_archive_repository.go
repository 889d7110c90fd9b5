package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-exam-planner/internal/models"
)

const snapshotArchiveSchema = `CREATE TABLE IF NOT EXISTS snapshot_archives (
	id UUID PRIMARY KEY,
	label VARCHAR(120) NOT NULL DEFAULT '',
	payload JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
)`

// SnapshotArchiveRepository keeps labelled copies of full board snapshots.
type SnapshotArchiveRepository struct {
	db *sqlx.DB
}

// NewSnapshotArchiveRepository constructs the repository.
func NewSnapshotArchiveRepository(db *sqlx.DB) *SnapshotArchiveRepository {
	return &SnapshotArchiveRepository{db: db}
}

// EnsureSchema creates the archive table when missing.
func (r *SnapshotArchiveRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, snapshotArchiveSchema); err != nil {
		return fmt.Errorf("ensure snapshot_archives schema: %w", err)
	}
	return nil
}

// Create inserts an archive, assigning id and timestamp when empty.
func (r *SnapshotArchiveRepository) Create(ctx context.Context, archive *models.SnapshotArchive) error {
	if archive.ID == "" {
		archive.ID = uuid.NewString()
	}
	if archive.CreatedAt.IsZero() {
		archive.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO snapshot_archives (id, label, payload, created_at)
	VALUES (:id, :label, :payload, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, archive); err != nil {
		return fmt.Errorf("create snapshot archive: %w", err)
	}
	return nil
}

// List returns archive metadata, newest first. Payloads are not loaded.
func (r *SnapshotArchiveRepository) List(ctx context.Context, limit int) ([]models.SnapshotArchive, error) {
	const query = `SELECT id, label, created_at FROM snapshot_archives ORDER BY created_at DESC LIMIT $1`
	var archives []models.SnapshotArchive
	if err := r.db.SelectContext(ctx, &archives, query, limit); err != nil {
		return nil, fmt.Errorf("list snapshot archives: %w", err)
	}
	return archives, nil
}

// FindByID loads one archive with its payload. sql.ErrNoRows is returned
// unwrapped when the id is unknown.
func (r *SnapshotArchiveRepository) FindByID(ctx context.Context, id string) (*models.SnapshotArchive, error) {
	const query = `SELECT id, label, payload, created_at FROM snapshot_archives WHERE id = $1`
	var archive models.SnapshotArchive
	if err := r.db.GetContext(ctx, &archive, query, id); err != nil {
		return nil, err
	}
	return &archive, nil
}
