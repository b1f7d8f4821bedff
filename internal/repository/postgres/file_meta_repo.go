package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"docverify/internal/domain"
	"docverify/internal/port"
)

type fileMetaRepo struct {
	db *sqlx.DB
}

// NewFileMetaRepo creates a new PostgreSQL-backed FileMetaRepository.
func NewFileMetaRepo(db *sqlx.DB) port.FileMetaRepository {
	return &fileMetaRepo{db: db}
}

func (r *fileMetaRepo) Create(ctx context.Context, meta *domain.FileMeta) error {
	if meta.ID == uuid.Nil {
		meta.ID = uuid.New()
	}
	meta.CreatedAt = time.Now().UTC()

	query := `INSERT INTO file_meta (id, analysis_id, item_id, uploaded_by, original_name,
		file_type, file_size, content_type, sha256, s3_bucket, s3_key, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.db.ExecContext(ctx, query,
		meta.ID, meta.AnalysisID, meta.ItemID, meta.UploadedBy, meta.OriginalName,
		meta.FileType, meta.FileSize, meta.ContentType, meta.SHA256,
		meta.S3Bucket, meta.S3Key, meta.CreatedAt)
	if err != nil {
		return fmt.Errorf("fileMetaRepo.Create: %w", err)
	}
	return nil
}

func (r *fileMetaRepo) GetByID(ctx context.Context, fileID uuid.UUID) (*domain.FileMeta, error) {
	var meta domain.FileMeta
	err := r.db.GetContext(ctx, &meta,
		"SELECT * FROM file_meta WHERE id = $1 AND deleted_at IS NULL", fileID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("fileMetaRepo.GetByID: %w", err)
	}
	return &meta, nil
}

// Delete soft-deletes the row; the object itself is removed from storage by
// the caller.
func (r *fileMetaRepo) Delete(ctx context.Context, fileID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE file_meta SET deleted_at = $1 WHERE id = $2 AND deleted_at IS NULL",
		time.Now().UTC(), fileID)
	if err != nil {
		return fmt.Errorf("fileMetaRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
