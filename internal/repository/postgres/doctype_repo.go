package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"docverify/internal/domain"
	"docverify/internal/port"
)

type docTypeRepo struct {
	db *sqlx.DB
}

// NewDocumentTypeRepo creates a new PostgreSQL-backed DocumentTypeRepository.
func NewDocumentTypeRepo(db *sqlx.DB) port.DocumentTypeRepository {
	return &docTypeRepo{db: db}
}

func (r *docTypeRepo) Create(ctx context.Context, docType *domain.DocumentType) error {
	if docType.ID == uuid.Nil {
		docType.ID = uuid.New()
	}
	docType.CreatedAt = time.Now().UTC()

	query := `INSERT INTO document_types (id, name, position, created_at) VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, query, docType.ID, docType.Name, docType.Position, docType.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrDuplicateDocumentType
		}
		return fmt.Errorf("docTypeRepo.Create: %w", err)
	}
	return nil
}

func (r *docTypeRepo) GetByName(ctx context.Context, name string) (*domain.DocumentType, error) {
	var docType domain.DocumentType
	err := r.db.GetContext(ctx, &docType, "SELECT * FROM document_types WHERE name = $1", name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("docTypeRepo.GetByName: %w", err)
	}
	return &docType, nil
}

func (r *docTypeRepo) List(ctx context.Context) ([]domain.DocumentType, error) {
	var docTypes []domain.DocumentType
	err := r.db.SelectContext(ctx, &docTypes, "SELECT * FROM document_types ORDER BY position, name")
	if err != nil {
		return nil, fmt.Errorf("docTypeRepo.List: %w", err)
	}
	return docTypes, nil
}

func (r *docTypeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM document_types WHERE id = $1", id)
	if err != nil {
		// Checklist items reference the type by name, but prompts carry an
		// FK on document_types for cleanup.
		if strings.Contains(err.Error(), "violates foreign key") {
			return domain.ErrDocumentTypeInUse
		}
		return fmt.Errorf("docTypeRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
