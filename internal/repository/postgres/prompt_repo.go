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

type promptRepo struct {
	db *sqlx.DB
}

// NewPromptRepo creates a new PostgreSQL-backed PromptRepository.
func NewPromptRepo(db *sqlx.DB) port.PromptRepository {
	return &promptRepo{db: db}
}

func (r *promptRepo) Upsert(ctx context.Context, prompt *domain.PromptTemplate) error {
	if prompt.ID == uuid.Nil {
		prompt.ID = uuid.New()
	}
	prompt.UpdatedAt = time.Now().UTC()

	query := `INSERT INTO prompts (id, user_id, document_type, template, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, document_type)
		DO UPDATE SET template = EXCLUDED.template, updated_at = EXCLUDED.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		prompt.ID, prompt.UserID, prompt.DocumentType, prompt.Template, prompt.UpdatedAt)
	if err != nil {
		return fmt.Errorf("promptRepo.Upsert: %w", err)
	}
	return nil
}

func (r *promptRepo) GetByDocumentType(ctx context.Context, userID uuid.UUID, documentType string) (*domain.PromptTemplate, error) {
	var prompt domain.PromptTemplate
	err := r.db.GetContext(ctx, &prompt,
		"SELECT * FROM prompts WHERE user_id = $1 AND document_type = $2", userID, documentType)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("promptRepo.GetByDocumentType: %w", err)
	}
	return &prompt, nil
}

func (r *promptRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.PromptTemplate, error) {
	var prompts []domain.PromptTemplate
	err := r.db.SelectContext(ctx, &prompts,
		"SELECT * FROM prompts WHERE user_id = $1 ORDER BY document_type", userID)
	if err != nil {
		return nil, fmt.Errorf("promptRepo.ListByUser: %w", err)
	}
	return prompts, nil
}

func (r *promptRepo) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM prompts WHERE user_id = $1", userID)
	if err != nil {
		return fmt.Errorf("promptRepo.DeleteByUser: %w", err)
	}
	return nil
}
