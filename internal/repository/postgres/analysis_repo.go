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

type analysisRepo struct {
	db *sqlx.DB
}

// NewAnalysisRepo creates a new PostgreSQL-backed AnalysisRepository.
func NewAnalysisRepo(db *sqlx.DB) port.AnalysisRepository {
	return &analysisRepo{db: db}
}

// Create inserts the analysis and its checklist items in one transaction.
func (r *analysisRepo) Create(ctx context.Context, analysis *domain.Analysis) error {
	if analysis.ID == uuid.Nil {
		analysis.ID = uuid.New()
	}
	now := time.Now().UTC()
	analysis.CreatedAt = now
	analysis.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("analysisRepo.Create: beginning tx: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO analyses (id, user_id, person_name, user_data, overall_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err = tx.ExecContext(ctx, query,
		analysis.ID, analysis.UserID, analysis.PersonName, analysis.UserData,
		analysis.OverallStatus, analysis.CreatedAt, analysis.UpdatedAt)
	if err != nil {
		return fmt.Errorf("analysisRepo.Create: %w", err)
	}

	itemQuery := `INSERT INTO checklist_items (id, analysis_id, document_type, position, file_id, status, result, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for i := range analysis.Checklist {
		item := &analysis.Checklist[i]
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		item.AnalysisID = analysis.ID
		item.UpdatedAt = now
		_, err = tx.ExecContext(ctx, itemQuery,
			item.ID, item.AnalysisID, item.DocumentType, item.Position,
			item.FileID, item.Status, item.Result, item.UpdatedAt)
		if err != nil {
			return fmt.Errorf("analysisRepo.Create: inserting item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("analysisRepo.Create: committing: %w", err)
	}
	return nil
}

func (r *analysisRepo) GetByID(ctx context.Context, userID, analysisID uuid.UUID) (*domain.Analysis, error) {
	var analysis domain.Analysis
	err := r.db.GetContext(ctx, &analysis,
		"SELECT * FROM analyses WHERE id = $1 AND user_id = $2", analysisID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAnalysisNotFound
		}
		return nil, fmt.Errorf("analysisRepo.GetByID: %w", err)
	}

	items, err := r.ListItems(ctx, analysisID)
	if err != nil {
		return nil, err
	}
	analysis.Checklist = items
	return &analysis, nil
}

func (r *analysisRepo) ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Analysis, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM analyses WHERE user_id = $1", userID)
	if err != nil {
		return nil, 0, fmt.Errorf("analysisRepo.ListByUser count: %w", err)
	}

	var analyses []domain.Analysis
	err = r.db.SelectContext(ctx, &analyses,
		"SELECT * FROM analyses WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3",
		userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("analysisRepo.ListByUser: %w", err)
	}

	for i := range analyses {
		items, err := r.ListItems(ctx, analyses[i].ID)
		if err != nil {
			return nil, 0, err
		}
		analyses[i].Checklist = items
	}
	return analyses, total, nil
}

func (r *analysisRepo) UpdateUserData(ctx context.Context, analysis *domain.Analysis) error {
	analysis.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE analyses SET person_name = $1, user_data = $2, updated_at = $3
		WHERE id = $4 AND user_id = $5`,
		analysis.PersonName, analysis.UserData, analysis.UpdatedAt,
		analysis.ID, analysis.UserID)
	if err != nil {
		return fmt.Errorf("analysisRepo.UpdateUserData: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrAnalysisNotFound
	}
	return nil
}

func (r *analysisRepo) UpdateOverallStatus(ctx context.Context, analysisID uuid.UUID, status domain.OverallStatus) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE analyses SET overall_status = $1, updated_at = $2 WHERE id = $3",
		status, time.Now().UTC(), analysisID)
	if err != nil {
		return fmt.Errorf("analysisRepo.UpdateOverallStatus: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrAnalysisNotFound
	}
	return nil
}

// Delete removes the analysis; checklist items and file metadata go with it
// via ON DELETE CASCADE.
func (r *analysisRepo) Delete(ctx context.Context, userID, analysisID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM analyses WHERE id = $1 AND user_id = $2", analysisID, userID)
	if err != nil {
		return fmt.Errorf("analysisRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrAnalysisNotFound
	}
	return nil
}

func (r *analysisRepo) GetItem(ctx context.Context, analysisID, itemID uuid.UUID) (*domain.ChecklistItem, error) {
	var item domain.ChecklistItem
	err := r.db.GetContext(ctx, &item,
		"SELECT * FROM checklist_items WHERE id = $1 AND analysis_id = $2", itemID, analysisID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("analysisRepo.GetItem: %w", err)
	}
	return &item, nil
}

func (r *analysisRepo) ListItems(ctx context.Context, analysisID uuid.UUID) ([]domain.ChecklistItem, error) {
	var items []domain.ChecklistItem
	err := r.db.SelectContext(ctx, &items,
		"SELECT * FROM checklist_items WHERE analysis_id = $1 ORDER BY position", analysisID)
	if err != nil {
		return nil, fmt.Errorf("analysisRepo.ListItems: %w", err)
	}
	return items, nil
}

func (r *analysisRepo) UpdateItem(ctx context.Context, item *domain.ChecklistItem) error {
	item.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE checklist_items SET file_id = $1, status = $2, result = $3, updated_at = $4
		WHERE id = $5 AND analysis_id = $6`,
		item.FileID, item.Status, item.Result, item.UpdatedAt, item.ID, item.AnalysisID)
	if err != nil {
		return fmt.Errorf("analysisRepo.UpdateItem: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}
