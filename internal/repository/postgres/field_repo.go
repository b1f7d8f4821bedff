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

type fieldRepo struct {
	db *sqlx.DB
}

// NewUserDataFieldRepo creates a new PostgreSQL-backed UserDataFieldRepository.
func NewUserDataFieldRepo(db *sqlx.DB) port.UserDataFieldRepository {
	return &fieldRepo{db: db}
}

func (r *fieldRepo) Create(ctx context.Context, field *domain.UserDataField) error {
	if field.ID == uuid.Nil {
		field.ID = uuid.New()
	}
	field.CreatedAt = time.Now().UTC()

	query := `INSERT INTO user_data_fields (id, key, label, type, validation, is_protected, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query,
		field.ID, field.Key, field.Label, field.Type, field.Validation,
		field.IsProtected, field.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrDuplicateField
		}
		return fmt.Errorf("fieldRepo.Create: %w", err)
	}
	return nil
}

func (r *fieldRepo) GetByKey(ctx context.Context, key string) (*domain.UserDataField, error) {
	var field domain.UserDataField
	err := r.db.GetContext(ctx, &field, "SELECT * FROM user_data_fields WHERE key = $1", key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("fieldRepo.GetByKey: %w", err)
	}
	return &field, nil
}

func (r *fieldRepo) List(ctx context.Context) ([]domain.UserDataField, error) {
	var fields []domain.UserDataField
	err := r.db.SelectContext(ctx, &fields, "SELECT * FROM user_data_fields ORDER BY created_at, key")
	if err != nil {
		return nil, fmt.Errorf("fieldRepo.List: %w", err)
	}
	return fields, nil
}

func (r *fieldRepo) Delete(ctx context.Context, key string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM user_data_fields WHERE key = $1", key)
	if err != nil {
		return fmt.Errorf("fieldRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
