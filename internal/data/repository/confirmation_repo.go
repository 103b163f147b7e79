package repository

import (
	"context"
	"fmt"

	"yamdb-api/internal/data/entity"
	"yamdb-api/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ConfirmationRepository interface {
	Create(ctx context.Context, confirmation *entity.Confirmation) error
	// FindActiveByUserID returns the newest unused, unexpired confirmation
	FindActiveByUserID(ctx context.Context, userID uuid.UUID) (*entity.Confirmation, error)
	MarkAsUsed(ctx context.Context, id uuid.UUID) error
}

type confirmationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewConfirmationRepository(db database.PgxIface, log *zap.Logger) ConfirmationRepository {
	return &confirmationRepository{
		db:  db,
		log: log.With(zap.String("repository", "confirmation")),
	}
}

func (r *confirmationRepository) Create(ctx context.Context, confirmation *entity.Confirmation) error {
	query := `
		INSERT INTO confirmations (id, user_id, code_hash, expires_at, is_used, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		confirmation.ID,
		confirmation.UserID,
		confirmation.CodeHash,
		confirmation.ExpiresAt,
		confirmation.IsUsed,
		confirmation.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create confirmation",
			zap.Error(err),
			zap.String("user_id", confirmation.UserID.String()),
		)
		return fmt.Errorf("create confirmation for user %s: %w", confirmation.UserID.String(), err)
	}

	return nil
}

func (r *confirmationRepository) FindActiveByUserID(ctx context.Context, userID uuid.UUID) (*entity.Confirmation, error) {
	query := `
		SELECT id, user_id, code_hash, expires_at, is_used, created_at
		FROM confirmations
		WHERE user_id = $1 AND is_used = FALSE AND expires_at > NOW()
		ORDER BY created_at DESC
		LIMIT 1
	`

	var confirmation entity.Confirmation
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&confirmation.ID,
		&confirmation.UserID,
		&confirmation.CodeHash,
		&confirmation.ExpiresAt,
		&confirmation.IsUsed,
		&confirmation.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find active confirmation",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find active confirmation for user %s: %w", userID.String(), err)
	}

	return &confirmation, nil
}

func (r *confirmationRepository) MarkAsUsed(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE confirmations SET is_used = TRUE WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to mark confirmation as used",
			zap.Error(err),
			zap.String("confirmation_id", id.String()),
		)
		return fmt.Errorf("mark confirmation %s as used: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("confirmation %s not found", id.String())
	}

	return nil
}
