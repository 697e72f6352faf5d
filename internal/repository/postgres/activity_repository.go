package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/bagdasarian/docspace-access/internal/domain"
	"github.com/google/uuid"
)

type activityRepository struct {
	executor DBExecutor
	newID    func() string
}

func NewActivityRepository(db *sql.DB) *activityRepository {
	return &activityRepository{executor: db, newID: uuid.NewString}
}

func (r *activityRepository) Create(ctx context.Context, activity *domain.Activity) error {
	query := `
		INSERT INTO activity_logs (id, scope, scope_id, file_id, user_id, action, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`

	id := r.newID()
	var fileID sql.NullString
	if activity.FileID != "" {
		fileID = sql.NullString{String: activity.FileID, Valid: true}
	}

	err := r.executor.QueryRowContext(
		ctx,
		query,
		id,
		string(activity.Scope),
		activity.ScopeID,
		fileID,
		activity.UserID,
		string(activity.Action),
		activity.Details,
		time.Now(),
	).Scan(&activity.CreatedAt)
	if err != nil {
		return translateError(err)
	}

	activity.ID = id

	return nil
}
