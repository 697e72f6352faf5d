package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/bagdasarian/docspace-access/internal/domain"
	"github.com/google/uuid"
)

type notificationRepository struct {
	executor DBExecutor
	newID    func() string
}

func NewNotificationRepository(db *sql.DB) *notificationRepository {
	return &notificationRepository{executor: db, newID: uuid.NewString}
}

func (r *notificationRepository) Create(ctx context.Context, notification *domain.Notification) error {
	query := `
		INSERT INTO notifications (id, user_id, type, title, content, link, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, FALSE, $7)
		RETURNING created_at
	`

	id := r.newID()
	var link sql.NullString
	if notification.Link != "" {
		link = sql.NullString{String: notification.Link, Valid: true}
	}

	err := r.executor.QueryRowContext(
		ctx,
		query,
		id,
		notification.UserID,
		string(notification.Type),
		notification.Title,
		notification.Content,
		link,
		time.Now(),
	).Scan(&notification.CreatedAt)
	if err != nil {
		return translateError(err)
	}

	notification.ID = id
	notification.IsRead = false

	return nil
}
