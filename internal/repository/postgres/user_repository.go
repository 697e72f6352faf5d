package postgres

import (
	"context"
	"database/sql"

	"github.com/bagdasarian/docspace-access/internal/domain"
)

type userRepository struct {
	executor DBExecutor
}

func NewUserRepository(db *sql.DB) *userRepository {
	return &userRepository{executor: db}
}

func NewUserRepositoryWithTx(tx *sql.Tx) *userRepository {
	return &userRepository{executor: tx}
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.Principal, error) {
	query := `
		SELECT id, name, email, email_opt_out, created_at
		FROM users
		WHERE id = $1
	`

	user := &domain.Principal{}
	var name sql.NullString
	err := r.executor.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&name,
		&user.Email,
		&user.EmailOptOut,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, translateError(err)
	}

	if name.Valid {
		user.Name = name.String
	}

	return user, nil
}
