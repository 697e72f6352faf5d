package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bagdasarian/docspace-access/internal/domain"
	"github.com/bagdasarian/docspace-access/internal/repository"
)

type membershipRepository struct {
	db       *sql.DB
	executor DBExecutor
}

func NewMembershipRepository(db *sql.DB) *membershipRepository {
	return &membershipRepository{db: db, executor: db}
}

func NewMembershipRepositoryWithTx(tx *sql.Tx) *membershipRepository {
	return &membershipRepository{executor: tx}
}

func (r *membershipRepository) Get(ctx context.Context, scope domain.Scope, scopeID, userID string) (*domain.Membership, error) {
	table, column, err := membershipTable(scope)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT role, created_at, updated_at
		FROM %s
		WHERE %s = $1 AND user_id = $2
	`, table, column)

	membership := &domain.Membership{Scope: scope, ScopeID: scopeID, UserID: userID}
	var role string
	var updatedAt sql.NullTime
	err = r.executor.QueryRowContext(ctx, query, scopeID, userID).Scan(&role, &membership.CreatedAt, &updatedAt)
	if err != nil {
		return nil, translateError(err)
	}

	membership.Role = domain.Role(role)
	membership.UpdatedAt = nullableTime(updatedAt)

	return membership, nil
}

func (r *membershipRepository) ListMembers(ctx context.Context, scope domain.Scope, scopeID string) ([]*domain.Member, error) {
	table, column, err := membershipTable(scope)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT m.user_id, m.role, m.created_at, m.updated_at, u.name, u.email, u.email_opt_out
		FROM %s m
		JOIN users u ON u.id = m.user_id
		WHERE m.%s = $1
		ORDER BY m.created_at, m.user_id
	`, table, column)

	rows, err := r.executor.QueryContext(ctx, query, scopeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []*domain.Member
	for rows.Next() {
		member := &domain.Member{}
		var role string
		var updatedAt sql.NullTime
		var name sql.NullString
		err := rows.Scan(
			&member.UserID,
			&role,
			&member.CreatedAt,
			&updatedAt,
			&name,
			&member.User.Email,
			&member.User.EmailOptOut,
		)
		if err != nil {
			return nil, err
		}
		member.Scope = scope
		member.ScopeID = scopeID
		member.Role = domain.Role(role)
		member.UpdatedAt = nullableTime(updatedAt)
		member.User.ID = member.UserID
		if name.Valid {
			member.User.Name = name.String
		}
		members = append(members, member)
	}

	return members, rows.Err()
}

func (r *membershipRepository) ListForUpdate(ctx context.Context, scope domain.Scope, scopeID string) ([]*domain.Membership, error) {
	table, column, err := membershipTable(scope)
	if err != nil {
		return nil, err
	}

	// Порядок по user_id дает одинаковый порядок захвата блокировок во всех транзакциях
	query := fmt.Sprintf(`
		SELECT user_id, role, created_at, updated_at
		FROM %s
		WHERE %s = $1
		ORDER BY user_id
		FOR UPDATE
	`, table, column)

	rows, err := r.executor.QueryContext(ctx, query, scopeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var memberships []*domain.Membership
	for rows.Next() {
		membership := &domain.Membership{Scope: scope, ScopeID: scopeID}
		var role string
		var updatedAt sql.NullTime
		if err := rows.Scan(&membership.UserID, &role, &membership.CreatedAt, &updatedAt); err != nil {
			return nil, err
		}
		membership.Role = domain.Role(role)
		membership.UpdatedAt = nullableTime(updatedAt)
		memberships = append(memberships, membership)
	}

	return memberships, rows.Err()
}

func (r *membershipRepository) Create(ctx context.Context, membership *domain.Membership) error {
	table, column, err := membershipTable(membership.Scope)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, user_id, role, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`, table, column)

	err = r.executor.QueryRowContext(
		ctx,
		query,
		membership.ScopeID,
		membership.UserID,
		string(membership.Role),
		time.Now(),
	).Scan(&membership.CreatedAt)
	if err != nil {
		return translateError(err)
	}

	membership.UpdatedAt = nil

	return nil
}

func (r *membershipRepository) UpdateRole(ctx context.Context, scope domain.Scope, scopeID, userID string, role domain.Role) (*domain.Membership, error) {
	table, column, err := membershipTable(scope)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET role = $3, updated_at = $4
		WHERE %s = $1 AND user_id = $2
		RETURNING created_at, updated_at
	`, table, column)

	membership := &domain.Membership{Scope: scope, ScopeID: scopeID, UserID: userID, Role: role}
	var updatedAt sql.NullTime
	err = r.executor.QueryRowContext(ctx, query, scopeID, userID, string(role), time.Now()).
		Scan(&membership.CreatedAt, &updatedAt)
	if err != nil {
		return nil, translateError(err)
	}

	membership.UpdatedAt = nullableTime(updatedAt)

	return membership, nil
}

func (r *membershipRepository) Delete(ctx context.Context, scope domain.Scope, scopeID, userID string) error {
	table, column, err := membershipTable(scope)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND user_id = $2`, table, column)

	result, err := r.executor.ExecContext(ctx, query, scopeID, userID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// WithinTx открывает транзакцию. Внутри уже открытой транзакции fn выполняется в ней же.
func (r *membershipRepository) WithinTx(ctx context.Context, fn func(ctx context.Context, repo repository.MembershipRepository) error) error {
	if r.db == nil {
		return fn(ctx, r)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(ctx, NewMembershipRepositoryWithTx(tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
