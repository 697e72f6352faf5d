package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/bagdasarian/docspace-access/internal/domain"
)

type scopeRepository struct {
	executor DBExecutor
}

func NewScopeRepository(db *sql.DB) *scopeRepository {
	return &scopeRepository{executor: db}
}

func (r *scopeRepository) GetInfo(ctx context.Context, scope domain.Scope, scopeID string) (*domain.ScopeInfo, error) {
	info := &domain.ScopeInfo{Scope: scope, ID: scopeID}

	switch scope {
	case domain.ScopeTeam:
		query := `SELECT name FROM teams WHERE id = $1`
		if err := r.executor.QueryRowContext(ctx, query, scopeID).Scan(&info.Name); err != nil {
			return nil, translateError(err)
		}
		info.TeamName = info.Name
	case domain.ScopeProject:
		query := `
			SELECT p.name, t.name
			FROM projects p
			JOIN teams t ON t.id = p.team_id
			WHERE p.id = $1
		`
		if err := r.executor.QueryRowContext(ctx, query, scopeID).Scan(&info.Name, &info.TeamName); err != nil {
			return nil, translateError(err)
		}
	default:
		return nil, fmt.Errorf("unknown scope %q", scope)
	}

	return info, nil
}
