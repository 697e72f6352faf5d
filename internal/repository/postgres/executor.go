package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bagdasarian/docspace-access/internal/domain"
	"github.com/bagdasarian/docspace-access/internal/repository"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBExecutor позволяет репозиториям работать и с *sql.DB, и с *sql.Tx
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const (
	pgUniqueViolation           = "23505"
	pgForeignKeyViolation       = "23503"
	pgInvalidTextRepresentation = "22P02"
)

// translateError приводит ошибки драйвера к ошибкам пакета repository
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s", repository.ErrAlreadyExists, pgErr.ConstraintName)
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: %s", repository.ErrNotFound, pgErr.ConstraintName)
		case pgInvalidTextRepresentation:
			// ID не в формате UUID не может принадлежать ни одной строке
			return repository.ErrNotFound
		}
	}
	return err
}

// membershipTable возвращает таблицу членств и колонку идентификатора scope
func membershipTable(scope domain.Scope) (string, string, error) {
	switch scope {
	case domain.ScopeTeam:
		return "team_members", "team_id", nil
	case domain.ScopeProject:
		return "project_members", "project_id", nil
	default:
		return "", "", fmt.Errorf("unknown scope %q", scope)
	}
}

func nullableTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	return &t.Time
}
