//go:build integration
// +build integration

package integration

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupTestDB(t *testing.T) *sql.DB {
	ctx := context.Background()

	// Создаём контейнер Postgres через testcontainers
	postgresContainer, err := postgres.Run(ctx,
		"postgres:17.7",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err)

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("pgx", connStr)
	require.NoError(t, err)
	require.NoError(t, db.Ping())

	applyMigrations(t, db)

	t.Cleanup(func() {
		db.Close()
		require.NoError(t, postgresContainer.Terminate(ctx))
	})

	return db
}

func applyMigrations(t *testing.T, db *sql.DB) {
	var migrationSQL []byte
	var err error

	paths := []string{
		filepath.Join("..", "..", "migrations", "000001_init.up.sql"),
		filepath.Join("migrations", "000001_init.up.sql"),
		filepath.Join("..", "migrations", "000001_init.up.sql"),
	}

	for _, path := range paths {
		migrationSQL, err = os.ReadFile(path)
		if err == nil {
			break
		}
	}
	require.NoError(t, err, "не удалось прочитать файл миграции. Проверьте, что файл migrations/000001_init.up.sql существует")

	_, err = db.Exec(string(migrationSQL))
	require.NoError(t, err, "не удалось применить миграцию")
}

// seedUser создаёт пользователя и возвращает его ID
func seedUser(t *testing.T, db *sql.DB, name, email string) string {
	id := uuid.NewString()
	_, err := db.Exec(`INSERT INTO users (id, name, email) VALUES ($1, NULLIF($2, ''), $3)`, id, name, email)
	require.NoError(t, err)
	return id
}

func seedTeam(t *testing.T, db *sql.DB, name string) string {
	id := uuid.NewString()
	_, err := db.Exec(`INSERT INTO teams (id, name) VALUES ($1, $2)`, id, name)
	require.NoError(t, err)
	return id
}

func seedProject(t *testing.T, db *sql.DB, teamID, name string) string {
	id := uuid.NewString()
	_, err := db.Exec(`INSERT INTO projects (id, team_id, name) VALUES ($1, $2, $3)`, id, teamID, name)
	require.NoError(t, err)
	return id
}

// seedMember добавляет членство напрямую, в обход проверок доступа
func seedMember(t *testing.T, db *sql.DB, table, column, scopeID, userID, role string) {
	_, err := db.Exec(
		`INSERT INTO `+table+` (`+column+`, user_id, role) VALUES ($1, $2, $3)`,
		scopeID, userID, role,
	)
	require.NoError(t, err)
}

func countNotifications(t *testing.T, db *sql.DB, userID, notificationType string) int {
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND type = $2`, userID, notificationType).Scan(&count)
	require.NoError(t, err)
	return count
}

func countActivities(t *testing.T, db *sql.DB, scopeID, action string) int {
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM activity_logs WHERE scope_id = $1 AND action = $2`, scopeID, action).Scan(&count)
	require.NoError(t, err)
	return count
}
