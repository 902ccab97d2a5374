// Package sqlite implements repository.Store on a SQLite file, for
// deployments that want state to survive restarts. Cascading deletes are
// explicit multi-statement transactions, not FK triggers, so the delete
// semantics match the in-memory backend exactly.
package sqlite

import (
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/EzekielClervo/instagram/internal/repository"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Store wraps the SQLite connection. One connection only: SQLite does not
// support concurrent writers, and a single connection also keeps each cascade
// transaction serialized.
type Store struct {
	db *sqlx.DB
}

var _ repository.Store = (*Store)(nil)

// NewStore opens (or creates) the database under dataDir and applies
// migrations.
func NewStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "igboost.db")

	sqlDB, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := runMigrations(sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	db := sqlx.NewDb(sqlDB, "sqlite3")
	db.SetMaxOpenConns(1)

	return &Store{db: db}, nil
}

func runMigrations(db *sql.DB) error {
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
