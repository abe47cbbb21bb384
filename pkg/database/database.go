package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"

	"stockcast/pkg/config"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var embedMigrations embed.FS

// DB wraps the sql.DB handle together with the active dialect.
// The same repositories run against PostgreSQL (DATABASE_URL) or the
// embedded SQLite file, so everything speaks database/sql here.
type DB struct {
	SQL     *sql.DB
	Dialect string
}

// New opens the configured storage backend and runs pending migrations.
func New(cfg *config.Config) (*DB, error) {
	var (
		conn    *sql.DB
		dialect string
		err     error
	)

	if cfg.UsesPostgres() {
		dialect = "postgres"
		conn, err = openPostgres(cfg)
	} else {
		dialect = "sqlite3"
		conn, err = openSQLite(cfg)
	}
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := migrate(conn, dialect); err != nil {
		conn.Close()
		return nil, err
	}

	return &DB{SQL: conn, Dialect: dialect}, nil
}

func openPostgres(cfg *config.Config) (*sql.DB, error) {
	conn, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	conn.SetMaxOpenConns(cfg.Database.MaxConns)
	conn.SetConnMaxIdleTime(cfg.Database.MaxConnIdleTime)
	return conn, nil
}

func openSQLite(cfg *config.Config) (*sql.DB, error) {
	path := cfg.Database.SQLitePath

	dsn := path + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"
	if path == ":memory:" {
		// A plain :memory: DSN gives every pooled connection its own
		// database; the shared cache keeps them on one.
		dsn = "file::memory:?cache=shared"
	} else if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}

	// SQLite handles one writer at a time.
	conn.SetMaxOpenConns(1)
	return conn, nil
}

// migrate runs the embedded goose migrations for the active dialect.
func migrate(conn *sql.DB, dialect string) error {
	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	dir := "migrations/postgres"
	if dialect == "sqlite3" {
		dir = "migrations/sqlite"
	}

	if err := goose.Up(conn, dir); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (db *DB) Close() {
	if db.SQL != nil {
		db.SQL.Close()
	}
}

// Ping checks if the database is accessible.
func (db *DB) Ping(ctx context.Context) error {
	return db.SQL.PingContext(ctx)
}
