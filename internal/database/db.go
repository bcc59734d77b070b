package database

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"scentstock/internal/config"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// New opens a PostgreSQL connection pool and verifies it with a ping.
// The handle is process-wide; each catalog operation is a single atomic
// statement, so no additional locking is layered on top.
func New(cfg config.DatabaseConfig) (*sql.DB, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable&search_path=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database, cfg.Schema,
	)

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	return db, nil
}

// Health returns a snapshot of the connection pool state
func Health(db *sql.DB) map[string]string {
	stats := db.Stats()

	status := "ok"
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		status = "down: " + err.Error()
	}

	return map[string]string{
		"status":           status,
		"open_connections": strconv.Itoa(stats.OpenConnections),
		"in_use":           strconv.Itoa(stats.InUse),
		"idle":             strconv.Itoa(stats.Idle),
	}
}
