package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
)

//go:embed migrations/*.sql
var migrations embed.FS

// AuthDB wraps the Postgres connection used by the identity service.
type AuthDB struct {
	DB  *sql.DB
	Log *zerolog.Logger
}

// NewAuthDB opens the database connection and verifies it with a ping.
func NewAuthDB(connStr string, log *zerolog.Logger) (*AuthDB, error) {
	if connStr == "" {
		log.Error().Msg("database connection string is not set")
		return nil, fmt.Errorf("database connection string is not set")
	}

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Error().Err(err).Msg("failed to open database connection")
		return nil, err
	}

	// Check we are actually connected
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		log.Error().Err(err).Msg("database connection failed during ping")
		return nil, err
	}

	return &AuthDB{DB: db, Log: log}, nil
}

func (d *AuthDB) Close() error {
	if err := d.DB.Close(); err != nil {
		return err
	}
	d.Log.Info().Msg("database connection closed")
	return nil
}

// Migrate runs the embedded goose migrations up to the latest version.
func (d *AuthDB) Migrate() error {
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("error setting goose dialect: %w", err)
	}

	if err := goose.Up(d.DB, "migrations"); err != nil {
		return fmt.Errorf("error running migrations: %w", err)
	}

	d.Log.Info().Msg("migrations applied")
	return nil
}
