// Package postgres implements the repository interfaces over PostgreSQL.
//
// The pgx driver is registered through its database/sql adapter, so the
// repositories use the standard *sql.DB pool. Positional parameters are
// numbered ($1, $2, ...) and values only ever travel as bound parameters,
// never concatenated into SQL text.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	// Registers the "pgx" driver with database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// DB wraps the connection pool and implements the repository interfaces.
type DB struct {
	conn *sql.DB
}

// New wraps an existing pool. Used by tests to inject a mock connection.
func New(conn *sql.DB) *DB {
	return &DB{conn: conn}
}

// Open connects to PostgreSQL, verifies the connection and runs the schema
// migrations. The DSN carries the sslmode chosen by the config layer.
func Open(ctx context.Context, dsn string) (*DB, error) {
	conn, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: opening pool: %w", err)
	}

	conn.SetMaxOpenConns(25)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("postgres: pinging database: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("postgres: running migrations: %w", err)
	}

	return db, nil
}

// Close releases the connection pool. Deferred by the server so in-flight
// connections are returned before process exit.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the schema. All statements are idempotent, so running them
// on every start is safe. The two species source tables are created empty
// here and populated by external data loads.
func (db *DB) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id         BIGSERIAL PRIMARY KEY,
			username   TEXT NOT NULL UNIQUE,
			password   TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS plantas (
			id              BIGSERIAL PRIMARY KEY,
			nome_cientifico TEXT,
			nome_popular    TEXT,
			latitude        DOUBLE PRECISION NOT NULL,
			longitude       DOUBLE PRECISION NOT NULL,
			detalhes        TEXT,
			data_plantio    DATE,
			fonte           TEXT,
			usuario_id      BIGINT REFERENCES users(id),
			created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
			CHECK (nome_cientifico IS NOT NULL OR nome_popular IS NOT NULL)
		)`,
		`CREATE TABLE IF NOT EXISTS comentarios (
			id         BIGSERIAL PRIMARY KEY,
			planta_id  BIGINT NOT NULL REFERENCES plantas(id),
			usuario_id BIGINT NOT NULL REFERENCES users(id),
			texto      TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS arvores_tombadas (
			id              BIGSERIAL PRIMARY KEY,
			nome_popular    TEXT,
			nome_cientifico TEXT,
			familia         TEXT,
			latitude        DOUBLE PRECISION,
			longitude       DOUBLE PRECISION,
			rpa             INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS censo_arvores (
			id              BIGSERIAL PRIMARY KEY,
			nome_popular    TEXT,
			nome_cientifico TEXT,
			lat             DOUBLE PRECISION,
			lng             DOUBLE PRECISION,
			altura          DOUBLE PRECISION,
			dap             DOUBLE PRECISION,
			rpa             INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS rooms (
			id          BIGSERIAL PRIMARY KEY,
			name        TEXT NOT NULL,
			description TEXT,
			creator_id  BIGINT NOT NULL REFERENCES users(id),
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS room_members (
			room_id   BIGINT NOT NULL REFERENCES rooms(id),
			user_id   BIGINT NOT NULL REFERENCES users(id),
			joined_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (room_id, user_id)
		)`,
		`CREATE TABLE IF NOT EXISTS messages (
			id         BIGSERIAL PRIMARY KEY,
			room_id    BIGINT NOT NULL REFERENCES rooms(id),
			sender_id  BIGINT NOT NULL REFERENCES users(id),
			content    TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_comentarios_planta_id ON comentarios(planta_id)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_room_id ON messages(room_id, created_at)`,
	}

	for _, stmt := range stmts {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("executing migration: %w", err)
		}
	}
	return nil
}
