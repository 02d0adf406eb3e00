package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/LucaLemos/GestaoInformacaoBackend/internal/apperror"
	"github.com/LucaLemos/GestaoInformacaoBackend/internal/model"
	"github.com/LucaLemos/GestaoInformacaoBackend/internal/repository"
)

// compile-time check that *DB implements repository.UserRepository
var _ repository.UserRepository = (*DB)(nil)

const uniqueViolation = "23505"

// Register inserts a new user inside a transaction. The pre-insert lookup
// exists to return a friendly conflict message; the UNIQUE constraint on
// username is the actual uniqueness guarantee under concurrent registration,
// so a constraint violation on insert maps to the same conflict error.
func (db *DB) Register(ctx context.Context, username, password string) (*model.User, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("postgres: beginning registration tx: %w", err)
	}
	defer tx.Rollback() // no-op once committed

	var existingID int64
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM users WHERE username = $1`, username,
	).Scan(&existingID)
	if err == nil {
		return nil, apperror.Conflict("username already taken")
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("postgres: checking username %q: %w", username, err)
	}

	var u model.User
	err = tx.QueryRowContext(ctx,
		`INSERT INTO users (username, password) VALUES ($1, $2)
		 RETURNING id, username, created_at`,
		username, password,
	).Scan(&u.ID, &u.Username, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			// Lost the race against a concurrent registration.
			return nil, apperror.Conflict("username already taken")
		}
		return nil, fmt.Errorf("postgres: inserting user %q: %w", username, err)
	}
	u.Password = password

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("postgres: committing registration: %w", err)
	}
	return &u, nil
}

// GetByUsername fetches a user by (already lowercased) username.
// Returns apperror.ErrNotFound if no such user exists.
func (db *DB) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, username, password, created_at FROM users WHERE username = $1`,
		username,
	).Scan(&u.ID, &u.Username, &u.Password, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("user", username)
		}
		return nil, fmt.Errorf("postgres: getting user %q: %w", username, err)
	}
	return &u, nil
}
