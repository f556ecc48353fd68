package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"crmsales/internal/model"
)

// TokenRepo persists issued bearer tokens. Rows accumulate: expired
// tokens stay in the table and are simply rejected by Lookup callers.
type TokenRepo struct{ DB *sql.DB }

func NewTokenRepo(db *sql.DB) *TokenRepo { return &TokenRepo{DB: db} }

// Store inserts a token row for a user with its expiry.
func (r *TokenRepo) Store(ctx context.Context, userID uint64, token string, exp time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO tokens (user_id, token, expires_at) VALUES (?,?,?)",
		userID, token, exp)
	return err
}

// Lookup returns the stored row for an exact token string, or
// ErrTokenNotFound when the token was never issued. Expiry is not
// checked here; the session middleware owns that decision so it can
// distinguish "expired" from "unknown".
func (r *TokenRepo) Lookup(ctx context.Context, token string) (model.Token, error) {
	var t model.Token
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, user_id, token, expires_at, created_at FROM tokens WHERE token=? LIMIT 1",
		token).Scan(&t.ID, &t.UserID, &t.Token, &t.ExpiresAt, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Token{}, ErrTokenNotFound
	}
	return t, err
}
