package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tradesoncall/backend/internal/model"
)

// TokenRepo persists refresh tokens with the invariant of at most one row
// per user.  The token column stores the exact string handed to the client;
// while a row exists its string is also the deny-list entry checked by the
// auth gate.
type TokenRepo struct{ DB *sql.DB }

func NewTokenRepo(db *sql.DB) *TokenRepo { return &TokenRepo{DB: db} }

// Put inserts a refresh token row.  Callers must have removed any existing
// row for the user first; a uniqueness violation surfaces as
// ErrDuplicateToken.
func (r *TokenRepo) Put(ctx context.Context, rec model.RefreshToken) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO refresh_tokens (id, user_id, token, expires_at) VALUES (?,?,?,?)",
		rec.ID.String(), rec.UserID.String(), rec.Token, rec.ExpiresAt)
	if err != nil && strings.Contains(strings.ToLower(err.Error()), "1062") {
		return ErrDuplicateToken
	}
	return err
}

// Replace atomically swaps the user's refresh token: the delete-then-insert
// pair runs in one transaction so two concurrent logins for the same user
// leave exactly one row, never zero or two.
func (r *TokenRepo) Replace(ctx context.Context, rec model.RefreshToken) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM refresh_tokens WHERE user_id=?", rec.UserID.String()); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO refresh_tokens (id, user_id, token, expires_at) VALUES (?,?,?,?)",
		rec.ID.String(), rec.UserID.String(), rec.Token, rec.ExpiresAt); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrDuplicateToken
		}
		return err
	}
	return tx.Commit()
}

// FindByToken returns the record holding the exact token string.
func (r *TokenRepo) FindByToken(ctx context.Context, token string) (model.RefreshToken, error) {
	var (
		rec       model.RefreshToken
		idStr     string
		userIDStr string
		expiresAt time.Time
	)
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, user_id, token, expires_at FROM refresh_tokens WHERE token=? LIMIT 1",
		token).Scan(&idStr, &userIDStr, &rec.Token, &expiresAt)
	if err != nil {
		return model.RefreshToken{}, err
	}
	rec.ID, err = uuid.Parse(idStr)
	if err != nil {
		return model.RefreshToken{}, err
	}
	rec.UserID, err = uuid.Parse(userIDStr)
	if err != nil {
		return model.RefreshToken{}, err
	}
	rec.ExpiresAt = expiresAt
	return rec, nil
}

// ExistsByToken reports whether the exact token string is stored.  This is
// the deny-list check performed on every authenticated request.
func (r *TokenRepo) ExistsByToken(ctx context.Context, token string) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM refresh_tokens WHERE token=? LIMIT 1", token).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ExistsByUserID reports whether the user has an outstanding refresh token.
func (r *TokenRepo) ExistsByUserID(ctx context.Context, userID uuid.UUID) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM refresh_tokens WHERE user_id=? LIMIT 1", userID.String()).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// DeleteByUserID removes the user's refresh token row if present.  It is
// idempotent and reports whether a row was affected.
func (r *TokenRepo) DeleteByUserID(ctx context.Context, userID uuid.UUID) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM refresh_tokens WHERE user_id=?", userID.String())
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// DeleteByToken removes the row holding the exact token string.  Idempotent.
func (r *TokenRepo) DeleteByToken(ctx context.Context, token string) error {
	_, err := r.DB.ExecContext(ctx,
		"DELETE FROM refresh_tokens WHERE token=?", token)
	return err
}
