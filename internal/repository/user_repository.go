package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tradesoncall/backend/internal/model"
)

// UserRepo persists users in the `users` table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "id,phone,email,password_hash,user_type,status,is_verified,created_at"

// Create inserts the user.  The caller supplies the ID and password hash.
// Uniqueness violations surface as ErrDuplicatePhone / ErrDuplicateEmail.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (id, phone, email, password_hash, user_type, status, is_verified, created_at) VALUES (?,?,?,?,?,?,?,?)",
		u.ID.String(), u.Phone, u.Email, u.PasswordHash, string(u.UserType), string(u.Status), u.IsVerified, u.CreatedAt)
	if err != nil {
		// MySQL error 1062 = duplicate entry; the message names the violated key.
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "1062") {
			if strings.Contains(msg, "uq_users_email") {
				return ErrDuplicateEmail
			}
			return ErrDuplicatePhone
		}
		return err
	}
	return nil
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	return r.getBy(ctx, "id", id.String())
}

// GetByPhone fetches a user by phone number.
func (r *UserRepo) GetByPhone(ctx context.Context, phone string) (model.User, error) {
	return r.getBy(ctx, "phone", phone)
}

// GetByEmail fetches a user by email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	return r.getBy(ctx, "email", email)
}

func (r *UserRepo) getBy(ctx context.Context, column, value string) (model.User, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE "+column+"=? LIMIT 1", value)
	return scanUser(row)
}

// ExistsByPhone reports whether a user with the phone number exists.
func (r *UserRepo) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	return r.exists(ctx, "phone", phone)
}

// ExistsByEmail reports whether a user with the email exists.
func (r *UserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "email", email)
}

func (r *UserRepo) exists(ctx context.Context, column, value string) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM users WHERE "+column+"=? LIMIT 1", value).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// UpdatePasswordHash replaces the stored password hash.
func (r *UserRepo) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET password_hash=? WHERE id=?", hash, id.String())
	return err
}

// MarkVerified flips is_verified and activates the account.
func (r *UserRepo) MarkVerified(ctx context.Context, id uuid.UUID) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET is_verified=1, status=? WHERE id=?",
		string(model.UserStatusActive), id.String())
	return err
}

// List returns all users ordered by creation time.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY created_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

type rowScanner interface{ Scan(dest ...any) error }

func scanUser(row rowScanner) (model.User, error) {
	var (
		u         model.User
		idStr     string
		email     sql.NullString
		userType  string
		status    string
		createdAt time.Time
	)
	err := row.Scan(&idStr, &u.Phone, &email, &u.PasswordHash, &userType, &status, &u.IsVerified, &createdAt)
	if err != nil {
		return model.User{}, err
	}
	u.ID, err = uuid.Parse(idStr)
	if err != nil {
		return model.User{}, err
	}
	if email.Valid {
		e := email.String
		u.Email = &e
	}
	u.UserType = model.UserType(userType)
	u.Status = model.UserStatus(status)
	u.CreatedAt = createdAt
	return u, nil
}
