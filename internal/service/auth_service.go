// Package service holds the business logic orchestrating repositories,
// token codec and upstream clients.  Dependencies are consumed through
// small interfaces so tests can substitute fakes without a database.
package service

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tradesoncall/backend/internal/apperr"
	"github.com/tradesoncall/backend/internal/model"
	"github.com/tradesoncall/backend/internal/repository"
	"github.com/tradesoncall/backend/internal/utils"
)

// UserStore is the subset of the user repository the auth service needs.
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByID(ctx context.Context, id uuid.UUID) (model.User, error)
	GetByPhone(ctx context.Context, phone string) (model.User, error)
	ExistsByPhone(ctx context.Context, phone string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error
}

// TokenStore is the subset of the refresh-token repository the auth service
// needs.  Replace must run its delete-then-insert pair as a serialized unit.
type TokenStore interface {
	Replace(ctx context.Context, rec model.RefreshToken) error
	FindByToken(ctx context.Context, token string) (model.RefreshToken, error)
	ExistsByUserID(ctx context.Context, userID uuid.UUID) (bool, error)
	DeleteByUserID(ctx context.Context, userID uuid.UUID) (bool, error)
	DeleteByToken(ctx context.Context, token string) error
}

// phoneRe matches E.164 phone numbers.
var phoneRe = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)

// passwordSpecials are the characters accepted as "special" by the password
// complexity rule.
const passwordSpecials = "@#$%^&+=!"

// TokenPair is an issued access/refresh pair.  ExpiresIn is the access
// token lifetime in seconds.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// RegisterInput carries a registration request into the service.
type RegisterInput struct {
	Phone    string
	Email    *string
	Password string
	UserType model.UserType
}

// AuthService implements registration, login, refresh rotation, logout and
// password changes.
type AuthService struct {
	users      UserStore
	tokens     TokenStore
	codec      *utils.TokenCodec
	bcryptCost int
	log        *zap.Logger
}

func NewAuthService(users UserStore, tokens TokenStore, codec *utils.TokenCodec, bcryptCost int, log *zap.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, codec: codec, bcryptCost: bcryptCost, log: log}
}

// Register creates a PENDING, unverified user after checking phone/email
// uniqueness.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (model.User, error) {
	in.Phone = strings.TrimSpace(in.Phone)
	if !phoneRe.MatchString(in.Phone) {
		return model.User{}, apperr.Validation("Invalid phone number format")
	}
	if len(in.Password) < 8 {
		return model.User{}, apperr.Validation("Password must be at least 8 characters")
	}
	if !in.UserType.Valid() {
		return model.User{}, apperr.Validation("User type must be CUSTOMER or TRADESPERSON")
	}

	if exists, err := s.users.ExistsByPhone(ctx, in.Phone); err != nil {
		return model.User{}, err
	} else if exists {
		return model.User{}, apperr.Duplicate("User", "phone", in.Phone)
	}
	if in.Email != nil {
		if exists, err := s.users.ExistsByEmail(ctx, *in.Email); err != nil {
			return model.User{}, err
		} else if exists {
			return model.User{}, apperr.Duplicate("User", "email", *in.Email)
		}
	}

	hash, err := utils.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return model.User{}, err
	}

	user := model.User{
		ID:           uuid.New(),
		Phone:        in.Phone,
		Email:        in.Email,
		PasswordHash: hash,
		UserType:     in.UserType,
		Status:       model.UserStatusPending,
		IsVerified:   false,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(ctx, &user); err != nil {
		// The uniqueness constraints back the existence checks above under
		// concurrent registration.
		switch {
		case errors.Is(err, repository.ErrDuplicatePhone):
			return model.User{}, apperr.Duplicate("User", "phone", in.Phone)
		case errors.Is(err, repository.ErrDuplicateEmail):
			return model.User{}, apperr.Duplicate("User", "email", user.EmailOrEmpty())
		}
		return model.User{}, err
	}
	return user, nil
}

// Login authenticates by phone and password and issues a fresh token pair.
// The new refresh token supersedes any outstanding one for the user.
func (s *AuthService) Login(ctx context.Context, phone, password string) (model.User, TokenPair, error) {
	user, err := s.users.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, TokenPair{}, apperr.NotFound("User", "phone", phone)
		}
		return model.User{}, TokenPair{}, err
	}
	if !utils.VerifyPassword(user.PasswordHash, password) {
		return model.User{}, TokenPair{}, apperr.BadRequest("Invalid credentials")
	}
	if !user.IsVerified {
		return model.User{}, TokenPair{}, apperr.BadRequest("Phone number not verified. Please verify your phone number before logging in.")
	}

	pair, err := s.issuePair(ctx, &user)
	if err != nil {
		return model.User{}, TokenPair{}, err
	}
	return user, pair, nil
}

// Refresh exchanges a refresh token for a new pair.  Tokens are single-use:
// the presented string must still be stored, and rotation removes it, so a
// replay fails the lookup and surfaces as BlacklistedToken.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (uuid.UUID, TokenPair, error) {
	rec, err := s.tokens.FindByToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, TokenPair{}, apperr.BlacklistedToken("Refresh token is no longer valid, please log in again")
		}
		return uuid.Nil, TokenPair{}, err
	}

	userID, err := s.codec.VerifyRefresh(refreshToken)
	if err != nil || userID != rec.UserID {
		return uuid.Nil, TokenPair{}, apperr.InvalidToken("Invalid refresh token")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, TokenPair{}, apperr.NotFound("User", "id", userID.String())
		}
		return uuid.Nil, TokenPair{}, err
	}

	// issuePair's Replace removes the found record and inserts the new one
	// as one serialized unit; a concurrent rotation for the same user loses
	// the race at the lookup above.
	pair, err := s.issuePair(ctx, &user)
	if err != nil {
		return uuid.Nil, TokenPair{}, err
	}
	return user.ID, pair, nil
}

// Logout invalidates the user's outstanding refresh token so no new pairs
// can be minted with it.
func (s *AuthService) Logout(ctx context.Context, accessToken string) error {
	userID, err := s.codec.VerifyAccess(accessToken)
	if err != nil {
		return apperr.InvalidToken("Invalid access token")
	}
	exists, err := s.tokens.ExistsByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if exists {
		if _, err := s.tokens.DeleteByUserID(ctx, userID); err != nil {
			return err
		}
	}
	return nil
}

// ChangePassword verifies the current password and stores a hash of the new
// one.  Outstanding tokens stay valid.
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) (model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, apperr.NotFound("User", "id", userID.String())
		}
		return model.User{}, err
	}
	if !utils.VerifyPassword(user.PasswordHash, currentPassword) {
		return model.User{}, apperr.BadRequest("Current password is incorrect")
	}
	if !passwordComplexOK(newPassword) {
		return model.User{}, apperr.Validation("Password must contain at least one digit, one lowercase letter, one uppercase letter, and one special character")
	}

	hash, err := utils.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return model.User{}, err
	}
	if err := s.users.UpdatePasswordHash(ctx, userID, hash); err != nil {
		return model.User{}, err
	}
	user.PasswordHash = hash
	return user, nil
}

// issuePair mints access+refresh tokens and swaps the stored refresh row.
func (s *AuthService) issuePair(ctx context.Context, user *model.User) (TokenPair, error) {
	access, err := s.codec.EncodeAccess(user)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := s.codec.EncodeRefresh(user)
	if err != nil {
		return TokenPair{}, err
	}
	rec := model.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		Token:     refresh,
		ExpiresAt: time.Now().UTC().Add(s.codec.RefreshTTL()),
	}
	if err := s.tokens.Replace(ctx, rec); err != nil {
		return TokenPair{}, err
	}
	return TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.codec.AccessTTL().Seconds()),
	}, nil
}

// passwordComplexOK enforces the change-password complexity rule: at least
// one digit, one lowercase, one uppercase and one special character.
func passwordComplexOK(pw string) bool {
	var digit, lower, upper, special bool
	for _, r := range pw {
		switch {
		case r >= '0' && r <= '9':
			digit = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		}
	}
	return digit && lower && upper && special
}
