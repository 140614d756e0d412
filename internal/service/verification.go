package service

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/tradesoncall/backend/internal/apperr"
	"github.com/tradesoncall/backend/internal/model"
	"github.com/tradesoncall/backend/internal/queue"
)

// codeTTL is how long a verification code stays redeemable.
const codeTTL = 10 * time.Minute

// VerifyUserStore is the subset of the user repository the verification
// flow needs.
type VerifyUserStore interface {
	GetByPhone(ctx context.Context, phone string) (model.User, error)
	MarkVerified(ctx context.Context, id uuid.UUID) error
}

// VerificationService issues and redeems phone verification codes.  Codes
// live in Redis under verify:{phone} with a 10 minute TTL; delivery runs
// through the SMS queue so this process never talks to a carrier.
type VerificationService struct {
	rdb       *redis.Client
	users     VerifyUserStore
	publisher EventPublisher
	log       *zap.Logger
}

func NewVerificationService(rdb *redis.Client, users VerifyUserStore, pub EventPublisher, log *zap.Logger) *VerificationService {
	return &VerificationService{rdb: rdb, users: users, publisher: pub, log: log}
}

func codeKey(phone string) string { return "verify:" + phone }

// RequestCode stores a fresh 6-digit code for the phone and enqueues an SMS
// request.  The response is the same whether or not an account exists so
// the endpoint cannot be used to enumerate phone numbers.
func (s *VerificationService) RequestCode(ctx context.Context, phone string) error {
	if s.rdb == nil {
		return apperr.ExternalService("Verification service is unavailable")
	}

	user, err := s.users.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		return err
	}
	if user.IsVerified {
		return nil
	}

	code, err := randomCode()
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, codeKey(phone), code, codeTTL).Err(); err != nil {
		return apperr.Wrap(apperr.KindExternalService, "Verification service is unavailable", err)
	}

	if s.publisher != nil {
		_ = s.publisher.Publish(ctx, queue.VerificationRequestedQueue, queue.VerificationRequestedEvent{
			Phone:       phone,
			RequestedAt: time.Now().UTC().Format(time.RFC3339),
		})
	}
	return nil
}

// ConfirmCode redeems a code: on match the key is deleted and the account
// becomes verified and ACTIVE.
func (s *VerificationService) ConfirmCode(ctx context.Context, phone, code string) (model.User, error) {
	if s.rdb == nil {
		return model.User{}, apperr.ExternalService("Verification service is unavailable")
	}

	stored, err := s.rdb.Get(ctx, codeKey(phone)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.User{}, apperr.BadRequest("Verification code is invalid or has expired")
		}
		return model.User{}, apperr.Wrap(apperr.KindExternalService, "Verification service is unavailable", err)
	}
	if stored != code {
		return model.User{}, apperr.BadRequest("Verification code is invalid or has expired")
	}

	user, err := s.users.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, apperr.NotFound("User", "phone", phone)
		}
		return model.User{}, err
	}
	if err := s.users.MarkVerified(ctx, user.ID); err != nil {
		return model.User{}, err
	}
	if err := s.rdb.Del(ctx, codeKey(phone)).Err(); err != nil {
		s.log.Error("delete verification code", zap.Error(err))
	}

	user.IsVerified = true
	user.Status = model.UserStatusActive
	return user, nil
}

// randomCode returns a 6-digit numeric code from crypto/rand.
func randomCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
