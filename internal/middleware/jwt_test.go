package middleware

import (
	"context"
	"database/sql"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tradesoncall/backend/internal/apperr"
	"github.com/tradesoncall/backend/internal/model"
	"github.com/tradesoncall/backend/internal/utils"
)

type stubTokens struct {
	denied map[string]bool
	err    error
}

func (s *stubTokens) ExistsByToken(_ context.Context, token string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.denied[token], nil
}

type stubUsers struct {
	users map[uuid.UUID]model.User
}

func (s *stubUsers) GetByID(_ context.Context, id uuid.UUID) (model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return model.User{}, sql.ErrNoRows
	}
	return u, nil
}

func gateFixture(t *testing.T) (*utils.TokenCodec, *stubTokens, *stubUsers, model.User) {
	t.Helper()
	access := base64.StdEncoding.EncodeToString([]byte("gate-access-secret-0123456789ab"))
	refresh := base64.StdEncoding.EncodeToString([]byte("gate-refresh-secret-ba9876543210"))
	codec, err := utils.NewTokenCodec(access, refresh, 15*time.Minute, 24*time.Hour)
	require.NoError(t, err)

	user := model.User{
		ID:         uuid.New(),
		Phone:      "+15551234567",
		UserType:   model.UserTypeCustomer,
		Status:     model.UserStatusActive,
		IsVerified: true,
	}
	tokens := &stubTokens{denied: map[string]bool{}}
	users := &stubUsers{users: map[uuid.UUID]model.User{user.ID: user}}
	return codec, tokens, users, user
}

func invokeGate(codec *utils.TokenCodec, tokens *stubTokens, users *stubUsers, authHeader string) (echo.Context, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	mw := AuthGate(codec, tokens, users, zap.NewNop())
	err := mw(func(c echo.Context) error { return nil })(c)
	return c, err
}

func TestGateNoBearerPassesThroughUnauthenticated(t *testing.T) {
	codec, tokens, users, _ := gateFixture(t)

	c, err := invokeGate(codec, tokens, users, "")
	require.NoError(t, err)
	assert.Nil(t, c.Get("user"))

	c, err = invokeGate(codec, tokens, users, "Basic abc123")
	require.NoError(t, err)
	assert.Nil(t, c.Get("user"))
}

func TestGateValidTokenAttachesIdentity(t *testing.T) {
	codec, tokens, users, user := gateFixture(t)
	raw, err := codec.EncodeAccess(&user)
	require.NoError(t, err)

	c, err := invokeGate(codec, tokens, users, "Bearer "+raw)
	require.NoError(t, err)

	got, ok := c.Get("user").(*model.User)
	require.True(t, ok)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, user.ID.String(), c.Get("user_id"))
	assert.Equal(t, user.Phone, c.Get("principal"))
}

func TestGateDenyListPrecedesVerification(t *testing.T) {
	codec, tokens, users, _ := gateFixture(t)

	// The denied string is not even a valid JWT; the deny-list check must
	// reject it before verification gets a chance to swallow it.
	tokens.denied["logged-out-token"] = true

	_, err := invokeGate(codec, tokens, users, "Bearer logged-out-token")
	require.Error(t, err)
	assert.Equal(t, apperr.KindBlacklistedToken, apperr.KindOf(err))
	assert.Equal(t, "Token has been logged out and is no longer valid.", apperr.MessageOf(err))
}

func TestGateDenyListOutageRejectsRequest(t *testing.T) {
	codec, tokens, users, user := gateFixture(t)
	tokens.err = errors.New("connection refused")

	raw, err := codec.EncodeAccess(&user)
	require.NoError(t, err)

	// A lookup failure must not fail open into signature verification.
	_, err = invokeGate(codec, tokens, users, "Bearer "+raw)
	require.Error(t, err)
	assert.Equal(t, apperr.KindExternalService, apperr.KindOf(err))
}

func TestGateInvalidTokenProceedsUnauthenticated(t *testing.T) {
	codec, tokens, users, _ := gateFixture(t)

	c, err := invokeGate(codec, tokens, users, "Bearer not.a.token")
	require.NoError(t, err)
	assert.Nil(t, c.Get("user"))
}

func TestGateUnknownUserProceedsUnauthenticated(t *testing.T) {
	codec, tokens, users, _ := gateFixture(t)

	ghost := model.User{ID: uuid.New(), Phone: "+15550000001"}
	raw, err := codec.EncodeAccess(&ghost)
	require.NoError(t, err)

	c, err := invokeGate(codec, tokens, users, "Bearer "+raw)
	require.NoError(t, err)
	assert.Nil(t, c.Get("user"))
}

func TestRequireAuth(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	err := RequireAuth()(func(c echo.Context) error { return nil })(c)
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidToken, apperr.KindOf(err))

	c.Set("user", &model.User{ID: uuid.New()})
	err = RequireAuth()(func(c echo.Context) error { return nil })(c)
	assert.NoError(t, err)
}
