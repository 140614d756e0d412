package utils

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradesoncall/backend/internal/model"
)

var (
	testAccessSecret  = base64.StdEncoding.EncodeToString([]byte("access-secret-for-tests-0123456789"))
	testRefreshSecret = base64.StdEncoding.EncodeToString([]byte("refresh-secret-for-tests-9876543210"))
)

func newTestCodec(t *testing.T, accessTTL, refreshTTL time.Duration) *TokenCodec {
	t.Helper()
	c, err := NewTokenCodec(testAccessSecret, testRefreshSecret, accessTTL, refreshTTL)
	require.NoError(t, err)
	return c
}

func testUser() *model.User {
	email := "sam@example.com"
	return &model.User{
		ID:         uuid.New(),
		Phone:      "+15551234567",
		Email:      &email,
		UserType:   model.UserTypeCustomer,
		Status:     model.UserStatusActive,
		IsVerified: true,
	}
}

func TestNewTokenCodecRejectsBadSecrets(t *testing.T) {
	_, err := NewTokenCodec("not base64!!", testRefreshSecret, time.Minute, time.Hour)
	assert.Error(t, err)

	_, err = NewTokenCodec("", testRefreshSecret, time.Minute, time.Hour)
	assert.Error(t, err)
}

func TestAccessRoundTrip(t *testing.T) {
	c := newTestCodec(t, 15*time.Minute, 24*time.Hour)
	u := testUser()

	raw, err := c.EncodeAccess(u)
	require.NoError(t, err)

	got, err := c.VerifyAccess(raw)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got)
}

func TestRefreshRoundTrip(t *testing.T) {
	c := newTestCodec(t, 15*time.Minute, 24*time.Hour)
	u := testUser()

	raw, err := c.EncodeRefresh(u)
	require.NoError(t, err)

	got, err := c.VerifyRefresh(raw)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got)
}

func TestAccessTokenIsNotARefreshToken(t *testing.T) {
	c := newTestCodec(t, 15*time.Minute, 24*time.Hour)
	u := testUser()

	access, err := c.EncodeAccess(u)
	require.NoError(t, err)

	_, err = c.VerifyRefresh(access)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestRefreshTokenIsNotAnAccessToken(t *testing.T) {
	c := newTestCodec(t, 15*time.Minute, 24*time.Hour)
	u := testUser()

	refresh, err := c.EncodeRefresh(u)
	require.NoError(t, err)

	// Signed with the refresh key, so the access key rejects the signature.
	_, err = c.VerifyAccess(refresh)
	assert.ErrorIs(t, err, ErrTokenSignature)
}

func TestVerifyAccessExpired(t *testing.T) {
	c := newTestCodec(t, -time.Minute, 24*time.Hour)
	u := testUser()

	raw, err := c.EncodeAccess(u)
	require.NoError(t, err)

	_, err = c.VerifyAccess(raw)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyRefreshExpired(t *testing.T) {
	c := newTestCodec(t, 15*time.Minute, -time.Minute)
	u := testUser()

	raw, err := c.EncodeRefresh(u)
	require.NoError(t, err)

	_, err = c.VerifyRefresh(raw)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyAccessGarbage(t *testing.T) {
	c := newTestCodec(t, 15*time.Minute, 24*time.Hour)

	_, err := c.VerifyAccess("")
	assert.ErrorIs(t, err, ErrTokenEmpty)

	_, err = c.VerifyAccess("not.a.token")
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestEncodeRefreshMintsDistinctStrings(t *testing.T) {
	// Back-to-back issuance lands in the same second, so sub/type/iat/exp
	// alone would collide; the jti claim must keep every string unique.
	c := newTestCodec(t, 15*time.Minute, 24*time.Hour)
	u := testUser()

	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		raw, err := c.EncodeRefresh(u)
		require.NoError(t, err)
		assert.False(t, seen[raw], "refresh token minted twice")
		seen[raw] = true

		got, err := c.VerifyRefresh(raw)
		require.NoError(t, err)
		assert.Equal(t, u.ID, got)
	}
}

func TestIndependentKeys(t *testing.T) {
	// A codec whose refresh secret equals the access secret would let the
	// two flavors cross-verify; independent keys must not.
	c := newTestCodec(t, 15*time.Minute, 24*time.Hour)
	other, err := NewTokenCodec(testRefreshSecret, testAccessSecret, 15*time.Minute, 24*time.Hour)
	require.NoError(t, err)

	u := testUser()
	raw, err := c.EncodeAccess(u)
	require.NoError(t, err)

	_, err = other.VerifyAccess(raw)
	assert.ErrorIs(t, err, ErrTokenSignature)
}
