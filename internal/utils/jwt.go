package utils // package utils provides helper functions for token signing and hashing

import (
    "encoding/base64"
    "errors"
    "fmt"
    "time"

    "github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
    "github.com/google/uuid"

    "github.com/tradesoncall/backend/internal/model"
)

// Verification failure reasons surfaced by VerifyAccess and VerifyRefresh.
// Callers translate these into their own error kinds; the codec itself is
// transport-agnostic.
var (
    ErrTokenEmpty       = errors.New("token is empty")
    ErrTokenMalformed   = errors.New("token is malformed")
    ErrTokenExpired     = errors.New("token has expired")
    ErrTokenUnsupported = errors.New("token is unsupported")
    ErrTokenSignature   = errors.New("token signature is invalid")
    ErrTokenInvalid     = errors.New("token is invalid")
)

// TokenCodec signs and verifies the two bearer token flavors.  Access and
// refresh tokens are signed with independent HMAC-SHA256 keys; a token
// minted with one key never verifies under the other.
type TokenCodec struct {
    accessKey  []byte
    refreshKey []byte
    accessTTL  time.Duration
    refreshTTL time.Duration
}

// NewTokenCodec decodes the two Base64 secrets and returns a codec.  The
// secrets must be configured independently; sharing one value between them
// defeats the split-key design.
func NewTokenCodec(accessSecretB64, refreshSecretB64 string, accessTTL, refreshTTL time.Duration) (*TokenCodec, error) {
    accessKey, err := base64.StdEncoding.DecodeString(accessSecretB64)
    if err != nil {
        return nil, fmt.Errorf("decode access secret: %w", err)
    }
    refreshKey, err := base64.StdEncoding.DecodeString(refreshSecretB64)
    if err != nil {
        return nil, fmt.Errorf("decode refresh secret: %w", err)
    }
    if len(accessKey) == 0 || len(refreshKey) == 0 {
        return nil, errors.New("jwt secrets must not be empty")
    }
    return &TokenCodec{
        accessKey:  accessKey,
        refreshKey: refreshKey,
        accessTTL:  accessTTL,
        refreshTTL: refreshTTL,
    }, nil
}

// AccessTTL returns the configured access token lifetime.
func (c *TokenCodec) AccessTTL() time.Duration { return c.accessTTL }

// RefreshTTL returns the configured refresh token lifetime.
func (c *TokenCodec) RefreshTTL() time.Duration { return c.refreshTTL }

// EncodeAccess signs an access token for the user.  The subject is the user
// ID; phone, email and userType travel as custom claims so the gate can
// build a principal without a second lookup.
func (c *TokenCodec) EncodeAccess(u *model.User) (string, error) {
    now := time.Now().UTC()
    claims := jwt.MapClaims{
        "sub":      u.ID.String(),
        "phone":    u.Phone,
        "email":    u.EmailOrEmpty(),
        "userType": string(u.UserType),
        "iat":      now.Unix(),
        "exp":      now.Add(c.accessTTL).Unix(),
    }
    t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    return t.SignedString(c.accessKey)
}

// EncodeRefresh signs a refresh token for the user.  The type claim marks
// the flavor so an access token can never be replayed as a refresh token.
// The jti claim makes every minted string distinct; without it two tokens
// issued within the same second would be byte-identical and rotation could
// hand back the string it just consumed.
func (c *TokenCodec) EncodeRefresh(u *model.User) (string, error) {
    now := time.Now().UTC()
    claims := jwt.MapClaims{
        "sub":  u.ID.String(),
        "type": "refresh",
        "jti":  uuid.NewString(),
        "iat":  now.Unix(),
        "exp":  now.Add(c.refreshTTL).Unix(),
    }
    t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    return t.SignedString(c.refreshKey)
}

// VerifyAccess checks the signature and expiry of an access token and
// returns the subject user ID.
func (c *TokenCodec) VerifyAccess(raw string) (uuid.UUID, error) {
    if raw == "" {
        return uuid.Nil, ErrTokenEmpty
    }
    claims, err := c.parse(raw, c.accessKey)
    if err != nil {
        return uuid.Nil, err
    }
    return subjectID(claims)
}

// VerifyRefresh checks the signature and expiry of a refresh token, requires
// the type claim to equal "refresh", and returns the subject user ID.
func (c *TokenCodec) VerifyRefresh(raw string) (uuid.UUID, error) {
    if raw == "" {
        return uuid.Nil, ErrTokenInvalid
    }
    claims, err := c.parse(raw, c.refreshKey)
    if err != nil {
        if errors.Is(err, ErrTokenExpired) {
            return uuid.Nil, ErrTokenExpired
        }
        return uuid.Nil, ErrTokenInvalid
    }
    if typ, _ := claims["type"].(string); typ != "refresh" {
        return uuid.Nil, ErrTokenInvalid
    }
    return subjectID(claims)
}

// parse validates raw against key and returns the claims on success.
func (c *TokenCodec) parse(raw string, key []byte) (jwt.MapClaims, error) {
    tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, ErrTokenUnsupported
        }
        return key, nil
    })
    if err != nil {
        switch {
        case errors.Is(err, jwt.ErrTokenMalformed):
            return nil, ErrTokenMalformed
        case errors.Is(err, jwt.ErrTokenExpired):
            return nil, ErrTokenExpired
        case errors.Is(err, jwt.ErrTokenSignatureInvalid):
            return nil, ErrTokenSignature
        case errors.Is(err, ErrTokenUnsupported):
            return nil, ErrTokenUnsupported
        default:
            return nil, ErrTokenInvalid
        }
    }
    claims, ok := tok.Claims.(jwt.MapClaims)
    if !ok || !tok.Valid {
        return nil, ErrTokenInvalid
    }
    return claims, nil
}

// subjectID extracts and parses the sub claim.
func subjectID(claims jwt.MapClaims) (uuid.UUID, error) {
    sub, _ := claims["sub"].(string)
    id, err := uuid.Parse(sub)
    if err != nil {
        return uuid.Nil, ErrTokenInvalid
    }
    return id, nil
}
