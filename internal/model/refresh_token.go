package model

import (
    "time"

    "github.com/google/uuid"
)

// RefreshToken models a row in the `refresh_tokens` table.  The store keeps
// at most one row per user; the token column holds the exact string handed
// to the client at issuance.  A row doubles as the deny-list entry consulted
// by the auth gate: while it exists, the stored string is both a valid
// refresh token and a rejected bearer credential.
//
// Fields:
//  ID        – primary key (UUID).
//  UserID    – owner of the token (refresh_tokens.user_id, unique).
//  Token     – the signed refresh token string, at most 512 chars (unique).
//  ExpiresAt – expiration timestamp of the token.
type RefreshToken struct {
    ID        uuid.UUID // refresh_tokens.id
    UserID    uuid.UUID // refresh_tokens.user_id
    Token     string    // refresh_tokens.token
    ExpiresAt time.Time // refresh_tokens.expires_at
}
