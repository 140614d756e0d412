package model

import (
    "time"

    "github.com/google/uuid"
)

// UserType distinguishes the two sides of the marketplace.
type UserType string

const (
    UserTypeCustomer     UserType = "CUSTOMER"
    UserTypeTradesperson UserType = "TRADESPERSON"
)

// Valid reports whether t is one of the known user types.
func (t UserType) Valid() bool {
    return t == UserTypeCustomer || t == UserTypeTradesperson
}

// UserStatus is the lifecycle state of an account.  New registrations start
// PENDING and move to ACTIVE once the phone number is verified.
type UserStatus string

const (
    UserStatusPending   UserStatus = "PENDING"
    UserStatusActive    UserStatus = "ACTIVE"
    UserStatusSuspended UserStatus = "SUSPENDED"
)

// User represents a row in the `users` table.  Phone numbers are unique and
// required; email is optional but unique when set (nil means no email on
// file).  The json tags are omitted because handlers expose separate
// response types.
//
// Fields:
//  ID           – primary key (UUID, server generated).
//  Phone        – E.164 phone number (users.phone, unique).
//  Email        – optional email address (users.email, unique when set).
//  PasswordHash – bcrypt hashed password.
//  UserType     – CUSTOMER or TRADESPERSON.
//  Status       – PENDING, ACTIVE or SUSPENDED.
//  IsVerified   – whether the phone number has been verified.
//  CreatedAt    – timestamp of creation.
type User struct {
    ID           uuid.UUID  // users.id
    Phone        string     // users.phone
    Email        *string    // users.email (nullable)
    PasswordHash string     // users.password_hash
    UserType     UserType   // users.user_type
    Status       UserStatus // users.status
    IsVerified   bool       // users.is_verified
    CreatedAt    time.Time  // users.created_at
}

// EmailOrEmpty returns the email address or "" when none is set.
func (u *User) EmailOrEmpty() string {
    if u.Email == nil {
        return ""
    }
    return *u.Email
}
