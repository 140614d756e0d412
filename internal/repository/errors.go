// Package repository implements the persistence layer on top of
// database/sql.  This file defines sentinel errors shared across the
// repositories so higher layers can distinguish failure scenarios without
// string matching.
package repository

import "errors"

// ErrDuplicatePhone is returned when a users insert violates the phone
// uniqueness constraint.
var ErrDuplicatePhone = errors.New("phone already exists")

// ErrDuplicateEmail is returned when a users insert violates the email
// uniqueness constraint.
var ErrDuplicateEmail = errors.New("email already exists")

// ErrDuplicateToken is returned when a refresh_tokens insert violates a
// uniqueness constraint; with correct caller ordering (delete before insert)
// it indicates a lost race with a concurrent login or refresh.
var ErrDuplicateToken = errors.New("refresh token row already exists")
