package domain

import "errors"

// Authentication and token errors. All are terminal and fail closed; none is
// retriable. Login failures deliberately collapse "no such user" and "wrong
// password" into ErrInvalidCredentials so callers cannot enumerate accounts.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingToken       = errors.New("missing authorization token")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token expired")
	ErrForbidden          = errors.New("access forbidden")
)

// User store errors.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
)

// Password lifecycle errors.
var (
	ErrWrongPassword     = errors.New("current password does not match")
	ErrResetCodeNotFound = errors.New("reset code not found")
	ErrResetCodeExpired  = errors.New("reset code expired")
	ErrResetCodeInvalid  = errors.New("reset code invalid")
)
