package service

import "errors"

// Domain errors for auth and people flows.
var (
	ErrDuplicateUser    = errors.New("username already taken")
	ErrUserNotFound     = errors.New("user not found")
	ErrPasswordMismatch = errors.New("invalid password")
	ErrEmptyPassword    = errors.New("password is empty")
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrUnauthorized     = errors.New("You are not authorized")
	ErrStoreFailure     = errors.New("store failure")
)
