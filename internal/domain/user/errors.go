package user

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailTaken           = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("email or password is incorrect")
	ErrCodeGenerationFailed = errors.New("invite code generation failed")
)
