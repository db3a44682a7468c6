package service

import "errors"

// Domain errors surfaced to handlers.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidRole        = errors.New("role must be teacher or student")
	ErrUserNotFound       = errors.New("user not found")
	ErrClassNotFound      = errors.New("class not found")
	ErrInvalidTeacher     = errors.New("invalid teacher id")
)
