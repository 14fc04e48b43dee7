package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid id or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrAdminOnly          = errors.New("administrator access required")
	ErrForbidden          = errors.New("access to this resource is not allowed")
)
