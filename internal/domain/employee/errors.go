package employee

import "errors"

var (
	ErrEmployeeNotFound       = errors.New("employee not found")
	ErrInvalidCurrentPassword = errors.New("current password is incorrect")
)
