package shift

import "errors"

var (
	ErrShiftNotFound = errors.New("shift request not found")
)
