package attendance

import "errors"

var (
	ErrRecordLocked   = errors.New("attendance record is approved and can no longer be edited")
	ErrRecordNotFound = errors.New("attendance record not found")
	ErrEmptyPatch     = errors.New("no fields to update")
)
