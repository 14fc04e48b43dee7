package settings

import "errors"

var (
	ErrSettingsNotFound       = errors.New("system settings not found")
	ErrInvalidCurrentPassword = errors.New("current admin password is incorrect")
)
