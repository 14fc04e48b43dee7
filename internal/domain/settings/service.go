package settings

import "context"

type SettingsService interface {
	Get(ctx context.Context) (SettingsResponse, error)
	Update(ctx context.Context, req UpdateSettingsRequest) (SettingsResponse, error)
	ChangeAdminPassword(ctx context.Context, req ChangeAdminPasswordRequest) error

	// Current returns the stored settings, or the configured defaults before the first write.
	Current(ctx context.Context) (SystemSettings, error)
	// EnsureSeeded writes the defaults when no settings row exists yet.
	EnsureSeeded(ctx context.Context) error
}
