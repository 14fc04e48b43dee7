package settings

import "context"

type SettingsRepository interface {
	// Get returns ErrSettingsNotFound until the row has been written once.
	Get(ctx context.Context) (SystemSettings, error)
	Upsert(ctx context.Context, s SystemSettings) (SystemSettings, error)
}
