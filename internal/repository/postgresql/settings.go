package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/settings"
	"github.com/wasabi-works/shift-payroll-backend/internal/pkg/database"
)

type settingsRepositoryImpl struct {
	db *database.DB
}

func NewSettingsRepository(db *database.DB) settings.SettingsRepository {
	return &settingsRepositoryImpl{db: db}
}

const settingsColumns = `default_start_hour, default_end_hour, global_hourly_rate, admin_password_hash, shift_lock_date, updated_at`

func scanSettings(row pgx.Row) (settings.SystemSettings, error) {
	var s settings.SystemSettings
	err := row.Scan(&s.DefaultStartHour, &s.DefaultEndHour, &s.GlobalHourlyRate, &s.AdminPasswordHash, &s.ShiftLockDate, &s.UpdatedAt)
	return s, err
}

// Get implements settings.SettingsRepository.
func (r *settingsRepositoryImpl) Get(ctx context.Context) (settings.SystemSettings, error) {
	q := GetQuerier(ctx, r.db)

	s, err := scanSettings(q.QueryRow(ctx, `SELECT `+settingsColumns+` FROM system_settings WHERE id = $1`, settings.RowID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return settings.SystemSettings{}, settings.ErrSettingsNotFound
		}
		return settings.SystemSettings{}, fmt.Errorf("failed to get settings: %w", err)
	}

	return s, nil
}

// Upsert implements settings.SettingsRepository.
func (r *settingsRepositoryImpl) Upsert(ctx context.Context, s settings.SystemSettings) (settings.SystemSettings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO system_settings (id, default_start_hour, default_end_hour, global_hourly_rate,
			admin_password_hash, shift_lock_date, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (id) DO UPDATE SET
			default_start_hour = EXCLUDED.default_start_hour,
			default_end_hour = EXCLUDED.default_end_hour,
			global_hourly_rate = EXCLUDED.global_hourly_rate,
			admin_password_hash = EXCLUDED.admin_password_hash,
			shift_lock_date = EXCLUDED.shift_lock_date,
			updated_at = NOW()
		RETURNING ` + settingsColumns

	saved, err := scanSettings(q.QueryRow(ctx, query,
		settings.RowID,
		s.DefaultStartHour,
		s.DefaultEndHour,
		s.GlobalHourlyRate,
		s.AdminPasswordHash,
		s.ShiftLockDate,
	))
	if err != nil {
		return settings.SystemSettings{}, fmt.Errorf("failed to save settings: %w", err)
	}

	return saved, nil
}
