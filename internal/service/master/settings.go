package master

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/wasabi-works/shift-payroll-backend/internal/domain/actionlog"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/settings"
	"github.com/wasabi-works/shift-payroll-backend/internal/pkg/sse"
	"golang.org/x/crypto/bcrypt"
)

type settingsServiceImpl struct {
	settingsRepo  settings.SettingsRepository
	logs          actionlog.ActionLogService
	emitter       *actionlog.Emitter
	publisher     sse.Publisher
	defaults      settings.SystemSettings
	adminPassword string
}

// NewSettingsService returns the settings service. defaults is served until the row is first
// written; adminPassword is hashed into the row by EnsureSeeded.
func NewSettingsService(
	settingsRepo settings.SettingsRepository,
	logs actionlog.ActionLogService,
	emitter *actionlog.Emitter,
	publisher sse.Publisher,
	defaults settings.SystemSettings,
	adminPassword string,
) settings.SettingsService {
	return &settingsServiceImpl{
		settingsRepo:  settingsRepo,
		logs:          logs,
		emitter:       emitter,
		publisher:     publisher,
		defaults:      defaults,
		adminPassword: adminPassword,
	}
}

func (s *settingsServiceImpl) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *settingsServiceImpl) EnsureSeeded(ctx context.Context) error {
	_, err := s.settingsRepo.Get(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, settings.ErrSettingsNotFound) {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	seed := s.defaults
	if s.adminPassword != "" {
		hash, err := s.hashPassword(s.adminPassword)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}
		seed.AdminPasswordHash = hash
	}

	if _, err := s.settingsRepo.Upsert(ctx, seed); err != nil {
		return fmt.Errorf("failed to seed settings: %w", err)
	}
	slog.Info("system settings seeded",
		"default_start_hour", seed.DefaultStartHour,
		"default_end_hour", seed.DefaultEndHour,
		"global_hourly_rate", seed.GlobalHourlyRate.String(),
	)
	return nil
}

func (s *settingsServiceImpl) Current(ctx context.Context) (settings.SystemSettings, error) {
	current, err := s.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, settings.ErrSettingsNotFound) {
			return s.defaults, nil
		}
		return settings.SystemSettings{}, fmt.Errorf("failed to get settings: %w", err)
	}
	return current, nil
}

func (s *settingsServiceImpl) Get(ctx context.Context) (settings.SettingsResponse, error) {
	current, err := s.Current(ctx)
	if err != nil {
		return settings.SettingsResponse{}, err
	}
	return settings.ToResponse(current), nil
}

func (s *settingsServiceImpl) Update(ctx context.Context, req settings.UpdateSettingsRequest) (settings.SettingsResponse, error) {
	current, err := s.Current(ctx)
	if err != nil {
		return settings.SettingsResponse{}, err
	}

	next, err := req.Apply(current)
	if err != nil {
		return settings.SettingsResponse{}, err
	}

	fields := changedSettings(current, next)
	if len(fields) == 0 {
		return settings.ToResponse(current), nil
	}

	saved, err := s.settingsRepo.Upsert(ctx, next)
	if err != nil {
		return settings.SettingsResponse{}, fmt.Errorf("failed to update settings: %w", err)
	}

	s.logs.Record(ctx, s.emitter.SettingsChanged(current.GlobalHourlyRate, next.GlobalHourlyRate, fields))
	s.publisher.Publish(sse.Event{
		Topic: sse.TopicAll,
		Name:  sse.EventSettingsChanged,
		Data:  settings.ToResponse(saved),
	})

	return settings.ToResponse(saved), nil
}

func (s *settingsServiceImpl) ChangeAdminPassword(ctx context.Context, req settings.ChangeAdminPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	current, err := s.Current(ctx)
	if err != nil {
		return err
	}

	if current.AdminPasswordHash == "" ||
		bcrypt.CompareHashAndPassword([]byte(current.AdminPasswordHash), []byte(req.CurrentPassword)) != nil {
		return settings.ErrInvalidCurrentPassword
	}

	hash, err := s.hashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}
	current.AdminPasswordHash = hash

	if _, err := s.settingsRepo.Upsert(ctx, current); err != nil {
		return fmt.Errorf("failed to update admin password: %w", err)
	}

	s.logs.Record(ctx, s.emitter.AdminPasswordChanged())
	return nil
}

func changedSettings(old, next settings.SystemSettings) []string {
	var fields []string
	if old.DefaultStartHour != next.DefaultStartHour {
		fields = append(fields, "default_start_hour")
	}
	if old.DefaultEndHour != next.DefaultEndHour {
		fields = append(fields, "default_end_hour")
	}
	if !old.GlobalHourlyRate.Equal(next.GlobalHourlyRate) {
		fields = append(fields, "global_hourly_rate")
	}
	if old.ShiftLockDate != next.ShiftLockDate {
		fields = append(fields, "shift_lock_date")
	}
	return fields
}
