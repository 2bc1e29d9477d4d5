package domain

import "context"

//go:generate mockgen -source=settings_repository.go -destination=settings_repository_mock.go -package=domain

type SettingsRepository interface {
	GetSettings(ctx context.Context, userID string) (*SettingsOverride, error)
	SaveSettings(ctx context.Context, userID string, override *SettingsOverride) error
}
