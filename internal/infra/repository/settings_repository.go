package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-slot-scheduler/internal/domain"
)

type settingsRepository struct {
	client *redis.Client
}

// NewSettingsRepository stores each user's partial settings document as-is,
// so defaults changed later still apply to fields the user never set.
func NewSettingsRepository(client *redis.Client) domain.SettingsRepository {
	return &settingsRepository{
		client: client,
	}
}

func (r *settingsRepository) GetSettings(ctx context.Context, userID string) (*domain.SettingsOverride, error) {
	data, err := r.client.Get(ctx, settingsKeyPrefix+userID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSettingsNotFound
		}
		return nil, err
	}

	var override domain.SettingsOverride
	if err := json.Unmarshal(data, &override); err != nil {
		return nil, ErrInvalidSettingsData
	}

	return &override, nil
}

func (r *settingsRepository) SaveSettings(ctx context.Context, userID string, override *domain.SettingsOverride) error {
	if override == nil {
		return ErrInvalidSettingsData
	}

	data, err := json.Marshal(override)
	if err != nil {
		return ErrInvalidSettingsData
	}

	return r.client.Set(ctx, settingsKeyPrefix+userID, data, 0).Err()
}
