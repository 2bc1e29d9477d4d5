package repository

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-slot-scheduler/internal/domain"
)

type integrationRecord struct {
	IntegrationID string     `json:"integration_id"`
	UserID        string     `json:"user_id"`
	Provider      string     `json:"provider"`
	CalendarID    string     `json:"calendar_id,omitempty"`
	FeedURL       string     `json:"feed_url,omitempty"`
	AccessToken   string     `json:"access_token,omitempty"`
	Enabled       bool       `json:"enabled"`
	CreatedAt     time.Time  `json:"created_at"`
	LastSyncAt    *time.Time `json:"last_sync_at,omitempty"`
}

func toIntegrationRecord(i *domain.Integration) integrationRecord {
	return integrationRecord{
		IntegrationID: i.ID,
		UserID:        i.UserID,
		Provider:      i.Provider.String(),
		CalendarID:    i.CalendarID,
		FeedURL:       i.FeedURL,
		AccessToken:   i.AccessToken,
		Enabled:       i.Enabled,
		CreatedAt:     i.CreatedAt,
		LastSyncAt:    i.LastSyncAt,
	}
}

func (r integrationRecord) toDomain() *domain.Integration {
	return &domain.Integration{
		ID:          r.IntegrationID,
		UserID:      r.UserID,
		Provider:    domain.CalendarProvider(r.Provider),
		CalendarID:  r.CalendarID,
		FeedURL:     r.FeedURL,
		AccessToken: r.AccessToken,
		Enabled:     r.Enabled,
		CreatedAt:   r.CreatedAt,
		LastSyncAt:  r.LastSyncAt,
	}
}

type integrationRepository struct {
	client *redis.Client
}

func NewIntegrationRepository(client *redis.Client) domain.IntegrationRepository {
	return &integrationRepository{
		client: client,
	}
}

func (r *integrationRepository) SaveIntegration(ctx context.Context, integration *domain.Integration) error {
	if integration == nil || integration.ID == "" || integration.UserID == "" {
		return ErrInvalidIntegrationData
	}

	data, err := json.Marshal(toIntegrationRecord(integration))
	if err != nil {
		return ErrInvalidIntegrationData
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, integrationKey(integration.UserID, integration.ID), data, 0)
	pipe.SAdd(ctx, userIntegrationsKeyPrefix+integration.UserID, integration.ID)

	_, err = pipe.Exec(ctx)
	return err
}

func (r *integrationRepository) GetIntegration(ctx context.Context, userID, integrationID string) (*domain.Integration, error) {
	data, err := r.client.Get(ctx, integrationKey(userID, integrationID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrIntegrationNotFound
		}
		return nil, err
	}

	var record integrationRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, ErrInvalidIntegrationData
	}

	return record.toDomain(), nil
}

// ListIntegrations returns the user's integrations oldest first.
func (r *integrationRepository) ListIntegrations(ctx context.Context, userID string) ([]*domain.Integration, error) {
	ids, err := r.client.SMembers(ctx, userIntegrationsKeyPrefix+userID).Result()
	if err != nil {
		return nil, err
	}

	integrations := make([]*domain.Integration, 0, len(ids))
	if len(ids) == 0 {
		return integrations, nil
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, integrationKey(userID, id))
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		var record integrationRecord
		if err := json.Unmarshal([]byte(raw), &record); err != nil {
			return nil, ErrInvalidIntegrationData
		}
		integrations = append(integrations, record.toDomain())
	}

	slices.SortStableFunc(integrations, func(a, b *domain.Integration) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})

	return integrations, nil
}

func (r *integrationRepository) DeleteIntegration(ctx context.Context, userID, integrationID string) error {
	pipe := r.client.TxPipeline()
	del := pipe.Del(ctx, integrationKey(userID, integrationID))
	pipe.SRem(ctx, userIntegrationsKeyPrefix+userID, integrationID)

	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}
	if del.Val() == 0 {
		return domain.ErrIntegrationNotFound
	}

	return nil
}
