package repository

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-slot-scheduler/internal/domain"
)

type notificationRecord struct {
	NotificationID    string                 `json:"notification_id"`
	UserID            string                 `json:"user_id"`
	Type              string                 `json:"type"`
	Title             string                 `json:"title"`
	Message           string                 `json:"message"`
	Icon              string                 `json:"icon"`
	SlotID            string                 `json:"slot_id"`
	SuggestedActionID *string                `json:"suggested_action_id,omitempty"`
	ScheduledFor      time.Time              `json:"scheduled_for"`
	Sent              bool                   `json:"sent"`
	SentAt            *time.Time             `json:"sent_at,omitempty"`
	Read              bool                   `json:"read"`
	CreatedAt         time.Time              `json:"created_at"`
	Data              notificationDataRecord `json:"data"`
}

type notificationDataRecord struct {
	URL          string    `json:"url"`
	SlotDuration int       `json:"slot_duration"`
	SlotStart    time.Time `json:"slot_start"`
}

func toNotificationRecord(n *domain.Notification) notificationRecord {
	return notificationRecord{
		NotificationID:    n.ID,
		UserID:            n.UserID,
		Type:              string(n.Type),
		Title:             n.Title,
		Message:           n.Message,
		Icon:              n.Icon,
		SlotID:            n.SlotID,
		SuggestedActionID: n.SuggestedActionID,
		ScheduledFor:      n.ScheduledFor,
		Sent:              n.Sent,
		SentAt:            n.SentAt,
		Read:              n.Read,
		CreatedAt:         n.CreatedAt,
		Data: notificationDataRecord{
			URL:          n.Data.URL,
			SlotDuration: n.Data.SlotDuration,
			SlotStart:    n.Data.SlotStart,
		},
	}
}

func (r notificationRecord) toDomain() *domain.Notification {
	return &domain.Notification{
		ID:                r.NotificationID,
		UserID:            r.UserID,
		Type:              domain.NotificationType(r.Type),
		Title:             r.Title,
		Message:           r.Message,
		Icon:              r.Icon,
		SlotID:            r.SlotID,
		SuggestedActionID: r.SuggestedActionID,
		ScheduledFor:      r.ScheduledFor,
		Sent:              r.Sent,
		SentAt:            r.SentAt,
		Read:              r.Read,
		CreatedAt:         r.CreatedAt,
		Data: domain.NotificationData{
			URL:          r.Data.URL,
			SlotDuration: r.Data.SlotDuration,
			SlotStart:    r.Data.SlotStart,
		},
	}
}

type notificationRepository struct {
	client *redis.Client
}

// NewNotificationRepository keeps notifications as JSON documents. A SETNX
// guard key per (user, slot, type) makes creation race free, and unsent
// notifications are indexed by scheduled time per user and globally.
func NewNotificationRepository(client *redis.Client) domain.NotificationRepository {
	return &notificationRepository{
		client: client,
	}
}

func (r *notificationRepository) ExistsForSlot(ctx context.Context, userID, slotID string, notificationType domain.NotificationType) (bool, error) {
	exists, err := r.client.Exists(ctx, notificationGuardKey(userID, slotID, string(notificationType))).Result()
	if err != nil {
		return false, err
	}

	return exists > 0, nil
}

func (r *notificationRepository) CreateIfAbsent(ctx context.Context, n *domain.Notification) (bool, error) {
	if n == nil || n.ID == "" || n.UserID == "" || n.SlotID == "" {
		return false, ErrInvalidNotificationData
	}

	data, err := json.Marshal(toNotificationRecord(n))
	if err != nil {
		return false, ErrInvalidNotificationData
	}

	guardKey := notificationGuardKey(n.UserID, n.SlotID, string(n.Type))
	acquired, err := r.client.SetNX(ctx, guardKey, n.ID, notificationTTL).Result()
	if err != nil {
		return false, err
	}
	if !acquired {
		return false, nil
	}

	// Documents live notificationTTL from creation and are never scheduled
	// before they are created, so index entries scored below the cutoff
	// point at expired documents.
	expiredBefore := "(" + scoreArg(n.CreatedAt.Add(-notificationTTL))

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, notificationKey(n.ID), data, notificationTTL)
	pipe.ZRemRangeByScore(ctx, userNotificationsKeyPrefix+n.UserID, "-inf", expiredBefore)
	pipe.ZRemRangeByScore(ctx, userPendingKeyPrefix+n.UserID, "-inf", expiredBefore)
	pipe.ZRemRangeByScore(ctx, duePendingKey, "-inf", expiredBefore)
	pipe.ZAdd(ctx, userNotificationsKeyPrefix+n.UserID, redis.Z{Score: unixScore(n.CreatedAt), Member: n.ID})
	if !n.Sent {
		pipe.ZAdd(ctx, userPendingKeyPrefix+n.UserID, redis.Z{Score: unixScore(n.ScheduledFor), Member: n.ID})
		pipe.ZAdd(ctx, duePendingKey, redis.Z{Score: unixScore(n.ScheduledFor), Member: n.ID})
	}

	if _, err := pipe.Exec(ctx); err != nil {
		// release the guard so a later sync can retry
		if delErr := r.client.Del(ctx, guardKey).Err(); delErr != nil {
			slog.WarnContext(ctx, "failed to release notification guard",
				slog.String("guard_key", guardKey),
				slog.String("error", delErr.Error()),
			)
		}
		return false, err
	}

	return true, nil
}

func (r *notificationRepository) GetNotification(ctx context.Context, userID, notificationID string) (*domain.Notification, error) {
	n, err := r.get(ctx, notificationID)
	if err != nil {
		return nil, err
	}
	if n.UserID != userID {
		return nil, domain.ErrNotificationNotFound
	}

	return n, nil
}

func (r *notificationRepository) get(ctx context.Context, notificationID string) (*domain.Notification, error) {
	data, err := r.client.Get(ctx, notificationKey(notificationID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNotificationNotFound
		}
		return nil, err
	}

	var record notificationRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, ErrInvalidNotificationData
	}

	return record.toDomain(), nil
}

func (r *notificationRepository) ListPending(ctx context.Context, userID string, now time.Time, limit int) ([]*domain.Notification, error) {
	return r.listByScore(ctx, userPendingKeyPrefix+userID, now, limit)
}

func (r *notificationRepository) ListDue(ctx context.Context, now time.Time, limit int) ([]*domain.Notification, error) {
	return r.listByScore(ctx, duePendingKey, now, limit)
}

// listByScore pages through the index until limit live notifications are
// found or the range is exhausted. Ids whose document has expired are
// removed from the index on the way.
func (r *notificationRepository) listByScore(ctx context.Context, indexKey string, now time.Time, limit int) ([]*domain.Notification, error) {
	notifications := make([]*domain.Notification, 0)
	var offset int64

	for {
		rangeBy := &redis.ZRangeBy{
			Min: "-inf",
			Max: scoreArg(now),
		}
		want := 0
		if limit > 0 {
			want = limit - len(notifications)
			rangeBy.Offset = offset
			rangeBy.Count = int64(want)
		}

		ids, err := r.client.ZRangeByScore(ctx, indexKey, rangeBy).Result()
		if err != nil {
			return nil, err
		}

		live, stale, err := r.load(ctx, ids)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, live...)

		if err := r.prune(ctx, indexKey, stale); err != nil {
			return nil, err
		}

		if limit <= 0 || len(ids) < want || len(notifications) >= limit {
			return notifications, nil
		}
		// pruned ids no longer occupy a position
		offset += int64(len(live))
	}
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*domain.Notification, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}

	indexKey := userNotificationsKeyPrefix + userID
	ids, err := r.client.ZRevRange(ctx, indexKey, 0, stop).Result()
	if err != nil {
		return nil, err
	}

	notifications, stale, err := r.load(ctx, ids)
	if err != nil {
		return nil, err
	}
	if err := r.prune(ctx, indexKey, stale); err != nil {
		return nil, err
	}

	return notifications, nil
}

// load fetches the documents for ids in order and reports the ids whose
// document no longer exists.
func (r *notificationRepository) load(ctx context.Context, ids []string) ([]*domain.Notification, []string, error) {
	notifications := make([]*domain.Notification, 0, len(ids))
	if len(ids) == 0 {
		return notifications, nil, nil
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, notificationKey(id))
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, nil, err
	}

	var stale []string
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			stale = append(stale, ids[i])
			continue
		}
		var record notificationRecord
		if err := json.Unmarshal([]byte(raw), &record); err != nil {
			return nil, nil, ErrInvalidNotificationData
		}
		notifications = append(notifications, record.toDomain())
	}

	return notifications, stale, nil
}

func (r *notificationRepository) prune(ctx context.Context, indexKey string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	members := make([]any, 0, len(ids))
	for _, id := range ids {
		members = append(members, id)
	}
	return r.client.ZRem(ctx, indexKey, members...).Err()
}

func (r *notificationRepository) MarkSent(ctx context.Context, notificationID string, sentAt time.Time) error {
	n, err := r.get(ctx, notificationID)
	if err != nil {
		return err
	}

	n.MarkSent(sentAt)

	data, err := json.Marshal(toNotificationRecord(n))
	if err != nil {
		return ErrInvalidNotificationData
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, notificationKey(n.ID), data, redis.KeepTTL)
	pipe.ZRem(ctx, userPendingKeyPrefix+n.UserID, n.ID)
	pipe.ZRem(ctx, duePendingKey, n.ID)

	_, err = pipe.Exec(ctx)
	return err
}
