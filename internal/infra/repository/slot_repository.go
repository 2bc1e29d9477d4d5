package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-slot-scheduler/internal/domain"
)

type slotRecord struct {
	SlotID            string     `json:"slot_id"`
	UserID            string     `json:"user_id"`
	StartTime         time.Time  `json:"start_time"`
	EndTime           time.Time  `json:"end_time"`
	DurationMinutes   int        `json:"duration_minutes"`
	SuggestedCategory string     `json:"suggested_category"`
	SuggestedActionID *string    `json:"suggested_action_id,omitempty"`
	NotificationSent  bool       `json:"notification_sent"`
	ActionTaken       bool       `json:"action_taken"`
	Dismissed         bool       `json:"dismissed"`
	CreatedAt         time.Time  `json:"created_at"`
	DismissedAt       *time.Time `json:"dismissed_at,omitempty"`
	ActionTakenAt     *time.Time `json:"action_taken_at,omitempty"`
}

func toSlotRecord(s *domain.FreeSlot) slotRecord {
	return slotRecord{
		SlotID:            s.ID,
		UserID:            s.UserID,
		StartTime:         s.Start,
		EndTime:           s.End,
		DurationMinutes:   s.DurationMinutes,
		SuggestedCategory: s.SuggestedCategory,
		SuggestedActionID: s.SuggestedActionID,
		NotificationSent:  s.NotificationSent,
		ActionTaken:       s.ActionTaken,
		Dismissed:         s.Dismissed,
		CreatedAt:         s.CreatedAt,
		DismissedAt:       s.DismissedAt,
		ActionTakenAt:     s.ActionTakenAt,
	}
}

func (r slotRecord) toDomain() *domain.FreeSlot {
	return &domain.FreeSlot{
		ID:                r.SlotID,
		UserID:            r.UserID,
		Start:             r.StartTime,
		End:               r.EndTime,
		DurationMinutes:   r.DurationMinutes,
		SuggestedCategory: r.SuggestedCategory,
		SuggestedActionID: r.SuggestedActionID,
		NotificationSent:  r.NotificationSent,
		ActionTaken:       r.ActionTaken,
		Dismissed:         r.Dismissed,
		CreatedAt:         r.CreatedAt,
		DismissedAt:       r.DismissedAt,
		ActionTakenAt:     r.ActionTakenAt,
	}
}

type slotRepository struct {
	client *redis.Client
}

// NewSlotRepository stores each slot as a JSON document with two per-user
// sorted sets indexing it by start and by end.
func NewSlotRepository(client *redis.Client) domain.SlotRepository {
	return &slotRepository{
		client: client,
	}
}

func (r *slotRepository) SaveSlots(ctx context.Context, slots []*domain.FreeSlot) error {
	if len(slots) == 0 {
		return nil
	}

	payloads := make([][]byte, 0, len(slots))
	for _, s := range slots {
		if s == nil || s.ID == "" || s.UserID == "" {
			return ErrInvalidSlotData
		}

		data, err := json.Marshal(toSlotRecord(s))
		if err != nil {
			return ErrInvalidSlotData
		}
		payloads = append(payloads, data)
	}

	pipe := r.client.TxPipeline()
	for i, s := range slots {
		data := payloads[i]
		key := slotKey(s.UserID, s.ID)
		pipe.Set(ctx, key, data, 0)
		pipe.ExpireAt(ctx, key, s.End.Add(slotRetention))
		pipe.ZAdd(ctx, slotsByStartKeyPrefix+s.UserID, redis.Z{Score: unixScore(s.Start), Member: s.ID})
		pipe.ZAdd(ctx, slotsByEndKeyPrefix+s.UserID, redis.Z{Score: unixScore(s.End), Member: s.ID})
	}

	_, err := pipe.Exec(ctx)
	return err
}

func (r *slotRepository) GetSlot(ctx context.Context, userID, slotID string) (*domain.FreeSlot, error) {
	data, err := r.client.Get(ctx, slotKey(userID, slotID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSlotNotFound
		}
		return nil, err
	}

	var record slotRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, ErrInvalidSlotData
	}

	return record.toDomain(), nil
}

func (r *slotRepository) ListSlotsInRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.FreeSlot, error) {
	ids, err := r.client.ZRangeByScore(ctx, slotsByStartKeyPrefix+userID, &redis.ZRangeBy{
		Min: scoreArg(from),
		Max: "(" + scoreArg(to),
	}).Result()
	if err != nil {
		return nil, err
	}

	return r.loadSlots(ctx, userID, ids)
}

func (r *slotRepository) loadSlots(ctx context.Context, userID string, ids []string) ([]*domain.FreeSlot, error) {
	slots := make([]*domain.FreeSlot, 0, len(ids))
	if len(ids) == 0 {
		return slots, nil
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, slotKey(userID, id))
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			// expired document still indexed
			continue
		}
		var record slotRecord
		if err := json.Unmarshal([]byte(raw), &record); err != nil {
			return nil, ErrInvalidSlotData
		}
		slots = append(slots, record.toDomain())
	}

	return slots, nil
}

func (r *slotRepository) DeleteSlotsEndedBefore(ctx context.Context, userID string, cutoff time.Time) (int, error) {
	ids, err := r.client.ZRangeByScore(ctx, slotsByEndKeyPrefix+userID, &redis.ZRangeBy{
		Min: "-inf",
		Max: "(" + scoreArg(cutoff),
	}).Result()
	if err != nil {
		return 0, err
	}

	return r.deleteSlots(ctx, userID, ids)
}

func (r *slotRepository) DeleteSlotsByUser(ctx context.Context, userID string) (int, error) {
	ids, err := r.client.ZRange(ctx, slotsByStartKeyPrefix+userID, 0, -1).Result()
	if err != nil {
		return 0, err
	}

	return r.deleteSlots(ctx, userID, ids)
}

func (r *slotRepository) deleteSlots(ctx context.Context, userID string, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	keys := make([]string, 0, len(ids))
	members := make([]any, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, slotKey(userID, id))
		members = append(members, id)
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, keys...)
	pipe.ZRem(ctx, slotsByStartKeyPrefix+userID, members...)
	pipe.ZRem(ctx, slotsByEndKeyPrefix+userID, members...)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}

	return len(ids), nil
}
