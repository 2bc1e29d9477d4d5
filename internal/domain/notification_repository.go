package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=notification_repository.go -destination=notification_repository_mock.go -package=domain

type NotificationRepository interface {
	ExistsForSlot(ctx context.Context, userID, slotID string, notificationType NotificationType) (bool, error)
	// CreateIfAbsent stores n unless a notification of the same type already
	// exists for (n.UserID, n.SlotID). It reports whether n was stored.
	CreateIfAbsent(ctx context.Context, n *Notification) (bool, error)
	GetNotification(ctx context.Context, userID, notificationID string) (*Notification, error)
	ListPending(ctx context.Context, userID string, now time.Time, limit int) ([]*Notification, error)
	ListDue(ctx context.Context, now time.Time, limit int) ([]*Notification, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]*Notification, error)
	MarkSent(ctx context.Context, notificationID string, sentAt time.Time) error
}
