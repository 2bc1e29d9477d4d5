package repository

import (
	"fmt"
	"time"
)

const (
	slotKeyPrefix              = "slot:"
	slotsByStartKeyPrefix      = "slots:start:"
	slotsByEndKeyPrefix        = "slots:end:"
	notificationKeyPrefix      = "notification:"
	notificationGuardKeyPrefix = "notification:guard:"
	userNotificationsKeyPrefix = "notifications:user:"
	userPendingKeyPrefix       = "notifications:pending:"
	duePendingKey              = "notifications:pending"
	settingsKeyPrefix          = "settings:"
	integrationKeyPrefix       = "integration:"
	userIntegrationsKeyPrefix  = "integrations:"

	slotRetention   = 24 * time.Hour     // kept past the slot end
	notificationTTL = 7 * 24 * time.Hour // 7 days
)

func slotKey(userID, slotID string) string {
	return slotKeyPrefix + userID + ":" + slotID
}

func notificationKey(notificationID string) string {
	return notificationKeyPrefix + notificationID
}

func notificationGuardKey(userID, slotID, notificationType string) string {
	return fmt.Sprintf("%s%s:%s:%s", notificationGuardKeyPrefix, userID, slotID, notificationType)
}

func integrationKey(userID, integrationID string) string {
	return integrationKeyPrefix + userID + ":" + integrationID
}

func unixScore(t time.Time) float64 {
	return float64(t.UnixMilli())
}

func scoreArg(t time.Time) string {
	return fmt.Sprintf("%d", t.UnixMilli())
}
