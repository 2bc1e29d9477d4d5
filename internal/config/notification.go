package config

import "os"

const (
	pendingNotificationLimitEnv = "PENDING_NOTIFICATION_LIMIT"
	dispatchBatchLimitEnv       = "DISPATCH_BATCH_LIMIT"
	dispatchCronEnv             = "DISPATCH_CRON"

	defaultPendingNotificationLimit = 20
	defaultDispatchBatchLimit       = 100
)

type NotificationConfig struct {
	PendingLimit       int
	DispatchBatchLimit int
	// DispatchCron is a standard five-field cron spec. Empty disables the
	// in-process dispatch pump.
	DispatchCron string
}

func LoadNotificationConfig() *NotificationConfig {
	return &NotificationConfig{
		PendingLimit:       positiveIntEnv(pendingNotificationLimitEnv, defaultPendingNotificationLimit),
		DispatchBatchLimit: positiveIntEnv(dispatchBatchLimitEnv, defaultDispatchBatchLimit),
		DispatchCron:       os.Getenv(dispatchCronEnv),
	}
}
