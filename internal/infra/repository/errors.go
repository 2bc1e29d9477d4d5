package repository

import "errors"

var (
	ErrRedisConnection         = errors.New("redis connection error")
	ErrInvalidSlotData         = errors.New("invalid slot data")
	ErrInvalidNotificationData = errors.New("invalid notification data")
	ErrInvalidSettingsData     = errors.New("invalid settings data")
	ErrInvalidIntegrationData  = errors.New("invalid integration data")
)
