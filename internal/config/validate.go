package config

import (
	"errors"
	"fmt"

	"github.com/robfig/cron/v3"
)

func ValidateForRun(cfg *Config) error {
	var errs []error

	if err := cfg.Redis.Validate(); err != nil {
		errs = append(errs, err)
	}

	if cfg.Notification != nil && cfg.Notification.DispatchCron != "" {
		if _, err := cron.ParseStandard(cfg.Notification.DispatchCron); err != nil {
			errs = append(errs, fmt.Errorf("%w: %v", ErrInvalidDispatchCron, err))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
