package config

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/KasumiMercury/primind-slot-scheduler/internal/observability/logging"
)

type Config struct {
	Port         string
	LogLevel     slog.Leveler // nil leaves the per-environment default
	TaskQueue    TaskQueueConfig
	Redis        *RedisConfig
	Sync         *SyncConfig
	Catalogue    *CatalogueConfig
	Notification *NotificationConfig
}

type TaskQueueConfig struct {
	PrimindTasksURL string
	QueueName       string

	GCloudProjectID  string
	GCloudLocationID string
	GCloudQueueID    string
	GCloudTargetURL  string

	MaxRetries int
}

func Load() (*Config, error) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	redisConfig, err := LoadRedisConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:         port,
		LogLevel:     parseLogLevel(os.Getenv("LOG_LEVEL")),
		TaskQueue:    LoadTaskQueueConfig(),
		Redis:        redisConfig,
		Sync:         LoadSyncConfig(),
		Catalogue:    LoadCatalogueConfig(),
		Notification: LoadNotificationConfig(),
	}, nil
}

func LoadTaskQueueConfig() TaskQueueConfig {
	queueName := os.Getenv("TASK_QUEUE_NAME")
	if queueName == "" {
		queueName = "default"
	}

	return TaskQueueConfig{
		PrimindTasksURL: os.Getenv("PRIMIND_TASKS_URL"),
		QueueName:       queueName,

		GCloudProjectID:  os.Getenv("GCLOUD_PROJECT_ID"),
		GCloudLocationID: os.Getenv("GCLOUD_LOCATION_ID"),
		GCloudQueueID:    os.Getenv("GCLOUD_QUEUE_ID"),
		GCloudTargetURL:  os.Getenv("GCLOUD_TARGET_URL"),

		MaxRetries: positiveIntEnv("TASK_QUEUE_MAX_RETRIES", 3),
	}
}

func parseLogLevel(level string) slog.Leveler {
	if parsed, ok := logging.ParseLevel(level); ok {
		return parsed
	}
	return nil
}

// positiveIntEnv reads key as a positive integer, falling back to def when
// the variable is unset or malformed.
func positiveIntEnv(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			return parsed
		}
	}
	return def
}
