package taskqueue

import "context"

//go:generate mockgen -source=task_queue.go -destination=mock.go -package=taskqueue

// TaskQueue hands a push notification to the delivery worker at ScheduleAt.
type TaskQueue interface {
	RegisterNotification(ctx context.Context, task *NotificationTask) (*TaskResponse, error)
}
