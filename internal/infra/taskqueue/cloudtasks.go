//go:build gcloud

package taskqueue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	cloudtasks "cloud.google.com/go/cloudtasks/apiv2"
	taskspb "cloud.google.com/go/cloudtasks/apiv2/cloudtaskspb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"
)

type CloudTasksClient struct {
	client     *cloudtasks.Client
	projectID  string
	locationID string
	queueID    string
	targetURL  string
	maxRetries int
}

type CloudTasksConfig struct {
	ProjectID  string
	LocationID string
	QueueID    string
	TargetURL  string
	MaxRetries int
}

func NewCloudTasksClient(ctx context.Context, cfg CloudTasksConfig) (*CloudTasksClient, error) {
	client, err := cloudtasks.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloud tasks client: %w", err)
	}

	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	return &CloudTasksClient{
		client:     client,
		projectID:  cfg.ProjectID,
		locationID: cfg.LocationID,
		queueID:    cfg.QueueID,
		targetURL:  cfg.TargetURL,
		maxRetries: maxRetries,
	}, nil
}

func (c *CloudTasksClient) queuePath() string {
	return fmt.Sprintf("projects/%s/locations/%s/queues/%s", c.projectID, c.locationID, c.queueID)
}

func (c *CloudTasksClient) RegisterNotification(ctx context.Context, task *NotificationTask) (*TaskResponse, error) {
	payload, err := json.Marshal(task)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal notification task: %w", err)
	}

	// Naming the task after the notification lets Cloud Tasks reject duplicates.
	cloudTask := &taskspb.Task{
		Name: fmt.Sprintf("%s/tasks/%s", c.queuePath(), task.NotificationID),
		MessageType: &taskspb.Task_HttpRequest{
			HttpRequest: &taskspb.HttpRequest{
				HttpMethod: taskspb.HttpMethod_POST,
				Url:        c.targetURL,
				Headers: map[string]string{
					"Content-Type": "application/json",
				},
				Body: payload,
			},
		},
	}
	if !task.ScheduleAt.IsZero() {
		cloudTask.ScheduleTime = timestamppb.New(task.ScheduleAt)
	}

	req := &taskspb.CreateTaskRequest{
		Parent: c.queuePath(),
		Task:   cloudTask,
	}

	return withRetry(ctx, c.maxRetries, task.NotificationID, func() (*TaskResponse, error) {
		return c.createTask(ctx, req, task)
	})
}

func (c *CloudTasksClient) createTask(ctx context.Context, req *taskspb.CreateTaskRequest, task *NotificationTask) (*TaskResponse, error) {
	slog.DebugContext(ctx, "registering notification to Cloud Tasks",
		slog.String("queue_path", req.Parent),
		slog.String("notification_id", task.NotificationID),
		slog.String("user_id", task.UserID),
	)

	createdTask, err := c.client.CreateTask(ctx, req)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			slog.InfoContext(ctx, "notification task already registered",
				slog.String("notification_id", task.NotificationID),
			)
			return &TaskResponse{Name: req.Task.Name, ScheduleTime: task.ScheduleAt}, nil
		}
		slog.WarnContext(ctx, "failed to create cloud task",
			slog.String("notification_id", task.NotificationID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to create cloud task: %w", err)
	}

	slog.InfoContext(ctx, "notification task registered to Cloud Tasks",
		slog.String("task_name", createdTask.Name),
		slog.String("notification_id", task.NotificationID),
		slog.String("user_id", task.UserID),
	)

	var scheduleTime, createTime time.Time
	if createdTask.ScheduleTime != nil {
		scheduleTime = createdTask.ScheduleTime.AsTime()
	}
	if createdTask.CreateTime != nil {
		createTime = createdTask.CreateTime.AsTime()
	}

	return &TaskResponse{
		Name:         createdTask.Name,
		ScheduleTime: scheduleTime,
		CreateTime:   createTime,
	}, nil
}

func (c *CloudTasksClient) Close() error {
	return c.client.Close()
}
