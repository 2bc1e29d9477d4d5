//go:build !gcloud

package taskqueue

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/KasumiMercury/primind-slot-scheduler/internal/observability/logging"
	"github.com/KasumiMercury/primind-slot-scheduler/internal/observability/tracing"
)

// HTTPTasksClient posts tasks to a Cloud Tasks compatible HTTP emulator.
type HTTPTasksClient struct {
	baseURL    string
	queueName  string
	httpClient *http.Client
	maxRetries int
}

func NewHTTPTasksClient(baseURL, queueName string, maxRetries int) *HTTPTasksClient {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	return &HTTPTasksClient{
		baseURL:   baseURL,
		queueName: queueName,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		maxRetries: maxRetries,
	}
}

func (c *HTTPTasksClient) RegisterNotification(ctx context.Context, task *NotificationTask) (*TaskResponse, error) {
	payload, err := json.Marshal(task)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal notification task: %w", err)
	}

	taskReq := HTTPTaskRequest{
		Task: HTTPTask{
			Name: task.NotificationID,
			HTTPRequest: HTTPTaskHTTPRequest{
				Body: base64.StdEncoding.EncodeToString(payload),
				Headers: map[string]string{
					"Content-Type": "application/json",
				},
			},
		},
	}
	if !task.ScheduleAt.IsZero() {
		taskReq.Task.ScheduleTime = task.ScheduleAt.UTC().Format(time.RFC3339)
	}

	reqBody, err := json.Marshal(taskReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal task request: %w", err)
	}

	url := fmt.Sprintf("%s/tasks", c.baseURL)
	if c.queueName != "" && c.queueName != "default" {
		url = fmt.Sprintf("%s/tasks/%s", c.baseURL, c.queueName)
	}

	return withRetry(ctx, c.maxRetries, task.NotificationID, func() (*TaskResponse, error) {
		return c.doRequest(ctx, url, reqBody, task)
	})
}

func (c *HTTPTasksClient) doRequest(ctx context.Context, url string, reqBody []byte, task *NotificationTask) (*TaskResponse, error) {
	slog.DebugContext(ctx, "registering notification task",
		slog.String("url", url),
		slog.String("notification_id", task.NotificationID),
		slog.String("user_id", task.UserID),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(logging.RequestIDHeader, logging.ValidateAndExtractRequestID(logging.RequestIDFromContext(ctx)))
	tracing.InjectToHTTPRequest(ctx, req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.WarnContext(ctx, "failed to send task request",
			slog.String("notification_id", task.NotificationID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	// A task with the same name already exists: the notification was queued before.
	if resp.StatusCode == http.StatusConflict {
		slog.InfoContext(ctx, "notification task already registered",
			slog.String("notification_id", task.NotificationID),
		)
		return &TaskResponse{Name: task.NotificationID, ScheduleTime: task.ScheduleAt}, nil
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		slog.WarnContext(ctx, "unexpected status code from task queue",
			slog.String("notification_id", task.NotificationID),
			slog.Int("status_code", resp.StatusCode),
		)
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var taskResp HTTPTaskResponse
	if err := json.NewDecoder(resp.Body).Decode(&taskResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	scheduleTime, _ := time.Parse(time.RFC3339, taskResp.ScheduleTime)
	createTime, _ := time.Parse(time.RFC3339, taskResp.CreateTime)

	slog.InfoContext(ctx, "notification task registered",
		slog.String("task_name", taskResp.Name),
		slog.String("notification_id", task.NotificationID),
		slog.String("user_id", task.UserID),
	)

	return &TaskResponse{
		Name:         taskResp.Name,
		ScheduleTime: scheduleTime,
		CreateTime:   createTime,
	}, nil
}
