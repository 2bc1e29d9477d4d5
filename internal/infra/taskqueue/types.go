package taskqueue

import "time"

const TaskTypeFreeSlot = "free_slot"

type NotificationTask struct {
	ScheduleAt time.Time `json:"-"`

	NotificationID string `json:"notification_id"`
	UserID         string `json:"user_id"`
	SlotID         string `json:"slot_id"`
	TaskType       string `json:"task_type"`
	Payload        any    `json:"payload"`
}

type TaskResponse struct {
	Name         string    `json:"name"`
	ScheduleTime time.Time `json:"schedule_time"`
	CreateTime   time.Time `json:"create_time"`
}

type HTTPTaskRequest struct {
	Task HTTPTask `json:"task"`
}

type HTTPTask struct {
	Name         string              `json:"name,omitempty"`
	HTTPRequest  HTTPTaskHTTPRequest `json:"httpRequest"`
	ScheduleTime string              `json:"scheduleTime,omitempty"`
}

type HTTPTaskHTTPRequest struct {
	Body    string            `json:"body"`
	Headers map[string]string `json:"headers,omitempty"`
}

type HTTPTaskResponse struct {
	Name         string `json:"name"`
	ScheduleTime string `json:"scheduleTime"`
	CreateTime   string `json:"createTime"`
}
