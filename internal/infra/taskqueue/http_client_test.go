//go:build !gcloud

package taskqueue

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestHTTPTasksClient_RegisterNotification(t *testing.T) {
	scheduleAt := time.Date(2026, 3, 2, 9, 55, 0, 0, time.UTC)

	var gotPath string
	var gotReq HTTPTaskRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(HTTPTaskResponse{
			Name:         "queues/push/tasks/notif_1",
			ScheduleTime: scheduleAt.Format(time.RFC3339),
			CreateTime:   scheduleAt.Add(-time.Hour).Format(time.RFC3339),
		})
	}))
	defer srv.Close()

	client := NewHTTPTasksClient(srv.URL, "push", 1)
	resp, err := client.RegisterNotification(context.Background(), &NotificationTask{
		ScheduleAt:     scheduleAt,
		NotificationID: "notif_1",
		UserID:         "user_1",
		SlotID:         "slot_1",
		TaskType:       TaskTypeFreeSlot,
		Payload:        map[string]string{"title": "Free slot in 5 minutes"},
	})
	if err != nil {
		t.Fatalf("RegisterNotification() error = %v", err)
	}

	if gotPath != "/tasks/push" {
		t.Errorf("path = %q, want /tasks/push", gotPath)
	}
	if gotReq.Task.ScheduleTime != "2026-03-02T09:55:00Z" {
		t.Errorf("ScheduleTime = %q", gotReq.Task.ScheduleTime)
	}
	if gotReq.Task.Name != "notif_1" {
		t.Errorf("task name = %q, want notif_1", gotReq.Task.Name)
	}

	body, err := base64.StdEncoding.DecodeString(gotReq.Task.HTTPRequest.Body)
	if err != nil {
		t.Fatalf("decode body: %v", err)
	}
	var task map[string]any
	if err := json.Unmarshal(body, &task); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if task["notification_id"] != "notif_1" || task["task_type"] != TaskTypeFreeSlot {
		t.Errorf("task body = %v", task)
	}

	if resp.Name != "queues/push/tasks/notif_1" || !resp.ScheduleTime.Equal(scheduleAt) {
		t.Errorf("response = %+v", resp)
	}
}

func TestHTTPTasksClient_DefaultQueuePath(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewEncoder(w).Encode(HTTPTaskResponse{Name: "t"})
	}))
	defer srv.Close()

	if _, err := NewHTTPTasksClient(srv.URL, "default", 1).RegisterNotification(context.Background(), &NotificationTask{NotificationID: "n"}); err != nil {
		t.Fatalf("RegisterNotification() error = %v", err)
	}
	if gotPath != "/tasks" {
		t.Errorf("path = %q, want /tasks", gotPath)
	}
}

func TestHTTPTasksClient_ConflictIsSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))
	defer srv.Close()

	resp, err := NewHTTPTasksClient(srv.URL, "", 3).RegisterNotification(context.Background(), &NotificationTask{NotificationID: "notif_1"})
	if err != nil {
		t.Fatalf("RegisterNotification() error = %v", err)
	}
	if resp.Name != "notif_1" {
		t.Errorf("Name = %q", resp.Name)
	}
}

func TestHTTPTasksClient_RetriesThenFails(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewHTTPTasksClient(srv.URL, "", 3).RegisterNotification(context.Background(), &NotificationTask{NotificationID: "notif_1"})
	if err == nil {
		t.Fatal("RegisterNotification() error = nil, want failure")
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("server called %d times, want 3", got)
	}
}
