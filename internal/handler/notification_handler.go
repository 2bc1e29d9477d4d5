package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-slot-scheduler/internal/domain"
	"github.com/KasumiMercury/primind-slot-scheduler/internal/service/dispatch"
	"github.com/KasumiMercury/primind-slot-scheduler/internal/service/notify"
)

const (
	defaultListLimit = 50
	maxListLimit     = 100
)

type NotificationListResponse struct {
	Notifications []*domain.Notification `json:"notifications"`
	Count         int                    `json:"count"`
}

type NotificationHandler struct {
	notifyService   *notify.Service
	dispatchService *dispatch.Service
}

// NewNotificationHandler builds the handler. dispatchService may be nil when
// no task queue is configured.
func NewNotificationHandler(notifyService *notify.Service, dispatchService *dispatch.Service) *NotificationHandler {
	return &NotificationHandler{
		notifyService:   notifyService,
		dispatchService: dispatchService,
	}
}

func (h *NotificationHandler) HandleList(c *gin.Context) {
	limit := defaultListLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondError(c, http.StatusBadRequest, "validation_error", "limit must be a positive integer")
			return
		}
		limit = min(parsed, maxListLimit)
	}

	list, err := h.notifyService.ListNotifications(c.Request.Context(), userID(c), limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondNotifications(c, list)
}

func (h *NotificationHandler) HandlePending(c *gin.Context) {
	list, err := h.notifyService.GetPendingNotifications(c.Request.Context(), userID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondNotifications(c, list)
}

func (h *NotificationHandler) HandleMarkSent(c *gin.Context) {
	n, err := h.notifyService.MarkSent(c.Request.Context(), userID(c), c.Param("notification_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, n)
}

// HandleDispatch hands every due notification to the task queue.
func (h *NotificationHandler) HandleDispatch(c *gin.Context) {
	ctx := c.Request.Context()

	if h.dispatchService == nil {
		respondError(c, http.StatusServiceUnavailable, "unavailable", "task queue is not configured")
		return
	}

	result, err := h.dispatchService.Dispatch(ctx)
	if err != nil && result == nil {
		respondServiceError(c, err)
		return
	}
	if err != nil {
		slog.WarnContext(ctx, "dispatch completed with failures",
			slog.Int("dispatched_count", result.DispatchedCount),
			slog.Int("failed_count", result.FailedCount),
			slog.String("error", err.Error()),
		)
	}

	c.JSON(http.StatusOK, result)
}

func respondNotifications(c *gin.Context, list []*domain.Notification) {
	if list == nil {
		list = []*domain.Notification{}
	}
	c.JSON(http.StatusOK, NotificationListResponse{Notifications: list, Count: len(list)})
}
