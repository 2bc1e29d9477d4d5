package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-slot-scheduler/internal/domain"
	"github.com/KasumiMercury/primind-slot-scheduler/internal/service/detect"
	"github.com/KasumiMercury/primind-slot-scheduler/internal/service/match"
	"github.com/KasumiMercury/primind-slot-scheduler/internal/service/settings"
	"github.com/KasumiMercury/primind-slot-scheduler/internal/service/slots"
)

type DetectRequest struct {
	Events   []domain.CalendarEvent   `json:"events"`
	Settings *domain.SettingsOverride `json:"settings"`
	Now      *time.Time               `json:"now"`
}

type SlotListResponse struct {
	Slots []slots.SlotView `json:"slots"`
	Count int              `json:"count"`
}

type DetectResponse struct {
	Slots []*domain.FreeSlot `json:"slots"`
	Count int                `json:"count"`
}

type SlotHandler struct {
	slotsService    *slots.Service
	settingsService *settings.Service
	detector        *detect.Detector
	catalogue       domain.ActionCatalogue
	now             func() time.Time
}

func NewSlotHandler(
	slotsService *slots.Service,
	settingsService *settings.Service,
	detector *detect.Detector,
	catalogue domain.ActionCatalogue,
) *SlotHandler {
	return &SlotHandler{
		slotsService:    slotsService,
		settingsService: settingsService,
		detector:        detector,
		catalogue:       catalogue,
		now:             time.Now,
	}
}

// HandleDetect runs detection over the posted events without touching the
// store. Settings in the body are applied over the defaults.
func (h *SlotHandler) HandleDetect(c *gin.Context) {
	ctx := c.Request.Context()

	var req DetectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	merged := domain.DefaultDetectionSettings().Merge(req.Settings)
	if err := settings.Validate(merged); err != nil {
		respondServiceError(c, err)
		return
	}

	now := h.now()
	if req.Now != nil {
		now = *req.Now
	}

	detected, err := h.detector.DetectFreeSlots(ctx, req.Events, merged, now)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	actions, err := h.catalogue.ListActions(ctx)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	user := userID(c)
	for _, slot := range detected {
		slot.UserID = user
		if action := match.MatchActionToSlot(slot, actions, tier(c)); action != nil {
			id := action.ID
			slot.SuggestedActionID = &id
		}
	}

	slog.InfoContext(ctx, "detection preview completed",
		slog.String("user_id", user),
		slog.Int("event_count", len(req.Events)),
		slog.Int("slot_count", len(detected)),
	)

	c.JSON(http.StatusOK, DetectResponse{Slots: detected, Count: len(detected)})
}

func (h *SlotHandler) HandleToday(c *gin.Context) {
	views, err := h.slotsService.Today(c.Request.Context(), userID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SlotListResponse{Slots: views, Count: len(views)})
}

func (h *SlotHandler) HandleWeek(c *gin.Context) {
	views, err := h.slotsService.Week(c.Request.Context(), userID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SlotListResponse{Slots: views, Count: len(views)})
}

func (h *SlotHandler) HandleNext(c *gin.Context) {
	view, err := h.slotsService.Next(c.Request.Context(), userID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slot": view})
}

func (h *SlotHandler) HandleDismiss(c *gin.Context) {
	slot, err := h.slotsService.Dismiss(c.Request.Context(), userID(c), c.Param("slot_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, slots.SlotView{FreeSlot: slot, Status: slot.Status()})
}

func (h *SlotHandler) HandleActionTaken(c *gin.Context) {
	slot, err := h.slotsService.MarkActionTaken(c.Request.Context(), userID(c), c.Param("slot_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, slots.SlotView{FreeSlot: slot, Status: slot.Status()})
}

func (h *SlotHandler) HandleGetSettings(c *gin.Context) {
	current, err := h.settingsService.Get(c.Request.Context(), userID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, current)
}

func (h *SlotHandler) HandleUpdateSettings(c *gin.Context) {
	var patch domain.SettingsOverride
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	updated, err := h.settingsService.Update(c.Request.Context(), userID(c), &patch)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// WithClock replaces the time source used when a preview omits now.
func (h *SlotHandler) WithClock(now func() time.Time) *SlotHandler {
	h.now = now
	return h
}
