package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-slot-scheduler/internal/domain"
	"github.com/KasumiMercury/primind-slot-scheduler/internal/service/integration"
	"github.com/KasumiMercury/primind-slot-scheduler/internal/service/syncer"
)

type IntegrationListResponse struct {
	Integrations []*domain.Integration `json:"integrations"`
	Count        int                   `json:"count"`
}

type IntegrationHandler struct {
	integrationService *integration.Service
	syncService        *syncer.Service
}

func NewIntegrationHandler(integrationService *integration.Service, syncService *syncer.Service) *IntegrationHandler {
	return &IntegrationHandler{
		integrationService: integrationService,
		syncService:        syncService,
	}
}

func (h *IntegrationHandler) HandleList(c *gin.Context) {
	list, err := h.integrationService.List(c.Request.Context(), userID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if list == nil {
		list = []*domain.Integration{}
	}
	c.JSON(http.StatusOK, IntegrationListResponse{Integrations: list, Count: len(list)})
}

func (h *IntegrationHandler) HandleRegister(c *gin.Context) {
	var in integration.RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	created, err := h.integrationService.Register(c.Request.Context(), userID(c), in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *IntegrationHandler) HandleDelete(c *gin.Context) {
	if err := h.integrationService.Remove(c.Request.Context(), userID(c), c.Param("integration_id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// HandleSync runs an on-demand sync of one integration for the caller.
func (h *IntegrationHandler) HandleSync(c *gin.Context) {
	result, err := h.syncService.Sync(c.Request.Context(), userID(c), c.Param("integration_id"), tier(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
