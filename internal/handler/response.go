package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-slot-scheduler/internal/domain"
)

const (
	UserIDHeader           = "X-User-ID"
	SubscriptionTierHeader = "X-Subscription-Tier"

	userIDKey = "user_id"
	tierKey   = "subscription_tier"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func respondError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: code, Message: message})
}

// respondServiceError maps a service error onto its HTTP status. Internal
// failures are logged and reported without detail.
func respondServiceError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	switch {
	case errors.Is(err, domain.ErrValidation):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
	case errors.Is(err, domain.ErrUpstream):
		slog.WarnContext(ctx, "calendar provider request failed",
			slog.String("path", c.FullPath()),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusBadGateway, "upstream_error", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		respondError(c, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, domain.ErrSlotTerminal):
		respondError(c, http.StatusConflict, "conflict", err.Error())
	default:
		slog.ErrorContext(ctx, "request processing failed",
			slog.String("path", c.FullPath()),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

// RequireUser reads the identity headers set by the upstream gateway.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader(UserIDHeader)
		if userID == "" {
			respondError(c, http.StatusUnauthorized, "unauthorized", UserIDHeader+" header is required")
			return
		}
		c.Set(userIDKey, userID)
		c.Set(tierKey, domain.ParseSubscriptionTier(c.GetHeader(SubscriptionTierHeader)))
		c.Next()
	}
}

func userID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

func tier(c *gin.Context) domain.SubscriptionTier {
	if t, ok := c.Get(tierKey); ok {
		if st, ok := t.(domain.SubscriptionTier); ok {
			return st
		}
	}
	return domain.TierFree
}
