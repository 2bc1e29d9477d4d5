package handler

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the API under rg. Every route except dispatch
// requires the caller's identity headers.
func RegisterRoutes(rg *gin.RouterGroup, slotHandler *SlotHandler, integrationHandler *IntegrationHandler, notificationHandler *NotificationHandler) {
	rg.POST("/notifications/dispatch", notificationHandler.HandleDispatch)

	user := rg.Group("", RequireUser())
	{
		user.POST("/slots/detect", slotHandler.HandleDetect)
		user.GET("/slots/today", slotHandler.HandleToday)
		user.GET("/slots/week", slotHandler.HandleWeek)
		user.GET("/slots/next", slotHandler.HandleNext)
		user.GET("/slots/settings", slotHandler.HandleGetSettings)
		user.PUT("/slots/settings", slotHandler.HandleUpdateSettings)
		user.POST("/slots/:slot_id/dismiss", slotHandler.HandleDismiss)
		user.POST("/slots/:slot_id/action-taken", slotHandler.HandleActionTaken)

		user.GET("/integrations", integrationHandler.HandleList)
		user.POST("/integrations", integrationHandler.HandleRegister)
		user.DELETE("/integrations/:integration_id", integrationHandler.HandleDelete)
		user.POST("/integrations/:integration_id/sync", integrationHandler.HandleSync)

		user.GET("/notifications", notificationHandler.HandleList)
		user.GET("/notifications/pending", notificationHandler.HandlePending)
		user.POST("/notifications/:notification_id/sent", notificationHandler.HandleMarkSent)
	}
}
