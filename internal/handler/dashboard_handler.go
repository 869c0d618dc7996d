package handler

import (
	"net/http"

	"quickqueue/internal/middleware"
	"quickqueue/internal/service"
	"quickqueue/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(service service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

func (h *DashboardHandler) RegisterRoutes(r *gin.Engine, auth *middleware.AuthMiddleware) {
	router := r.Group("/api/dashboard")
	{
		router.GET("organizer", auth.CurrentUser(), auth.RequireOrganizer(), h.GetOrganizerDashboard)
		router.GET("admin", auth.CurrentUser(), auth.RequireAdmin(), h.GetAdminDashboard)
	}
}

func (h *DashboardHandler) GetOrganizerDashboard(c *gin.Context) {
	dashboard, err := h.service.Organizer(c, middleware.UserFrom(c))
	if err != nil {
		h.handleDashboardError(c, err, "GetOrganizerDashboard")
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

func (h *DashboardHandler) GetAdminDashboard(c *gin.Context) {
	dashboard, err := h.service.Admin(c)
	if err != nil {
		h.handleDashboardError(c, err, "GetAdminDashboard")
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

func (h *DashboardHandler) handleDashboardError(c *gin.Context, err error, operation string) {
	logger.WithComponent("handler").Error("dashboard query failed",
		zap.String("operation", operation), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": "Internal server error",
	})
}
