package handler

import (
	"errors"
	"net/http"

	"quickqueue/internal/middleware"
	"quickqueue/internal/model"
	"quickqueue/internal/service"
	apperrors "quickqueue/pkg/app_errors"
	"quickqueue/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type EventHandler struct {
	service service.EventService
}

func NewEventHandler(service service.EventService) *EventHandler {
	return &EventHandler{service: service}
}

func (h *EventHandler) RegisterRoutes(r *gin.Engine, auth *middleware.AuthMiddleware) {
	router := r.Group("/api")
	{
		router.GET("events", h.GetEvents)
		router.GET("events/:event_id", h.GetEvent)
		router.POST("events", auth.CurrentUser(), auth.RequireOrganizer(), h.CreateEvent)
		router.PUT("events/:event_id", auth.CurrentUser(), auth.RequireOrganizer(), h.UpdateEvent)
	}
}

func (h *EventHandler) GetEvents(c *gin.Context) {
	var filter model.EventFilter
	if err := BindQuery(c, &filter); err != nil {
		return
	}

	events, err := h.service.List(c, filter)
	if err != nil {
		h.handleEventError(c, err, "GetEvents")
		return
	}

	c.JSON(http.StatusOK, events)
}

func (h *EventHandler) GetEvent(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("event_id"))
	if err != nil {
		h.handleEventError(c, apperrors.ErrEventNotFound, "GetEvent")
		return
	}

	event, err := h.service.GetByEventID(c, eventID)
	if err != nil {
		h.handleEventError(c, err, "GetEvent")
		return
	}

	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req model.CreateEventRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	event, err := h.service.Create(c, req, middleware.UserFrom(c))
	if err != nil {
		h.handleEventError(c, err, "CreateEvent")
		return
	}

	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) UpdateEvent(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("event_id"))
	if err != nil {
		h.handleEventError(c, apperrors.ErrEventNotFound, "UpdateEvent")
		return
	}

	var req model.CreateEventRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	event, err := h.service.Update(c, eventID, req, middleware.UserFrom(c))
	if err != nil {
		h.handleEventError(c, err, "UpdateEvent")
		return
	}

	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) handleEventError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrEventNotFound):
		log.Warn("Event not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Event not found",
		})
	case errors.Is(err, apperrors.ErrForbidden):
		log.Warn("Not authorized to edit this event")
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Not authorized to edit this event",
		})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
