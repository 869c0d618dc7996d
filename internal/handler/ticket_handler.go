package handler

import (
	"errors"
	"net/http"

	"quickqueue/internal/middleware"
	"quickqueue/internal/service"
	apperrors "quickqueue/pkg/app_errors"
	"quickqueue/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type TicketHandler struct {
	service service.BookingService
}

func NewTicketHandler(service service.BookingService) *TicketHandler {
	return &TicketHandler{service: service}
}

func (h *TicketHandler) RegisterRoutes(r *gin.Engine, auth *middleware.AuthMiddleware) {
	router := r.Group("/api")
	{
		router.GET("tickets/:ticket_number", h.GetTicket)
		router.POST("checkin/:ticket_number", auth.CurrentUser(), auth.RequireOrganizer(), h.CheckIn)
	}
}

func (h *TicketHandler) GetTicket(c *gin.Context) {
	ticket, err := h.service.GetTicket(c, c.Param("ticket_number"))
	if err != nil {
		h.handleTicketError(c, err, "GetTicket")
		return
	}

	c.JSON(http.StatusOK, ticket)
}

func (h *TicketHandler) CheckIn(c *gin.Context) {
	ticketNumber := c.Param("ticket_number")

	booking, err := h.service.CheckIn(c, ticketNumber, middleware.UserFrom(c))
	if err != nil {
		h.handleTicketError(c, err, "CheckIn")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Ticket checked in successfully",
		"ticket_number": booking.TicketNumber,
	})
}

func (h *TicketHandler) handleTicketError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrTicketNotFound):
		log.Warn("Ticket not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Ticket not found",
		})
	case errors.Is(err, apperrors.ErrEventNotFound):
		log.Warn("Event not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Event not found",
		})
	case errors.Is(err, apperrors.ErrForbidden):
		log.Warn("Not authorized to check in this ticket")
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Not authorized to check in this ticket",
		})
	case errors.Is(err, apperrors.ErrInvalidState):
		log.Warn("Ticket payment not confirmed")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Ticket payment not confirmed",
		})
	case errors.Is(err, apperrors.ErrAlreadyCheckedIn):
		log.Warn("Ticket already checked in")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Ticket already checked in",
		})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
