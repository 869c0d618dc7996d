package handler

import (
	"net/http"

	"quickqueue/internal/model"
	"quickqueue/internal/service"
	"quickqueue/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ContactHandler struct {
	service service.ContactService
}

func NewContactHandler(service service.ContactService) *ContactHandler {
	return &ContactHandler{service: service}
}

func (h *ContactHandler) RegisterRoutes(r *gin.Engine) {
	r.POST("/api/contact", h.SubmitContact)
}

func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var req model.CreateContactRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	if _, err := h.service.Submit(c, req); err != nil {
		logger.WithComponent("handler").Error("contact submission failed",
			zap.String("operation", "SubmitContact"), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Message submitted successfully",
	})
}
