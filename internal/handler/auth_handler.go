package handler

import (
	"net/http"

	"quickqueue/internal/middleware"
	"quickqueue/internal/service"
	"quickqueue/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	service service.AuthService
}

func NewAuthHandler(service service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) RegisterRoutes(r *gin.Engine, auth *middleware.AuthMiddleware) {
	router := r.Group("/api/auth")
	{
		router.GET("me", auth.CurrentUser(), h.GetMe)
		router.POST("session", h.CreateSession)
		router.POST("logout", h.Logout)
	}
}

func (h *AuthHandler) GetMe(c *gin.Context) {
	user := middleware.UserFrom(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Not authenticated",
		})
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) CreateSession(c *gin.Context) {
	sessionID := c.GetHeader("X-Session-ID")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Session ID required",
		})
		return
	}

	user, token, err := h.service.CreateSession(c, sessionID)
	if err != nil {
		logger.WithComponent("handler").Error("session creation failed",
			zap.String("operation", "CreateSession"), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Session creation failed",
		})
		return
	}

	maxAge := int(h.service.SessionTTL().Seconds())
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(middleware.SessionCookieName, token, maxAge, "/", "", true, true)

	c.JSON(http.StatusOK, gin.H{
		"user":    user,
		"message": "Session created successfully",
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	token := middleware.TokenFrom(c)
	if token != "" {
		if err := h.service.Logout(c, token); err != nil {
			logger.WithComponent("handler").Warn("logout failed",
				zap.String("operation", "Logout"), zap.Error(err))
		}
	}

	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", true, true)

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}
