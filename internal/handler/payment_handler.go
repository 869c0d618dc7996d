package handler

import (
	"errors"
	"net/http"

	"quickqueue/internal/model"
	"quickqueue/internal/service"
	apperrors "quickqueue/pkg/app_errors"
	"quickqueue/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	service service.BookingService
}

func NewPaymentHandler(service service.BookingService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

func (h *PaymentHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/payments")
	{
		router.POST("create-order", h.CreateOrder)
		router.POST("verify", h.VerifyPayment)
	}
}

func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	var req model.CreatePaymentOrderRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	order, err := h.service.CreatePaymentOrder(c, req)
	if err != nil {
		h.handlePaymentError(c, err, "CreateOrder")
		return
	}

	c.JSON(http.StatusOK, order)
}

// VerifyPayment 是 gateway 的回調入口：驗證失敗回 200 帶錯誤內容，
// 讓 gateway 不會對著我們無限重試
func (h *PaymentHandler) VerifyPayment(c *gin.Context) {
	var req model.VerifyPaymentRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	result, err := h.service.VerifyPayment(c, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrSignatureInvalid) {
			logger.WithComponent("handler").Warn("payment signature invalid",
				zap.String("operation", "VerifyPayment"),
				zap.String("order_id", req.RazorpayOrderID))
			c.JSON(http.StatusOK, model.PaymentVerification{
				Status:  "error",
				Message: "Payment verification failed",
			})
			return
		}
		h.handlePaymentError(c, err, "VerifyPayment")
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *PaymentHandler) handlePaymentError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrBookingNotFound):
		log.Warn("Booking not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Booking not found",
		})
	case errors.Is(err, apperrors.ErrPaymentProvider):
		log.Error("Payment provider error")
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Payment order creation failed",
		})
	case errors.Is(err, apperrors.ErrInvalidState):
		log.Warn("Invalid payment state")
		c.JSON(http.StatusConflict, gin.H{
			"error": "Payment not in a verifiable state",
		})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
