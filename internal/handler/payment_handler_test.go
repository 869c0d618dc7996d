package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"quickqueue/internal/handler"
	"quickqueue/internal/model"
	apperrors "quickqueue/pkg/app_errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBookingService struct {
	createBooking *model.Booking
	createErr     error
	order         *model.PaymentOrder
	orderErr      error
	verifyResult  *model.PaymentVerification
	verifyErr     error
	checkInResult *model.Booking
	checkInErr    error
	ticket        *model.Booking
	ticketErr     error
}

func (s *stubBookingService) CreateBooking(ctx context.Context, req model.CreateBookingRequest, userID *int) (*model.Booking, error) {
	return s.createBooking, s.createErr
}

func (s *stubBookingService) CreatePaymentOrder(ctx context.Context, req model.CreatePaymentOrderRequest) (*model.PaymentOrder, error) {
	return s.order, s.orderErr
}

func (s *stubBookingService) VerifyPayment(ctx context.Context, req model.VerifyPaymentRequest) (*model.PaymentVerification, error) {
	return s.verifyResult, s.verifyErr
}

func (s *stubBookingService) CheckIn(ctx context.Context, ticketNumber string, staff *model.User) (*model.Booking, error) {
	return s.checkInResult, s.checkInErr
}

func (s *stubBookingService) GetTicket(ctx context.Context, ticketNumber string) (*model.Booking, error) {
	return s.ticket, s.ticketErr
}

func setupPaymentRouter(svc *stubBookingService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handler.NewPaymentHandler(svc)
	h.RegisterRoutes(r)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

const verifyBody = `{
	"razorpay_order_id": "order_123",
	"razorpay_payment_id": "pay_456",
	"razorpay_signature": "sig"
}`

func TestPaymentHandler_VerifyPayment(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r := setupPaymentRouter(&stubBookingService{
			verifyResult: &model.PaymentVerification{Status: "success", TicketNumber: "TKT-ABCD1234"},
		})

		w := postJSON(t, r, "/api/payments/verify", verifyBody)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp model.PaymentVerification
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "success", resp.Status)
		assert.Equal(t, "TKT-ABCD1234", resp.TicketNumber)
	})

	t.Run("簽章錯誤回 200 帶錯誤內容，不給 gateway 重試的理由", func(t *testing.T) {
		r := setupPaymentRouter(&stubBookingService{
			verifyErr: apperrors.ErrSignatureInvalid,
		})

		w := postJSON(t, r, "/api/payments/verify", verifyBody)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp model.PaymentVerification
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "error", resp.Status)
		assert.Equal(t, "Payment verification failed", resp.Message)
	})

	t.Run("找不到訂票的結構化結果原樣回傳", func(t *testing.T) {
		r := setupPaymentRouter(&stubBookingService{
			verifyResult: &model.PaymentVerification{Status: "error", Message: "Booking not found"},
		})

		w := postJSON(t, r, "/api/payments/verify", verifyBody)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp model.PaymentVerification
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "error", resp.Status)
		assert.Equal(t, "Booking not found", resp.Message)
	})

	t.Run("缺欄位直接 400", func(t *testing.T) {
		r := setupPaymentRouter(&stubBookingService{})

		w := postJSON(t, r, "/api/payments/verify", `{"razorpay_order_id": "order_123"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestPaymentHandler_CreateOrder(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r := setupPaymentRouter(&stubBookingService{
			order: &model.PaymentOrder{OrderID: "order_123", Amount: 100000, Currency: "INR"},
		})

		w := postJSON(t, r, "/api/payments/create-order",
			`{"booking_id": "3f2504e0-4f89-11d3-9a0c-0305e82c3301", "amount": 1000}`)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp model.PaymentOrder
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "order_123", resp.OrderID)
		assert.Equal(t, int64(100000), resp.Amount)
	})

	t.Run("Failed - Booking not found", func(t *testing.T) {
		r := setupPaymentRouter(&stubBookingService{orderErr: apperrors.ErrBookingNotFound})

		w := postJSON(t, r, "/api/payments/create-order",
			`{"booking_id": "3f2504e0-4f89-11d3-9a0c-0305e82c3301", "amount": 1000}`)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Failed - Provider down 對應 502", func(t *testing.T) {
		r := setupPaymentRouter(&stubBookingService{orderErr: apperrors.ErrPaymentProvider})

		w := postJSON(t, r, "/api/payments/create-order",
			`{"booking_id": "3f2504e0-4f89-11d3-9a0c-0305e82c3301", "amount": 1000}`)

		assert.Equal(t, http.StatusBadGateway, w.Code)
	})
}
