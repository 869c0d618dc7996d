package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PaymentStatus 付款狀態類型
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// IsValid 驗證狀態是否有效
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}

// CanTransitionTo 檢查是否可以轉換到目標狀態。
// 狀態只能往前走：pending → paid / failed，paid → refunded，
// failed 和 refunded 是終態
func (s PaymentStatus) CanTransitionTo(target PaymentStatus) bool {
	transitions := map[PaymentStatus][]PaymentStatus{
		PaymentStatusPending:  {PaymentStatusPaid, PaymentStatusFailed},
		PaymentStatusPaid:     {PaymentStatusRefunded},
		PaymentStatusFailed:   {},
		PaymentStatusRefunded: {},
	}

	allowed, ok := transitions[s]
	if !ok {
		return false
	}

	for _, status := range allowed {
		if status == target {
			return true
		}
	}
	return false
}

// Booking 訂票模型
type Booking struct {
	ID                int           `json:"-" db:"id"`
	BookingID         uuid.UUID     `json:"id" db:"booking_id"`
	EventID           int           `json:"-" db:"event_id"`
	UserID            *int          `json:"-" db:"user_id"` // 允許訪客訂票
	BuyerName         string        `json:"buyer_name" db:"buyer_name"`
	BuyerEmail        string        `json:"buyer_email" db:"buyer_email"`
	BuyerPhone        string        `json:"buyer_phone" db:"buyer_phone"`
	TicketType        string        `json:"ticket_type" db:"ticket_type"`
	Quantity          int           `json:"quantity" db:"quantity"`
	TotalAmount       float64       `json:"total_amount" db:"total_amount"`
	RazorpayOrderID   *string       `json:"razorpay_order_id,omitempty" db:"razorpay_order_id"`
	RazorpayPaymentID *string       `json:"razorpay_payment_id,omitempty" db:"razorpay_payment_id"`
	PaymentStatus     PaymentStatus `json:"payment_status" db:"payment_status"`
	QRCode            *string       `json:"qr_code,omitempty" db:"qr_code"`
	TicketNumber      string        `json:"ticket_number" db:"ticket_number"`
	CheckedIn         bool          `json:"checked_in" db:"checked_in"`
	CheckedInAt       *time.Time    `json:"checked_in_at,omitempty" db:"checked_in_at"`
	CreatedAt         time.Time     `json:"created_at" db:"created_at"`
}

// NewTicketNumber 產生票號：TKT- 加 UUID 前 8 碼大寫
func NewTicketNumber() string {
	return fmt.Sprintf("TKT-%s", strings.ToUpper(uuid.New().String()[:8]))
}

// QRPayload 票券 QR 內容，付款成功時產生一次
func (b *Booking) QRPayload(eventID uuid.UUID) string {
	return fmt.Sprintf("TICKET:%s:EVENT:%s", b.TicketNumber, eventID)
}

// CreateBookingRequest 建立訂票請求
type CreateBookingRequest struct {
	EventID    uuid.UUID `json:"event_id" binding:"required"`
	BuyerName  string    `json:"buyer_name" binding:"required"`
	BuyerEmail string    `json:"buyer_email" binding:"required,email"`
	BuyerPhone string    `json:"buyer_phone" binding:"required"`
	TicketType string    `json:"ticket_type" binding:"required"`
	Quantity   int       `json:"quantity" binding:"required,min=1"`
}

// CreatePaymentOrderRequest 建立金流訂單請求
type CreatePaymentOrderRequest struct {
	BookingID uuid.UUID `json:"booking_id" binding:"required"`
	Amount    float64   `json:"amount" binding:"required,gt=0"`
}

// PaymentOrder 金流訂單回應，amount 為最小幣值單位（paise）
type PaymentOrder struct {
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// VerifyPaymentRequest 金流回調的驗證請求
type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	RazorpaySignature string `json:"razorpay_signature" binding:"required"`
}

// PaymentVerification 驗證結果。回調端不丟 error，避免 gateway 無限重試
type PaymentVerification struct {
	Status       string `json:"status"`
	TicketNumber string `json:"ticket_number,omitempty"`
	Message      string `json:"message,omitempty"`
}
