package service

import (
	"context"
	"errors"
	"time"

	"quickqueue/internal/model"
	"quickqueue/internal/monitoring"
	"quickqueue/internal/payment"
	"quickqueue/internal/qr"
	"quickqueue/internal/repository"
	apperrors "quickqueue/pkg/app_errors"
	"quickqueue/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const paymentCurrency = "INR"

type BookingService interface {
	// CreateBooking 建立訂票，金額以當下票價計算後固定
	CreateBooking(ctx context.Context, req model.CreateBookingRequest, userID *int) (*model.Booking, error)
	// CreatePaymentOrder 跟金流閘道建單，把 order id 記到訂票上
	CreatePaymentOrder(ctx context.Context, req model.CreatePaymentOrderRequest) (*model.PaymentOrder, error)
	// VerifyPayment 驗證付款回調，冪等：同一 order 重複驗證回同一張票
	VerifyPayment(ctx context.Context, req model.VerifyPaymentRequest) (*model.PaymentVerification, error)
	// CheckIn 單次入場
	CheckIn(ctx context.Context, ticketNumber string, staff *model.User) (*model.Booking, error)
	GetTicket(ctx context.Context, ticketNumber string) (*model.Booking, error)
}

type BookingServiceImpl struct {
	repository repository.BookingRepository
	eventRepo  repository.EventRepository
	provider   payment.Provider
	encoder    qr.Encoder
}

func NewBookingService(
	bookingRepository repository.BookingRepository,
	eventRepository repository.EventRepository,
	provider payment.Provider,
	encoder qr.Encoder,
) BookingService {
	return &BookingServiceImpl{
		repository: bookingRepository,
		eventRepo:  eventRepository,
		provider:   provider,
		encoder:    encoder,
	}
}

func (s *BookingServiceImpl) CreateBooking(ctx context.Context, req model.CreateBookingRequest, userID *int) (*model.Booking, error) {
	event, err := s.eventRepo.FindByEventID(ctx, req.EventID)
	if err != nil {
		return nil, err
	}

	// 同名票種取第一個
	ticketType := event.FindTicketType(req.TicketType)
	if ticketType == nil {
		return nil, apperrors.ErrTicketTypeNotFound
	}

	// 售出數量對 available 沒有任何檢查，超賣是上游既有行為，這裡只記 log
	if req.Quantity > ticketType.Available {
		logger.WithComponent("service").Warn("booking quantity exceeds ticket type availability",
			zap.String("event_id", event.EventID.String()),
			zap.String("ticket_type", ticketType.Name),
			zap.Int("quantity", req.Quantity),
			zap.Int("available", ticketType.Available),
		)
	}

	// 金額在這一刻用當下票價算定，之後活動改價不追溯
	booking := &model.Booking{
		BookingID:     uuid.New(),
		EventID:       event.ID,
		UserID:        userID,
		BuyerName:     req.BuyerName,
		BuyerEmail:    req.BuyerEmail,
		BuyerPhone:    req.BuyerPhone,
		TicketType:    ticketType.Name,
		Quantity:      req.Quantity,
		TotalAmount:   ticketType.Price * float64(req.Quantity),
		PaymentStatus: model.PaymentStatusPending,
		TicketNumber:  model.NewTicketNumber(),
	}

	created, err := s.repository.Create(ctx, booking)
	if err != nil {
		return nil, err
	}

	monitoring.BookingsCreated.Inc()
	return created, nil
}

func (s *BookingServiceImpl) CreatePaymentOrder(ctx context.Context, req model.CreatePaymentOrderRequest) (*model.PaymentOrder, error) {
	booking, err := s.repository.FindByBookingID(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}

	// 盧比轉 paise，小數位無條件捨去；結帳端算出來的金額就是這個規則，不要改成四捨五入
	amountMinor := int64(req.Amount * 100)

	// 先打金流，失敗就不落任何東西
	orderID, err := s.provider.CreateOrder(ctx, amountMinor, paymentCurrency)
	if err != nil {
		return nil, err
	}

	if err := s.repository.SetOrderRef(ctx, booking.ID, orderID); err != nil {
		return nil, err
	}

	return &model.PaymentOrder{
		OrderID:  orderID,
		Amount:   amountMinor,
		Currency: paymentCurrency,
	}, nil
}

// VerifyPayment 驗簽後用一條條件式 UPDATE 把 paid、payment id、QR 一起落地。
// WHERE 守住 pending，併發驗證只會 mint 一次 QR；輸家讀回已付款的訂票，
// 回一樣的票號。外部看不到「paid 但還沒有 QR」的中間態
func (s *BookingServiceImpl) VerifyPayment(ctx context.Context, req model.VerifyPaymentRequest) (*model.PaymentVerification, error) {
	if !s.provider.VerifySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		monitoring.PaymentVerifications.WithLabelValues("invalid_signature").Inc()
		return nil, apperrors.ErrSignatureInvalid
	}

	booking, err := s.repository.FindByOrderRef(ctx, req.RazorpayOrderID)
	if err != nil {
		if errors.Is(err, apperrors.ErrBookingNotFound) {
			// 簽章是對的但找不到訂票：回結構化錯誤，不讓 gateway 重試到死
			monitoring.PaymentVerifications.WithLabelValues("booking_not_found").Inc()
			return &model.PaymentVerification{
				Status:  "error",
				Message: "Booking not found",
			}, nil
		}
		return nil, err
	}

	// 已付款：冪等路徑，不重做任何副作用
	if booking.PaymentStatus == model.PaymentStatusPaid {
		monitoring.PaymentVerifications.WithLabelValues("duplicate").Inc()
		return &model.PaymentVerification{
			Status:       "success",
			TicketNumber: booking.TicketNumber,
		}, nil
	}

	if !booking.PaymentStatus.CanTransitionTo(model.PaymentStatusPaid) {
		return nil, apperrors.ErrInvalidState
	}

	event, err := s.eventRepo.FindByID(ctx, booking.EventID)
	if err != nil {
		return nil, err
	}

	qrToken, err := s.encoder.Encode(booking.QRPayload(event.EventID))
	if err != nil {
		return nil, err
	}

	won, err := s.repository.MarkPaid(ctx, req.RazorpayOrderID, req.RazorpayPaymentID, qrToken)
	if err != nil {
		return nil, err
	}

	if !won {
		// 輸掉 CAS：讀回最新狀態，已付款就走冪等路徑
		current, err := s.repository.FindByOrderRef(ctx, req.RazorpayOrderID)
		if err != nil {
			return nil, err
		}
		if current.PaymentStatus != model.PaymentStatusPaid {
			return nil, apperrors.ErrInvalidState
		}
		monitoring.PaymentVerifications.WithLabelValues("duplicate").Inc()
		return &model.PaymentVerification{
			Status:       "success",
			TicketNumber: current.TicketNumber,
		}, nil
	}

	monitoring.PaymentVerifications.WithLabelValues("success").Inc()
	return &model.PaymentVerification{
		Status:       "success",
		TicketNumber: booking.TicketNumber,
	}, nil
}

func (s *BookingServiceImpl) CheckIn(ctx context.Context, ticketNumber string, staff *model.User) (*model.Booking, error) {
	booking, err := s.repository.FindByTicketNumber(ctx, ticketNumber)
	if err != nil {
		return nil, err
	}

	event, err := s.eventRepo.FindByID(ctx, booking.EventID)
	if err != nil {
		return nil, err
	}

	// 只有活動主辦方或 admin 能驗票
	if event.OrganizerID != staff.ID && staff.Role != model.RoleAdmin {
		return nil, apperrors.ErrForbidden
	}

	if booking.PaymentStatus != model.PaymentStatusPaid {
		return nil, apperrors.ErrInvalidState
	}

	if booking.CheckedIn {
		return nil, apperrors.ErrAlreadyCheckedIn
	}

	now := time.Now().UTC()
	won, err := s.repository.MarkCheckedIn(ctx, ticketNumber, now)
	if err != nil {
		return nil, err
	}
	if !won {
		// 併發入場只能有一個贏家
		return nil, apperrors.ErrAlreadyCheckedIn
	}

	monitoring.CheckIns.Inc()

	booking.CheckedIn = true
	booking.CheckedInAt = &now
	return booking, nil
}

func (s *BookingServiceImpl) GetTicket(ctx context.Context, ticketNumber string) (*model.Booking, error) {
	return s.repository.FindByTicketNumber(ctx, ticketNumber)
}
