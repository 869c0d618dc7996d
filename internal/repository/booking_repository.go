package repository

import (
	"context"
	"fmt"
	"time"

	"quickqueue/internal/model"
	apperrors "quickqueue/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// OrganizerSalesStats 主辦方儀表板的銷售彙總（只計已付款訂票）
type OrganizerSalesStats struct {
	TotalRevenue     float64
	TotalTicketsSold int
	TotalCheckIns    int
}

type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) (*model.Booking, error)
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*model.Booking, error)
	FindByOrderRef(ctx context.Context, orderRef string) (*model.Booking, error)
	FindByTicketNumber(ctx context.Context, ticketNumber string) (*model.Booking, error)
	SetOrderRef(ctx context.Context, id int, orderRef string) error

	// 條件式更新：只有 WHERE 守衛成立時才寫入，回傳是否有搶到
	MarkPaid(ctx context.Context, orderRef string, paymentRef string, qrCode string) (bool, error)
	MarkCheckedIn(ctx context.Context, ticketNumber string, at time.Time) (bool, error)

	OrganizerStats(ctx context.Context, organizerID int) (*OrganizerSalesStats, error)
	PaidTotals(ctx context.Context) (int, float64, error)
}

type BookingRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) BookingRepository {
	return &BookingRepositoryImpl{
		pool: pool,
	}
}

const bookingColumns = `id, booking_id, event_id, user_id, buyer_name, buyer_email, buyer_phone,
		       ticket_type, quantity, total_amount, razorpay_order_id, razorpay_payment_id,
		       payment_status, qr_code, ticket_number, checked_in, checked_in_at, created_at`

func scanBooking(row pgx.Row, booking *model.Booking) error {
	return row.Scan(
		&booking.ID,
		&booking.BookingID,
		&booking.EventID,
		&booking.UserID,
		&booking.BuyerName,
		&booking.BuyerEmail,
		&booking.BuyerPhone,
		&booking.TicketType,
		&booking.Quantity,
		&booking.TotalAmount,
		&booking.RazorpayOrderID,
		&booking.RazorpayPaymentID,
		&booking.PaymentStatus,
		&booking.QRCode,
		&booking.TicketNumber,
		&booking.CheckedIn,
		&booking.CheckedInAt,
		&booking.CreatedAt,
	)
}

func (r *BookingRepositoryImpl) Create(ctx context.Context, booking *model.Booking) (*model.Booking, error) {
	query := `
		INSERT INTO bookings (
			booking_id, event_id, user_id, buyer_name, buyer_email, buyer_phone,
			ticket_type, quantity, total_amount, payment_status, ticket_number
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + bookingColumns

	err := scanBooking(r.pool.QueryRow(ctx, query,
		booking.BookingID, booking.EventID, booking.UserID,
		booking.BuyerName, booking.BuyerEmail, booking.BuyerPhone,
		booking.TicketType, booking.Quantity, booking.TotalAmount,
		booking.PaymentStatus, booking.TicketNumber,
	), booking)
	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	return booking, nil
}

func (r *BookingRepositoryImpl) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*model.Booking, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM bookings
		WHERE booking_id = $1
	`, bookingColumns)

	var booking model.Booking
	err := scanBooking(r.pool.QueryRow(ctx, query, bookingID), &booking)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrBookingNotFound
		}
		return nil, err
	}

	return &booking, nil
}

func (r *BookingRepositoryImpl) FindByOrderRef(ctx context.Context, orderRef string) (*model.Booking, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM bookings
		WHERE razorpay_order_id = $1
	`, bookingColumns)

	var booking model.Booking
	err := scanBooking(r.pool.QueryRow(ctx, query, orderRef), &booking)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrBookingNotFound
		}
		return nil, err
	}

	return &booking, nil
}

func (r *BookingRepositoryImpl) FindByTicketNumber(ctx context.Context, ticketNumber string) (*model.Booking, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM bookings
		WHERE ticket_number = $1
	`, bookingColumns)

	var booking model.Booking
	err := scanBooking(r.pool.QueryRow(ctx, query, ticketNumber), &booking)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrTicketNotFound
		}
		return nil, err
	}

	return &booking, nil
}

// SetOrderRef 記下金流訂單編號，不動付款狀態
func (r *BookingRepositoryImpl) SetOrderRef(ctx context.Context, id int, orderRef string) error {
	query := `
		UPDATE bookings
		SET razorpay_order_id = $1
		WHERE id = $2
	`

	result, err := r.pool.Exec(ctx, query, orderRef, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrBookingNotFound
	}

	return nil
}

// MarkPaid 付款確認的唯一寫入點：翻成 paid、記 payment id、存 QR，
// 三個欄位一條 UPDATE 一起落地。WHERE 守住 pending，
// 同一張訂單併發驗證只會有一個贏家
func (r *BookingRepositoryImpl) MarkPaid(ctx context.Context, orderRef string, paymentRef string, qrCode string) (bool, error) {
	query := `
		UPDATE bookings
		SET payment_status = $1, razorpay_payment_id = $2, qr_code = $3
		WHERE razorpay_order_id = $4 AND payment_status = $5
	`

	result, err := r.pool.Exec(ctx, query,
		model.PaymentStatusPaid, paymentRef, qrCode,
		orderRef, model.PaymentStatusPending,
	)
	if err != nil {
		return false, err
	}

	return result.RowsAffected() > 0, nil
}

// MarkCheckedIn 單次入場：WHERE 守住未入場且已付款，輸家拿到 false
func (r *BookingRepositoryImpl) MarkCheckedIn(ctx context.Context, ticketNumber string, at time.Time) (bool, error) {
	query := `
		UPDATE bookings
		SET checked_in = TRUE, checked_in_at = $1
		WHERE ticket_number = $2 AND checked_in = FALSE AND payment_status = $3
	`

	result, err := r.pool.Exec(ctx, query, at, ticketNumber, model.PaymentStatusPaid)
	if err != nil {
		return false, err
	}

	return result.RowsAffected() > 0, nil
}

func (r *BookingRepositoryImpl) OrganizerStats(ctx context.Context, organizerID int) (*OrganizerSalesStats, error) {
	query := `
		SELECT COALESCE(SUM(b.total_amount), 0),
		       COALESCE(SUM(b.quantity), 0),
		       COALESCE(SUM(CASE WHEN b.checked_in THEN b.quantity ELSE 0 END), 0)
		FROM bookings b
		JOIN events e ON e.id = b.event_id
		WHERE e.organizer_id = $1 AND b.payment_status = $2
	`

	var stats OrganizerSalesStats
	err := r.pool.QueryRow(ctx, query, organizerID, model.PaymentStatusPaid).Scan(
		&stats.TotalRevenue,
		&stats.TotalTicketsSold,
		&stats.TotalCheckIns,
	)
	if err != nil {
		return nil, err
	}

	return &stats, nil
}

func (r *BookingRepositoryImpl) PaidTotals(ctx context.Context) (int, float64, error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(total_amount), 0)
		FROM bookings
		WHERE payment_status = $1
	`

	var count int
	var revenue float64
	err := r.pool.QueryRow(ctx, query, model.PaymentStatusPaid).Scan(&count, &revenue)
	if err != nil {
		return 0, 0, err
	}

	return count, revenue, nil
}
