package service_test

import (
	"context"
	"sync"
	"time"

	"quickqueue/internal/model"
	"quickqueue/internal/payment"
	"quickqueue/internal/repository"
	apperrors "quickqueue/pkg/app_errors"

	"github.com/google/uuid"
)

// 以 in-memory fake 模擬 repository，CAS 語意用 mutex 實作，
// 行為跟 Postgres 的條件式 UPDATE 一致

type fakeEventRepo struct {
	mu     sync.Mutex
	events map[int]*model.Event
	nextID int
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: make(map[int]*model.Event), nextID: 1}
}

func (r *fakeEventRepo) Create(ctx context.Context, event *model.Event) (*model.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	event.ID = r.nextID
	r.nextID++
	r.events[event.ID] = event
	return event, nil
}

func (r *fakeEventRepo) List(ctx context.Context, filter model.EventFilter) ([]*model.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	events := make([]*model.Event, 0, len(r.events))
	for _, e := range r.events {
		events = append(events, e)
	}
	return events, nil
}

func (r *fakeEventRepo) ListByOrganizer(ctx context.Context, organizerID int) ([]*model.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	events := make([]*model.Event, 0)
	for _, e := range r.events {
		if e.OrganizerID == organizerID {
			events = append(events, e)
		}
	}
	return events, nil
}

func (r *fakeEventRepo) ListRecent(ctx context.Context, limit int) ([]*model.Event, error) {
	return r.List(ctx, model.EventFilter{})
}

func (r *fakeEventRepo) FindByID(ctx context.Context, id int) (*model.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	event, ok := r.events[id]
	if !ok {
		return nil, apperrors.ErrEventNotFound
	}
	return event, nil
}

func (r *fakeEventRepo) FindByEventID(ctx context.Context, eventID uuid.UUID) (*model.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.events {
		if e.EventID == eventID {
			return e, nil
		}
	}
	return nil, apperrors.ErrEventNotFound
}

func (r *fakeEventRepo) Replace(ctx context.Context, id int, event *model.Event) (*model.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[id]; !ok {
		return nil, apperrors.ErrEventNotFound
	}
	event.ID = id
	r.events[id] = event
	return event, nil
}

func (r *fakeEventRepo) Count(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events), nil
}

var _ repository.EventRepository = (*fakeEventRepo)(nil)

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[int]*model.Booking
	nextID   int
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[int]*model.Booking), nextID: 1}
}

func (r *fakeBookingRepo) Create(ctx context.Context, booking *model.Booking) (*model.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking.ID = r.nextID
	r.nextID++
	booking.CreatedAt = time.Now().UTC()
	r.bookings[booking.ID] = booking
	return booking, nil
}

func (r *fakeBookingRepo) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*model.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.BookingID == bookingID {
			return r.clone(b), nil
		}
	}
	return nil, apperrors.ErrBookingNotFound
}

func (r *fakeBookingRepo) FindByOrderRef(ctx context.Context, orderRef string) (*model.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.RazorpayOrderID != nil && *b.RazorpayOrderID == orderRef {
			return r.clone(b), nil
		}
	}
	return nil, apperrors.ErrBookingNotFound
}

func (r *fakeBookingRepo) FindByTicketNumber(ctx context.Context, ticketNumber string) (*model.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.TicketNumber == ticketNumber {
			return r.clone(b), nil
		}
	}
	return nil, apperrors.ErrTicketNotFound
}

func (r *fakeBookingRepo) SetOrderRef(ctx context.Context, id int, orderRef string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking, ok := r.bookings[id]
	if !ok {
		return apperrors.ErrBookingNotFound
	}
	booking.RazorpayOrderID = &orderRef
	return nil
}

func (r *fakeBookingRepo) MarkPaid(ctx context.Context, orderRef string, paymentRef string, qrCode string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.RazorpayOrderID != nil && *b.RazorpayOrderID == orderRef {
			if b.PaymentStatus != model.PaymentStatusPending {
				return false, nil
			}
			b.PaymentStatus = model.PaymentStatusPaid
			b.RazorpayPaymentID = &paymentRef
			b.QRCode = &qrCode
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeBookingRepo) MarkCheckedIn(ctx context.Context, ticketNumber string, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.TicketNumber == ticketNumber {
			if b.CheckedIn || b.PaymentStatus != model.PaymentStatusPaid {
				return false, nil
			}
			b.CheckedIn = true
			b.CheckedInAt = &at
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeBookingRepo) OrganizerStats(ctx context.Context, organizerID int) (*repository.OrganizerSalesStats, error) {
	return &repository.OrganizerSalesStats{}, nil
}

func (r *fakeBookingRepo) PaidTotals(ctx context.Context) (int, float64, error) {
	return 0, 0, nil
}

// clone 回傳副本，模擬「讀到的是當下 snapshot」
func (r *fakeBookingRepo) clone(b *model.Booking) *model.Booking {
	copied := *b
	return &copied
}

func (r *fakeBookingRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.bookings)
}

func (r *fakeBookingRepo) get(id int) *model.Booking {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clone(r.bookings[id])
}

var _ repository.BookingRepository = (*fakeBookingRepo)(nil)

type fakeProvider struct {
	mu             sync.Mutex
	validSignature string
	orderSeq       int
	createErr      error
	createdOrders  []int64
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{validSignature: "valid-signature"}
}

func (p *fakeProvider) CreateOrder(ctx context.Context, amountMinorUnits int64, currency string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.createErr != nil {
		return "", p.createErr
	}
	p.orderSeq++
	p.createdOrders = append(p.createdOrders, amountMinorUnits)
	return uuid.New().String(), nil
}

func (p *fakeProvider) VerifySignature(orderID string, paymentID string, signature string) bool {
	return signature == p.validSignature
}

var _ payment.Provider = (*fakeProvider)(nil)

type fakeEncoder struct {
	mu       sync.Mutex
	encodes  int
	payloads []string
}

func (e *fakeEncoder) Encode(content string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.encodes++
	e.payloads = append(e.payloads, content)
	return "data:image/png;base64,ZmFrZQ==", nil
}

func (e *fakeEncoder) encodeCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.encodes
}
