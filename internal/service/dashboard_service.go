package service

import (
	"context"

	"quickqueue/internal/model"
	"quickqueue/internal/repository"
)

// OrganizerDashboard 主辦方儀表板：自己的活動加銷售彙總
type OrganizerDashboard struct {
	Events []*model.Event         `json:"events"`
	Stats  OrganizerDashboardStat `json:"stats"`
}

type OrganizerDashboardStat struct {
	TotalEvents      int     `json:"total_events"`
	TotalRevenue     float64 `json:"total_revenue"`
	TotalTicketsSold int     `json:"total_tickets_sold"`
	TotalCheckIns    int     `json:"total_check_ins"`
}

// AdminDashboard 全站彙總加最近活動
type AdminDashboard struct {
	Stats        AdminDashboardStat `json:"stats"`
	RecentEvents []*model.Event     `json:"recent_events"`
}

type AdminDashboardStat struct {
	TotalEvents   int     `json:"total_events"`
	TotalUsers    int     `json:"total_users"`
	TotalBookings int     `json:"total_bookings"`
	TotalRevenue  float64 `json:"total_revenue"`
}

type DashboardService interface {
	Organizer(ctx context.Context, user *model.User) (*OrganizerDashboard, error)
	Admin(ctx context.Context) (*AdminDashboard, error)
}

type DashboardServiceImpl struct {
	eventRepo   repository.EventRepository
	bookingRepo repository.BookingRepository
	userRepo    repository.UserRepository
}

func NewDashboardService(
	eventRepo repository.EventRepository,
	bookingRepo repository.BookingRepository,
	userRepo repository.UserRepository,
) DashboardService {
	return &DashboardServiceImpl{
		eventRepo:   eventRepo,
		bookingRepo: bookingRepo,
		userRepo:    userRepo,
	}
}

func (s *DashboardServiceImpl) Organizer(ctx context.Context, user *model.User) (*OrganizerDashboard, error) {
	events, err := s.eventRepo.ListByOrganizer(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	sales, err := s.bookingRepo.OrganizerStats(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &OrganizerDashboard{
		Events: events,
		Stats: OrganizerDashboardStat{
			TotalEvents:      len(events),
			TotalRevenue:     sales.TotalRevenue,
			TotalTicketsSold: sales.TotalTicketsSold,
			TotalCheckIns:    sales.TotalCheckIns,
		},
	}, nil
}

func (s *DashboardServiceImpl) Admin(ctx context.Context) (*AdminDashboard, error) {
	totalEvents, err := s.eventRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	totalUsers, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	totalBookings, totalRevenue, err := s.bookingRepo.PaidTotals(ctx)
	if err != nil {
		return nil, err
	}

	recentEvents, err := s.eventRepo.ListRecent(ctx, 10)
	if err != nil {
		return nil, err
	}

	return &AdminDashboard{
		Stats: AdminDashboardStat{
			TotalEvents:   totalEvents,
			TotalUsers:    totalUsers,
			TotalBookings: totalBookings,
			TotalRevenue:  totalRevenue,
		},
		RecentEvents: recentEvents,
	}, nil
}
