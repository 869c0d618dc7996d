package service

import (
	"context"

	"quickqueue/internal/model"
	"quickqueue/internal/repository"
	apperrors "quickqueue/pkg/app_errors"

	"github.com/google/uuid"
)

type EventService interface {
	List(ctx context.Context, filter model.EventFilter) ([]*model.Event, error)
	GetByEventID(ctx context.Context, eventID uuid.UUID) (*model.Event, error)
	Create(ctx context.Context, req model.CreateEventRequest, organizer *model.User) (*model.Event, error)
	// Update 只有活動主辦方或 admin 能改；organizer 欄位與 created_at 保留原值
	Update(ctx context.Context, eventID uuid.UUID, req model.CreateEventRequest, user *model.User) (*model.Event, error)
}

type EventServiceImpl struct {
	repo repository.EventRepository
}

func NewEventService(repo repository.EventRepository) EventService {
	return &EventServiceImpl{repo: repo}
}

func (s *EventServiceImpl) List(ctx context.Context, filter model.EventFilter) ([]*model.Event, error) {
	return s.repo.List(ctx, filter)
}

func (s *EventServiceImpl) GetByEventID(ctx context.Context, eventID uuid.UUID) (*model.Event, error) {
	return s.repo.FindByEventID(ctx, eventID)
}

func (s *EventServiceImpl) Create(ctx context.Context, req model.CreateEventRequest, organizer *model.User) (*model.Event, error) {
	event := buildEvent(req)
	event.EventID = uuid.New()
	event.OrganizerID = organizer.ID
	event.OrganizerName = organizer.Name
	event.Status = model.EventStatusPublished

	return s.repo.Create(ctx, event)
}

func (s *EventServiceImpl) Update(ctx context.Context, eventID uuid.UUID, req model.CreateEventRequest, user *model.User) (*model.Event, error) {
	existing, err := s.repo.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if existing.OrganizerID != user.ID && user.Role != model.RoleAdmin {
		return nil, apperrors.ErrForbidden
	}

	event := buildEvent(req)
	event.EventID = existing.EventID
	event.OrganizerID = existing.OrganizerID
	event.OrganizerName = existing.OrganizerName
	event.Status = existing.Status
	event.CreatedAt = existing.CreatedAt

	return s.repo.Replace(ctx, existing.ID, event)
}

func buildEvent(req model.CreateEventRequest) *model.Event {
	ticketTypes := make([]model.TicketType, 0, len(req.TicketTypes))
	for _, tt := range req.TicketTypes {
		ticketTypes = append(ticketTypes, model.TicketType{
			Name:      tt.Name,
			Price:     tt.Price,
			Available: tt.Available,
		})
	}

	return &model.Event{
		Title:         req.Title,
		Description:   req.Description,
		Venue:         req.Venue,
		Date:          req.Date,
		DurationHours: req.Duration,
		Category:      req.Category,
		ImageURL:      req.ImageURL,
		Terms:         req.Terms,
		TicketTypes:   ticketTypes,
	}
}
