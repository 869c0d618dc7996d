package service

import (
	"context"

	"quickqueue/internal/model"
	"quickqueue/internal/repository"

	"github.com/google/uuid"
)

type ContactService interface {
	Submit(ctx context.Context, req model.CreateContactRequest) (*model.ContactMessage, error)
}

type ContactServiceImpl struct {
	repo repository.ContactRepository
}

func NewContactService(repo repository.ContactRepository) ContactService {
	return &ContactServiceImpl{repo: repo}
}

func (s *ContactServiceImpl) Submit(ctx context.Context, req model.CreateContactRequest) (*model.ContactMessage, error) {
	message := &model.ContactMessage{
		MessageID: uuid.New(),
		Name:      req.Name,
		Email:     req.Email,
		Message:   req.Message,
		Status:    model.ContactStatusNew,
	}

	return s.repo.Create(ctx, message)
}
