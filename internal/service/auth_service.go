package service

import (
	"context"
	"time"

	"quickqueue/internal/identity"
	"quickqueue/internal/model"
	"quickqueue/internal/repository"
	apperrors "quickqueue/pkg/app_errors"

	"github.com/google/uuid"
)

type AuthService interface {
	// CreateSession 用外部認證服務的 session id 換 token，使用者不存在就先建
	CreateSession(ctx context.Context, sessionID string) (*model.User, string, error)
	CurrentUser(ctx context.Context, token string) (*model.User, error)
	Logout(ctx context.Context, token string) error
	SessionTTL() time.Duration
}

type AuthServiceImpl struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	provider    identity.Provider
	sessionTTL  time.Duration
}

func NewAuthService(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	provider identity.Provider,
	sessionTTL time.Duration,
) AuthService {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		provider:    provider,
		sessionTTL:  sessionTTL,
	}
}

func (s *AuthServiceImpl) CreateSession(ctx context.Context, sessionID string) (*model.User, string, error) {
	data, err := s.provider.FetchSessionData(ctx, sessionID)
	if err != nil {
		return nil, "", err
	}

	user, err := s.userRepo.FindByEmail(ctx, data.Email)
	if err == apperrors.ErrUserNotFound {
		newUser := &model.User{
			UserID: uuid.New(),
			Email:  data.Email,
			Name:   data.Name,
			Role:   model.RoleUser,
		}
		if data.Picture != "" {
			newUser.Picture = &data.Picture
		}
		user, err = s.userRepo.Create(ctx, newUser)
	}
	if err != nil {
		return nil, "", err
	}

	token := data.SessionToken
	if err := s.sessionRepo.Create(ctx, token, user.ID, s.sessionTTL); err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (s *AuthServiceImpl) CurrentUser(ctx context.Context, token string) (*model.User, error) {
	userID, err := s.sessionRepo.FindUserID(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.userRepo.FindByID(ctx, userID)
}

func (s *AuthServiceImpl) Logout(ctx context.Context, token string) error {
	return s.sessionRepo.Delete(ctx, token)
}

func (s *AuthServiceImpl) SessionTTL() time.Duration {
	return s.sessionTTL
}
