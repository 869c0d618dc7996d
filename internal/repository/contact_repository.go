package repository

import (
	"context"
	"fmt"

	"quickqueue/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ContactRepository interface {
	Create(ctx context.Context, message *model.ContactMessage) (*model.ContactMessage, error)
}

type ContactRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewContactRepository(pool *pgxpool.Pool) ContactRepository {
	return &ContactRepositoryImpl{
		pool: pool,
	}
}

func (r *ContactRepositoryImpl) Create(ctx context.Context, message *model.ContactMessage) (*model.ContactMessage, error) {
	query := `
		INSERT INTO contact_messages (message_id, name, email, message, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, message_id, name, email, message, status, created_at
	`

	err := r.pool.QueryRow(ctx, query,
		message.MessageID, message.Name, message.Email, message.Message, message.Status,
	).Scan(
		&message.ID,
		&message.MessageID,
		&message.Name,
		&message.Email,
		&message.Message,
		&message.Status,
		&message.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create contact message: %w", err)
	}

	return message, nil
}
