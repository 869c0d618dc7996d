package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	apperrors "quickqueue/pkg/app_errors"

	"github.com/redis/go-redis/v9"
)

// SessionRepository session token 存 Redis，TTL 到期自動失效
type SessionRepository interface {
	// 建立 session，同一使用者的舊 session 一併清掉
	Create(ctx context.Context, token string, userID int, ttl time.Duration) error
	FindUserID(ctx context.Context, token string) (int, error)
	Delete(ctx context.Context, token string) error
}

type SessionRepositoryImpl struct {
	client *redis.Client
}

func NewSessionRepository(client *redis.Client) SessionRepository {
	return &SessionRepositoryImpl{
		client: client,
	}
}

// session key
func (r *SessionRepositoryImpl) getSessionKey(token string) string {
	return fmt.Sprintf("session:%s", token)
}

// 使用者目前持有的 token 集合的 key
func (r *SessionRepositoryImpl) getUserKey(userID int) string {
	return fmt.Sprintf("user:%d:sessions", userID)
}

func (r *SessionRepositoryImpl) Create(ctx context.Context, token string, userID int, ttl time.Duration) error {
	userKey := r.getUserKey(userID)

	old, err := r.client.SMembers(ctx, userKey).Result()
	if err != nil && err != redis.Nil {
		return err
	}

	// 舊 session 的清除和新 session 的寫入放同一個 pipeline，
	// 不會留下集合指著已刪掉的 key 的中間狀態
	pipe := r.client.TxPipeline()
	for _, oldToken := range old {
		pipe.Del(ctx, r.getSessionKey(oldToken))
	}
	if len(old) > 0 {
		pipe.Del(ctx, userKey)
	}
	pipe.Set(ctx, r.getSessionKey(token), userID, ttl)
	pipe.SAdd(ctx, userKey, token)
	pipe.Expire(ctx, userKey, ttl)
	_, err = pipe.Exec(ctx)
	return err
}

func (r *SessionRepositoryImpl) FindUserID(ctx context.Context, token string) (int, error) {
	val, err := r.client.Get(ctx, r.getSessionKey(token)).Result()
	if err == redis.Nil {
		return 0, apperrors.ErrSessionNotFound
	}
	if err != nil {
		return 0, err
	}

	userID, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid session value: %v", err)
	}

	return userID, nil
}

func (r *SessionRepositoryImpl) Delete(ctx context.Context, token string) error {
	key := r.getSessionKey(token)

	val, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return err
	}

	if userID, convErr := strconv.Atoi(val); convErr == nil {
		if err := r.client.SRem(ctx, r.getUserKey(userID), token).Err(); err != nil {
			return err
		}
	}

	return r.client.Del(ctx, key).Err()
}
