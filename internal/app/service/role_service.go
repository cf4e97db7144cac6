package service

import (
	"context"
	"errors"
	"time"

	"algojudge/internal/domain/repository"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RoleService resolves an actor's role from the account store, with a Redis
// cache in front so every judging call doesn't hit the users table.
type RoleService struct {
	userRepo repository.UserRepository
	rdb      *redis.Client
	ttl      time.Duration
	logger   *zap.Logger
}

func NewRoleService(userRepo repository.UserRepository, rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *RoleService {
	return &RoleService{userRepo: userRepo, rdb: rdb, ttl: ttl, logger: logger}
}

func roleCacheKey(userID string) string {
	return "role:" + userID
}

func (s *RoleService) RoleByUserID(ctx context.Context, userID string) (string, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, roleCacheKey(userID)).Result()
		if err == nil && cached != "" {
			return cached, nil
		}
		if err != nil && !errors.Is(err, redis.Nil) {
			s.logger.Warn("role cache read failed", zap.String("user_id", userID), zap.Error(err))
		}
	}

	role, err := s.userRepo.RoleByID(ctx, userID)
	if err != nil {
		return "", err
	}

	if s.rdb != nil {
		if err := s.rdb.Set(ctx, roleCacheKey(userID), role, s.ttl).Err(); err != nil {
			s.logger.Warn("role cache write failed", zap.String("user_id", userID), zap.Error(err))
		}
	}
	return role, nil
}
