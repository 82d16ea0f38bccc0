package service

import (
	"context"

	"challenge-server/internal/models"
	"challenge-server/internal/repository"

	"go.uber.org/zap"
)

// UserService - тонкий слой над репозиторием пользователей.
type UserService struct {
	repo   repository.UserRepository
	logger *zap.Logger
}

// NewUserService создает новый UserService.
func NewUserService(repo repository.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{
		repo:   repo,
		logger: logger.Named("UserService"),
	}
}

// Create создает нового пользователя.
func (s *UserService) Create(ctx context.Context, user *models.User) error {
	return s.repo.Create(ctx, user)
}

// List возвращает страницу пользователей.
func (s *UserService) List(ctx context.Context, page, perPage int) (*models.Page[models.User], error) {
	return s.repo.List(ctx, page, perPage)
}

// GetByID возвращает пользователя по ID.
func (s *UserService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}

// Update обновляет существующего пользователя.
func (s *UserService) Update(ctx context.Context, user *models.User) error {
	// Проверяем существование, чтобы вернуть осмысленный 404
	if _, err := s.repo.GetByID(ctx, user.ID); err != nil {
		return err
	}
	return s.repo.Update(ctx, user)
}

// Delete мягко удаляет пользователя.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	return s.repo.SoftDelete(ctx, id)
}
