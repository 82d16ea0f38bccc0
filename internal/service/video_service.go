package service

import (
	"context"

	"challenge-server/internal/models"
	"challenge-server/internal/repository"

	"go.uber.org/zap"
)

// VideoService - тонкий слой над репозиторием видео.
type VideoService struct {
	repo   repository.VideoRepository
	logger *zap.Logger
}

// NewVideoService создает новый VideoService.
func NewVideoService(repo repository.VideoRepository, logger *zap.Logger) *VideoService {
	return &VideoService{
		repo:   repo,
		logger: logger.Named("VideoService"),
	}
}

// Create создает новое видео.
func (s *VideoService) Create(ctx context.Context, video *models.Video) error {
	return s.repo.Create(ctx, video)
}

// List возвращает страницу видео.
func (s *VideoService) List(ctx context.Context, page, perPage int) (*models.Page[models.Video], error) {
	return s.repo.List(ctx, page, perPage)
}

// GetByID возвращает видео по ID.
func (s *VideoService) GetByID(ctx context.Context, id int64) (*models.Video, error) {
	return s.repo.GetByID(ctx, id)
}

// Update обновляет существующее видео.
func (s *VideoService) Update(ctx context.Context, video *models.Video) error {
	if _, err := s.repo.GetByID(ctx, video.ID); err != nil {
		return err
	}
	return s.repo.Update(ctx, video)
}

// Delete мягко удаляет видео.
func (s *VideoService) Delete(ctx context.Context, id int64) error {
	return s.repo.SoftDelete(ctx, id)
}
