package service

import (
	"context"

	"challenge-server/internal/models"
	"challenge-server/internal/repository"

	"go.uber.org/zap"
)

// ChallengeService - тонкий слой над репозиторием заданий.
type ChallengeService struct {
	repo   repository.ChallengeRepository
	logger *zap.Logger
}

// NewChallengeService создает новый ChallengeService.
func NewChallengeService(repo repository.ChallengeRepository, logger *zap.Logger) *ChallengeService {
	return &ChallengeService{
		repo:   repo,
		logger: logger.Named("ChallengeService"),
	}
}

// Create создает новое задание.
func (s *ChallengeService) Create(ctx context.Context, challenge *models.Challenge) error {
	return s.repo.Create(ctx, challenge)
}

// List возвращает страницу заданий.
func (s *ChallengeService) List(ctx context.Context, page, perPage int) (*models.Page[models.Challenge], error) {
	return s.repo.List(ctx, page, perPage)
}

// GetByID возвращает задание по ID.
func (s *ChallengeService) GetByID(ctx context.Context, id int64) (*models.Challenge, error) {
	return s.repo.GetByID(ctx, id)
}

// Update обновляет существующее задание.
func (s *ChallengeService) Update(ctx context.Context, challenge *models.Challenge) error {
	if _, err := s.repo.GetByID(ctx, challenge.ID); err != nil {
		return err
	}
	return s.repo.Update(ctx, challenge)
}

// Delete мягко удаляет задание.
func (s *ChallengeService) Delete(ctx context.Context, id int64) error {
	return s.repo.SoftDelete(ctx, id)
}
