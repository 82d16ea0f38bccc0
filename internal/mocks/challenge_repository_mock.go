package mocks

import (
	"context"

	"challenge-server/internal/models"
	"challenge-server/internal/repository"

	"github.com/stretchr/testify/mock"
)

// MockChallengeRepository is a mock type for the ChallengeRepository type
type MockChallengeRepository struct {
	mock.Mock
}

func (_m *MockChallengeRepository) Create(ctx context.Context, challenge *models.Challenge) error {
	ret := _m.Called(ctx, challenge)
	return ret.Error(0)
}

func (_m *MockChallengeRepository) List(ctx context.Context, page, perPage int) (*models.Page[models.Challenge], error) {
	ret := _m.Called(ctx, page, perPage)

	var r0 *models.Page[models.Challenge]
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Page[models.Challenge])
	}
	return r0, ret.Error(1)
}

func (_m *MockChallengeRepository) GetByID(ctx context.Context, id int64) (*models.Challenge, error) {
	ret := _m.Called(ctx, id)

	var r0 *models.Challenge
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Challenge)
	}
	return r0, ret.Error(1)
}

func (_m *MockChallengeRepository) Update(ctx context.Context, challenge *models.Challenge) error {
	ret := _m.Called(ctx, challenge)
	return ret.Error(0)
}

func (_m *MockChallengeRepository) SoftDelete(ctx context.Context, id int64) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

// NewMockChallengeRepository creates a new instance of MockChallengeRepository.
func NewMockChallengeRepository(t interface {
	mock.TestingT
	Helper()
}) *MockChallengeRepository {
	m := &MockChallengeRepository{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ repository.ChallengeRepository = (*MockChallengeRepository)(nil)
