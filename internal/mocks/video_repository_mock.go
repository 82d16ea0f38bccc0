package mocks

import (
	"context"

	"challenge-server/internal/models"
	"challenge-server/internal/repository"

	"github.com/stretchr/testify/mock"
)

// MockVideoRepository is a mock type for the VideoRepository type
type MockVideoRepository struct {
	mock.Mock
}

func (_m *MockVideoRepository) Create(ctx context.Context, video *models.Video) error {
	ret := _m.Called(ctx, video)
	return ret.Error(0)
}

func (_m *MockVideoRepository) List(ctx context.Context, page, perPage int) (*models.Page[models.Video], error) {
	ret := _m.Called(ctx, page, perPage)

	var r0 *models.Page[models.Video]
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Page[models.Video])
	}
	return r0, ret.Error(1)
}

func (_m *MockVideoRepository) GetByID(ctx context.Context, id int64) (*models.Video, error) {
	ret := _m.Called(ctx, id)

	var r0 *models.Video
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Video)
	}
	return r0, ret.Error(1)
}

func (_m *MockVideoRepository) Update(ctx context.Context, video *models.Video) error {
	ret := _m.Called(ctx, video)
	return ret.Error(0)
}

func (_m *MockVideoRepository) SoftDelete(ctx context.Context, id int64) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

// NewMockVideoRepository creates a new instance of MockVideoRepository.
func NewMockVideoRepository(t interface {
	mock.TestingT
	Helper()
}) *MockVideoRepository {
	m := &MockVideoRepository{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ repository.VideoRepository = (*MockVideoRepository)(nil)
