package service

import (
	"context"
	"errors"
	"testing"

	"challenge-server/internal/config"
	"challenge-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// mockAIClient - локальный мок AI клиента.
type mockAIClient struct {
	mock.Mock
}

func (m *mockAIClient) Generate(ctx context.Context, prompt string) (string, error) {
	ret := m.Called(ctx, prompt)
	return ret.String(0), ret.Error(1)
}

// mockUserRepo реализует repository.UserRepository для тестов сидера.
type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) List(ctx context.Context, page, perPage int) (*models.Page[models.User], error) {
	ret := m.Called(ctx, page, perPage)
	if ret.Get(0) == nil {
		return nil, ret.Error(1)
	}
	return ret.Get(0).(*models.Page[models.User]), ret.Error(1)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	ret := m.Called(ctx, id)
	if ret.Get(0) == nil {
		return nil, ret.Error(1)
	}
	return ret.Get(0).(*models.User), ret.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	ret := m.Called(ctx, email)
	if ret.Get(0) == nil {
		return nil, ret.Error(1)
	}
	return ret.Get(0).(*models.User), ret.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) SoftDelete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockUserRepo) GetRandomID(ctx context.Context) (int64, error) {
	ret := m.Called(ctx)
	return ret.Get(0).(int64), ret.Error(1)
}

type mockChallengeRepo struct {
	mock.Mock
}

func (m *mockChallengeRepo) Create(ctx context.Context, challenge *models.Challenge) error {
	return m.Called(ctx, challenge).Error(0)
}

func (m *mockChallengeRepo) List(ctx context.Context, page, perPage int) (*models.Page[models.Challenge], error) {
	ret := m.Called(ctx, page, perPage)
	if ret.Get(0) == nil {
		return nil, ret.Error(1)
	}
	return ret.Get(0).(*models.Page[models.Challenge]), ret.Error(1)
}

func (m *mockChallengeRepo) GetByID(ctx context.Context, id int64) (*models.Challenge, error) {
	ret := m.Called(ctx, id)
	if ret.Get(0) == nil {
		return nil, ret.Error(1)
	}
	return ret.Get(0).(*models.Challenge), ret.Error(1)
}

func (m *mockChallengeRepo) Update(ctx context.Context, challenge *models.Challenge) error {
	return m.Called(ctx, challenge).Error(0)
}

func (m *mockChallengeRepo) SoftDelete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockVideoRepo struct {
	mock.Mock
}

func (m *mockVideoRepo) Create(ctx context.Context, video *models.Video) error {
	return m.Called(ctx, video).Error(0)
}

func (m *mockVideoRepo) List(ctx context.Context, page, perPage int) (*models.Page[models.Video], error) {
	ret := m.Called(ctx, page, perPage)
	if ret.Get(0) == nil {
		return nil, ret.Error(1)
	}
	return ret.Get(0).(*models.Page[models.Video]), ret.Error(1)
}

func (m *mockVideoRepo) GetByID(ctx context.Context, id int64) (*models.Video, error) {
	ret := m.Called(ctx, id)
	if ret.Get(0) == nil {
		return nil, ret.Error(1)
	}
	return ret.Get(0).(*models.Video), ret.Error(1)
}

func (m *mockVideoRepo) Update(ctx context.Context, video *models.Video) error {
	return m.Called(ctx, video).Error(0)
}

func (m *mockVideoRepo) SoftDelete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type seederMocks struct {
	ai         *mockAIClient
	users      *mockUserRepo
	challenges *mockChallengeRepo
	videos     *mockVideoRepo
}

func newSeeder(t *testing.T, cfg SeederConfig) (*SeederService, *seederMocks) {
	t.Helper()
	m := &seederMocks{
		ai:         &mockAIClient{},
		users:      &mockUserRepo{},
		challenges: &mockChallengeRepo{},
		videos:     &mockVideoRepo{},
	}
	m.ai.Test(t)
	m.users.Test(t)
	m.challenges.Test(t)
	m.videos.Test(t)

	svc := NewSeederService(m.ai, m.users, m.challenges, m.videos, cfg, zap.NewNop())
	return svc, m
}

func (m *seederMocks) assertExpectations(t *testing.T) {
	m.ai.AssertExpectations(t)
	m.users.AssertExpectations(t)
	m.challenges.AssertExpectations(t)
	m.videos.AssertExpectations(t)
}

func TestSeederService_RunSeedingCycle_FullCycle(t *testing.T) {
	svc, m := newSeeder(t, SeederConfig{MaxAttempts: 3})
	ctx := context.Background()

	m.ai.On("Generate", mock.Anything, userSeedPrompt).
		Return(`{"name":"Ana","email":"ana@example.com","imagePath":"avatars/ana.png"}`, nil).Once()
	m.users.On("GetByEmail", mock.Anything, "ana@example.com").
		Return(nil, models.ErrUserNotFound).Once()
	m.users.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).
		Return(nil).Once().Run(func(args mock.Arguments) {
		user := args.Get(1).(*models.User)
		assert.Equal(t, "Ana", user.Name)
		assert.Equal(t, "ana@example.com", user.Email)
		if assert.NotNil(t, user.ImagePath) {
			assert.Equal(t, "avatars/ana.png", *user.ImagePath)
		}
	})

	m.ai.On("Generate", mock.Anything, challengeSeedPrompt).
		Return(`{"title":"Two Sum","description":"Classic warmup","difficulty":2}`, nil).Once()
	m.users.On("GetRandomID", mock.Anything).Return(int64(7), nil).Once()
	m.challenges.On("Create", mock.Anything, mock.AnythingOfType("*models.Challenge")).
		Return(nil).Once().Run(func(args mock.Arguments) {
		ch := args.Get(1).(*models.Challenge)
		assert.Equal(t, "Two Sum", ch.Title)
		assert.Equal(t, 2, ch.Difficulty)
		assert.Equal(t, int64(7), ch.UserID)
	})

	m.ai.On("Generate", mock.Anything, videoSeedPrompt).
		Return(`{"title":"Intro","description":"Getting started","url":"https://example.com/v/1"}`, nil).Once()
	m.users.On("GetRandomID", mock.Anything).Return(int64(3), nil).Once()
	m.videos.On("Create", mock.Anything, mock.AnythingOfType("*models.Video")).
		Return(nil).Once().Run(func(args mock.Arguments) {
		v := args.Get(1).(*models.Video)
		assert.Equal(t, "https://example.com/v/1", v.URL)
		assert.Equal(t, int64(3), v.UserID)
	})

	err := svc.RunSeedingCycle(ctx)
	assert.NoError(t, err)
	m.assertExpectations(t)
}

func TestSeederService_RunSeedingCycle_RetriesOnDuplicateEmail(t *testing.T) {
	svc, m := newSeeder(t, SeederConfig{MaxAttempts: 3})
	ctx := context.Background()

	// Первая генерация дает занятый email, вторая - свободный
	m.ai.On("Generate", mock.Anything, userSeedPrompt).
		Return(`{"name":"Ana","email":"a@x.com","imagePath":"p"}`, nil).Once()
	m.ai.On("Generate", mock.Anything, userSeedPrompt).
		Return(`{"name":"Ana2","email":"b@x.com","imagePath":"p2"}`, nil).Once()

	m.users.On("GetByEmail", mock.Anything, "a@x.com").
		Return(&models.User{ID: 1, Email: "a@x.com"}, nil).Once()
	m.users.On("GetByEmail", mock.Anything, "b@x.com").
		Return(nil, models.ErrUserNotFound).Once()
	m.users.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).
		Return(nil).Once().Run(func(args mock.Arguments) {
		user := args.Get(1).(*models.User)
		assert.Equal(t, "b@x.com", user.Email, "only the non-colliding payload may be persisted")
	})

	// Необязательные шаги пропускаются: AI ничего не вернул
	m.ai.On("Generate", mock.Anything, challengeSeedPrompt).Return("", nil).Once()
	m.ai.On("Generate", mock.Anything, videoSeedPrompt).Return("", nil).Once()

	err := svc.RunSeedingCycle(ctx)
	assert.NoError(t, err)
	m.users.AssertNumberOfCalls(t, "Create", 1)
	m.assertExpectations(t)
}

func TestSeederService_RunSeedingCycle_RetryExhausted(t *testing.T) {
	svc, m := newSeeder(t, SeederConfig{MaxAttempts: 2})
	ctx := context.Background()

	m.ai.On("Generate", mock.Anything, userSeedPrompt).
		Return(`{"name":"Ana","email":"taken@x.com","imagePath":"p"}`, nil).Twice()
	m.users.On("GetByEmail", mock.Anything, "taken@x.com").
		Return(&models.User{ID: 1, Email: "taken@x.com"}, nil).Twice()

	err := svc.RunSeedingCycle(ctx)
	assert.ErrorIs(t, err, models.ErrSeedRetryExhausted)
	m.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	m.assertExpectations(t)
}

func TestSeederService_RunSeedingCycle_EmptyUserCompletionSkipsEverything(t *testing.T) {
	svc, m := newSeeder(t, SeederConfig{MaxAttempts: 3})
	ctx := context.Background()

	m.ai.On("Generate", mock.Anything, userSeedPrompt).Return("", nil).Once()

	err := svc.RunSeedingCycle(ctx)
	assert.NoError(t, err)

	// Ни одной записи и ни одного лишнего обращения к AI
	m.ai.AssertNumberOfCalls(t, "Generate", 1)
	m.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	m.challenges.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	m.videos.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	m.assertExpectations(t)
}

func TestSeederService_RunSeedingCycle_EmptyStoreAtChallengeStep(t *testing.T) {
	svc, m := newSeeder(t, SeederConfig{MaxAttempts: 3})
	ctx := context.Background()

	m.ai.On("Generate", mock.Anything, userSeedPrompt).
		Return(`{"name":"Ana","email":"ana@x.com","imagePath":"p"}`, nil).Once()
	m.users.On("GetByEmail", mock.Anything, "ana@x.com").
		Return(nil, models.ErrUserNotFound).Once()
	m.users.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil).Once()

	m.ai.On("Generate", mock.Anything, challengeSeedPrompt).
		Return(`{"title":"T","description":"D","difficulty":1}`, nil).Once()
	// Случайный пользователь не найден: запись с пустой ссылкой не создается
	m.users.On("GetRandomID", mock.Anything).Return(int64(0), models.ErrUserNotFound).Once()

	err := svc.RunSeedingCycle(ctx)
	assert.ErrorIs(t, err, models.ErrUserNotFound)
	m.challenges.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	// Видео после сбоя не генерируется
	m.ai.AssertNumberOfCalls(t, "Generate", 2)
	m.assertExpectations(t)
}

func TestSeederService_RunSeedingCycle_MalformedCompletion(t *testing.T) {
	t.Run("fail policy aborts the cycle", func(t *testing.T) {
		svc, m := newSeeder(t, SeederConfig{MaxAttempts: 3, ParsePolicy: config.SeedParsePolicyFail})
		ctx := context.Background()

		m.ai.On("Generate", mock.Anything, userSeedPrompt).Return("not a json", nil).Once()

		err := svc.RunSeedingCycle(ctx)
		assert.ErrorIs(t, err, models.ErrMalformedCompletion)
		m.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		m.assertExpectations(t)
	})

	t.Run("skip policy treats it as absent content", func(t *testing.T) {
		svc, m := newSeeder(t, SeederConfig{MaxAttempts: 3, ParsePolicy: config.SeedParsePolicySkip})
		ctx := context.Background()

		m.ai.On("Generate", mock.Anything, userSeedPrompt).Return("not a json", nil).Once()

		err := svc.RunSeedingCycle(ctx)
		assert.NoError(t, err)
		m.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		m.ai.AssertNumberOfCalls(t, "Generate", 1)
		m.assertExpectations(t)
	})
}

func TestSeederService_RunSeedingCycle_GenerationTransportFault(t *testing.T) {
	svc, m := newSeeder(t, SeederConfig{MaxAttempts: 3})
	ctx := context.Background()

	transportErr := errors.New("connection refused")
	m.ai.On("Generate", mock.Anything, userSeedPrompt).Return("", transportErr).Once()

	err := svc.RunSeedingCycle(ctx)
	assert.ErrorIs(t, err, transportErr)
	m.assertExpectations(t)
}

func TestSeederService_RunSeedingCycle_ConcurrentInsertCollision(t *testing.T) {
	svc, m := newSeeder(t, SeederConfig{MaxAttempts: 3})
	ctx := context.Background()

	// Проверка уникальности проходит, но вставка проигрывает гонку
	m.ai.On("Generate", mock.Anything, userSeedPrompt).
		Return(`{"name":"Ana","email":"race@x.com","imagePath":"p"}`, nil).Once()
	m.users.On("GetByEmail", mock.Anything, "race@x.com").
		Return(nil, models.ErrUserNotFound).Once()
	m.users.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).
		Return(models.ErrEmailAlreadyExists).Once()

	m.ai.On("Generate", mock.Anything, userSeedPrompt).
		Return(`{"name":"Bea","email":"free@x.com","imagePath":"p"}`, nil).Once()
	m.users.On("GetByEmail", mock.Anything, "free@x.com").
		Return(nil, models.ErrUserNotFound).Once()
	m.users.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).
		Return(nil).Once()

	m.ai.On("Generate", mock.Anything, challengeSeedPrompt).Return("", nil).Once()
	m.ai.On("Generate", mock.Anything, videoSeedPrompt).Return("", nil).Once()

	err := svc.RunSeedingCycle(ctx)
	assert.NoError(t, err)
	m.assertExpectations(t)
}

func TestExtractJSONObject(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain object",
			input:    `{"a":1}`,
			expected: `{"a":1}`,
		},
		{
			name:     "markdown fenced",
			input:    "```json\n{\"a\":1}\n```",
			expected: `{"a":1}`,
		},
		{
			name:     "surrounded by prose",
			input:    "Here is your JSON:\n{\"a\":1}\nHope that helps!",
			expected: `{"a":1}`,
		},
		{
			name:     "no braces at all",
			input:    "nothing here",
			expected: "nothing here",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, extractJSONObject(tc.input))
		})
	}
}
