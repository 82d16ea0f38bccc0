package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"challenge-server/internal/handler"
	"challenge-server/internal/mocks"
	"challenge-server/internal/models"
	"challenge-server/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func setupSeedRouter(t *testing.T) (*gin.Engine, *mocks.MockAIClient, *mocks.MockUserRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mockAI := mocks.NewMockAIClient(t)
	mockUsers := mocks.NewMockUserRepository(t)
	mockChallenges := mocks.NewMockChallengeRepository(t)
	mockVideos := mocks.NewMockVideoRepository(t)

	seeder := service.NewSeederService(mockAI, mockUsers, mockChallenges, mockVideos,
		service.SeederConfig{MaxAttempts: 3}, zap.NewNop())

	router := gin.New()
	api := router.Group("/api")
	handler.NewSeedHandler(seeder, zap.NewNop()).RegisterRoutes(api)

	return router, mockAI, mockUsers
}

func TestSeedEndpoint_EmptyCompletionStillSucceeds(t *testing.T) {
	router, mockAI, _ := setupSeedRouter(t)

	// AI не вернул контент для пользователя: цикл успешен, записей нет
	mockAI.On("Generate", mock.Anything, mock.AnythingOfType("string")).Return("", nil).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/openai", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"status":true`)
	mockAI.AssertExpectations(t)
}

func TestSeedEndpoint_GenerationFaultReturns500(t *testing.T) {
	router, mockAI, _ := setupSeedRouter(t)

	mockAI.On("Generate", mock.Anything, mock.AnythingOfType("string")).
		Return("", assert.AnError).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/openai", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"status":false`)
	mockAI.AssertExpectations(t)
}

func TestSeedEndpoint_FullCycleCreatesRecords(t *testing.T) {
	router, mockAI, mockUsers := setupSeedRouter(t)

	// Ответы отдаются в порядке шагов цикла: пользователь, задание, видео
	mockAI.On("Generate", mock.Anything, mock.AnythingOfType("string")).
		Return(`{"name":"Ana","email":"ana@x.com","imagePath":"p"}`, nil).Once()
	mockAI.On("Generate", mock.Anything, mock.AnythingOfType("string")).
		Return("", nil).Twice()

	mockUsers.On("GetByEmail", mock.Anything, "ana@x.com").
		Return(nil, models.ErrUserNotFound).Once()
	mockUsers.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).
		Return(nil).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/openai", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockAI.AssertExpectations(t)
	mockUsers.AssertExpectations(t)
}
