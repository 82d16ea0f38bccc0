package handler

import (
	"net/http"

	"challenge-server/internal/models"
	"challenge-server/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SeedHandler обрабатывает запуск цикла сидирования.
type SeedHandler struct {
	seeder *service.SeederService
	logger *zap.Logger
}

// NewSeedHandler создает новый SeedHandler.
func NewSeedHandler(seeder *service.SeederService, logger *zap.Logger) *SeedHandler {
	return &SeedHandler{
		seeder: seeder,
		logger: logger.Named("SeedHandler"),
	}
}

// RegisterRoutes регистрирует маршрут сидирования. Опциональные middleware
// (rate limiting) применяются только к этому маршруту.
func (h *SeedHandler) RegisterRoutes(rg *gin.RouterGroup, mw ...gin.HandlerFunc) {
	handlers := append(mw, h.seed)
	rg.POST("/openai", handlers...)
}

// seed запускает один цикл сидирования. Операция без параметров:
// успех означает, что цикл завершился без необработанного сбоя,
// даже если ни одной записи создано не было.
func (h *SeedHandler) seed(c *gin.Context) {
	if err := h.seeder.RunSeedingCycle(c.Request.Context()); err != nil {
		h.logger.Error("Seeding cycle failed", zap.Error(err))
		_ = c.Error(err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, models.Fail(err.Error()))
		return
	}

	c.JSON(http.StatusCreated, models.OK("Records created", nil))
}
