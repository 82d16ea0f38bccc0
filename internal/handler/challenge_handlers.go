package handler

import (
	"net/http"
	"strconv"

	"challenge-server/internal/models"
	"challenge-server/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ChallengeHandler обрабатывает HTTP запросы для заданий.
type ChallengeHandler struct {
	service *service.ChallengeService
	logger  *zap.Logger
}

// NewChallengeHandler создает новый ChallengeHandler.
func NewChallengeHandler(s *service.ChallengeService, logger *zap.Logger) *ChallengeHandler {
	return &ChallengeHandler{
		service: s,
		logger:  logger.Named("ChallengeHandler"),
	}
}

// RegisterRoutes регистрирует маршруты заданий.
func (h *ChallengeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	challenges := rg.Group("/challenges")
	{
		challenges.POST("", h.create)
		challenges.GET("", h.list)
		challenges.GET("/:id", h.getByID)
		challenges.PUT("", h.update)
		challenges.DELETE("", h.delete)
	}
}

func (h *ChallengeHandler) create(c *gin.Context) {
	var req challengeCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.Fail("Invalid request data: "+err.Error()))
		return
	}

	challenge := &models.Challenge{
		Title:       req.Title,
		Description: req.Description,
		Difficulty:  req.Difficulty,
		UserID:      req.UserID,
	}
	if err := h.service.Create(c.Request.Context(), challenge); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.OK("Challenge created", challenge))
}

func (h *ChallengeHandler) list(c *gin.Context) {
	page := parsePageParam(c)
	result, err := h.service.List(c.Request.Context(), page, 0)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("Challenges retrieved", result))
}

func (h *ChallengeHandler) getByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.Fail("Invalid id parameter"))
		return
	}

	challenge, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("Challenge retrieved", challenge))
}

func (h *ChallengeHandler) update(c *gin.Context) {
	var req challengeUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.Fail("Invalid request data: "+err.Error()))
		return
	}

	challenge := &models.Challenge{
		ID:          req.ID,
		Title:       req.Title,
		Description: req.Description,
		Difficulty:  req.Difficulty,
	}
	if err := h.service.Update(c.Request.Context(), challenge); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.OK("Challenge updated", challenge))
}

func (h *ChallengeHandler) delete(c *gin.Context) {
	var req deleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.Fail("Invalid request data: "+err.Error()))
		return
	}

	if err := h.service.Delete(c.Request.Context(), req.ID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("Challenge deleted", nil))
}
