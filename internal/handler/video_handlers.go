package handler

import (
	"net/http"
	"strconv"

	"challenge-server/internal/models"
	"challenge-server/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// VideoHandler обрабатывает HTTP запросы для видео.
type VideoHandler struct {
	service *service.VideoService
	logger  *zap.Logger
}

// NewVideoHandler создает новый VideoHandler.
func NewVideoHandler(s *service.VideoService, logger *zap.Logger) *VideoHandler {
	return &VideoHandler{
		service: s,
		logger:  logger.Named("VideoHandler"),
	}
}

// RegisterRoutes регистрирует маршруты видео.
func (h *VideoHandler) RegisterRoutes(rg *gin.RouterGroup) {
	videos := rg.Group("/videos")
	{
		videos.POST("", h.create)
		videos.GET("", h.list)
		videos.GET("/:id", h.getByID)
		videos.PUT("", h.update)
		videos.DELETE("", h.delete)
	}
}

func (h *VideoHandler) create(c *gin.Context) {
	var req videoCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.Fail("Invalid request data: "+err.Error()))
		return
	}

	video := &models.Video{
		Title:       req.Title,
		Description: req.Description,
		URL:         req.URL,
		UserID:      req.UserID,
	}
	if err := h.service.Create(c.Request.Context(), video); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.OK("Video created", video))
}

func (h *VideoHandler) list(c *gin.Context) {
	page := parsePageParam(c)
	result, err := h.service.List(c.Request.Context(), page, 0)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("Videos retrieved", result))
}

func (h *VideoHandler) getByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.Fail("Invalid id parameter"))
		return
	}

	video, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("Video retrieved", video))
}

func (h *VideoHandler) update(c *gin.Context) {
	var req videoUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.Fail("Invalid request data: "+err.Error()))
		return
	}

	video := &models.Video{
		ID:          req.ID,
		Title:       req.Title,
		Description: req.Description,
		URL:         req.URL,
	}
	if err := h.service.Update(c.Request.Context(), video); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.OK("Video updated", video))
}

func (h *VideoHandler) delete(c *gin.Context) {
	var req deleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.Fail("Invalid request data: "+err.Error()))
		return
	}

	if err := h.service.Delete(c.Request.Context(), req.ID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("Video deleted", nil))
}
