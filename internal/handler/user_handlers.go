package handler

import (
	"net/http"
	"strconv"

	"challenge-server/internal/models"
	"challenge-server/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler обрабатывает HTTP запросы для пользователей.
type UserHandler struct {
	service *service.UserService
	logger  *zap.Logger
}

// NewUserHandler создает новый UserHandler.
func NewUserHandler(s *service.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		service: s,
		logger:  logger.Named("UserHandler"),
	}
}

// RegisterRoutes регистрирует маршруты пользователей.
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	{
		users.POST("", h.create)
		users.GET("", h.list)
		users.GET("/:id", h.getByID)
		users.PUT("", h.update)
		users.DELETE("", h.delete)
	}
}

func (h *UserHandler) create(c *gin.Context) {
	var req userCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.Fail("Invalid request data: "+err.Error()))
		return
	}

	user := &models.User{
		Name:      req.Name,
		Email:     req.Email,
		ImagePath: req.ImagePath,
	}
	if err := h.service.Create(c.Request.Context(), user); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.OK("User created", user))
}

func (h *UserHandler) list(c *gin.Context) {
	page := parsePageParam(c)
	result, err := h.service.List(c.Request.Context(), page, 0)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("Users retrieved", result))
}

func (h *UserHandler) getByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.Fail("Invalid id parameter"))
		return
	}

	user, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("User retrieved", user))
}

func (h *UserHandler) update(c *gin.Context) {
	var req userUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.Fail("Invalid request data: "+err.Error()))
		return
	}

	user := &models.User{
		ID:        req.ID,
		Name:      req.Name,
		Email:     req.Email,
		ImagePath: req.ImagePath,
	}
	if err := h.service.Update(c.Request.Context(), user); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.OK("User updated", user))
}

func (h *UserHandler) delete(c *gin.Context) {
	var req deleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.Fail("Invalid request data: "+err.Error()))
		return
	}

	if err := h.service.Delete(c.Request.Context(), req.ID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("User deleted", nil))
}

// parsePageParam извлекает номер страницы из query-параметра page.
func parsePageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
