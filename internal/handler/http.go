package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	ginprometheus "github.com/zsais/go-gin-prometheus"
)

// RouterConfig содержит зависимости для сборки HTTP роутера.
type RouterConfig struct {
	Logger             *zap.Logger
	BasePath           string
	CORSAllowedOrigins []string

	UserHandler      *UserHandler
	ChallengeHandler *ChallengeHandler
	VideoHandler     *VideoHandler
	SeedHandler      *SeedHandler

	// SeedMiddleware применяется только к маршруту сидирования
	// (rate limiting дорогих запросов к AI).
	SeedMiddleware []gin.HandlerFunc
}

// NewRouter собирает gin.Engine со всеми middleware и маршрутами.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(ZapLoggingMiddleware(cfg.Logger))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization", "X-Request-ID")
	router.Use(cors.New(corsConfig))

	// Метрики Prometheus на /metrics
	prom := ginprometheus.NewPrometheus("gin")
	prom.Use(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group(cfg.BasePath)
	cfg.UserHandler.RegisterRoutes(api)
	cfg.ChallengeHandler.RegisterRoutes(api)
	cfg.VideoHandler.RegisterRoutes(api)
	cfg.SeedHandler.RegisterRoutes(api, cfg.SeedMiddleware...)

	return router
}
