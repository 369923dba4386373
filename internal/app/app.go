package app

import (
	"fmt"
	"time"

	"pathfinder_gateway/internal/config"
	"pathfinder_gateway/internal/handlers"
	"pathfinder_gateway/internal/logger"
	"pathfinder_gateway/internal/middleware"
	"pathfinder_gateway/internal/routes"
	"pathfinder_gateway/internal/session"
	"pathfinder_gateway/internal/upstream"
	"pathfinder_gateway/internal/validator"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func Run() {
	// .env необязателен: в контейнере конфигурация приходит переменными
	// окружения напрямую
	_ = godotenv.Load()

	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	storageInstance, err := session.NewStorage(session.Config{
		Type:     cfg.Sessions.Storage.Type,
		BasePath: cfg.Sessions.Storage.BasePath,
		DSN:      cfg.Sessions.Storage.DSN,
	})
	if err != nil {
		logger.Fatal("Failed to initialize session storage", "error", err)
	}
	logger.Info("Session storage initialized", "type", cfg.Sessions.Storage.Type)

	ginRouter := SetupRouter(cfg, storageInstance)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("🚀 Gateway starting on %s", address), "upstream", cfg.Upstream.BaseURL)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter собирает роутер шлюза: upstream-клиент, менеджер сессий,
// хендлеры и маршруты. Вынесен из Run, чтобы интеграционные тесты могли
// поднять полный роутер на своем хранилище и фейковом upstream.
func SetupRouter(cfg *config.Config, storageInstance session.Storage) *gin.Engine {
	api := upstream.NewClient(
		cfg.Upstream.BaseURL,
		time.Duration(cfg.Upstream.TimeoutSeconds)*time.Second,
	)

	manager := session.NewManager(storageInstance, api, session.CookieOptions{
		Name:   cfg.Sessions.CookieName,
		MaxAge: time.Duration(cfg.Sessions.TTLHours) * time.Hour,
		Secure: cfg.Sessions.CookieSecure,
	})

	appHandlers := handlers.NewAppHandlers(validator.New(), api)

	ginRouter := initializeGinRouter(cfg)
	routes.RegisterRoutes(ginRouter, manager, appHandlers)

	return ginRouter
}

func initializeGinRouter(cfg *config.Config) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())

	corsConfig := cors.DefaultConfig()
	if len(cfg.CORS.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.CORS.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowCredentials = !corsConfig.AllowAllOrigins
	router.Use(cors.New(corsConfig))

	return router
}
