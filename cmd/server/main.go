package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/Shivansh-hub495/smriti-vikalpa-shastra-sub000/internal/cache"
	"github.com/Shivansh-hub495/smriti-vikalpa-shastra-sub000/internal/config"
	"github.com/Shivansh-hub495/smriti-vikalpa-shastra-sub000/internal/handlers"
	"github.com/Shivansh-hub495/smriti-vikalpa-shastra-sub000/internal/models"
	"github.com/Shivansh-hub495/smriti-vikalpa-shastra-sub000/internal/repositories/postgres"
	"github.com/Shivansh-hub495/smriti-vikalpa-shastra-sub000/internal/services"
	"github.com/Shivansh-hub495/smriti-vikalpa-shastra-sub000/internal/utils"
	"github.com/Shivansh-hub495/smriti-vikalpa-shastra-sub000/internal/validator"
	"github.com/Shivansh-hub495/smriti-vikalpa-shastra-sub000/pkg"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	var logger utils.Logger
	if cfg.Environment == "production" {
		logger = utils.NewDefaultLogger()
	} else {
		logger = utils.NewDevelopmentLogger()
	}

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := db.AutoMigrate(
		&models.Quiz{},
		&models.QuizSettings{},
		&models.Question{},
		&models.QuizAttempt{},
	); err != nil {
		logger.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	redisClient, err := pkg.NewRedisClient(cfg)
	if err != nil {
		logger.Error("Failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	slogLogger := slog.Default()
	if sl, ok := logger.(*utils.SlogLogger); ok {
		slogLogger = sl.GetSlogLogger()
	}

	publisher, err := cfg.Events.CreateEventPublisher(slogLogger)
	if err != nil {
		logger.Error("Failed to create event publisher", "error", err)
		os.Exit(1)
	}
	defer publisher.Close()

	repo := postgres.NewRepository(db)
	defer repo.Close()

	v := validator.New()
	cacheService := cache.NewRedisCache(redisClient, logger)
	serviceManager := services.NewManager(repo, logger, v, publisher, cacheService)
	handlerManager := handlers.NewHandlerManager(serviceManager, logger)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.LoggerMiddleware(logger))
	router.Use(utils.ContextLogger(logger))

	handlerManager.SetupRoutes(router)

	logger.Info("Starting quiz service", "port", cfg.Port, "environment", cfg.Environment)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Error("Server exited", "error", err)
		os.Exit(1)
	}
}
