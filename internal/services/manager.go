package services

import (
	"github.com/Shivansh-hub495/smriti-vikalpa-shastra-sub000/internal/cache"
	"github.com/Shivansh-hub495/smriti-vikalpa-shastra-sub000/internal/events"
	"github.com/Shivansh-hub495/smriti-vikalpa-shastra-sub000/internal/repositories"
	"github.com/Shivansh-hub495/smriti-vikalpa-shastra-sub000/internal/utils"
	"github.com/Shivansh-hub495/smriti-vikalpa-shastra-sub000/internal/validator"
)

// Manager wires all services over shared infrastructure.
type Manager struct {
	Quiz      QuizService
	Attempt   AttemptService
	Analytics AnalyticsService
	Export    ExportService
}

func NewManager(repo repositories.Repository, logger utils.Logger, v *validator.Validator, publisher events.EventPublisher, cacheService cache.CacheService) *Manager {
	analytics := NewAnalyticsService(repo, logger, cacheService)

	return &Manager{
		Quiz:      NewQuizService(repo, logger, v, publisher),
		Attempt:   NewAttemptService(repo, logger, v, publisher, analytics),
		Analytics: analytics,
		Export:    NewExportService(repo, logger),
	}
}
