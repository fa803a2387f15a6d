package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Shivansh-hub495/smriti-vikalpa-shastra-sub000/internal/services"
	"github.com/Shivansh-hub495/smriti-vikalpa-shastra-sub000/internal/utils"
)

type HandlerManager struct {
	quizHandler      *QuizHandler
	attemptHandler   *AttemptHandler
	analyticsHandler *AnalyticsHandler
}

func NewHandlerManager(manager *services.Manager, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		quizHandler:      NewQuizHandler(manager.Quiz, logger),
		attemptHandler:   NewAttemptHandler(manager.Attempt, logger),
		analyticsHandler: NewAnalyticsHandler(manager.Analytics, manager.Export, logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "quiz-service",
		})
	})

	v1 := router.Group("/api/v1")
	v1.Use(UserIDMiddleware())
	{
		// Quiz routes
		quizzes := v1.Group("/quizzes")
		{
			quizzes.POST("", hm.quizHandler.CreateQuiz)
			quizzes.GET("", hm.quizHandler.ListQuizzes)
			quizzes.GET("/:id", hm.quizHandler.GetQuiz)
			quizzes.GET("/:id/details", hm.quizHandler.GetQuizWithQuestions)
			quizzes.PUT("/:id", hm.quizHandler.UpdateQuiz)
			quizzes.DELETE("/:id", hm.quizHandler.DeleteQuiz)
			quizzes.PUT("/:id/settings", hm.quizHandler.UpdateSettings)

			// Question management
			quizzes.POST("/:id/questions", hm.quizHandler.AddQuestions)
			quizzes.PUT("/:id/questions/:question_id", hm.quizHandler.UpdateQuestion)
			quizzes.DELETE("/:id/questions/:question_id", hm.quizHandler.DeleteQuestion)
		}

		// Attempt routes
		attempts := v1.Group("/attempts")
		{
			attempts.POST("/submit", hm.attemptHandler.SubmitAttempt)
			attempts.GET("/:id", hm.attemptHandler.GetAttempt)
			attempts.GET("/quiz/:quiz_id", hm.attemptHandler.GetAttemptHistory)
		}

		// Analytics routes
		analytics := v1.Group("/analytics")
		{
			analytics.GET("/quizzes/:quiz_id/summary", hm.analyticsHandler.GetQuizSummary)
			analytics.GET("/quizzes/:quiz_id/questions", hm.analyticsHandler.GetQuestionStats)
			analytics.GET("/quizzes/:quiz_id/export", hm.analyticsHandler.ExportQuizResults)
		}
	}
}

// UserIDMiddleware resolves the caller identity from the X-User-ID header set
// by the API gateway. Requests without it proceed unauthenticated; handlers
// that need an identity reject them.
func UserIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID := c.GetHeader("X-User-ID"); userID != "" {
			c.Set("user_id", userID)
		}
		c.Next()
	}
}
