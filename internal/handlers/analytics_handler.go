package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Shivansh-hub495/smriti-vikalpa-shastra-sub000/internal/services"
	"github.com/Shivansh-hub495/smriti-vikalpa-shastra-sub000/internal/utils"
)

type AnalyticsHandler struct {
	BaseHandler
	analyticsService services.AnalyticsService
	exportService    services.ExportService
}

func NewAnalyticsHandler(analyticsService services.AnalyticsService, exportService services.ExportService, logger utils.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		BaseHandler:      NewBaseHandler(logger),
		analyticsService: analyticsService,
		exportService:    exportService,
	}
}

// GetQuizSummary returns aggregate attempt statistics for the current user
// @Summary Get quiz summary
// @Description Aggregates the user's attempt history at a quiz
// @Tags analytics
// @Produce json
// @Param quiz_id path uint true "Quiz ID"
// @Success 200 {object} services.QuizSummaryResponse
// @Failure 404 {object} ErrorResponse
// @Router /analytics/quizzes/{quiz_id}/summary [get]
func (h *AnalyticsHandler) GetQuizSummary(c *gin.Context) {
	quizID := h.parseIDParam(c, "quiz_id")
	if quizID == 0 {
		return
	}

	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	summary, err := h.analyticsService.GetQuizSummary(c.Request.Context(), quizID, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetQuestionStats returns per-question correct rates for a quiz
// @Summary Get question stats
// @Tags analytics
// @Produce json
// @Param quiz_id path uint true "Quiz ID"
// @Success 200 {array} services.QuestionStatsItem
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /analytics/quizzes/{quiz_id}/questions [get]
func (h *AnalyticsHandler) GetQuestionStats(c *gin.Context) {
	quizID := h.parseIDParam(c, "quiz_id")
	if quizID == 0 {
		return
	}

	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	stats, err := h.analyticsService.GetQuestionStats(c.Request.Context(), quizID, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ExportQuizResults downloads all attempts at a quiz as an Excel file
// @Summary Export quiz results
// @Tags analytics
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param quiz_id path uint true "Quiz ID"
// @Success 200 {file} binary
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /analytics/quizzes/{quiz_id}/export [get]
func (h *AnalyticsHandler) ExportQuizResults(c *gin.Context) {
	quizID := h.parseIDParam(c, "quiz_id")
	if quizID == 0 {
		return
	}

	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Exporting quiz results", "quiz_id", quizID)

	data, err := h.exportService.ExportQuizResults(c.Request.Context(), quizID, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("quiz_%d_results.xlsx", quizID)
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
