package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Shivansh-hub495/smriti-vikalpa-shastra-sub000/internal/cache"
	"github.com/Shivansh-hub495/smriti-vikalpa-shastra-sub000/internal/grading"
	"github.com/Shivansh-hub495/smriti-vikalpa-shastra-sub000/internal/models"
	"github.com/Shivansh-hub495/smriti-vikalpa-shastra-sub000/internal/repositories"
	"github.com/Shivansh-hub495/smriti-vikalpa-shastra-sub000/internal/stats"
	"github.com/Shivansh-hub495/smriti-vikalpa-shastra-sub000/internal/utils"
)

type AnalyticsService interface {
	GetQuizSummary(ctx context.Context, quizID uint, userID string) (*QuizSummaryResponse, error)
	GetQuestionStats(ctx context.Context, quizID uint, userID string) ([]QuestionStatsItem, error)
	InvalidateSummary(ctx context.Context, quizID uint, userID string)
}

// ===== RESPONSE TYPES =====

type QuizSummaryResponse struct {
	QuizID       uint          `json:"quiz_id"`
	UserID       string        `json:"user_id"`
	PassingScore *float64      `json:"passing_score,omitempty"`
	Summary      stats.Summary `json:"summary"`
}

type QuestionStatsItem struct {
	QuestionID    uint                `json:"question_id"`
	Text          string              `json:"text"`
	Type          models.QuestionType `json:"type"`
	TimesAnswered int                 `json:"times_answered"`
	TimesCorrect  int                 `json:"times_correct"`
	CorrectRate   *float64            `json:"correct_rate,omitempty"`
}

const summaryCacheTTL = 5 * time.Minute

type analyticsService struct {
	repo   repositories.Repository
	logger utils.Logger
	cache  cache.CacheService
}

func NewAnalyticsService(repo repositories.Repository, logger utils.Logger, cacheService cache.CacheService) AnalyticsService {
	return &analyticsService{
		repo:   repo,
		logger: logger,
		cache:  cacheService,
	}
}

// GetQuizSummary aggregates a user's attempt history at one quiz. Results are
// cached per quiz and user and invalidated when a new attempt is submitted.
func (s *analyticsService) GetQuizSummary(ctx context.Context, quizID uint, userID string) (*QuizSummaryResponse, error) {
	key := summaryCacheKey(quizID, userID)

	var cached QuizSummaryResponse
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.WarnContext(ctx, "Summary cache read failed", "key", key, "error", err)
	}

	settings, err := s.repo.Quiz().GetSettings(ctx, quizID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to get quiz settings: %w", err)
	}

	attempts, err := s.repo.Attempt().GetByQuizAndUser(ctx, quizID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get attempts: %w", err)
	}

	statsAttempts := make([]stats.Attempt, len(attempts))
	for i, a := range attempts {
		statsAttempts[i] = stats.Attempt{Score: a.Score, TimeTaken: a.TimeTaken}
	}

	response := &QuizSummaryResponse{
		QuizID:       quizID,
		UserID:       userID,
		PassingScore: settings.PassingScore,
		Summary:      stats.Summarize(statsAttempts, settings.PassingScore, stats.MostRecentFirst),
	}

	if err := s.cache.Set(ctx, key, response, summaryCacheTTL); err != nil {
		s.logger.WarnContext(ctx, "Summary cache write failed", "key", key, "error", err)
	}

	return response, nil
}

// GetQuestionStats computes per-question correct rates across all attempts at
// a quiz. Restricted to the quiz owner.
func (s *analyticsService) GetQuestionStats(ctx context.Context, quizID uint, userID string) ([]QuestionStatsItem, error) {
	quiz, err := s.repo.Quiz().GetByID(ctx, quizID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}
	if quiz.CreatedBy != userID {
		return nil, NewPermissionError(userID, quizID, "quiz", "view question stats", "not the quiz owner")
	}

	questions, err := s.repo.Question().GetByQuiz(ctx, quizID)
	if err != nil {
		return nil, fmt.Errorf("failed to get questions: %w", err)
	}

	attempts, _, err := s.repo.Attempt().List(ctx, repositories.AttemptFilters{QuizID: &quizID})
	if err != nil {
		return nil, fmt.Errorf("failed to get attempts: %w", err)
	}

	answered := make(map[uint]int)
	correct := make(map[uint]int)
	for _, attempt := range attempts {
		var results []models.QuestionResult
		if len(attempt.Results) == 0 {
			continue
		}
		if err := json.Unmarshal(attempt.Results, &results); err != nil {
			s.logger.WarnContext(ctx, "Skipping attempt with undecodable results",
				"attempt_id", attempt.ID, "error", err)
			continue
		}
		for _, r := range results {
			answered[r.QuestionID]++
			if r.Correct {
				correct[r.QuestionID]++
			}
		}
	}

	items := make([]QuestionStatsItem, 0, len(questions))
	for _, q := range questions {
		item := QuestionStatsItem{
			QuestionID:    q.ID,
			Text:          q.Text,
			Type:          q.Type,
			TimesAnswered: answered[q.ID],
			TimesCorrect:  correct[q.ID],
		}
		if item.TimesAnswered > 0 {
			rate := grading.Round1(100 * float64(item.TimesCorrect) / float64(item.TimesAnswered))
			item.CorrectRate = &rate
		}
		items = append(items, item)
	}

	return items, nil
}

// InvalidateSummary drops the cached summary for a quiz and user. Failures
// are logged, not returned: a stale cache entry expires on its own.
func (s *analyticsService) InvalidateSummary(ctx context.Context, quizID uint, userID string) {
	key := summaryCacheKey(quizID, userID)
	if err := s.cache.Delete(ctx, key); err != nil {
		s.logger.WarnContext(ctx, "Summary cache invalidation failed", "key", key, "error", err)
	}
}

func summaryCacheKey(quizID uint, userID string) string {
	return fmt.Sprintf("analytics:summary:%d:%s", quizID, userID)
}
