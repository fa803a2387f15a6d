package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"github.com/Shivansh-hub495/smriti-vikalpa-shastra-sub000/internal/events"
	"github.com/Shivansh-hub495/smriti-vikalpa-shastra-sub000/internal/grading"
	"github.com/Shivansh-hub495/smriti-vikalpa-shastra-sub000/internal/models"
	"github.com/Shivansh-hub495/smriti-vikalpa-shastra-sub000/internal/repositories"
	"github.com/Shivansh-hub495/smriti-vikalpa-shastra-sub000/internal/utils"
	"github.com/Shivansh-hub495/smriti-vikalpa-shastra-sub000/internal/validator"
)

type AttemptService interface {
	Submit(ctx context.Context, req *SubmitAttemptRequest, userID string) (*AttemptResponse, error)
	GetByID(ctx context.Context, attemptID uint, userID string) (*AttemptResponse, error)
	GetHistory(ctx context.Context, quizID uint, userID string) ([]*AttemptResponse, error)
}

// ===== REQUEST / RESPONSE TYPES =====

type SubmitAttemptRequest struct {
	QuizID    uint                     `json:"quiz_id" validate:"required"`
	Answers   []models.SubmittedAnswer `json:"answers"`
	TimeTaken *int                     `json:"time_taken,omitempty" validate:"omitempty,min=0"`
}

type AttemptResponse struct {
	ID             uint                                         `json:"id"`
	QuizID         uint                                         `json:"quiz_id"`
	UserID         string                                       `json:"user_id"`
	Score          *float64                                     `json:"score,omitempty"`
	CorrectAnswers int                                          `json:"correct_answers"`
	TotalQuestions int                                          `json:"total_questions"`
	TimeTaken      *int                                         `json:"time_taken,omitempty"`
	Passed         *bool                                        `json:"passed,omitempty"`
	Questions      []models.QuestionResult                      `json:"questions,omitempty"`
	Breakdown      map[models.QuestionType]models.TypeBreakdown `json:"breakdown,omitempty"`
	SubmittedAt    time.Time                                    `json:"submitted_at"`
}

type attemptService struct {
	repo      repositories.Repository
	logger    utils.Logger
	validator *validator.Validator
	publisher events.EventPublisher
	cache     AnalyticsInvalidator
}

// AnalyticsInvalidator drops cached analytics for a quiz and user after a new
// attempt lands.
type AnalyticsInvalidator interface {
	InvalidateSummary(ctx context.Context, quizID uint, userID string)
}

func NewAttemptService(repo repositories.Repository, logger utils.Logger, v *validator.Validator, publisher events.EventPublisher, cache AnalyticsInvalidator) AttemptService {
	return &attemptService{
		repo:      repo,
		logger:    logger,
		validator: v,
		publisher: publisher,
		cache:     cache,
	}
}

// Submit grades a completed attempt and persists the outcome. Grading never
// rejects an attempt: malformed or missing answers mark their questions
// incorrect and the attempt is stored regardless.
func (s *attemptService) Submit(ctx context.Context, req *SubmitAttemptRequest, userID string) (*AttemptResponse, error) {
	s.logger.InfoContext(ctx, "Submitting quiz attempt",
		"quiz_id", req.QuizID,
		"user_id", userID,
		"answer_count", len(req.Answers))

	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	quiz, err := s.repo.Quiz().GetByID(ctx, req.QuizID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}

	if quiz.Settings.MaxAttempts > 0 {
		count, err := s.repo.Attempt().CountByQuizAndUser(ctx, req.QuizID, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to count attempts: %w", err)
		}
		if count >= int64(quiz.Settings.MaxAttempts) {
			return nil, ErrAttemptLimitExceeded
		}
	}

	questions, err := s.repo.Question().GetByQuiz(ctx, req.QuizID)
	if err != nil {
		return nil, fmt.Errorf("failed to get quiz questions: %w", err)
	}

	for i := range questions {
		if !grading.Supported(questions[i].Type) {
			s.logger.WarnContext(ctx, "Question has unsupported type, grading as incorrect",
				"question_id", questions[i].ID,
				"type", questions[i].Type)
		}
	}

	result := grading.Score(questions, req.Answers, req.TimeTaken)

	attempt, err := s.persistAttempt(ctx, quiz, userID, req.Answers, result)
	if err != nil {
		return nil, err
	}

	s.cache.InvalidateSummary(ctx, req.QuizID, userID)

	passed := passedPointer(result.Score, quiz.Settings.PassingScore)
	event := events.NewAttemptGradedEvent(
		attempt.ID, quiz.ID, quiz.Title, userID, attempt.CreatedAt,
		result.Score, result.CorrectAnswers, result.TotalQuestions, passed)
	if perr := s.publisher.PublishEvent(ctx, event); perr != nil {
		s.logger.WarnContext(ctx, "Failed to publish attempt graded event",
			"attempt_id", attempt.ID, "error", perr)
	}

	s.logger.InfoContext(ctx, "Quiz attempt graded",
		"attempt_id", attempt.ID,
		"quiz_id", quiz.ID,
		"correct", result.CorrectAnswers,
		"total", result.TotalQuestions)

	return buildAttemptResponse(attempt, &result, passed), nil
}

func (s *attemptService) GetByID(ctx context.Context, attemptID uint, userID string) (*AttemptResponse, error) {
	attempt, err := s.repo.Attempt().GetByID(ctx, attemptID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAttemptNotFound
		}
		return nil, fmt.Errorf("failed to get attempt: %w", err)
	}
	if attempt.UserID != userID {
		return nil, ErrAttemptAccessDenied
	}

	return s.decodeAttempt(ctx, attempt)
}

// GetHistory returns the user's attempts at a quiz, most recent first.
func (s *attemptService) GetHistory(ctx context.Context, quizID uint, userID string) ([]*AttemptResponse, error) {
	attempts, err := s.repo.Attempt().GetByQuizAndUser(ctx, quizID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get attempt history: %w", err)
	}

	responses := make([]*AttemptResponse, 0, len(attempts))
	for _, attempt := range attempts {
		resp, err := s.decodeAttempt(ctx, attempt)
		if err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

// ===== HELPERS =====

func (s *attemptService) persistAttempt(ctx context.Context, quiz *models.Quiz, userID string, answers []models.SubmittedAnswer, result models.AttemptResult) (*models.QuizAttempt, error) {
	answersJSON, err := json.Marshal(answers)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal answers: %w", err)
	}
	resultsJSON, err := json.Marshal(result.Questions)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal results: %w", err)
	}
	breakdownJSON, err := json.Marshal(result.Breakdown)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal breakdown: %w", err)
	}

	attempt := &models.QuizAttempt{
		QuizID:         quiz.ID,
		UserID:         userID,
		Score:          result.Score,
		CorrectAnswers: result.CorrectAnswers,
		TotalQuestions: result.TotalQuestions,
		TimeTaken:      result.TimeTaken,
		Answers:        datatypes.JSON(answersJSON),
		Results:        datatypes.JSON(resultsJSON),
		Breakdown:      datatypes.JSON(breakdownJSON),
	}

	if err := s.repo.Attempt().Create(ctx, attempt); err != nil {
		return nil, fmt.Errorf("failed to create attempt: %w", err)
	}
	return attempt, nil
}

func (s *attemptService) decodeAttempt(ctx context.Context, attempt *models.QuizAttempt) (*AttemptResponse, error) {
	var questionResults []models.QuestionResult
	if len(attempt.Results) > 0 {
		if err := json.Unmarshal(attempt.Results, &questionResults); err != nil {
			return nil, fmt.Errorf("failed to decode attempt results: %w", err)
		}
	}
	var breakdown map[models.QuestionType]models.TypeBreakdown
	if len(attempt.Breakdown) > 0 {
		if err := json.Unmarshal(attempt.Breakdown, &breakdown); err != nil {
			return nil, fmt.Errorf("failed to decode attempt breakdown: %w", err)
		}
	}

	var passed *bool
	settings, err := s.repo.Quiz().GetSettings(ctx, attempt.QuizID)
	if err == nil {
		passed = passedPointer(attempt.Score, settings.PassingScore)
	} else if !repositories.IsNotFoundError(err) {
		return nil, fmt.Errorf("failed to get quiz settings: %w", err)
	}

	result := &models.AttemptResult{
		Score:          attempt.Score,
		CorrectAnswers: attempt.CorrectAnswers,
		TotalQuestions: attempt.TotalQuestions,
		TimeTaken:      attempt.TimeTaken,
		Questions:      questionResults,
		Breakdown:      breakdown,
	}
	return buildAttemptResponse(attempt, result, passed), nil
}

func buildAttemptResponse(attempt *models.QuizAttempt, result *models.AttemptResult, passed *bool) *AttemptResponse {
	return &AttemptResponse{
		ID:             attempt.ID,
		QuizID:         attempt.QuizID,
		UserID:         attempt.UserID,
		Score:          result.Score,
		CorrectAnswers: result.CorrectAnswers,
		TotalQuestions: result.TotalQuestions,
		TimeTaken:      result.TimeTaken,
		Passed:         passed,
		Questions:      result.Questions,
		Breakdown:      result.Breakdown,
		SubmittedAt:    attempt.CreatedAt,
	}
}

// passedPointer is nil when no passing score is configured. An unscored
// attempt never passes.
func passedPointer(score, passingScore *float64) *bool {
	if passingScore == nil {
		return nil
	}
	passed := score != nil && *score >= *passingScore
	return &passed
}
