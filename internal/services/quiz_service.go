package services

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/Shivansh-hub495/smriti-vikalpa-shastra-sub000/internal/events"
	"github.com/Shivansh-hub495/smriti-vikalpa-shastra-sub000/internal/models"
	"github.com/Shivansh-hub495/smriti-vikalpa-shastra-sub000/internal/repositories"
	"github.com/Shivansh-hub495/smriti-vikalpa-shastra-sub000/internal/utils"
	"github.com/Shivansh-hub495/smriti-vikalpa-shastra-sub000/internal/validator"
)

type QuizService interface {
	Create(ctx context.Context, req *CreateQuizRequest, userID string) (*models.Quiz, error)
	GetByID(ctx context.Context, id uint) (*models.Quiz, error)
	GetByIDWithQuestions(ctx context.Context, id uint) (*models.Quiz, error)
	Update(ctx context.Context, id uint, req *UpdateQuizRequest, userID string) (*models.Quiz, error)
	Delete(ctx context.Context, id uint, userID string) error
	List(ctx context.Context, filters repositories.QuizFilters) ([]*models.Quiz, int64, error)

	AddQuestions(ctx context.Context, quizID uint, reqs []QuestionRequest, userID string) ([]models.Question, error)
	UpdateQuestion(ctx context.Context, quizID, questionID uint, req *QuestionRequest, userID string) (*models.Question, error)
	DeleteQuestion(ctx context.Context, quizID, questionID uint, userID string) error

	UpdateSettings(ctx context.Context, quizID uint, req *QuizSettingsRequest, userID string) (*models.QuizSettings, error)
}

// ===== REQUEST / RESPONSE TYPES =====

type CreateQuizRequest struct {
	Title       string               `json:"title" validate:"required,min=1,max=200"`
	Description *string              `json:"description,omitempty" validate:"omitempty,max=2000"`
	FolderID    *uint                `json:"folder_id,omitempty"`
	Settings    *QuizSettingsRequest `json:"settings,omitempty"`
	Questions   []QuestionRequest    `json:"questions,omitempty" validate:"omitempty,dive"`
}

type UpdateQuizRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	FolderID    *uint   `json:"folder_id,omitempty"`
}

type QuizSettingsRequest struct {
	PassingScore       *float64 `json:"passing_score,omitempty" validate:"omitempty,min=0,max=100"`
	MaxAttempts        *int     `json:"max_attempts,omitempty" validate:"omitempty,min=0,max=100"`
	TimeLimit          *int     `json:"time_limit,omitempty" validate:"omitempty,min=30"`
	ShowCorrectAnswers *bool    `json:"show_correct_answers,omitempty"`
	ShowExplanations   *bool    `json:"show_explanations,omitempty"`
	ShowScoreBreakdown *bool    `json:"show_score_breakdown,omitempty"`
	ShuffleQuestions   *bool    `json:"shuffle_questions,omitempty"`
}

type QuestionRequest struct {
	Text        string              `json:"text" validate:"required,min=1"`
	Type        models.QuestionType `json:"type" validate:"required,question_type"`
	Data        json.RawMessage     `json:"data" validate:"required"`
	Explanation *string             `json:"explanation,omitempty"`
	OrderIndex  int                 `json:"order_index" validate:"min=0"`
}

type quizService struct {
	repo      repositories.Repository
	logger    utils.Logger
	validator *validator.Validator
	publisher events.EventPublisher
}

func NewQuizService(repo repositories.Repository, logger utils.Logger, v *validator.Validator, publisher events.EventPublisher) QuizService {
	return &quizService{
		repo:      repo,
		logger:    logger,
		validator: v,
		publisher: publisher,
	}
}

func (s *quizService) Create(ctx context.Context, req *CreateQuizRequest, userID string) (*models.Quiz, error) {
	s.logger.InfoContext(ctx, "Creating quiz", "title", req.Title, "user_id", userID)

	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}
	for i := range req.Questions {
		if err := s.validator.Question().ValidateData(req.Questions[i].Type, req.Questions[i].Data); err != nil {
			return nil, fmt.Errorf("%w: question %d: %v", ErrQuestionInvalidContent, i+1, err)
		}
	}

	quiz := &models.Quiz{
		Title:       req.Title,
		Description: req.Description,
		FolderID:    req.FolderID,
		CreatedBy:   userID,
		Settings:    buildSettings(req.Settings),
	}

	err := s.repo.WithTransaction(ctx, func(repo repositories.Repository) error {
		if err := repo.Quiz().Create(ctx, quiz); err != nil {
			return fmt.Errorf("failed to create quiz: %w", err)
		}

		if len(req.Questions) == 0 {
			return nil
		}

		questions := make([]*models.Question, len(req.Questions))
		for i, qr := range req.Questions {
			questions[i] = buildQuestion(quiz.ID, qr)
		}
		if err := repo.Question().CreateBatch(ctx, questions); err != nil {
			return fmt.Errorf("failed to create questions: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if perr := s.publisher.PublishEvent(ctx, events.NewQuizCreatedEvent(quiz.ID, quiz.Title, userID)); perr != nil {
		s.logger.WarnContext(ctx, "Failed to publish quiz created event", "quiz_id", quiz.ID, "error", perr)
	}

	s.logger.InfoContext(ctx, "Quiz created", "quiz_id", quiz.ID)
	return s.GetByIDWithQuestions(ctx, quiz.ID)
}

func (s *quizService) GetByID(ctx context.Context, id uint) (*models.Quiz, error) {
	quiz, err := s.repo.Quiz().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}
	return quiz, nil
}

func (s *quizService) GetByIDWithQuestions(ctx context.Context, id uint) (*models.Quiz, error) {
	quiz, err := s.repo.Quiz().GetByIDWithQuestions(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}
	return quiz, nil
}

func (s *quizService) Update(ctx context.Context, id uint, req *UpdateQuizRequest, userID string) (*models.Quiz, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	quiz, err := s.getOwnedQuiz(ctx, id, userID, "update")
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		quiz.Title = *req.Title
	}
	if req.Description != nil {
		quiz.Description = req.Description
	}
	if req.FolderID != nil {
		quiz.FolderID = req.FolderID
	}

	if err := s.repo.Quiz().Update(ctx, quiz); err != nil {
		return nil, fmt.Errorf("failed to update quiz: %w", err)
	}

	return quiz, nil
}

func (s *quizService) Delete(ctx context.Context, id uint, userID string) error {
	if _, err := s.getOwnedQuiz(ctx, id, userID, "delete"); err != nil {
		return err
	}

	if err := s.repo.Quiz().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete quiz: %w", err)
	}

	if perr := s.publisher.PublishEvent(ctx, events.NewQuizDeletedEvent(id, userID)); perr != nil {
		s.logger.WarnContext(ctx, "Failed to publish quiz deleted event", "quiz_id", id, "error", perr)
	}

	s.logger.InfoContext(ctx, "Quiz deleted", "quiz_id", id, "user_id", userID)
	return nil
}

func (s *quizService) List(ctx context.Context, filters repositories.QuizFilters) ([]*models.Quiz, int64, error) {
	return s.repo.Quiz().List(ctx, filters)
}

func (s *quizService) AddQuestions(ctx context.Context, quizID uint, reqs []QuestionRequest, userID string) ([]models.Question, error) {
	if len(reqs) == 0 {
		return nil, fmt.Errorf("%w: no questions provided", ErrBadRequest)
	}

	if _, err := s.getOwnedQuiz(ctx, quizID, userID, "add questions to"); err != nil {
		return nil, err
	}

	questions := make([]*models.Question, len(reqs))
	for i, qr := range reqs {
		if err := s.validator.Validate(&qr); err != nil {
			return nil, fmt.Errorf("%w: question %d: %v", ErrValidationFailed, i+1, err)
		}
		if err := s.validator.Question().ValidateData(qr.Type, qr.Data); err != nil {
			return nil, fmt.Errorf("%w: question %d: %v", ErrQuestionInvalidContent, i+1, err)
		}
		questions[i] = buildQuestion(quizID, qr)
	}

	if err := s.repo.Question().CreateBatch(ctx, questions); err != nil {
		return nil, fmt.Errorf("failed to create questions: %w", err)
	}

	created := make([]models.Question, len(questions))
	for i, q := range questions {
		created[i] = *q
	}
	return created, nil
}

func (s *quizService) UpdateQuestion(ctx context.Context, quizID, questionID uint, req *QuestionRequest, userID string) (*models.Question, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}
	if err := s.validator.Question().ValidateData(req.Type, req.Data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQuestionInvalidContent, err)
	}

	if _, err := s.getOwnedQuiz(ctx, quizID, userID, "update question in"); err != nil {
		return nil, err
	}

	question, err := s.repo.Question().GetByID(ctx, questionID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	if question.QuizID != quizID {
		return nil, ErrQuestionNotFound
	}

	question.Text = req.Text
	question.Type = req.Type
	question.Data = datatypes.JSON(req.Data)
	question.Explanation = req.Explanation
	question.OrderIndex = req.OrderIndex

	if err := s.repo.Question().Update(ctx, question); err != nil {
		return nil, fmt.Errorf("failed to update question: %w", err)
	}

	return question, nil
}

func (s *quizService) DeleteQuestion(ctx context.Context, quizID, questionID uint, userID string) error {
	if _, err := s.getOwnedQuiz(ctx, quizID, userID, "delete question from"); err != nil {
		return err
	}

	question, err := s.repo.Question().GetByID(ctx, questionID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrQuestionNotFound
		}
		return fmt.Errorf("failed to get question: %w", err)
	}
	if question.QuizID != quizID {
		return ErrQuestionNotFound
	}

	return s.repo.Question().Delete(ctx, questionID)
}

func (s *quizService) UpdateSettings(ctx context.Context, quizID uint, req *QuizSettingsRequest, userID string) (*models.QuizSettings, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	if _, err := s.getOwnedQuiz(ctx, quizID, userID, "update settings of"); err != nil {
		return nil, err
	}

	settings, err := s.repo.Quiz().GetSettings(ctx, quizID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to get quiz settings: %w", err)
	}

	applySettings(settings, req)

	if err := s.repo.Quiz().UpdateSettings(ctx, settings); err != nil {
		return nil, fmt.Errorf("failed to update quiz settings: %w", err)
	}

	return settings, nil
}

// ===== HELPERS =====

func (s *quizService) getOwnedQuiz(ctx context.Context, id uint, userID, action string) (*models.Quiz, error) {
	quiz, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if quiz.CreatedBy != userID {
		return nil, NewPermissionError(userID, id, "quiz", action, "not the quiz owner")
	}
	return quiz, nil
}

func buildSettings(req *QuizSettingsRequest) models.QuizSettings {
	settings := models.QuizSettings{
		ShowCorrectAnswers: true,
		ShowExplanations:   true,
		ShowScoreBreakdown: true,
	}
	if req != nil {
		applySettings(&settings, req)
	}
	return settings
}

func applySettings(settings *models.QuizSettings, req *QuizSettingsRequest) {
	if req.PassingScore != nil {
		settings.PassingScore = req.PassingScore
	}
	if req.MaxAttempts != nil {
		settings.MaxAttempts = *req.MaxAttempts
	}
	if req.TimeLimit != nil {
		settings.TimeLimit = req.TimeLimit
	}
	if req.ShowCorrectAnswers != nil {
		settings.ShowCorrectAnswers = *req.ShowCorrectAnswers
	}
	if req.ShowExplanations != nil {
		settings.ShowExplanations = *req.ShowExplanations
	}
	if req.ShowScoreBreakdown != nil {
		settings.ShowScoreBreakdown = *req.ShowScoreBreakdown
	}
	if req.ShuffleQuestions != nil {
		settings.ShuffleQuestions = *req.ShuffleQuestions
	}
}

func buildQuestion(quizID uint, req QuestionRequest) *models.Question {
	return &models.Question{
		QuizID:      quizID,
		Text:        req.Text,
		Type:        req.Type,
		Data:        datatypes.JSON(req.Data),
		Explanation: req.Explanation,
		OrderIndex:  req.OrderIndex,
	}
}
