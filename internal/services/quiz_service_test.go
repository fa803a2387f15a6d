package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Shivansh-hub495/smriti-vikalpa-shastra-sub000/internal/events"
	"github.com/Shivansh-hub495/smriti-vikalpa-shastra-sub000/internal/models"
	"github.com/Shivansh-hub495/smriti-vikalpa-shastra-sub000/internal/utils"
	"github.com/Shivansh-hub495/smriti-vikalpa-shastra-sub000/internal/validator"
)

func newTestQuizService(repo *MockRepository) (QuizService, *events.MockEventPublisher) {
	logger := utils.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	publisher := events.NewMockEventPublisher(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	return NewQuizService(repo, logger, validator.New(), publisher), publisher
}

func TestCreateQuiz_Validation(t *testing.T) {
	repo := NewMockRepository()
	service, _ := newTestQuizService(repo)

	// Missing title
	_, err := service.Create(context.Background(), &CreateQuizRequest{}, "teacher-1")
	assert.ErrorIs(t, err, ErrValidationFailed)

	// Question payload inconsistent with its type
	_, err = service.Create(context.Background(), &CreateQuizRequest{
		Title: "Broken quiz",
		Questions: []QuestionRequest{{
			Text: "Pick one",
			Type: models.QuestionMCQ,
			Data: json.RawMessage(`{"options":["only one"],"correctAnswer":0}`),
		}},
	}, "teacher-1")
	assert.ErrorIs(t, err, ErrQuestionInvalidContent)

	repo.QuizRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateQuiz_PublishesEvent(t *testing.T) {
	repo := NewMockRepository()
	service, publisher := newTestQuizService(repo)

	repo.QuizRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Quiz")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Quiz).ID = 3
		}).
		Return(nil)
	repo.QuizRepo.On("GetByIDWithQuestions", mock.Anything, uint(3)).
		Return(&models.Quiz{ID: 3, Title: "Capitals", CreatedBy: "teacher-1"}, nil)

	quiz, err := service.Create(context.Background(), &CreateQuizRequest{Title: "Capitals"}, "teacher-1")
	assert.NoError(t, err)
	assert.Equal(t, uint(3), quiz.ID)

	published := publisher.GetPublishedEvents()
	assert.Len(t, published, 1)
	assert.Equal(t, events.EventQuizCreated, published[0].Type)
}

func TestDeleteQuiz_OwnerOnly(t *testing.T) {
	repo := NewMockRepository()
	service, publisher := newTestQuizService(repo)

	repo.QuizRepo.On("GetByID", mock.Anything, uint(1)).
		Return(&models.Quiz{ID: 1, CreatedBy: "teacher-1"}, nil)

	err := service.Delete(context.Background(), 1, "intruder")
	assert.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.Empty(t, publisher.GetPublishedEvents())
	repo.QuizRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestUpdateSettings(t *testing.T) {
	repo := NewMockRepository()
	service, _ := newTestQuizService(repo)

	repo.QuizRepo.On("GetByID", mock.Anything, uint(1)).
		Return(&models.Quiz{ID: 1, CreatedBy: "teacher-1"}, nil)
	repo.QuizRepo.On("GetSettings", mock.Anything, uint(1)).
		Return(&models.QuizSettings{QuizID: 1, ShowCorrectAnswers: true}, nil)
	repo.QuizRepo.On("UpdateSettings", mock.Anything, mock.AnythingOfType("*models.QuizSettings")).Return(nil)

	passing := 70.0
	maxAttempts := 3
	settings, err := service.UpdateSettings(context.Background(), 1, &QuizSettingsRequest{
		PassingScore: &passing,
		MaxAttempts:  &maxAttempts,
	}, "teacher-1")
	assert.NoError(t, err)

	assert.Equal(t, 70.0, *settings.PassingScore)
	assert.Equal(t, 3, settings.MaxAttempts)
	// Untouched flags keep their stored values.
	assert.True(t, settings.ShowCorrectAnswers)
}

func TestUpdateSettings_RejectsOutOfRange(t *testing.T) {
	repo := NewMockRepository()
	service, _ := newTestQuizService(repo)

	passing := 150.0
	_, err := service.UpdateSettings(context.Background(), 1, &QuizSettingsRequest{
		PassingScore: &passing,
	}, "teacher-1")
	assert.ErrorIs(t, err, ErrValidationFailed)
}
