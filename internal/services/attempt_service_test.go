package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Shivansh-hub495/smriti-vikalpa-shastra-sub000/internal/events"
	"github.com/Shivansh-hub495/smriti-vikalpa-shastra-sub000/internal/models"
	"github.com/Shivansh-hub495/smriti-vikalpa-shastra-sub000/internal/utils"
	"github.com/Shivansh-hub495/smriti-vikalpa-shastra-sub000/internal/validator"
)

func newTestAttemptService(repo *MockRepository) (AttemptService, *events.MockEventPublisher) {
	logger := utils.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	publisher := events.NewMockEventPublisher(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	return NewAttemptService(repo, logger, validator.New(), publisher, noopInvalidator{}), publisher
}

func testQuiz(maxAttempts int, passingScore *float64) *models.Quiz {
	return &models.Quiz{
		ID:        1,
		Title:     "Geography Basics",
		CreatedBy: "teacher-1",
		Settings: models.QuizSettings{
			QuizID:       1,
			MaxAttempts:  maxAttempts,
			PassingScore: passingScore,
		},
	}
}

func testQuestions(t *testing.T) []models.Question {
	t.Helper()

	mcq, err := json.Marshal(models.MCQData{Options: []string{"Paris", "Rome"}, CorrectAnswer: 0})
	assert.NoError(t, err)
	tf, err := json.Marshal(models.TrueFalseData{CorrectAnswer: true})
	assert.NoError(t, err)

	return []models.Question{
		{ID: 10, QuizID: 1, Type: models.QuestionMCQ, Data: datatypes.JSON(mcq), OrderIndex: 0},
		{ID: 11, QuizID: 1, Type: models.QuestionTrueFalse, Data: datatypes.JSON(tf), OrderIndex: 1},
	}
}

func TestSubmit_GradesAndPersists(t *testing.T) {
	repo := NewMockRepository()
	service, publisher := newTestAttemptService(repo)

	passing := 50.0
	repo.QuizRepo.On("GetByID", mock.Anything, uint(1)).Return(testQuiz(0, &passing), nil)
	repo.QuestionRepo.On("GetByQuiz", mock.Anything, uint(1)).Return(testQuestions(t), nil)
	repo.AttemptRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.QuizAttempt")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.QuizAttempt).ID = 42
		}).
		Return(nil)

	req := &SubmitAttemptRequest{
		QuizID: 1,
		Answers: []models.SubmittedAnswer{
			{QuestionID: 10, Answer: json.RawMessage(`{"selectedOption":0}`)},
			{QuestionID: 11, Answer: json.RawMessage(`{"answer":false}`)},
		},
	}

	resp, err := service.Submit(context.Background(), req, "student-1")
	assert.NoError(t, err)

	assert.Equal(t, uint(42), resp.ID)
	assert.Equal(t, 1, resp.CorrectAnswers)
	assert.Equal(t, 2, resp.TotalQuestions)
	assert.Equal(t, 50.0, *resp.Score)
	assert.True(t, *resp.Passed)
	assert.Equal(t, models.TypeBreakdown{Correct: 1, Total: 1}, resp.Breakdown[models.QuestionMCQ])
	assert.Equal(t, models.TypeBreakdown{Correct: 0, Total: 1}, resp.Breakdown[models.QuestionTrueFalse])

	published := publisher.GetPublishedEvents()
	assert.Len(t, published, 1)
	assert.Equal(t, events.EventAttemptGraded, published[0].Type)

	repo.AttemptRepo.AssertExpectations(t)
}

func TestSubmit_QuizNotFound(t *testing.T) {
	repo := NewMockRepository()
	service, _ := newTestAttemptService(repo)

	repo.QuizRepo.On("GetByID", mock.Anything, uint(7)).Return(nil, gorm.ErrRecordNotFound)

	_, err := service.Submit(context.Background(), &SubmitAttemptRequest{QuizID: 7}, "student-1")
	assert.ErrorIs(t, err, ErrQuizNotFound)
}

func TestSubmit_AttemptLimitExceeded(t *testing.T) {
	repo := NewMockRepository()
	service, publisher := newTestAttemptService(repo)

	repo.QuizRepo.On("GetByID", mock.Anything, uint(1)).Return(testQuiz(2, nil), nil)
	repo.AttemptRepo.On("CountByQuizAndUser", mock.Anything, uint(1), "student-1").Return(int64(2), nil)

	_, err := service.Submit(context.Background(), &SubmitAttemptRequest{QuizID: 1}, "student-1")
	assert.ErrorIs(t, err, ErrAttemptLimitExceeded)
	assert.Empty(t, publisher.GetPublishedEvents())
	repo.AttemptRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmit_EmptyQuizStoresNilScore(t *testing.T) {
	repo := NewMockRepository()
	service, _ := newTestAttemptService(repo)

	repo.QuizRepo.On("GetByID", mock.Anything, uint(1)).Return(testQuiz(0, nil), nil)
	repo.QuestionRepo.On("GetByQuiz", mock.Anything, uint(1)).Return([]models.Question{}, nil)
	repo.AttemptRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.QuizAttempt")).Return(nil)

	resp, err := service.Submit(context.Background(), &SubmitAttemptRequest{QuizID: 1}, "student-1")
	assert.NoError(t, err)

	assert.Nil(t, resp.Score)
	assert.Equal(t, 0, resp.TotalQuestions)
	assert.Nil(t, resp.Passed)
}

func TestGetByID_OwnershipEnforced(t *testing.T) {
	repo := NewMockRepository()
	service, _ := newTestAttemptService(repo)

	attempt := &models.QuizAttempt{ID: 5, QuizID: 1, UserID: "student-1"}
	repo.AttemptRepo.On("GetByID", mock.Anything, uint(5)).Return(attempt, nil)

	_, err := service.GetByID(context.Background(), 5, "someone-else")
	assert.ErrorIs(t, err, ErrAttemptAccessDenied)
}

func TestGetHistory_DecodesStoredResults(t *testing.T) {
	repo := NewMockRepository()
	service, _ := newTestAttemptService(repo)

	score := 50.0
	results, err := json.Marshal([]models.QuestionResult{
		{QuestionID: 10, Correct: true},
		{QuestionID: 11, Correct: false},
	})
	assert.NoError(t, err)
	breakdown, err := json.Marshal(map[models.QuestionType]models.TypeBreakdown{
		models.QuestionMCQ: {Correct: 1, Total: 2},
	})
	assert.NoError(t, err)

	attempts := []*models.QuizAttempt{{
		ID:             5,
		QuizID:         1,
		UserID:         "student-1",
		Score:          &score,
		CorrectAnswers: 1,
		TotalQuestions: 2,
		Results:        datatypes.JSON(results),
		Breakdown:      datatypes.JSON(breakdown),
	}}

	repo.AttemptRepo.On("GetByQuizAndUser", mock.Anything, uint(1), "student-1").Return(attempts, nil)
	repo.QuizRepo.On("GetSettings", mock.Anything, uint(1)).
		Return(&models.QuizSettings{QuizID: 1}, nil)

	history, err := service.GetHistory(context.Background(), 1, "student-1")
	assert.NoError(t, err)
	assert.Len(t, history, 1)
	assert.Len(t, history[0].Questions, 2)
	assert.True(t, history[0].Questions[0].Correct)
	assert.Equal(t, models.TypeBreakdown{Correct: 1, Total: 2}, history[0].Breakdown[models.QuestionMCQ])
	// No passing score configured on the quiz.
	assert.Nil(t, history[0].Passed)
}
