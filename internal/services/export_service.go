package services

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/Shivansh-hub495/smriti-vikalpa-shastra-sub000/internal/models"
	"github.com/Shivansh-hub495/smriti-vikalpa-shastra-sub000/internal/repositories"
	"github.com/Shivansh-hub495/smriti-vikalpa-shastra-sub000/internal/utils"
)

type ExportService interface {
	ExportQuizResults(ctx context.Context, quizID uint, userID string) ([]byte, error)
}

type exportService struct {
	repo   repositories.Repository
	logger utils.Logger
}

func NewExportService(repo repositories.Repository, logger utils.Logger) ExportService {
	return &exportService{
		repo:   repo,
		logger: logger,
	}
}

// ExportQuizResults produces an Excel sheet with every attempt at a quiz.
// Restricted to the quiz owner.
func (s *exportService) ExportQuizResults(ctx context.Context, quizID uint, userID string) ([]byte, error) {
	quiz, err := s.repo.Quiz().GetByID(ctx, quizID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}
	if quiz.CreatedBy != userID {
		return nil, NewPermissionError(userID, quizID, "quiz", "export_results", "not the quiz owner")
	}

	attempts, _, err := s.repo.Attempt().List(ctx, repositories.AttemptFilters{QuizID: &quizID})
	if err != nil {
		return nil, fmt.Errorf("failed to get quiz attempts: %w", err)
	}

	f := excelize.NewFile()
	sheetName := "Results"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headers := []string{
		"User ID", "Submitted At", "Score", "Correct Answers", "Total Questions",
		"Passed", "Time Taken (seconds)",
	}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for rowIndex, attempt := range attempts {
		row := s.attemptToRow(attempt, quiz.Settings.PassingScore)
		for colIndex, value := range row {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, rowIndex+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}

	s.logger.InfoContext(ctx, "Exported quiz results",
		"quiz_id", quizID,
		"attempt_count", len(attempts))

	return buf.Bytes(), nil
}

func (s *exportService) attemptToRow(attempt *models.QuizAttempt, passingScore *float64) []interface{} {
	row := []interface{}{
		attempt.UserID,
		attempt.CreatedAt.Format("2006-01-02 15:04:05"),
	}

	if attempt.Score != nil {
		row = append(row, *attempt.Score)
	} else {
		row = append(row, "")
	}

	row = append(row, attempt.CorrectAnswers, attempt.TotalQuestions)

	switch passed := passedPointer(attempt.Score, passingScore); {
	case passed == nil:
		row = append(row, "")
	case *passed:
		row = append(row, "Pass")
	default:
		row = append(row, "Fail")
	}

	if attempt.TimeTaken != nil {
		row = append(row, *attempt.TimeTaken)
	} else {
		row = append(row, "")
	}

	return row
}
