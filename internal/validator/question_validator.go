package validator

import (
	"encoding/json"
	"fmt"

	"github.com/Shivansh-hub495/smriti-vikalpa-shastra-sub000/internal/models"
)

// QuestionValidator handles question-specific validation
type QuestionValidator struct{}

// NewQuestionValidator creates a new question validator
func NewQuestionValidator() *QuestionValidator {
	return &QuestionValidator{}
}

// ValidateData validates a question payload based on question type
func (v *QuestionValidator) ValidateData(questionType models.QuestionType, data json.RawMessage) error {
	if len(data) == 0 {
		return fmt.Errorf("question data cannot be empty")
	}

	switch questionType {
	case models.QuestionMCQ:
		return v.validateMCQData(data)
	case models.QuestionTrueFalse:
		return v.validateTrueFalseData(data)
	case models.QuestionFillBlank:
		return v.validateFillBlankData(data)
	case models.QuestionMatching:
		return v.validateMatchingData(data)
	default:
		return fmt.Errorf("unsupported question type: %s", questionType)
	}
}

// ValidateQuestion validates a complete question object
func (v *QuestionValidator) ValidateQuestion(question *models.Question) error {
	if question.Text == "" {
		return fmt.Errorf("question text is required")
	}
	return v.ValidateData(question.Type, json.RawMessage(question.Data))
}

// ValidateBatch validates multiple questions
func (v *QuestionValidator) ValidateBatch(questions []*models.Question) error {
	if len(questions) == 0 {
		return fmt.Errorf("question batch cannot be empty")
	}

	for i, question := range questions {
		if err := v.ValidateQuestion(question); err != nil {
			return fmt.Errorf("validation failed for question %d: %w", i+1, err)
		}
	}

	return nil
}

// Private validation methods for each question type

func (v *QuestionValidator) validateMCQData(data json.RawMessage) error {
	var payload models.MCQData
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("invalid mcq data: %w", err)
	}

	if len(payload.Options) < 2 {
		return fmt.Errorf("must have at least 2 options")
	}
	if len(payload.Options) > 6 {
		return fmt.Errorf("cannot have more than 6 options")
	}
	for i, option := range payload.Options {
		if option == "" {
			return fmt.Errorf("option %d text cannot be empty", i+1)
		}
	}

	if payload.CorrectAnswer < 0 || payload.CorrectAnswer >= len(payload.Options) {
		return fmt.Errorf("correctAnswer index %d is out of range", payload.CorrectAnswer)
	}

	return nil
}

func (v *QuestionValidator) validateTrueFalseData(data json.RawMessage) error {
	var payload models.TrueFalseData
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("invalid true/false data: %w", err)
	}
	return nil
}

func (v *QuestionValidator) validateFillBlankData(data json.RawMessage) error {
	var payload models.FillBlankData
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("invalid fill-blank data: %w", err)
	}

	if len(payload.CorrectAnswers) == 0 {
		return fmt.Errorf("must have at least 1 accepted answer")
	}
	for i, accepted := range payload.CorrectAnswers {
		if accepted == "" {
			return fmt.Errorf("accepted answer %d cannot be empty", i+1)
		}
	}

	return nil
}

func (v *QuestionValidator) validateMatchingData(data json.RawMessage) error {
	var payload models.MatchingData
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("invalid matching data: %w", err)
	}

	if len(payload.LeftItems) < 2 || len(payload.RightItems) < 2 {
		return fmt.Errorf("must have at least 2 items on each side")
	}
	if len(payload.CorrectPairs) == 0 {
		return fmt.Errorf("must have at least 1 correct pair")
	}

	seenLeft := make(map[int]bool, len(payload.CorrectPairs))
	for _, pair := range payload.CorrectPairs {
		if pair.Left < 0 || pair.Left >= len(payload.LeftItems) {
			return fmt.Errorf("pair left index %d is out of range", pair.Left)
		}
		if pair.Right < 0 || pair.Right >= len(payload.RightItems) {
			return fmt.Errorf("pair right index %d is out of range", pair.Right)
		}
		if seenLeft[pair.Left] {
			return fmt.Errorf("left index %d is paired more than once", pair.Left)
		}
		seenLeft[pair.Left] = true
	}

	return nil
}
