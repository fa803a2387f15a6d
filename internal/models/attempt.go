package models

import (
	"time"

	"gorm.io/datatypes"
)

// QuestionResult is the per-question judgment inside an attempt result,
// in question order.
type QuestionResult struct {
	QuestionID uint `json:"questionId"`
	Correct    bool `json:"correct"`
}

// TypeBreakdown is the correct/total subtotal for one question type
// within one attempt.
type TypeBreakdown struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// AttemptResult is the output of scoring one attempt. Score is nil when the
// quiz has no questions; it is never NaN or Inf.
type AttemptResult struct {
	Score          *float64                       `json:"score"`
	CorrectAnswers int                            `json:"correct_answers"`
	TotalQuestions int                            `json:"total_questions"`
	TimeTaken      *int                           `json:"time_taken,omitempty"` // seconds
	Questions      []QuestionResult               `json:"questions"`
	Breakdown      map[QuestionType]TypeBreakdown `json:"breakdown"`
}

// QuizAttempt is the persisted record of one completed run through a quiz.
// Created once at finalize time and immutable afterwards; retakes insert
// new rows.
type QuizAttempt struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	QuizID uint   `json:"quiz_id" gorm:"not null;index:idx_quiz_attempts_quiz_user"`
	UserID string `json:"user_id" gorm:"not null;size:64;index:idx_quiz_attempts_quiz_user"`

	Score          *float64 `json:"score"`
	CorrectAnswers int      `json:"correct_answers" gorm:"not null"`
	TotalQuestions int      `json:"total_questions" gorm:"not null"`
	TimeTaken      *int     `json:"time_taken"` // seconds

	// Snapshots, stored as JSON
	Answers   datatypes.JSON `json:"answers" gorm:"type:jsonb"`   // []SubmittedAnswer
	Results   datatypes.JSON `json:"results" gorm:"type:jsonb"`   // []QuestionResult
	Breakdown datatypes.JSON `json:"breakdown" gorm:"type:jsonb"` // map[QuestionType]TypeBreakdown

	CreatedAt time.Time `json:"created_at"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}
