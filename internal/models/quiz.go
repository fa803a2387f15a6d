package models

import (
	"time"

	"gorm.io/gorm"
)

type Quiz struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Title       string  `json:"title" gorm:"not null;size:200;index" validate:"required,min=1,max=200"`
	Description *string `json:"description" gorm:"type:text" validate:"omitempty,max=1000"`
	FolderID    *uint   `json:"folder_id" gorm:"index"`

	// Metadata
	CreatedBy string         `json:"created_by" gorm:"not null;size:64;index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Settings  QuizSettings `json:"settings" gorm:"foreignKey:QuizID"`
	Questions []Question   `json:"questions" gorm:"foreignKey:QuizID"`

	// Computed fields (not stored)
	QuestionCount int `json:"question_count" gorm:"-"`
	AttemptCount  int `json:"attempt_count" gorm:"-"`
}

// QuizSettings is defined before any attempt starts and read-only to the
// grading core. Only PassingScore is consumed by scoring; the display flags
// are read by the presentation layer.
type QuizSettings struct {
	QuizID uint `json:"quiz_id" gorm:"primaryKey"`

	// Grading settings
	PassingScore *float64 `json:"passing_score" validate:"omitempty,min=0,max=100"`
	MaxAttempts  int      `json:"max_attempts" gorm:"default:0" validate:"min=0,max=100"` // 0 = unlimited
	TimeLimit    *int     `json:"time_limit" validate:"omitempty,min=30"`                 // seconds

	// Result display settings
	ShowCorrectAnswers bool `json:"show_correct_answers" gorm:"default:true"`
	ShowExplanations   bool `json:"show_explanations" gorm:"default:true"`
	ShowScoreBreakdown bool `json:"show_score_breakdown" gorm:"default:true"`

	// Question display settings
	ShuffleQuestions bool `json:"shuffle_questions" gorm:"default:false"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

func (QuizSettings) TableName() string {
	return "quiz_settings"
}
