package models

import (
	"time"

	"gorm.io/datatypes"
)

type QuestionType string

const (
	QuestionMCQ       QuestionType = "mcq"
	QuestionFillBlank QuestionType = "fill_blank"
	QuestionTrueFalse QuestionType = "true_false"
	QuestionMatching  QuestionType = "match_following"
)

// QuestionTypes lists every type with a registered grading rule, in display order.
var QuestionTypes = []QuestionType{
	QuestionMCQ,
	QuestionFillBlank,
	QuestionTrueFalse,
	QuestionMatching,
}

type Question struct {
	ID     uint `json:"id" gorm:"primaryKey"`
	QuizID uint `json:"quiz_id" gorm:"not null;index"`

	Text        string         `json:"question_text" gorm:"type:text;not null" validate:"required,min=1"`
	Type        QuestionType   `json:"question_type" gorm:"not null;size:32;index" validate:"required,question_type"`
	Data        datatypes.JSON `json:"question_data" gorm:"type:jsonb;not null" validate:"required"`
	Explanation *string        `json:"explanation" gorm:"type:text" validate:"omitempty,max=2000"`
	OrderIndex  int            `json:"order_index" gorm:"not null;default:0" validate:"min=0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Question) TableName() string {
	return "quiz_questions"
}

// ===== TYPE-SPECIFIC QUESTION PAYLOADS =====
//
// Question.Data holds one of the structs below, discriminated by Question.Type.
// Payload field names follow the stored JSON shape (camelCase).

type MCQData struct {
	Options        []string `json:"options" validate:"required,min=2,max=6,dive,required"`
	CorrectAnswer  int      `json:"correctAnswer" validate:"min=0"`
	ShuffleOptions bool     `json:"shuffleOptions,omitempty"` // presentation only, never affects grading
}

type FillBlankData struct {
	CorrectAnswers []string `json:"correctAnswers" validate:"required,min=1,dive,required"`
	CaseSensitive  bool     `json:"caseSensitive"`
}

type TrueFalseData struct {
	CorrectAnswer bool `json:"correctAnswer"`
}

// MatchPair references positions in MatchingData.LeftItems / RightItems.
type MatchPair struct {
	Left  int `json:"left" validate:"min=0"`
	Right int `json:"right" validate:"min=0"`
}

type MatchingData struct {
	LeftItems    []string    `json:"leftItems" validate:"required,min=2,dive,required"`
	RightItems   []string    `json:"rightItems" validate:"required,min=2,dive,required"`
	CorrectPairs []MatchPair `json:"correctPairs" validate:"required,min=1,dive"`
}
