package models

import "encoding/json"

// SubmittedAnswer is one student answer for one question, built incrementally
// while the quiz is taken and immutable once the attempt is finalized.
// Answer carries a type-tagged payload mirroring the question type.
type SubmittedAnswer struct {
	QuestionID uint            `json:"questionId" validate:"required"`
	Answer     json.RawMessage `json:"answer"`
	TimeSpent  *int            `json:"timeSpent,omitempty" validate:"omitempty,min=0"` // seconds
}

// ===== TYPE-SPECIFIC ANSWER PAYLOADS =====
//
// Pointer fields distinguish an absent field from a zero value; an absent
// field is never graded correct.

type MCQAnswer struct {
	SelectedOption *int `json:"selectedOption"`
}

type FillBlankAnswer struct {
	Answer string `json:"answer"`
}

type TrueFalseAnswer struct {
	Answer *bool `json:"answer"`
}

type MatchingAnswer struct {
	Pairs []MatchPair `json:"pairs"`
}
