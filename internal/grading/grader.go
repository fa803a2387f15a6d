// Package grading implements per-question answer grading and whole-attempt
// scoring. Everything in this package is a pure function over in-memory data:
// no I/O, no shared state, deterministic for identical inputs.
package grading

import (
	"encoding/json"
	"strings"

	"github.com/Shivansh-hub495/smriti-vikalpa-shastra-sub000/internal/models"
)

// gradeFunc grades one submitted answer payload against one question.
// Implementations must not panic; malformed input grades as incorrect.
type gradeFunc func(q *models.Question, answer json.RawMessage) bool

// graders maps each question type to its grading rule. Adding a question
// type is a single registration here plus its payload structs in models.
var graders = map[models.QuestionType]gradeFunc{
	models.QuestionMCQ:       gradeMCQ,
	models.QuestionFillBlank: gradeFillBlank,
	models.QuestionTrueFalse: gradeTrueFalse,
	models.QuestionMatching:  gradeMatching,
}

// Supported reports whether a grading rule is registered for the given type.
// Grade already treats unsupported types as incorrect; callers use Supported
// to surface the unknown type as an error instead of a silent fail.
func Supported(t models.QuestionType) bool {
	_, ok := graders[t]
	return ok
}

// Grade returns whether the submitted answer is correct for the question.
// It never panics: a nil question, missing answer, malformed payload or
// unknown question type all grade as incorrect.
func Grade(q *models.Question, answer json.RawMessage) bool {
	if q == nil {
		return false
	}
	fn, ok := graders[q.Type]
	if !ok {
		return false
	}
	if len(answer) == 0 {
		return false
	}
	return fn(q, answer)
}

// gradeMCQ: correct iff the selected index equals the configured index.
// No partial credit; an out-of-range correctAnswer means the question
// payload is malformed and nothing can grade correct against it.
func gradeMCQ(q *models.Question, answer json.RawMessage) bool {
	var data models.MCQData
	if err := json.Unmarshal(q.Data, &data); err != nil {
		return false
	}
	if data.CorrectAnswer < 0 || data.CorrectAnswer >= len(data.Options) {
		return false
	}

	var ans models.MCQAnswer
	if err := json.Unmarshal(answer, &ans); err != nil || ans.SelectedOption == nil {
		return false
	}
	return *ans.SelectedOption == data.CorrectAnswer
}

// gradeFillBlank: correct iff the trimmed submission equals any accepted
// answer after the same trim, case-insensitively unless caseSensitive is
// set. Internal whitespace is not normalized. Empty submissions are never
// correct.
func gradeFillBlank(q *models.Question, answer json.RawMessage) bool {
	var data models.FillBlankData
	if err := json.Unmarshal(q.Data, &data); err != nil || len(data.CorrectAnswers) == 0 {
		return false
	}

	var ans models.FillBlankAnswer
	if err := json.Unmarshal(answer, &ans); err != nil {
		return false
	}

	got := strings.TrimSpace(ans.Answer)
	if got == "" {
		return false
	}

	for _, accepted := range data.CorrectAnswers {
		accepted = strings.TrimSpace(accepted)
		if data.CaseSensitive {
			if got == accepted {
				return true
			}
		} else if strings.EqualFold(got, accepted) {
			return true
		}
	}
	return false
}

// gradeTrueFalse: strict boolean equality. A missing or non-boolean answer
// payload is incorrect; there is no truthy coercion.
func gradeTrueFalse(q *models.Question, answer json.RawMessage) bool {
	var data models.TrueFalseData
	if err := json.Unmarshal(q.Data, &data); err != nil {
		return false
	}

	var ans models.TrueFalseAnswer
	if err := json.Unmarshal(answer, &ans); err != nil || ans.Answer == nil {
		return false
	}
	return *ans.Answer == data.CorrectAnswer
}

// gradeMatching: all-or-nothing set equality between the submitted pairs and
// the configured pairs. Every left index must appear exactly once, mapped to
// the configured right index; a missing pair, duplicate left index, or any
// single mismatch fails the whole question.
func gradeMatching(q *models.Question, answer json.RawMessage) bool {
	var data models.MatchingData
	if err := json.Unmarshal(q.Data, &data); err != nil || len(data.CorrectPairs) == 0 {
		return false
	}

	var ans models.MatchingAnswer
	if err := json.Unmarshal(answer, &ans); err != nil {
		return false
	}
	if len(ans.Pairs) != len(data.CorrectPairs) {
		return false
	}

	expected := make(map[int]int, len(data.CorrectPairs))
	for _, p := range data.CorrectPairs {
		expected[p.Left] = p.Right
	}

	seen := make(map[int]bool, len(ans.Pairs))
	for _, p := range ans.Pairs {
		if seen[p.Left] {
			return false
		}
		seen[p.Left] = true

		right, ok := expected[p.Left]
		if !ok || right != p.Right {
			return false
		}
	}
	return true
}
