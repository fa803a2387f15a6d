package grading

import (
	"encoding/json"
	"math"

	"github.com/Shivansh-hub495/smriti-vikalpa-shastra-sub000/internal/models"
)

// Score grades a full attempt: every question is matched to its submitted
// answer by question ID and graded, correct/total counts and the per-type
// breakdown accumulate as questions are processed in the given order.
//
// Score is nil when the quiz has no questions; callers must not assume a
// numeric score. Questions are processed in the order given and never
// deduplicated — duplicate question IDs are a caller contract violation.
// timeTaken is attached as-is; no time value is invented when absent.
func Score(questions []models.Question, answers []models.SubmittedAnswer, timeTaken *int) models.AttemptResult {
	byQuestion := make(map[uint]json.RawMessage, len(answers))
	for _, a := range answers {
		byQuestion[a.QuestionID] = a.Answer
	}

	result := models.AttemptResult{
		TotalQuestions: len(questions),
		TimeTaken:      timeTaken,
		Questions:      make([]models.QuestionResult, 0, len(questions)),
		Breakdown:      make(map[models.QuestionType]models.TypeBreakdown),
	}

	for i := range questions {
		q := &questions[i]
		correct := Grade(q, byQuestion[q.ID])
		if correct {
			result.CorrectAnswers++
		}
		result.Questions = append(result.Questions, models.QuestionResult{
			QuestionID: q.ID,
			Correct:    correct,
		})

		b := result.Breakdown[q.Type]
		b.Total++
		if correct {
			b.Correct++
		}
		result.Breakdown[q.Type] = b
	}

	if result.TotalQuestions > 0 {
		score := Round1(100 * float64(result.CorrectAnswers) / float64(result.TotalQuestions))
		result.Score = &score
	}

	return result
}

// Round1 rounds to one decimal place, the precision scores are stored with.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
