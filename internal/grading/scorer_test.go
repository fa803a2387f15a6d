package grading

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Shivansh-hub495/smriti-vikalpa-shastra-sub000/internal/models"
)

func answer(questionID uint, payload string) models.SubmittedAnswer {
	return models.SubmittedAnswer{QuestionID: questionID, Answer: json.RawMessage(payload)}
}

func TestScore_EmptyQuiz(t *testing.T) {
	result := Score(nil, nil, nil)

	assert.Nil(t, result.Score)
	assert.Equal(t, 0, result.TotalQuestions)
	assert.Equal(t, 0, result.CorrectAnswers)
	assert.Empty(t, result.Questions)
	assert.Empty(t, result.Breakdown)
}

func TestScore_AllCorrect(t *testing.T) {
	questions := []models.Question{
		*mcqQuestion(t, []string{"red", "green", "blue"}, 2),
		*fillBlankQuestion(t, []string{"Paris"}, false),
		*trueFalseQuestion(t, true),
		*matchingQuestion(t,
			[]string{"dog", "cat"},
			[]string{"bark", "meow"},
			[]models.MatchPair{{Left: 0, Right: 0}, {Left: 1, Right: 1}},
		),
	}
	questions[0].ID, questions[1].ID, questions[2].ID, questions[3].ID = 1, 2, 3, 4

	answers := []models.SubmittedAnswer{
		answer(1, `{"selectedOption":2}`),
		answer(2, `{"answer":" paris "}`),
		answer(3, `{"answer":true}`),
		answer(4, `{"pairs":[{"left":0,"right":0},{"left":1,"right":1}]}`),
	}

	timeTaken := 120
	result := Score(questions, answers, &timeTaken)

	assert.NotNil(t, result.Score)
	assert.Equal(t, 100.0, *result.Score)
	assert.Equal(t, 4, result.CorrectAnswers)
	assert.Equal(t, 4, result.TotalQuestions)
	assert.Equal(t, &timeTaken, result.TimeTaken)

	assert.Len(t, result.Questions, 4)
	for i, qr := range result.Questions {
		assert.Equal(t, questions[i].ID, qr.QuestionID)
		assert.True(t, qr.Correct)
	}

	assert.Equal(t, models.TypeBreakdown{Correct: 1, Total: 1}, result.Breakdown[models.QuestionMCQ])
	assert.Equal(t, models.TypeBreakdown{Correct: 1, Total: 1}, result.Breakdown[models.QuestionFillBlank])
	assert.Equal(t, models.TypeBreakdown{Correct: 1, Total: 1}, result.Breakdown[models.QuestionTrueFalse])
	assert.Equal(t, models.TypeBreakdown{Correct: 1, Total: 1}, result.Breakdown[models.QuestionMatching])
}

func TestScore_RoundsToOneDecimal(t *testing.T) {
	questions := []models.Question{
		*mcqQuestion(t, []string{"a", "b"}, 0),
		*mcqQuestion(t, []string{"a", "b"}, 0),
		*mcqQuestion(t, []string{"a", "b"}, 0),
	}
	questions[0].ID, questions[1].ID, questions[2].ID = 1, 2, 3

	answers := []models.SubmittedAnswer{
		answer(1, `{"selectedOption":0}`),
		answer(2, `{"selectedOption":1}`),
		answer(3, `{"selectedOption":1}`),
	}

	result := Score(questions, answers, nil)

	assert.NotNil(t, result.Score)
	assert.Equal(t, 33.3, *result.Score)
	assert.Equal(t, models.TypeBreakdown{Correct: 1, Total: 3}, result.Breakdown[models.QuestionMCQ])
}

func TestScore_MissingAndUnmatchedAnswers(t *testing.T) {
	questions := []models.Question{
		*trueFalseQuestion(t, true),
		*trueFalseQuestion(t, false),
	}
	questions[0].ID, questions[1].ID = 10, 11

	// One answered question, one answer for a question not in the quiz.
	answers := []models.SubmittedAnswer{
		answer(10, `{"answer":true}`),
		answer(99, `{"answer":false}`),
	}

	result := Score(questions, answers, nil)

	assert.Equal(t, 1, result.CorrectAnswers)
	assert.Equal(t, 2, result.TotalQuestions)
	assert.Equal(t, 50.0, *result.Score)
	assert.False(t, result.Questions[1].Correct)
}

func TestScore_DuplicateAnswersLastWins(t *testing.T) {
	questions := []models.Question{*trueFalseQuestion(t, true)}
	questions[0].ID = 1

	answers := []models.SubmittedAnswer{
		answer(1, `{"answer":false}`),
		answer(1, `{"answer":true}`),
	}

	result := Score(questions, answers, nil)
	assert.Equal(t, 1, result.CorrectAnswers)
}

func TestScore_Deterministic(t *testing.T) {
	questions := []models.Question{
		*mcqQuestion(t, []string{"a", "b"}, 1),
		*fillBlankQuestion(t, []string{"x"}, false),
	}
	questions[0].ID, questions[1].ID = 1, 2

	answers := []models.SubmittedAnswer{
		answer(1, `{"selectedOption":1}`),
		answer(2, `{"answer":"y"}`),
	}

	first := Score(questions, answers, nil)
	second := Score(questions, answers, nil)
	assert.Equal(t, first, second)
}

func TestRound1(t *testing.T) {
	assert.Equal(t, 33.3, Round1(100.0/3.0))
	assert.Equal(t, 66.7, Round1(200.0/3.0))
	assert.Equal(t, 50.0, Round1(50.0))
	assert.Equal(t, 0.0, Round1(0.04))
}
