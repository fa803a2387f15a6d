package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType represents different types of quiz events
type EventType string

const (
	// Quiz events
	EventQuizCreated EventType = "quiz.created"
	EventQuizDeleted EventType = "quiz.deleted"

	// Attempt events
	EventAttemptSubmitted EventType = "attempt.submitted"
	EventAttemptGraded    EventType = "attempt.graded"
)

// Event is the base structure for all published events
type Event struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// Quiz event payloads

type QuizCreatedEvent struct {
	QuizID    uint   `json:"quiz_id"`
	QuizTitle string `json:"quiz_title"`
	CreatedBy string `json:"created_by"`
}

type QuizDeletedEvent struct {
	QuizID    uint   `json:"quiz_id"`
	DeletedBy string `json:"deleted_by"`
}

// Attempt event payloads

type AttemptGradedEvent struct {
	AttemptID      uint      `json:"attempt_id"`
	QuizID         uint      `json:"quiz_id"`
	QuizTitle      string    `json:"quiz_title"`
	UserID         string    `json:"user_id"`
	GradedAt       time.Time `json:"graded_at"`
	Score          *float64  `json:"score,omitempty"`
	CorrectAnswers int       `json:"correct_answers"`
	TotalQuestions int       `json:"total_questions"`
	Passed         *bool     `json:"passed,omitempty"`
}

// Event factory functions

func NewQuizCreatedEvent(quizID uint, title, createdBy string) *Event {
	return &Event{
		ID:        uuid.NewString(),
		Type:      EventQuizCreated,
		Timestamp: time.Now(),
		Source:    "quiz-service",
		Version:   "1.0",
		Data: QuizCreatedEvent{
			QuizID:    quizID,
			QuizTitle: title,
			CreatedBy: createdBy,
		},
	}
}

func NewQuizDeletedEvent(quizID uint, deletedBy string) *Event {
	return &Event{
		ID:        uuid.NewString(),
		Type:      EventQuizDeleted,
		Timestamp: time.Now(),
		Source:    "quiz-service",
		Version:   "1.0",
		Data: QuizDeletedEvent{
			QuizID:    quizID,
			DeletedBy: deletedBy,
		},
	}
}

func NewAttemptGradedEvent(attemptID, quizID uint, title, userID string, gradedAt time.Time, score *float64, correct, total int, passed *bool) *Event {
	return &Event{
		ID:        uuid.NewString(),
		Type:      EventAttemptGraded,
		Timestamp: time.Now(),
		Source:    "quiz-service",
		Version:   "1.0",
		Data: AttemptGradedEvent{
			AttemptID:      attemptID,
			QuizID:         quizID,
			QuizTitle:      title,
			UserID:         userID,
			GradedAt:       gradedAt,
			Score:          score,
			CorrectAnswers: correct,
			TotalQuestions: total,
			Passed:         passed,
		},
	}
}
