package repositories

import (
	"context"
	"time"

	"github.com/Shivansh-hub495/smriti-vikalpa-shastra-sub000/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type QuizFilters struct {
	CreatedBy *string    `json:"created_by"`
	FolderID  *uint      `json:"folder_id"`
	Search    *string    `json:"search"`
	DateFrom  *time.Time `json:"date_from"`
	DateTo    *time.Time `json:"date_to"`
	Limit     int        `json:"limit"`
	Offset    int        `json:"offset"`
	SortBy    string     `json:"sort_by"`    // "created_at", "title"
	SortOrder string     `json:"sort_order"` // "asc", "desc"
}

type AttemptFilters struct {
	QuizID   *uint      `json:"quiz_id"`
	UserID   *string    `json:"user_id"`
	DateFrom *time.Time `json:"date_from"`
	DateTo   *time.Time `json:"date_to"`
	Limit    int        `json:"limit"`
	Offset   int        `json:"offset"`
}

// ===== REPOSITORY INTERFACES =====

type QuizRepository interface {
	Create(ctx context.Context, quiz *models.Quiz) error
	GetByID(ctx context.Context, id uint) (*models.Quiz, error)
	GetByIDWithQuestions(ctx context.Context, id uint) (*models.Quiz, error)
	Update(ctx context.Context, quiz *models.Quiz) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filters QuizFilters) ([]*models.Quiz, int64, error)

	GetSettings(ctx context.Context, quizID uint) (*models.QuizSettings, error)
	UpdateSettings(ctx context.Context, settings *models.QuizSettings) error
}

type QuestionRepository interface {
	Create(ctx context.Context, question *models.Question) error
	CreateBatch(ctx context.Context, questions []*models.Question) error
	GetByID(ctx context.Context, id uint) (*models.Question, error)
	// GetByQuiz returns the quiz questions ordered by their order index.
	GetByQuiz(ctx context.Context, quizID uint) ([]models.Question, error)
	Update(ctx context.Context, question *models.Question) error
	Delete(ctx context.Context, id uint) error
	CountByQuiz(ctx context.Context, quizID uint) (int64, error)
}

type AttemptRepository interface {
	Create(ctx context.Context, attempt *models.QuizAttempt) error
	GetByID(ctx context.Context, id uint) (*models.QuizAttempt, error)
	// GetByQuizAndUser returns attempts ordered most recent first.
	GetByQuizAndUser(ctx context.Context, quizID uint, userID string) ([]*models.QuizAttempt, error)
	List(ctx context.Context, filters AttemptFilters) ([]*models.QuizAttempt, int64, error)
	CountByQuizAndUser(ctx context.Context, quizID uint, userID string) (int64, error)
	Delete(ctx context.Context, id uint) error
}

// Repository is the root access point aggregating all repositories.
type Repository interface {
	Quiz() QuizRepository
	Question() QuestionRepository
	Attempt() AttemptRepository

	WithTransaction(ctx context.Context, fn func(repo Repository) error) error
	Ping(ctx context.Context) error
	Close() error
}
