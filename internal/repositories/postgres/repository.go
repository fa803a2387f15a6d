package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/Shivansh-hub495/smriti-vikalpa-shastra-sub000/internal/repositories"
)

// Repository is the gorm-backed root repository.
type Repository struct {
	db       *gorm.DB
	quiz     repositories.QuizRepository
	question repositories.QuestionRepository
	attempt  repositories.AttemptRepository
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:       db,
		quiz:     NewQuizPostgreSQL(db),
		question: NewQuestionPostgreSQL(db),
		attempt:  NewAttemptPostgreSQL(db),
	}
}

func (r *Repository) Quiz() repositories.QuizRepository {
	return r.quiz
}

func (r *Repository) Question() repositories.QuestionRepository {
	return r.question
}

func (r *Repository) Attempt() repositories.AttemptRepository {
	return r.attempt
}

// WithTransaction runs fn inside a database transaction. The repository passed
// to fn is bound to the transaction; the transaction commits when fn returns
// nil and rolls back otherwise.
func (r *Repository) WithTransaction(ctx context.Context, fn func(repo repositories.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}

func (r *Repository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (r *Repository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
