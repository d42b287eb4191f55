package repositories

import (
	"context"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"fitmind/internal/models/db_models"
)

type IWorkoutRepository interface {
	CreateWorkout(ctx context.Context, workout *db_models.SavedWorkout) error
	ListWorkoutsByUser(ctx context.Context, userID string) ([]db_models.SavedWorkout, error)
	CreateEmbedding(ctx context.Context, embedding *db_models.WorkoutEmbedding) error
	FindSimilarByVector(ctx context.Context, vector pgvector.Vector, limit int) ([]db_models.WorkoutEmbedding, error)
}

type WorkoutRepository struct {
	db *gorm.DB
}

func NewWorkoutRepository(db *gorm.DB) IWorkoutRepository {
	return &WorkoutRepository{db: db}
}

func (w *WorkoutRepository) CreateWorkout(ctx context.Context, workout *db_models.SavedWorkout) error {
	return w.db.WithContext(ctx).Create(workout).Error
}

func (w *WorkoutRepository) ListWorkoutsByUser(ctx context.Context, userID string) ([]db_models.SavedWorkout, error) {
	var workouts []db_models.SavedWorkout
	err := w.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&workouts).Error
	if err != nil {
		return nil, err
	}
	return workouts, nil
}

func (w *WorkoutRepository) CreateEmbedding(ctx context.Context, embedding *db_models.WorkoutEmbedding) error {
	return w.db.WithContext(ctx).Create(embedding).Error
}

func (w *WorkoutRepository) FindSimilarByVector(ctx context.Context, vector pgvector.Vector, limit int) ([]db_models.WorkoutEmbedding, error) {
	if limit <= 0 {
		limit = 10
	}

	var results []db_models.WorkoutEmbedding
	query := `
        SELECT * FROM workout_embeddings
        WHERE (1 - (embedding <=> $1)) > 0.7
        ORDER BY embedding <=> $1
        LIMIT $2
    `
	err := w.db.WithContext(ctx).Raw(query, vector.String(), limit).Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
