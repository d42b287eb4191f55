package db_models

import (
	"time"

	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

// WorkoutEmbedding holds a vector representation of a saved workout for
// similarity search. Written best effort alongside SavedWorkout; rows are
// keyed by the workout id.
type WorkoutEmbedding struct {
	WorkoutID string `gorm:"primaryKey;column:workout_id"`
	UserID    string `gorm:"index"`
	Name      string
	Category  string
	Tags      pq.StringArray  `gorm:"type:text[]"`
	Embedding pgvector.Vector `gorm:"type:vector(1536)"`
	CreatedAt time.Time       `gorm:"autoCreateTime"`
}
