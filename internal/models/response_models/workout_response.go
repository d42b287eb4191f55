package response_models

import (
	"encoding/json"

	"fitmind/internal/models/db_models"
)

type GeneratedExercise struct {
	Name  string `json:"name"`
	Sets  int    `json:"sets"`
	Reps  string `json:"reps"`
	Rest  string `json:"rest,omitempty"`
	Notes string `json:"notes,omitempty"`
}

// GeneratedWorkout is the parsed model output for a workout generation.
type GeneratedWorkout struct {
	Name      string              `json:"name"`
	Exercises []GeneratedExercise `json:"exercises"`
	Duration  string              `json:"duration"`
	Level     string              `json:"level"`
	Category  string              `json:"category"`
}

type SavedWorkoutResponse struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId"`
	Name      string          `json:"name"`
	Exercises json.RawMessage `json:"exercises"`
	Duration  string          `json:"duration"`
	Level     string          `json:"level"`
	Category  string          `json:"category"`
	CreatedAt int64           `json:"createdAt"`
}

type SimilarWorkout struct {
	WorkoutID string   `json:"workoutId"`
	Name      string   `json:"name"`
	Category  string   `json:"category"`
	Tags      []string `json:"tags,omitempty"`
}

func ToSavedWorkoutResponses(workouts []db_models.SavedWorkout) []SavedWorkoutResponse {
	out := make([]SavedWorkoutResponse, 0, len(workouts))
	for _, w := range workouts {
		out = append(out, SavedWorkoutResponse{
			ID:        w.ID.String(),
			UserID:    w.UserID,
			Name:      w.Name,
			Exercises: json.RawMessage(w.Exercises),
			Duration:  w.Duration,
			Level:     w.Level,
			Category:  w.Category,
			CreatedAt: w.CreatedAt,
		})
	}
	return out
}
