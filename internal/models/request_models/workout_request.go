package request_models

type GenerateWorkoutRequest struct {
	Goal            string   `json:"goal" binding:"required"`
	Level           string   `json:"level"`
	DurationMinutes int      `json:"duration_minutes"`
	Equipment       []string `json:"equipment"`
	Focus           string   `json:"focus"`
}

type ExerciseInput struct {
	Name string `json:"name" binding:"required"`
	Sets int    `json:"sets"`
	Reps string `json:"reps"`
	Rest string `json:"rest"`
}

type SaveWorkoutRequest struct {
	Name      string          `json:"name" binding:"required"`
	Exercises []ExerciseInput `json:"exercises" binding:"required,min=1"`
	Duration  string          `json:"duration"`
	Level     string          `json:"level"`
	Category  string          `json:"category"`
}

type SimilarWorkoutsRequest struct {
	Query string `json:"query" binding:"required"`
	Limit int    `json:"limit"`
}
