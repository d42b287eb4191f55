package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"gorm.io/datatypes"

	"fitmind/internal/catalog"
	"fitmind/internal/models/db_models"
	"fitmind/internal/models/request_models"
	"fitmind/internal/models/response_models"
	"fitmind/internal/repositories"
	"fitmind/pkg/utils"
)

const generateMaxAttempts = 3

type WorkoutServiceInterface interface {
	// Generate charges GENERATE_WORKOUT first, then asks the model for a
	// structured plan. The charge stands even if generation ultimately fails;
	// callers see the error and the ledger keeps the spend.
	Generate(ctx context.Context, userID string, req request_models.GenerateWorkoutRequest) (*response_models.GeneratedWorkout, *SpendReceipt, error)

	// Save charges SAVE_WORKOUT and persists the workout. An embedding row is
	// written best effort for similarity search.
	Save(ctx context.Context, userID string, req request_models.SaveWorkoutRequest) (*db_models.SavedWorkout, *SpendReceipt, error)

	List(ctx context.Context, userID string) ([]db_models.SavedWorkout, error)
	FindSimilar(ctx context.Context, query string, limit int) ([]response_models.SimilarWorkout, error)
}

type WorkoutService struct {
	workoutRepo   repositories.IWorkoutRepository
	creditService CreditServiceInterface
	generator     utils.GeneratorClientInterface
}

func NewWorkoutService(
	workoutRepo repositories.IWorkoutRepository,
	creditService CreditServiceInterface,
	generator utils.GeneratorClientInterface,
) WorkoutServiceInterface {
	return &WorkoutService{
		workoutRepo:   workoutRepo,
		creditService: creditService,
		generator:     generator,
	}
}

func (w *WorkoutService) Generate(ctx context.Context, userID string, req request_models.GenerateWorkoutRequest) (*response_models.GeneratedWorkout, *SpendReceipt, error) {
	details := map[string]interface{}{
		"goal":             req.Goal,
		"level":            req.Level,
		"duration_minutes": req.DurationMinutes,
		"equipment":        req.Equipment,
		"focus":            req.Focus,
	}
	receipt, err := w.creditService.Consume(ctx, userID, catalog.ActionGenerateWorkout, details)
	if err != nil {
		return nil, nil, err
	}

	prompt := buildWorkoutPrompt(req)
	for attempt := 1; attempt <= generateMaxAttempts; attempt++ {
		raw, genErr := w.generator.GenerateJSON(ctx, prompt)
		if genErr != nil {
			log.Printf("workout generation attempt %d/%d failed: %v", attempt, generateMaxAttempts, genErr)
			if attempt == generateMaxAttempts {
				return nil, receipt, genErr
			}
			continue
		}

		var workout response_models.GeneratedWorkout
		clean := utils.CleanModelJSON(raw)
		if err := json.Unmarshal([]byte(clean), &workout); err != nil || len(workout.Exercises) == 0 {
			log.Printf("workout generation attempt %d/%d returned invalid JSON", attempt, generateMaxAttempts)
			continue
		}
		if workout.Level == "" {
			workout.Level = req.Level
		}
		return &workout, receipt, nil
	}

	return nil, receipt, fmt.Errorf("model returned invalid workout JSON after %d attempts", generateMaxAttempts)
}

func (w *WorkoutService) Save(ctx context.Context, userID string, req request_models.SaveWorkoutRequest) (*db_models.SavedWorkout, *SpendReceipt, error) {
	details := map[string]interface{}{
		"name":     req.Name,
		"category": req.Category,
		"level":    req.Level,
	}
	receipt, err := w.creditService.Consume(ctx, userID, catalog.ActionSaveWorkout, details)
	if err != nil {
		return nil, nil, err
	}

	exercises, err := json.Marshal(req.Exercises)
	if err != nil {
		return nil, receipt, err
	}

	workout := &db_models.SavedWorkout{
		UserID:    userID,
		Name:      req.Name,
		Exercises: datatypes.JSON(exercises),
		Duration:  req.Duration,
		Level:     req.Level,
		Category:  req.Category,
	}
	if err := w.workoutRepo.CreateWorkout(ctx, workout); err != nil {
		return nil, receipt, utils.ErrDatabaseError
	}

	w.embedWorkout(ctx, workout, req)

	return workout, receipt, nil
}

// embedWorkout indexes the workout for similarity search. Failures only log;
// the save already succeeded.
func (w *WorkoutService) embedWorkout(ctx context.Context, workout *db_models.SavedWorkout, req request_models.SaveWorkoutRequest) {
	names := make([]string, 0, len(req.Exercises))
	for _, e := range req.Exercises {
		names = append(names, e.Name)
	}

	text := fmt.Sprintf("%s. Category: %s. Level: %s. Exercises: %s",
		req.Name, req.Category, req.Level, strings.Join(names, ", "))

	vector, err := w.generator.GetEmbedding(ctx, text)
	if err != nil {
		log.Printf("workout embedding failed for %s: %v", workout.ID, err)
		return
	}

	embedding := &db_models.WorkoutEmbedding{
		WorkoutID: workout.ID.String(),
		UserID:    workout.UserID,
		Name:      workout.Name,
		Category:  workout.Category,
		Tags:      names,
		Embedding: vector,
	}
	if err := w.workoutRepo.CreateEmbedding(ctx, embedding); err != nil {
		log.Printf("workout embedding insert failed for %s: %v", workout.ID, err)
	}
}

func (w *WorkoutService) List(ctx context.Context, userID string) ([]db_models.SavedWorkout, error) {
	workouts, err := w.workoutRepo.ListWorkoutsByUser(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return workouts, nil
}

func (w *WorkoutService) FindSimilar(ctx context.Context, query string, limit int) ([]response_models.SimilarWorkout, error) {
	vector, err := w.generator.GetEmbedding(ctx, query)
	if err != nil {
		return nil, err
	}

	matches, err := w.workoutRepo.FindSimilarByVector(ctx, vector, limit)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.SimilarWorkout, 0, len(matches))
	for _, m := range matches {
		out = append(out, response_models.SimilarWorkout{
			WorkoutID: m.WorkoutID,
			Name:      m.Name,
			Category:  m.Category,
			Tags:      m.Tags,
		})
	}
	return out, nil
}

func buildWorkoutPrompt(req request_models.GenerateWorkoutRequest) string {
	var prompt strings.Builder

	prompt.WriteString("Create a workout plan as JSON with this exact shape:\n")
	prompt.WriteString(`{"name": "...", "exercises": [{"name": "...", "sets": 3, "reps": "10-12", "rest": "60s", "notes": "..."}], "duration": "45 min", "level": "...", "category": "..."}`)
	prompt.WriteString("\n\n")
	prompt.WriteString(fmt.Sprintf("Goal: %s\n", req.Goal))
	if req.Level != "" {
		prompt.WriteString(fmt.Sprintf("Level: %s\n", req.Level))
	}
	if req.DurationMinutes > 0 {
		prompt.WriteString(fmt.Sprintf("Target duration: %d minutes\n", req.DurationMinutes))
	}
	if len(req.Equipment) > 0 {
		prompt.WriteString(fmt.Sprintf("Available equipment: %s\n", strings.Join(req.Equipment, ", ")))
	}
	if req.Focus != "" {
		prompt.WriteString(fmt.Sprintf("Focus area: %s\n", req.Focus))
	}
	prompt.WriteString("\nReturn JSON only, at least 4 exercises.")

	return prompt.String()
}
