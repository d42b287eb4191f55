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

type DietServiceInterface interface {
	Generate(ctx context.Context, userID string, req request_models.GenerateDietRequest) (*response_models.GeneratedDiet, *SpendReceipt, error)
	Save(ctx context.Context, userID string, req request_models.SaveDietRequest) (*db_models.SavedDiet, *SpendReceipt, error)
	List(ctx context.Context, userID string) ([]db_models.SavedDiet, error)
}

type DietService struct {
	dietRepo      repositories.IDietRepository
	creditService CreditServiceInterface
	generator     utils.GeneratorClientInterface
}

func NewDietService(
	dietRepo repositories.IDietRepository,
	creditService CreditServiceInterface,
	generator utils.GeneratorClientInterface,
) DietServiceInterface {
	return &DietService{
		dietRepo:      dietRepo,
		creditService: creditService,
		generator:     generator,
	}
}

func (d *DietService) Generate(ctx context.Context, userID string, req request_models.GenerateDietRequest) (*response_models.GeneratedDiet, *SpendReceipt, error) {
	details := map[string]interface{}{
		"goal":            req.Goal,
		"diet_type":       req.DietType,
		"target_calories": req.TargetCalories,
		"meals_per_day":   req.MealsPerDay,
		"allergies":       req.Allergies,
	}
	receipt, err := d.creditService.Consume(ctx, userID, catalog.ActionGenerateDiet, details)
	if err != nil {
		return nil, nil, err
	}

	prompt := buildDietPrompt(req)
	for attempt := 1; attempt <= generateMaxAttempts; attempt++ {
		raw, genErr := d.generator.GenerateJSON(ctx, prompt)
		if genErr != nil {
			log.Printf("diet generation attempt %d/%d failed: %v", attempt, generateMaxAttempts, genErr)
			if attempt == generateMaxAttempts {
				return nil, receipt, genErr
			}
			continue
		}

		var diet response_models.GeneratedDiet
		clean := utils.CleanModelJSON(raw)
		if err := json.Unmarshal([]byte(clean), &diet); err != nil || len(diet.Meals) == 0 {
			log.Printf("diet generation attempt %d/%d returned invalid JSON", attempt, generateMaxAttempts)
			continue
		}
		if diet.DietType == "" {
			diet.DietType = req.DietType
		}
		return &diet, receipt, nil
	}

	return nil, receipt, fmt.Errorf("model returned invalid diet JSON after %d attempts", generateMaxAttempts)
}

func (d *DietService) Save(ctx context.Context, userID string, req request_models.SaveDietRequest) (*db_models.SavedDiet, *SpendReceipt, error) {
	details := map[string]interface{}{
		"name":      req.Name,
		"diet_type": req.DietType,
		"calories":  req.TotalCalories,
	}
	receipt, err := d.creditService.Consume(ctx, userID, catalog.ActionSaveDiet, details)
	if err != nil {
		return nil, nil, err
	}

	meals, err := json.Marshal(req.Meals)
	if err != nil {
		return nil, receipt, err
	}

	diet := &db_models.SavedDiet{
		UserID:        userID,
		Name:          req.Name,
		Meals:         datatypes.JSON(meals),
		TotalCalories: req.TotalCalories,
		DietType:      req.DietType,
	}
	if err := d.dietRepo.CreateDiet(ctx, diet); err != nil {
		return nil, receipt, utils.ErrDatabaseError
	}

	return diet, receipt, nil
}

func (d *DietService) List(ctx context.Context, userID string) ([]db_models.SavedDiet, error) {
	diets, err := d.dietRepo.ListDietsByUser(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return diets, nil
}

func buildDietPrompt(req request_models.GenerateDietRequest) string {
	var prompt strings.Builder

	prompt.WriteString("Create a one-day meal plan as JSON with this exact shape:\n")
	prompt.WriteString(`{"name": "...", "meals": [{"name": "Breakfast", "time": "08:00", "calories": 450, "items": ["..."]}], "total_calories": 2000, "diet_type": "..."}`)
	prompt.WriteString("\n\n")
	prompt.WriteString(fmt.Sprintf("Goal: %s\n", req.Goal))
	if req.DietType != "" {
		prompt.WriteString(fmt.Sprintf("Diet type: %s\n", req.DietType))
	}
	if req.TargetCalories > 0 {
		prompt.WriteString(fmt.Sprintf("Target calories: %d\n", req.TargetCalories))
	}
	if req.MealsPerDay > 0 {
		prompt.WriteString(fmt.Sprintf("Meals per day: %d\n", req.MealsPerDay))
	}
	if len(req.Allergies) > 0 {
		prompt.WriteString(fmt.Sprintf("Avoid (allergies): %s\n", strings.Join(req.Allergies, ", ")))
	}
	prompt.WriteString("\nReturn JSON only. total_calories must equal the sum of meal calories.")

	return prompt.String()
}
