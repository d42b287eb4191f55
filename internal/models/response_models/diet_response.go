package response_models

import (
	"encoding/json"

	"fitmind/internal/models/db_models"
)

type GeneratedMeal struct {
	Name     string   `json:"name"`
	Time     string   `json:"time,omitempty"`
	Calories int      `json:"calories"`
	Items    []string `json:"items"`
}

// GeneratedDiet is the parsed model output for a diet generation.
type GeneratedDiet struct {
	Name          string          `json:"name"`
	Meals         []GeneratedMeal `json:"meals"`
	TotalCalories int             `json:"total_calories"`
	DietType      string          `json:"diet_type"`
}

type SavedDietResponse struct {
	ID            string          `json:"id"`
	UserID        string          `json:"userId"`
	Name          string          `json:"name"`
	Meals         json.RawMessage `json:"meals"`
	TotalCalories int             `json:"totalCalories"`
	DietType      string          `json:"dietType"`
	CreatedAt     int64           `json:"createdAt"`
}

func ToSavedDietResponses(diets []db_models.SavedDiet) []SavedDietResponse {
	out := make([]SavedDietResponse, 0, len(diets))
	for _, d := range diets {
		out = append(out, SavedDietResponse{
			ID:            d.ID.String(),
			UserID:        d.UserID,
			Name:          d.Name,
			Meals:         json.RawMessage(d.Meals),
			TotalCalories: d.TotalCalories,
			DietType:      d.DietType,
			CreatedAt:     d.CreatedAt,
		})
	}
	return out
}
