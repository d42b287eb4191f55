package request_models

type GenerateDietRequest struct {
	Goal           string   `json:"goal" binding:"required"`
	DietType       string   `json:"diet_type"`
	TargetCalories int      `json:"target_calories"`
	MealsPerDay    int      `json:"meals_per_day"`
	Allergies      []string `json:"allergies"`
}

type MealInput struct {
	Name     string   `json:"name" binding:"required"`
	Time     string   `json:"time"`
	Calories int      `json:"calories"`
	Items    []string `json:"items"`
}

type SaveDietRequest struct {
	Name          string      `json:"name" binding:"required"`
	Meals         []MealInput `json:"meals" binding:"required,min=1"`
	TotalCalories int         `json:"total_calories"`
	DietType      string      `json:"diet_type"`
}
