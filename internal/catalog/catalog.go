// Package catalog holds the static product configuration: the action cost
// table the gate charges against, the subscription plans, and the one-time
// credit packages. All of it is immutable at runtime.
package catalog

type ActionKind string

const (
	ActionCreateWorkout   ActionKind = "CREATE_WORKOUT"
	ActionEditWorkout     ActionKind = "EDIT_WORKOUT"
	ActionCreateDiet      ActionKind = "CREATE_DIET"
	ActionEditDiet        ActionKind = "EDIT_DIET"
	ActionGenerateWorkout ActionKind = "GENERATE_WORKOUT"
	ActionGenerateDiet    ActionKind = "GENERATE_DIET"
	ActionSaveWorkout     ActionKind = "SAVE_WORKOUT"
	ActionSaveDiet        ActionKind = "SAVE_DIET"
)

// ActionCosts maps each gated action to its credit price.
var ActionCosts = map[ActionKind]int{
	ActionCreateWorkout:   1,
	ActionEditWorkout:     1,
	ActionCreateDiet:      2,
	ActionEditDiet:        1,
	ActionGenerateWorkout: 1,
	ActionGenerateDiet:    2,
	ActionSaveWorkout:     1,
	ActionSaveDiet:        1,
}

var actionDescriptions = map[ActionKind]string{
	ActionCreateWorkout:   "Created a workout",
	ActionEditWorkout:     "Edited a workout",
	ActionCreateDiet:      "Created a diet plan",
	ActionEditDiet:        "Edited a diet plan",
	ActionGenerateWorkout: "Generated a workout",
	ActionGenerateDiet:    "Generated a diet plan",
	ActionSaveWorkout:     "Saved a workout",
	ActionSaveDiet:        "Saved a diet plan",
}

// CostOf returns the credit price for an action, or ok=false for actions not
// in the catalog.
func CostOf(action ActionKind) (int, bool) {
	cost, ok := ActionCosts[action]
	return cost, ok
}

// DescriptionOf returns the human-readable ledger description for an action.
func DescriptionOf(action ActionKind) string {
	if d, ok := actionDescriptions[action]; ok {
		return d
	}
	return string(action)
}

type Plan struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	PriceMinor     int64    `json:"price"`
	Currency       string   `json:"currency"`
	MonthlyCredits int      `json:"monthly_credits"`
	Features       []string `json:"features"`
}

type CreditPackage struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Credits    int    `json:"credits"`
	PriceMinor int64  `json:"price"`
	Currency   string `json:"currency"`
}

var Plans = []Plan{
	{
		ID:             "starter",
		Name:           "Starter",
		PriceMinor:     0,
		Currency:       "USD",
		MonthlyCredits: 15,
		Features: []string{
			"15 credits per month",
			"Workout generator",
			"Diet generator",
		},
	},
	{
		ID:             "pro",
		Name:           "Pro",
		PriceMinor:     999,
		Currency:       "USD",
		MonthlyCredits: 60,
		Features: []string{
			"60 credits per month",
			"Workout generator",
			"Diet generator",
			"Saved plan history",
		},
	},
	{
		ID:             "elite",
		Name:           "Elite",
		PriceMinor:     1999,
		Currency:       "USD",
		MonthlyCredits: 150,
		Features: []string{
			"150 credits per month",
			"Everything in Pro",
			"Similar workout search",
			"Priority generation",
		},
	},
}

var CreditPackages = []CreditPackage{
	{ID: "pack_10", Name: "Small top-up", Credits: 10, PriceMinor: 299, Currency: "USD"},
	{ID: "pack_25", Name: "Medium top-up", Credits: 25, PriceMinor: 599, Currency: "USD"},
	{ID: "pack_60", Name: "Large top-up", Credits: 60, PriceMinor: 1199, Currency: "USD"},
}

func PlanByID(id string) (Plan, bool) {
	for _, p := range Plans {
		if p.ID == id {
			return p, true
		}
	}
	return Plan{}, false
}

func PackageByID(id string) (CreditPackage, bool) {
	for _, p := range CreditPackages {
		if p.ID == id {
			return p, true
		}
	}
	return CreditPackage{}, false
}
