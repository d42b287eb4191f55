package response_models

type LoginResponse struct {
	Token string `json:"token"`
}

type ProfileResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	PlanID  string `json:"plan_id"`
	Credits int    `json:"credits"`
}
