package request_models

// AddCreditsRequest is the legacy POST /api/credits body.
type AddCreditsRequest struct {
	UserID        string `json:"userId"`
	Amount        int    `json:"amount"`
	Reason        string `json:"reason"`
	TransactionID string `json:"transactionId"`
}

// DebitCreditsRequest is the legacy PUT /api/credits body.
type DebitCreditsRequest struct {
	UserID      string `json:"userId"`
	Amount      int    `json:"amount"`
	Action      string `json:"action"`
	Description string `json:"description"`
}
