package response_models

import (
	"encoding/json"

	"fitmind/internal/models/db_models"
)

// TransactionResponse is the wire shape of one ledger entry, newest first in
// lists. Timestamp is unix seconds.
type TransactionResponse struct {
	ID          string `json:"id"`
	UserID      string `json:"userId"`
	Type        string `json:"type"`
	Amount      int    `json:"amount"`
	Description string `json:"description"`
	ActionType  string `json:"actionType,omitempty"`
	Timestamp   int64  `json:"timestamp"`
}

type ActionLogResponse struct {
	ID          string          `json:"id"`
	UserID      string          `json:"userId"`
	Action      string          `json:"action"`
	CreditsUsed int             `json:"creditsUsed"`
	Details     json.RawMessage `json:"details"`
	Timestamp   int64           `json:"timestamp"`
}

func ToTransactionResponses(txns []db_models.CreditTransaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txns))
	for _, t := range txns {
		out = append(out, TransactionResponse{
			ID:          t.ID.String(),
			UserID:      t.UserID,
			Type:        string(t.Type),
			Amount:      t.Amount,
			Description: t.Description,
			ActionType:  t.ActionType,
			Timestamp:   t.CreatedAt.Unix(),
		})
	}
	return out
}

func ToActionLogResponses(logs []db_models.ActionLog) []ActionLogResponse {
	out := make([]ActionLogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, ActionLogResponse{
			ID:          l.ID.String(),
			UserID:      l.UserID,
			Action:      l.Action,
			CreditsUsed: l.CreditsUsed,
			Details:     json.RawMessage(l.Details),
			Timestamp:   l.CreatedAt.Unix(),
		})
	}
	return out
}
