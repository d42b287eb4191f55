package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"fitmind/internal/models/db_models"
	"fitmind/internal/models/request_models"
	"fitmind/internal/models/response_models"
	"fitmind/internal/services"
	"fitmind/pkg/utils"
)

// CreditsController serves the legacy /api/credits contract. Responses are
// flat JSON bodies (no APIResponse envelope) because the existing frontend
// parses these shapes directly.
type CreditsController struct {
	creditService services.CreditServiceInterface
}

func NewCreditsController(creditService services.CreditServiceInterface) *CreditsController {
	return &CreditsController{
		creditService: creditService,
	}
}

// GetCredits godoc
// @Summary Fetch a user's balance and transaction history
// @Tags Credits
// @Produce json
// @Param userId query string true "User ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/credits [get]
func (cc *CreditsController) GetCredits(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}

	user, err := cc.creditService.Balance(c.Request.Context(), userID)
	if err != nil {
		log.Printf("credits lookup failed for %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	txns, err := cc.creditService.History(c.Request.Context(), userID)
	if err != nil {
		log.Printf("transaction history failed for %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"userId":       user.ID,
		"credits":      user.Credits,
		"transactions": response_models.ToTransactionResponses(txns),
	})
}

// AddCredits godoc
// @Summary Add credits to a user's balance
// @Tags Credits
// @Accept json
// @Produce json
// @Param request body request_models.AddCreditsRequest true "Add Credits Request"
// @Success 200 {object} map[string]interface{}
// @Router /api/credits [post]
func (cc *CreditsController) AddCredits(c *gin.Context) {
	var req request_models.AddCreditsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}
	if req.UserID == "" || req.Amount == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId and amount are required"})
		return
	}

	reason := req.Reason
	if reason == "" {
		reason = "Credits added"
	}
	// A provider transaction id means this grant came from a purchase flow.
	txType := db_models.TxnTypeEarned
	if req.TransactionID != "" {
		txType = db_models.TxnTypePurchased
	}

	receipt, err := cc.creditService.Add(c.Request.Context(), req.UserID, req.Amount, txType, reason)
	if err != nil {
		if errors.Is(err, utils.ErrInvalidAmount) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be a positive integer"})
			return
		}
		log.Printf("add credits failed for %s: %v", req.UserID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"userId":          receipt.UserID,
		"previousCredits": receipt.PreviousCredits,
		"newCredits":      receipt.NewCredits,
		"amountAdded":     receipt.AmountAdded,
		"reason":          reason,
	})
}

// DebitCredits godoc
// @Summary Debit credits for a named action
// @Tags Credits
// @Accept json
// @Produce json
// @Param request body request_models.DebitCreditsRequest true "Debit Credits Request"
// @Success 200 {object} map[string]interface{}
// @Router /api/credits [put]
func (cc *CreditsController) DebitCredits(c *gin.Context) {
	var req request_models.DebitCreditsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}
	if req.UserID == "" || req.Amount == 0 || req.Action == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId, amount and action are required"})
		return
	}

	receipt, err := cc.creditService.Debit(c.Request.Context(), req.UserID, req.Amount, req.Action, req.Description)
	if err != nil {
		var shortfall *utils.InsufficientCreditsError
		if errors.As(err, &shortfall) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":           "Insufficient credits",
				"currentCredits":  shortfall.Current,
				"requiredCredits": shortfall.Required,
			})
			return
		}
		if errors.Is(err, utils.ErrInvalidAmount) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be a positive integer"})
			return
		}
		log.Printf("debit credits failed for %s: %v", req.UserID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"userId":          receipt.UserID,
		"previousCredits": receipt.PreviousCredits,
		"newCredits":      receipt.NewCredits,
		"amountDebited":   receipt.AmountDebited,
		"action":          receipt.Action,
		"description":     receipt.Description,
	})
}

// GetActionLogs godoc
// @Summary Fetch a user's gated-action audit log
// @Tags Credits
// @Produce json
// @Param userId query string true "User ID"
// @Success 200 {object} utils.APIResponse
// @Router /api/credits/actions [get]
func (cc *CreditsController) GetActionLogs(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		utils.RespondError(c, http.StatusBadRequest, "userId is required")
		return
	}

	logs, err := cc.creditService.ActionHistory(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.ToActionLogResponses(logs), "Action logs fetched successfully")
}
