package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"fitmind/internal/catalog"
	"fitmind/internal/models/db_models"
	"fitmind/internal/repositories"
	"fitmind/pkg/utils"
)

// SpendReceipt reports a successful debit.
type SpendReceipt struct {
	UserID          string `json:"userId"`
	Action          string `json:"action"`
	PreviousCredits int    `json:"previousCredits"`
	NewCredits      int    `json:"newCredits"`
	AmountDebited   int    `json:"amountDebited"`
	Description     string `json:"description"`
}

// AddReceipt reports a successful credit grant.
type AddReceipt struct {
	UserID          string `json:"userId"`
	PreviousCredits int    `json:"previousCredits"`
	NewCredits      int    `json:"newCredits"`
	AmountAdded     int    `json:"amountAdded"`
	Reason          string `json:"reason"`
}

type CreditServiceInterface interface {
	// Consume charges a catalog action: one transaction covering the
	// conditional balance decrement, the spent ledger entry, and the action
	// log. Returns *utils.InsufficientCreditsError with no state change when
	// the balance cannot cover the cost.
	Consume(ctx context.Context, userID string, action catalog.ActionKind, details map[string]interface{}) (*SpendReceipt, error)

	// Debit charges a caller-supplied amount under an arbitrary action label
	// (the legacy PUT /api/credits contract).
	Debit(ctx context.Context, userID string, amount int, action, description string) (*SpendReceipt, error)

	// Add unconditionally grants credits. txType must be earned or purchased.
	Add(ctx context.Context, userID string, amount int, txType db_models.TransactionType, description string) (*AddReceipt, error)

	Balance(ctx context.Context, userID string) (*db_models.User, error)
	History(ctx context.Context, userID string) ([]db_models.CreditTransaction, error)
	ActionHistory(ctx context.Context, userID string) ([]db_models.ActionLog, error)
}

type CreditService struct {
	db         *gorm.DB
	ledgerRepo repositories.LedgerRepository
}

func NewCreditService(db *gorm.DB, ledgerRepo repositories.LedgerRepository) CreditServiceInterface {
	return &CreditService{
		db:         db,
		ledgerRepo: ledgerRepo,
	}
}

func (s *CreditService) Consume(ctx context.Context, userID string, action catalog.ActionKind, details map[string]interface{}) (*SpendReceipt, error) {
	cost, ok := catalog.CostOf(action)
	if !ok {
		return nil, utils.ErrUnknownAction
	}
	return s.spend(ctx, userID, cost, string(action), catalog.DescriptionOf(action), details)
}

func (s *CreditService) Debit(ctx context.Context, userID string, amount int, action, description string) (*SpendReceipt, error) {
	if amount <= 0 {
		return nil, utils.ErrInvalidAmount
	}
	if description == "" {
		description = fmt.Sprintf("Debited %d credits for %s", amount, action)
	}
	return s.spend(ctx, userID, amount, action, description, nil)
}

// spend is the single check-then-decrement path. The sufficiency check is the
// conditional UPDATE itself, so two concurrent spends on one user serialize on
// the row and cannot overdraw.
func (s *CreditService) spend(ctx context.Context, userID string, cost int, action, description string, details map[string]interface{}) (*SpendReceipt, error) {
	user, err := s.ledgerRepo.GetOrCreateUser(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	receipt := &SpendReceipt{
		UserID:        user.ID,
		Action:        action,
		AmountDebited: cost,
		Description:   description,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&db_models.User{}).
			Where("id = ? AND credits >= ?", userID, cost).
			Updates(map[string]interface{}{
				"credits":    gorm.Expr("credits - ?", cost),
				"updated_at": time.Now().Unix(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var current db_models.User
			if err := tx.First(&current, "id = ?", userID).Error; err != nil {
				return err
			}
			return &utils.InsufficientCreditsError{
				Current:  current.Credits,
				Required: cost,
			}
		}

		var updated db_models.User
		if err := tx.First(&updated, "id = ?", userID).Error; err != nil {
			return err
		}
		receipt.NewCredits = updated.Credits
		receipt.PreviousCredits = updated.Credits + cost

		txn := &db_models.CreditTransaction{
			UserID:      userID,
			Type:        db_models.TxnTypeSpent,
			Amount:      -cost,
			Description: description,
			ActionType:  action,
		}
		if err := repositories.AppendTransaction(tx, txn); err != nil {
			return err
		}

		entry := &db_models.ActionLog{
			UserID:      userID,
			Action:      action,
			CreditsUsed: cost,
			Details:     marshalDetails(details),
		}
		return repositories.AppendActionLog(tx, entry)
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}

func (s *CreditService) Add(ctx context.Context, userID string, amount int, txType db_models.TransactionType, description string) (*AddReceipt, error) {
	if amount <= 0 {
		return nil, utils.ErrInvalidAmount
	}
	if txType != db_models.TxnTypeEarned && txType != db_models.TxnTypePurchased {
		return nil, fmt.Errorf("unsupported transaction type %q", txType)
	}

	user, err := s.ledgerRepo.GetOrCreateUser(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	receipt := &AddReceipt{
		UserID:      user.ID,
		AmountAdded: amount,
		Reason:      description,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&db_models.User{}).
			Where("id = ?", userID).
			Updates(map[string]interface{}{
				"credits":    gorm.Expr("credits + ?", amount),
				"updated_at": time.Now().Unix(),
			})
		if res.Error != nil {
			return res.Error
		}

		var updated db_models.User
		if err := tx.First(&updated, "id = ?", userID).Error; err != nil {
			return err
		}
		receipt.NewCredits = updated.Credits
		receipt.PreviousCredits = updated.Credits - amount

		txn := &db_models.CreditTransaction{
			UserID:      userID,
			Type:        txType,
			Amount:      amount,
			Description: description,
		}
		return repositories.AppendTransaction(tx, txn)
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}

func (s *CreditService) Balance(ctx context.Context, userID string) (*db_models.User, error) {
	user, err := s.ledgerRepo.GetOrCreateUser(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return user, nil
}

func (s *CreditService) History(ctx context.Context, userID string) ([]db_models.CreditTransaction, error) {
	txns, err := s.ledgerRepo.ListTransactions(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return txns, nil
}

func (s *CreditService) ActionHistory(ctx context.Context, userID string) ([]db_models.ActionLog, error) {
	logs, err := s.ledgerRepo.ListActionLogs(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return logs, nil
}

func marshalDetails(details map[string]interface{}) datatypes.JSON {
	if details == nil {
		return datatypes.JSON("{}")
	}
	b, err := json.Marshal(details)
	if err != nil {
		return datatypes.JSON("{}")
	}
	return datatypes.JSON(b)
}
