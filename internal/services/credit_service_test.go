package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"fitmind/internal/catalog"
	"fitmind/internal/models/db_models"
	"fitmind/internal/repositories"
	"fitmind/pkg/utils"
)

func setupCreditService(t *testing.T) (CreditServiceInterface, repositories.LedgerRepository, *gorm.DB) {
	t.Helper()
	// Per-test in-memory database to avoid cross-test interference.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&db_models.User{},
		&db_models.CreditTransaction{},
		&db_models.ActionLog{},
	))
	ledgerRepo := repositories.NewLedgerRepository(db)
	return NewCreditService(db, ledgerRepo), ledgerRepo, db
}

func TestConsumeDebitsAndWritesLedger(t *testing.T) {
	svc, _, _ := setupCreditService(t)
	ctx := context.Background()

	receipt, err := svc.Consume(ctx, "user1", catalog.ActionGenerateWorkout, map[string]interface{}{
		"goal": "strength",
	})
	require.NoError(t, err)
	require.Equal(t, "user1", receipt.UserID)
	require.Equal(t, 15, receipt.PreviousCredits)
	require.Equal(t, 14, receipt.NewCredits)
	require.Equal(t, 1, receipt.AmountDebited)

	user, err := svc.Balance(ctx, "user1")
	require.NoError(t, err)
	require.Equal(t, 14, user.Credits)

	txns, err := svc.History(ctx, "user1")
	require.NoError(t, err)
	require.Len(t, txns, 1)
	require.Equal(t, db_models.TxnTypeSpent, txns[0].Type)
	require.Equal(t, -1, txns[0].Amount)
	require.Equal(t, string(catalog.ActionGenerateWorkout), txns[0].ActionType)

	logs, err := svc.ActionHistory(ctx, "user1")
	require.NoError(t, err)
	require.Len(t, logs, 1)
	require.Equal(t, string(catalog.ActionGenerateWorkout), logs[0].Action)
	require.Equal(t, 1, logs[0].CreditsUsed)
}

func TestConsumeInsufficientCreditsLeavesStateUntouched(t *testing.T) {
	svc, ledgerRepo, db := setupCreditService(t)
	ctx := context.Background()

	_, err := ledgerRepo.GetOrCreateUser(ctx, "user2")
	require.NoError(t, err)
	require.NoError(t, db.Model(&db_models.User{}).Where("id = ?", "user2").Update("credits", 1).Error)

	// CREATE_DIET costs 2, balance is 1.
	_, err = svc.Consume(ctx, "user2", catalog.ActionCreateDiet, nil)
	require.Error(t, err)

	var insufficient *utils.InsufficientCreditsError
	require.True(t, errors.As(err, &insufficient))
	require.Equal(t, 1, insufficient.Current)
	require.Equal(t, 2, insufficient.Required)

	// Balance unchanged, no ledger entries written.
	refreshed, err := svc.Balance(ctx, "user2")
	require.NoError(t, err)
	require.Equal(t, 1, refreshed.Credits)

	txns, err := svc.History(ctx, "user2")
	require.NoError(t, err)
	require.Empty(t, txns)

	logs, err := svc.ActionHistory(ctx, "user2")
	require.NoError(t, err)
	require.Empty(t, logs)
}

func TestConsumeUnknownAction(t *testing.T) {
	svc, _, _ := setupCreditService(t)

	_, err := svc.Consume(context.Background(), "user1", catalog.ActionKind("DELETE_EVERYTHING"), nil)
	require.ErrorIs(t, err, utils.ErrUnknownAction)
}

func TestSpendToExactlyZero(t *testing.T) {
	svc, ledgerRepo, db := setupCreditService(t)
	ctx := context.Background()

	_, err := ledgerRepo.GetOrCreateUser(ctx, "user3")
	require.NoError(t, err)
	require.NoError(t, db.Model(&db_models.User{}).Where("id = ?", "user3").Update("credits", 2).Error)

	receipt, err := svc.Consume(ctx, "user3", catalog.ActionCreateDiet, nil)
	require.NoError(t, err)
	require.Equal(t, 0, receipt.NewCredits)

	// Any further spend fails.
	_, err = svc.Consume(ctx, "user3", catalog.ActionEditWorkout, nil)
	var insufficient *utils.InsufficientCreditsError
	require.True(t, errors.As(err, &insufficient))
	require.Equal(t, 0, insufficient.Current)
}

func TestDebitArbitraryAmount(t *testing.T) {
	svc, _, _ := setupCreditService(t)
	ctx := context.Background()

	receipt, err := svc.Debit(ctx, "user1", 5, "WORKOUT_PLAN", "Debited 5 credits for WORKOUT_PLAN")
	require.NoError(t, err)
	require.Equal(t, 15, receipt.PreviousCredits)
	require.Equal(t, 10, receipt.NewCredits)
	require.Equal(t, 5, receipt.AmountDebited)

	_, err = svc.Debit(ctx, "user1", 0, "WORKOUT_PLAN", "")
	require.ErrorIs(t, err, utils.ErrInvalidAmount)

	_, err = svc.Debit(ctx, "user1", -3, "WORKOUT_PLAN", "")
	require.ErrorIs(t, err, utils.ErrInvalidAmount)
}

func TestAddCredits(t *testing.T) {
	svc, _, _ := setupCreditService(t)
	ctx := context.Background()

	receipt, err := svc.Add(ctx, "user1", 25, db_models.TxnTypePurchased, "Purchased Medium Pack")
	require.NoError(t, err)
	require.Equal(t, 15, receipt.PreviousCredits)
	require.Equal(t, 40, receipt.NewCredits)
	require.Equal(t, 25, receipt.AmountAdded)

	txns, err := svc.History(ctx, "user1")
	require.NoError(t, err)
	require.Len(t, txns, 1)
	require.Equal(t, db_models.TxnTypePurchased, txns[0].Type)
	require.Equal(t, 25, txns[0].Amount)

	_, err = svc.Add(ctx, "user1", 0, db_models.TxnTypeEarned, "nothing")
	require.ErrorIs(t, err, utils.ErrInvalidAmount)

	_, err = svc.Add(ctx, "user1", 10, db_models.TxnTypeSpent, "wrong type")
	require.Error(t, err)
}

func TestLedgerSumMatchesBalance(t *testing.T) {
	svc, _, _ := setupCreditService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, "user1", 10, db_models.TxnTypeEarned, "Signup bonus")
	require.NoError(t, err)
	_, err = svc.Consume(ctx, "user1", catalog.ActionCreateDiet, nil)
	require.NoError(t, err)
	_, err = svc.Consume(ctx, "user1", catalog.ActionGenerateWorkout, nil)
	require.NoError(t, err)
	_, err = svc.Debit(ctx, "user1", 4, "CUSTOM", "")
	require.NoError(t, err)

	user, err := svc.Balance(ctx, "user1")
	require.NoError(t, err)

	txns, err := svc.History(ctx, "user1")
	require.NoError(t, err)

	sum := 0
	for _, txn := range txns {
		sum += txn.Amount
	}
	// Starting grant is not a ledger row, so sum covers movement only.
	require.Equal(t, user.Credits, db_models.DefaultStartingCredits+sum)
}

func TestHistoryNewestFirst(t *testing.T) {
	svc, _, db := setupCreditService(t)
	ctx := context.Background()

	_, err := svc.Consume(ctx, "user1", catalog.ActionCreateWorkout, nil)
	require.NoError(t, err)

	// Backdate a second entry so ordering is unambiguous.
	old := db_models.CreditTransaction{
		UserID:      "user1",
		Type:        db_models.TxnTypeEarned,
		Amount:      5,
		Description: "old grant",
	}
	old.CreatedAt = time.Now().Add(-time.Hour)
	require.NoError(t, db.Create(&old).Error)

	txns, err := svc.History(ctx, "user1")
	require.NoError(t, err)
	require.Len(t, txns, 2)
	require.Equal(t, db_models.TxnTypeSpent, txns[0].Type)
	require.Equal(t, "old grant", txns[1].Description)
}

func TestHistoryCapEvictsOldest(t *testing.T) {
	_, ledgerRepo, db := setupCreditService(t)
	ctx := context.Background()

	_, err := ledgerRepo.GetOrCreateUser(ctx, "user1")
	require.NoError(t, err)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < repositories.HistoryCap+20; i++ {
		txn := db_models.CreditTransaction{
			UserID:      "user1",
			Type:        db_models.TxnTypeEarned,
			Amount:      1,
			Description: fmt.Sprintf("grant %d", i),
		}
		txn.CreatedAt = base.Add(time.Duration(i) * time.Second)
		require.NoError(t, repositories.AppendTransaction(db, &txn))
	}

	txns, err := ledgerRepo.ListTransactions(ctx, "user1")
	require.NoError(t, err)
	require.Len(t, txns, repositories.HistoryCap)

	// Newest kept, oldest evicted.
	require.Equal(t, "grant 119", txns[0].Description)
	require.Equal(t, "grant 20", txns[len(txns)-1].Description)

	var count int64
	require.NoError(t, db.Model(&db_models.CreditTransaction{}).Where("user_id = ?", "user1").Count(&count).Error)
	require.EqualValues(t, repositories.HistoryCap, count)
}
