package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"fitmind/internal/catalog"
	"fitmind/internal/models/db_models"
	"fitmind/internal/repositories"
	"fitmind/pkg/utils"
)

func setupPlanService(t *testing.T) (PlanServiceInterface, repositories.LedgerRepository, CreditServiceInterface) {
	t.Helper()
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
	creditService := NewCreditService(db, ledgerRepo)
	planRepo := repositories.NewPlanRepository()
	return NewPlanService(planRepo, ledgerRepo, creditService), ledgerRepo, creditService
}

func TestGetPlansAndPackages(t *testing.T) {
	svc, _, _ := setupPlanService(t)
	ctx := context.Background()

	plans, err := svc.GetPlans(ctx)
	require.NoError(t, err)
	require.Len(t, plans, 3)

	starter, err := svc.GetPlanByID(ctx, "starter")
	require.NoError(t, err)
	require.Equal(t, 15, starter.MonthlyCredits)

	_, err = svc.GetPlanByID(ctx, "platinum")
	require.ErrorIs(t, err, utils.ErrPlanNotFound)

	packages, err := svc.GetPackages(ctx)
	require.NoError(t, err)
	require.Len(t, packages, 3)
}

func TestUpgradePlanGrantsMonthlyCredits(t *testing.T) {
	svc, ledgerRepo, _ := setupPlanService(t)
	ctx := context.Background()

	receipt, err := svc.UpgradePlan(ctx, "user1", "pro")
	require.NoError(t, err)
	require.Equal(t, 15, receipt.PreviousCredits)
	require.Equal(t, 75, receipt.NewCredits)
	require.Equal(t, 60, receipt.AmountAdded)

	user, err := ledgerRepo.FindUserByID(ctx, "user1")
	require.NoError(t, err)
	require.Equal(t, "pro", user.PlanID)
	require.Equal(t, 75, user.Credits)

	txns, err := ledgerRepo.ListTransactions(ctx, "user1")
	require.NoError(t, err)
	require.Len(t, txns, 1)
	require.Equal(t, db_models.TxnTypeEarned, txns[0].Type)
	require.Equal(t, 60, txns[0].Amount)
}

func TestUpgradePlanUnknownPlan(t *testing.T) {
	svc, _, _ := setupPlanService(t)

	_, err := svc.UpgradePlan(context.Background(), "user1", "diamond")
	require.ErrorIs(t, err, utils.ErrPlanNotFound)
}

func TestPurchasePackage(t *testing.T) {
	svc, ledgerRepo, _ := setupPlanService(t)
	ctx := context.Background()

	receipt, err := svc.PurchasePackage(ctx, "user1", "pack_25")
	require.NoError(t, err)
	require.Equal(t, 40, receipt.NewCredits)
	require.Equal(t, 25, receipt.AmountAdded)

	txns, err := ledgerRepo.ListTransactions(ctx, "user1")
	require.NoError(t, err)
	require.Len(t, txns, 1)
	require.Equal(t, db_models.TxnTypePurchased, txns[0].Type)

	_, err = svc.PurchasePackage(ctx, "user1", "pack_9000")
	require.ErrorIs(t, err, utils.ErrPackageNotFound)
}

func TestUpgradePlanKeepsEarlierSpend(t *testing.T) {
	svc, ledgerRepo, creditService := setupPlanService(t)
	ctx := context.Background()

	// A spend lands before the upgrade; the plan write must not revert it.
	_, err := creditService.Consume(ctx, "user1", catalog.ActionGenerateWorkout, nil)
	require.NoError(t, err)

	receipt, err := svc.UpgradePlan(ctx, "user1", "pro")
	require.NoError(t, err)
	require.Equal(t, 74, receipt.NewCredits)

	user, err := ledgerRepo.FindUserByID(ctx, "user1")
	require.NoError(t, err)
	require.Equal(t, "pro", user.PlanID)
	require.Equal(t, 74, user.Credits)

	// The ledger still reconciles with the balance.
	txns, err := ledgerRepo.ListTransactions(ctx, "user1")
	require.NoError(t, err)
	sum := 0
	for _, txn := range txns {
		sum += txn.Amount
	}
	require.Equal(t, user.Credits, db_models.DefaultStartingCredits+sum)
}
