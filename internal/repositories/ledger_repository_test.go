package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"fitmind/internal/models/db_models"
)

func setupLedgerRepo(t *testing.T) (LedgerRepository, *gorm.DB) {
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
	return NewLedgerRepository(db), db
}

func TestGetOrCreateUserProvisionsDefaults(t *testing.T) {
	repo, _ := setupLedgerRepo(t)
	ctx := context.Background()

	user, err := repo.GetOrCreateUser(ctx, "user1")
	require.NoError(t, err)
	require.Equal(t, "user1", user.ID)
	require.Equal(t, db_models.DefaultStartingCredits, user.Credits)
	require.Equal(t, db_models.DefaultPlanID, user.PlanID)
	require.Equal(t, "Demo User", user.Name)

	// A second read returns the same row, no re-grant.
	again, err := repo.GetOrCreateUser(ctx, "user1")
	require.NoError(t, err)
	require.Equal(t, user.ID, again.ID)
	require.Equal(t, db_models.DefaultStartingCredits, again.Credits)
}

func TestGetOrCreateUserKeepsExistingBalance(t *testing.T) {
	repo, db := setupLedgerRepo(t)
	ctx := context.Background()

	_, err := repo.GetOrCreateUser(ctx, "user1")
	require.NoError(t, err)
	require.NoError(t, db.Model(&db_models.User{}).Where("id = ?", "user1").Update("credits", 3).Error)

	again, err := repo.GetOrCreateUser(ctx, "user1")
	require.NoError(t, err)
	require.Equal(t, 3, again.Credits)
}

func TestProfileUpdatesLeaveBalanceAlone(t *testing.T) {
	repo, db := setupLedgerRepo(t)
	ctx := context.Background()

	// Hold a stale snapshot of the row, then let a debit land behind it.
	user, err := repo.GetOrCreateUser(ctx, "user1")
	require.NoError(t, err)
	require.NoError(t, db.Model(&db_models.User{}).Where("id = ?", "user1").
		Update("credits", gorm.Expr("credits - ?", 1)).Error)

	// Profile writes after the stale read must not revert the debit.
	require.NoError(t, repo.UpdatePlan(ctx, user.ID, "pro"))
	require.NoError(t, repo.UpdatePasswordHash(ctx, user.ID, "new-hash"))

	fresh, err := repo.FindUserByID(ctx, "user1")
	require.NoError(t, err)
	require.Equal(t, db_models.DefaultStartingCredits-1, fresh.Credits)
	require.Equal(t, "pro", fresh.PlanID)
	require.Equal(t, "new-hash", fresh.PasswordHash)
}

func TestFindUserNotFoundReturnsNil(t *testing.T) {
	repo, _ := setupLedgerRepo(t)
	ctx := context.Background()

	user, err := repo.FindUserByID(ctx, "nope")
	require.NoError(t, err)
	require.Nil(t, user)

	user, err = repo.FindUserByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	require.Nil(t, user)
}

func TestCreateUserAssignsID(t *testing.T) {
	repo, _ := setupLedgerRepo(t)
	ctx := context.Background()

	user := &db_models.User{
		Name:    "Alice",
		Email:   "alice@example.com",
		PlanID:  db_models.DefaultPlanID,
		Credits: db_models.DefaultStartingCredits,
	}
	require.NoError(t, repo.CreateUser(ctx, user))
	require.NotEmpty(t, user.ID)

	found, err := repo.FindUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Equal(t, user.ID, found.ID)
}

func TestListTransactionsOrderAndLimit(t *testing.T) {
	repo, db := setupLedgerRepo(t)
	ctx := context.Background()

	_, err := repo.GetOrCreateUser(ctx, "user1")
	require.NoError(t, err)
	_, err = repo.GetOrCreateUser(ctx, "other")
	require.NoError(t, err)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		txn := db_models.CreditTransaction{
			UserID:      "user1",
			Type:        db_models.TxnTypeEarned,
			Amount:      1,
			Description: fmt.Sprintf("grant %d", i),
		}
		txn.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, AppendTransaction(db, &txn))
	}
	// Another user's entries must not leak in.
	noise := db_models.CreditTransaction{UserID: "other", Type: db_models.TxnTypeEarned, Amount: 9}
	require.NoError(t, AppendTransaction(db, &noise))

	txns, err := repo.ListTransactions(ctx, "user1")
	require.NoError(t, err)
	require.Len(t, txns, 5)
	require.Equal(t, "grant 4", txns[0].Description)
	require.Equal(t, "grant 0", txns[4].Description)
}

func TestAppendActionLogPrunesPerUser(t *testing.T) {
	repo, db := setupLedgerRepo(t)
	ctx := context.Background()

	_, err := repo.GetOrCreateUser(ctx, "user1")
	require.NoError(t, err)
	_, err = repo.GetOrCreateUser(ctx, "other")
	require.NoError(t, err)

	// One entry for the other user, written first so it would be the oldest
	// overall. The cap is per user, so it must survive.
	otherEntry := db_models.ActionLog{UserID: "other", Action: "CREATE_WORKOUT", CreditsUsed: 1}
	otherEntry.CreatedAt = time.Now().Add(-2 * time.Hour)
	require.NoError(t, AppendActionLog(db, &otherEntry))

	base := time.Now().Add(-time.Hour)
	for i := 0; i < HistoryCap+5; i++ {
		entry := db_models.ActionLog{
			UserID:      "user1",
			Action:      fmt.Sprintf("ACTION_%d", i),
			CreditsUsed: 1,
		}
		entry.CreatedAt = base.Add(time.Duration(i) * time.Second)
		require.NoError(t, AppendActionLog(db, &entry))
	}

	logs, err := repo.ListActionLogs(ctx, "user1")
	require.NoError(t, err)
	require.Len(t, logs, HistoryCap)
	require.Equal(t, fmt.Sprintf("ACTION_%d", HistoryCap+4), logs[0].Action)
	require.Equal(t, "ACTION_5", logs[len(logs)-1].Action)

	otherLogs, err := repo.ListActionLogs(ctx, "other")
	require.NoError(t, err)
	require.Len(t, otherLogs, 1)
}
