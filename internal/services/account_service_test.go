package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"fitmind/internal/models/db_models"
	"fitmind/internal/models/request_models"
	"fitmind/internal/repositories"
	mem "fitmind/pkg/memcache"
	"fitmind/pkg/utils"
)

// stubMailService records sends instead of talking to SMTP.
type stubMailService struct {
	resetTokens []string
	receipts    []string
}

func (s *stubMailService) SendMailToResetPassword(email, token string) error {
	s.resetTokens = append(s.resetTokens, token)
	return nil
}

func (s *stubMailService) SendPurchaseReceipt(email, packageName string, credits int) error {
	s.receipts = append(s.receipts, packageName)
	return nil
}

func setupAccountService(t *testing.T) (AccountServiceInterface, *stubMailService) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&db_models.User{}))

	ledgerRepo := repositories.NewLedgerRepository(db)
	mail := &stubMailService{}
	return NewAccountService(ledgerRepo, mail, mem.NewResetTokens()), mail
}

func TestCreateAccountAndLogin(t *testing.T) {
	svc, _ := setupAccountService(t)
	ctx := context.Background()

	user, err := svc.CreateAccount(ctx, request_models.SignUpRequest{
		DisplayName: "Alice",
		Email:       "alice@example.com",
		Password:    "s3cret-pass",
	})
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.Equal(t, db_models.DefaultStartingCredits, user.Credits)
	require.Equal(t, db_models.DefaultPlanID, user.PlanID)
	require.NotEqual(t, "s3cret-pass", user.PasswordHash)

	// Duplicate email is rejected.
	_, err = svc.CreateAccount(ctx, request_models.SignUpRequest{
		DisplayName: "Alice Again",
		Email:       "alice@example.com",
		Password:    "other-pass-1",
	})
	require.ErrorIs(t, err, utils.ErrEmailAlreadyExists)

	token, err := svc.Login(ctx, request_models.LoginRequest{
		Email:    "alice@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := utils.ValidateToken(token)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.UserID)

	_, err = svc.Login(ctx, request_models.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong",
	})
	require.ErrorIs(t, err, utils.ErrInvalidCredentials)

	_, err = svc.Login(ctx, request_models.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	require.ErrorIs(t, err, utils.ErrInvalidCredentials)
}

func TestPasswordResetFlow(t *testing.T) {
	svc, mail := setupAccountService(t)
	ctx := context.Background()

	_, err := svc.CreateAccount(ctx, request_models.SignUpRequest{
		DisplayName: "Bob",
		Email:       "bob@example.com",
		Password:    "original-pass",
	})
	require.NoError(t, err)

	require.NoError(t, svc.RequestPasswordReset(ctx, "bob@example.com"))
	require.Len(t, mail.resetTokens, 1)
	token := mail.resetTokens[0]

	require.NoError(t, svc.ResetPassword(ctx, token, "brand-new-pass"))

	_, err = svc.Login(ctx, request_models.LoginRequest{Email: "bob@example.com", Password: "original-pass"})
	require.ErrorIs(t, err, utils.ErrInvalidCredentials)

	_, err = svc.Login(ctx, request_models.LoginRequest{Email: "bob@example.com", Password: "brand-new-pass"})
	require.NoError(t, err)

	// Tokens are single use.
	err = svc.ResetPassword(ctx, token, "third-pass-000")
	require.ErrorIs(t, err, utils.ErrInvalidResetToken)
}

func TestPasswordResetUnknownEmailIsSilent(t *testing.T) {
	svc, mail := setupAccountService(t)

	require.NoError(t, svc.RequestPasswordReset(context.Background(), "ghost@example.com"))
	require.Empty(t, mail.resetTokens)
}
