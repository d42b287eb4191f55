package services

import (
	"context"
	"log"
	"time"

	"fitmind/internal/models/db_models"
	"fitmind/internal/models/request_models"
	"fitmind/internal/repositories"
	mem "fitmind/pkg/memcache"
	"fitmind/pkg/utils"
)

const resetTokenTTL = 15 * time.Minute

type AccountServiceInterface interface {
	Login(ctx context.Context, request request_models.LoginRequest) (string, error)
	CreateAccount(ctx context.Context, request request_models.SignUpRequest) (*db_models.User, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	Profile(ctx context.Context, userID string) (*db_models.User, error)
}

type AccountService struct {
	ledgerRepo  repositories.LedgerRepository
	mailService IMailService
	resetTokens mem.ResetTokenStore
}

func NewAccountService(ledgerRepo repositories.LedgerRepository, mailService IMailService, resetTokens mem.ResetTokenStore) AccountServiceInterface {
	return &AccountService{
		ledgerRepo:  ledgerRepo,
		mailService: mailService,
		resetTokens: resetTokens,
	}
}

func (a *AccountService) Login(ctx context.Context, request request_models.LoginRequest) (string, error) {
	user, err := a.ledgerRepo.FindUserByEmail(ctx, request.Email)
	if err != nil {
		return "", utils.ErrDatabaseError
	}
	if user == nil {
		return "", utils.ErrInvalidCredentials
	}

	if err := utils.ComparePasswords(user.PasswordHash, request.Password); err != nil {
		return "", utils.ErrInvalidCredentials
	}

	token, err := utils.CreateToken(user.ID, "user")
	if err != nil {
		return "", utils.ErrInvalidCredentials
	}

	return token, nil
}

func (a *AccountService) CreateAccount(ctx context.Context, request request_models.SignUpRequest) (*db_models.User, error) {
	existing, err := a.ledgerRepo.FindUserByEmail(ctx, request.Email)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if existing != nil {
		return nil, utils.ErrEmailAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	user := &db_models.User{
		Name:         request.DisplayName,
		Email:        request.Email,
		PasswordHash: hashedPassword,
		PlanID:       db_models.DefaultPlanID,
		Credits:      db_models.DefaultStartingCredits,
	}
	if err := a.ledgerRepo.CreateUser(ctx, user); err != nil {
		return nil, utils.ErrDatabaseError
	}

	return user, nil
}

func (a *AccountService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := a.ledgerRepo.FindUserByEmail(ctx, email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if user == nil {
		// Do not reveal whether the email exists.
		return nil
	}

	token, err := utils.GenerateSecureToken(32)
	if err != nil {
		return err
	}
	a.resetTokens.Set(token, user.Email, resetTokenTTL)

	if err := a.mailService.SendMailToResetPassword(user.Email, token); err != nil {
		log.Printf("reset mail to %s failed: %v", user.Email, err)
	}
	return nil
}

func (a *AccountService) ResetPassword(ctx context.Context, token, newPassword string) error {
	email := a.resetTokens.Consume(token)
	if email == "" {
		return utils.ErrInvalidResetToken
	}

	user, err := a.ledgerRepo.FindUserByEmail(ctx, email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if user == nil {
		return utils.ErrInvalidResetToken
	}

	hashedPassword, err := utils.HashPassword(newPassword)
	if err != nil {
		return utils.ErrDatabaseError
	}

	if err := a.ledgerRepo.UpdatePasswordHash(ctx, user.ID, hashedPassword); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (a *AccountService) Profile(ctx context.Context, userID string) (*db_models.User, error) {
	user, err := a.ledgerRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrUserNotFound
	}
	return user, nil
}
