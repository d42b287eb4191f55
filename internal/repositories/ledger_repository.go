package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"fitmind/internal/models/db_models"
)

// HistoryCap bounds the retained audit history per user. Oldest entries are
// evicted at write time so the cap holds regardless of how rows were written.
const HistoryCap = 100

type LedgerRepository interface {
	// GetOrCreateUser returns the user, auto-provisioning a demo user with the
	// default starting balance when the id is unknown.
	GetOrCreateUser(ctx context.Context, id string) (*db_models.User, error)
	FindUserByID(ctx context.Context, id string) (*db_models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*db_models.User, error)
	CreateUser(ctx context.Context, user *db_models.User) error

	// Profile writes are column-scoped. The credits column is owned by the
	// credit service's transactions; writing it from a read-modify-write of
	// the whole row would revert any spend that landed in between.
	UpdatePlan(ctx context.Context, userID, planID string) error
	UpdatePasswordHash(ctx context.Context, userID, hash string) error

	ListTransactions(ctx context.Context, userID string) ([]db_models.CreditTransaction, error)
	ListActionLogs(ctx context.Context, userID string) ([]db_models.ActionLog, error)
}

type ledgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &ledgerRepository{db: db}
}

func (l *ledgerRepository) GetOrCreateUser(ctx context.Context, id string) (*db_models.User, error) {
	var user db_models.User
	err := l.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user = db_models.User{
		ID:      id,
		Name:    "Demo User",
		PlanID:  db_models.DefaultPlanID,
		Credits: db_models.DefaultStartingCredits,
	}
	if createErr := l.db.WithContext(ctx).Create(&user).Error; createErr != nil {
		// Lost a provisioning race; the row exists now.
		var existing db_models.User
		if err := l.db.WithContext(ctx).First(&existing, "id = ?", id).Error; err != nil {
			return nil, createErr
		}
		return &existing, nil
	}
	return &user, nil
}

func (l *ledgerRepository) FindUserByID(ctx context.Context, id string) (*db_models.User, error) {
	var user db_models.User
	err := l.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (l *ledgerRepository) FindUserByEmail(ctx context.Context, email string) (*db_models.User, error) {
	var user db_models.User
	err := l.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (l *ledgerRepository) CreateUser(ctx context.Context, user *db_models.User) error {
	return l.db.WithContext(ctx).Create(user).Error
}

func (l *ledgerRepository) UpdatePlan(ctx context.Context, userID, planID string) error {
	return l.db.WithContext(ctx).Model(&db_models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"plan_id":    planID,
			"updated_at": time.Now().Unix(),
		}).Error
}

func (l *ledgerRepository) UpdatePasswordHash(ctx context.Context, userID, hash string) error {
	return l.db.WithContext(ctx).Model(&db_models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"password_hash": hash,
			"updated_at":    time.Now().Unix(),
		}).Error
}

func (l *ledgerRepository) ListTransactions(ctx context.Context, userID string) ([]db_models.CreditTransaction, error) {
	var txns []db_models.CreditTransaction
	err := l.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(HistoryCap).
		Find(&txns).Error
	if err != nil {
		return nil, err
	}
	return txns, nil
}

func (l *ledgerRepository) ListActionLogs(ctx context.Context, userID string) ([]db_models.ActionLog, error) {
	var logs []db_models.ActionLog
	err := l.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(HistoryCap).
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

// AppendTransaction writes a ledger entry on the given handle (which may be
// inside a transaction) and evicts entries beyond the retention cap.
func AppendTransaction(tx *gorm.DB, txn *db_models.CreditTransaction) error {
	if err := tx.Create(txn).Error; err != nil {
		return err
	}
	return pruneHistory(tx, "credit_transactions", txn.UserID)
}

// AppendActionLog writes an audit entry on the given handle and evicts
// entries beyond the retention cap.
func AppendActionLog(tx *gorm.DB, entry *db_models.ActionLog) error {
	if err := tx.Create(entry).Error; err != nil {
		return err
	}
	return pruneHistory(tx, "action_logs", entry.UserID)
}

func pruneHistory(tx *gorm.DB, table, userID string) error {
	return tx.Exec(
		`DELETE FROM `+table+` WHERE user_id = ? AND id NOT IN (
			SELECT id FROM (
				SELECT id FROM `+table+` WHERE user_id = ? ORDER BY created_at DESC LIMIT ?
			) AS keep
		)`,
		userID, userID, HistoryCap,
	).Error
}
