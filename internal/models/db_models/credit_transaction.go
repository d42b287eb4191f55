package db_models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LedgerModel is the base for append-only audit records. Entries are never
// updated, so there is no UpdatedAt; CreatedAt keeps full precision because
// newest-first ordering must stay stable within the same second.
type LedgerModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"index"`
}

func (m *LedgerModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	return nil
}

type TransactionType string

const (
	TxnTypeEarned    TransactionType = "earned"
	TxnTypeSpent     TransactionType = "spent"
	TxnTypePurchased TransactionType = "purchased"
)

// CreditTransaction is an immutable ledger entry. Amount is signed: negative
// for spends, positive for earned/purchased grants. The sum of a user's
// amounts always equals that user's current balance.
type CreditTransaction struct {
	LedgerModel
	UserID      string          `gorm:"index;not null"`
	Type        TransactionType `gorm:"index;not null"`
	Amount      int             `gorm:"not null"`
	Description string
	ActionType  string `gorm:"index"`

	User User `gorm:"foreignKey:UserID"`
}
