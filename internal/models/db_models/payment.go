package db_models

import (
	"gorm.io/datatypes"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// Payment tracks a one-off credit package purchase through the payment
// gateway. ProviderTxnID links local records to provider webhooks and keeps
// webhook handling idempotent.
type Payment struct {
	BaseModel
	UserID      string        `gorm:"index;not null"`
	PackageID   string        `gorm:"index;not null"`
	Credits     int           `gorm:"not null"`
	AmountMinor int64         // e.g., 999 = $9.99
	Currency    string        `gorm:"size:3"`
	Status      PaymentStatus `gorm:"index;not null"`

	Provider      string `gorm:"index"`
	ProviderTxnID string `gorm:"uniqueIndex"`

	PaidAt *int64

	Metadata datatypes.JSON `gorm:"type:jsonb;default:'{}'"`

	User User `gorm:"foreignKey:UserID"`
}
