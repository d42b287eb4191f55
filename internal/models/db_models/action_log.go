package db_models

import (
	"gorm.io/datatypes"
)

// ActionLog records a gated action's execution with the request parameters
// verbatim. Distinct from the balance-change transaction so audits keep the
// full context of what was generated or saved.
type ActionLog struct {
	LedgerModel
	UserID      string         `gorm:"index;not null"`
	Action      string         `gorm:"index;not null"`
	CreditsUsed int            `gorm:"not null"`
	Details     datatypes.JSON `gorm:"type:jsonb;default:'{}'"`

	User User `gorm:"foreignKey:UserID"`
}
