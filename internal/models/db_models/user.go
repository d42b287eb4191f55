package db_models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultStartingCredits is granted when a user is auto-provisioned on first
// access (the demo onboarding path).
const DefaultStartingCredits = 15

// DefaultPlanID is the catalog plan assigned to auto-provisioned users.
const DefaultPlanID = "starter"

// User is keyed by an opaque string so callers may bring their own IDs
// (the legacy frontend sends things like "user1"); a uuid is assigned when
// the caller does not supply one.
type User struct {
	ID           string `gorm:"primaryKey"`
	Name         string
	Email        string `gorm:"index"`
	PasswordHash string
	PlanID       string `gorm:"index"`
	Credits      int    `gorm:"not null;default:0"`
	CreatedAt    int64  `gorm:"autoCreateTime"`
	UpdatedAt    int64  `gorm:"autoUpdateTime"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	now := time.Now().Unix()
	u.CreatedAt = now
	u.UpdatedAt = now
	return nil
}

func (u *User) BeforeUpdate(tx *gorm.DB) error {
	u.UpdatedAt = time.Now().Unix()
	return nil
}
