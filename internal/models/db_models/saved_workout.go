package db_models

import (
	"gorm.io/datatypes"
)

type SavedWorkout struct {
	BaseModel
	UserID    string         `gorm:"index;not null"`
	Name      string         `gorm:"not null"`
	Exercises datatypes.JSON `gorm:"type:jsonb;default:'[]'"`
	Duration  string
	Level     string
	Category  string

	User User `gorm:"foreignKey:UserID"`
}

type SavedDiet struct {
	BaseModel
	UserID        string         `gorm:"index;not null"`
	Name          string         `gorm:"not null"`
	Meals         datatypes.JSON `gorm:"type:jsonb;default:'[]'"`
	TotalCalories int
	DietType      string

	User User `gorm:"foreignKey:UserID"`
}
