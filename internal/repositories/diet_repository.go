package repositories

import (
	"context"

	"gorm.io/gorm"

	"fitmind/internal/models/db_models"
)

type IDietRepository interface {
	CreateDiet(ctx context.Context, diet *db_models.SavedDiet) error
	ListDietsByUser(ctx context.Context, userID string) ([]db_models.SavedDiet, error)
}

type DietRepository struct {
	db *gorm.DB
}

func NewDietRepository(db *gorm.DB) IDietRepository {
	return &DietRepository{db: db}
}

func (d *DietRepository) CreateDiet(ctx context.Context, diet *db_models.SavedDiet) error {
	return d.db.WithContext(ctx).Create(diet).Error
}

func (d *DietRepository) ListDietsByUser(ctx context.Context, userID string) ([]db_models.SavedDiet, error) {
	var diets []db_models.SavedDiet
	err := d.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&diets).Error
	if err != nil {
		return nil, err
	}
	return diets, nil
}
