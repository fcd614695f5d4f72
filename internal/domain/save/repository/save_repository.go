package repository

import (
	"errors"

	"yumzy/internal/domain/save/model"

	"gorm.io/gorm"
)

type SaveRepository interface {
	// Toggle 已收藏则取消，否则收藏，返回操作后的状态
	Toggle(userID, foodID string) (bool, error)
	// ListByUser 按收藏时间倒序，附带菜品与商家
	ListByUser(userID string) ([]model.Save, error)
}

type saveRepository struct {
	db *gorm.DB
}

func NewSaveRepository(db *gorm.DB) SaveRepository {
	return &saveRepository{db: db}
}

func (r *saveRepository) Toggle(userID, foodID string) (bool, error) {
	var saved bool
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing model.Save
		err := tx.Where("user_id = ? AND food_id = ?", userID, foodID).First(&existing).Error
		switch {
		case err == nil:
			return tx.Unscoped().Delete(&existing).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			saved = true
			return tx.Create(&model.Save{UserID: userID, FoodID: foodID}).Error
		default:
			return err
		}
	})
	if err != nil {
		return false, err
	}
	return saved, nil
}

func (r *saveRepository) ListByUser(userID string) ([]model.Save, error) {
	var saves []model.Save
	err := r.db.Preload("Food").Preload("Food.FoodPartner").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&saves).Error
	return saves, err
}
