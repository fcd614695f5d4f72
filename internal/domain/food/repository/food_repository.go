package repository

import (
	"errors"

	"yumzy/internal/domain/food/model"

	"gorm.io/gorm"
)

type FoodRepository interface {
	Create(food *model.Food) error
	GetByID(id string) (*model.Food, error)
	// ListAll 全部菜品，按创建时间倒序，附带商家信息
	ListAll() ([]model.Food, error)
	ListByPartner(partnerID string) ([]model.Food, error)
}

type foodRepository struct {
	db *gorm.DB
}

func NewFoodRepository(db *gorm.DB) FoodRepository {
	return &foodRepository{db: db}
}

func (r *foodRepository) Create(food *model.Food) error {
	return r.db.Create(food).Error
}

func (r *foodRepository) GetByID(id string) (*model.Food, error) {
	var food model.Food
	if err := r.db.Preload("FoodPartner").Where("id = ?", id).First(&food).Error; err != nil {
		return nil, err
	}
	return &food, nil
}

func (r *foodRepository) ListAll() ([]model.Food, error) {
	var foods []model.Food
	err := r.db.Preload("FoodPartner").Order("created_at DESC").Find(&foods).Error
	return foods, err
}

func (r *foodRepository) ListByPartner(partnerID string) ([]model.Food, error) {
	var foods []model.Food
	err := r.db.Where("food_partner_id = ?", partnerID).Order("created_at DESC").Find(&foods).Error
	return foods, err
}

type LikeRepository interface {
	// Toggle 已点赞则取消，否则点赞。返回操作后的状态与点赞总数
	Toggle(userID, foodID string) (bool, int64, error)
	Status(userID, foodID string) (bool, int64, error)
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Toggle(userID, foodID string) (bool, int64, error) {
	var liked bool
	var count int64

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing model.Like
		err := tx.Where("user_id = ? AND food_id = ?", userID, foodID).First(&existing).Error
		switch {
		case err == nil:
			// 物理删除，便于再次点赞时唯一索引不冲突
			if err := tx.Unscoped().Delete(&existing).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(&model.Like{UserID: userID, FoodID: foodID}).Error; err != nil {
				return err
			}
			liked = true
		default:
			return err
		}

		return tx.Model(&model.Like{}).Where("food_id = ?", foodID).Count(&count).Error
	})
	if err != nil {
		return false, 0, err
	}
	return liked, count, nil
}

func (r *likeRepository) Status(userID, foodID string) (bool, int64, error) {
	var count int64
	if err := r.db.Model(&model.Like{}).Where("food_id = ?", foodID).Count(&count).Error; err != nil {
		return false, 0, err
	}
	if userID == "" {
		return false, count, nil
	}

	var mine int64
	if err := r.db.Model(&model.Like{}).Where("food_id = ? AND user_id = ?", foodID, userID).Count(&mine).Error; err != nil {
		return false, 0, err
	}
	return mine > 0, count, nil
}
