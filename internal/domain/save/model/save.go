package model

import (
	foodModel "yumzy/internal/domain/food/model"
	baseModel "yumzy/pkg/model"
)

// Save 收藏，(user_id, food_id) 唯一
type Save struct {
	baseModel.BaseModel
	UserID string          `gorm:"type:uuid;not null;uniqueIndex:idx_saves_user_food" json:"userId"`
	FoodID string          `gorm:"type:uuid;not null;uniqueIndex:idx_saves_user_food" json:"foodId"`
	Food   *foodModel.Food `gorm:"foreignKey:FoodID" json:"food,omitempty"`
}

func (Save) TableName() string {
	return "saves"
}
