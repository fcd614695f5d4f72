package model

import (
	partnerModel "yumzy/internal/domain/partner/model"
	baseModel "yumzy/pkg/model"
)

// Food 视频菜品
type Food struct {
	baseModel.BaseModel
	Name          string                    `gorm:"size:200;not null" json:"name"`
	Video         string                    `gorm:"size:1024;not null" json:"video"`
	Description   string                    `gorm:"type:text" json:"description"`
	Price         float64                   `gorm:"not null;check:price >= 0" json:"price"`
	FoodPartnerID string                    `gorm:"type:uuid;index;not null" json:"foodPartnerId"`
	FoodPartner   *partnerModel.FoodPartner `gorm:"foreignKey:FoodPartnerID" json:"foodPartner,omitempty"`
}

func (Food) TableName() string {
	return "foods"
}

// Like 点赞，(user_id, food_id) 唯一
type Like struct {
	baseModel.BaseModel
	UserID string `gorm:"type:uuid;not null;uniqueIndex:idx_likes_user_food" json:"userId"`
	FoodID string `gorm:"type:uuid;not null;uniqueIndex:idx_likes_user_food;index" json:"foodId"`
}

func (Like) TableName() string {
	return "likes"
}
