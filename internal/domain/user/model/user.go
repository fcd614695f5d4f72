package model

import (
	baseModel "yumzy/pkg/model"
)

// User 用户模型
type User struct {
	baseModel.BaseModel
	FullName      string `gorm:"size:100;not null" json:"fullName"`
	Email         string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password      string `gorm:"size:255;not null" json:"-"` // 密码不返回给前端
	LoyaltyPoints int    `gorm:"not null;default:0" json:"loyaltyPoints"`
}

func (User) TableName() string {
	return "users"
}
