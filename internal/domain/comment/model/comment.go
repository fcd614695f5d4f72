package model

import (
	baseModel "yumzy/pkg/model"
)

// MaxTextLength 评论最大字符数
const MaxTextLength = 500

// Author 评论作者，只读取 users 表的展示字段
type Author struct {
	ID       string `gorm:"primaryKey" json:"id"`
	FullName string `json:"fullName"`
}

func (Author) TableName() string {
	return "users"
}

// Comment 菜品评论
type Comment struct {
	baseModel.BaseModel
	UserID string  `gorm:"type:uuid;not null" json:"userId"`
	FoodID string  `gorm:"type:uuid;not null;index" json:"foodId"`
	Text   string  `gorm:"size:500;not null" json:"text"`
	User   *Author `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Comment) TableName() string {
	return "comments"
}
