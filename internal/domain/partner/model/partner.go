package model

import (
	baseModel "yumzy/pkg/model"
)

// Location 门店位置
type Location struct {
	Lat     *float64 `gorm:"column:lat" json:"lat"`
	Lng     *float64 `gorm:"column:lng" json:"lng"`
	Address string   `gorm:"column:address;size:255" json:"address"`
}

// FoodPartner 商家（餐厅）
type FoodPartner struct {
	baseModel.BaseModel
	Name        string   `gorm:"size:100;not null" json:"name"`
	ContactName string   `gorm:"size:100;not null" json:"contactName"`
	Phone       string   `gorm:"size:30;not null" json:"phone"`
	Email       string   `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password    string   `gorm:"size:255;not null" json:"-"`
	Location    Location `gorm:"embedded;embeddedPrefix:location_" json:"location"`
	Logo        *string  `gorm:"size:512" json:"logo"`
}

func (FoodPartner) TableName() string {
	return "food_partners"
}
