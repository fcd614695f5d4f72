package repository

import (
	"yumzy/internal/domain/partner/model"

	"gorm.io/gorm"
)

type PartnerRepository interface {
	Create(partner *model.FoodPartner) error
	GetByID(id string) (*model.FoodPartner, error)
	GetByEmail(email string) (*model.FoodPartner, error)
	GetByIDs(ids []string) ([]model.FoodPartner, error)
	UpdateProfile(id string, updates map[string]interface{}) error
}

type partnerRepository struct {
	db *gorm.DB
}

func NewPartnerRepository(db *gorm.DB) PartnerRepository {
	return &partnerRepository{db: db}
}

func (r *partnerRepository) Create(partner *model.FoodPartner) error {
	return r.db.Create(partner).Error
}

func (r *partnerRepository) GetByID(id string) (*model.FoodPartner, error) {
	var partner model.FoodPartner
	if err := r.db.Where("id = ?", id).First(&partner).Error; err != nil {
		return nil, err
	}
	return &partner, nil
}

func (r *partnerRepository) GetByEmail(email string) (*model.FoodPartner, error) {
	var partner model.FoodPartner
	if err := r.db.Where("email = ?", email).First(&partner).Error; err != nil {
		return nil, err
	}
	return &partner, nil
}

// GetByIDs 批量查询，用于信息流中嵌入商家信息
func (r *partnerRepository) GetByIDs(ids []string) ([]model.FoodPartner, error) {
	var partners []model.FoodPartner
	if len(ids) == 0 {
		return partners, nil
	}
	if err := r.db.Where("id IN ?", ids).Find(&partners).Error; err != nil {
		return nil, err
	}
	return partners, nil
}

// UpdateProfile 按列更新，返回 gorm.ErrRecordNotFound 表示商家不存在
func (r *partnerRepository) UpdateProfile(id string, updates map[string]interface{}) error {
	result := r.db.Model(&model.FoodPartner{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
