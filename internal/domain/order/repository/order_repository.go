package repository

import (
	"errors"

	"yumzy/internal/domain/order/model"
	userModel "yumzy/internal/domain/user/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrInsufficientPoints 扣减积分时余额已不足（并发下单被其他请求先扣）
var ErrInsufficientPoints = errors.New("insufficient loyalty points")

type OrderRepository interface {
	// CreateWithLoyalty 同一事务内扣减/累计积分并写入订单，返回操作后的积分余额
	CreateWithLoyalty(order *model.Order) (int, error)
	GetByID(id string) (*model.Order, error)
	// ListByUser 按下单时间倒序，附带菜品与商家
	ListByUser(userID string) ([]model.Order, error)
	// ListByPartner 按下单时间倒序，附带菜品与下单用户
	ListByPartner(partnerID string) ([]model.Order, error)
	UpdateStatus(id string, status model.OrderStatus) error
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) CreateWithLoyalty(order *model.Order) (int, error) {
	var balance int
	err := r.db.Transaction(func(tx *gorm.DB) error {
		// 条件更新：余额不足时不命中任何行，避免并发超扣
		result := tx.Model(&userModel.User{}).
			Where("id = ? AND loyalty_points >= ?", order.UserID, order.LoyaltyPointsUsed).
			Update("loyalty_points", gorm.Expr("loyalty_points - ? + ?", order.LoyaltyPointsUsed, order.PointsEarned))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&userModel.User{}).Where("id = ?", order.UserID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return gorm.ErrRecordNotFound
			}
			return ErrInsufficientPoints
		}

		if err := tx.Omit(clause.Associations).Create(order).Error; err != nil {
			return err
		}

		var user userModel.User
		if err := tx.Select("loyalty_points").Where("id = ?", order.UserID).First(&user).Error; err != nil {
			return err
		}
		balance = user.LoyaltyPoints
		return nil
	})
	if err != nil {
		return 0, err
	}
	return balance, nil
}

func (r *orderRepository) GetByID(id string) (*model.Order, error) {
	var order model.Order
	err := r.db.Preload("Food").Preload("User").Preload("FoodPartner").
		Where("id = ?", id).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) ListByUser(userID string) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.Preload("Food").Preload("FoodPartner").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) ListByPartner(partnerID string) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.Preload("Food").Preload("User").
		Where("food_partner_id = ?", partnerID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) UpdateStatus(id string, status model.OrderStatus) error {
	result := r.db.Model(&model.Order{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
