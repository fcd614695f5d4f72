package model

import (
	"time"

	foodModel "yumzy/internal/domain/food/model"
	partnerModel "yumzy/internal/domain/partner/model"
	baseModel "yumzy/pkg/model"
)

// OrderStatus 订单状态，由商家后台或用户确认收货驱动，不校验流转顺序
type OrderStatus string

const (
	StatusPending        OrderStatus = "Pending"
	StatusConfirmed      OrderStatus = "Confirmed"
	StatusPreparing      OrderStatus = "Preparing"
	StatusOutForDelivery OrderStatus = "Out for Delivery"
	StatusDelivered      OrderStatus = "Delivered"
	StatusCancelled      OrderStatus = "Cancelled"
)

var validStatuses = map[OrderStatus]struct{}{
	StatusPending:        {},
	StatusConfirmed:      {},
	StatusPreparing:      {},
	StatusOutForDelivery: {},
	StatusDelivered:      {},
	StatusCancelled:      {},
}

// Valid 是否为合法状态
func (s OrderStatus) Valid() bool {
	_, ok := validStatuses[s]
	return ok
}

// PaymentOption 支付方式
type PaymentOption string

const (
	PaymentCOD    PaymentOption = "COD"
	PaymentCard   PaymentOption = "Card"
	PaymentUPI    PaymentOption = "UPI"
	PaymentWallet PaymentOption = "Wallet"
)

func (p PaymentOption) Valid() bool {
	switch p {
	case PaymentCOD, PaymentCard, PaymentUPI, PaymentWallet:
		return true
	}
	return false
}

// Address 收货地址
type Address struct {
	Street  string `gorm:"size:255" json:"street"`
	City    string `gorm:"size:100" json:"city"`
	State   string `gorm:"size:100" json:"state"`
	Pincode string `gorm:"size:20" json:"pincode"`
	Phone   string `gorm:"size:30" json:"phone"`
}

// Complete 所有字段均已填写
func (a Address) Complete() bool {
	return a.Street != "" && a.City != "" && a.State != "" && a.Pincode != "" && a.Phone != ""
}

// Customer 下单用户，只读取 users 表的展示字段
type Customer struct {
	ID       string `gorm:"primaryKey" json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

func (Customer) TableName() string {
	return "users"
}

// Order 订单。金额字段在下单时由计价结果写入，之后不再重算
type Order struct {
	baseModel.BaseModel
	FoodID                string        `gorm:"type:uuid;not null" json:"foodId"`
	UserID                string        `gorm:"type:uuid;not null;index" json:"userId"`
	FoodPartnerID         string        `gorm:"type:uuid;not null;index" json:"foodPartnerId"`
	Quantity              int           `gorm:"not null;default:1" json:"quantity"`
	Address               Address       `gorm:"embedded;embeddedPrefix:address_" json:"address"`
	PaymentOption         PaymentOption `gorm:"size:20;not null;default:COD" json:"paymentOption"`
	CouponCode            *string       `gorm:"size:50" json:"couponCode"`
	LoyaltyPointsUsed     int           `gorm:"not null;default:0" json:"loyaltyPointsUsed"`
	BaseAmount            float64       `gorm:"not null" json:"baseAmount"`
	CouponDiscount        float64       `gorm:"not null;default:0" json:"couponDiscount"`
	LoyaltyDiscount       float64       `gorm:"not null;default:0" json:"loyaltyDiscount"`
	DiscountAmount        float64       `gorm:"not null;default:0" json:"discountAmount"`
	TotalAmount           float64       `gorm:"not null" json:"totalAmount"`
	PointsEarned          int           `gorm:"not null;default:0" json:"pointsEarned"`
	Status                OrderStatus   `gorm:"size:30;not null;default:Pending" json:"status"`
	EstimatedDeliveryTime time.Time     `json:"estimatedDeliveryTime"`

	Food        *foodModel.Food           `gorm:"foreignKey:FoodID" json:"foodItem,omitempty"`
	User        *Customer                 `gorm:"foreignKey:UserID" json:"user,omitempty"`
	FoodPartner *partnerModel.FoodPartner `gorm:"foreignKey:FoodPartnerID" json:"foodPartner,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

// 积分流水类型
const (
	LedgerEarned   = "earned"
	LedgerRedeemed = "redeemed"
)

// LoyaltyEntry 积分流水，(order_id, kind) 唯一，重复写入被忽略
type LoyaltyEntry struct {
	baseModel.BaseModel
	UserID  string `gorm:"type:uuid;not null;index" json:"userId"`
	OrderID string `gorm:"type:uuid;not null;uniqueIndex:idx_loyalty_entries_order_kind" json:"orderId"`
	Kind    string `gorm:"size:20;not null;uniqueIndex:idx_loyalty_entries_order_kind" json:"kind"`
	Points  int    `gorm:"not null" json:"points"`
}

func (LoyaltyEntry) TableName() string {
	return "loyalty_entries"
}
