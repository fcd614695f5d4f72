package service

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	foodRepo "yumzy/internal/domain/food/repository"
	"yumzy/internal/domain/order/model"
	"yumzy/internal/domain/order/pricing"
	"yumzy/internal/domain/order/repository"
	userRepo "yumzy/internal/domain/user/repository"
	"yumzy/internal/pkg/push"
	"yumzy/internal/pkg/worker"
	"yumzy/pkg/logger"
	"yumzy/pkg/metrics"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrMissingFields      = errors.New("missing required fields")
	ErrInvalidPoints      = errors.New("loyalty points must not be negative")
	ErrFoodNotFound       = errors.New("food item not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrInsufficientPoints = errors.New("insufficient loyalty points")
	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderForbidden     = errors.New("order belongs to another account")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrCouponRequired     = errors.New("coupon code is required")
	ErrInvalidCoupon      = errors.New("invalid coupon code")
)

const (
	// 预计送达时间 = 下单时间 + [35, 45) 分钟
	deliveryBase   = 35 * time.Minute
	deliverySpread = 10 * time.Minute
	// 积分页展示的流水条数
	recentLedgerLimit = 20
)

// LedgerQueue 积分流水异步队列，由 worker.WorkerPool 实现
type LedgerQueue interface {
	AddTask(task worker.LedgerTask)
}

type CreateOrderParams struct {
	FoodID            string
	Quantity          int
	Address           model.Address
	PaymentOption     string
	CouponCode        string
	LoyaltyPointsUsed int
}

// PlacedOrder 下单结果
type PlacedOrder struct {
	Order                *model.Order `json:"order"`
	PointsEarned         int          `json:"pointsEarned"`
	CurrentLoyaltyPoints int          `json:"currentLoyaltyPoints"`
}

// CouponPreview 优惠券预览结果
type CouponPreview struct {
	CouponCode string  `json:"couponCode"`
	Discount   float64 `json:"discount"`
}

// LoyaltySummary 积分余额与最近流水
type LoyaltySummary struct {
	LoyaltyPoints int                  `json:"loyaltyPoints"`
	Entries       []model.LoyaltyEntry `json:"entries"`
}

type OrderService interface {
	CreateOrder(userID string, params CreateOrderParams) (*PlacedOrder, error)
	GetOrder(userID, orderID string) (*model.Order, error)
	UserOrders(userID string) ([]model.Order, error)
	PartnerOrders(partnerID string) ([]model.Order, error)
	// UpdateStatus 商家修改自己订单的状态，不校验流转顺序
	UpdateStatus(partnerID, orderID, status string) (*model.Order, error)
	ConfirmReceipt(userID, orderID string) (*model.Order, error)
	ValidateCoupon(code string, amount float64) (*CouponPreview, error)
	Loyalty(userID string) (*LoyaltySummary, error)
}

type orderService struct {
	orders   repository.OrderRepository
	ledger   repository.LoyaltyRepository
	foods    foodRepo.FoodRepository
	users    userRepo.UserRepository
	engine   *pricing.Engine
	queue    LedgerQueue
	notifier push.PushService
	metrics  *metrics.MetricsCollector

	now    func() time.Time
	jitter func() time.Duration
}

func NewOrderService(
	orders repository.OrderRepository,
	ledger repository.LoyaltyRepository,
	foods foodRepo.FoodRepository,
	users userRepo.UserRepository,
	engine *pricing.Engine,
	queue LedgerQueue,
	notifier push.PushService,
	collector *metrics.MetricsCollector,
) OrderService {
	return &orderService{
		orders:   orders,
		ledger:   ledger,
		foods:    foods,
		users:    users,
		engine:   engine,
		queue:    queue,
		notifier: notifier,
		metrics:  collector,
		now:      time.Now,
		jitter: func() time.Duration {
			return rand.N(deliverySpread)
		},
	}
}

func validateOrder(p CreateOrderParams) error {
	if p.FoodID == "" || p.Quantity < 1 || !p.Address.Complete() {
		return ErrMissingFields
	}
	if !model.PaymentOption(p.PaymentOption).Valid() {
		return ErrMissingFields
	}
	if p.LoyaltyPointsUsed < 0 {
		return ErrInvalidPoints
	}
	return nil
}

func (s *orderService) CreateOrder(userID string, p CreateOrderParams) (*PlacedOrder, error) {
	if err := validateOrder(p); err != nil {
		return nil, err
	}

	food, err := s.foods.GetByID(p.FoodID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFoodNotFound
		}
		return nil, fmt.Errorf("get food: %w", err)
	}

	user, err := s.users.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	// 计价前校验余额，计价引擎本身不检查
	if p.LoyaltyPointsUsed > user.LoyaltyPoints {
		return nil, ErrInsufficientPoints
	}

	code := normalizeCoupon(p.CouponCode)
	priced := s.engine.PriceOrder(pricing.Request{
		UnitPrice:       food.Price,
		Quantity:        p.Quantity,
		CouponCode:      code,
		PointsRequested: p.LoyaltyPointsUsed,
	})

	var coupon *string
	if code != "" {
		coupon = &code
	}

	order := &model.Order{
		FoodID:                food.ID,
		UserID:                userID,
		FoodPartnerID:         food.FoodPartnerID,
		Quantity:              p.Quantity,
		Address:               p.Address,
		PaymentOption:         model.PaymentOption(p.PaymentOption),
		CouponCode:            coupon,
		LoyaltyPointsUsed:     p.LoyaltyPointsUsed,
		BaseAmount:            priced.BaseAmount,
		CouponDiscount:        priced.CouponDiscount,
		LoyaltyDiscount:       priced.LoyaltyDiscount,
		DiscountAmount:        priced.TotalDiscount,
		TotalAmount:           priced.FinalAmount,
		PointsEarned:          priced.PointsEarned,
		Status:                model.StatusPending,
		EstimatedDeliveryTime: s.now().Add(deliveryBase + s.jitter()),
	}

	balance, err := s.orders.CreateWithLoyalty(order)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrInsufficientPoints):
			return nil, ErrInsufficientPoints
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("create order: %w", err)
	}
	order.Food = food

	s.recordLedger(order)
	s.metrics.RecordOrder(p.PaymentOption, priced.CouponDiscount > 0, priced.FinalAmount, priced.TotalDiscount, p.LoyaltyPointsUsed, priced.PointsEarned)
	go s.notify(order.FoodPartnerID, "New order received",
		fmt.Sprintf("%d x %s, total ₹%.2f", order.Quantity, food.Name, order.TotalAmount),
		map[string]string{"orderId": order.ID})

	logger.Log.Info("Order placed",
		zap.String("order_id", order.ID),
		zap.String("user_id", userID),
		zap.Float64("total", order.TotalAmount),
		zap.Int("points_used", order.LoyaltyPointsUsed),
		zap.Int("points_earned", order.PointsEarned),
	)

	return &PlacedOrder{
		Order:                order,
		PointsEarned:         priced.PointsEarned,
		CurrentLoyaltyPoints: balance,
	}, nil
}

// recordLedger 余额已在事务中更新，流水异步补写
func (s *orderService) recordLedger(order *model.Order) {
	if order.LoyaltyPointsUsed > 0 {
		s.queue.AddTask(worker.LedgerTask{
			UserID:  order.UserID,
			OrderID: order.ID,
			Kind:    model.LedgerRedeemed,
			Points:  order.LoyaltyPointsUsed,
		})
	}
	if order.PointsEarned > 0 {
		s.queue.AddTask(worker.LedgerTask{
			UserID:  order.UserID,
			OrderID: order.ID,
			Kind:    model.LedgerEarned,
			Points:  order.PointsEarned,
		})
	}
}

func (s *orderService) notify(accountID, title, body string, ext map[string]string) {
	if err := s.notifier.PushToAccount(accountID, title, body, ext); err != nil {
		logger.Log.Warn("Push notification failed", zap.String("account_id", accountID), zap.Error(err))
	}
}

func (s *orderService) getOrder(orderID string) (*model.Order, error) {
	order, err := s.orders.GetByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return order, nil
}

func (s *orderService) GetOrder(userID, orderID string) (*model.Order, error) {
	order, err := s.getOrder(orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, ErrOrderForbidden
	}
	return order, nil
}

func (s *orderService) UserOrders(userID string) ([]model.Order, error) {
	orders, err := s.orders.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("list user orders: %w", err)
	}
	return orders, nil
}

func (s *orderService) PartnerOrders(partnerID string) ([]model.Order, error) {
	orders, err := s.orders.ListByPartner(partnerID)
	if err != nil {
		return nil, fmt.Errorf("list partner orders: %w", err)
	}
	return orders, nil
}

func (s *orderService) setStatus(order *model.Order, status model.OrderStatus) (*model.Order, error) {
	if err := s.orders.UpdateStatus(order.ID, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("update order status: %w", err)
	}
	order.Status = status
	s.metrics.RecordStatusChange(string(status))
	return order, nil
}

func (s *orderService) UpdateStatus(partnerID, orderID, status string) (*model.Order, error) {
	next := model.OrderStatus(status)
	if !next.Valid() {
		return nil, ErrInvalidStatus
	}

	order, err := s.getOrder(orderID)
	if err != nil {
		return nil, err
	}
	if order.FoodPartnerID != partnerID {
		return nil, ErrOrderForbidden
	}

	order, err = s.setStatus(order, next)
	if err != nil {
		return nil, err
	}

	go s.notify(order.UserID, "Order update",
		fmt.Sprintf("Your order is now %s", next),
		map[string]string{"orderId": order.ID, "status": status})
	return order, nil
}

func (s *orderService) ConfirmReceipt(userID, orderID string) (*model.Order, error) {
	order, err := s.GetOrder(userID, orderID)
	if err != nil {
		return nil, err
	}
	return s.setStatus(order, model.StatusDelivered)
}

// ValidateCoupon 面值为 0 的优惠券同样视为无效
func (s *orderService) ValidateCoupon(code string, amount float64) (*CouponPreview, error) {
	code = normalizeCoupon(code)
	if code == "" {
		return nil, ErrCouponRequired
	}

	discount := s.engine.ValidateCoupon(code, amount)
	s.metrics.RecordCouponCheck(discount > 0)
	if discount == 0 {
		return nil, ErrInvalidCoupon
	}
	return &CouponPreview{CouponCode: code, Discount: discount}, nil
}

// normalizeCoupon 预览与下单共用同一规范化结果
func normalizeCoupon(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (s *orderService) Loyalty(userID string) (*LoyaltySummary, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	entries, err := s.ledger.ListByUser(userID, recentLedgerLimit)
	if err != nil {
		return nil, fmt.Errorf("list loyalty entries: %w", err)
	}
	return &LoyaltySummary{LoyaltyPoints: user.LoyaltyPoints, Entries: entries}, nil
}
