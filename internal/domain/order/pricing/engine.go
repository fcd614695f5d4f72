// Package pricing 订单计价：优惠券折扣、积分抵扣与积分累计。
// Engine 是纯计算，无 I/O、无可变状态，可并发调用。
package pricing

import (
	"math"
	"strings"
)

// Request 计价请求。PointsRequested 不得超过用户余额，由调用方校验
type Request struct {
	UnitPrice       float64
	Quantity        int
	CouponCode      string // 空字符串表示未使用优惠券
	PointsRequested int
}

// Result 计价结果，创建订单时复制到订单上
type Result struct {
	BaseAmount      float64 `json:"baseAmount"`
	CouponDiscount  float64 `json:"couponDiscount"`
	LoyaltyDiscount float64 `json:"loyaltyDiscount"`
	TotalDiscount   float64 `json:"totalDiscount"`
	FinalAmount     float64 `json:"finalAmount"`
	PointsEarned    int     `json:"pointsEarned"`
}

type Engine struct {
	cfg Config
}

func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// LookupCoupon 按优惠码查询定义（不区分大小写）
func (e *Engine) LookupCoupon(code string) (Coupon, bool) {
	if code == "" {
		return Coupon{}, false
	}
	c, ok := e.cfg.coupons[strings.ToUpper(code)]
	return c, ok
}

// CouponDiscount 计算优惠券折扣，未知或空优惠码返回 0
func (e *Engine) CouponDiscount(code string, baseAmount float64) float64 {
	coupon, ok := e.LookupCoupon(code)
	if !ok {
		return 0
	}

	switch coupon.Kind {
	case CouponPercentage:
		return baseAmount * coupon.Value / 100
	case CouponFlat:
		// 满减不超过原价
		return math.Min(coupon.Value, baseAmount)
	}
	return 0
}

// LoyaltyDiscount 积分抵扣金额，不检查余额
func (e *Engine) LoyaltyDiscount(points int) float64 {
	return float64(points) * e.cfg.redemptionRate
}

// PriceOrder 计算订单金额
func (e *Engine) PriceOrder(req Request) Result {
	base := req.UnitPrice * float64(req.Quantity)
	couponDiscount := e.CouponDiscount(req.CouponCode, base)
	loyaltyDiscount := e.LoyaltyDiscount(req.PointsRequested)

	// 两项折扣先相加再兜底为 0，超出部分不退还
	total := couponDiscount + loyaltyDiscount
	final := math.Max(0, base-total)

	return Result{
		BaseAmount:      base,
		CouponDiscount:  couponDiscount,
		LoyaltyDiscount: loyaltyDiscount,
		TotalDiscount:   total,
		FinalAmount:     final,
		PointsEarned:    int(math.Floor(final * e.cfg.accrualRate)),
	}
}

// ValidateCoupon 优惠券预览。返回 0 时调用方提示优惠码无效，
// 与面值为 0 的优惠券无法区分，需要区分时使用 LookupCoupon
func (e *Engine) ValidateCoupon(code string, amount float64) float64 {
	return e.CouponDiscount(code, amount)
}
