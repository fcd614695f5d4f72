package pricing

import "strings"

// CouponKind 优惠券类型
type CouponKind string

const (
	CouponPercentage CouponKind = "percentage"
	CouponFlat       CouponKind = "flat"
)

// Coupon 固定优惠券定义
type Coupon struct {
	Code  string     `json:"code"`
	Kind  CouponKind `json:"kind"`
	Value float64    `json:"value"`
}

// Config 计价配置，构造 Engine 时传入，之后不再修改
type Config struct {
	coupons        map[string]Coupon
	accrualRate    float64 // 每 1 元实付获得的积分
	redemptionRate float64 // 每 1 积分抵扣的金额
}

// NewConfig 创建计价配置，优惠码统一转为大写
func NewConfig(coupons []Coupon, accrualRate, redemptionRate float64) Config {
	table := make(map[string]Coupon, len(coupons))
	for _, c := range coupons {
		c.Code = strings.ToUpper(c.Code)
		table[c.Code] = c
	}
	return Config{
		coupons:        table,
		accrualRate:    accrualRate,
		redemptionRate: redemptionRate,
	}
}

// DefaultConfig 线上使用的固定优惠券与积分比例
func DefaultConfig() Config {
	return NewConfig([]Coupon{
		{Code: "FIRST10", Kind: CouponPercentage, Value: 10},
		{Code: "SAVE50", Kind: CouponFlat, Value: 50},
		{Code: "WELCOME20", Kind: CouponPercentage, Value: 20},
	}, 0.1, 0.1)
}

// AccrualRate 积分获取比例
func (c Config) AccrualRate() float64 { return c.accrualRate }

// RedemptionRate 积分抵扣比例
func (c Config) RedemptionRate() float64 { return c.redemptionRate }

// Coupons 返回优惠券列表副本
func (c Config) Coupons() []Coupon {
	out := make([]Coupon, 0, len(c.coupons))
	for _, coupon := range c.coupons {
		out = append(out, coupon)
	}
	return out
}
