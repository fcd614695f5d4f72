package pricing

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

const delta = 1e-9

func TestCouponDiscount(t *testing.T) {
	e := NewEngine(DefaultConfig())

	t.Run("Absent code gives no discount", func(t *testing.T) {
		for _, base := range []float64{0, 1, 99.5, 1000} {
			assert.Equal(t, 0.0, e.CouponDiscount("", base))
		}
	})

	t.Run("Unknown code gives no discount", func(t *testing.T) {
		assert.Equal(t, 0.0, e.CouponDiscount("FREEFOOD", 200))
		assert.Equal(t, 0.0, e.CouponDiscount("freefood", 200))
	})

	t.Run("Codes are case-insensitive", func(t *testing.T) {
		for _, code := range []string{"first10", "First10", "FIRST10"} {
			assert.InDelta(t, 20.0, e.CouponDiscount(code, 200), delta, code)
		}
	})

	t.Run("Percentage coupons are linear", func(t *testing.T) {
		assert.InDelta(t, 20.0, e.CouponDiscount("FIRST10", 200), delta)
		assert.InDelta(t, 30.0, e.CouponDiscount("WELCOME20", 150), delta)
	})

	t.Run("Flat coupon never exceeds base amount", func(t *testing.T) {
		assert.Equal(t, 30.0, e.CouponDiscount("SAVE50", 30))
		assert.Equal(t, 50.0, e.CouponDiscount("SAVE50", 120))
		assert.Equal(t, 0.0, e.CouponDiscount("SAVE50", 0))
	})
}

func TestLoyaltyDiscount(t *testing.T) {
	e := NewEngine(DefaultConfig())

	assert.Equal(t, 0.0, e.LoyaltyDiscount(0))
	assert.InDelta(t, 2.0, e.LoyaltyDiscount(20), delta)
	assert.InDelta(t, 100.0, e.LoyaltyDiscount(1000), delta)
}

func TestPriceOrder(t *testing.T) {
	e := NewEngine(DefaultConfig())

	t.Run("Discounts beyond base amount floor final at zero", func(t *testing.T) {
		r := e.PriceOrder(Request{UnitPrice: 10, Quantity: 1, CouponCode: "SAVE50", PointsRequested: 1000})

		assert.InDelta(t, 10.0, r.BaseAmount, delta)
		assert.InDelta(t, 10.0, r.CouponDiscount, delta)
		assert.InDelta(t, 100.0, r.LoyaltyDiscount, delta)
		assert.InDelta(t, 110.0, r.TotalDiscount, delta)
		assert.Equal(t, 0.0, r.FinalAmount)
		assert.Equal(t, 0, r.PointsEarned)
	})

	t.Run("No discounts earns on full amount", func(t *testing.T) {
		r := e.PriceOrder(Request{UnitPrice: 100, Quantity: 1})

		assert.InDelta(t, 100.0, r.BaseAmount, delta)
		assert.InDelta(t, 100.0, r.FinalAmount, delta)
		assert.Equal(t, 10, r.PointsEarned)
	})

	t.Run("Percentage coupon with quantity", func(t *testing.T) {
		r := e.PriceOrder(Request{UnitPrice: 299, Quantity: 2, CouponCode: "FIRST10"})

		assert.InDelta(t, 598.0, r.BaseAmount, delta)
		assert.InDelta(t, 59.8, r.CouponDiscount, delta)
		assert.Equal(t, 0.0, r.LoyaltyDiscount)
		assert.InDelta(t, 538.2, r.FinalAmount, delta)
		assert.Equal(t, 53, r.PointsEarned)
	})

	t.Run("Points redemption without coupon", func(t *testing.T) {
		r := e.PriceOrder(Request{UnitPrice: 50, Quantity: 3, PointsRequested: 20})

		assert.InDelta(t, 150.0, r.BaseAmount, delta)
		assert.Equal(t, 0.0, r.CouponDiscount)
		assert.InDelta(t, 2.0, r.LoyaltyDiscount, delta)
		assert.InDelta(t, 148.0, r.FinalAmount, delta)
		assert.Equal(t, 14, r.PointsEarned)
	})

	t.Run("Same input gives same output", func(t *testing.T) {
		req := Request{UnitPrice: 75.5, Quantity: 4, CouponCode: "welcome20", PointsRequested: 35}
		assert.Equal(t, e.PriceOrder(req), e.PriceOrder(req))
	})

	t.Run("Concurrent calls are independent", func(t *testing.T) {
		req := Request{UnitPrice: 299, Quantity: 2, CouponCode: "FIRST10"}
		want := e.PriceOrder(req)

		var wg sync.WaitGroup
		results := make([]Result, 50)
		for i := range results {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i] = e.PriceOrder(req)
			}(i)
		}
		wg.Wait()

		for _, r := range results {
			assert.Equal(t, want, r)
		}
	})
}

func TestValidateCoupon(t *testing.T) {
	t.Run("Known coupon returns discount", func(t *testing.T) {
		e := NewEngine(DefaultConfig())
		assert.InDelta(t, 50.0, e.ValidateCoupon("save50", 500), delta)
	})

	t.Run("Zero-value coupon looks the same as an unknown one", func(t *testing.T) {
		cfg := NewConfig([]Coupon{{Code: "NOTHING", Kind: CouponFlat, Value: 0}}, 0.1, 0.1)
		e := NewEngine(cfg)

		assert.Equal(t, 0.0, e.ValidateCoupon("NOTHING", 100))
		assert.Equal(t, 0.0, e.ValidateCoupon("MISSING", 100))

		_, known := e.LookupCoupon("nothing")
		assert.True(t, known)
		_, known = e.LookupCoupon("missing")
		assert.False(t, known)
	})
}

func TestCustomConfig(t *testing.T) {
	cfg := NewConfig([]Coupon{{Code: "half", Kind: CouponPercentage, Value: 50}}, 1, 0.5)
	e := NewEngine(cfg)

	r := e.PriceOrder(Request{UnitPrice: 40, Quantity: 1, CouponCode: "HALF", PointsRequested: 10})

	assert.InDelta(t, 20.0, r.CouponDiscount, delta)
	assert.InDelta(t, 5.0, r.LoyaltyDiscount, delta)
	assert.InDelta(t, 15.0, r.FinalAmount, delta)
	assert.Equal(t, 15, r.PointsEarned)

	// 默认配置不受影响
	assert.Equal(t, 0.0, NewEngine(DefaultConfig()).CouponDiscount("HALF", 40))
	assert.Len(t, DefaultConfig().Coupons(), 3)
}
