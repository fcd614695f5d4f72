package repository

import (
	"errors"
	"sync"
	"testing"
	"time"

	foodModel "yumzy/internal/domain/food/model"
	"yumzy/internal/domain/order/model"
	partnerModel "yumzy/internal/domain/partner/model"
	userModel "yumzy/internal/domain/user/model"
	"yumzy/internal/pkg/testutil"
	"yumzy/internal/pkg/worker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db      *gorm.DB
	user    *userModel.User
	partner *partnerModel.FoodPartner
	food    *foodModel.Food
}

func setup(t *testing.T, points int) fixture {
	t.Helper()
	db := testutil.NewTestDB(t,
		&userModel.User{}, &partnerModel.FoodPartner{}, &foodModel.Food{},
		&model.Order{}, &model.LoyaltyEntry{},
	)

	user := &userModel.User{FullName: "Asha", Email: "asha@example.com", Password: "h", LoyaltyPoints: points}
	require.NoError(t, db.Create(user).Error)
	partner := &partnerModel.FoodPartner{Name: "Spice Hub", ContactName: "Ravi", Phone: "1", Email: "s@example.com", Password: "h"}
	require.NoError(t, db.Create(partner).Error)
	food := &foodModel.Food{Name: "Biryani", Video: "v", Price: 200, FoodPartnerID: partner.ID}
	require.NoError(t, db.Create(food).Error)

	return fixture{db: db, user: user, partner: partner, food: food}
}

func (f fixture) newOrder(used, earned int) *model.Order {
	return &model.Order{
		FoodID:                f.food.ID,
		UserID:                f.user.ID,
		FoodPartnerID:         f.partner.ID,
		Quantity:              1,
		Address:               model.Address{Street: "1 MG Road", City: "Bengaluru", State: "KA", Pincode: "560001", Phone: "9"},
		PaymentOption:         model.PaymentUPI,
		LoyaltyPointsUsed:     used,
		BaseAmount:            200,
		TotalAmount:           200,
		PointsEarned:          earned,
		Status:                model.StatusPending,
		EstimatedDeliveryTime: time.Now().Add(40 * time.Minute),
	}
}

func balanceOf(t *testing.T, db *gorm.DB, userID string) int {
	t.Helper()
	var user userModel.User
	require.NoError(t, db.First(&user, "id = ?", userID).Error)
	return user.LoyaltyPoints
}

func TestCreateWithLoyalty(t *testing.T) {
	t.Run("Deducts used and credits earned", func(t *testing.T) {
		f := setup(t, 100)
		repo := NewOrderRepository(f.db)

		balance, err := repo.CreateWithLoyalty(f.newOrder(30, 19))
		require.NoError(t, err)
		assert.Equal(t, 89, balance)
		assert.Equal(t, 89, balanceOf(t, f.db, f.user.ID))
	})

	t.Run("Insufficient balance writes nothing", func(t *testing.T) {
		f := setup(t, 10)
		repo := NewOrderRepository(f.db)

		_, err := repo.CreateWithLoyalty(f.newOrder(20, 18))
		assert.ErrorIs(t, err, ErrInsufficientPoints)
		assert.Equal(t, 10, balanceOf(t, f.db, f.user.ID))

		var count int64
		require.NoError(t, f.db.Model(&model.Order{}).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("Unknown user", func(t *testing.T) {
		f := setup(t, 0)
		repo := NewOrderRepository(f.db)
		order := f.newOrder(0, 20)
		order.UserID = "missing"

		_, err := repo.CreateWithLoyalty(order)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("Concurrent orders never overdraw", func(t *testing.T) {
		f := setup(t, 100)
		repo := NewOrderRepository(f.db)

		var (
			wg        sync.WaitGroup
			mu        sync.Mutex
			succeeded int
		)
		for i := 0; i < 5; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := repo.CreateWithLoyalty(f.newOrder(60, 0))
				if err == nil {
					mu.Lock()
					succeeded++
					mu.Unlock()
					return
				}
				assert.True(t, errors.Is(err, ErrInsufficientPoints), err)
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, succeeded)
		assert.Equal(t, 40, balanceOf(t, f.db, f.user.ID))
	})
}

func TestOrderQueries(t *testing.T) {
	f := setup(t, 0)
	repo := NewOrderRepository(f.db)

	first := f.newOrder(0, 20)
	_, err := repo.CreateWithLoyalty(first)
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	second := f.newOrder(0, 20)
	_, err = repo.CreateWithLoyalty(second)
	require.NoError(t, err)

	t.Run("GetByID preloads relations", func(t *testing.T) {
		order, err := repo.GetByID(first.ID)
		require.NoError(t, err)
		assert.Equal(t, "Biryani", order.Food.Name)
		assert.Equal(t, "Asha", order.User.FullName)
		assert.Equal(t, "Spice Hub", order.FoodPartner.Name)
		assert.Equal(t, "Bengaluru", order.Address.City)

		_, err = repo.GetByID("missing")
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("Lists are newest first", func(t *testing.T) {
		orders, err := repo.ListByUser(f.user.ID)
		require.NoError(t, err)
		require.Len(t, orders, 2)
		assert.Equal(t, second.ID, orders[0].ID)
		assert.NotNil(t, orders[0].FoodPartner)

		orders, err = repo.ListByPartner(f.partner.ID)
		require.NoError(t, err)
		require.Len(t, orders, 2)
		assert.Equal(t, second.ID, orders[0].ID)
		assert.Equal(t, "asha@example.com", orders[0].User.Email)

		orders, err = repo.ListByPartner("other")
		require.NoError(t, err)
		assert.Empty(t, orders)
	})

	t.Run("UpdateStatus", func(t *testing.T) {
		require.NoError(t, repo.UpdateStatus(first.ID, model.StatusOutForDelivery))
		order, err := repo.GetByID(first.ID)
		require.NoError(t, err)
		assert.Equal(t, model.StatusOutForDelivery, order.Status)

		assert.ErrorIs(t, repo.UpdateStatus("missing", model.StatusDelivered), gorm.ErrRecordNotFound)
	})
}

func TestLoyaltyRepository(t *testing.T) {
	f := setup(t, 0)
	repo := NewLoyaltyRepository(f.db)

	task := worker.LedgerTask{UserID: f.user.ID, OrderID: "o1", Kind: model.LedgerEarned, Points: 12}
	require.NoError(t, repo.WriteLedgerEntry(task))
	// 重试重复写入被忽略
	require.NoError(t, repo.WriteLedgerEntry(task))
	time.Sleep(5 * time.Millisecond)
	require.NoError(t, repo.WriteLedgerEntry(worker.LedgerTask{UserID: f.user.ID, OrderID: "o1", Kind: model.LedgerRedeemed, Points: 30}))

	entries, err := repo.ListByUser(f.user.ID, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, model.LedgerRedeemed, entries[0].Kind)
	assert.Equal(t, 30, entries[0].Points)

	entries, err = repo.ListByUser(f.user.ID, 1)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
