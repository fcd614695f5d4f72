package service

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"

	"yumzy/internal/domain/food/model"
	partnerModel "yumzy/internal/domain/partner/model"
	"yumzy/pkg/cache"
	"yumzy/pkg/metrics"
	baseModel "yumzy/pkg/model"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type MockFoodRepository struct {
	mock.Mock
}

func (m *MockFoodRepository) Create(food *model.Food) error {
	args := m.Called(food)
	return args.Error(0)
}

func (m *MockFoodRepository) GetByID(id string) (*model.Food, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Food), args.Error(1)
}

func (m *MockFoodRepository) ListAll() ([]model.Food, error) {
	args := m.Called()
	return args.Get(0).([]model.Food), args.Error(1)
}

func (m *MockFoodRepository) ListByPartner(partnerID string) ([]model.Food, error) {
	args := m.Called(partnerID)
	return args.Get(0).([]model.Food), args.Error(1)
}

type MockLikeRepository struct {
	mock.Mock
}

func (m *MockLikeRepository) Toggle(userID, foodID string) (bool, int64, error) {
	args := m.Called(userID, foodID)
	return args.Bool(0), args.Get(1).(int64), args.Error(2)
}

func (m *MockLikeRepository) Status(userID, foodID string) (bool, int64, error) {
	args := m.Called(userID, foodID)
	return args.Bool(0), args.Get(1).(int64), args.Error(2)
}

type MockPartnerRepository struct {
	mock.Mock
}

func (m *MockPartnerRepository) Create(partner *partnerModel.FoodPartner) error {
	return m.Called(partner).Error(0)
}

func (m *MockPartnerRepository) GetByID(id string) (*partnerModel.FoodPartner, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partnerModel.FoodPartner), args.Error(1)
}

func (m *MockPartnerRepository) GetByEmail(email string) (*partnerModel.FoodPartner, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partnerModel.FoodPartner), args.Error(1)
}

func (m *MockPartnerRepository) GetByIDs(ids []string) ([]partnerModel.FoodPartner, error) {
	args := m.Called(ids)
	return args.Get(0).([]partnerModel.FoodPartner), args.Error(1)
}

func (m *MockPartnerRepository) UpdateProfile(id string, updates map[string]interface{}) error {
	return m.Called(id, updates).Error(0)
}

type fakeUploader struct {
	folder string
	err    error
}

func (f *fakeUploader) UploadFile(file *multipart.FileHeader, folder string) (string, error) {
	f.folder = folder
	if f.err != nil {
		return "", f.err
	}
	return "https://cdn.example.com/" + folder + "/" + file.Filename, nil
}

type fixture struct {
	foods    *MockFoodRepository
	likes    *MockLikeRepository
	partners *MockPartnerRepository
	cache    *cache.MemoryCache
	uploader *fakeUploader
	service  FoodService
}

func newFixture() *fixture {
	f := &fixture{
		foods:    new(MockFoodRepository),
		likes:    new(MockLikeRepository),
		partners: new(MockPartnerRepository),
		cache:    cache.NewMemoryCache(),
		uploader: &fakeUploader{},
	}
	f.service = NewFoodService(f.foods, f.likes, f.partners, f.cache, f.uploader,
		metrics.NewMetricsCollector(prometheus.NewRegistry()))
	return f
}

func TestCreateFood(t *testing.T) {
	ctx := context.Background()

	t.Run("Uploads video and invalidates feed", func(t *testing.T) {
		f := newFixture()
		require.NoError(t, f.cache.Set(ctx, feedCacheKey, []model.Food{{Name: "stale"}}, feedCacheTTL))

		f.foods.On("Create", mock.MatchedBy(func(food *model.Food) bool {
			return food.Name == "Paneer Tikka" && food.FoodPartnerID == "partner-1" &&
				food.Video == "https://cdn.example.com/foods/paneer.mp4"
		})).Return(nil)

		food, err := f.service.CreateFood(ctx, "partner-1", CreateFoodParams{
			Name:  " Paneer Tikka ",
			Price: 220,
			Video: &multipart.FileHeader{Filename: "paneer.mp4"},
		})

		require.NoError(t, err)
		assert.Equal(t, 220.0, food.Price)
		assert.Equal(t, "foods", f.uploader.folder)

		exists, _ := f.cache.Exists(ctx, feedCacheKey)
		assert.False(t, exists)
		f.foods.AssertExpectations(t)
	})

	t.Run("Video is required", func(t *testing.T) {
		f := newFixture()
		_, err := f.service.CreateFood(ctx, "partner-1", CreateFoodParams{Name: "x", Price: 1})
		assert.ErrorIs(t, err, ErrVideoRequired)
	})

	t.Run("Negative price", func(t *testing.T) {
		f := newFixture()
		_, err := f.service.CreateFood(ctx, "partner-1", CreateFoodParams{
			Name: "x", Price: -1, Video: &multipart.FileHeader{Filename: "a.mp4"},
		})
		assert.ErrorIs(t, err, ErrInvalidFood)
	})

	t.Run("Upload failure", func(t *testing.T) {
		f := newFixture()
		f.uploader.err = errors.New("oss down")

		_, err := f.service.CreateFood(ctx, "partner-1", CreateFoodParams{
			Name: "x", Price: 1, Video: &multipart.FileHeader{Filename: "a.mp4"},
		})

		assert.Error(t, err)
		f.foods.AssertNotCalled(t, "Create", mock.Anything)
	})
}

func TestFeedIsCached(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	foods := []model.Food{{BaseModel: baseModel.BaseModel{ID: "f1"}, Name: "Dosa", Price: 90}}
	f.foods.On("ListAll").Return(foods, nil).Once()

	first, err := f.service.Feed(ctx)
	require.NoError(t, err)
	second, err := f.service.Feed(ctx)
	require.NoError(t, err)

	assert.Equal(t, "Dosa", first[0].Name)
	assert.Equal(t, first[0].ID, second[0].ID)
	f.foods.AssertNumberOfCalls(t, "ListAll", 1)
}

func TestPartnerStore(t *testing.T) {
	f := newFixture()
	partner := &partnerModel.FoodPartner{BaseModel: baseModel.BaseModel{ID: "partner-1"}, Name: "Spice Hub"}
	f.partners.On("GetByID", "partner-1").Return(partner, nil)
	f.partners.On("GetByID", "ghost").Return(nil, gorm.ErrRecordNotFound)
	f.foods.On("ListByPartner", "partner-1").Return([]model.Food{{Name: "Biryani"}}, nil)

	store, err := f.service.PartnerStore("partner-1")
	require.NoError(t, err)
	assert.Equal(t, "Spice Hub", store.Partner.Name)
	assert.Len(t, store.FoodItems, 1)

	_, err = f.service.PartnerStore("ghost")
	assert.ErrorIs(t, err, ErrStoreNotFound)
}

func TestToggleLike(t *testing.T) {
	f := newFixture()
	f.foods.On("GetByID", "f1").Return(&model.Food{BaseModel: baseModel.BaseModel{ID: "f1"}}, nil)
	f.foods.On("GetByID", "missing").Return(nil, gorm.ErrRecordNotFound)
	f.likes.On("Toggle", "u1", "f1").Return(true, int64(3), nil)

	state, err := f.service.ToggleLike("u1", "f1")
	require.NoError(t, err)
	assert.Equal(t, &LikeState{Liked: true, Count: 3}, state)

	_, err = f.service.ToggleLike("u1", "missing")
	assert.ErrorIs(t, err, ErrFoodNotFound)
	f.likes.AssertNumberOfCalls(t, "Toggle", 1)
}

func TestLikeStatusAnonymous(t *testing.T) {
	f := newFixture()
	f.likes.On("Status", "", "f1").Return(false, int64(7), nil)

	state, err := f.service.LikeStatus("", "f1")
	require.NoError(t, err)
	assert.False(t, state.Liked)
	assert.Equal(t, int64(7), state.Count)
}
