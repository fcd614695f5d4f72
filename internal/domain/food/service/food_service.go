package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"yumzy/internal/domain/food/model"
	"yumzy/internal/domain/food/repository"
	partnerModel "yumzy/internal/domain/partner/model"
	partnerRepo "yumzy/internal/domain/partner/repository"
	"yumzy/internal/pkg/uploader"
	"yumzy/pkg/cache"
	"yumzy/pkg/logger"
	"yumzy/pkg/metrics"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	feedCacheKey = "food:feed"
	feedCacheTTL = time.Minute
)

var (
	ErrFoodNotFound  = errors.New("food item not found")
	ErrStoreNotFound = errors.New("store not found")
	ErrVideoRequired = errors.New("video file is required")
	ErrInvalidFood   = errors.New("invalid food item")
)

// CreateFoodParams 新建菜品参数
type CreateFoodParams struct {
	Name        string
	Description string
	Price       float64
	Video       *multipart.FileHeader
}

// Store 商家店铺页
type Store struct {
	Partner   *partnerModel.FoodPartner `json:"partner"`
	FoodItems []model.Food              `json:"foodItems"`
}

// LikeState 点赞状态
type LikeState struct {
	Liked bool  `json:"liked"`
	Count int64 `json:"count"`
}

type FoodService interface {
	CreateFood(ctx context.Context, partnerID string, params CreateFoodParams) (*model.Food, error)
	Feed(ctx context.Context) ([]model.Food, error)
	MyFood(partnerID string) ([]model.Food, error)
	PartnerStore(partnerID string) (*Store, error)
	GetFood(id string) (*model.Food, error)
	LikeStatus(userID, foodID string) (*LikeState, error)
	ToggleLike(userID, foodID string) (*LikeState, error)
}

type foodService struct {
	foods    repository.FoodRepository
	likes    repository.LikeRepository
	partners partnerRepo.PartnerRepository
	cache    cache.CacheService
	uploader uploader.Uploader
	metrics  *metrics.MetricsCollector
}

func NewFoodService(
	foods repository.FoodRepository,
	likes repository.LikeRepository,
	partners partnerRepo.PartnerRepository,
	cacheService cache.CacheService,
	up uploader.Uploader,
	collector *metrics.MetricsCollector,
) FoodService {
	return &foodService{
		foods:    foods,
		likes:    likes,
		partners: partners,
		cache:    cacheService,
		uploader: up,
		metrics:  collector,
	}
}

func (s *foodService) CreateFood(ctx context.Context, partnerID string, params CreateFoodParams) (*model.Food, error) {
	if params.Video == nil {
		return nil, ErrVideoRequired
	}
	name := strings.TrimSpace(params.Name)
	if name == "" || params.Price < 0 {
		return nil, ErrInvalidFood
	}

	url, err := s.uploader.UploadFile(params.Video, uploader.FolderFoods)
	if err != nil {
		return nil, fmt.Errorf("upload video: %w", err)
	}

	food := &model.Food{
		Name:          name,
		Video:         url,
		Description:   strings.TrimSpace(params.Description),
		Price:         params.Price,
		FoodPartnerID: partnerID,
	}
	if err := s.foods.Create(food); err != nil {
		return nil, fmt.Errorf("create food: %w", err)
	}

	// 新菜品需立即出现在信息流
	if err := s.cache.Delete(ctx, feedCacheKey); err != nil {
		logger.Log.Warn("invalidate feed cache failed", zap.Error(err))
	}

	return food, nil
}

// Feed 首页信息流，缓存 1 分钟
func (s *foodService) Feed(ctx context.Context) ([]model.Food, error) {
	var foods []model.Food
	err := s.cache.Get(ctx, feedCacheKey, &foods)
	if err == nil {
		s.metrics.RecordCacheOperation("feed", feedCacheKey, true)
		return foods, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		logger.Log.Warn("read feed cache failed", zap.Error(err))
	}
	s.metrics.RecordCacheOperation("feed", feedCacheKey, false)

	foods, err = s.foods.ListAll()
	if err != nil {
		return nil, fmt.Errorf("list foods: %w", err)
	}

	if err := s.cache.Set(ctx, feedCacheKey, foods, feedCacheTTL); err != nil {
		logger.Log.Warn("write feed cache failed", zap.Error(err))
	}
	return foods, nil
}

func (s *foodService) MyFood(partnerID string) ([]model.Food, error) {
	return s.foods.ListByPartner(partnerID)
}

func (s *foodService) PartnerStore(partnerID string) (*Store, error) {
	partner, err := s.partners.GetByID(partnerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, err
	}

	foods, err := s.foods.ListByPartner(partnerID)
	if err != nil {
		return nil, err
	}
	return &Store{Partner: partner, FoodItems: foods}, nil
}

func (s *foodService) GetFood(id string) (*model.Food, error) {
	food, err := s.foods.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFoodNotFound
		}
		return nil, err
	}
	return food, nil
}

// LikeStatus userID 为空表示未登录
func (s *foodService) LikeStatus(userID, foodID string) (*LikeState, error) {
	liked, count, err := s.likes.Status(userID, foodID)
	if err != nil {
		return nil, err
	}
	return &LikeState{Liked: liked, Count: count}, nil
}

func (s *foodService) ToggleLike(userID, foodID string) (*LikeState, error) {
	if _, err := s.GetFood(foodID); err != nil {
		return nil, err
	}

	liked, count, err := s.likes.Toggle(userID, foodID)
	if err != nil {
		return nil, fmt.Errorf("toggle like: %w", err)
	}
	return &LikeState{Liked: liked, Count: count}, nil
}
