package service

import (
	"errors"
	"fmt"

	foodModel "yumzy/internal/domain/food/model"
	foodRepo "yumzy/internal/domain/food/repository"
	"yumzy/internal/domain/save/repository"

	"gorm.io/gorm"
)

var ErrFoodNotFound = errors.New("food item not found")

type SaveService interface {
	ToggleSave(userID, foodID string) (bool, error)
	SavedFoods(userID string) ([]foodModel.Food, error)
}

type saveService struct {
	saves repository.SaveRepository
	foods foodRepo.FoodRepository
}

func NewSaveService(saves repository.SaveRepository, foods foodRepo.FoodRepository) SaveService {
	return &saveService{saves: saves, foods: foods}
}

func (s *saveService) ToggleSave(userID, foodID string) (bool, error) {
	if _, err := s.foods.GetByID(foodID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrFoodNotFound
		}
		return false, err
	}

	saved, err := s.saves.Toggle(userID, foodID)
	if err != nil {
		return false, fmt.Errorf("toggle save: %w", err)
	}
	return saved, nil
}

// SavedFoods 收藏的菜品，已删除的菜品跳过
func (s *saveService) SavedFoods(userID string) ([]foodModel.Food, error) {
	saves, err := s.saves.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("list saves: %w", err)
	}

	foods := make([]foodModel.Food, 0, len(saves))
	for _, save := range saves {
		if save.Food != nil {
			foods = append(foods, *save.Food)
		}
	}
	return foods, nil
}
