package service

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"yumzy/internal/domain/comment/model"
	"yumzy/internal/domain/comment/repository"
	foodRepo "yumzy/internal/domain/food/repository"
	"yumzy/pkg/utils"

	"gorm.io/gorm"
)

var (
	ErrEmptyComment   = errors.New("comment cannot be empty")
	ErrCommentTooLong = fmt.Errorf("comment cannot exceed %d characters", model.MaxTextLength)
	ErrFoodNotFound   = errors.New("food item not found")
)

type CommentService interface {
	ListComments(foodID string, page utils.Pagination) (utils.PageResult, error)
	AddComment(userID, foodID, text string) (*model.Comment, error)
}

type commentService struct {
	comments repository.CommentRepository
	foods    foodRepo.FoodRepository
}

func NewCommentService(comments repository.CommentRepository, foods foodRepo.FoodRepository) CommentService {
	return &commentService{comments: comments, foods: foods}
}

func (s *commentService) ListComments(foodID string, page utils.Pagination) (utils.PageResult, error) {
	offset, limit := page.GetPageOffset()
	comments, total, err := s.comments.ListByFood(foodID, offset, limit)
	if err != nil {
		return utils.PageResult{}, fmt.Errorf("list comments: %w", err)
	}
	return utils.NewPageResult(comments, total, page), nil
}

func (s *commentService) AddComment(userID, foodID, text string) (*model.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyComment
	}
	if utf8.RuneCountInString(text) > model.MaxTextLength {
		return nil, ErrCommentTooLong
	}

	if _, err := s.foods.GetByID(foodID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFoodNotFound
		}
		return nil, err
	}

	comment := &model.Comment{UserID: userID, FoodID: foodID, Text: text}
	if err := s.comments.Create(comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return comment, nil
}
