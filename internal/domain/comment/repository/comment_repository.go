package repository

import (
	"yumzy/internal/domain/comment/model"

	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(comment *model.Comment) error
	// ListByFood 按创建时间倒序分页，附带作者姓名
	ListByFood(foodID string, offset, limit int) ([]model.Comment, int64, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create 写入后回填作者信息
func (r *commentRepository) Create(comment *model.Comment) error {
	if err := r.db.Create(comment).Error; err != nil {
		return err
	}
	return r.db.Preload("User").First(comment, "id = ?", comment.ID).Error
}

func (r *commentRepository) ListByFood(foodID string, offset, limit int) ([]model.Comment, int64, error) {
	var comments []model.Comment
	var total int64

	query := r.db.Model(&model.Comment{}).Where("food_id = ?", foodID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Preload("User").
		Where("food_id = ?", foodID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}
