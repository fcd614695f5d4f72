package repository

import (
	"yumzy/internal/domain/order/model"
	"yumzy/internal/pkg/worker"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LoyaltyRepository 积分流水，由 worker 池异步写入
type LoyaltyRepository interface {
	worker.LedgerWriter
	// ListByUser 最近的 limit 条流水
	ListByUser(userID string, limit int) ([]model.LoyaltyEntry, error)
}

type loyaltyRepository struct {
	db *gorm.DB
}

func NewLoyaltyRepository(db *gorm.DB) LoyaltyRepository {
	return &loyaltyRepository{db: db}
}

// WriteLedgerEntry 重试可能重复提交同一任务，冲突时忽略
func (r *loyaltyRepository) WriteLedgerEntry(task worker.LedgerTask) error {
	entry := model.LoyaltyEntry{
		UserID:  task.UserID,
		OrderID: task.OrderID,
		Kind:    task.Kind,
		Points:  task.Points,
	}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&entry).Error
}

func (r *loyaltyRepository) ListByUser(userID string, limit int) ([]model.LoyaltyEntry, error) {
	var entries []model.LoyaltyEntry
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}
