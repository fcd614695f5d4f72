package database

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"
)

// RegisterPoolMetrics 将连接池统计 (sql.DBStats) 以 go_sql_* 指标导出
func RegisterPoolMetrics(db *gorm.DB, reg prometheus.Registerer, dbName string) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get underlying sql.DB: %w", err)
	}
	return reg.Register(collectors.NewDBStatsCollector(sqlDB, dbName))
}
