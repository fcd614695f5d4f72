package database

import (
	"database/sql"
	"fmt"
	"time"
	"yumzy/internal/pkg/config"
	applog "yumzy/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DSN 拼接 PostgreSQL 连接串
func DSN(cfg config.DatabaseConfig) string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		cfg.Host, cfg.User, cfg.Password, cfg.DBName, cfg.Port, cfg.SSLMode, cfg.TimeZone)
}

// MigrateURL golang-migrate 使用的 URL 形式
func MigrateURL(cfg config.DatabaseConfig) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DBName, cfg.SSLMode)
}

// InitDatabase 初始化数据库连接
func InitDatabase(cfg config.DatabaseConfig, production bool) (*gorm.DB, error) {
	logLevel := logger.Info
	if production {
		logLevel = logger.Warn
	}

	gormConfig := &gorm.Config{
		Logger:                                   logger.Default.LogMode(logLevel),
		PrepareStmt:                              true, // 预编译 SQL 缓存
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true, // 唯一约束冲突转为 gorm.ErrDuplicatedKey
	}

	db, err := gorm.Open(postgres.Open(DSN(cfg)), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	// 获取底层 SQL DB 对象以配置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get underlying sql.DB: %w", err)
	}

	configureConnectionPool(sqlDB)

	// 表结构由 cmd/migrate 通过 golang-migrate 管理
	return db, nil
}

// configureConnectionPool 配置数据库连接池
func configureConnectionPool(sqlDB *sql.DB) {
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(time.Minute * 30)

	applog.Log.Info("Database connection pool configured",
		zap.Int("max_open", 50),
		zap.Int("max_idle", 5),
	)
}
