package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"resume-parser-go/internal/config"
	"resume-parser-go/internal/storage/models"

	"gorm.io/datatypes"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// ErrProfileNotFound 查询的解析结果不存在
var ErrProfileNotFound = errors.New("解析结果不存在")

// MySQL 提供解析结果的持久化
type MySQL struct {
	db  *gorm.DB
	cfg *config.MySQLConfig
}

// NewMySQL 创建MySQL连接并确保表结构存在
func NewMySQL(cfg *config.MySQLConfig) (*MySQL, error) {
	if cfg == nil {
		return nil, fmt.Errorf("MySQL配置不能为空")
	}

	connectTimeout := cfg.ConnectTimeoutSeconds
	if connectTimeout <= 0 {
		connectTimeout = 10
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local&timeout=%ds",
		cfg.Username, cfg.Password, cfg.Host, cfg.Port, cfg.Database, connectTimeout)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("连接MySQL失败: %w", err)
	}

	// 连接池设置
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取底层连接池失败: %w", err)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.ConnMaxLifetimeMinutes > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute)
	}

	if err := db.AutoMigrate(&models.ExtractedProfile{}); err != nil {
		return nil, fmt.Errorf("迁移extracted_profiles表失败: %w", err)
	}

	return &MySQL{db: db, cfg: cfg}, nil
}

// DB 返回底层gorm实例
func (m *MySQL) DB() *gorm.DB {
	return m.db
}

// SaveProfile 保存解析结果，主键冲突时整行更新
func (m *MySQL) SaveProfile(ctx context.Context, profile *models.ExtractedProfile) error {
	if profile == nil {
		return fmt.Errorf("解析结果不能为空")
	}

	err := m.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "submission_uuid"}},
		UpdateAll: true,
	}).Create(profile).Error
	if err != nil {
		return fmt.Errorf("保存解析结果失败 (UUID:%s): %w", profile.SubmissionUUID, err)
	}
	return nil
}

// GetProfile 按提交UUID查询解析结果
func (m *MySQL) GetProfile(ctx context.Context, submissionUUID string) (*models.ExtractedProfile, error) {
	var profile models.ExtractedProfile
	err := m.db.WithContext(ctx).
		Where("submission_uuid = ?", submissionUUID).
		First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("查询解析结果失败 (UUID:%s): %w", submissionUUID, err)
	}
	return &profile, nil
}

// Close 关闭数据库连接
func (m *MySQL) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SkillsToJSON 辅助函数: 把技能切片编码为JSON列值
func SkillsToJSON(skills []string) datatypes.JSON {
	if len(skills) == 0 {
		return datatypes.JSON("[]")
	}
	data, err := json.Marshal(skills)
	if err != nil {
		// 编码简单字符串切片不应失败；兜底返回空数组保证列值合法
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(data)
}
