package repository

import (
	"context"
	"fmt"

	"alc-index-builder/internal/domain"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// PostgresRepo 实现了 port.Repository 接口
type PostgresRepo struct {
	db *gorm.DB
}

// NewPostgresRepo 初始化数据库连接并自动迁移表结构
func NewPostgresRepo(dsn string) (*PostgresRepo, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// AutoMigrate 会自动建 page_records 表，字段变了也会自动补列
	err = db.AutoMigrate(&domain.PageRecord{})
	if err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return &PostgresRepo{db: db}, nil
}

// Save 保存或更新构建记录 (同仓库覆盖)
func (r *PostgresRepo) Save(ctx context.Context, rec *domain.PageRecord) error {
	// Save 会自动处理 Insert 或 Update (Upsert)
	result := r.db.WithContext(ctx).Save(rec)
	return result.Error
}

// Exists 检查某个仓库是否已有构建记录
func (r *PostgresRepo) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.PageRecord{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// MarkAsNotified 标记该记录已推送过告警
func (r *PostgresRepo) MarkAsNotified(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Model(&domain.PageRecord{}).Where("id = ?", id).Update("already_notified", true)
	return result.Error
}

// Search 按关键词模糊查询构建记录
func (r *PostgresRepo) Search(ctx context.Context, query string) ([]*domain.PageRecord, error) {
	var records []*domain.PageRecord
	likeQuery := "%" + query + "%"
	err := r.db.WithContext(ctx).
		Where("repo_name LIKE ? OR theme LIKE ? OR failed_checks LIKE ?", likeQuery, likeQuery, likeQuery).
		Order("built_at DESC").
		Limit(20).
		Find(&records).Error

	return records, err
}

// History 最近 N 条构建记录
func (r *PostgresRepo) History(ctx context.Context, limit int) ([]*domain.PageRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	var records []*domain.PageRecord
	err := r.db.WithContext(ctx).
		Order("built_at DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}

// FindFailing 当前质检不合格的页面
func (r *PostgresRepo) FindFailing(ctx context.Context) ([]*domain.PageRecord, error) {
	var records []*domain.PageRecord
	err := r.db.WithContext(ctx).
		Where("passed = ?", false).
		Order("score ASC"). // 最差的排最前
		Find(&records).Error
	return records, err
}
