package repository

import (
	"context"
	"errors"

	"github.com/vitrine-next/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStoreRepository 基于 GORM 的键值存储（sqlite/postgres）
type GormStoreRepository struct {
	db *gorm.DB
}

// NewStoreRepository 创建键值存储仓库
func NewStoreRepository(db *gorm.DB) *GormStoreRepository {
	return &GormStoreRepository{db: db}
}

// Read 读取原始值
func (r *GormStoreRepository) Read(ctx context.Context, key string) ([]byte, bool, error) {
	var entry models.StoreEntry
	if err := r.db.WithContext(ctx).Where("key = ?", key).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return []byte(entry.Value), true, nil
}

// Write 写入或覆盖原始值
func (r *GormStoreRepository) Write(ctx context.Context, key string, value []byte) error {
	entry := models.StoreEntry{Key: key, Value: string(value)}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&entry).Error
}

// Delete 删除键，不存在时忽略
func (r *GormStoreRepository) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Where("key = ?", key).Delete(&models.StoreEntry{}).Error
}
