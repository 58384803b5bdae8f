package storage

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"expensetracker/models"
)

// GormRepository 基于 store_records 表的键值存储实现
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository 创建数据库存储
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// LoadUser 载入用户档案，记录不存在时返回 SourceMissing
func (r *GormRepository) LoadUser() (UserResult, error) {
	payload, found, err := r.load(KeyUser)
	if err != nil {
		return UserResult{}, err
	}
	if !found {
		return UserResult{Source: SourceMissing}, nil
	}
	return decodeUser(payload), nil
}

// SaveUser 保存用户档案
func (r *GormRepository) SaveUser(user models.UserProfile) error {
	payload, err := encode(user)
	if err != nil {
		return fmt.Errorf("序列化用户档案失败: %w", err)
	}
	return r.save(KeyUser, payload)
}

// LoadTransactions 载入交易序列，记录不存在时返回空序列
func (r *GormRepository) LoadTransactions() (TransactionsResult, error) {
	payload, found, err := r.load(KeyTransactions)
	if err != nil {
		return TransactionsResult{}, err
	}
	if !found {
		return TransactionsResult{Transactions: []models.Transaction{}, Source: SourceMissing}, nil
	}
	return decodeTransactions(payload), nil
}

// SaveTransactions 保存交易序列
func (r *GormRepository) SaveTransactions(txs []models.Transaction) error {
	payload, err := encode(txs)
	if err != nil {
		return fmt.Errorf("序列化交易记录失败: %w", err)
	}
	return r.save(KeyTransactions, payload)
}

// Clear 删除全部记录
func (r *GormRepository) Clear() error {
	if err := r.db.Where("record_key IN ?", []string{KeyUser, KeyTransactions}).
		Delete(&models.StoreRecord{}).Error; err != nil {
		return fmt.Errorf("清除存储记录失败: %w", err)
	}
	return nil
}

func (r *GormRepository) load(key string) (payload string, found bool, err error) {
	var record models.StoreRecord
	if err := r.db.Where("record_key = ?", key).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("读取存储记录 %s 失败: %w", key, err)
	}
	return record.Payload, true, nil
}

func (r *GormRepository) save(key, payload string) error {
	record := models.StoreRecord{RecordKey: key, Payload: payload}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "record_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&record).Error
	if err != nil {
		return fmt.Errorf("写入存储记录 %s 失败: %w", key, err)
	}
	return nil
}
