package storage

import (
	"sync"

	"expensetracker/models"
)

// MemoryRepository 纯内存存储：数据库不可用时的降级运行模式，也用于测试。
// 进程退出后数据即丢失，调用方需要把降级状态暴露出去。
type MemoryRepository struct {
	mu       sync.Mutex
	userJSON *string
	txJSON   *string
}

// NewMemoryRepository 创建内存存储
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) LoadUser() (UserResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.userJSON == nil {
		return UserResult{Source: SourceMissing}, nil
	}
	return decodeUser(*r.userJSON), nil
}

func (r *MemoryRepository) SaveUser(user models.UserProfile) error {
	payload, err := encode(user)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.userJSON = &payload
	return nil
}

func (r *MemoryRepository) LoadTransactions() (TransactionsResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.txJSON == nil {
		return TransactionsResult{Transactions: []models.Transaction{}, Source: SourceMissing}, nil
	}
	return decodeTransactions(*r.txJSON), nil
}

func (r *MemoryRepository) SaveTransactions(txs []models.Transaction) error {
	payload, err := encode(txs)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.txJSON = &payload
	return nil
}

func (r *MemoryRepository) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.userJSON = nil
	r.txJSON = nil
	return nil
}

// Corrupt 直接写入无法解析的负载，仅测试损坏降级路径时使用
func (r *MemoryRepository) Corrupt(key string) {
	bad := "{not-json"
	r.mu.Lock()
	defer r.mu.Unlock()
	switch key {
	case KeyUser:
		r.userJSON = &bad
	case KeyTransactions:
		r.txJSON = &bad
	}
}
