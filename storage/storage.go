// Package storage 实现两条逻辑记录的键值持久化：
// user（用户档案 JSON）与 transactions（交易序列 JSON）。
// 载入时缺失与损坏都降级为默认值，但通过 Source 区分两种路径，
// 损坏路径额外产生告警日志，调用方不会把两者混为一谈。
package storage

import (
	"encoding/json"
	"log"

	"expensetracker/models"
)

// 存储键
const (
	KeyUser         = "user"
	KeyTransactions = "transactions"
)

// Source 载入结果的来源
type Source int

const (
	// SourceStored 读到了有效的持久化内容
	SourceStored Source = iota
	// SourceMissing 记录不存在，返回默认值
	SourceMissing
	// SourceCorrupt 记录存在但无法解析，返回默认值并已告警
	SourceCorrupt
)

// UserResult 用户档案载入结果
type UserResult struct {
	User   *models.UserProfile
	Source Source
}

// TransactionsResult 交易序列载入结果
type TransactionsResult struct {
	Transactions []models.Transaction
	Source       Source
}

// Repository 键值存储接口。
// 每次变更操作之后同步写入；写失败必须向上传递而不是吞掉。
type Repository interface {
	LoadUser() (UserResult, error)
	SaveUser(user models.UserProfile) error
	LoadTransactions() (TransactionsResult, error)
	SaveTransactions(txs []models.Transaction) error
	// Clear 删除全部记录（登出/重置）
	Clear() error
}

// decodeUser 解析用户档案记录，损坏时降级为 nil 并告警
func decodeUser(payload string) UserResult {
	var user models.UserProfile
	if err := json.Unmarshal([]byte(payload), &user); err != nil {
		log.Printf("警告: 用户档案记录损坏，按未设置处理: %v", err)
		return UserResult{Source: SourceCorrupt}
	}
	return UserResult{User: &user, Source: SourceStored}
}

// decodeTransactions 解析交易序列记录，损坏时降级为空序列并告警
func decodeTransactions(payload string) TransactionsResult {
	var txs []models.Transaction
	if err := json.Unmarshal([]byte(payload), &txs); err != nil {
		log.Printf("警告: 交易记录损坏，按空序列处理: %v", err)
		return TransactionsResult{Transactions: []models.Transaction{}, Source: SourceCorrupt}
	}
	if txs == nil {
		txs = []models.Transaction{}
	}
	return TransactionsResult{Transactions: txs, Source: SourceStored}
}

func encode(v interface{}) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
