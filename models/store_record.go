package models

import "time"

// StoreRecord 键值存储记录
// 持久层只有两条逻辑记录：user（用户档案 JSON）与 transactions（交易序列 JSON），
// 其余派生数据一律不落盘，只作为交易日志的确定性函数缓存。
type StoreRecord struct {
	RecordKey string    `json:"record_key" gorm:"primaryKey;size:64"`
	Payload   string    `json:"payload" gorm:"type:longtext"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName 设置表名
func (StoreRecord) TableName() string {
	return "store_records"
}
