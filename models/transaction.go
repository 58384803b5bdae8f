package models

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
)

const (
	// TypeIncome 收入：金额为正
	TypeIncome = "income"
	// TypeExpense 支出：金额为负
	TypeExpense = "expense"
)

// DateLayout 交易日期格式（仅到天，视为本地日历日期，不含时区语义）
const DateLayout = "2006-01-02"

var (
	// ErrZeroAmount 交易金额不能为 0
	ErrZeroAmount = errors.New("交易金额不能为 0")
	// ErrEmptyCategory 交易类别不能为空
	ErrEmptyCategory = errors.New("交易类别不能为空")
)

// Transaction 交易记录
// 金额符号是收支方向的唯一事实来源：正数为收入，负数为支出。
// Type 字段只是冗余标签，由 NewTransaction / Normalize 从符号推导，
// 不允许两者独立存储后各说各话。
// 记录创建后不可修改，只能删除。
type Transaction struct {
	ID          string    `json:"id"`
	Date        time.Time `json:"date"`
	Category    string    `json:"category"`
	Amount      float64   `json:"amount"` // 正=收入，负=支出
	Description string    `json:"description,omitempty"`
	Type        string    `json:"type"`
}

// NewTransaction 创建交易记录，分配 ID 并根据金额符号推导类型
func NewTransaction(date time.Time, category string, amount float64, description string) (Transaction, error) {
	if amount == 0 {
		return Transaction{}, ErrZeroAmount
	}
	if category == "" {
		return Transaction{}, ErrEmptyCategory
	}
	tx := Transaction{
		ID:          uuid.NewString(),
		Date:        truncateToDay(date),
		Category:    category,
		Amount:      amount,
		Description: description,
	}
	tx.Type = TypeFromAmount(amount)
	return tx, nil
}

// TypeFromAmount 根据金额符号推导交易类型
func TypeFromAmount(amount float64) string {
	if amount > 0 {
		return TypeIncome
	}
	return TypeExpense
}

// Normalize 修正从外部载入的记录：以金额符号为准重算 Type 字段。
// 返回是否发生了修正，供调用方记录告警。
func (t *Transaction) Normalize() bool {
	want := TypeFromAmount(t.Amount)
	if t.Type == want {
		return false
	}
	t.Type = want
	return true
}

// IsExpense 是否为支出
func (t Transaction) IsExpense() bool {
	return t.Amount < 0
}

// IsIncome 是否为收入
func (t Transaction) IsIncome() bool {
	return t.Amount > 0
}

// AbsAmount 金额绝对值
func (t Transaction) AbsAmount() float64 {
	return math.Abs(t.Amount)
}

// DateKey 日期键（YYYY-MM-DD）
func (t Transaction) DateKey() string {
	return t.Date.Format(DateLayout)
}

// MonthKey 月份键（YYYY-MM）
func (t Transaction) MonthKey() string {
	return t.Date.Format("2006-01")
}

func truncateToDay(tm time.Time) time.Time {
	return time.Date(tm.Year(), tm.Month(), tm.Day(), 0, 0, 0, 0, tm.Location())
}

// 支出类别常量
const (
	CategoryFood          = "Food"
	CategoryTransport     = "Transportation"
	CategoryEntertainment = "Entertainment"
	CategoryShopping      = "Shopping"
	CategoryBills         = "Bills"
	CategoryHealthcare    = "Healthcare"
	CategoryEducation     = "Education"
	CategoryOther         = "Other"
)

// ExpenseCategories 获取所有支出类别
func ExpenseCategories() []string {
	return []string{
		CategoryFood,
		CategoryTransport,
		CategoryEntertainment,
		CategoryShopping,
		CategoryBills,
		CategoryHealthcare,
		CategoryEducation,
		CategoryOther,
	}
}

// IsKnownCategory 类别是否在内置类别表中
func IsKnownCategory(name string) bool {
	for _, c := range ExpenseCategories() {
		if c == name {
			return true
		}
	}
	return false
}
