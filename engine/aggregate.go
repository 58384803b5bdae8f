// Package engine 实现交易推导核心：余额、周期汇总、类别分布、日汇总、
// 月度目标、消费建议与奖励阶梯，全部是交易日志与用户档案的纯函数。
// 引擎不渲染、不落盘，当前时间由调用方显式传入。
package engine

import (
	"sort"
	"time"

	"expensetracker/models"
)

// PeriodTotal 某日历月的收支汇总
type PeriodTotal struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"` // 支出绝对值之和
}

// Net 当月净结余
func (p PeriodTotal) Net() float64 {
	return p.Income - p.Expense
}

// CategoryTotal 某类别的当月支出汇总
type CategoryTotal struct {
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"` // 占当月支出总额的百分比
}

// DailyExpense 某日历日期的支出汇总（派生数据，不持久化）
type DailyExpense struct {
	Date          string               `json:"date"` // YYYY-MM-DD
	TotalAmount   float64              `json:"totalAmount"`
	Transactions  []models.Transaction `json:"transactions"`
	IsUnderBudget bool                 `json:"isUnderBudget"`
}

// MonthPoint 月度支出序列中的一个点
type MonthPoint struct {
	Month     string  `json:"month"`     // 短月名，如 Jan
	FullMonth string  `json:"fullMonth"` // 完整月名，如 January
	Key       string  `json:"key"`       // YYYY-MM
	Amount    float64 `json:"amount"`
}

// Savings 本月结余概览
type Savings struct {
	SavedThisMonth      float64 `json:"savedThisMonth"`
	LastMonthComparison float64 `json:"lastMonthComparison"` // 与上月结余之差
}

// CurrentBalance 当前余额 = 初始余额 + 全部交易金额之和（不做周期过滤）
func CurrentBalance(profile models.UserProfile, txs []models.Transaction) float64 {
	balance := profile.InitialBalance
	for _, t := range txs {
		balance += t.Amount
	}
	return balance
}

// PeriodTotals 统计指定日历月的收入与支出。
// 空交易集返回零值，不报错。
func PeriodTotals(txs []models.Transaction, year int, month time.Month) PeriodTotal {
	var total PeriodTotal
	for _, t := range txs {
		if t.Date.Year() != year || t.Date.Month() != month {
			continue
		}
		if t.IsIncome() {
			total.Income += t.Amount
		} else {
			total.Expense += t.AbsAmount()
		}
	}
	return total
}

// CategoryTotals 按类别统计指定日历月的支出及其占比。
// 总额为 0 时所有占比为 0，不产生除零。结果按金额降序排列。
func CategoryTotals(txs []models.Transaction, year int, month time.Month) []CategoryTotal {
	sums := make(map[string]float64)
	var order []string
	var total float64
	for _, t := range txs {
		if !t.IsExpense() || t.Date.Year() != year || t.Date.Month() != month {
			continue
		}
		if _, ok := sums[t.Category]; !ok {
			order = append(order, t.Category)
		}
		sums[t.Category] += t.AbsAmount()
		total += t.AbsAmount()
	}

	result := make([]CategoryTotal, 0, len(order))
	for _, cat := range order {
		ct := CategoryTotal{Category: cat, Amount: sums[cat]}
		if total > 0 {
			ct.Percentage = sums[cat] / total * 100
		}
		result = append(result, ct)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Amount > result[j].Amount
	})
	return result
}

// DailyRollup 按日历日期汇总支出交易，对全量日志重算。
// 个人记账规模的日志很小，日粒度全量重算足够便宜，不走增量路径。
// 某日是否超支按当月目标均摊到天来判断；该月没有目标时视为未超支。
func DailyRollup(txs []models.Transaction, goals []models.MonthlyGoal) []DailyExpense {
	byDate := make(map[string]*DailyExpense)
	var order []string
	for _, t := range txs {
		if !t.IsExpense() {
			continue
		}
		key := t.DateKey()
		day, ok := byDate[key]
		if !ok {
			day = &DailyExpense{Date: key, IsUnderBudget: true}
			byDate[key] = day
			order = append(order, key)
		}
		day.TotalAmount += t.AbsAmount()
		day.Transactions = append(day.Transactions, t)
	}

	result := make([]DailyExpense, 0, len(order))
	sort.Strings(order)
	for _, key := range order {
		day := byDate[key]
		if budget, ok := dailyBudgetFor(goals, key); ok {
			day.IsUnderBudget = day.TotalAmount <= budget
		}
		result = append(result, *day)
	}
	return result
}

// dailyBudgetFor 由日期所在月的目标推导单日预算（目标金额 / 当月天数）
func dailyBudgetFor(goals []models.MonthlyGoal, dateKey string) (float64, bool) {
	date, err := time.ParseInLocation(models.DateLayout, dateKey, time.Local)
	if err != nil {
		return 0, false
	}
	goal := FindGoal(goals, models.MonthKeyOf(date))
	if goal == nil || goal.TargetAmount <= 0 {
		return 0, false
	}
	days := time.Date(date.Year(), date.Month()+1, 0, 0, 0, 0, 0, time.Local).Day()
	return goal.TargetAmount / float64(days), true
}

// RecentTransactions 最近 n 条交易，按日期降序
func RecentTransactions(txs []models.Transaction, n int) []models.Transaction {
	sorted := make([]models.Transaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

// MonthlySeries 最近 n 个月的支出序列（含当月），时间从远到近
func MonthlySeries(txs []models.Transaction, now time.Time, n int) []MonthPoint {
	result := make([]MonthPoint, 0, n)
	for i := n - 1; i >= 0; i-- {
		anchor := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -i, 0)
		totals := PeriodTotals(txs, anchor.Year(), anchor.Month())
		result = append(result, MonthPoint{
			Month:     anchor.Format("Jan"),
			FullMonth: anchor.Format("January"),
			Key:       models.MonthKeyOf(anchor),
			Amount:    totals.Expense,
		})
	}
	return result
}

// SavingsOverview 本月结余及与上月结余的对比
func SavingsOverview(txs []models.Transaction, now time.Time) Savings {
	current := PeriodTotals(txs, now.Year(), now.Month())
	lastMonth := now.AddDate(0, 0, -now.Day()) // 上月末
	previous := PeriodTotals(txs, lastMonth.Year(), lastMonth.Month())
	return Savings{
		SavedThisMonth:      current.Net(),
		LastMonthComparison: current.Net() - previous.Net(),
	}
}
