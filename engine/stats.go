package engine

import (
	"math"
	"time"

	"expensetracker/models"
)

// MonthStats 当月支出节奏统计，用于日常开销页的概览
type MonthStats struct {
	TodayTotal       float64 `json:"todayTotal"`
	DailyAverage     float64 `json:"dailyAverage"`     // 截至今天的日均支出
	ProjectedExpense float64 `json:"projectedExpense"` // 按日均推算的整月支出
	RemainingBudget  float64 `json:"remainingBudget"`  // 目标减去已花费（超支为负）
	RecommendedDaily float64 `json:"recommendedDaily"` // 剩余预算均摊到剩余天数，下限 0
	BudgetExceeded   bool    `json:"budgetExceeded"`
}

// MonthlyStats 基于当月支出与目标金额计算支出节奏。
// monthlyGoal <= 0 时剩余预算与建议值按 0 目标处理。
func MonthlyStats(txs []models.Transaction, now time.Time, monthlyGoal float64) MonthStats {
	totals := PeriodTotals(txs, now.Year(), now.Month())
	todayKey := now.Format(models.DateLayout)

	var todayTotal float64
	for _, t := range txs {
		if t.IsExpense() && t.DateKey() == todayKey {
			todayTotal += t.AbsAmount()
		}
	}

	daysInMonth := time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, now.Location()).Day()
	currentDay := now.Day()

	dailyAverage := totals.Expense / float64(currentDay)
	remaining := monthlyGoal - totals.Expense

	var recommendedDaily float64
	if remainingDays := daysInMonth - currentDay; remainingDays > 0 {
		recommendedDaily = math.Max(0, remaining/float64(remainingDays))
	}

	return MonthStats{
		TodayTotal:       todayTotal,
		DailyAverage:     dailyAverage,
		ProjectedExpense: dailyAverage * float64(daysInMonth),
		RemainingBudget:  remaining,
		RecommendedDaily: recommendedDaily,
		BudgetExceeded:   remaining < 0,
	}
}
