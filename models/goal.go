package models

import "time"

// MonthLayout 月份键格式（YYYY-MM）
const MonthLayout = "2006-01"

// DefaultGoalTarget 用户档案缺失月度目标时的兜底目标金额
const DefaultGoalTarget = 50000

// MonthlyGoal 月度支出目标，每个日历月最多一条
// CurrentAmount 由交易日志增量维护：必须始终等于该月所有支出交易的
// 绝对值之和，这是增量更新逻辑在增删两条路径上都要保住的一致性不变式。
// 是否达成不落盘存储，统一通过 IsAchieved() 读时计算，避免陈旧标志。
type MonthlyGoal struct {
	ID            string  `json:"id"`
	Month         string  `json:"month"` // YYYY-MM
	TargetAmount  float64 `json:"targetAmount"`
	CurrentAmount float64 `json:"currentAmount"`
	RewardPoints  int     `json:"rewardPoints"`
}

// IsAchieved 当前支出是否未超出目标（读时计算，不作为存储状态）
func (g MonthlyGoal) IsAchieved() bool {
	return g.CurrentAmount <= g.TargetAmount
}

// Remaining 剩余可用预算（超支时为负）
func (g MonthlyGoal) Remaining() float64 {
	return g.TargetAmount - g.CurrentAmount
}

// MonthKeyOf 将时间截断为月份键
func MonthKeyOf(t time.Time) string {
	return t.Format(MonthLayout)
}
