package models

import "time"

// DefaultGoalRatio 未显式设置月度支出目标时，默认为月薪的 70%
const DefaultGoalRatio = 0.7

// UserProfile 用户档案（单用户应用，会话内仅存在 0 或 1 个实例）
type UserProfile struct {
	Name               string    `json:"name"`
	Salary             float64   `json:"salary"`         // 月薪，必须 > 0
	InitialBalance     float64   `json:"initialBalance"` // 初始余额，必须 >= 0
	MonthlyExpenseGoal float64   `json:"monthlyExpenseGoal,omitempty"`
	RewardPoints       int       `json:"rewardPoints"`
	CreatedAt          time.Time `json:"createdAt"`
}

// GoalOrDefault 获取月度支出目标，未设置时按月薪 70% 推导
func (u UserProfile) GoalOrDefault() float64 {
	if u.MonthlyExpenseGoal > 0 {
		return u.MonthlyExpenseGoal
	}
	return u.Salary * DefaultGoalRatio
}
