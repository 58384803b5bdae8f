package models

import "time"

// Reward 奖励徽章：积分达到阈值即解锁，解锁后不可回退
type Reward struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	PointsRequired int        `json:"pointsRequired"`
	IsUnlocked     bool       `json:"isUnlocked"`
	UnlockedAt     *time.Time `json:"unlockedAt,omitempty"`
}

// DefaultRewards 内置奖励目录
func DefaultRewards() []Reward {
	return []Reward{
		{
			ID:             "reward_1",
			Title:          "Budget Master",
			Description:    "Stay under budget for 3 consecutive months",
			PointsRequired: 100,
		},
		{
			ID:             "reward_2",
			Title:          "Savings Champion",
			Description:    "Save more than 30% of your income",
			PointsRequired: 200,
		},
		{
			ID:             "reward_3",
			Title:          "Expense Tracker",
			Description:    "Log expenses for 30 consecutive days",
			PointsRequired: 150,
		},
		{
			ID:             "reward_4",
			Title:          "Smart Spender",
			Description:    "Stay under budget in all categories",
			PointsRequired: 300,
		},
	}
}
