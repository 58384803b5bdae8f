package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"expensetracker/models"
)

var (
	// ErrInvalidGoalTarget 目标金额必须大于 0
	ErrInvalidGoalTarget = errors.New("目标金额必须大于 0")
	// ErrGoalNotFound 目标不存在
	ErrGoalNotFound = errors.New("月度目标不存在")
)

// GoalEvent 目标增量更新产生的一致性事件，供调用方计数与告警
type GoalEvent int

const (
	// GoalEventNone 正常更新
	GoalEventNone GoalEvent = iota
	// GoalEventAutoCreated 交易所在月没有目标，已自动补建
	// （静默丢弃会破坏"目标当前金额 == 当月支出之和"的不变式，这里选择补建而不是拒绝）
	GoalEventAutoCreated
	// GoalEventClamped 回退时金额将为负，已按 0 截断，属于软一致性修复
	GoalEventClamped
)

// InitializeGoals 确保指定年份的 12 个月各有一条目标，已存在的月份不重建。
// 幂等：重复执行结果不变。
func InitializeGoals(goals []models.MonthlyGoal, profile models.UserProfile, year int) []models.MonthlyGoal {
	target := profile.GoalOrDefault()
	if target <= 0 {
		target = models.DefaultGoalTarget
	}
	for month := time.January; month <= time.December; month++ {
		key := fmt.Sprintf("%04d-%02d", year, month)
		if FindGoal(goals, key) != nil {
			continue
		}
		goals = append(goals, models.MonthlyGoal{
			ID:           "goal_" + key,
			Month:        key,
			TargetAmount: target,
		})
	}
	return goals
}

// FindGoal 按月份键查找目标，不存在返回 nil
func FindGoal(goals []models.MonthlyGoal, month string) *models.MonthlyGoal {
	for i := range goals {
		if goals[i].Month == month {
			return &goals[i]
		}
	}
	return nil
}

// ApplyTransaction 将交易计入对应月份目标的当前金额。
// 仅支出参与；收入为无操作。交易所在月没有目标时自动补建一条
// （目标金额取档案推导值），并通过返回的事件提示调用方记录告警。
func ApplyTransaction(goals []models.MonthlyGoal, tx models.Transaction, profile models.UserProfile) ([]models.MonthlyGoal, GoalEvent) {
	if !tx.IsExpense() {
		return goals, GoalEventNone
	}
	month := tx.MonthKey()
	goal := FindGoal(goals, month)
	event := GoalEventNone
	if goal == nil {
		target := profile.GoalOrDefault()
		if target <= 0 {
			target = models.DefaultGoalTarget
		}
		goals = append(goals, models.MonthlyGoal{
			ID:           "goal_" + month + "_" + uuid.NewString()[:8],
			Month:        month,
			TargetAmount: target,
		})
		goal = &goals[len(goals)-1]
		event = GoalEventAutoCreated
	}
	goal.CurrentAmount += tx.AbsAmount()
	return goals, event
}

// ReverseTransaction 删除交易时回退其对目标的贡献，是 ApplyTransaction 的逆操作。
// 当前金额不允许为负：出现该情况按 0 截断并上报软一致性修复事件。
func ReverseTransaction(goals []models.MonthlyGoal, tx models.Transaction) ([]models.MonthlyGoal, GoalEvent) {
	if !tx.IsExpense() {
		return goals, GoalEventNone
	}
	goal := FindGoal(goals, tx.MonthKey())
	if goal == nil {
		return goals, GoalEventNone
	}
	goal.CurrentAmount -= tx.AbsAmount()
	if goal.CurrentAmount < 0 {
		goal.CurrentAmount = 0
		return goals, GoalEventClamped
	}
	return goals, GoalEventNone
}

// SetGoalTarget 修改目标金额，要求新目标大于 0
func SetGoalTarget(goals []models.MonthlyGoal, goalID string, target float64) error {
	if target <= 0 {
		return ErrInvalidGoalTarget
	}
	for i := range goals {
		if goals[i].ID == goalID {
			goals[i].TargetAmount = target
			return nil
		}
	}
	return ErrGoalNotFound
}

// RebuildGoals 从交易日志全量重建目标的当前金额。
// 载入持久化数据后调用，保证增量维护的金额与日志一致。
func RebuildGoals(goals []models.MonthlyGoal, txs []models.Transaction, profile models.UserProfile) ([]models.MonthlyGoal, int) {
	for i := range goals {
		goals[i].CurrentAmount = 0
	}
	autoCreated := 0
	for _, tx := range txs {
		var event GoalEvent
		goals, event = ApplyTransaction(goals, tx, profile)
		if event == GoalEventAutoCreated {
			autoCreated++
		}
	}
	return goals, autoCreated
}
