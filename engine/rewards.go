package engine

import (
	"errors"
	"sort"
	"time"

	"expensetracker/models"
)

// ErrRewardNotFound 奖励不存在
var ErrRewardNotFound = errors.New("奖励不存在")

// Ladder 奖励阶梯的只读投影
type Ladder struct {
	Rewards    []models.Reward `json:"rewards"`
	Points     int             `json:"points"`
	NextReward *models.Reward  `json:"nextReward,omitempty"`
	Progress   float64         `json:"progress"` // 距下一奖励的进度，0~1
}

// LadderState 由累计积分计算奖励阶梯状态。
// 积分达到阈值即视为解锁；已解锁的条目即使积分后续减少也不回锁。
func LadderState(rewards []models.Reward, points int) Ladder {
	view := make([]models.Reward, len(rewards))
	copy(view, rewards)
	for i := range view {
		if !view[i].IsUnlocked && points >= view[i].PointsRequired {
			view[i].IsUnlocked = true
		}
	}

	ladder := Ladder{Rewards: view, Points: points, Progress: 1}
	if next := NextReward(view, points); next != nil {
		ladder.NextReward = next
		ladder.Progress = ladderProgress(points, next.PointsRequired)
	}
	return ladder
}

// NextReward 阈值最低的未解锁奖励，全部解锁时返回 nil
func NextReward(rewards []models.Reward, points int) *models.Reward {
	var locked []models.Reward
	for _, r := range rewards {
		if !r.IsUnlocked && points < r.PointsRequired {
			locked = append(locked, r)
		}
	}
	if len(locked) == 0 {
		return nil
	}
	sort.SliceStable(locked, func(i, j int) bool {
		return locked[i].PointsRequired < locked[j].PointsRequired
	})
	return &locked[0]
}

// UnlockReward 解锁指定奖励，解锁时间只写一次。
// 重复解锁是无操作，保留最初的解锁时间。
func UnlockReward(rewards []models.Reward, rewardID string, now time.Time) error {
	for i := range rewards {
		if rewards[i].ID != rewardID {
			continue
		}
		if rewards[i].IsUnlocked {
			return nil
		}
		rewards[i].IsUnlocked = true
		at := now
		rewards[i].UnlockedAt = &at
		return nil
	}
	return ErrRewardNotFound
}

func ladderProgress(points, required int) float64 {
	if required <= 0 {
		return 1
	}
	p := float64(points) / float64(required)
	if p > 1 {
		p = 1
	}
	return p
}
