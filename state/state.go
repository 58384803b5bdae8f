// Package state 维护应用的会话状态：用户档案、交易日志、月度目标与奖励目录。
// 状态对象显式传给各个消费方，不做包级全局变量；全部变更走这里的
// 单写者接口，互斥锁保证同步应用纪律。
// 每次变更先完成持久化再提交到内存——写盘失败时内存不变、错误上抛，
// 内存与磁盘不会悄悄分叉。
package state

import (
	"errors"
	"log"
	"sync"
	"time"

	"expensetracker/engine"
	"expensetracker/models"
	"expensetracker/storage"
)

var (
	// ErrNoUser 需要先完成用户设置
	ErrNoUser = errors.New("用户档案未设置")
	// ErrTransactionNotFound 交易不存在
	ErrTransactionNotFound = errors.New("交易记录不存在")
	// ErrNegativePoints 积分累计值不允许为负
	ErrNegativePoints = errors.New("积分不能减少到负数")
)

// Store 应用会话状态
type Store struct {
	mu           sync.Mutex
	repo         storage.Repository
	degraded     bool // 数据库不可用，运行在内存降级模式
	user         *models.UserProfile
	transactions []models.Transaction
	goals        []models.MonthlyGoal
	rewards      []models.Reward
	goalRepairs  int // 目标增量维护触发的一致性修复次数（补建/截断）
}

// NewStore 创建会话状态。degraded 表示底层存储是降级的内存实现。
func NewStore(repo storage.Repository, degraded bool) *Store {
	return &Store{
		repo:     repo,
		degraded: degraded,
		rewards:  models.DefaultRewards(),
	}
}

// Load 从存储载入会话状态并重建派生数据。
// 交易记录先按金额符号修正类型标签，再全量重放进目标跟踪器，
// 保证目标当前金额与日志一致。损坏的记录降级为默认值并告警。
func (s *Store) Load(now time.Time) error {
	userRes, err := s.repo.LoadUser()
	if err != nil {
		return err
	}
	txRes, err := s.repo.LoadTransactions()
	if err != nil {
		return err
	}
	if userRes.Source == storage.SourceCorrupt {
		log.Println("警告: 用户档案已损坏，需要重新设置")
	}
	if txRes.Source == storage.SourceCorrupt {
		log.Println("警告: 交易记录已损坏，按空日志启动")
	}

	fixed := 0
	for i := range txRes.Transactions {
		if txRes.Transactions[i].Normalize() {
			fixed++
		}
	}
	if fixed > 0 {
		log.Printf("警告: %d 条交易的类型标签与金额符号不符，已按符号修正", fixed)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = userRes.User
	s.transactions = txRes.Transactions
	s.goals = nil
	if s.user != nil {
		s.goals = engine.InitializeGoals(nil, *s.user, now.Year())
		var autoCreated int
		s.goals, autoCreated = engine.RebuildGoals(s.goals, s.transactions, *s.user)
		s.goalRepairs += autoCreated
	}
	return nil
}

// SetUser 写入用户档案并初始化当年的月度目标。
// 输入校验在 API 边界完成，这里假定档案已通过校验。
func (s *Store) SetUser(user models.UserProfile, now time.Time) error {
	if err := s.repo.SaveUser(user); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &user
	s.goals = engine.InitializeGoals(s.goals, user, now.Year())
	var autoCreated int
	s.goals, autoCreated = engine.RebuildGoals(s.goals, s.transactions, user)
	s.goalRepairs += autoCreated
	return nil
}

// AddTransaction 追加一条交易并把支出计入对应月份目标
func (s *Store) AddTransaction(date time.Time, category string, amount float64, description string) (models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return models.Transaction{}, ErrNoUser
	}

	tx, err := models.NewTransaction(date, category, amount, description)
	if err != nil {
		return models.Transaction{}, err
	}

	next := make([]models.Transaction, len(s.transactions), len(s.transactions)+1)
	copy(next, s.transactions)
	next = append(next, tx)
	if err := s.repo.SaveTransactions(next); err != nil {
		return models.Transaction{}, err
	}

	s.transactions = next
	var event engine.GoalEvent
	s.goals, event = engine.ApplyTransaction(s.goals, tx, *s.user)
	s.noteGoalEvent(event, tx)
	return tx, nil
}

// DeleteTransaction 删除交易并回退其目标贡献
func (s *Store) DeleteTransaction(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.transactions {
		if s.transactions[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrTransactionNotFound
	}
	removed := s.transactions[idx]

	next := make([]models.Transaction, 0, len(s.transactions)-1)
	next = append(next, s.transactions[:idx]...)
	next = append(next, s.transactions[idx+1:]...)
	if err := s.repo.SaveTransactions(next); err != nil {
		return err
	}

	s.transactions = next
	var event engine.GoalEvent
	s.goals, event = engine.ReverseTransaction(s.goals, removed)
	s.noteGoalEvent(event, removed)
	return nil
}

// SetGoalTarget 修改月度目标金额（目标只存在于内存，不落盘）
func (s *Store) SetGoalTarget(goalID string, target float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return engine.SetGoalTarget(s.goals, goalID, target)
}

// AddRewardPoints 增加累计积分并持久化档案。
// 累计值不允许为负；负增量导致结果为负时拒绝。
func (s *Store) AddRewardPoints(delta int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return 0, ErrNoUser
	}
	next := *s.user
	next.RewardPoints += delta
	if next.RewardPoints < 0 {
		return 0, ErrNegativePoints
	}
	if err := s.repo.SaveUser(next); err != nil {
		return 0, err
	}
	s.user = &next
	return next.RewardPoints, nil
}

// UnlockReward 解锁奖励（解锁状态只存在于会话内存，单向不可回退）
func (s *Store) UnlockReward(rewardID string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return engine.UnlockReward(s.rewards, rewardID, now)
}

// Logout 清除持久化记录并重置会话状态
func (s *Store) Logout() error {
	if err := s.repo.Clear(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.transactions = nil
	s.goals = nil
	s.rewards = models.DefaultRewards()
	s.goalRepairs = 0
	return nil
}

// User 当前用户档案副本，未设置时第二个返回值为 false
func (s *Store) User() (models.UserProfile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return models.UserProfile{}, false
	}
	return *s.user, true
}

// Transactions 交易日志副本
func (s *Store) Transactions() []models.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out
}

// Goals 月度目标副本
func (s *Store) Goals() []models.MonthlyGoal {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.MonthlyGoal, len(s.goals))
	copy(out, s.goals)
	return out
}

// Rewards 奖励目录副本
func (s *Store) Rewards() []models.Reward {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Reward, len(s.rewards))
	copy(out, s.rewards)
	return out
}

// Degraded 是否运行在内存降级模式
func (s *Store) Degraded() bool {
	return s.degraded
}

// GoalRepairs 目标一致性修复的累计次数
func (s *Store) GoalRepairs() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.goalRepairs
}

// noteGoalEvent 记录目标一致性事件，调用方需持有锁
func (s *Store) noteGoalEvent(event engine.GoalEvent, tx models.Transaction) {
	switch event {
	case engine.GoalEventAutoCreated:
		s.goalRepairs++
		log.Printf("警告: 月份 %s 没有目标，已为交易 %s 自动补建", tx.MonthKey(), tx.ID)
	case engine.GoalEventClamped:
		s.goalRepairs++
		log.Printf("警告: 回退交易 %s 时目标金额将为负，已按 0 截断", tx.ID)
	}
}
