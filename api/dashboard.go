package api

import (
	"time"

	"expensetracker/config"
	"expensetracker/currency"
	"expensetracker/engine"
	"expensetracker/models"
	"expensetracker/state"

	"github.com/gin-gonic/gin"
)

// DashboardHandler 仪表盘处理器
type DashboardHandler struct {
	store *state.Store
	cfg   *config.Config
}

// NewDashboardHandler 创建仪表盘处理器
func NewDashboardHandler(store *state.Store, cfg *config.Config) *DashboardHandler {
	return &DashboardHandler{store: store, cfg: cfg}
}

// DashboardResponse 仪表盘响应
type DashboardResponse struct {
	Balance          float64                `json:"balance"`
	BalanceDisplay   string                 `json:"balanceDisplay"`
	MonthIncome      float64                `json:"monthIncome"`
	MonthExpense     float64                `json:"monthExpense"`
	Savings          engine.Savings         `json:"savings"`
	RecentList       []models.Transaction   `json:"recentTransactions"`
	MonthlySeries    []engine.MonthPoint    `json:"monthlySeries"`
	CategoryTotals   []engine.CategoryTotal `json:"categoryDistribution"`
	DailyExpenses    []engine.DailyExpense  `json:"dailyExpenses"`
	CurrentGoal      *models.MonthlyGoal    `json:"currentGoal,omitempty"`
	MonthStats       engine.MonthStats      `json:"monthStats"`
	TransactionCount int                    `json:"transactionCount"`
}

// Dashboard 获取仪表盘数据
// @Summary 获取仪表盘数据
// @Description 汇总余额、本月收支、储蓄、最近交易、月度支出序列、类别分布和每日支出
// @Tags 仪表盘
// @Produce json
// @Success 200 {object} Response{data=DashboardResponse} "获取成功"
// @Failure 404 {object} Response "档案未设置"
// @Router /api/v1/dashboard [get]
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	user, ok := h.store.User()
	if !ok {
		NotFound(c, "用户档案未设置")
		return
	}

	now := time.Now()
	txs := h.store.Transactions()
	goals := h.store.Goals()

	balance := engine.CurrentBalance(user, txs)
	totals := engine.PeriodTotals(txs, now.Year(), now.Month())

	// 当月目标金额以可编辑的目标值为准，目标缺失时回退档案推导值
	goalTarget := user.GoalOrDefault()
	currentGoal := engine.FindGoal(goals, models.MonthKeyOf(now))
	if currentGoal != nil {
		goalTarget = currentGoal.TargetAmount
	}

	resp := DashboardResponse{
		Balance:          balance,
		BalanceDisplay:   currency.FormatINRCompact(balance),
		MonthIncome:      totals.Income,
		MonthExpense:     totals.Expense,
		Savings:          engine.SavingsOverview(txs, now),
		RecentList:       engine.RecentTransactions(txs, h.cfg.App.RecentCount),
		MonthlySeries:    engine.MonthlySeries(txs, now, h.cfg.App.SeriesMonths),
		CategoryTotals:   engine.CategoryTotals(txs, now.Year(), now.Month()),
		DailyExpenses:    engine.DailyRollup(txs, goals),
		MonthStats:       engine.MonthlyStats(txs, now, goalTarget),
		TransactionCount: len(txs),
	}

	if currentGoal != nil {
		g := *currentGoal
		resp.CurrentGoal = &g
	}

	Success(c, resp)
}
