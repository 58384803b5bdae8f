package api

import (
	"errors"
	"time"

	"expensetracker/engine"
	"expensetracker/models"
	"expensetracker/state"

	"github.com/gin-gonic/gin"
)

// GoalHandler 月度目标处理器
type GoalHandler struct {
	store *state.Store
}

// NewGoalHandler 创建月度目标处理器
func NewGoalHandler(store *state.Store) *GoalHandler {
	return &GoalHandler{store: store}
}

// UpdateGoalRequest 修改月度目标请求
type UpdateGoalRequest struct {
	TargetAmount float64 `json:"targetAmount" binding:"required" example:"56000"`
}

// GoalView 带达标状态的月度目标视图
type GoalView struct {
	models.MonthlyGoal
	IsAchieved bool    `json:"isAchieved"`
	Remaining  float64 `json:"remaining"`
}

func goalView(g models.MonthlyGoal) GoalView {
	return GoalView{
		MonthlyGoal: g,
		IsAchieved:  g.IsAchieved(),
		Remaining:   g.Remaining(),
	}
}

// List 获取月度目标列表
// @Summary 获取月度目标列表
// @Description 获取全年月度支出目标及达标状态
// @Tags 月度目标
// @Produce json
// @Success 200 {object} Response{data=[]GoalView} "获取成功"
// @Router /api/v1/goals [get]
func (h *GoalHandler) List(c *gin.Context) {
	goals := h.store.Goals()
	views := make([]GoalView, 0, len(goals))
	for _, g := range goals {
		views = append(views, goalView(g))
	}
	Success(c, views)
}

// Current 获取当前月份目标
// @Summary 获取当前月份目标
// @Description 获取本月支出目标及达标状态
// @Tags 月度目标
// @Produce json
// @Success 200 {object} Response{data=GoalView} "获取成功"
// @Failure 404 {object} Response "目标不存在"
// @Router /api/v1/goals/current [get]
func (h *GoalHandler) Current(c *gin.Context) {
	goals := h.store.Goals()
	goal := engine.FindGoal(goals, models.MonthKeyOf(time.Now()))
	if goal == nil {
		NotFound(c, "本月目标不存在")
		return
	}
	Success(c, goalView(*goal))
}

// Update 修改月度目标金额
// @Summary 修改月度目标金额
// @Description 修改指定目标的金额，必须大于 0
// @Tags 月度目标
// @Accept json
// @Produce json
// @Param id path string true "目标 ID"
// @Param request body UpdateGoalRequest true "目标金额"
// @Success 200 {object} Response "修改成功"
// @Failure 400 {object} Response "金额不合法"
// @Failure 404 {object} Response "目标不存在"
// @Router /api/v1/goals/{id} [put]
func (h *GoalHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var req UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	if err := h.store.SetGoalTarget(id, req.TargetAmount); err != nil {
		switch {
		case errors.Is(err, engine.ErrInvalidGoalTarget):
			BadRequest(c, err.Error())
		case errors.Is(err, engine.ErrGoalNotFound):
			NotFound(c, err.Error())
		default:
			InternalError(c, SafeErrorMessage(err, "修改目标失败"))
		}
		return
	}
	SuccessWithMessage(c, "修改成功", nil)
}
