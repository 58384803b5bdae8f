package api

import (
	"strings"
	"time"

	"expensetracker/models"
	"expensetracker/state"

	"github.com/gin-gonic/gin"
)

// UserHandler 用户档案处理器
type UserHandler struct {
	store *state.Store
}

// NewUserHandler 创建用户档案处理器
func NewUserHandler(store *state.Store) *UserHandler {
	return &UserHandler{store: store}
}

// SetupRequest 初始化用户档案请求
type SetupRequest struct {
	Name               string  `json:"name" binding:"required" example:"Asha"`
	Salary             float64 `json:"salary" binding:"required,gt=0" example:"80000"`
	InitialBalance     float64 `json:"initialBalance" binding:"gte=0" example:"5000"`
	MonthlyExpenseGoal float64 `json:"monthlyExpenseGoal" example:"56000"`
}

// Setup 初始化用户档案
// @Summary 初始化用户档案
// @Description 设置姓名、月薪、初始余额和月度支出目标，未指定目标时默认按月薪的 70% 计算
// @Tags 用户
// @Accept json
// @Produce json
// @Param request body SetupRequest true "用户档案信息"
// @Success 200 {object} Response{data=models.UserProfile} "设置成功"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/v1/setup [post]
func (h *UserHandler) Setup(c *gin.Context) {
	var req SetupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		BadRequest(c, "姓名不能为空")
		return
	}
	if req.MonthlyExpenseGoal < 0 {
		BadRequest(c, "月度支出目标不能为负数")
		return
	}

	goal := req.MonthlyExpenseGoal
	if goal == 0 {
		goal = req.Salary * models.DefaultGoalRatio
	}

	user := models.UserProfile{
		Name:               req.Name,
		Salary:             req.Salary,
		InitialBalance:     req.InitialBalance,
		MonthlyExpenseGoal: goal,
		CreatedAt:          time.Now(),
	}

	if err := h.store.SetUser(user, time.Now()); err != nil {
		InternalError(c, SafeErrorMessage(err, "保存用户档案失败"))
		return
	}

	saved, _ := h.store.User()
	SuccessWithMessage(c, "设置成功", saved)
}

// Profile 获取用户档案
// @Summary 获取用户档案
// @Description 获取当前用户档案及账户余额
// @Tags 用户
// @Produce json
// @Success 200 {object} Response{data=models.UserProfile} "获取成功"
// @Failure 404 {object} Response "档案未设置"
// @Router /api/v1/profile [get]
func (h *UserHandler) Profile(c *gin.Context) {
	user, ok := h.store.User()
	if !ok {
		NotFound(c, "用户档案未设置")
		return
	}
	Success(c, user)
}

// Logout 退出并清空数据
// @Summary 退出并清空数据
// @Description 清除用户档案和全部交易记录
// @Tags 用户
// @Produce json
// @Success 200 {object} Response "已退出"
// @Failure 500 {object} Response "清除数据失败"
// @Router /api/v1/logout [post]
func (h *UserHandler) Logout(c *gin.Context) {
	if err := h.store.Logout(); err != nil {
		InternalError(c, SafeErrorMessage(err, "清除数据失败"))
		return
	}
	SuccessWithMessage(c, "已退出", nil)
}
