package api

import (
	"errors"
	"time"

	"expensetracker/engine"
	"expensetracker/state"

	"github.com/gin-gonic/gin"
)

// RewardHandler 奖励处理器
type RewardHandler struct {
	store *state.Store
}

// NewRewardHandler 创建奖励处理器
func NewRewardHandler(store *state.Store) *RewardHandler {
	return &RewardHandler{store: store}
}

// AddPointsRequest 增加积分请求
type AddPointsRequest struct {
	Points int `json:"points" binding:"required" example:"50"`
}

// Ladder 获取奖励阶梯
// @Summary 获取奖励阶梯
// @Description 获取全部奖励及当前积分下的解锁状态和下一个奖励的进度
// @Tags 奖励
// @Produce json
// @Success 200 {object} Response{data=engine.Ladder} "获取成功"
// @Router /api/v1/rewards [get]
func (h *RewardHandler) Ladder(c *gin.Context) {
	points := 0
	if user, ok := h.store.User(); ok {
		points = user.RewardPoints
	}
	Success(c, engine.LadderState(h.store.Rewards(), points))
}

// AddPoints 增加奖励积分
// @Summary 增加奖励积分
// @Description 调整用户积分，结果不允许为负数
// @Tags 奖励
// @Accept json
// @Produce json
// @Param request body AddPointsRequest true "积分增量"
// @Success 200 {object} Response{data=int} "调整后积分"
// @Failure 400 {object} Response "积分不合法"
// @Router /api/v1/rewards/points [post]
func (h *RewardHandler) AddPoints(c *gin.Context) {
	var req AddPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	total, err := h.store.AddRewardPoints(req.Points)
	if err != nil {
		switch {
		case errors.Is(err, state.ErrNoUser), errors.Is(err, state.ErrNegativePoints):
			BadRequest(c, err.Error())
		default:
			InternalError(c, SafeErrorMessage(err, "调整积分失败"))
		}
		return
	}
	Success(c, total)
}

// Unlock 解锁奖励
// @Summary 解锁奖励
// @Description 手动标记奖励为已解锁，重复解锁不改变首次解锁时间
// @Tags 奖励
// @Produce json
// @Param id path string true "奖励 ID"
// @Success 200 {object} Response "解锁成功"
// @Failure 404 {object} Response "奖励不存在"
// @Router /api/v1/rewards/{id}/unlock [post]
func (h *RewardHandler) Unlock(c *gin.Context) {
	id := c.Param("id")
	if err := h.store.UnlockReward(id, time.Now()); err != nil {
		if errors.Is(err, engine.ErrRewardNotFound) {
			NotFound(c, err.Error())
			return
		}
		InternalError(c, SafeErrorMessage(err, "解锁奖励失败"))
		return
	}
	SuccessWithMessage(c, "解锁成功", nil)
}
