package api

import (
	"time"

	"expensetracker/engine"
	"expensetracker/models"
	"expensetracker/state"

	"github.com/gin-gonic/gin"
)

// RecommendHandler 预算建议处理器
type RecommendHandler struct {
	store *state.Store
}

// NewRecommendHandler 创建预算建议处理器
func NewRecommendHandler(store *state.Store) *RecommendHandler {
	return &RecommendHandler{store: store}
}

// RecommendResponse 预算建议响应
type RecommendResponse struct {
	Recommendations []engine.Recommendation      `json:"recommendations"`
	Summary         engine.RecommendationSummary `json:"summary"`
}

// Recommendations 获取本月预算建议
// @Summary 获取本月预算建议
// @Description 按类别对比本月实际支出与建议预算，超支类别排在最前
// @Tags 预算建议
// @Produce json
// @Success 200 {object} Response{data=RecommendResponse} "获取成功"
// @Failure 404 {object} Response "档案未设置"
// @Router /api/v1/recommendations [get]
func (h *RecommendHandler) Recommendations(c *gin.Context) {
	user, ok := h.store.User()
	if !ok {
		NotFound(c, "用户档案未设置")
		return
	}

	now := time.Now()

	// 建议额度基于当月目标金额，目标被编辑后建议随之变化
	goalTarget := user.GoalOrDefault()
	if goal := engine.FindGoal(h.store.Goals(), models.MonthKeyOf(now)); goal != nil {
		goalTarget = goal.TargetAmount
	}

	recs := engine.Recommend(h.store.Transactions(), now, goalTarget)
	Success(c, RecommendResponse{
		Recommendations: recs,
		Summary:         engine.Summarize(recs),
	})
}
