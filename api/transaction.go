package api

import (
	"errors"
	"sort"
	"strings"
	"time"

	"expensetracker/models"
	"expensetracker/state"

	"github.com/gin-gonic/gin"
)

// TransactionHandler 交易记录处理器
type TransactionHandler struct {
	store *state.Store
}

// NewTransactionHandler 创建交易记录处理器
func NewTransactionHandler(store *state.Store) *TransactionHandler {
	return &TransactionHandler{store: store}
}

// CreateTransactionRequest 创建交易记录请求
// 金额为正表示收入，为负表示支出
type CreateTransactionRequest struct {
	Date        string  `json:"date" binding:"required" example:"2024-03-15"`
	Category    string  `json:"category" binding:"required" example:"Food"`
	Amount      float64 `json:"amount" binding:"required" example:"-450"`
	Description string  `json:"description" example:"午餐"`
}

// TransactionListRequest 交易记录列表请求
type TransactionListRequest struct {
	Page     int    `form:"page" example:"1"`
	PageSize int    `form:"page_size" example:"10"`
	Category string `form:"category" example:"Food"`
	Type     string `form:"type" example:"expense"`
	Month    string `form:"month" example:"2024-03"`
}

// Create 创建交易记录
// @Summary 创建交易记录
// @Description 创建一条新的交易记录，金额为正表示收入，为负表示支出
// @Tags 交易记录
// @Accept json
// @Produce json
// @Param request body CreateTransactionRequest true "交易记录信息"
// @Success 200 {object} Response{data=models.Transaction} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/v1/transactions [post]
func (h *TransactionHandler) Create(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	req.Category = strings.TrimSpace(req.Category)
	if req.Category == "" {
		BadRequest(c, "类别不能为空")
		return
	}
	if !models.IsKnownCategory(req.Category) {
		BadRequest(c, "无效的交易类别")
		return
	}

	date, err := time.ParseInLocation(models.DateLayout, req.Date, time.Local)
	if err != nil {
		BadRequest(c, "日期格式错误，应为: 2006-01-02")
		return
	}

	tx, err := h.store.AddTransaction(date, req.Category, req.Amount, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, state.ErrNoUser):
			BadRequest(c, err.Error())
		case errors.Is(err, models.ErrZeroAmount), errors.Is(err, models.ErrEmptyCategory):
			BadRequest(c, err.Error())
		default:
			InternalError(c, SafeErrorMessage(err, "创建交易记录失败"))
		}
		return
	}

	SuccessWithMessage(c, "创建成功", tx)
}

// List 获取交易记录列表
// @Summary 获取交易记录列表
// @Description 获取全部交易记录，按日期倒序，支持分页、类别、类型和月份筛选
// @Tags 交易记录
// @Produce json
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(10)
// @Param category query string false "类别筛选"
// @Param type query string false "类型筛选 (income/expense)"
// @Param month query string false "月份筛选 (2024-03)"
// @Success 200 {object} Response{data=PageResponse{list=[]models.Transaction}} "获取成功"
// @Router /api/v1/transactions [get]
func (h *TransactionHandler) List(c *gin.Context) {
	var req TransactionListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	// 默认分页参数
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 10
	}
	if req.PageSize > 100 {
		req.PageSize = 100
	}

	txs := h.store.Transactions()

	filtered := make([]models.Transaction, 0, len(txs))
	for _, tx := range txs {
		if req.Category != "" && tx.Category != req.Category {
			continue
		}
		if req.Type != "" && tx.Type != req.Type {
			continue
		}
		if req.Month != "" && tx.MonthKey() != req.Month {
			continue
		}
		filtered = append(filtered, tx)
	}

	// 按日期倒序，同日保持录入顺序
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Date.After(filtered[j].Date)
	})

	total := len(filtered)
	start := (req.Page - 1) * req.PageSize
	if start > total {
		start = total
	}
	end := start + req.PageSize
	if end > total {
		end = total
	}

	Success(c, PageResponse{
		Total:    int64(total),
		Page:     req.Page,
		PageSize: req.PageSize,
		List:     filtered[start:end],
	})
}

// Delete 删除交易记录
// @Summary 删除交易记录
// @Description 删除指定交易记录，并回滚其对月度目标的影响
// @Tags 交易记录
// @Produce json
// @Param id path string true "交易记录 ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/transactions/{id} [delete]
func (h *TransactionHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.store.DeleteTransaction(id); err != nil {
		if errors.Is(err, state.ErrTransactionNotFound) {
			NotFound(c, err.Error())
			return
		}
		InternalError(c, SafeErrorMessage(err, "删除交易记录失败"))
		return
	}
	SuccessWithMessage(c, "删除成功", nil)
}

// Categories 获取支出类别列表
// @Summary 获取支出类别列表
// @Description 获取预置的支出类别
// @Tags 交易记录
// @Produce json
// @Success 200 {object} Response{data=[]string} "获取成功"
// @Router /api/v1/categories [get]
func (h *TransactionHandler) Categories(c *gin.Context) {
	Success(c, models.ExpenseCategories())
}
