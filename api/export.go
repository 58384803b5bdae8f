package api

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"expensetracker/engine"
	"expensetracker/models"
	"expensetracker/state"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportHandler 导出处理器
type ExportHandler struct {
	store *state.Store
}

// NewExportHandler 创建导出处理器
func NewExportHandler(store *state.Store) *ExportHandler {
	return &ExportHandler{store: store}
}

// filteredTransactions 按可选月份参数筛选交易
func (h *ExportHandler) filteredTransactions(c *gin.Context) ([]models.Transaction, bool) {
	month := c.Query("month")
	if month != "" {
		if _, err := time.Parse(models.MonthLayout, month); err != nil {
			BadRequest(c, "月份格式错误，应为: 2006-01")
			return nil, false
		}
	}

	txs := h.store.Transactions()
	filtered := make([]models.Transaction, 0, len(txs))
	for _, tx := range txs {
		if month != "" && tx.MonthKey() != month {
			continue
		}
		filtered = append(filtered, tx)
	}
	return filtered, true
}

// ExportCSV 导出交易记录为 CSV
// @Summary 导出交易记录
// @Description 导出交易记录为 CSV 文件，支持按月份筛选
// @Tags 导出
// @Produce text/csv
// @Param month query string false "月份筛选 (2024-03)"
// @Success 200 {file} file "CSV 文件"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/v1/export/csv [get]
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	txs, ok := h.filteredTransactions(c)
	if !ok {
		return
	}

	// 生成 CSV
	buf := new(bytes.Buffer)
	// 添加 BOM 以支持 Excel 中文显示
	buf.WriteString("\xEF\xBB\xBF")

	writer := csv.NewWriter(buf)

	if err := writer.Write(engine.ExportHeaders()); err != nil {
		InternalError(c, "生成 CSV 失败")
		return
	}
	for _, row := range engine.ExportRows(txs) {
		if err := writer.Write(row); err != nil {
			InternalError(c, "生成 CSV 失败")
			return
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		InternalError(c, "生成 CSV 失败")
		return
	}

	// 设置响应头
	filename := fmt.Sprintf("transactions_%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Length", fmt.Sprintf("%d", buf.Len()))

	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ExportJSON 导出交易记录为 JSON
// @Summary 导出交易记录为 JSON
// @Description 导出交易记录为 JSON 格式，附带汇总信息
// @Tags 导出
// @Produce json
// @Param month query string false "月份筛选 (2024-03)"
// @Success 200 {object} Response "导出成功"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/v1/export/json [get]
func (h *ExportHandler) ExportJSON(c *gin.Context) {
	txs, ok := h.filteredTransactions(c)
	if !ok {
		return
	}

	// 计算汇总信息
	var totalIncome, totalExpense float64
	for _, tx := range txs {
		if tx.IsIncome() {
			totalIncome += tx.Amount
		} else {
			totalExpense += tx.AbsAmount()
		}
	}

	Success(c, gin.H{
		"total_count":   len(txs),
		"total_income":  totalIncome,
		"total_expense": totalExpense,
		"transactions":  txs,
	})
}

// ExportExcel 导出交易记录为 Excel
// @Summary 导出交易记录为 Excel
// @Description 导出交易记录为 xlsx 文件，支持按月份筛选
// @Tags 导出
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param month query string false "月份筛选 (2024-03)"
// @Success 200 {file} file "Excel 文件"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/v1/export/excel [get]
func (h *ExportHandler) ExportExcel(c *gin.Context) {
	txs, ok := h.filteredTransactions(c)
	if !ok {
		return
	}

	// 创建 Excel 文件
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "交易记录"
	f.SetSheetName("Sheet1", sheetName)

	// 设置表头样式
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})

	// 数据样式
	dataStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})

	// 设置列宽
	f.SetColWidth(sheetName, "A", "A", 14)
	f.SetColWidth(sheetName, "B", "B", 16)
	f.SetColWidth(sheetName, "C", "C", 14)
	f.SetColWidth(sheetName, "D", "D", 30)
	f.SetColWidth(sheetName, "E", "E", 10)

	// 写入表头
	headers := engine.ExportHeaders()
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	// 写入数据
	var totalExpense float64
	for i, cells := range engine.ExportRows(txs) {
		row := i + 2
		for j, value := range cells {
			f.SetCellValue(sheetName, fmt.Sprintf("%c%d", 'A'+j, row), value)
		}
		f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("E%d", row), dataStyle)
		if txs[i].IsExpense() {
			totalExpense += txs[i].AbsAmount()
		}
	}

	// 添加汇总行
	summaryRow := len(txs) + 2
	summaryStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"FFC000"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})

	f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryRow), "合计支出")
	f.SetCellValue(sheetName, fmt.Sprintf("B%d", summaryRow), totalExpense)
	f.SetCellValue(sheetName, fmt.Sprintf("C%d", summaryRow), fmt.Sprintf("共 %d 条记录", len(txs)))
	f.MergeCell(sheetName, fmt.Sprintf("C%d", summaryRow), fmt.Sprintf("E%d", summaryRow))
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("E%d", summaryRow), summaryStyle)

	// 设置响应头
	filename := fmt.Sprintf("transactions_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))

	// 写入响应
	if err := f.Write(c.Writer); err != nil {
		InternalError(c, "生成 Excel 失败")
		return
	}
}
