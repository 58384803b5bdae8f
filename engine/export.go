package engine

import (
	"expensetracker/currency"
	"expensetracker/models"
)

// ExportHeaders 导出表格的列头
func ExportHeaders() []string {
	return []string{"Date", "Category", "Amount (₹)", "Description", "Type"}
}

// ExportRows 交易日志的表格投影：每条交易一行，金额取绝对值并格式化。
// 文件的生成与下发由外部协作方完成，引擎只产出行列数据。
func ExportRows(txs []models.Transaction) [][]string {
	rows := make([][]string, 0, len(txs))
	for _, t := range txs {
		rows = append(rows, []string{
			t.DateKey(),
			t.Category,
			currency.FormatINR(t.AbsAmount()),
			t.Description,
			t.Type,
		})
	}
	return rows
}
