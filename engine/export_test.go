package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expensetracker/models"
)

func TestExportRows(t *testing.T) {
	tx1 := mustTx(t, "2024-03-10", models.CategoryFood, -200)
	tx1.Description = "Lunch"
	tx2 := mustTx(t, "2024-03-01", "Salary", 50000)

	rows := ExportRows([]models.Transaction{tx1, tx2})
	require.Len(t, rows, 2)
	// 金额取绝对值并格式化，方向由 type 列表达
	assert.Equal(t, []string{"2024-03-10", "Food", "₹200.00", "Lunch", "expense"}, rows[0])
	assert.Equal(t, []string{"2024-03-01", "Salary", "₹50,000.00", "", "income"}, rows[1])
}

func TestExportRows_Empty(t *testing.T) {
	assert.Empty(t, ExportRows(nil))
	assert.Len(t, ExportHeaders(), 5)
}
