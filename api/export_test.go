package api

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"expensetracker/models"
	"expensetracker/state"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exportRouter(store *state.Store) *gin.Engine {
	router := gin.New()
	h := NewExportHandler(store)
	router.GET("/export/csv", h.ExportCSV)
	router.GET("/export/json", h.ExportJSON)
	router.GET("/export/excel", h.ExportExcel)
	return router
}

func exportStore(t *testing.T) *state.Store {
	store := newTestStoreWithUser(t)
	d1, _ := time.Parse(models.DateLayout, "2024-03-15")
	d2, _ := time.Parse(models.DateLayout, "2024-04-01")
	_, err := store.AddTransaction(d1, models.CategoryFood, -450, "午餐")
	require.NoError(t, err)
	_, err = store.AddTransaction(d2, models.CategoryBills, 5000, "工资")
	require.NoError(t, err)
	return store
}

func TestExportHandler_ExportCSV(t *testing.T) {
	store := exportStore(t)
	router := exportRouter(store)

	w := doJSON(router, "GET", "/export/csv", nil)
	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	// BOM 前缀
	assert.True(t, strings.HasPrefix(w.Body.String(), "\xEF\xBB\xBF"))
	assert.Contains(t, w.Body.String(), "Date")
	assert.Contains(t, w.Body.String(), "₹450.00")
}

func TestExportHandler_ExportCSV_MonthFilter(t *testing.T) {
	store := exportStore(t)
	router := exportRouter(store)

	w := doJSON(router, "GET", "/export/csv?month=2024-03", nil)
	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), "2024-03-15")
	assert.NotContains(t, w.Body.String(), "2024-04-01")

	// 月份格式错误
	w = doJSON(router, "GET", "/export/csv?month=March", nil)
	assert.Equal(t, 400, w.Code)
}

func TestExportHandler_ExportJSON(t *testing.T) {
	store := exportStore(t)
	router := exportRouter(store)

	w := doJSON(router, "GET", "/export/json", nil)
	require.Equal(t, 200, w.Code)

	var resp struct {
		Data struct {
			TotalCount   int     `json:"total_count"`
			TotalIncome  float64 `json:"total_income"`
			TotalExpense float64 `json:"total_expense"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Data.TotalCount)
	assert.Equal(t, 5000.0, resp.Data.TotalIncome)
	assert.Equal(t, 450.0, resp.Data.TotalExpense)
}

func TestExportHandler_ExportExcel(t *testing.T) {
	store := exportStore(t)
	router := exportRouter(store)

	w := doJSON(router, "GET", "/export/excel", nil)
	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "spreadsheetml")
	assert.NotEmpty(t, w.Body.Bytes())
}
