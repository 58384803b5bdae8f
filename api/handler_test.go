package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"expensetracker/models"
	"expensetracker/state"
	"expensetracker/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// newTestStore 构建内存存储上的状态实例
func newTestStore(t *testing.T) *state.Store {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := state.NewStore(storage.NewMemoryRepository(), false)
	require.NoError(t, store.Load(time.Now()))
	return store
}

// newTestStoreWithUser 构建已设置档案的状态实例
func newTestStoreWithUser(t *testing.T) *state.Store {
	t.Helper()
	store := newTestStore(t)
	user := models.UserProfile{
		Name:           "Asha",
		Salary:         80000,
		InitialBalance: 5000,
		CreatedAt:      time.Now(),
	}
	user.MonthlyExpenseGoal = user.Salary * models.DefaultGoalRatio
	require.NoError(t, store.SetUser(user, time.Now()))
	return store
}

// doJSON 发送 JSON 请求并返回响应
func doJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewBuffer(data)
	} else {
		reader = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// parseResponse 解析通用响应结构
func parseResponse(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}
