package api

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"expensetracker/engine"
	"expensetracker/models"
	"expensetracker/state"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func goalRouter(store *state.Store) *gin.Engine {
	router := gin.New()
	h := NewGoalHandler(store)
	router.GET("/goals", h.List)
	router.GET("/goals/current", h.Current)
	router.PUT("/goals/:id", h.Update)
	return router
}

func TestGoalHandler_List(t *testing.T) {
	store := newTestStoreWithUser(t)
	router := goalRouter(store)

	w := doJSON(router, "GET", "/goals", nil)
	require.Equal(t, 200, w.Code)

	var resp struct {
		Data []GoalView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 12)
	// 无支出时全部达标
	for _, g := range resp.Data {
		assert.True(t, g.IsAchieved)
	}
}

func TestGoalHandler_Current(t *testing.T) {
	store := newTestStoreWithUser(t)
	router := goalRouter(store)

	w := doJSON(router, "GET", "/goals/current", nil)
	require.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), models.MonthKeyOf(time.Now()))
}

func TestGoalHandler_Update(t *testing.T) {
	store := newTestStoreWithUser(t)
	goals := store.Goals()
	require.NotEmpty(t, goals)
	goal := engine.FindGoal(goals, models.MonthKeyOf(time.Now()))
	require.NotNil(t, goal)

	router := goalRouter(store)

	w := doJSON(router, "PUT", fmt.Sprintf("/goals/%s", goal.ID), gin.H{"targetAmount": 30000})
	assert.Equal(t, 200, w.Code)

	updated := engine.FindGoal(store.Goals(), goal.Month)
	require.NotNil(t, updated)
	assert.Equal(t, 30000.0, updated.TargetAmount)

	// 金额必须大于 0
	w = doJSON(router, "PUT", fmt.Sprintf("/goals/%s", goal.ID), gin.H{"targetAmount": -1})
	assert.Equal(t, 400, w.Code)

	// 目标不存在
	w = doJSON(router, "PUT", "/goals/goal_missing", gin.H{"targetAmount": 30000})
	assert.Equal(t, 404, w.Code)
}
