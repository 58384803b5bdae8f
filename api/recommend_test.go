package api

import (
	"encoding/json"
	"testing"
	"time"

	"expensetracker/engine"
	"expensetracker/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommendHandler_NoUser(t *testing.T) {
	store := newTestStore(t)
	router := gin.New()
	router.GET("/recommendations", NewRecommendHandler(store).Recommendations)

	w := doJSON(router, "GET", "/recommendations", nil)
	assert.Equal(t, 404, w.Code)
}

func TestRecommendHandler_Recommendations(t *testing.T) {
	store := newTestStoreWithUser(t)

	today, _ := time.Parse(models.DateLayout, time.Now().Format(models.DateLayout))
	// Food 建议额度 = 56000 * 0.25 = 14000，本月花 20000 即超支
	_, err := store.AddTransaction(today, models.CategoryFood, -20000, "")
	require.NoError(t, err)
	_, err = store.AddTransaction(today, models.CategoryEducation, -100, "")
	require.NoError(t, err)

	router := gin.New()
	router.GET("/recommendations", NewRecommendHandler(store).Recommendations)

	w := doJSON(router, "GET", "/recommendations", nil)
	require.Equal(t, 200, w.Code)

	var resp struct {
		Data RecommendResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data.Recommendations, 2)
	// 超支类别排在最前
	assert.Equal(t, models.CategoryFood, resp.Data.Recommendations[0].Category)
	assert.Equal(t, 1, resp.Data.Summary.Over)
	assert.Equal(t, 1, resp.Data.Summary.Under)
}

func TestRecommendHandler_UsesEditedGoalTarget(t *testing.T) {
	store := newTestStoreWithUser(t)

	today, _ := time.Parse(models.DateLayout, time.Now().Format(models.DateLayout))
	_, err := store.AddTransaction(today, models.CategoryFood, -300, "")
	require.NoError(t, err)

	// 把当月目标改为 1000，建议额度应随之变化
	goal := engine.FindGoal(store.Goals(), models.MonthKeyOf(time.Now()))
	require.NotNil(t, goal)
	require.NoError(t, store.SetGoalTarget(goal.ID, 1000))

	router := gin.New()
	router.GET("/recommendations", NewRecommendHandler(store).Recommendations)

	w := doJSON(router, "GET", "/recommendations", nil)
	require.Equal(t, 200, w.Code)

	var resp struct {
		Data RecommendResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data.Recommendations, 1)
	// Food 建议额度 = 1000 * 0.25
	assert.Equal(t, 250.0, resp.Data.Recommendations[0].RecommendedAmount)
}
