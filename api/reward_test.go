package api

import (
	"encoding/json"
	"testing"

	"expensetracker/engine"
	"expensetracker/state"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rewardRouter(store *state.Store) *gin.Engine {
	router := gin.New()
	h := NewRewardHandler(store)
	router.GET("/rewards", h.Ladder)
	router.POST("/rewards/points", h.AddPoints)
	router.POST("/rewards/:id/unlock", h.Unlock)
	return router
}

func TestRewardHandler_Ladder(t *testing.T) {
	store := newTestStoreWithUser(t)
	router := rewardRouter(store)

	_, err := store.AddRewardPoints(150)
	require.NoError(t, err)

	w := doJSON(router, "GET", "/rewards", nil)
	require.Equal(t, 200, w.Code)

	var resp struct {
		Data engine.Ladder `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 150, resp.Data.Points)
	require.Len(t, resp.Data.Rewards, 4)

	// 150 分可解锁 100 和 150 两档
	unlocked := 0
	for _, r := range resp.Data.Rewards {
		if r.IsUnlocked {
			unlocked++
		}
	}
	assert.Equal(t, 2, unlocked)
	require.NotNil(t, resp.Data.NextReward)
	assert.Equal(t, 200, resp.Data.NextReward.PointsRequired)
}

func TestRewardHandler_AddPoints(t *testing.T) {
	store := newTestStoreWithUser(t)
	router := rewardRouter(store)

	w := doJSON(router, "POST", "/rewards/points", gin.H{"points": 50})
	require.Equal(t, 200, w.Code)

	user, _ := store.User()
	assert.Equal(t, 50, user.RewardPoints)

	// 积分不允许减成负数
	w = doJSON(router, "POST", "/rewards/points", gin.H{"points": -100})
	assert.Equal(t, 400, w.Code)
}

func TestRewardHandler_Unlock(t *testing.T) {
	store := newTestStoreWithUser(t)
	router := rewardRouter(store)

	w := doJSON(router, "POST", "/rewards/reward_1/unlock", nil)
	assert.Equal(t, 200, w.Code)

	rewards := store.Rewards()
	var found bool
	for _, r := range rewards {
		if r.ID == "reward_1" {
			found = true
			assert.True(t, r.IsUnlocked)
			assert.NotNil(t, r.UnlockedAt)
		}
	}
	assert.True(t, found)

	// 奖励不存在
	w = doJSON(router, "POST", "/rewards/reward_404/unlock", nil)
	assert.Equal(t, 404, w.Code)
}
