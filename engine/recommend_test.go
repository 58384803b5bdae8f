package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expensetracker/models"
)

func TestRecommendedAmount(t *testing.T) {
	assert.Equal(t, 250.0, RecommendedAmount(models.CategoryFood, 1000))
	assert.Equal(t, 150.0, RecommendedAmount(models.CategoryTransport, 1000))
	assert.Equal(t, 20.0, RecommendedAmount(models.CategoryOther, 1000))
	// 表外类别走兜底比例 10%
	assert.Equal(t, 100.0, RecommendedAmount("Pets", 1000))
}

func TestRecommend_ExactBoundary(t *testing.T) {
	// 目标 1000，Food 支出 300 → 建议 250，百分比恰好 120%。
	// 超支边界是严格大于 120，所以恰好 120% 评为适中。
	now := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.Local)
	txs := []models.Transaction{mustTx(t, "2024-03-10", models.CategoryFood, -300)}

	recs := Recommend(txs, now, 1000)
	require.Len(t, recs, 1)
	assert.Equal(t, 250.0, recs[0].RecommendedAmount)
	assert.InDelta(t, 120.0, recs[0].Percentage, 1e-9)
	assert.Equal(t, StatusOptimal, recs[0].Status)
}

func TestRecommend_Classification(t *testing.T) {
	now := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.Local)
	txs := []models.Transaction{
		mustTx(t, "2024-03-01", models.CategoryFood, -100),          // 100/250 = 40% → under
		mustTx(t, "2024-03-02", models.CategoryShopping, -250),      // 250/200 = 125% → over
		mustTx(t, "2024-03-03", models.CategoryEntertainment, -100), // 100/100 = 100% → optimal
	}
	recs := Recommend(txs, now, 1000)
	require.Len(t, recs, 3)

	byCat := map[string]Recommendation{}
	for _, r := range recs {
		byCat[r.Category] = r
	}
	assert.Equal(t, StatusUnder, byCat[models.CategoryFood].Status)
	assert.Equal(t, StatusOver, byCat[models.CategoryShopping].Status)
	assert.Equal(t, StatusOptimal, byCat[models.CategoryEntertainment].Status)

	// 超支条目排最前，其余按百分比降序
	assert.Equal(t, models.CategoryShopping, recs[0].Category)
	assert.Equal(t, models.CategoryEntertainment, recs[1].Category)
	assert.Equal(t, models.CategoryFood, recs[2].Category)
}

func TestRecommend_ZeroSpendSkipped(t *testing.T) {
	// 零支出类别不产生建议——引擎只评价观察到的消费
	now := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.Local)
	assert.Empty(t, Recommend(nil, now, 1000))

	// 只有收入也不产生建议
	txs := []models.Transaction{mustTx(t, "2024-03-01", "Salary", 5000)}
	assert.Empty(t, Recommend(txs, now, 1000))
}

func TestRecommend_OtherMonthExcluded(t *testing.T) {
	now := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.Local)
	txs := []models.Transaction{mustTx(t, "2024-02-10", models.CategoryFood, -300)}
	assert.Empty(t, Recommend(txs, now, 1000))
}

func TestSummarize(t *testing.T) {
	recs := []Recommendation{
		{Status: StatusOver},
		{Status: StatusOver},
		{Status: StatusUnder},
		{Status: StatusOptimal},
	}
	s := Summarize(recs)
	assert.Equal(t, 2, s.Over)
	assert.Equal(t, 1, s.Under)
	assert.Equal(t, 1, s.Optimal)
}
