package engine

import (
	"sort"
	"time"

	"expensetracker/models"
)

// 建议状态
const (
	StatusUnder   = "under"
	StatusOver    = "over"
	StatusOptimal = "optimal"
)

// 分类状态的百分比边界：低于 80% 偏低，严格高于 120% 超支，其余为适中
const (
	underThreshold = 80
	overThreshold  = 120
)

// Recommendation 某类别的消费建议
type Recommendation struct {
	Category          string  `json:"category"`
	RecommendedAmount float64 `json:"recommendedAmount"`
	CurrentAmount     float64 `json:"currentAmount"`
	Percentage        float64 `json:"percentage"`
	Status            string  `json:"status"`
}

// RecommendationSummary 建议列表的状态计数
type RecommendationSummary struct {
	Over    int `json:"over"`
	Under   int `json:"under"`
	Optimal int `json:"optimal"`
}

// allocationTable 各类别建议支出占月度目标的固定比例
var allocationTable = map[string]float64{
	models.CategoryFood:          0.25,
	models.CategoryTransport:     0.15,
	models.CategoryEntertainment: 0.10,
	models.CategoryShopping:      0.20,
	models.CategoryBills:         0.20,
	models.CategoryHealthcare:    0.05,
	models.CategoryEducation:     0.03,
	models.CategoryOther:         0.02,
}

// defaultAllocation 表外类别的兜底比例
const defaultAllocation = 0.10

// RecommendedAmount 某类别在给定月度目标下的建议支出金额
func RecommendedAmount(category string, monthlyGoal float64) float64 {
	ratio, ok := allocationTable[category]
	if !ok {
		ratio = defaultAllocation
	}
	return monthlyGoal * ratio
}

// Recommend 对当月有支出的类别逐一评级。
// 零支出的类别不产生建议——引擎只评价观察到的消费，不评价预算空置。
// 排序：超支条目在前（保持出现顺序），其余按百分比降序。
func Recommend(txs []models.Transaction, now time.Time, monthlyGoal float64) []Recommendation {
	totals := CategoryTotals(txs, now.Year(), now.Month())

	recs := make([]Recommendation, 0, len(totals))
	for _, ct := range totals {
		recommended := RecommendedAmount(ct.Category, monthlyGoal)
		var percentage float64
		if recommended > 0 {
			percentage = ct.Amount / recommended * 100
		}
		status := StatusOptimal
		switch {
		case percentage < underThreshold:
			status = StatusUnder
		case percentage > overThreshold:
			status = StatusOver
		}
		recs = append(recs, Recommendation{
			Category:          ct.Category,
			RecommendedAmount: recommended,
			CurrentAmount:     ct.Amount,
			Percentage:        percentage,
			Status:            status,
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		if (recs[i].Status == StatusOver) != (recs[j].Status == StatusOver) {
			return recs[i].Status == StatusOver
		}
		if recs[i].Status == StatusOver {
			// 超支条目之间保持出现顺序
			return false
		}
		return recs[i].Percentage > recs[j].Percentage
	})
	return recs
}

// Summarize 统计建议列表中各状态的条目数
func Summarize(recs []Recommendation) RecommendationSummary {
	var s RecommendationSummary
	for _, r := range recs {
		switch r.Status {
		case StatusOver:
			s.Over++
		case StatusUnder:
			s.Under++
		default:
			s.Optimal++
		}
	}
	return s
}
