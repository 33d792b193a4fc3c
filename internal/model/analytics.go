// internal/model/analytics.go
package model

import "github.com/google/uuid"

// HabitWeeklyRate は習慣ごとの直近7日間の達成率です
type HabitWeeklyRate struct {
	HabitID uuid.UUID `json:"habit_id"`
	Name    string    `json:"name"`
	Icon    string    `json:"icon"`
	Rate    int       `json:"rate"` // [0,100]
}

// CategoryCount はカテゴリ別の習慣数です
type CategoryCount struct {
	Category Category `json:"category"`
	Count    int      `json:"count"`
}

// AnalyticsSummaryResponse は分析タブのレスポンスDTO
type AnalyticsSummaryResponse struct {
	OverallCompletionRate int               `json:"overall_completion_rate"`
	CategoryBreakdown     []CategoryCount   `json:"category_breakdown"`
	HabitRates            []HabitWeeklyRate `json:"habit_rates"`
	MostConsistent        *HabitWeeklyRate  `json:"most_consistent,omitempty"`
	NeedsImprovement      *HabitWeeklyRate  `json:"needs_improvement,omitempty"`
}

// Insight の種別
const (
	InsightKindConsistency = "consistency"
	InsightKindGoalSetting = "goal_setting"
	InsightKindStreak      = "streak"
)

// Insight はルールベースで生成される提案テキストです
type Insight struct {
	Kind    string `json:"kind"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// WeeklyChartPoint は今週のチャート描画用の1日分のデータです
type WeeklyChartPoint struct {
	Day   string  `json:"day"` // "Mon" など
	Value float64 `json:"value"`
	Goal  float64 `json:"goal"`
}

// HabitStatsResponse は習慣詳細の統計レスポンスDTO
type HabitStatsResponse struct {
	HabitID              uuid.UUID          `json:"habit_id"`
	WeeklyCompletionRate int                `json:"weekly_completion_rate"`
	Week                 []WeeklyChartPoint `json:"week"`
}
