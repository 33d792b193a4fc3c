// internal/service/analytics_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go_habit_keep/internal/clock"
	"go_habit_keep/internal/config"
	"go_habit_keep/internal/middleware"
	"go_habit_keep/internal/model"
	"go_habit_keep/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AnalyticsService は現在の習慣データと注入された時計から
// 統計と提案テキストを導出します。隠れた状態は持ちません。
type AnalyticsService interface {
	GetSummary(ctx context.Context) (*model.AnalyticsSummaryResponse, error)
	GetInsights(ctx context.Context) ([]model.Insight, error)
	GetHabitStats(ctx context.Context, habitID uuid.UUID) (*model.HabitStatsResponse, error)
}

type analyticsService struct {
	db          *gorm.DB
	habitRepo   repository.HabitRepository
	accountRepo repository.AccountRepository
	clk         clock.Clock
	cfg         *config.Config
}

func NewAnalyticsService(db *gorm.DB, habitRepo repository.HabitRepository, accountRepo repository.AccountRepository, clk clock.Clock, cfg *config.Config) AnalyticsService {
	return &analyticsService{
		db:          db,
		habitRepo:   habitRepo,
		accountRepo: accountRepo,
		clk:         clk,
		cfg:         cfg,
	}
}

// weeklyCompletionRate は直近7日間 (today-7日より後) のentryのうち
// 達成済みの割合を四捨五入した整数で返します。entryが無ければ0。
func weeklyCompletionRate(entries []model.Entry, today time.Time) int {
	cutoff := clock.Day(today).AddDate(0, 0, -config.DefaultWeeklyWindowDays)

	total := 0
	completed := 0
	for i := range entries {
		if !clock.Day(entries[i].Date).After(cutoff) {
			continue
		}
		total++
		if entries[i].Completed {
			completed++
		}
	}

	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

func (s *analyticsService) GetSummary(ctx context.Context) (*model.AnalyticsSummaryResponse, error) {
	logger := middleware.GetLogger(ctx)

	habits, err := s.habitRepo.List(ctx, s.db, model.HabitFilter{})
	if err != nil {
		logger.Error("Error listing habits for analytics", "error", err)
		return nil, model.ErrInternalServer
	}

	today := s.clk.Now()

	summary := &model.AnalyticsSummaryResponse{
		CategoryBreakdown: []model.CategoryCount{},
		HabitRates:        []model.HabitWeeklyRate{},
	}

	categoryCounts := map[model.Category]int{}
	categoryOrder := []model.Category{}
	rateSum := 0
	bestIdx, worstIdx := 0, 0

	for i, habit := range habits {
		rate := weeklyCompletionRate(habit.Entries, today)
		rateSum += rate

		summary.HabitRates = append(summary.HabitRates, model.HabitWeeklyRate{
			HabitID: habit.HabitID,
			Name:    habit.Name,
			Icon:    habit.Icon,
			Rate:    rate,
		})

		if _, seen := categoryCounts[habit.Category]; !seen {
			categoryOrder = append(categoryOrder, habit.Category)
		}
		categoryCounts[habit.Category]++

		// 同率の場合はレジストリ登録順で先のものが勝つ (厳密な大小比較)
		if rate > summary.HabitRates[bestIdx].Rate {
			bestIdx = i
		}
		if rate < summary.HabitRates[worstIdx].Rate {
			worstIdx = i
		}
	}

	if len(summary.HabitRates) > 0 {
		summary.MostConsistent = &summary.HabitRates[bestIdx]
		summary.NeedsImprovement = &summary.HabitRates[worstIdx]
	}

	for _, category := range categoryOrder {
		summary.CategoryBreakdown = append(summary.CategoryBreakdown, model.CategoryCount{
			Category: category,
			Count:    categoryCounts[category],
		})
	}

	if len(habits) > 0 {
		summary.OverallCompletionRate = int(math.Round(float64(rateSum) / float64(len(habits))))
	}

	return summary, nil
}

func (s *analyticsService) GetInsights(ctx context.Context) ([]model.Insight, error) {
	logger := middleware.GetLogger(ctx)

	habits, err := s.habitRepo.List(ctx, s.db, model.HabitFilter{})
	if err != nil {
		logger.Error("Error listing habits for insights", "error", err)
		return nil, model.ErrInternalServer
	}

	// 習慣が無い場合のプレースホルダ
	if len(habits) == 0 {
		return []model.Insight{
			{Kind: model.InsightKindConsistency, Title: "Consistency Analysis", Message: "Add habits to see consistency analysis."},
			{Kind: model.InsightKindGoalSetting, Title: "Goal Setting", Message: "Add habits to get goal setting recommendations."},
			{Kind: model.InsightKindStreak, Title: "Streaks Champion", Message: "Track your habits to build streaks."},
		}, nil
	}

	account, err := s.accountRepo.Find(ctx, s.db)
	if err != nil {
		logger.Error("Error finding account for insights", "error", err)
		return nil, model.ErrInternalServer
	}

	today := s.clk.Now()

	// 週間達成率の最大/最小と現在ストリークの最大。同率は登録順で先のものが勝つ
	mostConsistent := habits[0]
	firstBelowHalf := (*model.Habit)(nil)
	streakChampion := habits[0]
	for _, habit := range habits {
		if weeklyCompletionRate(habit.Entries, today) > weeklyCompletionRate(mostConsistent.Entries, today) {
			mostConsistent = habit
		}
		if firstBelowHalf == nil && weeklyCompletionRate(habit.Entries, today) < 50 {
			firstBelowHalf = habit
		}
		if habit.CurrentStreak > streakChampion.CurrentStreak {
			streakChampion = habit
		}
	}

	insights := []model.Insight{
		{
			Kind:  model.InsightKindConsistency,
			Title: "Consistency Analysis",
			Message: fmt.Sprintf("Your most consistent habit is %s with %d%% completion rate. Try to apply the same discipline to your other habits.",
				mostConsistent.Name, weeklyCompletionRate(mostConsistent.Entries, today)),
		},
	}

	// 固定の判定テーブル: 週間達成率50%未満の習慣があれば目標調整、なければ難易度アップを提案
	if firstBelowHalf != nil {
		insights = append(insights, model.Insight{
			Kind:  model.InsightKindGoalSetting,
			Title: "Goal Setting",
			Message: fmt.Sprintf("Consider adjusting your goals for %s to make them more achievable. Small wins build momentum.",
				firstBelowHalf.Name),
		})
	} else {
		insights = append(insights, model.Insight{
			Kind:    model.InsightKindGoalSetting,
			Title:   "Goal Setting",
			Message: "Your goals seem well-balanced. Consider increasing the challenge for habits you consistently complete.",
		})
	}

	insights = append(insights, model.Insight{
		Kind:  model.InsightKindStreak,
		Title: "Streaks Champion",
		Message: fmt.Sprintf("Your longest streak overall is %d days! The habit with the current longest individual streak is %s (%d days). Keep the momentum going!",
			account.LongestStreak, streakChampion.Name, streakChampion.CurrentStreak),
	})

	return insights, nil
}

func (s *analyticsService) GetHabitStats(ctx context.Context, habitID uuid.UUID) (*model.HabitStatsResponse, error) {
	logger := middleware.GetLogger(ctx).With("habit_id", habitID)

	habit, err := s.habitRepo.FindByID(ctx, s.db, habitID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding habit for stats", "error", err)
		return nil, model.ErrInternalServer
	}

	today := s.clk.Now()

	// 今週 (月曜始まり) の日別チャートデータ
	weekStart := startOfWeek(today)
	week := make([]model.WeeklyChartPoint, 0, 7)
	for i := 0; i < 7; i++ {
		day := weekStart.AddDate(0, 0, i)
		point := model.WeeklyChartPoint{
			Day:  day.Format("Mon"),
			Goal: habit.Goal,
		}
		if entry := findEntryOn(habit.Entries, day); entry != nil {
			point.Value = entry.Value
		}
		week = append(week, point)
	}

	return &model.HabitStatsResponse{
		HabitID:              habit.HabitID,
		WeeklyCompletionRate: weeklyCompletionRate(habit.Entries, today),
		Week:                 week,
	}, nil
}

// startOfWeek は月曜始まりの週の初日を返します
func startOfWeek(t time.Time) time.Time {
	day := clock.Day(t)
	offset := (int(day.Weekday()) + 6) % 7 // Monday=0
	return day.AddDate(0, 0, -offset)
}
