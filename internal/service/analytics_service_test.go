// internal/service/analytics_service_test.go
package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"go_habit_keep/internal/clock"
	"go_habit_keep/internal/model"
	"go_habit_keep/internal/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Test weeklyCompletionRate ---
func Test_weeklyCompletionRate(t *testing.T) {
	tests := []struct {
		name    string
		entries []model.Entry
		want    int
	}{
		{
			name:    "正常系: entryが無ければ0",
			entries: []model.Entry{},
			want:    0,
		},
		{
			name: "正常系: 全達成で100",
			entries: []model.Entry{
				entryOn(0, true),
				entryOn(1, true),
			},
			want: 100,
		},
		{
			name: "正常系: 半分達成で50",
			entries: []model.Entry{
				entryOn(1, true),
				entryOn(2, false),
			},
			want: 50,
		},
		{
			name: "正常系: 1/3は四捨五入で33",
			entries: []model.Entry{
				entryOn(1, true),
				entryOn(2, false),
				entryOn(3, false),
			},
			want: 33,
		},
		{
			name: "正常系: 2/3は四捨五入で67",
			entries: []model.Entry{
				entryOn(1, true),
				entryOn(2, true),
				entryOn(3, false),
			},
			want: 67,
		},
		{
			name: "正常系: ちょうど7日前のentryは集計対象外",
			entries: []model.Entry{
				entryOn(7, false), // 対象外
				entryOn(6, true),  // 対象
			},
			want: 100,
		},
		{
			name: "正常系: 7日より前の未達成日は影響しない",
			entries: []model.Entry{
				entryOn(1, true),
				entryOn(10, false),
				entryOn(20, false),
			},
			want: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := weeklyCompletionRate(tt.entries, streakToday)
			assert.Equal(t, tt.want, got)
		})
	}
}

// --- Test GetSummary ---
func Test_analyticsService_GetSummary(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBHabit()
	mockHabitRepo := new(mocks.HabitRepository)
	mockAccountRepo := new(mocks.AccountRepository)
	clk := clock.Fixed{T: streakToday}
	analyticsService := NewAnalyticsService(db, mockHabitRepo, mockAccountRepo, clk, testConfig())

	habitA := &model.Habit{
		HabitID:  uuid.New(),
		Name:     "Drink Water",
		Icon:     "💧",
		Category: model.CategoryHealth,
		Position: 1,
		Entries:  []model.Entry{entryOn(1, true), entryOn(2, true)}, // 100%
	}
	habitB := &model.Habit{
		HabitID:  uuid.New(),
		Name:     "Read",
		Icon:     "📚",
		Category: model.CategoryProductivity,
		Position: 2,
		Entries:  []model.Entry{entryOn(1, false), entryOn(2, true)}, // 50%
	}
	habitC := &model.Habit{
		HabitID:  uuid.New(),
		Name:     "Meditate",
		Icon:     "🧘",
		Category: model.CategoryHealth,
		Position: 3,
		Entries:  []model.Entry{entryOn(1, false)}, // 0%
	}

	t.Run("正常系: 集計サマリを登録順ベースで構築する", func(t *testing.T) {
		mockHabitRepo.Mock = mock.Mock{}
		mockHabitRepo.On("List", ctx, db, model.HabitFilter{}).
			Return([]*model.Habit{habitA, habitB, habitC}, nil).Once()

		summary, err := analyticsService.GetSummary(ctx)

		require.NoError(t, err)
		require.NotNil(t, summary)

		// 全体達成率は各習慣の週間達成率の平均 (100+50+0)/3 = 50
		assert.Equal(t, 50, summary.OverallCompletionRate)

		require.Len(t, summary.HabitRates, 3)
		assert.Equal(t, 100, summary.HabitRates[0].Rate)
		assert.Equal(t, 50, summary.HabitRates[1].Rate)
		assert.Equal(t, 0, summary.HabitRates[2].Rate)

		// カテゴリ内訳は初出順
		require.Len(t, summary.CategoryBreakdown, 2)
		assert.Equal(t, model.CategoryHealth, summary.CategoryBreakdown[0].Category)
		assert.Equal(t, 2, summary.CategoryBreakdown[0].Count)
		assert.Equal(t, model.CategoryProductivity, summary.CategoryBreakdown[1].Category)
		assert.Equal(t, 1, summary.CategoryBreakdown[1].Count)

		require.NotNil(t, summary.MostConsistent)
		assert.Equal(t, habitA.HabitID, summary.MostConsistent.HabitID)
		require.NotNil(t, summary.NeedsImprovement)
		assert.Equal(t, habitC.HabitID, summary.NeedsImprovement.HabitID)

		mockHabitRepo.AssertExpectations(t)
	})

	t.Run("正常系: 同率の場合は登録順で先の習慣が選ばれる", func(t *testing.T) {
		mockHabitRepo.Mock = mock.Mock{}
		same1 := &model.Habit{HabitID: uuid.New(), Name: "First", Position: 1, Entries: []model.Entry{entryOn(1, true)}}
		same2 := &model.Habit{HabitID: uuid.New(), Name: "Second", Position: 2, Entries: []model.Entry{entryOn(1, true)}}
		mockHabitRepo.On("List", ctx, db, model.HabitFilter{}).
			Return([]*model.Habit{same1, same2}, nil).Once()

		summary, err := analyticsService.GetSummary(ctx)

		require.NoError(t, err)
		require.NotNil(t, summary.MostConsistent)
		assert.Equal(t, same1.HabitID, summary.MostConsistent.HabitID)
		require.NotNil(t, summary.NeedsImprovement)
		assert.Equal(t, same1.HabitID, summary.NeedsImprovement.HabitID)
	})

	t.Run("正常系: 習慣が無ければゼロ値サマリ", func(t *testing.T) {
		mockHabitRepo.Mock = mock.Mock{}
		mockHabitRepo.On("List", ctx, db, model.HabitFilter{}).
			Return([]*model.Habit{}, nil).Once()

		summary, err := analyticsService.GetSummary(ctx)

		require.NoError(t, err)
		assert.Equal(t, 0, summary.OverallCompletionRate)
		assert.Empty(t, summary.HabitRates)
		assert.Empty(t, summary.CategoryBreakdown)
		assert.Nil(t, summary.MostConsistent)
		assert.Nil(t, summary.NeedsImprovement)
	})

	t.Run("異常系: リポジトリでDBエラー", func(t *testing.T) {
		mockHabitRepo.Mock = mock.Mock{}
		mockHabitRepo.On("List", ctx, db, model.HabitFilter{}).
			Return(nil, errors.New("db error")).Once()

		summary, err := analyticsService.GetSummary(ctx)

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrInternalServer)
		assert.Nil(t, summary)
	})
}

// --- Test GetInsights ---
func Test_analyticsService_GetInsights(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBHabit()
	mockHabitRepo := new(mocks.HabitRepository)
	mockAccountRepo := new(mocks.AccountRepository)
	clk := clock.Fixed{T: streakToday}
	analyticsService := NewAnalyticsService(db, mockHabitRepo, mockAccountRepo, clk, testConfig())

	t.Run("正常系: 習慣が無ければプレースホルダを返す", func(t *testing.T) {
		mockHabitRepo.Mock = mock.Mock{}
		mockAccountRepo.Mock = mock.Mock{}
		mockHabitRepo.On("List", ctx, db, model.HabitFilter{}).
			Return([]*model.Habit{}, nil).Once()

		insights, err := analyticsService.GetInsights(ctx)

		require.NoError(t, err)
		require.Len(t, insights, 3)
		assert.Equal(t, model.InsightKindConsistency, insights[0].Kind)
		assert.Equal(t, "Add habits to see consistency analysis.", insights[0].Message)
		assert.Equal(t, model.InsightKindGoalSetting, insights[1].Kind)
		assert.Equal(t, model.InsightKindStreak, insights[2].Kind)
		mockHabitRepo.AssertExpectations(t)
	})

	t.Run("正常系: 週間達成率50%未満の習慣があれば目標調整を提案", func(t *testing.T) {
		mockHabitRepo.Mock = mock.Mock{}
		mockAccountRepo.Mock = mock.Mock{}
		strong := &model.Habit{HabitID: uuid.New(), Name: "Drink Water", CurrentStreak: 5,
			Entries: []model.Entry{entryOn(1, true), entryOn(2, true)}} // 100%
		weak := &model.Habit{HabitID: uuid.New(), Name: "Read", CurrentStreak: 0,
			Entries: []model.Entry{entryOn(1, false), entryOn(2, false), entryOn(3, true)}} // 33%
		mockHabitRepo.On("List", ctx, db, model.HabitFilter{}).
			Return([]*model.Habit{strong, weak}, nil).Once()
		mockAccountRepo.On("Find", ctx, db).
			Return(&model.Account{LongestStreak: 12}, nil).Once()

		insights, err := analyticsService.GetInsights(ctx)

		require.NoError(t, err)
		require.Len(t, insights, 3)
		assert.Equal(t, "Your most consistent habit is Drink Water with 100% completion rate. Try to apply the same discipline to your other habits.", insights[0].Message)
		assert.Equal(t, "Consider adjusting your goals for Read to make them more achievable. Small wins build momentum.", insights[1].Message)
		assert.Equal(t, "Your longest streak overall is 12 days! The habit with the current longest individual streak is Drink Water (5 days). Keep the momentum going!", insights[2].Message)
		mockHabitRepo.AssertExpectations(t)
		mockAccountRepo.AssertExpectations(t)
	})

	t.Run("正常系: 全習慣が50%以上なら難易度アップを提案", func(t *testing.T) {
		mockHabitRepo.Mock = mock.Mock{}
		mockAccountRepo.Mock = mock.Mock{}
		a := &model.Habit{HabitID: uuid.New(), Name: "Run", CurrentStreak: 2,
			Entries: []model.Entry{entryOn(1, true), entryOn(2, false)}} // 50%
		b := &model.Habit{HabitID: uuid.New(), Name: "Sleep", CurrentStreak: 7,
			Entries: []model.Entry{entryOn(1, true)}} // 100%
		mockHabitRepo.On("List", ctx, db, model.HabitFilter{}).
			Return([]*model.Habit{a, b}, nil).Once()
		mockAccountRepo.On("Find", ctx, db).
			Return(&model.Account{LongestStreak: 7}, nil).Once()

		insights, err := analyticsService.GetInsights(ctx)

		require.NoError(t, err)
		require.Len(t, insights, 3)
		assert.Equal(t, "Your goals seem well-balanced. Consider increasing the challenge for habits you consistently complete.", insights[1].Message)
		// ストリークチャンピオンは現在ストリーク最大の習慣
		assert.Contains(t, insights[2].Message, "Sleep (7 days)")
		mockHabitRepo.AssertExpectations(t)
		mockAccountRepo.AssertExpectations(t)
	})

	t.Run("異常系: アカウント取得でDBエラー", func(t *testing.T) {
		mockHabitRepo.Mock = mock.Mock{}
		mockAccountRepo.Mock = mock.Mock{}
		mockHabitRepo.On("List", ctx, db, model.HabitFilter{}).
			Return([]*model.Habit{{HabitID: uuid.New(), Name: "Run"}}, nil).Once()
		mockAccountRepo.On("Find", ctx, db).
			Return(nil, errors.New("db error")).Once()

		insights, err := analyticsService.GetInsights(ctx)

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrInternalServer)
		assert.Nil(t, insights)
	})
}

// --- Test GetHabitStats ---
func Test_analyticsService_GetHabitStats(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBHabit()
	mockHabitRepo := new(mocks.HabitRepository)
	mockAccountRepo := new(mocks.AccountRepository)
	// 2025-06-15 は日曜日。週初め (月曜) は 2025-06-09
	clk := clock.Fixed{T: streakToday}
	analyticsService := NewAnalyticsService(db, mockHabitRepo, mockAccountRepo, clk, testConfig())

	habitID := uuid.New()

	t.Run("正常系: 月曜始まりの7日分のチャートを返す", func(t *testing.T) {
		mockHabitRepo.Mock = mock.Mock{}
		habit := &model.Habit{
			HabitID: habitID,
			Name:    "Drink Water",
			Goal:    8,
			Entries: []model.Entry{
				// 火曜 (6/10) と今日の日曜 (6/15) に記録あり
				{EntryID: uuid.New(), HabitID: habitID, Date: time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), Value: 5, Completed: false},
				{EntryID: uuid.New(), HabitID: habitID, Date: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), Value: 8, Completed: true},
			},
		}
		mockHabitRepo.On("FindByID", ctx, db, habitID).
			Return(habit, nil).Once()

		stats, err := analyticsService.GetHabitStats(ctx, habitID)

		require.NoError(t, err)
		require.NotNil(t, stats)
		assert.Equal(t, habitID, stats.HabitID)
		require.Len(t, stats.Week, 7)

		assert.Equal(t, "Mon", stats.Week[0].Day)
		assert.Equal(t, "Sun", stats.Week[6].Day)
		for _, point := range stats.Week {
			assert.Equal(t, 8.0, point.Goal)
		}
		assert.Equal(t, 0.0, stats.Week[0].Value) // 記録の無い日はゼロ
		assert.Equal(t, 5.0, stats.Week[1].Value) // 火曜
		assert.Equal(t, 8.0, stats.Week[6].Value) // 日曜

		mockHabitRepo.AssertExpectations(t)
	})

	t.Run("異常系: 習慣が見つからない", func(t *testing.T) {
		mockHabitRepo.Mock = mock.Mock{}
		mockHabitRepo.On("FindByID", ctx, db, habitID).
			Return(nil, model.ErrNotFound).Once()

		stats, err := analyticsService.GetHabitStats(ctx, habitID)

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrNotFound)
		assert.Nil(t, stats)
	})
}

// startOfWeek の曜日計算の確認
func Test_startOfWeek(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "正常系: 日曜日は前の月曜日に戻る",
			in:   time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC),
			want: time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "正常系: 月曜日はその日自身",
			in:   time.Date(2025, 6, 9, 23, 59, 0, 0, time.UTC),
			want: time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "正常系: 水曜日は2日戻る",
			in:   time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC),
			want: time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := startOfWeek(tt.in)
			assert.True(t, got.Equal(tt.want), fmt.Sprintf("got %v, want %v", got, tt.want))
		})
	}
}
