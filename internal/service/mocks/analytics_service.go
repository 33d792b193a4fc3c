// internal/service/mocks/analytics_service.go
package mocks

import (
	"context"

	"go_habit_keep/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// AnalyticsService は service.AnalyticsService のモック実装
type AnalyticsService struct {
	mock.Mock
}

func (m *AnalyticsService) GetSummary(ctx context.Context) (*model.AnalyticsSummaryResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AnalyticsSummaryResponse), args.Error(1)
}

func (m *AnalyticsService) GetInsights(ctx context.Context) ([]model.Insight, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Insight), args.Error(1)
}

func (m *AnalyticsService) GetHabitStats(ctx context.Context, habitID uuid.UUID) (*model.HabitStatsResponse, error) {
	args := m.Called(ctx, habitID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.HabitStatsResponse), args.Error(1)
}
