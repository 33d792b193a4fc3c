// internal/service/mocks/habit_service.go
package mocks

import (
	"context"

	"go_habit_keep/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// HabitService は service.HabitService のモック実装
type HabitService struct {
	mock.Mock
}

func (m *HabitService) CreateHabit(ctx context.Context, req *model.CreateHabitRequest) (*model.Habit, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Habit), args.Error(1)
}

func (m *HabitService) GetHabit(ctx context.Context, habitID uuid.UUID) (*model.HabitDetailResponse, error) {
	args := m.Called(ctx, habitID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.HabitDetailResponse), args.Error(1)
}

func (m *HabitService) ListHabits(ctx context.Context, filter model.HabitFilter) ([]*model.Habit, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Habit), args.Error(1)
}

func (m *HabitService) UpdateHabit(ctx context.Context, habitID uuid.UUID, req *model.UpdateHabitRequest) (*model.Habit, error) {
	args := m.Called(ctx, habitID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Habit), args.Error(1)
}

func (m *HabitService) DeleteHabit(ctx context.Context, habitID uuid.UUID) error {
	args := m.Called(ctx, habitID)
	return args.Error(0)
}

func (m *HabitService) RecordEntry(ctx context.Context, habitID uuid.UUID, value float64) (*model.Habit, error) {
	args := m.Called(ctx, habitID, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Habit), args.Error(1)
}
