// internal/repository/mocks/habit_repository.go
package mocks

import (
	"context"

	"go_habit_keep/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// HabitRepository は repository.HabitRepository のモック実装
type HabitRepository struct {
	mock.Mock
}

func (m *HabitRepository) Create(ctx context.Context, tx *gorm.DB, habit *model.Habit) error {
	args := m.Called(ctx, tx, habit)
	return args.Error(0)
}

func (m *HabitRepository) FindByID(ctx context.Context, db *gorm.DB, habitID uuid.UUID) (*model.Habit, error) {
	args := m.Called(ctx, db, habitID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Habit), args.Error(1)
}

func (m *HabitRepository) Update(ctx context.Context, tx *gorm.DB, habit *model.Habit) error {
	args := m.Called(ctx, tx, habit)
	return args.Error(0)
}

func (m *HabitRepository) Delete(ctx context.Context, tx *gorm.DB, habitID uuid.UUID) error {
	args := m.Called(ctx, tx, habitID)
	return args.Error(0)
}

func (m *HabitRepository) List(ctx context.Context, db *gorm.DB, filter model.HabitFilter) ([]*model.Habit, error) {
	args := m.Called(ctx, db, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Habit), args.Error(1)
}

func (m *HabitRepository) NextPosition(ctx context.Context, db *gorm.DB) (int, error) {
	args := m.Called(ctx, db)
	return args.Int(0), args.Error(1)
}
