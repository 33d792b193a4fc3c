// internal/repository/mocks/entry_repository.go
package mocks

import (
	"context"
	"time"

	"go_habit_keep/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// EntryRepository は repository.EntryRepository のモック実装
type EntryRepository struct {
	mock.Mock
}

func (m *EntryRepository) Create(ctx context.Context, tx *gorm.DB, entry *model.Entry) error {
	args := m.Called(ctx, tx, entry)
	return args.Error(0)
}

func (m *EntryRepository) Update(ctx context.Context, tx *gorm.DB, entry *model.Entry) error {
	args := m.Called(ctx, tx, entry)
	return args.Error(0)
}

func (m *EntryRepository) FindByHabitAndDate(ctx context.Context, db *gorm.DB, habitID uuid.UUID, date time.Time) (*model.Entry, error) {
	args := m.Called(ctx, db, habitID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Entry), args.Error(1)
}

func (m *EntryRepository) CountByHabitAndDate(ctx context.Context, db *gorm.DB, habitID uuid.UUID, date time.Time) (int64, error) {
	args := m.Called(ctx, db, habitID, date)
	return args.Get(0).(int64), args.Error(1)
}

func (m *EntryRepository) DeleteByHabit(ctx context.Context, tx *gorm.DB, habitID uuid.UUID) error {
	args := m.Called(ctx, tx, habitID)
	return args.Error(0)
}
