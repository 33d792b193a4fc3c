// internal/repository/entry_repository.go
package repository

import (
	"context"
	"errors"
	"time"

	"go_habit_keep/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EntryRepository interface {
	Create(ctx context.Context, tx *gorm.DB, entry *model.Entry) error // トランザクション対応
	Update(ctx context.Context, tx *gorm.DB, entry *model.Entry) error
	FindByHabitAndDate(ctx context.Context, db *gorm.DB, habitID uuid.UUID, day time.Time) (*model.Entry, error)
	CountByHabitAndDate(ctx context.Context, db *gorm.DB, habitID uuid.UUID, day time.Time) (int64, error)
	DeleteByHabit(ctx context.Context, tx *gorm.DB, habitID uuid.UUID) error
}

type gormEntryRepository struct {
}

func NewGormEntryRepository() EntryRepository {
	return &gormEntryRepository{}
}

func (r *gormEntryRepository) Create(ctx context.Context, tx *gorm.DB, entry *model.Entry) error {
	// 複合ユニーク制約 (habit_id, date) 違反はGORMがErrorで返す
	result := tx.WithContext(ctx).Create(entry)
	return result.Error
}

func (r *gormEntryRepository) Update(ctx context.Context, tx *gorm.DB, entry *model.Entry) error {
	result := tx.WithContext(ctx).Save(entry)
	return result.Error
}

func (r *gormEntryRepository) FindByHabitAndDate(ctx context.Context, db *gorm.DB, habitID uuid.UUID, day time.Time) (*model.Entry, error) {
	var entry model.Entry
	result := db.WithContext(ctx).Where("habit_id = ? AND date = ?", habitID, day).First(&entry)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, result.Error
	}
	return &entry, nil
}

func (r *gormEntryRepository) CountByHabitAndDate(ctx context.Context, db *gorm.DB, habitID uuid.UUID, day time.Time) (int64, error) {
	var count int64
	result := db.WithContext(ctx).Model(&model.Entry{}).
		Where("habit_id = ? AND date = ?", habitID, day).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

func (r *gormEntryRepository) DeleteByHabit(ctx context.Context, tx *gorm.DB, habitID uuid.UUID) error {
	// Habit削除に追従してEntryログごと消す。0件でもエラーにしない
	result := tx.WithContext(ctx).Where("habit_id = ?", habitID).Delete(&model.Entry{})
	return result.Error
}
