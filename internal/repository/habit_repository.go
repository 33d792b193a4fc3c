// internal/repository/habit_repository.go
package repository

import (
	"context"
	"errors"
	"strings"

	"go_habit_keep/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HabitRepository interface {
	Create(ctx context.Context, tx *gorm.DB, habit *model.Habit) error // トランザクション対応
	FindByID(ctx context.Context, db *gorm.DB, habitID uuid.UUID) (*model.Habit, error)
	Update(ctx context.Context, tx *gorm.DB, habit *model.Habit) error
	Delete(ctx context.Context, tx *gorm.DB, habitID uuid.UUID) error
	List(ctx context.Context, db *gorm.DB, filter model.HabitFilter) ([]*model.Habit, error) // 登録順で返す
	NextPosition(ctx context.Context, db *gorm.DB) (int, error)
}

type gormHabitRepository struct {
	// DB接続はService層から渡される想定
}

func NewGormHabitRepository() HabitRepository {
	return &gormHabitRepository{}
}

func (r *gormHabitRepository) Create(ctx context.Context, tx *gorm.DB, habit *model.Habit) error {
	// UUIDとPositionはService層で設定済み想定
	result := tx.WithContext(ctx).Create(habit)
	return result.Error
}

func (r *gormHabitRepository) FindByID(ctx context.Context, db *gorm.DB, habitID uuid.UUID) (*model.Habit, error) {
	var habit model.Habit
	// EntryログはHabitが排他所有するので常に一緒に読む
	result := db.WithContext(ctx).Preload("Entries").Where("habit_id = ?", habitID).First(&habit)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, result.Error
	}
	return &habit, nil
}

func (r *gormHabitRepository) Update(ctx context.Context, tx *gorm.DB, habit *model.Habit) error {
	// habit オブジェクト全体を渡して更新。存在確認は呼び出し元(Service)で行っている想定。
	// EntryログはEntryRepositoryが管理するのでここでは触らない
	result := tx.WithContext(ctx).Omit("Entries").Save(habit)
	return result.Error
}

func (r *gormHabitRepository) Delete(ctx context.Context, tx *gorm.DB, habitID uuid.UUID) error {
	result := tx.WithContext(ctx).Where("habit_id = ?", habitID).Delete(&model.Habit{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormHabitRepository) List(ctx context.Context, db *gorm.DB, filter model.HabitFilter) ([]*model.Habit, error) {
	var habits []*model.Habit

	query := db.WithContext(ctx).Preload("Entries").Order("position ASC")
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Search != "" {
		// 大文字小文字を無視した部分一致
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
	}

	if result := query.Find(&habits); result.Error != nil {
		return nil, result.Error
	}
	return habits, nil
}

func (r *gormHabitRepository) NextPosition(ctx context.Context, db *gorm.DB) (int, error) {
	// 登録順の採番。COALESCEで空テーブルも0始まりにする
	var maxPos int
	result := db.WithContext(ctx).Model(&model.Habit{}).
		Select("COALESCE(MAX(position), 0)").
		Scan(&maxPos)
	if result.Error != nil {
		return 0, result.Error
	}
	return maxPos + 1, nil
}
