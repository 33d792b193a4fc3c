// internal/repository/entry_repository_test.go
package repository

import (
	"context"
	"testing"
	"time"

	"go_habit_keep/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEntry(habitID uuid.UUID, day time.Time, value float64, completed bool) *model.Entry {
	return &model.Entry{
		EntryID:   uuid.New(),
		HabitID:   habitID,
		Date:      day,
		Value:     value,
		Completed: completed,
	}
}

func TestGormEntryRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	db := setupRepoDB(t)
	habitRepo := NewGormHabitRepository()
	entryRepo := NewGormEntryRepository()

	habit := newTestHabit("Drink Water", model.CategoryHealth, 1)
	require.NoError(t, habitRepo.Create(ctx, db, habit))

	day := time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)
	entry := newTestEntry(habit.HabitID, day, 8, true)
	require.NoError(t, entryRepo.Create(ctx, db, entry))

	t.Run("正常系: 習慣と暦日で取得できる", func(t *testing.T) {
		found, err := entryRepo.FindByHabitAndDate(ctx, db, habit.HabitID, day)
		require.NoError(t, err)
		assert.Equal(t, entry.EntryID, found.EntryID)
		assert.Equal(t, 8.0, found.Value)
		assert.True(t, found.Completed)
	})

	t.Run("異常系: 記録の無い日はErrNotFound", func(t *testing.T) {
		found, err := entryRepo.FindByHabitAndDate(ctx, db, habit.HabitID, day.AddDate(0, 0, 1))
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrNotFound)
		assert.Nil(t, found)
	})

	t.Run("異常系: 同じ習慣・同じ暦日の二重作成は複合ユニーク制約で失敗する", func(t *testing.T) {
		dup := newTestEntry(habit.HabitID, day, 5, false)
		err := entryRepo.Create(ctx, db, dup)
		assert.Error(t, err)
	})
}

func TestGormEntryRepository_Update(t *testing.T) {
	ctx := context.Background()
	db := setupRepoDB(t)
	habitRepo := NewGormHabitRepository()
	entryRepo := NewGormEntryRepository()

	habit := newTestHabit("Drink Water", model.CategoryHealth, 1)
	require.NoError(t, habitRepo.Create(ctx, db, habit))

	day := time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)
	entry := newTestEntry(habit.HabitID, day, 3, false)
	require.NoError(t, entryRepo.Create(ctx, db, entry))

	// 同日の再記録は上書き
	entry.Value = 8
	entry.Completed = true
	require.NoError(t, entryRepo.Update(ctx, db, entry))

	found, err := entryRepo.FindByHabitAndDate(ctx, db, habit.HabitID, day)
	require.NoError(t, err)
	assert.Equal(t, 8.0, found.Value)
	assert.True(t, found.Completed)

	count, err := entryRepo.CountByHabitAndDate(ctx, db, habit.HabitID, day)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestGormEntryRepository_DeleteByHabit(t *testing.T) {
	ctx := context.Background()
	db := setupRepoDB(t)
	habitRepo := NewGormHabitRepository()
	entryRepo := NewGormEntryRepository()

	habit := newTestHabit("Drink Water", model.CategoryHealth, 1)
	other := newTestHabit("Read", model.CategoryProductivity, 2)
	require.NoError(t, habitRepo.Create(ctx, db, habit))
	require.NoError(t, habitRepo.Create(ctx, db, other))

	day := time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)
	require.NoError(t, entryRepo.Create(ctx, db, newTestEntry(habit.HabitID, day, 8, true)))
	require.NoError(t, entryRepo.Create(ctx, db, newTestEntry(habit.HabitID, day.AddDate(0, 0, -1), 5, false)))
	require.NoError(t, entryRepo.Create(ctx, db, newTestEntry(other.HabitID, day, 30, true)))

	t.Run("正常系: 対象習慣のentryだけを全部消す", func(t *testing.T) {
		require.NoError(t, entryRepo.DeleteByHabit(ctx, db, habit.HabitID))

		count, err := entryRepo.CountByHabitAndDate(ctx, db, habit.HabitID, day)
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)

		// 他の習慣のentryは残る
		otherCount, err := entryRepo.CountByHabitAndDate(ctx, db, other.HabitID, day)
		require.NoError(t, err)
		assert.Equal(t, int64(1), otherCount)
	})

	t.Run("正常系: entryが無い習慣でもエラーにならない", func(t *testing.T) {
		assert.NoError(t, entryRepo.DeleteByHabit(ctx, db, uuid.New()))
	})
}

func TestGormAccountRepository(t *testing.T) {
	ctx := context.Background()
	db := setupRepoDB(t)
	accountRepo := NewGormAccountRepository()

	t.Run("異常系: 行が無ければErrNotFound", func(t *testing.T) {
		account, err := accountRepo.Find(ctx, db)
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrNotFound)
		assert.Nil(t, account)
	})

	t.Run("正常系: 作成・取得・更新の一巡", func(t *testing.T) {
		account := &model.Account{
			Name:     "Sachin Gurjar",
			JoinDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		}
		require.NoError(t, accountRepo.Create(ctx, db, account))

		found, err := accountRepo.Find(ctx, db)
		require.NoError(t, err)
		assert.Equal(t, "Sachin Gurjar", found.Name)
		assert.Equal(t, 0, found.TotalHabitsCompleted)

		found.TotalHabitsCompleted = 7
		found.CurrentStreak = 2
		found.LongestStreak = 4
		require.NoError(t, accountRepo.Update(ctx, db, found))

		again, err := accountRepo.Find(ctx, db)
		require.NoError(t, err)
		assert.Equal(t, 7, again.TotalHabitsCompleted)
		assert.Equal(t, 2, again.CurrentStreak)
		assert.Equal(t, 4, again.LongestStreak)
	})
}
