// internal/service/streak.go
package service

import (
	"time"

	"go_habit_keep/internal/clock"
	"go_habit_keep/internal/model"
)

// findEntryOn は指定した暦日のentryを返します。
// Entryログの並び順には依存せず、暦日の一致だけで探します。
func findEntryOn(entries []model.Entry, day time.Time) *model.Entry {
	for i := range entries {
		if clock.SameDay(entries[i].Date, day) {
			return &entries[i]
		}
	}
	return nil
}

// calculateCurrentStreak は昨日から遡って連続達成日数を数えます。
// 今日を含めないのは意図的で、当日の記録がまだ無くてもストリークが
// 途切れて見えないようにするためです (今日の達成は明日反映される)。
func calculateCurrentStreak(entries []model.Entry, today time.Time, lookbackDays int) int {
	streak := 0
	cursor := clock.Day(today).AddDate(0, 0, -1) // 昨日から開始

	for i := 0; i < lookbackDays; i++ {
		entry := findEntryOn(entries, cursor)
		if entry == nil || !entry.Completed {
			break
		}
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}

	return streak
}

// calculateAccountStreak はアカウント全体のストリークを数えます。
// いずれかの習慣がその日に達成していれば1日とカウントします (習慣全部ではなくOR)。
func calculateAccountStreak(habits []*model.Habit, today time.Time, lookbackDays int) int {
	streak := 0
	cursor := clock.Day(today).AddDate(0, 0, -1) // 昨日から開始

	for i := 0; i < lookbackDays; i++ {
		anyCompleted := false
		for _, habit := range habits {
			if entry := findEntryOn(habit.Entries, cursor); entry != nil && entry.Completed {
				anyCompleted = true
				break
			}
		}
		if !anyCompleted {
			break
		}
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}

	return streak
}
