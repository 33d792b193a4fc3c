// internal/model/entry.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// Entry は1つの習慣の1日分の記録です。
// (habit_id, date) の複合ユニークインデックスで「1日1件」の不変条件を守ります。
type Entry struct {
	EntryID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"entry_id"`
	HabitID   uuid.UUID `gorm:"type:uuid;not null;index:idx_entries_habit_date,unique" json:"-"`
	Date      time.Time `gorm:"not null;index:idx_entries_habit_date,unique" json:"date"` // UTCの0時に切り詰めた暦日
	Value     float64   `gorm:"not null" json:"value"`                                    // 非負
	Completed bool      `gorm:"not null" json:"completed"` // 記録時点のgoalとの比較結果
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (Entry) TableName() string {
	return "entries"
}
