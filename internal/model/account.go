// internal/model/account.go
package model

import "time"

// Account はアカウント全体の集計値です。1プロセスに1行だけ存在します。
// ストリーク系フィールドは記録処理だけが書き換えます。
type Account struct {
	ID                   uint      `gorm:"primaryKey" json:"-"`
	Name                 string    `gorm:"not null" json:"name"`
	JoinDate             time.Time `json:"join_date"`
	TotalHabitsCompleted int       `gorm:"not null;default:0" json:"total_habits_completed"` // 達成イベントの累計 (日数ではない)
	CurrentStreak        int       `gorm:"not null;default:0" json:"current_streak"`
	LongestStreak        int       `gorm:"not null;default:0" json:"longest_streak"` // 単調非減少
	CreatedAt            time.Time `json:"-"`
	UpdatedAt            time.Time `json:"-"`
}

func (Account) TableName() string {
	return "account"
}
