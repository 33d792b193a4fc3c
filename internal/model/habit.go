// internal/model/habit.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// Category は習慣の分類です
type Category string

const (
	CategoryHealth       Category = "health"
	CategoryProductivity Category = "productivity"
	CategorySelfCare     Category = "self-care"
	CategoryFitness      Category = "fitness"
)

// IsValid は既知のカテゴリかどうかを返します
func (c Category) IsValid() bool {
	switch c {
	case CategoryHealth, CategoryProductivity, CategorySelfCare, CategoryFitness:
		return true
	}
	return false
}

// 時間単位の習慣は入力刻みを小数にする
const UnitHours = "hours"

// Habit は日次目標と記録ログを持つ習慣を表します
type Habit struct {
	HabitID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"habit_id"`
	Name          string    `gorm:"not null" json:"name"`
	Icon          string    `json:"icon"`
	Goal          float64   `gorm:"not null" json:"goal"` // 1日の目標値 (正の数)
	Unit          string    `gorm:"not null" json:"unit"`
	Category      Category  `gorm:"not null;index" json:"category"`
	Color         string    `json:"color"`
	Position      int       `gorm:"not null;index" json:"-"` // レジストリ登録順
	CurrentStreak int       `gorm:"not null;default:0" json:"current_streak"`
	LongestStreak int       `gorm:"not null;default:0" json:"longest_streak"` // 単調非減少
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// 関連 (Preload用)。EntryはこのHabitだけが所有する
	Entries []Entry `gorm:"foreignKey:HabitID;references:HabitID" json:"entries"`
}

func (Habit) TableName() string {
	return "habits"
}

// Step は記録入力のインクリメント幅を返します
func (h *Habit) Step() float64 {
	if h.Unit == UnitHours {
		return 0.1
	}
	return 1
}

// 習慣作成リクエストDTO
type CreateHabitRequest struct {
	Name     string   `json:"name" validate:"required"`
	Icon     string   `json:"icon"`
	Goal     float64  `json:"goal" validate:"required,gt=0"`
	Unit     string   `json:"unit" validate:"required"`
	Category Category `json:"category" validate:"required,oneof=health productivity self-care fitness"`
	Color    string   `json:"color"`
}

// 習慣更新（部分）リクエストDTO。goal変更は過去entryのcompletedを書き換えない
type UpdateHabitRequest struct {
	Name     *string   `json:"name,omitempty" validate:"omitempty,min=1"`
	Icon     *string   `json:"icon,omitempty"`
	Goal     *float64  `json:"goal,omitempty" validate:"omitempty,gt=0"`
	Unit     *string   `json:"unit,omitempty" validate:"omitempty,min=1"`
	Category *Category `json:"category,omitempty" validate:"omitempty,oneof=health productivity self-care fitness"`
	Color    *string   `json:"color,omitempty"`
}

// 当日記録リクエストDTO
type RecordEntryRequest struct {
	Value *float64 `json:"value" validate:"required,gte=0"`
}

// 一覧取得のフィルタ条件
type HabitFilter struct {
	Category Category // 完全一致
	Search   string   // 名前の部分一致 (大文字小文字無視)
}

// 詳細ビュー用レスポンスDTO
type HabitDetailResponse struct {
	*Habit
	Step       float64 `json:"step"`
	TodayEntry Entry   `json:"today_entry"` // 当日entryが無ければゼロ値プレースホルダ
}
