// internal/clock/clock.go
package clock

import "time"

// Clock は「今日」を供給する依存です。
// ストリーク計算と分析を決定的にテストできるよう、壁時計の直読みはしません。
type Clock interface {
	Now() time.Time
}

// Real はシステム時計をそのまま返します
type Real struct{}

func (Real) Now() time.Time {
	return time.Now()
}

// Fixed はテスト用の固定時計です
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time {
	return f.T
}

// Day は時刻をUTCの暦日 (0時) に切り詰めます。
// Entryの日付比較はすべてこの暦日単位で行います。
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDay は2つの時刻が同じ暦日かどうかを返します
func SameDay(a, b time.Time) bool {
	return Day(a).Equal(Day(b))
}
