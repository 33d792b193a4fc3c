// internal/config/constants.go
package config

// アプリケーション情報
const (
	AppName    = "HabitKeep"
	AppVersion = "1.0.0"
)

// デフォルト設定値
const (
	DefaultServerPort = ":8080"
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "json"
	// cache=shared でプール内の全コネクションが同じインメモリDBを見る
	DefaultDatabaseDSN        = "file::memory:?cache=shared"
	DefaultStreakLookbackDays = 30
	DefaultAccountName        = "Sachin Gurjar"
	DefaultWeeklyWindowDays   = 7
)
