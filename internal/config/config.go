// internal/config/config.go
package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Database struct {
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"database"`
	Server struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`
	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	} `mapstructure:"log"`
	App struct {
		// ストリークを遡る上限日数
		LookbackDays int `mapstructure:"lookback_days"`
		// 起動時にシードするアカウント情報
		AccountName     string `mapstructure:"account_name"`
		AccountJoinDate string `mapstructure:"account_join_date"` // YYYY-MM-DD
	} `mapstructure:"app"`
	CORS struct {
		AllowedOrigins   []string `mapstructure:"allowed_origins"`
		AllowedMethods   []string `mapstructure:"allowed_methods"`
		AllowedHeaders   []string `mapstructure:"allowed_headers"`
		ExposedHeaders   []string `mapstructure:"exposed_headers"`
		AllowCredentials bool     `mapstructure:"allow_credentials"`
		MaxAge           int      `mapstructure:"max_age"`
	} `mapstructure:"cors"`
}

var Cfg Config

func LoadConfig(path string) error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(path)
	viper.AddConfigPath(".")

	// 環境変数での上書き (例: APP_SERVER_PORT)
	viper.SetEnvPrefix("APP")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Warning: Config file not found. Using default settings or environment variables if available.")
		} else {
			log.Printf("Error reading config file: %s\n", err)
			return err
		}
	}

	if err := viper.Unmarshal(&Cfg); err != nil {
		log.Printf("Error unmarshalling config: %s\n", err)
		return err
	}

	// --- デフォルト値の設定 ---
	if Cfg.Server.Port == "" {
		Cfg.Server.Port = DefaultServerPort
	}
	if Cfg.Database.DSN == "" {
		// 永続化はスコープ外。プロセスと同寿命のインメモリストアを使う
		Cfg.Database.DSN = DefaultDatabaseDSN
	}
	if Cfg.Log.Level == "" {
		Cfg.Log.Level = DefaultLogLevel
	}
	if Cfg.Log.Format == "" {
		Cfg.Log.Format = DefaultLogFormat
	}
	if Cfg.App.LookbackDays <= 0 {
		Cfg.App.LookbackDays = DefaultStreakLookbackDays
	}
	if Cfg.App.AccountName == "" {
		Cfg.App.AccountName = DefaultAccountName
	}
	if len(Cfg.CORS.AllowedOrigins) == 0 {
		Cfg.CORS.AllowedOrigins = []string{"*"}
	}
	if len(Cfg.CORS.AllowedMethods) == 0 {
		Cfg.CORS.AllowedMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	}
	if len(Cfg.CORS.AllowedHeaders) == 0 {
		Cfg.CORS.AllowedHeaders = []string{"Accept", "Content-Type"}
	}

	log.Println("Config loaded successfully")
	log.Printf("Server Port: %s", Cfg.Server.Port)
	log.Printf("Streak Lookback Days: %d", Cfg.App.LookbackDays)

	return nil
}
