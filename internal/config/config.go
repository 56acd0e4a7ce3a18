// internal/config/config.go
package config

import (
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Cache     CacheConfig
	Analytics AnalyticsConfig
}

type ServerConfig struct {
	Port           string
	Mode           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type CacheConfig struct {
	Enabled                  bool
	RedisURL                 string
	RedisHost                string
	RedisPort                string
	RedisPassword            string
	RedisDB                  int
	RecommendationTTLSeconds int
}

// AnalyticsConfig carries the inventory policy knobs. Zero values mean
// "use the reference policy"; see analytics.DefaultConfig.
type AnalyticsConfig struct {
	LeadTimeDays        int
	OrderingCost        float64
	HoldingCostRate     float64
	HistoryWindowDays   int
	ForecastHorizonDays int
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		// Set default values
		viper.SetDefault("SERVER_PORT", "8080")
		viper.SetDefault("SERVER_MODE", "debug")
		viper.SetDefault("SERVER_READ_TIMEOUT", 15)
		viper.SetDefault("SERVER_WRITE_TIMEOUT", 15)
		viper.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
		viper.SetDefault("DB_HOST", "localhost")
		viper.SetDefault("DB_PORT", "5432")
		viper.SetDefault("DB_USER", "postgres")
		viper.SetDefault("DB_PASSWORD", "postgres")
		viper.SetDefault("DB_NAME", "bookzone")
		viper.SetDefault("DB_SSLMODE", "disable")
		viper.SetDefault("CACHE_ENABLED", false)
		viper.SetDefault("REDIS_URL", "")
		viper.SetDefault("REDIS_HOST", "127.0.0.1")
		viper.SetDefault("REDIS_PORT", "6379")
		viper.SetDefault("REDIS_PASSWORD", "")
		viper.SetDefault("REDIS_DB", 0)
		viper.SetDefault("CACHE_RECOMMENDATION_TTL_SECONDS", 60)
		viper.SetDefault("ANALYTICS_LEAD_TIME_DAYS", 7)
		viper.SetDefault("ANALYTICS_ORDERING_COST", 5.0)
		viper.SetDefault("ANALYTICS_HOLDING_COST_RATE", 0.15)
		viper.SetDefault("ANALYTICS_HISTORY_WINDOW_DAYS", 90)
		viper.SetDefault("ANALYTICS_FORECAST_HORIZON_DAYS", 30)

		// Read from environment variables
		viper.AutomaticEnv()

		instance = &Config{
			Server: ServerConfig{
				Port:           viper.GetString("SERVER_PORT"),
				Mode:           viper.GetString("SERVER_MODE"),
				ReadTimeout:    viper.GetInt("SERVER_READ_TIMEOUT"),
				WriteTimeout:   viper.GetInt("SERVER_WRITE_TIMEOUT"),
				AllowedOrigins: viper.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
			},
			Database: DatabaseConfig{
				Host:     viper.GetString("DB_HOST"),
				Port:     viper.GetString("DB_PORT"),
				User:     viper.GetString("DB_USER"),
				Password: viper.GetString("DB_PASSWORD"),
				DBName:   viper.GetString("DB_NAME"),
				SSLMode:  viper.GetString("DB_SSLMODE"),
			},
			Cache: CacheConfig{
				Enabled:                  viper.GetBool("CACHE_ENABLED"),
				RedisURL:                 viper.GetString("REDIS_URL"),
				RedisHost:                viper.GetString("REDIS_HOST"),
				RedisPort:                viper.GetString("REDIS_PORT"),
				RedisPassword:            viper.GetString("REDIS_PASSWORD"),
				RedisDB:                  viper.GetInt("REDIS_DB"),
				RecommendationTTLSeconds: viper.GetInt("CACHE_RECOMMENDATION_TTL_SECONDS"),
			},
			Analytics: AnalyticsConfig{
				LeadTimeDays:        viper.GetInt("ANALYTICS_LEAD_TIME_DAYS"),
				OrderingCost:        viper.GetFloat64("ANALYTICS_ORDERING_COST"),
				HoldingCostRate:     viper.GetFloat64("ANALYTICS_HOLDING_COST_RATE"),
				HistoryWindowDays:   viper.GetInt("ANALYTICS_HISTORY_WINDOW_DAYS"),
				ForecastHorizonDays: viper.GetInt("ANALYTICS_FORECAST_HORIZON_DAYS"),
			},
		}
	})

	return instance
}
