// internal/config/config.go
package config

import (
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Cache    CacheConfig
	Engine   EngineConfig
}

type ServerConfig struct {
	Port           string
	AdminPort      string
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
	Enabled           bool
	RedisURL          string
	RedisHost         string
	RedisPort         string
	RedisPassword     string
	RedisDB           int
	SummaryTTLSeconds int
}

// EngineConfig carries the channel-tunable scoring thresholds. Zero values
// mean "use the engine default".
type EngineConfig struct {
	ExcessRatio          float64
	Top3ShareThreshold   float64
	ConcentrationPenalty float64
	ConfidentCoverage    float64
	ThinCoverage         float64
	AtRiskCoverage       float64
	PageSize             int
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
		viper.SetDefault("SERVER_ADMIN_PORT", "8081")
		viper.SetDefault("SERVER_MODE", "debug")
		viper.SetDefault("SERVER_READ_TIMEOUT", 15)
		viper.SetDefault("SERVER_WRITE_TIMEOUT", 15)
		viper.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
		viper.SetDefault("DB_HOST", "localhost")
		viper.SetDefault("DB_PORT", "5432")
		viper.SetDefault("DB_USER", "postgres")
		viper.SetDefault("DB_PASSWORD", "postgres")
		viper.SetDefault("DB_NAME", "stockpulse")
		viper.SetDefault("DB_SSLMODE", "disable")
		viper.SetDefault("CACHE_ENABLED", false)
		viper.SetDefault("REDIS_URL", "")
		viper.SetDefault("REDIS_HOST", "127.0.0.1")
		viper.SetDefault("REDIS_PORT", "6379")
		viper.SetDefault("REDIS_PASSWORD", "")
		viper.SetDefault("REDIS_DB", 0)
		viper.SetDefault("CACHE_SUMMARY_TTL_SECONDS", 60)
		viper.SetDefault("ENGINE_EXCESS_RATIO", 0.0)
		viper.SetDefault("ENGINE_TOP3_SHARE_THRESHOLD", 0.0)
		viper.SetDefault("ENGINE_CONCENTRATION_PENALTY", 0.0)
		viper.SetDefault("ENGINE_CONFIDENT_COVERAGE", 0.0)
		viper.SetDefault("ENGINE_THIN_COVERAGE", 0.0)
		viper.SetDefault("ENGINE_AT_RISK_COVERAGE", 0.0)
		viper.SetDefault("ENGINE_PAGE_SIZE", 0)

		// Read from environment variables
		viper.AutomaticEnv()

		instance = &Config{
			Server: ServerConfig{
				Port:           viper.GetString("SERVER_PORT"),
				AdminPort:      viper.GetString("SERVER_ADMIN_PORT"),
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
				Enabled:           viper.GetBool("CACHE_ENABLED"),
				RedisURL:          viper.GetString("REDIS_URL"),
				RedisHost:         viper.GetString("REDIS_HOST"),
				RedisPort:         viper.GetString("REDIS_PORT"),
				RedisPassword:     viper.GetString("REDIS_PASSWORD"),
				RedisDB:           viper.GetInt("REDIS_DB"),
				SummaryTTLSeconds: viper.GetInt("CACHE_SUMMARY_TTL_SECONDS"),
			},
			Engine: EngineConfig{
				ExcessRatio:          viper.GetFloat64("ENGINE_EXCESS_RATIO"),
				Top3ShareThreshold:   viper.GetFloat64("ENGINE_TOP3_SHARE_THRESHOLD"),
				ConcentrationPenalty: viper.GetFloat64("ENGINE_CONCENTRATION_PENALTY"),
				ConfidentCoverage:    viper.GetFloat64("ENGINE_CONFIDENT_COVERAGE"),
				ThinCoverage:         viper.GetFloat64("ENGINE_THIN_COVERAGE"),
				AtRiskCoverage:       viper.GetFloat64("ENGINE_AT_RISK_COVERAGE"),
				PageSize:             viper.GetInt("ENGINE_PAGE_SIZE"),
			},
		}
	})

	return instance
}
