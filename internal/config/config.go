package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	App       AppConfig
	Storage   StorageConfig
	DB        DBConfig
	Redis     RedisConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
}

type AppConfig struct {
	Port string
	Env  string
}

type StorageConfig struct {
	Driver         string // postgres | sqlite
	SQLitePath     string
	MigrateOnStart bool
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Enabled bool
	Host    string
	Port    string
}

type CacheConfig struct {
	TTL     time.Duration
	Workers int
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	BurstSize         int
}

type CORSConfig struct {
	AllowOrigin string
}

// Load читает конфиг из .env (если есть) и переменных окружения
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	setDefaults(v)

	// .env необязателен: в контейнере всё приходит из окружения
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("STORAGE_DRIVER", DriverPostgres)
	v.SetDefault("SQLITE_PATH", "stats.db")
	v.SetDefault("MIGRATE_ON_START", true)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "url_stats")
	v.SetDefault("REDIS_ENABLED", true)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("CACHE_TTL", "5m")
	v.SetDefault("CACHE_WORKERS", 3)
	v.SetDefault("RATE_LIMIT_RPS", 10)
	v.SetDefault("RATE_LIMIT_BURST", 20)
	v.SetDefault("CORS_ALLOW_ORIGIN", "*")
}

func fromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	cfg.App.Port = v.GetString("APP_PORT")
	cfg.App.Env = v.GetString("APP_ENV")

	cfg.Storage.Driver = strings.ToLower(strings.TrimSpace(v.GetString("STORAGE_DRIVER")))
	if cfg.Storage.Driver != DriverPostgres && cfg.Storage.Driver != DriverSQLite {
		return nil, errors.New("STORAGE_DRIVER must be postgres or sqlite")
	}
	cfg.Storage.SQLitePath = v.GetString("SQLITE_PATH")
	cfg.Storage.MigrateOnStart = v.GetBool("MIGRATE_ON_START")

	cfg.DB.Host = v.GetString("DB_HOST")
	cfg.DB.Port = v.GetString("DB_PORT")
	cfg.DB.User = v.GetString("DB_USER")
	cfg.DB.Password = v.GetString("DB_PASSWORD")
	cfg.DB.Name = v.GetString("DB_NAME")

	cfg.Redis.Enabled = v.GetBool("REDIS_ENABLED")
	cfg.Redis.Host = v.GetString("REDIS_HOST")
	cfg.Redis.Port = v.GetString("REDIS_PORT")

	// Кэш
	cfg.Cache.TTL = v.GetDuration("CACHE_TTL")
	if cfg.Cache.TTL <= 0 {
		cfg.Cache.TTL = 5 * time.Minute
	}
	cfg.Cache.Workers = v.GetInt("CACHE_WORKERS")
	if cfg.Cache.Workers <= 0 {
		cfg.Cache.Workers = 3
	}

	// Rate limit
	cfg.RateLimit.RequestsPerSecond = v.GetFloat64("RATE_LIMIT_RPS")
	if cfg.RateLimit.RequestsPerSecond == 0 {
		cfg.RateLimit.RequestsPerSecond = 10
	}
	cfg.RateLimit.BurstSize = v.GetInt("RATE_LIMIT_BURST")
	if cfg.RateLimit.BurstSize == 0 {
		cfg.RateLimit.BurstSize = 20
	}

	cfg.CORS.AllowOrigin = v.GetString("CORS_ALLOW_ORIGIN")

	return &cfg, nil
}

// IsDevelopment сообщает, запущено ли приложение в режиме разработки
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// PostgresURL строка подключения для pgx и мигратора
func (c DBConfig) PostgresURL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Name,
	)
}
