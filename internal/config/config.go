package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
)

// ErrInvalidConfig возвращается при некорректных значениях конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Database    DatabaseConfig    `toml:"database"`
	Redis       RedisConfig       `toml:"redis"`
	Cache       CacheConfig       `toml:"cache"`
	Reservation ReservationConfig `toml:"reservation"`
	Logs        LogsConfig        `toml:"logs"`
	Metrics     MetricsConfig     `toml:"metrics"`
}

// ServerConfig параметры HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig параметры подключения к PostgreSQL
type DatabaseConfig struct {
	Host                 string `toml:"host"`
	Port                 int    `toml:"port"`
	User                 string `toml:"user"`
	Password             string `toml:"password"`
	DBName               string `toml:"dbname"`
	SSLMode              string `toml:"sslmode"`
	MaxOpenConns         int    `toml:"max_open_conns"`
	MaxIdleConns         int    `toml:"max_idle_conns"`
	ConnMaxLifetime      int    `toml:"conn_max_lifetime"` // секунды
	SerializationRetries int    `toml:"serialization_retries"`
	AutoMigrate          bool   `toml:"auto_migrate"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// RedisConfig параметры подключения к Redis
type RedisConfig struct {
	Addr         string `toml:"addr"`
	Password     string `toml:"password"`
	DB           int    `toml:"db"`
	DialTimeout  int    `toml:"dial_timeout"` // миллисекунды
	ReadTimeout  int    `toml:"read_timeout"`
	WriteTimeout int    `toml:"write_timeout"`
}

// CacheConfig параметры кэша доступности
type CacheConfig struct {
	Enabled  bool `toml:"enabled"`
	TTLHours int  `toml:"ttl_hours"`
}

// TTL время жизни записи
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLHours) * time.Hour
}

// ReservationConfig правила бронирования
type ReservationConfig struct {
	AutoApproveThreshold   int `toml:"auto_approve_threshold"`
	CancellationWindowDays int `toml:"cancellation_window_days"`
}

// LogsConfig параметры логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig параметры Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// Load читает конфигурацию из TOML файла, применяет значения по умолчанию
// и переопределения из переменных окружения
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default конфигурация по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:                 "localhost",
			Port:                 5432,
			SSLMode:              "disable",
			MaxOpenConns:         25,
			MaxIdleConns:         5,
			ConnMaxLifetime:      300,
			SerializationRetries: domain.DefaultSerializationRetryCount,
		},
		Redis: RedisConfig{
			Addr:         "localhost:6379",
			DialTimeout:  500,
			ReadTimeout:  300,
			WriteTimeout: 300,
		},
		Cache: CacheConfig{
			Enabled:  true,
			TTLHours: int(domain.DefaultAvailabilityCacheTTL / time.Hour),
		},
		Reservation: ReservationConfig{
			AutoApproveThreshold:   domain.DefaultAutoApproveThreshold,
			CancellationWindowDays: domain.DefaultCancellationWindowDays,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "tour-booking-service",
		},
	}
}

// applyEnv переопределяет секреты и адреса из окружения
func (c *Config) applyEnv() error {
	stringVars := map[string]*string{
		"DATABASE_HOST":     &c.Database.Host,
		"DATABASE_USER":     &c.Database.User,
		"DATABASE_PASSWORD": &c.Database.Password,
		"DATABASE_NAME":     &c.Database.DBName,
		"REDIS_ADDR":        &c.Redis.Addr,
		"REDIS_PASSWORD":    &c.Redis.Password,
		"LOG_LEVEL":         &c.Logs.Level,
	}
	for env, dst := range stringVars {
		if v, ok := os.LookupEnv(env); ok {
			*dst = v
		}
	}

	intVars := map[string]*int{
		"DATABASE_PORT": &c.Database.Port,
		"HTTP_PORT":     &c.Server.HTTPPort,
	}
	for env, dst := range intVars {
		v, ok := os.LookupEnv(env)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a number", ErrInvalidConfig, env, v)
		}
		*dst = n
	}

	return nil
}

// Validate проверяет значения конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("%w: database.dbname is required", ErrInvalidConfig)
	}
	if c.Database.SerializationRetries < 0 {
		return fmt.Errorf("%w: database.serialization_retries must be >= 0", ErrInvalidConfig)
	}
	if c.Cache.Enabled && c.Cache.TTLHours <= 0 {
		return fmt.Errorf("%w: cache.ttl_hours must be positive", ErrInvalidConfig)
	}
	if c.Reservation.AutoApproveThreshold < 1 {
		return fmt.Errorf("%w: reservation.auto_approve_threshold must be positive", ErrInvalidConfig)
	}
	if c.Reservation.CancellationWindowDays < 0 {
		return fmt.Errorf("%w: reservation.cancellation_window_days must be >= 0", ErrInvalidConfig)
	}
	return nil
}
