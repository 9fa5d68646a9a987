package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Config конфигурация сервиса
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Database    DatabaseConfig    `toml:"database"`
	Logs        LogsConfig        `toml:"logs"`
	Metrics     MetricsConfig     `toml:"metrics"`
	Reservation ReservationConfig `toml:"reservation"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
	Migrate         bool   `toml:"migrate"`
}

// DSN возвращает строку подключения к PostgreSQL
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки метрик Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// ReservationConfig настройки механики резервирования
type ReservationConfig struct {
	DefaultHoldTTLMinutes int `toml:"default_hold_ttl_minutes"`
	MaxHoldTTLMinutes     int `toml:"max_hold_ttl_minutes"`
	SweepIntervalSeconds  int `toml:"sweep_interval_seconds"`
}

// DefaultHoldTTL возвращает TTL холда по умолчанию
func (c *ReservationConfig) DefaultHoldTTL() time.Duration {
	if c.DefaultHoldTTLMinutes <= 0 {
		return domain.DefaultHoldTTL
	}
	return time.Duration(c.DefaultHoldTTLMinutes) * time.Minute
}

// MaxHoldTTL возвращает максимально допустимый TTL холда
func (c *ReservationConfig) MaxHoldTTL() time.Duration {
	if c.MaxHoldTTLMinutes <= 0 {
		return domain.MaxHoldTTL
	}
	return time.Duration(c.MaxHoldTTLMinutes) * time.Minute
}

// SweepInterval возвращает период фонового sweep
func (c *ReservationConfig) SweepInterval() time.Duration {
	if c.SweepIntervalSeconds <= 0 {
		return domain.DefaultSweepInterval
	}
	return time.Duration(c.SweepIntervalSeconds) * time.Second
}

// Load загружает конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	if cfg.Server.HTTPPort == 0 {
		return nil, fmt.Errorf("config: server.http_port is required")
	}
	if cfg.Database.Host == "" || cfg.Database.DBName == "" {
		return nil, fmt.Errorf("config: database.host and database.dbname are required")
	}

	return &cfg, nil
}
