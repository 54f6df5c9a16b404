package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	GRPC       GRPCConfig       `yaml:"grpc"`
	Database   DatabaseConfig   `yaml:"database"`
	Redis      RedisConfig      `yaml:"redis"`
	Kafka      KafkaConfig      `yaml:"kafka"`
	Admin      AdminConfig      `yaml:"admin"`
	Log        LogConfig        `yaml:"log"`
	Pagination PaginationConfig `yaml:"pagination"`
}

type HTTPConfig struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required,min=1,max=65535"`
}

func (h HTTPConfig) Address() string {
	return net.JoinHostPort(h.Host, fmt.Sprint(h.Port))
}

// GRPCConfig enables the gRPC health service when Address is set.
type GRPCConfig struct {
	Address string `yaml:"address"`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver" validate:"oneof=sqlite postgres"`
	// Path is the store file for the sqlite driver.
	Path string `yaml:"path" validate:"required_if=Driver sqlite"`
	// DSN is the connection string for the postgres driver.
	DSN  string `yaml:"dsn" validate:"required_if=Driver postgres"`
	Seed bool   `yaml:"seed"`
}

// RedisConfig enables the dashboard cache when Addr is set.
type RedisConfig struct {
	Addr       string `yaml:"addr"`
	Password   string `yaml:"password"`
	DB         int    `yaml:"db"`
	TTLSeconds int    `yaml:"ttl_seconds" validate:"min=0"`
}

// KafkaConfig enables audit events when Brokers is not empty.
type KafkaConfig struct {
	Brokers    []string `yaml:"brokers"`
	AuditTopic string   `yaml:"audit_topic" validate:"required_with=Brokers"`
	GroupID    string   `yaml:"group_id"`
}

type AdminConfig struct {
	Email string `yaml:"email" validate:"required,email"`
}

type LogConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
	File  string `yaml:"file"`
}

type PaginationConfig struct {
	PageSize int `yaml:"page_size" validate:"min=1,max=1000"`
}

func Default() Config {
	return Config{
		HTTP:       HTTPConfig{Host: "0.0.0.0", Port: 5000},
		Database:   DatabaseConfig{Driver: DriverSQLite, Path: "database.db", Seed: true},
		Redis:      RedisConfig{TTLSeconds: 30},
		Kafka:      KafkaConfig{AuditTopic: "admin-audit", GroupID: "admin-audit-worker"},
		Admin:      AdminConfig{Email: "admin@mail.ru"},
		Log:        LogConfig{Level: "info", File: "logs/app.log"},
		Pagination: PaginationConfig{PageSize: 10},
	}
}

// LoadConfig reads the YAML file at path on top of the defaults, applies
// environment overrides and validates the result. A missing file is not an
// error.
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	cfg.Log.Level = normalizeLevel(cfg.Log.Level)

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("HOST"); v != "" {
		cfg.HTTP.Host = v
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.HTTP.Port = port
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
	if v := os.Getenv("DATABASE_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := os.Getenv("DATABASE_FILE"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		cfg.Database.DSN = v
	}
	return nil
}

// normalizeLevel maps common level spellings onto the four levels the logger
// understands. Anything unrecognized falls back to info.
func normalizeLevel(level string) string {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug", "trace":
		return "debug"
	case "warn", "warning":
		return "warn"
	case "error", "critical", "fatal", "panic":
		return "error"
	default:
		return "info"
	}
}
