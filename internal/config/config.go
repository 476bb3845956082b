package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Env         string
	LogLevel    string
	Server      ServerConfig
	RateLimit   RateLimitConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	NATS        NATSConfig
	Kafka       KafkaConfig
	Events      EventsConfig
	Journal     JournalConfig
	Idempotency IdempotencyConfig
	Market      MarketConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
}

// RateLimitConfig bounds requests per client IP
type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	MigrationsDir   string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// NATSConfig holds NATS configuration
type NATSConfig struct {
	URL string
}

// KafkaConfig holds Kafka configuration
type KafkaConfig struct {
	Brokers []string
}

// EventsConfig selects where committed ledger events go
type EventsConfig struct {
	Driver  string
	Subject string
}

// JournalConfig selects the journal backend
type JournalConfig struct {
	Driver string
}

// IdempotencyConfig controls replay protection for order placement
type IdempotencyConfig struct {
	Driver string
	TTL    time.Duration
}

// MarketConfig holds ledger parameters fixed at creation
type MarketConfig struct {
	Owner        string
	StartHeight  uint64
	InitialStock uint64
	LogPolicy    string
}

const (
	EventsDriverNATS  = "nats"
	EventsDriverKafka = "kafka"
	EventsDriverNone  = "none"

	JournalDriverPostgres = "postgres"
	JournalDriverMemory   = "memory"

	IdempotencyDriverRedis = "redis"
	IdempotencyDriverNone  = "none"
)

// Load reads configuration from environment variables and returns a Config struct.
// A .env file in the working directory is loaded first when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "")
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_READ_TIMEOUT", "10s")
	viper.SetDefault("SERVER_WRITE_TIMEOUT", "10s")
	viper.SetDefault("SERVER_REQUEST_TIMEOUT", "5s")
	viper.SetDefault("SERVER_SHUTDOWN_TIMEOUT", "30s")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:8080")

	viper.SetDefault("RATE_LIMIT_RPS", 20)
	viper.SetDefault("RATE_LIMIT_BURST", 40)

	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_NAME", "market_ledger")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_MAX_OPEN_CONNS", 25)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DB_CONN_MAX_LIFETIME", "5m")
	viper.SetDefault("DB_MIGRATIONS_DIR", "migrations")

	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)

	viper.SetDefault("NATS_URL", "nats://localhost:4222")
	viper.SetDefault("KAFKA_BROKERS", "localhost:9092")

	viper.SetDefault("EVENTS_DRIVER", EventsDriverNATS)
	viper.SetDefault("EVENTS_SUBJECT", "market.events")
	viper.SetDefault("JOURNAL_DRIVER", JournalDriverPostgres)
	viper.SetDefault("IDEMPOTENCY_DRIVER", IdempotencyDriverRedis)
	viper.SetDefault("IDEMPOTENCY_TTL", "24h")

	viper.SetDefault("MARKET_OWNER", "")
	viper.SetDefault("MARKET_START_HEIGHT", 0)
	viper.SetDefault("MARKET_INITIAL_STOCK", 0)
	viper.SetDefault("MARKET_LOG_POLICY", "ring")

	readTimeout, err := time.ParseDuration(viper.GetString("SERVER_READ_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_READ_TIMEOUT: %w", err)
	}

	writeTimeout, err := time.ParseDuration(viper.GetString("SERVER_WRITE_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_WRITE_TIMEOUT: %w", err)
	}

	requestTimeout, err := time.ParseDuration(viper.GetString("SERVER_REQUEST_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_REQUEST_TIMEOUT: %w", err)
	}

	shutdownTimeout, err := time.ParseDuration(viper.GetString("SERVER_SHUTDOWN_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_SHUTDOWN_TIMEOUT: %w", err)
	}

	connMaxLifetime, err := time.ParseDuration(viper.GetString("DB_CONN_MAX_LIFETIME"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_CONN_MAX_LIFETIME: %w", err)
	}

	idempotencyTTL, err := time.ParseDuration(viper.GetString("IDEMPOTENCY_TTL"))
	if err != nil {
		return nil, fmt.Errorf("invalid IDEMPOTENCY_TTL: %w", err)
	}

	owner := strings.TrimSpace(viper.GetString("MARKET_OWNER"))
	if owner == "" {
		return nil, errors.New("MARKET_OWNER is required")
	}

	events := strings.ToLower(viper.GetString("EVENTS_DRIVER"))
	switch events {
	case EventsDriverNATS, EventsDriverKafka, EventsDriverNone:
	default:
		return nil, fmt.Errorf("invalid EVENTS_DRIVER %q", events)
	}

	journal := strings.ToLower(viper.GetString("JOURNAL_DRIVER"))
	switch journal {
	case JournalDriverPostgres, JournalDriverMemory:
	default:
		return nil, fmt.Errorf("invalid JOURNAL_DRIVER %q", journal)
	}

	idempotency := strings.ToLower(viper.GetString("IDEMPOTENCY_DRIVER"))
	switch idempotency {
	case IdempotencyDriverRedis, IdempotencyDriverNone:
	default:
		return nil, fmt.Errorf("invalid IDEMPOTENCY_DRIVER %q", idempotency)
	}

	config := &Config{
		Env:      viper.GetString("ENV"),
		LogLevel: viper.GetString("LOG_LEVEL"),
		Server: ServerConfig{
			Port:            viper.GetString("SERVER_PORT"),
			ReadTimeout:     readTimeout,
			WriteTimeout:    writeTimeout,
			RequestTimeout:  requestTimeout,
			ShutdownTimeout: shutdownTimeout,
			AllowedOrigins:  splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
		},
		RateLimit: RateLimitConfig{
			RPS:   viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst: viper.GetInt("RATE_LIMIT_BURST"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetString("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			Name:            viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxOpenConns:    viper.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: connMaxLifetime,
			MigrationsDir:   viper.GetString("DB_MIGRATIONS_DIR"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		NATS: NATSConfig{
			URL: viper.GetString("NATS_URL"),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(viper.GetString("KAFKA_BROKERS")),
		},
		Events: EventsConfig{
			Driver:  events,
			Subject: viper.GetString("EVENTS_SUBJECT"),
		},
		Journal: JournalConfig{
			Driver: journal,
		},
		Idempotency: IdempotencyConfig{
			Driver: idempotency,
			TTL:    idempotencyTTL,
		},
		Market: MarketConfig{
			Owner:        owner,
			StartHeight:  viper.GetUint64("MARKET_START_HEIGHT"),
			InitialStock: viper.GetUint64("MARKET_INITIAL_STOCK"),
			LogPolicy:    viper.GetString("MARKET_LOG_POLICY"),
		},
	}

	return config, nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// GetDSN returns the PostgreSQL connection string
func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}
