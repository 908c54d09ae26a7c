package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/config"
)

// Backend kinds
const (
	BackendSheets   = "sheets"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
	BackendNone     = "none"
)

type Config struct {
	Service   ServiceConfig   `yaml:"service"`
	HTTP      HTTPConfig      `yaml:"http"`
	GRPC      GRPCConfig      `yaml:"grpc"`
	Backend   BackendConfig   `yaml:"backend"`
	Sheets    SheetsConfig    `yaml:"sheets"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Kafka     KafkaConfig     `yaml:"kafka"`
	SMTP      SMTPConfig      `yaml:"smtp"`
	Reminders RemindersConfig `yaml:"reminders"`
	Auth      AuthConfig      `yaml:"auth"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	CORS      CORSConfig      `yaml:"cors"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type ServiceConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`
	Timezone    string `yaml:"timezone"`
}

type HTTPConfig struct {
	Port           int           `yaml:"port"`
	ReadTimeout    int           `yaml:"read_timeout"`
	WriteTimeout   int           `yaml:"write_timeout"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

type GRPCConfig struct {
	Enabled bool `yaml:"enabled"`
	Port    int  `yaml:"port"`
}

type BackendConfig struct {
	Kind                         string        `yaml:"kind"`
	PlaceholdersWhenUnconfigured bool          `yaml:"placeholders_when_unconfigured"`
	ReadRetries                  int           `yaml:"read_retries"`
	RetryBackoff                 time.Duration `yaml:"retry_backoff"`
}

type SheetsConfig struct {
	SpreadsheetID       string `yaml:"spreadsheet_id"`
	ServiceAccountEmail string `yaml:"service_account_email"`
	PrivateKey          string `yaml:"private_key"`
	HabitsSheet         string `yaml:"habits_sheet"`
	LogsSheet           string `yaml:"logs_sheet"`
}

type DatabaseConfig struct {
	URL      string `yaml:"url"`
	MaxConns int32  `yaml:"max_conns"`
}

type RedisConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	CacheTTL time.Duration `yaml:"cache_ttl"`
}

type KafkaConfig struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

type SMTPConfig struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
	FromEmail string `yaml:"from_email"`
	FromName  string `yaml:"from_name"`
	UseTLS    bool   `yaml:"use_tls"`
}

type RemindersConfig struct {
	Enabled       bool          `yaml:"enabled"`
	CheckInterval time.Duration `yaml:"check_interval"`
	Recipient     string        `yaml:"recipient"`
	TemplatesPath string        `yaml:"templates_path"`
}

type AuthConfig struct {
	Enabled   bool          `yaml:"enabled"`
	JWTSecret string        `yaml:"jwt_secret"`
	Issuer    string        `yaml:"issuer"`
	TokenTTL  time.Duration `yaml:"token_ttl"`
}

type RateLimitConfig struct {
	RequestsPerMinute int `yaml:"requests_per_minute"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Load loads configuration from YAML file with environment variable overrides
func Load() (*Config, error) {
	configPath := getEnv("CONFIG_PATH", "./config/base.yaml")

	provider, err := config.NewYAML(
		config.File(configPath),
		config.Expand(os.LookupEnv),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create config provider: %w", err)
	}

	var cfg Config
	if err := provider.Get(config.Root).Populate(&cfg); err != nil {
		return nil, fmt.Errorf("failed to populate config: %w", err)
	}

	cfg.overrideFromEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// overrideFromEnv overrides config values with environment variables if present
func (c *Config) overrideFromEnv() {
	if val := os.Getenv("SERVICE_NAME"); val != "" {
		c.Service.Name = val
	}
	if val := os.Getenv("SERVICE_ENVIRONMENT"); val != "" {
		c.Service.Environment = val
	}
	if val := os.Getenv("APP_TIMEZONE"); val != "" {
		c.Service.Timezone = val
	}
	if val := os.Getenv("HTTP_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.HTTP.Port)
	}
	if val := os.Getenv("GRPC_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.GRPC.Port)
	}
	if val := os.Getenv("BACKEND"); val != "" {
		c.Backend.Kind = val
	}
	if val := os.Getenv("GOOGLE_SHEET_ID"); val != "" {
		c.Sheets.SpreadsheetID = val
	}
	if val := os.Getenv("GOOGLE_SERVICE_ACCOUNT_EMAIL"); val != "" {
		c.Sheets.ServiceAccountEmail = val
	}
	if val := os.Getenv("GOOGLE_PRIVATE_KEY"); val != "" {
		c.Sheets.PrivateKey = val
	}
	// keys pasted into env files carry literal \n sequences
	c.Sheets.PrivateKey = strings.ReplaceAll(c.Sheets.PrivateKey, `\n`, "\n")

	if val := os.Getenv("DATABASE_URL"); val != "" {
		c.Database.URL = val
	}
	if val := os.Getenv("REDIS_ADDR"); val != "" {
		c.Redis.Addr = val
		c.Redis.Enabled = true
	}
	if val := os.Getenv("REDIS_PASSWORD"); val != "" {
		c.Redis.Password = val
	}
	if val := os.Getenv("KAFKA_BROKER"); val != "" {
		c.Kafka.Brokers = []string{val}
	}
	if val := os.Getenv("SMTP_HOST"); val != "" {
		c.SMTP.Host = val
	}
	if val := os.Getenv("SMTP_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.SMTP.Port)
	}
	if val := os.Getenv("SMTP_USERNAME"); val != "" {
		c.SMTP.Username = val
	}
	if val := os.Getenv("SMTP_PASSWORD"); val != "" {
		c.SMTP.Password = val
	}
	if val := os.Getenv("SMTP_USE_TLS"); val != "" {
		if useTLS, err := strconv.ParseBool(val); err == nil {
			c.SMTP.UseTLS = useTLS
		}
	}
	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.Auth.JWTSecret = val
	}
	if val := os.Getenv("AUTH_ENABLED"); val != "" {
		if enabled, err := strconv.ParseBool(val); err == nil {
			c.Auth.Enabled = enabled
		}
	}
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Logging.Level = val
	}
}

func (c *Config) applyDefaults() {
	if c.Sheets.HabitsSheet == "" {
		c.Sheets.HabitsSheet = "Habits"
	}
	if c.Sheets.LogsSheet == "" {
		c.Sheets.LogsSheet = "HabitLogs"
	}
	if c.Backend.Kind == "" {
		c.Backend.Kind = BackendSheets
	}
	if c.Backend.ReadRetries <= 0 {
		c.Backend.ReadRetries = 3
	}
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 8080
	}
	if c.HTTP.RequestTimeout <= 0 {
		c.HTTP.RequestTimeout = 10 * time.Second
	}
	if c.Redis.CacheTTL <= 0 {
		c.Redis.CacheTTL = 5 * time.Second
	}
	if c.Reminders.CheckInterval <= 0 {
		c.Reminders.CheckInterval = time.Minute
	}
	if c.Auth.TokenTTL <= 0 {
		c.Auth.TokenTTL = 30 * 24 * time.Hour
	}
	if c.RateLimit.RequestsPerMinute <= 0 {
		c.RateLimit.RequestsPerMinute = 120
	}
	if c.Kafka.Topic == "" {
		c.Kafka.Topic = "habit-events"
	}
}

// Validate checks cross-field constraints
func (c *Config) Validate() error {
	switch c.Backend.Kind {
	case BackendSheets, BackendPostgres, BackendMemory, BackendNone:
	default:
		return fmt.Errorf("unknown backend kind %q", c.Backend.Kind)
	}
	if c.Backend.Kind == BackendPostgres && c.Database.URL == "" {
		return fmt.Errorf("database.url is required for the postgres backend")
	}
	if c.Auth.Enabled && c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required when auth is enabled")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// SheetsConfigured reports whether enough is set to talk to Google Sheets
func (c *Config) SheetsConfigured() bool {
	return c.Sheets.SpreadsheetID != "" && c.Sheets.ServiceAccountEmail != "" && c.Sheets.PrivateKey != ""
}

// Location returns the time zone used for calendar dates
func (c *Config) Location() (*time.Location, error) {
	if c.Service.Timezone == "" || c.Service.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Service.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Service.Timezone, err)
	}
	return loc, nil
}

// IsProduction reports whether the service runs in production
func (c *ServiceConfig) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
