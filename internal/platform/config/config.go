// Package config assembles service configuration from defaults, an optional
// YAML file and environment overrides, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DevJWTSigningKey is used when no signing key is configured outside production.
const DevJWTSigningKey = "dev-secret-key-change-in-production"

type Config struct {
	Environment string           `yaml:"environment"`
	Server      ServerConfig     `yaml:"server"`
	Auth        AuthConfig       `yaml:"auth"`
	Database    DatabaseConfig   `yaml:"database"`
	Redis       RedisConfig      `yaml:"redis"`
	LLM         LLMConfig        `yaml:"llm"`
	Kafka       KafkaConfig      `yaml:"kafka"`
	Tracing     TracingConfig    `yaml:"tracing"`
	Assessment  AssessmentConfig `yaml:"assessment"`
	Logging     LoggingConfig    `yaml:"logging"`
	RateLimit   RateLimitConfig  `yaml:"rate_limit"`
}

// ServerConfig captures HTTP server level configuration.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type AuthConfig struct {
	JWTSigningKey string        `yaml:"jwt_signing_key"`
	Issuer        string        `yaml:"issuer"`
	TokenTTL      time.Duration `yaml:"token_ttl"`
}

// DatabaseConfig selects PostgreSQL when URL is set; otherwise the in-memory
// stores are used.
type DatabaseConfig struct {
	URL             string        `yaml:"url"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	TxTimeout       time.Duration `yaml:"tx_timeout"`
}

// RedisConfig enables the distributed audit lock when URL is set.
type RedisConfig struct {
	URL          string        `yaml:"url"`
	PoolSize     int           `yaml:"pool_size"`
	MinIdleConns int           `yaml:"min_idle_conns"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	LockTTL      time.Duration `yaml:"lock_ttl"`
}

// LLMConfig points at an OpenAI-compatible chat completion endpoint.
type LLMConfig struct {
	APIKey      string  `yaml:"api_key"`
	BaseURL     string  `yaml:"base_url"`
	Model       string  `yaml:"model"`
	Temperature float32 `yaml:"temperature"`
	// Consecutive backend failures that open the breaker, and how long it
	// stays open before a probe.
	BreakerFailures int           `yaml:"breaker_failures"`
	BreakerCooldown time.Duration `yaml:"breaker_cooldown"`
}

// KafkaConfig enables report.generated events when Brokers is non-empty.
type KafkaConfig struct {
	Brokers           []string `yaml:"brokers"`
	Topic             string   `yaml:"topic"`
	Partitions        int32    `yaml:"partitions"`
	ReplicationFactor int16    `yaml:"replication_factor"`
}

type TracingConfig struct {
	Enabled     bool   `yaml:"enabled"`
	ServiceName string `yaml:"service_name"`
}

type AssessmentConfig struct {
	SaveDebounce time.Duration `yaml:"save_debounce"`
	SaveTimeout  time.Duration `yaml:"save_timeout"`
}

// RateLimitConfig caps report generations per user. Limits are shared across
// replicas when Redis is configured.
type RateLimitConfig struct {
	Disabled     bool          `yaml:"disabled"`
	ReportLimit  int           `yaml:"report_limit"`
	ReportWindow time.Duration `yaml:"report_window"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Defaults returns a configuration that runs locally with in-memory stores.
func Defaults() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Auth: AuthConfig{
			Issuer:   "ethicsaudit",
			TokenTTL: 24 * time.Hour,
		},
		Database: DatabaseConfig{
			MaxOpenConns:    20,
			MaxIdleConns:    5,
			ConnMaxLifetime: 30 * time.Minute,
			TxTimeout:       5 * time.Second,
		},
		Redis: RedisConfig{
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
			LockTTL:      10 * time.Second,
		},
		LLM: LLMConfig{
			Model:           "gpt-3.5-turbo-0125",
			Temperature:     0.7,
			BreakerFailures: 5,
			BreakerCooldown: 30 * time.Second,
		},
		Kafka: KafkaConfig{
			Topic:             "ethicsaudit.reports",
			Partitions:        3,
			ReplicationFactor: 1,
		},
		Tracing: TracingConfig{
			ServiceName: "ethicsaudit",
		},
		Assessment: AssessmentConfig{
			SaveDebounce: time.Second,
			SaveTimeout:  5 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		RateLimit: RateLimitConfig{
			ReportLimit:  20,
			ReportWindow: time.Hour,
		},
	}
}

// Load reads defaults, then path (if non-empty), then the environment.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if cfg.Auth.JWTSigningKey == "" && !cfg.IsProduction() {
		cfg.Auth.JWTSigningKey = DevJWTSigningKey
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Environment, "ETHICSAUDIT_ENV")
	setString(&c.Server.Addr, "ETHICSAUDIT_ADDR")
	setString(&c.Auth.JWTSigningKey, "JWT_SIGNING_KEY")
	setString(&c.Database.URL, "DATABASE_URL")
	setString(&c.Redis.URL, "REDIS_URL")
	setString(&c.LLM.APIKey, "OPENAI_API_KEY")
	setString(&c.LLM.BaseURL, "OPENAI_BASE_URL")
	setString(&c.LLM.Model, "ETHICSAUDIT_LLM_MODEL")
	setString(&c.Logging.Level, "ETHICSAUDIT_LOG_LEVEL")
	setString(&c.Logging.Format, "ETHICSAUDIT_LOG_FORMAT")
	if v := os.Getenv("ETHICSAUDIT_KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = splitList(v)
	}
	setString(&c.Kafka.Topic, "ETHICSAUDIT_KAFKA_TOPIC")
	if v := os.Getenv("ETHICSAUDIT_TRACING_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("ETHICSAUDIT_TRACING_ENABLED: %w", err)
		}
		c.Tracing.Enabled = enabled
	}
	if v := os.Getenv("ETHICSAUDIT_RATE_LIMIT_DISABLED"); v != "" {
		disabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("ETHICSAUDIT_RATE_LIMIT_DISABLED: %w", err)
		}
		c.RateLimit.Disabled = disabled
	}
	if v := os.Getenv("ETHICSAUDIT_SAVE_DEBOUNCE"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("ETHICSAUDIT_SAVE_DEBOUNCE: %w", err)
		}
		c.Assessment.SaveDebounce = d
	}
	return nil
}

// IsProduction reports whether the service runs with production safeguards.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Validate checks the values the service cannot start without.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	if c.Auth.JWTSigningKey == "" {
		errs = append(errs, errors.New("auth.jwt_signing_key is required"))
	}
	if c.IsProduction() && c.Auth.JWTSigningKey == DevJWTSigningKey {
		errs = append(errs, errors.New("auth.jwt_signing_key must be set in production"))
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		errs = append(errs, errors.New("llm.temperature must be between 0 and 2"))
	}
	if !c.RateLimit.Disabled && (c.RateLimit.ReportLimit <= 0 || c.RateLimit.ReportWindow <= 0) {
		errs = append(errs, errors.New("rate_limit.report_limit and rate_limit.report_window must be positive"))
	}
	if c.Assessment.SaveDebounce <= 0 {
		errs = append(errs, errors.New("assessment.save_debounce must be positive"))
	}
	return errors.Join(errs...)
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
