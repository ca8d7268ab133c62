package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Kafka      KafkaConfig      `mapstructure:"kafka"`
	Gateway    GatewayConfig    `mapstructure:"gateway"`
	Custodians CustodiansConfig `mapstructure:"custodians"`
	Compliance ComplianceConfig `mapstructure:"compliance"`
	Queue      QueueConfig      `mapstructure:"queue"`
	Log        LogConfig        `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// KafkaConfig configures the settlement event publisher. Enabled false
// disables event publishing entirely.
type KafkaConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

// GatewayConfig configures the client to the external payment gateway.
// Secret signs the per-request bearer tokens; WebhookSecret verifies inbound
// webhook signatures.
type GatewayConfig struct {
	BaseURL       string        `mapstructure:"base_url"`
	Secret        string        `mapstructure:"secret"`
	Issuer        string        `mapstructure:"issuer"`
	Timeout       time.Duration `mapstructure:"timeout"`
	WebhookSecret string        `mapstructure:"webhook_secret"`
}

// CustodianConfig holds the credentials for one custody backend.
type CustodianConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	APIKey    string        `mapstructure:"api_key"`
	APISecret string        `mapstructure:"api_secret"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

type CustodiansConfig struct {
	Vaultis   CustodianConfig `mapstructure:"vaultis"`
	ChargeHub CustodianConfig `mapstructure:"chargehub"`
}

// ComplianceConfig holds the tunable compliance inputs. List values are
// comma-separated when set through environment variables.
type ComplianceConfig struct {
	TravelRuleThreshold   int64    `mapstructure:"travel_rule_threshold"`
	SanctionedAddresses   []string `mapstructure:"sanctioned_addresses"`
	HighRiskAssets        []string `mapstructure:"high_risk_assets"`
	HighRiskJurisdictions []string `mapstructure:"high_risk_jurisdictions"`
	// Platform identity used as the travel-rule beneficiary for deposits.
	PlatformName      string `mapstructure:"platform_name"`
	PlatformAccountID string `mapstructure:"platform_account_id"`
}

type QueueConfig struct {
	Size         int           `mapstructure:"size"`
	DrainTimeout time.Duration `mapstructure:"drain_timeout"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: SET_ (Settlement).
// Nested keys use underscore: SET_DATABASE_HOST, SET_GATEWAY_SECRET, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "freight_settlement")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.topic", "settlement.payment.status")
	v.SetDefault("gateway.base_url", "http://localhost:9000")
	v.SetDefault("gateway.secret", "")
	v.SetDefault("gateway.issuer", "freight-settlement")
	v.SetDefault("gateway.timeout", "10s")
	v.SetDefault("gateway.webhook_secret", "")
	v.SetDefault("custodians.vaultis.timeout", "15s")
	v.SetDefault("custodians.chargehub.timeout", "15s")
	v.SetDefault("compliance.travel_rule_threshold", 1000)
	v.SetDefault("compliance.platform_name", "Freight Settlement Platform")
	v.SetDefault("compliance.platform_account_id", "")
	v.SetDefault("queue.size", 64)
	v.SetDefault("queue.drain_timeout", "30s")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: SET_DATABASE_HOST -> database.host
	v.SetEnvPrefix("SET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required, env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}
