package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	Database *Database
	HTTP     *HTTP
	App      *App
	Auth     *Auth
	Redis    *Redis
	Kafka    *Kafka
	Webhook  *Webhook
	Broker   *Broker
	Sweep    *Sweep
	Calendar *Calendar
	Bank     *Bank
}

const AppModeProduction = "PROD"
const AppModeDevelop = "DEV"

type App struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	Mode     string `env:"APP_MODE" envDefault:"DEV"`
}

type Database struct {
	DSN      string `env:"DATABASE_URI"`
	MaxConns int32  `env:"DATABASE_MAX_CONNS" envDefault:"10"`
}

type HTTP struct {
	HostString string `env:"RUN_ADDRESS" envDefault:"localhost:8080"`
}

type Auth struct {
	// AdminKey is a hex encoded v4 symmetric key. A random key is used when empty.
	AdminKey string        `env:"ADMIN_TOKEN_KEY"`
	TokenTTL time.Duration `env:"ADMIN_TOKEN_TTL" envDefault:"12h"`
}

type Redis struct {
	URL string `env:"REDIS_URL"`
}

type Kafka struct {
	Brokers []string `env:"KAFKA_BROKERS" envSeparator:","`
	Topic   string   `env:"KAFKA_TOPIC" envDefault:"order-pipeline"`
}

type Webhook struct {
	ConnectTimeout time.Duration `env:"WEBHOOK_CONNECT_TIMEOUT" envDefault:"3s"`
	TotalTimeout   time.Duration `env:"WEBHOOK_TOTAL_TIMEOUT" envDefault:"10s"`
}

type Broker struct {
	EnforceSignature bool `env:"BROKER_ENFORCE_SIGNATURE" envDefault:"true"`
	// ConfirmRetryBudget is how many confirmations without execution data a placed
	// order absorbs before it fails. Zero never escalates.
	ConfirmRetryBudget int `env:"BROKER_CONFIRM_RETRY_BUDGET" envDefault:"0"`
	// PlacedMaxAge fails orders held in placed longer than this. Zero disables it.
	PlacedMaxAge time.Duration `env:"BROKER_PLACED_MAX_AGE" envDefault:"0"`
}

type Sweep struct {
	LockTTL  time.Duration `env:"SWEEP_LOCK_TTL" envDefault:"10m"`
	PageSize uint64        `env:"SWEEP_PAGE_SIZE" envDefault:"50"`
}

type Calendar struct {
	Timezone     string `env:"MARKET_TIMEZONE" envDefault:"America/New_York"`
	Open         string `env:"MARKET_OPEN" envDefault:"09:30"`
	Close        string `env:"MARKET_CLOSE" envDefault:"16:00"`
	HolidaysFile string `env:"MARKET_HOLIDAYS_FILE"`
}

type Bank struct {
	HostString string `env:"BANK_RAIL_ADDRESS"`
	Secret     string `env:"BANK_RAIL_SECRET"`
}

func NewConfig() (*Config, error) {
	config := Config{
		Database: &Database{},
		HTTP:     &HTTP{},
		App:      &App{},
		Auth:     &Auth{},
		Redis:    &Redis{},
		Kafka:    &Kafka{},
		Webhook:  &Webhook{},
		Broker:   &Broker{},
		Sweep:    &Sweep{},
		Calendar: &Calendar{},
		Bank:     &Bank{},
	}

	sections := []struct {
		name string
		v    any
	}{
		{"database", config.Database},
		{"http", config.HTTP},
		{"app", config.App},
		{"auth", config.Auth},
		{"redis", config.Redis},
		{"kafka", config.Kafka},
		{"webhook", config.Webhook},
		{"broker", config.Broker},
		{"sweep", config.Sweep},
		{"calendar", config.Calendar},
		{"bank", config.Bank},
	}
	for _, s := range sections {
		if err := env.Parse(s.v); err != nil {
			return nil, fmt.Errorf("error parsing env %s config: %w", s.name, err)
		}
	}

	if config.Webhook.TotalTimeout <= 0 {
		return nil, fmt.Errorf("WEBHOOK_TOTAL_TIMEOUT must be positive")
	}
	if config.Broker.ConfirmRetryBudget < 0 {
		return nil, fmt.Errorf("BROKER_CONFIRM_RETRY_BUDGET must not be negative")
	}
	if config.Sweep.PageSize == 0 {
		config.Sweep.PageSize = 50
	}

	return &config, nil
}
