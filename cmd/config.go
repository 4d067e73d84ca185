package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"bookstore/internal/core/domain/model/invoice"
	"bookstore/internal/jobs"
	"bookstore/internal/pkg/logging"

	"github.com/shopspring/decimal"
)

const (
	defaultHTTPPort       = "8080"
	defaultTaxRate        = "0.10"
	defaultIdempotencyTTL = 24 * time.Hour
	defaultOrderTopic     = "order.status.changed"
)

// Config is the typed process configuration. Optional integrations are disabled when
// their address is empty.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	TaxRate invoice.TaxRate

	// KafkaBrokers publish order status changes; empty disables notifications.
	KafkaBrokers           []string
	KafkaOrderChangedTopic string

	// RedisAddr backs Idempotency-Key handling; empty disables it.
	RedisAddr      string
	IdempotencyTTL time.Duration

	InvoiceBackfillSchedule string
	LogLevel                slog.Level
}

// LoadConfig reads the configuration through getenv (os.Getenv in production) and
// reports every invalid value at once.
func LoadConfig(getenv func(string) string) (Config, error) {
	get := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	cfg := Config{
		HTTPPort:                get("HTTP_PORT", defaultHTTPPort),
		DBHost:                  get("DB_HOST", "localhost"),
		DBPort:                  get("DB_PORT", "5432"),
		DBUser:                  get("DB_USER", "postgres"),
		DBPassword:              getenv("DB_PASSWORD"),
		DBName:                  get("DB_NAME", "bookstore"),
		DBSslMode:               get("DB_SSLMODE", "disable"),
		KafkaOrderChangedTopic:  get("KAFKA_ORDER_CHANGED_TOPIC", defaultOrderTopic),
		RedisAddr:               get("REDIS_ADDR", ""),
		InvoiceBackfillSchedule: get("INVOICE_BACKFILL_SCHEDULE", jobs.DefaultInvoiceBackfillSchedule),
		IdempotencyTTL:          defaultIdempotencyTTL,
	}

	var errList []error

	rate, err := decimal.NewFromString(get("TAX_RATE", defaultTaxRate))
	if err != nil {
		errList = append(errList, fmt.Errorf("TAX_RATE: %w", err))
	} else if cfg.TaxRate, err = invoice.NewTaxRate(rate); err != nil {
		errList = append(errList, fmt.Errorf("TAX_RATE: %w", err))
	}

	if hosts := get("KAFKA_HOST", ""); hosts != "" {
		for _, host := range strings.Split(hosts, ",") {
			if host = strings.TrimSpace(host); host != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, host)
			}
		}
	}

	if raw := get("IDEMPOTENCY_TTL", ""); raw != "" {
		ttl, err := time.ParseDuration(raw)
		switch {
		case err != nil:
			errList = append(errList, fmt.Errorf("IDEMPOTENCY_TTL: %w", err))
		case ttl <= 0:
			errList = append(errList, errors.New("IDEMPOTENCY_TTL: must be positive"))
		default:
			cfg.IdempotencyTTL = ttl
		}
	}

	if cfg.LogLevel, err = logging.ParseLevel(getenv("LOG_LEVEL")); err != nil {
		errList = append(errList, fmt.Errorf("LOG_LEVEL: %w", err))
	}

	if err = errors.Join(errList...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DSN is the lib/pq connection string of the database.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
