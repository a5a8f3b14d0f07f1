package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress      string
	DatabaseURI     string
	JWTSecret       string
	TokenTTL        time.Duration
	RedisAddress    string
	CartTTL         time.Duration
	CartSweep       time.Duration
	KafkaBrokers    []string
	OrderTopic      string
	ExpoPushURL     string
	OrderEmail      string
	ChatNumber      string
	NotifyWorkers   int
	NotifyQueueSize int
	HistorySize     int
	ShutdownTimeout time.Duration
	LogLevel        string
	CORSOrigins     []string
}

const (
	defaultRunAddress      = ":8080"
	defaultJWTSecret       = "change-me-in-production"
	defaultTokenTTL        = 24 * time.Hour
	defaultCartTTL         = 72 * time.Hour
	defaultCartSweep       = 10 * time.Minute
	defaultOrderTopic      = "storefront.orders"
	defaultExpoPushURL     = "https://exp.host/--/api/v2/push/send"
	defaultOrderEmail      = "info@ornekfirma.de"
	defaultChatNumber      = "905340301025"
	defaultNotifyWorkers   = 2
	defaultNotifyQueueSize = 64
	defaultHistorySize     = 20
	defaultShutdownTimeout = 10 * time.Second
	defaultLogLevel        = "info"
	defaultCORSOrigins     = "*"
)

// Load parses configuration from flags and environment variables. A .env
// file in the working directory is applied first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:      getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:     getString(lookup, "DATABASE_URI", ""),
		JWTSecret:       getString(lookup, "JWT_SECRET", defaultJWTSecret),
		TokenTTL:        getDuration(lookup, "TOKEN_TTL", defaultTokenTTL),
		RedisAddress:    getString(lookup, "REDIS_ADDRESS", ""),
		CartTTL:         getDuration(lookup, "CART_TTL", defaultCartTTL),
		CartSweep:       getDuration(lookup, "CART_SWEEP_INTERVAL", defaultCartSweep),
		OrderTopic:      getString(lookup, "ORDER_EVENTS_TOPIC", defaultOrderTopic),
		ExpoPushURL:     getString(lookup, "EXPO_PUSH_URL", defaultExpoPushURL),
		OrderEmail:      getString(lookup, "ORDER_EMAIL", defaultOrderEmail),
		ChatNumber:      getString(lookup, "ORDER_CHAT_NUMBER", defaultChatNumber),
		NotifyWorkers:   getInt(lookup, "NOTIFY_WORKERS", defaultNotifyWorkers),
		NotifyQueueSize: getInt(lookup, "NOTIFY_QUEUE", defaultNotifyQueueSize),
		HistorySize:     getInt(lookup, "ORDER_HISTORY_SIZE", defaultHistorySize),
		ShutdownTimeout: getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		LogLevel:        getString(lookup, "LOG_LEVEL", defaultLogLevel),
	}

	fs := flag.NewFlagSet("storefront", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		tokenTTLStr        = cfg.TokenTTL.String()
		cartTTLStr         = cfg.CartTTL.String()
		cartSweepStr       = cfg.CartSweep.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
		kafkaBrokersStr    = getString(lookup, "KAFKA_BROKERS", "")
		corsOriginsStr     = getString(lookup, "CORS_ORIGINS", defaultCORSOrigins)
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing auth tokens")
	fs.StringVar(&tokenTTLStr, "token-ttl", tokenTTLStr, "Lifetime of issued auth tokens")
	fs.StringVar(&cfg.RedisAddress, "redis", cfg.RedisAddress, "Redis address for cart snapshots")
	fs.StringVar(&cartTTLStr, "cart-ttl", cartTTLStr, "Idle lifetime of a cart")
	fs.StringVar(&cartSweepStr, "cart-sweep", cartSweepStr, "Interval between idle cart sweeps")
	fs.StringVar(&kafkaBrokersStr, "kafka-brokers", kafkaBrokersStr, "Comma separated Kafka brokers for order events")
	fs.StringVar(&cfg.OrderTopic, "order-topic", cfg.OrderTopic, "Kafka topic for order events")
	fs.StringVar(&cfg.ExpoPushURL, "expo-url", cfg.ExpoPushURL, "Expo push API endpoint")
	fs.StringVar(&cfg.OrderEmail, "order-email", cfg.OrderEmail, "Order intake email address")
	fs.StringVar(&cfg.ChatNumber, "chat-number", cfg.ChatNumber, "Order intake WhatsApp number")
	fs.IntVar(&cfg.NotifyWorkers, "notify-workers", cfg.NotifyWorkers, "Number of notification workers")
	fs.IntVar(&cfg.NotifyQueueSize, "notify-queue", cfg.NotifyQueueSize, "Capacity of the notification queue")
	fs.IntVar(&cfg.HistorySize, "history-size", cfg.HistorySize, "Orders kept per user in the recent history")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	fs.StringVar(&corsOriginsStr, "cors-origins", corsOriginsStr, "Comma separated allowed CORS origins")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.TokenTTL, err = time.ParseDuration(tokenTTLStr); err != nil {
		return nil, fmt.Errorf("invalid token ttl: %w", err)
	}

	if cfg.CartTTL, err = time.ParseDuration(cartTTLStr); err != nil {
		return nil, fmt.Errorf("invalid cart ttl: %w", err)
	}

	if cfg.CartSweep, err = time.ParseDuration(cartSweepStr); err != nil {
		return nil, fmt.Errorf("invalid cart sweep interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = strings.TrimSpace(string(content))
	}

	cfg.KafkaBrokers = splitList(kafkaBrokersStr)
	cfg.CORSOrigins = splitList(corsOriginsStr)
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{defaultCORSOrigins}
	}

	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}

	if cfg.CartTTL <= 0 {
		cfg.CartTTL = defaultCartTTL
	}

	if cfg.CartSweep <= 0 {
		cfg.CartSweep = defaultCartSweep
	}

	if cfg.NotifyWorkers <= 0 {
		cfg.NotifyWorkers = defaultNotifyWorkers
	}

	if cfg.NotifyQueueSize <= 0 {
		cfg.NotifyQueueSize = defaultNotifyQueueSize
	}

	if cfg.HistorySize <= 0 {
		cfg.HistorySize = defaultHistorySize
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.OrderTopic == "" {
		cfg.OrderTopic = defaultOrderTopic
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
