package api

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.temporal.io/sdk/client"
)

const defaultChatSystemPrompt = "You are a helpful shopping assistant for an online store. " +
	"Answer questions about products, orders, and shipping clearly and concisely."

// Config carries environment-driven settings for the API process.
type Config struct {
	Port             string
	PostgresDSN      string
	RedisAddr        string
	CatalogCacheTTL  time.Duration
	KafkaBrokers     []string
	KafkaOrdersTopic string

	TemporalAddress   string
	TemporalNamespace string
	TemporalDisabled  bool

	OpenAIAPIKey     string
	OpenAIBaseURL    string
	OpenAIModel      string
	ChatSystemPrompt string

	CartMaxAge time.Duration
}

// LoadConfig reads a .env file when present, then environment variables,
// applying defaults and validating basic constraints.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:              envDefault("PORT", "8080"),
		PostgresDSN:       strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		RedisAddr:         strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		CatalogCacheTTL:   5 * time.Minute,
		KafkaOrdersTopic:  envDefault("KAFKA_ORDERS_TOPIC", "shop.orders"),
		TemporalAddress:   envDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		TemporalNamespace: envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		TemporalDisabled:  isTruthy(os.Getenv("TEMPORAL_DISABLED")),
		OpenAIAPIKey:      strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		OpenAIBaseURL:     strings.TrimSpace(os.Getenv("OPENAI_BASE_URL")),
		OpenAIModel:       strings.TrimSpace(os.Getenv("OPENAI_MODEL")),
		ChatSystemPrompt:  envDefault("CHAT_SYSTEM_PROMPT", defaultChatSystemPrompt),
		CartMaxAge:        30 * 24 * time.Hour,
	}
	if raw := strings.TrimSpace(os.Getenv("KAFKA_BROKERS")); raw != "" {
		for _, broker := range strings.Split(raw, ",") {
			if b := strings.TrimSpace(broker); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}
	if raw := strings.TrimSpace(os.Getenv("CATALOG_CACHE_TTL_SECONDS")); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			return Config{}, fmt.Errorf("CATALOG_CACHE_TTL_SECONDS must be a positive integer")
		}
		cfg.CatalogCacheTTL = time.Duration(seconds) * time.Second
	}
	if raw := strings.TrimSpace(os.Getenv("CART_MAX_AGE_DAYS")); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days <= 0 {
			return Config{}, fmt.Errorf("CART_MAX_AGE_DAYS must be a positive integer")
		}
		cfg.CartMaxAge = time.Duration(days) * 24 * time.Hour
	}
	return cfg, nil
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
