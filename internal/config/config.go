package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

const (
	defaultTopic    = "dating-events"
	defaultProvider = ProviderFCM
	defaultDedupTTL = 24 * time.Hour
)

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	cfg, err := FromEnv(os.LookupEnv)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	return cfg
}

// FromEnv builds a Config from lookup. Every missing or invalid variable is
// reported in the returned error, not just the first one found.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	var missing []string
	var invalid []error
	// A helper function to get a required env var.
	getEnv := func(key string) string {
		if value, ok := lookup(key); ok && value != "" {
			return value
		}
		missing = append(missing, key)
		return ""
	}
	getEnvOr := func(key, fallback string) string {
		if value, ok := lookup(key); ok && value != "" {
			return value
		}
		return fallback
	}

	cfg := Config{
		DBName:    getEnv("DB_NAME"),
		Port:      getEnv("PORT"),
		ProjectID: getEnv("GCP_PROJECT"),
		Events: EventsConfig{
			Topic:        getEnvOr("EVENTS_TOPIC", defaultTopic),
			Subscription: getEnvOr("EVENTS_SUBSCRIPTION", ""),
		},
		Turso: TursoConfig{
			PrimaryURL: getEnvOr("TURSO_PRIMARY_URL", ""),
			AuthToken:  getEnvOr("TURSO_AUTH_TOKEN", ""),
		},
		Push: PushConfig{
			Provider: strings.ToLower(getEnvOr("PUSH_PROVIDER", defaultProvider)),
		},
		Redis: RedisConfig{
			URL: getEnvOr("REDIS_URL", ""),
			TTL: defaultDedupTTL,
		},
	}

	switch cfg.Push.Provider {
	case ProviderFCM:
		cfg.Push.FCMCredentialsFile = getEnvOr("FCM_CREDENTIALS_FILE", "")
	case ProviderOneSignal:
		cfg.Push.OneSignal = OneSignalConfig{
			AppID:  getEnv("ONESIGNAL_APP_ID"),
			APIKey: getEnv("ONESIGNAL_API_KEY"),
		}
	case ProviderSlack:
		cfg.Push.Slack = SlackConfig{
			Token:     getEnv("SLACK_BOT_TOKEN"),
			ChannelID: getEnv("SLACK_CHANNEL_ID"),
		}
	default:
		invalid = append(invalid, fmt.Errorf("unknown PUSH_PROVIDER %q", cfg.Push.Provider))
	}

	if ttl := getEnvOr("DEDUP_TTL", ""); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil || d <= 0 {
			invalid = append(invalid, fmt.Errorf("invalid DEDUP_TTL %q", ttl))
		} else {
			cfg.Redis.TTL = d
		}
	}

	if len(missing) > 0 {
		invalid = append([]error{fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))}, invalid...)
	}
	return cfg, errors.Join(invalid...)
}
