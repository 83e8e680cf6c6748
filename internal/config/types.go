package config

import "time"

// Config holds all configuration for the application.
type Config struct {
	DBName    string
	Port      string
	ProjectID string
	Events    EventsConfig
	Turso     TursoConfig
	Push      PushConfig
	Redis     RedisConfig
}

type EventsConfig struct {
	Topic string
	// Subscription enables the pull consumer when set.
	Subscription string
}
type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}
type PushConfig struct {
	Provider           string
	FCMCredentialsFile string
	OneSignal          OneSignalConfig
	Slack              SlackConfig
}
type OneSignalConfig struct {
	AppID  string
	APIKey string
}
type SlackConfig struct {
	Token     string
	ChannelID string
}
type RedisConfig struct {
	// URL enables push de-duplication when set.
	URL string
	TTL time.Duration
}

const (
	ProviderFCM       = "fcm"
	ProviderOneSignal = "onesignal"
	ProviderSlack     = "slack"
)
