package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		API
		State
		Notifications
		Dashboard
		Global
	}

	API struct {
		BaseURL string
		Timeout time.Duration
	}
	State struct {
		DatabasePath  string
		EncryptionKey string // Base64 AES-256 key; auto-generated key file if empty
	}
	Notifications struct {
		PollSchedule string // Cron format with seconds support: "@every 30s"
		FeedLimit    int
	}
	Dashboard struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("api_base_url", DefaultAPIBaseURL)
	v.SetDefault("api_timeout", "30s")
	v.SetDefault("state_database_path", DefaultStatePath)
	v.SetDefault("state_encryption_key", "") // Key file generated if empty
	v.SetDefault("notifications_poll_schedule", "@every 30s")
	v.SetDefault("notifications_feed_limit", 10)
	v.SetDefault("dashboard_port", 8187)
	v.SetDefault("dashboard_host", "127.0.0.1")
	v.SetDefault("shutdown_timeout_in_seconds", 2)

	return &Config{
		API: API{
			BaseURL: v.GetString("API_BASE_URL"),
			Timeout: v.GetDuration("API_TIMEOUT"),
		},
		State: State{
			DatabasePath:  v.GetString("STATE_DATABASE_PATH"),
			EncryptionKey: v.GetString("STATE_ENCRYPTION_KEY"),
		},
		Notifications: Notifications{
			PollSchedule: v.GetString("NOTIFICATIONS_POLL_SCHEDULE"),
			FeedLimit:    v.GetInt("NOTIFICATIONS_FEED_LIMIT"),
		},
		Dashboard: Dashboard{
			Port: v.GetInt32("DASHBOARD_PORT"),
			Host: v.GetString("DASHBOARD_HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
	}
}
