package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	AllowedOrigin string
	// Upstream webhook
	WebhookURL       string
	WebhookTextParam string
	WebhookTimeout   time.Duration
	// Optional bearer token sent to the upstream on every call
	WebhookBearerToken string
	// Optional YAML file overriding the loading messages
	LoadingMessagesFile string
}

func Load() Config {
	_ = godotenv.Load()
	cfg := Config{
		Port:                getEnvDefault("PORT", "5000"),
		AllowedOrigin:       getEnvDefault("ALLOWED_ORIGIN", "*"),
		WebhookURL:          strings.TrimSpace(os.Getenv("WEBHOOK_URL")),
		WebhookTextParam:    getEnvDefault("WEBHOOK_TEXT_PARAM", "text"),
		WebhookTimeout:      getEnvDurationDefault("WEBHOOK_TIMEOUT", 30*time.Second),
		WebhookBearerToken:  os.Getenv("WEBHOOK_BEARER_TOKEN"),
		LoadingMessagesFile: os.Getenv("LOADING_MESSAGES_FILE"),
	}
	if cfg.WebhookURL == "" {
		log.Println("warning: WEBHOOK_URL is not set; relay calls will fail until provided")
	}
	return cfg
}

func getEnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvDurationDefault accepts Go duration strings ("45s") or a bare number of seconds.
func getEnvDurationDefault(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	if d, err := time.ParseDuration(v + "s"); err == nil && d > 0 {
		return d
	}
	log.Printf("warning: invalid %s=%q, using %s", key, v, def)
	return def
}
