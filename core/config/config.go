package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	OTel       OTelConfig
	Slack      SlackConfig
	LLM        LLMConfig
	Env        string
	Port       string
	JobTimeout time.Duration
	NodeID     int64
}

type OTelConfig struct {
	Endpoint       string
	Headers        string
	ServiceName    string
	ServiceVersion string
}

type SlackConfig struct {
	BotToken      string // xoxb-...
	SigningSecret string
	AppToken      string // xapp-..., enables Socket Mode when set
	APIURL        string // Optional: Web API base override
	Debug         bool
}

type LLMConfig struct {
	Provider         string // "openai" or "anthropic"
	APIKey           string
	BaseURL          string // Optional: for custom endpoints
	Model            string
	TokensPerMessage int
	Temperature      float64
}

// Load loads configuration from environment variables.
// In development, a .env file in the working directory is loaded first.
func Load() (Config, error) {
	if getEnv("HUDDLE_ENV", "development") == "development" {
		_ = godotenv.Load(".env")
	}

	cfg := Config{
		Env:        getEnv("HUDDLE_ENV", "development"),
		Port:       getEnv("PORT", "3000"),
		JobTimeout: getEnvDuration("JOB_TIMEOUT", 60*time.Second),
		NodeID:     int64(getEnvInt("SNOWFLAKE_NODE_ID", 1)),
		OTel: OTelConfig{
			Endpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Headers:        getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""),
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "huddle"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "dev"),
		},
		Slack: SlackConfig{
			BotToken:      getEnv("SLACK_BOT_TOKEN", ""),
			SigningSecret: getEnv("SLACK_SIGNING_SECRET", ""),
			AppToken:      getEnv("SLACK_APP_TOKEN", ""),
			APIURL:        getEnv("SLACK_API_URL", ""),
			Debug:         getEnvBool("SLACK_DEBUG", false),
		},
		LLM: LLMConfig{
			Provider:         getEnv("LLM_PROVIDER", "openai"),
			APIKey:           getEnv("LLM_API_KEY", getEnv("OPENAI_API_KEY", "")),
			BaseURL:          getEnv("LLM_BASE_URL", ""),
			Model:            getEnv("LLM_MODEL", ""),
			TokensPerMessage: getEnvInt("LLM_TOKENS_PER_MESSAGE", 150),
			Temperature:      getEnvFloat("LLM_TEMPERATURE", 0.8),
		},
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) validate() error {
	if c.Slack.BotToken == "" {
		return fmt.Errorf("SLACK_BOT_TOKEN is required")
	}
	if !c.Slack.SocketMode() && c.Slack.SigningSecret == "" {
		return fmt.Errorf("SLACK_SIGNING_SECRET is required unless SLACK_APP_TOKEN is set")
	}
	if c.LLM.APIKey == "" {
		return fmt.Errorf("LLM_API_KEY (or OPENAI_API_KEY) is required")
	}
	if c.LLM.Provider != "openai" && c.LLM.Provider != "anthropic" {
		return fmt.Errorf("unsupported LLM_PROVIDER %q", c.LLM.Provider)
	}
	if c.LLM.TokensPerMessage <= 0 {
		return fmt.Errorf("LLM_TOKENS_PER_MESSAGE must be positive")
	}
	return nil
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c OTelConfig) Enabled() bool {
	return c.Endpoint != ""
}

// SocketMode reports whether events arrive over Socket Mode instead of HTTP.
func (c SlackConfig) SocketMode() bool {
	return c.AppToken != ""
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
