package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Bridge specifics
	Asana   AsanaConfig
	GitHub  GitHubConfig
	Webhook WebhookConfig

	// Tracing
	OTel OTelConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type AsanaConfig struct {
	BaseURL         string
	AccessToken     string
	Project         string // empty disables section moves
	PROpenSection   string
	MergedSection   string
	MoveOnActions   []string
	RateLimitPerSec float64 // 0 disables throttling
}

type GitHubConfig struct {
	BaseURL     string
	Token       string
	Login       string // sent as User-Agent
	AckReaction string // empty disables reactions
}

type WebhookConfig struct {
	Secret         string
	Path           string
	DedupSize      int
	DedupTTL       time.Duration
	MaxConcurrency int
	ProcessTimeout time.Duration
}

type OTelConfig struct {
	Endpoint       string
	Headers        string
	ServiceName    string
	ServiceVersion string
}

// Load loads configuration using Viper.
// A .env file is loaded first when present.
// Config file name: config.yaml, searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	// Missing .env is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/app/")

	// asana.access_token is read from ASANA_ACCESS_TOKEN, which keeps the
	// flat variable names of older deployments working.
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return build(v)
}

func build(v *viper.Viper) (*Config, error) {
	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = v.GetString("environment.name")
	cfg.HTTPServer.Port = v.GetInt("http_server.port")
	cfg.HTTPServer.Mode = v.GetString("http_server.mode")
	cfg.Logger.Level = v.GetString("logger.level")
	cfg.Logger.Mode = v.GetString("logger.mode")
	cfg.Logger.Encoding = v.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = v.GetBool("logger.color_enabled")

	// Asana
	cfg.Asana.BaseURL = v.GetString("asana.base_url")
	cfg.Asana.AccessToken = v.GetString("asana.access_token")
	cfg.Asana.Project = v.GetString("asana.project")
	cfg.Asana.PROpenSection = v.GetString("asana.pr_open_section")
	cfg.Asana.MergedSection = v.GetString("asana.merged_section")
	cfg.Asana.MoveOnActions = stringList(v, "asana.move_on_actions")
	cfg.Asana.RateLimitPerSec = v.GetFloat64("asana.rate_limit_per_sec")

	// GitHub
	cfg.GitHub.BaseURL = v.GetString("github.base_url")
	cfg.GitHub.Token = v.GetString("github.token")
	cfg.GitHub.Login = v.GetString("github.login")
	cfg.GitHub.AckReaction = v.GetString("github.ack_reaction")

	// Webhook
	cfg.Webhook.Secret = v.GetString("webhook.secret")
	cfg.Webhook.Path = v.GetString("webhook.path")
	cfg.Webhook.DedupSize = v.GetInt("webhook.dedup_size")
	cfg.Webhook.DedupTTL = v.GetDuration("webhook.dedup_ttl")
	cfg.Webhook.MaxConcurrency = v.GetInt("webhook.max_concurrency")
	cfg.Webhook.ProcessTimeout = v.GetDuration("webhook.process_timeout")

	// Tracing
	cfg.OTel.Endpoint = v.GetString("otel.endpoint")
	cfg.OTel.Headers = v.GetString("otel.headers")
	cfg.OTel.ServiceName = v.GetString("otel.service_name")
	cfg.OTel.ServiceVersion = v.GetString("otel.service_version")

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) validate() error {
	if cfg.Asana.AccessToken == "" {
		return fmt.Errorf("asana.access_token (ASANA_ACCESS_TOKEN) is required")
	}
	if cfg.Webhook.MaxConcurrency < 0 {
		return fmt.Errorf("webhook.max_concurrency must not be negative")
	}
	if cfg.Asana.RateLimitPerSec < 0 {
		return fmt.Errorf("asana.rate_limit_per_sec must not be negative")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment.name", "development")
	v.SetDefault("http_server.port", 8080)
	v.SetDefault("http_server.mode", "debug")
	v.SetDefault("logger.level", "debug")
	v.SetDefault("logger.mode", "debug")
	v.SetDefault("logger.encoding", "console")
	v.SetDefault("logger.color_enabled", true)

	v.SetDefault("asana.base_url", "https://app.asana.com/api/1.0")
	v.SetDefault("asana.rate_limit_per_sec", 5)
	v.SetDefault("github.base_url", "https://api.github.com")

	v.SetDefault("webhook.path", "/webhook/github")
	v.SetDefault("webhook.dedup_size", 1000)
	v.SetDefault("webhook.dedup_ttl", "1h")
	v.SetDefault("webhook.max_concurrency", 8)
	v.SetDefault("webhook.process_timeout", "2m")

	v.SetDefault("otel.service_name", "github-asana-bridge")
	v.SetDefault("otel.service_version", "1.0.0")
}

// stringList reads a YAML list or a comma separated string (env vars).
func stringList(v *viper.Viper, key string) []string {
	var raw []string
	switch val := v.Get(key).(type) {
	case nil:
		return nil
	case string:
		raw = strings.Split(val, ",")
	default:
		raw = v.GetStringSlice(key)
	}

	var out []string
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
