package config

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/vivahlink/console/internal/types"
)

// Configuration is the full console configuration, loaded once at startup.
type Configuration struct {
	Deployment DeploymentConfig `mapstructure:"deployment"`
	Server     ServerConfig     `mapstructure:"server"`
	Upstream   UpstreamConfig   `mapstructure:"upstream" validate:"required"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

type DeploymentConfig struct {
	Mode types.DeploymentMode `mapstructure:"mode" validate:"required"`
}

type ServerConfig struct {
	Address string `mapstructure:"address" validate:"required"`
}

// UpstreamConfig points the console at the platform REST backend.
type UpstreamConfig struct {
	// BaseURL is the platform API root, e.g. https://api.vivahlink.com
	BaseURL string `mapstructure:"base_url" validate:"required,url"`
	// ImageBaseURL prefixes relative /uploads paths; derived from BaseURL
	// when unset.
	ImageBaseURL string        `mapstructure:"image_base_url"`
	Timeout      time.Duration `mapstructure:"timeout"`
	MaxRetries   int           `mapstructure:"max_retries" validate:"min=0,max=10"`
}

type CacheConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// StaleTime of zero means every entry is always stale: moderation views
	// must never trust old data for a new subscriber.
	StaleTime time.Duration `mapstructure:"stale_time"`
	// DormantTTL bounds how long a subscriber-less snapshot is kept around
	// for instant rehydration.
	DormantTTL time.Duration `mapstructure:"dormant_ttl"`

	ChatListPollInterval    time.Duration `mapstructure:"chat_list_poll_interval"`
	ChatMessagePollInterval time.Duration `mapstructure:"chat_message_poll_interval"`
}

type LoggingConfig struct {
	Level types.LogLevel `mapstructure:"level" validate:"required"`
}

// NewConfig loads configuration from .env, environment and config.yaml,
// in increasing precedence of environment variables.
func NewConfig() (*Configuration, error) {
	// Best effort; deployed consoles configure via real env vars.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	v.SetEnvPrefix("VIVAHLINK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Configuration
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.applyDerived()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("deployment.mode", string(types.DeploymentModeLocal))
	v.SetDefault("server.address", ":8080")
	v.SetDefault("upstream.base_url", "http://localhost:3000")
	v.SetDefault("upstream.timeout", 30*time.Second)
	v.SetDefault("upstream.max_retries", 3)
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.stale_time", time.Duration(0))
	v.SetDefault("cache.dormant_ttl", 30*time.Minute)
	v.SetDefault("cache.chat_list_poll_interval", 5*time.Second)
	v.SetDefault("cache.chat_message_poll_interval", 3*time.Second)
	v.SetDefault("logging.level", string(types.LogLevelInfo))
}

func (c *Configuration) applyDerived() {
	if c.Upstream.ImageBaseURL == "" {
		c.Upstream.ImageBaseURL = strings.TrimRight(c.Upstream.BaseURL, "/")
	}
}

func (c *Configuration) Validate() error {
	return validator.New().Struct(c)
}

// GetDefaultConfig returns a usable configuration without reading any
// sources. Used by scripts and tests.
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.DeploymentModeLocal},
		Server:     ServerConfig{Address: ":8080"},
		Upstream: UpstreamConfig{
			BaseURL:      "http://localhost:3000",
			ImageBaseURL: "http://localhost:3000",
			Timeout:      30 * time.Second,
			MaxRetries:   3,
		},
		Cache: CacheConfig{
			Enabled:                 true,
			StaleTime:               0,
			DormantTTL:              30 * time.Minute,
			ChatListPollInterval:    5 * time.Second,
			ChatMessagePollInterval: 3 * time.Second,
		},
		Logging: LoggingConfig{Level: types.LogLevelInfo},
	}
}
