package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	APIBaseURL   string        `mapstructure:"API_BASE_URL"`
	RedisAddr    string        `mapstructure:"REDIS_ADDR"`
	RedisPass    string        `mapstructure:"REDIS_PASSWORD"`
	ClientID     string        `mapstructure:"CLIENT_ID"`
	DismissAfter time.Duration `mapstructure:"DISMISS_AFTER"`
}

// Load reads configuration from the environment, with an optional .env file
// at path (empty path skips the file). Environment variables win over file
// values.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("API_BASE_URL", "http://localhost:3000/api")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("CLIENT_ID", "")
	v.SetDefault("DISMISS_AFTER", 5*time.Second)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cf := &Config{}
	if err := v.Unmarshal(cf); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return cf, nil
}
