package config

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	// WebServer Configuration
	WebServerPort int `mapstructure:"WEBSERVER_PORT" validate:"gte=1,lte=65535"`

	// Extraction Configuration
	YTDLPPath             string `mapstructure:"YTDLP_PATH"`
	ExtractTimeoutSeconds int    `mapstructure:"EXTRACT_TIMEOUT_SECONDS" validate:"gte=1"`

	// Cache Configuration. 0 disables the metadata cache.
	CacheTTLSeconds int `mapstructure:"CACHE_TTL_SECONDS" validate:"gte=0"`
}

// use reflect to bind environment variables based on mapstructure tags
func bindEnv(c Config) {
	val := reflect.ValueOf(c)
	typ := val.Type()

	for i := 0; i < val.NumField(); i++ {
		tag := typ.Field(i).Tag.Get("mapstructure")
		if tag != "" {
			viper.BindEnv(tag)
		}
	}
}

func LoadConfig(ctx context.Context) (*Config, error) {
	bindEnv(Config{})
	viper.AutomaticEnv()

	// Defaults
	viper.SetDefault("WEBSERVER_PORT", 8000)
	viper.SetDefault("YTDLP_PATH", "yt-dlp")
	viper.SetDefault("EXTRACT_TIMEOUT_SECONDS", 60)
	viper.SetDefault("CACHE_TTL_SECONDS", 300)

	cfg := Config{}
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	slog.Info("Loaded configuration", "config", cfg)

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}
