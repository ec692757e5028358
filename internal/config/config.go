// File: internal/config/config.go

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/blackcloro/steam-payments/pkg/logger"
)

const EnvPrefix = "PAYMENTS"

type Config struct {
	Port    int           `mapstructure:"PORT"`
	Env     string        `mapstructure:"ENV"`
	Log     LogConfig     `mapstructure:"LOG"`
	DB      DBConfig      `mapstructure:"DB"`
	Payment PaymentConfig `mapstructure:"PAYMENT"`
	Limiter LimiterConfig `mapstructure:"LIMITER"`
}

type LogConfig struct {
	Level  string `mapstructure:"LEVEL"`
	Format string `mapstructure:"FORMAT"`
}

// DBConfig.URL deliberately has no default: handlers answer 500 when it is
// empty instead of dialing somewhere unexpected.
type DBConfig struct {
	URL            string        `mapstructure:"URL"`
	ConnectTimeout time.Duration `mapstructure:"CONNECT_TIMEOUT"`
}

type LimiterConfig struct {
	Max        int           `mapstructure:"MAX"`
	Expiration time.Duration `mapstructure:"EXPIRATION"`
}

type PaymentConfig struct {
	PageURL string `mapstructure:"PAGE_URL"`
}

func Load() (*Config, error) {
	return load(".env")
}

func load(envFile string) (*Config, error) {
	v := viper.New()

	// Set default values
	v.SetDefault("PORT", 4000)
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG.LEVEL", "info")
	v.SetDefault("LOG.FORMAT", "text")
	v.SetDefault("DB.CONNECT_TIMEOUT", 10*time.Second)
	v.SetDefault("PAYMENT.PAGE_URL", "https://payment.example.com/pay")
	v.SetDefault("LIMITER.MAX", 20)
	v.SetDefault("LIMITER.EXPIRATION", 30*time.Second)

	// Look for .env file
	v.SetConfigFile(envFile)
	v.SetConfigType("env")

	// Read .env file if it exists
	if err := v.ReadInConfig(); err != nil {
		logger.Debug("Config file not loaded, using defaults and environment variables", "file", envFile, "error", err)
	}

	// Override with environment variables, e.g. PAYMENTS_DB_URL
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The bare name is what serverless platforms inject.
	if err := v.BindEnv("DB.URL", EnvPrefix+"_DB_URL", "DATABASE_URL"); err != nil {
		return nil, fmt.Errorf("unable to bind database url: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	return &config, nil
}
