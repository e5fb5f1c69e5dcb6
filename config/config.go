package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
	SSLMode  string `mapstructure:"sslmode"`
}

type S3Config struct {
	Endpoint  string `mapstructure:"endpoint"`
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	KeyID     string `mapstructure:"key_id"`
	AccessKey string `mapstructure:"access_key"`
	Timeout   string `mapstructure:"timeout"`
	PublicURL string `mapstructure:"public_url"`
}

type MediaConfig struct {
	// Store selects the image persister: "filesystem" or "s3".
	Store string   `mapstructure:"store"`
	Root  string   `mapstructure:"root"`
	S3    S3Config `mapstructure:"s3"`
}

type AuthConfig struct {
	Secret            string `mapstructure:"secret"`
	AccessTTLMinutes  int    `mapstructure:"access_ttl_minutes"`
	RefreshTTLMinutes int    `mapstructure:"refresh_ttl_minutes"`
}

type AppConfig struct {
	Port                int    `mapstructure:"port"`
	LogLevel            string `mapstructure:"log_level"`
	HumanReadableOutput bool   `mapstructure:"human_readable_output"`

	Database DatabaseConfig `mapstructure:"database"`
	Media    MediaConfig    `mapstructure:"media"`
	Auth     AuthConfig     `mapstructure:"auth"`
}

func (c *AppConfig) AccessTTL() time.Duration {
	return time.Duration(c.Auth.AccessTTLMinutes) * time.Minute
}

func (c *AppConfig) RefreshTTL() time.Duration {
	return time.Duration(c.Auth.RefreshTTLMinutes) * time.Minute
}

var Cfg = &AppConfig{}

// Init populates Cfg from defaults, an optional config file and FOODGRAM_*
// environment variables, then configures the global zerolog logger.
func Init() error {
	v := viper.New()

	v.SetDefault("port", 8000)
	v.SetDefault("log_level", "info")
	v.SetDefault("human_readable_output", false)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.username", "foodgram")
	v.SetDefault("database.password", "foodgram")
	v.SetDefault("database.database", "foodgram")
	v.SetDefault("database.sslmode", "disable")

	v.SetDefault("media.store", "filesystem")
	v.SetDefault("media.root", "media")
	v.SetDefault("media.s3.timeout", "30s")

	v.SetDefault("auth.secret", "change-me-secret")
	v.SetDefault("auth.access_ttl_minutes", 1440)
	v.SetDefault("auth.refresh_ttl_minutes", 10080)

	v.SetEnvPrefix("FOODGRAM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config file: %w", err)
		}
	}

	if err := v.Unmarshal(Cfg); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	initLogger()

	return nil
}

func initLogger() {
	level, err := zerolog.ParseLevel(strings.ToLower(Cfg.LogLevel))
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if Cfg.HumanReadableOutput {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}
