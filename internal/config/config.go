package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	ServerAddr    string
	GinMode       string
	LogLevel      string
	DBDriver      string
	DBDSN         string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBLogLevel    string
	SessionStore  string
	SessionSecret string
	RedisHost     string
	RedisPort     string
	OpenAIAPIKey  string
}

// Load reads configuration from the environment, an optional .env file and an
// optional config.yaml in the working directory.
func Load() (*Config, error) {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		ServerAddr:    v.GetString("server.addr"),
		GinMode:       v.GetString("gin.mode"),
		LogLevel:      v.GetString("log.level"),
		DBDriver:      strings.ToLower(v.GetString("db.driver")),
		DBDSN:         v.GetString("db.dsn"),
		DBHost:        v.GetString("db.host"),
		DBPort:        v.GetString("db.port"),
		DBUser:        v.GetString("db.user"),
		DBPassword:    v.GetString("db.password"),
		DBName:        v.GetString("db.name"),
		DBLogLevel:    strings.ToLower(v.GetString("db.log.level")),
		SessionStore:  strings.ToLower(v.GetString("session.store")),
		SessionSecret: v.GetString("session.secret"),
		RedisHost:     v.GetString("redis.host"),
		RedisPort:     v.GetString("redis.port"),
		OpenAIAPIKey:  v.GetString("openai.api.key"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("gin.mode", "debug")
	v.SetDefault("log.level", "info")
	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "")
	v.SetDefault("db.user", "taskuser")
	v.SetDefault("db.password", "taskpassword")
	v.SetDefault("db.name", "task_management")
	v.SetDefault("db.log.level", "warn")
	v.SetDefault("session.store", "cookie")
	v.SetDefault("session.secret", "default-secret-key-change-me")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("openai.api.key", "")
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case "sqlite", "mysql", "postgres":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (want sqlite, mysql or postgres)", c.DBDriver)
	}
	switch c.SessionStore {
	case "cookie", "redis":
	default:
		return fmt.Errorf("unsupported SESSION_STORE %q (want cookie or redis)", c.SessionStore)
	}
	if strings.TrimSpace(c.SessionSecret) == "" {
		return fmt.Errorf("SESSION_SECRET must not be empty")
	}
	return nil
}

// IsProduction reports whether gin runs in release mode.
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

