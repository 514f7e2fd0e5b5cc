package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/aliskhannn/deutsch-quiz/pkg/validator"
)

var ErrMissingEnvironmentVariables = errors.New("missing required environment variables")

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env     string  `mapstructure:"env" validate:"oneof=local development production"` // current application environment
	HTTP    HTTP    `mapstructure:"http"`                                             // HTTP server section
	Content Content `mapstructure:"content"`                                          // static learning content
	DB      DB      `mapstructure:"database"`                                         // database configuration section
	Session Session `mapstructure:"session"`                                          // session cookie and store
	Redis   Redis   `mapstructure:"redis"`                                            // optional session backend
}

// HTTP contains web server parameters.
type HTTP struct {
	Addr           string        `mapstructure:"addr" validate:"required"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout" validate:"min=0"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout" validate:"min=0"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"` // CORS is enabled only when set
}

// Content points to the JSON documents served by the application.
type Content struct {
	VocabularyPath string `mapstructure:"vocabulary_path" validate:"required"`
	GrammarPath    string `mapstructure:"grammar_path" validate:"required"`
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                                          // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections" validate:"min=1,max=1000"` // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime" validate:"min=0"`        // maximum lifetime of a single connection
}

// Session configures the signed session cookie.
type Session struct {
	Secret       string        `mapstructure:"-"` // signing key loaded from environment
	CookieName   string        `mapstructure:"cookie_name" validate:"required"`
	TTL          time.Duration `mapstructure:"ttl" validate:"min=1m"`
	SecureCookie bool          `mapstructure:"secure_cookie"`
}

// Redis configures the Redis session store. Sessions are kept in memory when Addr is empty.
type Redis struct {
	Addr     string `mapstructure:"-"`
	Password string `mapstructure:"-"`
	DB       int    `mapstructure:"db" validate:"min=0"`
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// Load reads configuration from config files and environment variables.
func Load() (*Config, error) {
	// A missing .env file is fine, the environment may already be populated.
	_ = godotenv.Load()

	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	// Set default values for configuration keys.
	v.SetDefault("env", "local")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.read_timeout", "10s")
	v.SetDefault("http.write_timeout", "10s")
	v.SetDefault("http.allowed_origins", []string{})
	v.SetDefault("content.vocabulary_path", "assets/data/vocabulary.json")
	v.SetDefault("content.grammar_path", "assets/data/grammar.json")
	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30s")
	v.SetDefault("session.cookie_name", "session")
	v.SetDefault("session.ttl", "168h")
	v.SetDefault("session.secure_cookie", false)
	v.SetDefault("redis.db", 0)

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("session_secret", "SESSION_SECRET")
	_ = v.BindEnv("redis_addr", "REDIS_ADDR")
	_ = v.BindEnv("redis_password", "REDIS_PASSWORD")
	_ = v.BindEnv("env", "APP_ENV")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.DB.URL = v.GetString("database_url")
	if cfg.DB.URL == "" {
		return nil, ErrMissingEnvironmentVariables
	}

	cfg.Session.Secret = v.GetString("session_secret")
	if cfg.Session.Secret == "" {
		return nil, ErrMissingEnvironmentVariables
	}

	cfg.Redis.Addr = v.GetString("redis_addr")
	cfg.Redis.Password = v.GetString("redis_password")

	if err := validator.ValidateStruct(cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
