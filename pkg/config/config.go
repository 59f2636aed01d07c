package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

var Empty = new(Config)

type Config struct {
	AppEnv       string `envconfig:"APP_ENV" default:"local"`
	Port         int    `envconfig:"PORT" default:"8080"`
	LogLevel     string `envconfig:"LOG_LEVEL" default:"info"`
	SentryDSN    string `envconfig:"SENTRY_DSN"`
	AllowOrigins string `envconfig:"ALLOW_ORIGINS" default:"*"`
	RateLimit    int    `envconfig:"RATE_LIMIT" default:"20"`

	DB struct {
		Driver    string `envconfig:"DB_DRIVER" default:"mongodb"`
		Name      string `envconfig:"DB_NAME"`
		Host      string `envconfig:"DB_HOST"`
		Port      int    `envconfig:"DB_PORT" default:"5432"`
		User      string `envconfig:"DB_USER"`
		Pass      string `envconfig:"DB_PASS"`
		EnableSSL bool   `envconfig:"ENABLE_SSL"`
	}
	Mongo struct {
		URI        string `envconfig:"MONGODB_URI" default:"mongodb://localhost:27017"`
		Database   string `envconfig:"MONGODB_DATABASE" default:"moviedex"`
		Collection string `envconfig:"MONGODB_COLLECTION" default:"testimonials"`
	}
	Redis struct {
		Addr     string `envconfig:"REDIS_ADDR"`
		Password string `envconfig:"REDIS_PASSWORD"`
		DB       int    `envconfig:"REDIS_DB"`
		CacheTTL int    `envconfig:"REDIS_CACHE_TTL" default:"600"`
	}
	TMDB struct {
		APIKey    string  `envconfig:"TMDB_API_KEY"`
		BaseURL   string  `envconfig:"TMDB_BASE_URL" default:"https://api.themoviedb.org/3"`
		RateLimit float64 `envconfig:"TMDB_RATE_LIMIT" default:"40"`
		Language  string  `envconfig:"TMDB_LANGUAGE" default:"en-US"`
	}
	Contact struct {
		Relay        string `envconfig:"CONTACT_RELAY" default:"web3forms"`
		Web3FormsKey string `envconfig:"WEB3FORMS_ACCESS_KEY"`
		Web3FormsURL string `envconfig:"WEB3FORMS_URL" default:"https://api.web3forms.com/submit"`
		ResendAPIKey string `envconfig:"RESEND_API_KEY"`
		ResendFrom   string `envconfig:"RESEND_FROM"`
		ResendTo     string `envconfig:"RESEND_TO"`
	}
}

func LoadConfig() (*Config, error) {
	// load default .env file, ignore the error
	_ = godotenv.Load()

	cfg := new(Config)
	err := envconfig.Process("", cfg)
	if err != nil {
		return nil, fmt.Errorf("load config error: %v", err)
	}

	return cfg, nil
}
