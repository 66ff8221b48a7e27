package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// App holds every setting read from the environment
type App struct {
	DB DBConfig

	SecretKey           string `envconfig:"SECRET_KEY" required:"true"`
	SessionTTLHours     int64  `envconfig:"SESSION_TTL_HOURS" default:"24"`
	SessionCookieSecure bool   `envconfig:"SESSION_COOKIE_SECURE" default:"false"`

	ServerPort  string `envconfig:"SERVER_PORT" default:"5000"`
	FrontendURL string `envconfig:"REACT_APP_URL" default:"http://localhost:5173"`

	Mail MailConfig

	// Registering with this email creates an admin instead of a manager
	InitialAdminEmail string `envconfig:"INITIAL_ADMIN_EMAIL"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogPretty bool   `envconfig:"LOG_PRETTY" default:"false"`
}

// MailConfig holds SMTP settings for outbound email
type MailConfig struct {
	Server        string `envconfig:"MAIL_SERVER" default:"smtp.gmail.com"`
	Port          int    `envconfig:"MAIL_PORT" default:"587"`
	Username      string `envconfig:"MAIL_USERNAME"`
	Password      string `envconfig:"MAIL_PASSWORD"`
	DefaultSender string `envconfig:"MAIL_DEFAULT_SENDER"`
	TargetEmail   string `envconfig:"TARGET_EMAIL"`
}

// Load reads the optional env files (".env" when none are given) and then the
// process environment. The returned bool reports whether the files were found.
func Load(envFiles ...string) (*App, bool, error) {
	dotenvFound := godotenv.Load(envFiles...) == nil

	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, dotenvFound, fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.SecretKey == "" {
		return nil, dotenvFound, fmt.Errorf("SECRET_KEY must not be empty")
	}
	if cfg.Mail.DefaultSender == "" {
		cfg.Mail.DefaultSender = cfg.Mail.Username
	}
	return &cfg, dotenvFound, nil
}
