package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Identity verification modes for POST /jwt.
const (
	AuthModePassword = "password"
	AuthModeCasdoor  = "casdoor"
	// AuthModeOpen signs a token for any email without authentication.
	AuthModeOpen = "open"
)

type Config struct {
	Port        string        `env:"PORT,         default=5000"`
	Env         string        `env:"ENV,          default=development"`
	LogLevel    string        `env:"LOG_LEVEL,    default=info"`
	JWTSecret   string        `env:"ACCESS_TOKEN_SECRET"`
	TokenTTL    time.Duration `env:"TOKEN_TTL,    default=1h"`
	AuthMode    string        `env:"AUTH_MODE,    default=password"`
	DefaultRole string        `env:"DEFAULT_ROLE, default=student"`
	TrackSeats  bool          `env:"TRACK_SEATS,  default=false"`
	CORSOrigins []string      `env:"CORS_ORIGINS, default=*"`

	Mongo   MongoConfig
	Redis   RedisConfig
	Stripe  StripeConfig
	Mailgun MailgunConfig
	Casdoor CasdoorConfig
}

type MongoConfig struct {
	URI          string `env:"MONGO_URI"`
	User         string `env:"DB_USER"`
	Password     string `env:"DB_PASS"`
	Cluster      string `env:"MONGO_CLUSTER,      default=cluster0.zuw1kb6.mongodb.net"`
	Database     string `env:"MONGO_DB,           default=summerCampDB"`
	Transactions bool   `env:"MONGO_TRANSACTIONS, default=true"`
}

type RedisConfig struct {
	// Addr is optional; without it idempotency keys are not honoured.
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

type StripeConfig struct {
	SecretKey string `env:"PAYMENT_SECRET_KEY"`
}

type MailgunConfig struct {
	APIKey string `env:"EMAIL_PRIVATE_KEY"`
	Domain string `env:"EMAIL_DOMAIN"`
	Sender string `env:"EMAIL_SENDER"`
}

type CasdoorConfig struct {
	Endpoint     string `env:"CASDOOR_ENDPOINT"`
	ClientID     string `env:"CASDOOR_CLIENT_ID"`
	ClientSecret string `env:"CASDOOR_CLIENT_SECRET"`
	Certificate  string `env:"CASDOOR_CERTIFICATE"`
	Organization string `env:"CASDOOR_ORGANIZATION"`
	Application  string `env:"CASDOOR_APPLICATION"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith reads configuration through the given lookuper and validates it.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate fails fast on settings that would otherwise only break on first use.
func (c *Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("ACCESS_TOKEN_SECRET is required"))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, errors.New("TOKEN_TTL must be positive"))
	}
	switch c.AuthMode {
	case AuthModePassword, AuthModeOpen:
	case AuthModeCasdoor:
		if c.Casdoor.Endpoint == "" || c.Casdoor.Certificate == "" {
			errs = append(errs, errors.New("AUTH_MODE=casdoor requires CASDOOR_ENDPOINT and CASDOOR_CERTIFICATE"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown AUTH_MODE %q", c.AuthMode))
	}
	if c.Mongo.URI == "" && (c.Mongo.User == "" || c.Mongo.Password == "") {
		errs = append(errs, errors.New("MONGO_URI or DB_USER/DB_PASS is required"))
	}
	if c.Mailgun.APIKey != "" && c.Mailgun.Domain == "" {
		errs = append(errs, errors.New("EMAIL_DOMAIN is required when EMAIL_PRIVATE_KEY is set"))
	}
	return errors.Join(errs...)
}

// IsDevelopment reports whether the service runs in a local environment.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// MongoURI returns MONGO_URI, or the Atlas SRV URI built from the credentials.
func (m MongoConfig) MongoURI() string {
	if m.URI != "" {
		return m.URI
	}
	return fmt.Sprintf("mongodb+srv://%s:%s@%s/?retryWrites=true&w=majority",
		url.QueryEscape(m.User), url.QueryEscape(m.Password), m.Cluster)
}
