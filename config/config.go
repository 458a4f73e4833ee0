package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

const (
	envAPIKey       = "BITTREX_API_KEY"
	envAPISecret    = "BITTREX_API_SECRET"
	envAPIURL       = "BITTREX_API_URL"
	envHTTPTimeout  = "BITTREX_HTTP_TIMEOUT"
	envPollInterval = "BITTREX_POLL_INTERVAL"
	envPollAttempts = "BITTREX_POLL_ATTEMPTS"

	DefaultBaseURL      = "https://api.bittrex.com/v3"
	DefaultHTTPTimeout  = 30 * time.Second
	DefaultPollInterval = 1 * time.Second
	DefaultPollAttempts = 60
)

var (
	// ErrMissingCredentials API key or secret is not configured.
	ErrMissingCredentials = errors.New(envAPIKey + " and " + envAPISecret + " environment variables must be set")
	// ErrInvalidPlan allocation plan could not be parsed or validated.
	ErrInvalidPlan = errors.New("invalid allocation plan")
)

// Error configuration error tied to a single parameter.
type Error struct {
	Param string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("config %s: %v", e.Param, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Credentials exchange API credentials, loaded once and never mutated.
type Credentials struct {
	APIKey    string
	APISecret string
}

// Validate fails when either part of the credentials is missing.
func (c Credentials) Validate() error {
	if c.APIKey == "" || c.APISecret == "" {
		return &Error{Param: "credentials", Err: ErrMissingCredentials}
	}
	return nil
}

type Config struct {
	Credentials  Credentials
	BaseURL      string
	HTTPTimeout  time.Duration
	PollInterval time.Duration
	PollAttempts int
}

// LoadDotEnv loads variables from the given .env files, skipping files that do not exist.
// Variables already present in the environment are not overridden.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return errors.Wrapf(err, "failed to load %s", p)
		}
	}
	return nil
}

// FromEnv builds the configuration from the process environment.
func FromEnv() (Config, error) {
	conf := Config{
		Credentials: Credentials{
			APIKey:    os.Getenv(envAPIKey),
			APISecret: os.Getenv(envAPISecret),
		},
		BaseURL:      DefaultBaseURL,
		HTTPTimeout:  DefaultHTTPTimeout,
		PollInterval: DefaultPollInterval,
		PollAttempts: DefaultPollAttempts,
	}

	if err := conf.Credentials.Validate(); err != nil {
		return Config{}, err
	}

	if v := os.Getenv(envAPIURL); v != "" {
		conf.BaseURL = v
	}

	var err error
	if conf.HTTPTimeout, err = durationFromEnv(envHTTPTimeout, conf.HTTPTimeout); err != nil {
		return Config{}, err
	}
	if conf.PollInterval, err = durationFromEnv(envPollInterval, conf.PollInterval); err != nil {
		return Config{}, err
	}

	if v := os.Getenv(envPollAttempts); v != "" {
		attempts, err := strconv.Atoi(v)
		if err != nil || attempts < 1 {
			return Config{}, &Error{Param: envPollAttempts, Err: fmt.Errorf("must be a positive integer, got %q", v)}
		}
		conf.PollAttempts = attempts
	}

	return conf, nil
}

func durationFromEnv(name string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(name)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, &Error{Param: name, Err: fmt.Errorf("must be a positive duration, got %q", v)}
	}
	return d, nil
}
