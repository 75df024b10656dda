package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/RogelioAlcantarRangel/Cabina-de-Fotograf-a/internal/retry"
	"github.com/RogelioAlcantarRangel/Cabina-de-Fotograf-a/pkg/flashbooth"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// Environment variables overriding booth settings.
const (
	EnvPhotoCount       = "FLASHBOOTH_PHOTO_COUNT"
	EnvCountdownSeconds = "FLASHBOOTH_COUNTDOWN_SECONDS"
	EnvJPEGQuality      = "FLASHBOOTH_JPEG_QUALITY"
)

type BoothConfig struct {
	PhotoCount       int     `yaml:"photo_count"`
	CountdownSeconds int     `yaml:"countdown_seconds"`
	JPEGQuality      float64 `yaml:"jpeg_quality"`
}

// RetryConfig describes the retry policy. Durations are Go duration strings.
// When InitialDelay is set the delay table is generated from it instead of
// being read from Delays.
type RetryConfig struct {
	MaxAttempts  int      `yaml:"max_attempts"`
	Delays       []string `yaml:"delays,omitempty"`
	Timeout      string   `yaml:"timeout"`
	InitialDelay string   `yaml:"initial_delay,omitempty"`
	Multiplier   float64  `yaml:"multiplier,omitempty"`
	MaxDelay     string   `yaml:"max_delay,omitempty"`
}

type ModelsConfig struct {
	Caption string `yaml:"caption"`
	Vibe    string `yaml:"vibe"`
	Image   string `yaml:"image"`
}

type APIConfig struct {
	BaseURL        string `yaml:"base_url"`
	RequestTimeout string `yaml:"request_timeout,omitempty"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type SessionConfig struct {
	RedisURL string `yaml:"redis_url,omitempty"`
	TTL      string `yaml:"ttl"`
}

type Config struct {
	Booth   BoothConfig   `yaml:"booth"`
	Retry   RetryConfig   `yaml:"retry"`
	Models  ModelsConfig  `yaml:"models"`
	API     APIConfig     `yaml:"api"`
	Server  ServerConfig  `yaml:"server"`
	Session SessionConfig `yaml:"session"`
}

const ConfigFileName = "flashbooth.yaml"

// Defaults returns the configuration used when no file is present.
func Defaults() *Config {
	delays := make([]string, len(flashbooth.DefaultRetryDelays))
	for i, d := range flashbooth.DefaultRetryDelays {
		delays[i] = d.String()
	}

	return &Config{
		Booth: BoothConfig{
			PhotoCount:       flashbooth.DefaultPhotoCount,
			CountdownSeconds: flashbooth.DefaultCountdownSeconds,
			JPEGQuality:      flashbooth.DefaultJPEGQuality,
		},
		Retry: RetryConfig{
			MaxAttempts: flashbooth.DefaultRetryMaxAttempts,
			Delays:      delays,
			Timeout:     flashbooth.DefaultRetryTimeout.String(),
		},
		Models: ModelsConfig{
			Caption: flashbooth.DefaultCaptionModel,
			Vibe:    flashbooth.DefaultVibeModel,
			Image:   flashbooth.DefaultImageModel,
		},
		API: APIConfig{
			BaseURL: flashbooth.DefaultAPIBaseURL,
		},
		Server: ServerConfig{
			Addr: flashbooth.DefaultServerAddr,
		},
		Session: SessionConfig{
			TTL: flashbooth.DefaultSessionTTL.String(),
		},
	}
}

// Load reads ConfigFileName from dir. Fields absent from the file keep their
// default values.
func Load(dir string) (*Config, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", flashbooth.ErrInvalidConfig, configPath, err)
	}
	return cfg, nil
}

// Write stores cfg as ConfigFileName in dir, refusing to replace an existing
// file unless overwrite is set.
func Write(dir string, cfg *Config, overwrite bool) (string, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	if !overwrite {
		if _, err := os.Stat(configPath); err == nil {
			return "", fmt.Errorf("%s already exists", configPath)
		}
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return "", err
	}
	return configPath, nil
}

// ApplyEnv overrides booth settings from the environment. lookup is usually
// os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	var errs []error

	if v, ok := lookup(EnvPhotoCount); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %s=%q is not an integer", flashbooth.ErrInvalidConfig, EnvPhotoCount, v))
		} else {
			c.Booth.PhotoCount = n
		}
	}
	if v, ok := lookup(EnvCountdownSeconds); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %s=%q is not an integer", flashbooth.ErrInvalidConfig, EnvCountdownSeconds, v))
		} else {
			c.Booth.CountdownSeconds = n
		}
	}
	if v, ok := lookup(EnvJPEGQuality); ok {
		q, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %s=%q is not a number", flashbooth.ErrInvalidConfig, EnvJPEGQuality, v))
		} else {
			c.Booth.JPEGQuality = q
		}
	}

	return errors.Join(errs...)
}

// Validate checks booth limits, the retry policy, and every duration field.
func (c *Config) Validate() error {
	var errs []error

	if c.Booth.PhotoCount < flashbooth.MinPhotoCount || c.Booth.PhotoCount > flashbooth.MaxPhotoCount {
		errs = append(errs, fmt.Errorf("%w: booth.photo_count must be between %d and %d, got %d",
			flashbooth.ErrInvalidConfig, flashbooth.MinPhotoCount, flashbooth.MaxPhotoCount, c.Booth.PhotoCount))
	}
	if c.Booth.CountdownSeconds < flashbooth.MinCountdownSeconds || c.Booth.CountdownSeconds > flashbooth.MaxCountdownSeconds {
		errs = append(errs, fmt.Errorf("%w: booth.countdown_seconds must be between %d and %d, got %d",
			flashbooth.ErrInvalidConfig, flashbooth.MinCountdownSeconds, flashbooth.MaxCountdownSeconds, c.Booth.CountdownSeconds))
	}
	if c.Booth.JPEGQuality < flashbooth.MinJPEGQuality || c.Booth.JPEGQuality > flashbooth.MaxJPEGQuality {
		errs = append(errs, fmt.Errorf("%w: booth.jpeg_quality must be between %.1f and %.1f, got %g",
			flashbooth.ErrInvalidConfig, flashbooth.MinJPEGQuality, flashbooth.MaxJPEGQuality, c.Booth.JPEGQuality))
	}

	if _, err := c.RetryPolicy(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.RequestTimeout(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.SessionTTL(); err != nil {
		errs = append(errs, err)
	}
	if c.API.BaseURL == "" {
		errs = append(errs, fmt.Errorf("%w: api.base_url is required", flashbooth.ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// RetryPolicy converts the retry section into a validated retry.Policy.
func (c *Config) RetryPolicy() (retry.Policy, error) {
	timeout, err := parseDuration("retry.timeout", c.Retry.Timeout)
	if err != nil {
		return retry.Policy{}, err
	}

	var delays []time.Duration
	if c.Retry.InitialDelay != "" {
		initial, err := parseDuration("retry.initial_delay", c.Retry.InitialDelay)
		if err != nil {
			return retry.Policy{}, err
		}
		var maxDelay time.Duration
		if c.Retry.MaxDelay != "" {
			if maxDelay, err = parseDuration("retry.max_delay", c.Retry.MaxDelay); err != nil {
				return retry.Policy{}, err
			}
		}
		multiplier := c.Retry.Multiplier
		if multiplier == 0 {
			multiplier = 2
		}
		delays = retry.ExponentialDelays(initial, multiplier, c.Retry.MaxAttempts-1, maxDelay)
	} else {
		for i, s := range c.Retry.Delays {
			d, err := parseDuration(fmt.Sprintf("retry.delays[%d]", i), s)
			if err != nil {
				return retry.Policy{}, err
			}
			delays = append(delays, d)
		}
	}

	return retry.NewPolicy(c.Retry.MaxAttempts, timeout, delays...)
}

// RequestTimeout returns the HTTP client timeout, or 0 when unset.
func (c *Config) RequestTimeout() (time.Duration, error) {
	if c.API.RequestTimeout == "" {
		return 0, nil
	}
	return parseDuration("api.request_timeout", c.API.RequestTimeout)
}

// SessionTTL returns the session lifetime, defaulting to 24h when unset.
func (c *Config) SessionTTL() (time.Duration, error) {
	if c.Session.TTL == "" {
		return flashbooth.DefaultSessionTTL, nil
	}
	ttl, err := parseDuration("session.ttl", c.Session.TTL)
	if err != nil {
		return 0, err
	}
	if ttl <= 0 {
		return 0, fmt.Errorf("%w: session.ttl must be positive, got %s", flashbooth.ErrInvalidConfig, ttl)
	}
	return ttl, nil
}

func parseDuration(field, value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", flashbooth.ErrInvalidConfig, field, err)
	}
	return d, nil
}
