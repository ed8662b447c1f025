package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"

	"gardencam/internal/adapters/raspistill"
)

// AuthMode selects how the session token is obtained.
type AuthMode string

const (
	AuthLogin AuthMode = "login" // email + password exchanged at startup
	AuthToken AuthMode = "token" // static access token
)

const (
	DefaultAuthURL  = "https://auth.api.zesty.io"
	DefaultMediaURL = "https://svc.zesty.io/media-storage-service"
	DefaultInterval = 60 * time.Second
	DefaultTimeout  = 2 * time.Minute
)

// AuthConfig holds the credentials for one of the two auth modes.
type AuthConfig struct {
	Mode        AuthMode
	AccessToken string
	Email       string
	Password    string
}

// ZestyConfig identifies the remote instance and the targets inside it.
type ZestyConfig struct {
	InstanceZUID string
	BinZUID      string
	ModelZUID    string
	UserZUID     string

	AuthURL     string
	MediaURL    string
	InstanceURL string
}

// CaptureConfig controls the capture binary and the loop period.
type CaptureConfig struct {
	Interval time.Duration
	Command  string
	Args     []string
	Dir      string
}

// Config aggregates all application configuration.
type Config struct {
	Auth        AuthConfig
	Zesty       ZestyConfig
	Capture     CaptureConfig
	HTTPTimeout time.Duration
	LogLevel    string
}

// Load reads envFile (if it exists) into the process environment and builds
// the configuration. Variables already set in the environment win.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds and validates the configuration from a lookup function.
// Every problem found is reported in the returned error.
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key string) string { return strings.TrimSpace(getenv(key)) }
	var errs *multierror.Error

	cfg := &Config{
		Zesty: ZestyConfig{
			InstanceZUID: get("ZESTY_INSTANCE_ZUID"),
			BinZUID:      get("ZESTY_BIN_ZUID"),
			ModelZUID:    get("ZESTY_MODEL_ZUID"),
			UserZUID:     get("ZESTY_USER_ZUID"),
			AuthURL:      withDefault(get("ZESTY_AUTH_URL"), DefaultAuthURL),
			MediaURL:     withDefault(get("ZESTY_MEDIA_URL"), DefaultMediaURL),
			InstanceURL:  get("ZESTY_INSTANCE_URL"),
		},
		Capture: CaptureConfig{
			Command: withDefault(get("CAPTURE_COMMAND"), raspistill.DefaultCommand),
			Args:    raspistill.DefaultArgs,
			Dir:     withDefault(get("CAPTURE_DIR"), "."),
		},
		LogLevel: withDefault(get("LOG_LEVEL"), "info"),
	}

	required := []struct{ key, val string }{
		{"ZESTY_INSTANCE_ZUID", cfg.Zesty.InstanceZUID},
		{"ZESTY_BIN_ZUID", cfg.Zesty.BinZUID},
		{"ZESTY_MODEL_ZUID", cfg.Zesty.ModelZUID},
		{"ZESTY_USER_ZUID", cfg.Zesty.UserZUID},
	}
	for _, r := range required {
		if r.val == "" {
			errs = multierror.Append(errs, fmt.Errorf("%s is required", r.key))
		}
	}
	if cfg.Zesty.InstanceURL == "" && cfg.Zesty.InstanceZUID != "" {
		cfg.Zesty.InstanceURL = fmt.Sprintf("https://%s.api.zesty.io/v1", cfg.Zesty.InstanceZUID)
	}

	if args := get("CAPTURE_ARGS"); args != "" {
		cfg.Capture.Args = strings.Fields(args)
	}

	auth, err := authFromEnv(get)
	if err != nil {
		errs = multierror.Append(errs, err)
	}
	cfg.Auth = auth

	if cfg.Capture.Interval, err = durationEnv(get, "CAPTURE_INTERVAL", DefaultInterval); err != nil {
		errs = multierror.Append(errs, err)
	}
	if cfg.HTTPTimeout, err = durationEnv(get, "HTTP_TIMEOUT", DefaultTimeout); err != nil {
		errs = multierror.Append(errs, err)
	}

	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SetInterval overrides the capture interval.
func (c *Config) SetInterval(d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("interval must be > 0, got %s", d)
	}
	c.Capture.Interval = d
	return nil
}

func authFromEnv(get func(string) string) (AuthConfig, error) {
	a := AuthConfig{
		AccessToken: get("ZESTY_ACCESS_TOKEN"),
		Email:       get("ZESTY_USER_EMAIL"),
		Password:    get("ZESTY_USER_PASSWORD"),
	}
	switch {
	case a.Email != "" && a.Password != "":
		a.Mode = AuthLogin
	case a.AccessToken != "":
		a.Mode = AuthToken
	case a.Email != "" || a.Password != "":
		return a, fmt.Errorf("ZESTY_USER_EMAIL and ZESTY_USER_PASSWORD must be set together")
	default:
		return a, fmt.Errorf("either ZESTY_ACCESS_TOKEN or ZESTY_USER_EMAIL/ZESTY_USER_PASSWORD is required")
	}
	return a, nil
}

func durationEnv(get func(string) string, key string, def time.Duration) (time.Duration, error) {
	raw := get(key)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return def, fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return def, fmt.Errorf("%s must be > 0, got %s", key, raw)
	}
	return d, nil
}

func withDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
