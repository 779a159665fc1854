// Package config loads museumwalk settings from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds runtime settings. CLI flags override loaded values.
type Config struct {
	// SPARQL endpoints
	GettyEndpoint    string `env:"MUSEUMWALK_GETTY_ENDPOINT" validate:"required,url"`
	WikidataEndpoint string `env:"MUSEUMWALK_WIKIDATA_ENDPOINT" validate:"required,url"`
	WikidataLanguage string `env:"MUSEUMWALK_WIKIDATA_LANGUAGE" validate:"required,min=2,max=8"`

	HTTPTimeout time.Duration `env:"MUSEUMWALK_HTTP_TIMEOUT" validate:"gt=0"`
	UserAgent   string        `env:"MUSEUMWALK_USER_AGENT" validate:"required"`

	// Workers bounds concurrent documents in a batch
	Workers int `env:"MUSEUMWALK_WORKERS" validate:"min=1,max=256"`

	// OverridesDir overlays the embedded override tables
	OverridesDir string `env:"MUSEUMWALK_OVERRIDES_DIR" validate:"omitempty,dir"`

	// Offline disables the Getty and Wikidata strategies
	Offline bool `env:"MUSEUMWALK_OFFLINE"`

	// LogLevel is normalised on load; an unknown level means INFO.
	LogLevel string `env:"LOG_LEVEL" validate:"oneof=DEBUG INFO WARN WARNING ERROR"`
}

// ParseLogLevel maps a LOG_LEVEL value to a slog level. Unknown or empty
// values mean INFO.
func ParseLogLevel(s string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Level returns the configured slog level.
func (c Config) Level() slog.Level {
	return ParseLogLevel(c.LogLevel)
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		GettyEndpoint:    "https://vocab.getty.edu/sparql",
		WikidataEndpoint: "https://query.wikidata.org/sparql",
		WikidataLanguage: "fr",
		HTTPTimeout:      30 * time.Second,
		UserAgent:        "museumwalk/1.0 (+https://github.com/lehigh-university-libraries/museumwalk)",
		Workers:          8,
		LogLevel:         "INFO",
	}
}

// Load reads the optional .env files, then the environment, over the
// defaults and validates the result. Variables set in the environment win
// over the files.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}

	vars := make(map[string]string)
	for _, f := range envFiles {
		fileVars, err := godotenv.Read(f)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return Config{}, fmt.Errorf("loading %s: %w", f, err)
		}
		for k, v := range fileVars {
			if _, seen := vars[k]; !seen {
				vars[k] = v
			}
		}
	}
	env := environment(vars)

	cfg := Default()
	env.str("MUSEUMWALK_GETTY_ENDPOINT", &cfg.GettyEndpoint)
	env.str("MUSEUMWALK_WIKIDATA_ENDPOINT", &cfg.WikidataEndpoint)
	env.str("MUSEUMWALK_WIKIDATA_LANGUAGE", &cfg.WikidataLanguage)
	env.str("MUSEUMWALK_USER_AGENT", &cfg.UserAgent)
	env.str("MUSEUMWALK_OVERRIDES_DIR", &cfg.OverridesDir)
	env.str("LOG_LEVEL", &cfg.LogLevel)
	cfg.LogLevel = strings.ToUpper(cfg.LogLevel)
	switch cfg.LogLevel {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		cfg.LogLevel = "INFO"
	}

	if v, ok := env.get("MUSEUMWALK_HTTP_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("MUSEUMWALK_HTTP_TIMEOUT: %w", err)
		}
		cfg.HTTPTimeout = d
	}
	if v, ok := env.get("MUSEUMWALK_WORKERS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("MUSEUMWALK_WORKERS: %w", err)
		}
		cfg.Workers = n
	}
	if v, ok := env.get("MUSEUMWALK_OFFLINE"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("MUSEUMWALK_OFFLINE: %w", err)
		}
		cfg.Offline = b
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks every setting and reports the first failing one.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Errorf("invalid configuration: %s failed rule '%s', got '%v'", envName(fe.StructField()), fe.Tag(), fe.Value())
	}
	return fmt.Errorf("invalid configuration: %w", err)
}

// envName returns the variable a Config field is read from.
func envName(field string) string {
	if f, ok := reflect.TypeOf(Config{}).FieldByName(field); ok {
		if tag := f.Tag.Get("env"); tag != "" {
			return tag
		}
	}
	return field
}

// environment holds variables read from .env files. A non-empty process
// variable takes precedence.
type environment map[string]string

func (e environment) get(key string) (string, bool) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v, true
	}
	v := strings.TrimSpace(e[key])
	return v, v != ""
}

func (e environment) str(key string, dst *string) {
	if v, ok := e.get(key); ok {
		*dst = v
	}
}
