package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment variables, e.g. REMOTE_DL_API.
const EnvPrefix = "REMOTE_DL"

// Viper keys, shared with the CLI flag names
const (
	KeyAPI        = "api"
	KeyTimeout    = "timeout"
	KeyDebounce   = "debounce"
	KeyQuality    = "quality"
	KeyLogLevel   = "log-level"
	KeyLogFile    = "log-file"
	KeyConfigFile = "config"
)

// Env is the headless configuration used by the CLI and as desktop fallback.
type Env struct {
	APIBaseURL string
	Timeout    time.Duration
	Debounce   time.Duration
	Quality    QualityPreset
	LogLevel   string
	LogFile    string
}

// NewViper returns a viper instance with defaults and environment binding.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyAPI, DefaultAPIBaseURL)
	v.SetDefault(KeyTimeout, DefaultRequestTimeout)
	v.SetDefault(KeyDebounce, DefaultDebounceDelay)
	v.SetDefault(KeyQuality, string(DefaultQualityPreset))
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFile, "")
	return v
}

// LoadDotEnv loads .env files into the process environment. Missing files are
// not an error; existing variables are never overwritten.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// LoadConfigFile merges a viper-supported config file (yaml, toml, json...).
func LoadConfigFile(v *viper.Viper, file string) error {
	info, err := os.Stat(file)
	if err != nil {
		return fmt.Errorf("config file %s: %w", file, err)
	}
	if info.IsDir() {
		return fmt.Errorf("config file %s is a directory", file)
	}

	v.SetConfigFile(file)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config file %s: %w", file, err)
	}
	return nil
}

// FromViper validates and converts viper values into an Env.
func FromViper(v *viper.Viper) (Env, error) {
	env := Env{
		APIBaseURL: normalizeBaseURL(v.GetString(KeyAPI)),
		Timeout:    v.GetDuration(KeyTimeout),
		Debounce:   v.GetDuration(KeyDebounce),
		LogLevel:   strings.ToLower(strings.TrimSpace(v.GetString(KeyLogLevel))),
		LogFile:    strings.TrimSpace(v.GetString(KeyLogFile)),
	}

	if env.APIBaseURL == "" {
		return Env{}, errors.New("api base URL must not be empty")
	}
	if !strings.HasPrefix(env.APIBaseURL, "http://") && !strings.HasPrefix(env.APIBaseURL, "https://") {
		return Env{}, fmt.Errorf("api base URL %q must start with http:// or https://", env.APIBaseURL)
	}
	if env.Timeout <= 0 {
		env.Timeout = DefaultRequestTimeout
	}
	if env.Debounce <= 0 {
		env.Debounce = DefaultDebounceDelay
	}

	quality, err := ParseQualityPreset(v.GetString(KeyQuality))
	if err != nil {
		return Env{}, err
	}
	env.Quality = quality

	return env, nil
}
