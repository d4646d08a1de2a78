package config

import (
	"strings"
	"time"

	"fyne.io/fyne/v2"
)

// Settings keys for Fyne preferences
const (
	KeyAPIBaseURL     = "api_base_url"
	KeyQualityPreset  = "quality_preset"
	KeyLanguage       = "app_language"
	KeyRequestTimeout = "request_timeout_sec"
)

// Default values
const (
	DefaultAPIBaseURL     = "http://localhost:8000"
	DefaultQualityPreset  = QualityBest
	DefaultLanguage       = "system"
	DefaultRequestTimeout = 60 * time.Second
	DefaultDebounceDelay  = 1000 * time.Millisecond
)

// Timeout bounds accepted from the settings dialog, in seconds
const (
	MinRequestTimeoutSec = 5
	MaxRequestTimeoutSec = 600
)

// Settings manages desktop application configuration
type Settings struct {
	app         fyne.App
	fallbackURL string
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app, fallbackURL: DefaultAPIBaseURL}
}

// SetFallbackAPIBaseURL sets the URL used when no preference is stored, e.g. one
// loaded from the environment.
func (s *Settings) SetFallbackAPIBaseURL(url string) {
	if url = normalizeBaseURL(url); url != "" {
		s.fallbackURL = url
	}
}

// GetAPIBaseURL returns the backend base URL
func (s *Settings) GetAPIBaseURL() string {
	url := normalizeBaseURL(s.app.Preferences().String(KeyAPIBaseURL))
	if url == "" {
		return s.fallbackURL
	}
	return url
}

// SetAPIBaseURL sets the backend base URL
func (s *Settings) SetAPIBaseURL(url string) {
	s.app.Preferences().SetString(KeyAPIBaseURL, normalizeBaseURL(url))
}

// GetQualityPreset returns the configured quality preset
func (s *Settings) GetQualityPreset() QualityPreset {
	preset := QualityPreset(s.app.Preferences().String(KeyQualityPreset))
	if !preset.Valid() {
		s.SetQualityPreset(DefaultQualityPreset)
		return DefaultQualityPreset
	}
	return preset
}

// SetQualityPreset sets the quality preset; values outside the set are ignored
func (s *Settings) SetQualityPreset(preset QualityPreset) {
	if !preset.Valid() {
		return
	}
	s.app.Preferences().SetString(KeyQualityPreset, string(preset))
}

// GetRequestTimeout returns the per-request HTTP timeout
func (s *Settings) GetRequestTimeout() time.Duration {
	value := s.app.Preferences().Int(KeyRequestTimeout)
	if value <= 0 {
		return DefaultRequestTimeout
	}
	return time.Duration(value) * time.Second
}

// SetRequestTimeout sets the per-request HTTP timeout in seconds
func (s *Settings) SetRequestTimeout(seconds int) {
	if seconds < MinRequestTimeoutSec {
		seconds = MinRequestTimeoutSec
	}
	if seconds > MaxRequestTimeoutSec {
		seconds = MaxRequestTimeoutSec
	}
	s.app.Preferences().SetInt(KeyRequestTimeout, seconds)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetQualityPresetOptions returns available quality preset options
func (s *Settings) GetQualityPresetOptions() []QualityPreset {
	return QualityPresets()
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"es":     "Español",
		"ru":     "Русский",
	}
}

func normalizeBaseURL(url string) string {
	return strings.TrimRight(strings.TrimSpace(url), "/")
}
