package ui

import (
	"testing"
	"time"

	"fyne.io/fyne/v2/test"

	"github.com/ytget/remote-downloader/internal/config"
)

func newTestSettingsDialog(t *testing.T) (*SettingsDialog, *config.Settings) {
	t.Helper()
	app := test.NewApp()
	window := test.NewWindow(nil)
	t.Cleanup(window.Close)

	settings := config.NewSettings(app)
	sd := NewSettingsDialog(settings, NewLocalization(), window, nil)
	sd.loadCurrentSettings()
	return sd, settings
}

func TestSettingsDialog_LoadsCurrentSettings(t *testing.T) {
	sd, _ := newTestSettingsDialog(t)

	if sd.apiEntry.Text != config.DefaultAPIBaseURL {
		t.Errorf("Expected default API URL, got %q", sd.apiEntry.Text)
	}
	if sd.timeoutEntry.Text != "60" {
		t.Errorf("Expected default timeout 60, got %q", sd.timeoutEntry.Text)
	}
	if sd.qualitySelect.Selected != config.QualityBest.Label() {
		t.Errorf("unexpected quality %q", sd.qualitySelect.Selected)
	}
}

func TestSettingsDialog_Save(t *testing.T) {
	sd, settings := newTestSettingsDialog(t)

	sd.apiEntry.SetText("https://dl.example.com/")
	sd.timeoutEntry.SetText("120")
	sd.qualitySelect.SetSelected(config.Quality1080p.Label())
	sd.languageSelect.SetSelected("Español")

	if err := sd.save(); err != nil {
		t.Fatalf("save() error = %v", err)
	}

	if settings.GetAPIBaseURL() != "https://dl.example.com" {
		t.Errorf("unexpected API URL %s", settings.GetAPIBaseURL())
	}
	if settings.GetRequestTimeout() != 120*time.Second {
		t.Errorf("unexpected timeout %v", settings.GetRequestTimeout())
	}
	if settings.GetQualityPreset() != config.Quality1080p {
		t.Errorf("unexpected preset %s", settings.GetQualityPreset())
	}
	if settings.GetLanguage() != "es" {
		t.Errorf("unexpected language %s", settings.GetLanguage())
	}
}

func TestSettingsDialog_RejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		api     string
		timeout string
	}{
		{"ftp scheme", "ftp://backend", "60"},
		{"no host", "http://", "60"},
		{"timeout not a number", "http://backend:8000", "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sd, settings := newTestSettingsDialog(t)
			sd.apiEntry.SetText(tt.api)
			sd.timeoutEntry.SetText(tt.timeout)

			if err := sd.save(); err == nil {
				t.Fatal("Expected validation error")
			}
			if settings.GetAPIBaseURL() != config.DefaultAPIBaseURL {
				t.Errorf("nothing should be saved, got %s", settings.GetAPIBaseURL())
			}
		})
	}
}
