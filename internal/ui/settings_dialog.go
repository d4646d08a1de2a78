package ui

import (
	"errors"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/remote-downloader/internal/config"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	// UI components
	apiEntry       *widget.Entry
	timeoutEntry   *widget.Entry
	qualitySelect  *widget.Select
	languageSelect *widget.Select

	languageCodes map[string]string // display name -> code
}

// ShowSettingsDialog opens the settings dialog; onSaved runs after a successful save
func ShowSettingsDialog(window fyne.Window, settings *config.Settings, localization *Localization, onSaved func()) {
	NewSettingsDialog(settings, localization, window, onSaved).Show()
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, localization *Localization, window fyne.Window, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings:      settings,
		localization:  localization,
		window:        window,
		onSaved:       onSaved,
		languageCodes: make(map[string]string),
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

func (sd *SettingsDialog) createUI() {
	loc := sd.localization

	sd.apiEntry = widget.NewEntry()
	sd.apiEntry.SetPlaceHolder(config.DefaultAPIBaseURL)
	sd.apiEntry.Validator = validateAPIURL

	sd.timeoutEntry = widget.NewEntry()
	sd.timeoutEntry.SetPlaceHolder(strconv.Itoa(config.MinRequestTimeoutSec) + "-" + strconv.Itoa(config.MaxRequestTimeoutSec))

	sd.qualitySelect = widget.NewSelect(qualityLabels(), nil)

	var languageNames []string
	for code, name := range sd.settings.GetLanguageOptions() {
		sd.languageCodes[name] = code
		languageNames = append(languageNames, name)
	}
	sort.Strings(languageNames)
	sd.languageSelect = widget.NewSelect(languageNames, nil)

	form := container.NewVBox(
		widget.NewLabel(loc.GetText(KeyAPIBaseURL)+":"),
		sd.apiEntry,

		widget.NewLabel(loc.GetText(KeyRequestTimeout)+":"),
		sd.timeoutEntry,

		widget.NewLabel(loc.GetText(KeyQuality)+":"),
		sd.qualitySelect,

		widget.NewSeparator(),

		widget.NewLabel(loc.GetText(KeyLanguage)+":"),
		sd.languageSelect,
	)

	sd.dialog = dialog.NewCustomConfirm(
		loc.GetText(KeySettings),
		loc.GetText(KeySave),
		loc.GetText(KeyCancel),
		form,
		sd.onConfirm,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(480, 380))
}

func (sd *SettingsDialog) loadCurrentSettings() {
	sd.apiEntry.SetText(sd.settings.GetAPIBaseURL())
	sd.timeoutEntry.SetText(strconv.Itoa(int(sd.settings.GetRequestTimeout().Seconds())))
	sd.qualitySelect.SetSelected(sd.settings.GetQualityPreset().Label())
	sd.languageSelect.SetSelected(sd.settings.GetLanguageOptions()[sd.settings.GetLanguage()])
}

func (sd *SettingsDialog) onConfirm(confirmed bool) {
	if !confirmed {
		return
	}
	if err := sd.save(); err != nil {
		dialog.ShowError(err, sd.window)
		return
	}

	dialog.ShowInformation(sd.localization.GetText(KeySettings), sd.localization.GetText(KeySettingsSaved), sd.window)
	if sd.onSaved != nil {
		sd.onSaved()
	}
}

// save validates every field before writing any of them.
func (sd *SettingsDialog) save() error {
	apiURL := strings.TrimSpace(sd.apiEntry.Text)
	if apiURL != "" && validateAPIURL(apiURL) != nil {
		return errors.New(sd.localization.GetText(KeyInvalidAPIURL))
	}

	var timeout int
	if text := strings.TrimSpace(sd.timeoutEntry.Text); text != "" {
		v, err := strconv.Atoi(text)
		if err != nil {
			return errors.New(sd.localization.GetText(KeyInvalidTimeout))
		}
		timeout = v
	}

	if apiURL != "" {
		sd.settings.SetAPIBaseURL(apiURL)
	}
	if timeout != 0 {
		sd.settings.SetRequestTimeout(timeout)
	}
	if preset, ok := presetForLabel(sd.qualitySelect.Selected); ok {
		sd.settings.SetQualityPreset(preset)
	}
	if code, ok := sd.languageCodes[sd.languageSelect.Selected]; ok {
		sd.settings.SetLanguage(code)
	}
	return nil
}

// validateAPIURL accepts absolute http(s) URLs with a host
func validateAPIURL(input string) error {
	if strings.TrimSpace(input) == "" {
		return nil
	}

	parsed, err := url.Parse(strings.TrimSpace(input))
	if err != nil {
		return err
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return errors.New("URL must start with http:// or https://")
	}
	if parsed.Host == "" {
		return errors.New("URL must include a host")
	}
	return nil
}

// qualityLabels returns the select options in preset order
func qualityLabels() []string {
	presets := config.QualityPresets()
	labels := make([]string, 0, len(presets))
	for _, p := range presets {
		labels = append(labels, p.Label())
	}
	return labels
}

func presetForLabel(label string) (config.QualityPreset, bool) {
	for _, p := range config.QualityPresets() {
		if p.Label() == label {
			return p, true
		}
	}
	return "", false
}
