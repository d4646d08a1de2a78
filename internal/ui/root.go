package ui

import (
	"context"
	"errors"
	"image/color"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/ytget/remote-downloader/internal/api"
	"github.com/ytget/remote-downloader/internal/config"
	"github.com/ytget/remote-downloader/internal/download"
	"github.com/ytget/remote-downloader/internal/form"
	"github.com/ytget/remote-downloader/internal/logger"
	"github.com/ytget/remote-downloader/internal/model"
)

// Video card colors
var (
	videoCardColor  = color.NRGBA{R: 27, G: 45, B: 35, A: 255}
	videoCardBorder = color.NRGBA{R: 16, G: 185, B: 129, A: 255}
)

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	settings     *config.Settings
	localization *Localization
	client       *api.Client
	workflow     *form.Workflow
	downloadSvc  download.Submitter
	log          *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc

	// Form
	heading       *widget.Label
	urlLabel      *widget.Label
	urlEntry      *widget.Entry
	siteIcon      *widget.Label
	spinner       *widget.ProgressBarInfinite
	statusLabel   *widget.Label
	qualityLabel  *widget.Label
	qualitySelect *widget.Select
	downloadBtn   *widget.Button

	// Video card
	videoCard      *fyne.Container
	titleLabel     *widget.Label
	uploaderLabel  *widget.Label
	durationLabel  *widget.Label
	extractorLabel *widget.Label
	viewsLabel     *widget.Label
	uploadedLabel  *widget.Label

	// Supported sites
	sitesHeader *widget.Label
	sitesLabel  *widget.Label
	sitesLoaded bool
	sitesTotal  string
	sitesNote   string
	sitesLoads  sync.WaitGroup

	// History
	historyHeader  *widget.Label
	historyList    *widget.List
	noHistoryLabel *widget.Label
	clearBtn       *widget.Button
	tasks          []model.DownloadTask

	// Last state rendered; only touched on the UI goroutine
	state model.InputState
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, settings *config.Settings, client *api.Client, workflow *form.Workflow, downloadSvc download.Submitter) *RootUI {
	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		window:       window,
		settings:     settings,
		localization: localization,
		client:       client,
		workflow:     workflow,
		downloadSvc:  downloadSvc,
		log:          logger.Named("ui"),
	}
	ui.ctx, ui.cancel = context.WithCancel(context.Background())

	window.SetTitle(localization.GetText(KeyAppTitle))

	ui.setupUI()

	ui.workflow.SetUpdateCallback(ui.onStateUpdate)
	ui.downloadSvc.SetUpdateCallback(ui.onTaskUpdate)

	ui.startSitesLoad()

	ui.log.Info("ui initialized", zap.String("api", client.BaseURL()), zap.String("language", localization.GetCurrentLanguage()))
	return ui
}

// Close cancels outstanding requests and stops the workflow timer
func (ui *RootUI) Close() {
	ui.cancel()
	ui.workflow.Close()
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	loc := ui.localization
	ui.createMenu()

	logo := canvas.NewImageFromResource(LogoResource())
	logo.SetMinSize(fyne.NewSize(32, 32))
	logo.FillMode = canvas.ImageFillContain

	ui.heading = widget.NewLabelWithStyle(loc.GetText(KeyAppTitle), fyne.TextAlignLeading, fyne.TextStyle{Bold: true})

	settingsBtn := widget.NewButtonWithIcon("", theme.SettingsIcon(), ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	header := container.NewBorder(nil, nil, container.NewHBox(logo, ui.heading), settingsBtn)

	// URL row
	ui.urlLabel = widget.NewLabelWithStyle(loc.GetText(KeyURLLabel), fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	ui.urlEntry = widget.NewEntry()
	ui.urlEntry.SetPlaceHolder(loc.GetText(KeyEnterURL))
	ui.urlEntry.OnChanged = ui.onURLChanged
	ui.urlEntry.OnSubmitted = ui.onURLSubmitted
	ui.siteIcon = widget.NewLabel(IconGlobe)
	urlRow := container.NewBorder(nil, nil, nil, ui.siteIcon, ui.urlEntry)

	ui.spinner = widget.NewProgressBarInfinite()
	ui.spinner.Stop()
	ui.spinner.Hide()

	ui.statusLabel = widget.NewLabel("")
	ui.statusLabel.Wrapping = fyne.TextWrapWord
	ui.statusLabel.Hide()

	ui.createVideoCard()

	// Quality and submit
	ui.qualityLabel = widget.NewLabelWithStyle(loc.GetText(KeyQuality), fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	ui.qualitySelect = widget.NewSelect(qualityLabels(), ui.onQualityChanged)
	ui.qualitySelect.SetSelected(ui.settings.GetQualityPreset().Label())

	ui.downloadBtn = widget.NewButtonWithIcon(loc.GetText(KeyDownload), theme.DownloadIcon(), ui.onDownloadClick)
	ui.downloadBtn.Importance = widget.HighImportance
	ui.downloadBtn.Disable()

	// Supported sites
	ui.sitesHeader = widget.NewLabelWithStyle(loc.GetText(KeySupportedSites), fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	ui.sitesLabel = widget.NewLabel(loc.GetText(KeyLoadingSites))
	ui.sitesLabel.Wrapping = fyne.TextWrapWord

	// History
	ui.historyHeader = widget.NewLabelWithStyle(loc.GetText(KeyHistory), fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	ui.clearBtn = widget.NewButtonWithIcon(loc.GetText(KeyClearHistory), theme.DeleteIcon(), ui.onClearHistory)
	ui.clearBtn.Importance = widget.LowImportance
	ui.clearBtn.Disable()
	ui.noHistoryLabel = widget.NewLabel(loc.GetText(KeyNoHistory))
	ui.historyList = widget.NewList(
		func() int { return len(ui.tasks) },
		ui.createHistoryItem,
		ui.updateHistoryItem,
	)

	top := container.NewVBox(
		header,
		widget.NewSeparator(),
		ui.urlLabel,
		urlRow,
		ui.spinner,
		ui.statusLabel,
		ui.videoCard,
		ui.qualityLabel,
		ui.qualitySelect,
		ui.downloadBtn,
		widget.NewSeparator(),
		ui.sitesHeader,
		ui.sitesLabel,
		widget.NewSeparator(),
		container.NewBorder(nil, nil, ui.historyHeader, ui.clearBtn),
	)

	content := container.NewBorder(
		top, // top
		nil, // bottom
		nil, // left
		nil, // right
		container.NewStack(ui.historyList, container.NewCenter(ui.noHistoryLabel)),
	)

	ui.window.SetContent(content)
}

func (ui *RootUI) createVideoCard() {
	ui.titleLabel = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	ui.titleLabel.Wrapping = fyne.TextWrapWord
	ui.uploaderLabel = widget.NewLabel("")
	ui.durationLabel = widget.NewLabel("")
	ui.extractorLabel = widget.NewLabel("")
	ui.viewsLabel = widget.NewLabel("")
	ui.uploadedLabel = widget.NewLabel("")

	bg := canvas.NewRectangle(videoCardColor)
	bg.CornerRadius = 12
	bg.StrokeColor = videoCardBorder
	bg.StrokeWidth = 1

	body := container.NewVBox(
		container.NewBorder(nil, nil, widget.NewLabel(IconSupported), nil, ui.titleLabel),
		container.NewHBox(ui.uploaderLabel, ui.durationLabel, ui.extractorLabel),
		container.NewHBox(ui.viewsLabel, ui.uploadedLabel),
	)
	ui.videoCard = container.NewStack(bg, container.NewPadded(body))
	ui.videoCard.Hide()
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)
	clearItem := fyne.NewMenuItem(ui.localization.GetText(KeyClearHistory), ui.onClearHistory)

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})
		langItem.Checked = ui.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem, clearItem),
		languageMenu,
	))
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)

	ui.refreshUITexts()
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	loc := ui.localization

	ui.window.SetTitle(loc.GetText(KeyAppTitle))
	ui.heading.SetText(loc.GetText(KeyAppTitle))
	ui.urlLabel.SetText(loc.GetText(KeyURLLabel))
	ui.urlEntry.SetPlaceHolder(loc.GetText(KeyEnterURL))
	ui.qualityLabel.SetText(loc.GetText(KeyQuality))
	ui.downloadBtn.SetText(loc.GetText(KeyDownload))
	ui.sitesHeader.SetText(loc.GetText(KeySupportedSites))
	ui.historyHeader.SetText(loc.GetText(KeyHistory))
	ui.clearBtn.SetText(loc.GetText(KeyClearHistory))
	ui.noHistoryLabel.SetText(loc.GetText(KeyNoHistory))

	ui.applyState(ui.state)
	ui.historyList.Refresh()
}

// onURLChanged forwards every edit to the workflow
func (ui *RootUI) onURLChanged(text string) {
	ui.workflow.SetURL(text)
}

// onURLSubmitted downloads when the URL is verified, otherwise verifies it now
func (ui *RootUI) onURLSubmitted(string) {
	if ui.state.CanSubmit() {
		ui.onDownloadClick()
		return
	}

	go func() {
		if _, err := ui.workflow.VerifyNow(ui.ctx); err != nil && !errors.Is(err, form.ErrURLTooShort) {
			ui.log.Debug("verify on enter", zap.Error(err))
		}
	}()
}

// onDownloadClick handles the download button click
func (ui *RootUI) onDownloadClick() {
	if !ui.state.CanSubmit() {
		return
	}
	preset := ui.selectedQuality()
	go ui.submit(preset)
}

func (ui *RootUI) submit(preset config.QualityPreset) {
	task, err := ui.workflow.Submit(ui.ctx, preset)
	if err != nil {
		if errors.Is(err, form.ErrSubmitDisabled) || errors.Is(err, form.ErrSubmitInFlight) {
			ui.log.Debug("submit rejected", zap.Error(err))
		}
		return
	}

	if task.Status == model.TaskStatusCompleted {
		title := ui.localization.GetText(KeyDownloadCompleted)
		fyne.Do(func() {
			fyne.CurrentApp().SendNotification(&fyne.Notification{
				Title:   title,
				Content: task.GetDisplayTitle(),
			})
		})
	}
}

func (ui *RootUI) selectedQuality() config.QualityPreset {
	if preset, ok := presetForLabel(ui.qualitySelect.Selected); ok {
		return preset
	}
	return ui.settings.GetQualityPreset()
}

func (ui *RootUI) onQualityChanged(label string) {
	if preset, ok := presetForLabel(label); ok {
		ui.settings.SetQualityPreset(preset)
	}
}

// onStateUpdate receives workflow snapshots from any goroutine
func (ui *RootUI) onStateUpdate(state model.InputState) {
	fyne.Do(func() {
		ui.applyState(state)
	})
}

// applyState renders a workflow snapshot. Must run on the UI goroutine.
func (ui *RootUI) applyState(s model.InputState) {
	ui.state = s

	if s.IsChecking || s.IsSubmitting {
		ui.spinner.Show()
		ui.spinner.Start()
	} else {
		ui.spinner.Stop()
		ui.spinner.Hide()
	}

	if s.IsChecking {
		ui.siteIcon.SetText(IconChecking)
	} else {
		ui.siteIcon.SetText(SiteIcon(s.RawURL))
	}

	ui.renderStatus(s.Status)
	ui.renderVideoCard(s.CurrentVerification())

	if s.IsSubmitting {
		ui.urlEntry.Disable()
	} else {
		ui.urlEntry.Enable()
	}

	if s.CanSubmit() {
		ui.downloadBtn.Enable()
	} else {
		ui.downloadBtn.Disable()
	}

	ui.renderSites(s.SupportedSites)
}

func (ui *RootUI) renderStatus(status model.Status) {
	if status.IsZero() {
		ui.statusLabel.SetText("")
		ui.statusLabel.Hide()
		return
	}

	var icon string
	switch {
	case status.Kind == model.StatusSupported || status.Kind == model.StatusDownloadOK:
		ui.statusLabel.Importance = widget.SuccessImportance
		icon = IconSupported
	case status.Kind.IsError():
		ui.statusLabel.Importance = widget.DangerImportance
		icon = IconError
	case status.Kind.IsWarning():
		ui.statusLabel.Importance = widget.WarningImportance
		icon = IconWarning
	default:
		ui.statusLabel.Importance = widget.MediumImportance
		icon = IconChecking
	}

	ui.statusLabel.SetText(icon + " " + ui.localization.StatusText(status))
	ui.statusLabel.Show()
}

// renderVideoCard shows metadata for a fresh, supported verification only.
func (ui *RootUI) renderVideoCard(v *model.VerificationResult) {
	if v == nil || !v.Supported() {
		ui.videoCard.Hide()
		return
	}

	ui.titleLabel.SetText(ui.known(v.GetDisplayTitle()))
	ui.uploaderLabel.SetText(IconUploader + " " + ui.known(orPlaceholder(v.Uploader())))
	ui.durationLabel.SetText(IconDuration + " " + ui.known(v.DurationString()))
	ui.extractorLabel.SetText(IconGlobe + " " + ui.known(orPlaceholder(v.Extractor())))

	if _, ok := v.ViewCount(); ok {
		ui.viewsLabel.SetText(IconViews + " " + v.ViewsString() + " " + ui.localization.GetText(KeyViews))
		ui.viewsLabel.Show()
	} else {
		ui.viewsLabel.Hide()
	}

	if !v.UploadDate().IsZero() {
		ui.uploadedLabel.SetText(IconCalendar + " " + ui.localization.GetText(KeyUploaded) + " " + v.UploadDateString())
		ui.uploadedLabel.Show()
	} else {
		ui.uploadedLabel.Hide()
	}

	ui.videoCard.Show()
	ui.videoCard.Refresh()
}

// known swaps the English placeholder for the localized one
func (ui *RootUI) known(text string) string {
	if text == model.UnknownPlaceholder {
		return ui.localization.GetText(KeyUnknown)
	}
	return text
}

func orPlaceholder(text string) string {
	if strings.TrimSpace(text) == "" {
		return model.UnknownPlaceholder
	}
	return text
}

func (ui *RootUI) renderSites(sites []string) {
	switch {
	case !ui.sitesLoaded:
		ui.sitesLabel.SetText(ui.localization.GetText(KeyLoadingSites))
	case len(sites) == 0:
		ui.sitesLabel.SetText(ui.localization.GetText(KeySitesUnavailable))
	default:
		shown := sites
		if len(shown) > SitesMaxShown {
			shown = shown[:SitesMaxShown]
		}
		text := strings.Join(shown, MiddleDotSeparator)
		if ui.sitesTotal != "" {
			text += " (" + ui.sitesTotal + ")"
		}
		if ui.sitesNote != "" {
			text += "\n" + ui.sitesNote
		}
		ui.sitesLabel.SetText(text)
	}
}

// startSitesLoad fetches the list in the background
func (ui *RootUI) startSitesLoad() {
	ui.sitesLoads.Add(1)
	go ui.loadSupportedSites()
}

func (ui *RootUI) loadSupportedSites() {
	defer ui.sitesLoads.Done()

	sites := ui.workflow.LoadSupportedSites(ui.ctx)
	fyne.Do(func() {
		ui.sitesLoaded = true
		ui.sitesTotal = sites.Total
		ui.sitesNote = sites.Note
		ui.renderSites(sites.Sites)
	})
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	ShowSettingsDialog(ui.window, ui.settings, ui.localization, ui.onSettingsSaved)
}

// onSettingsSaved applies saved settings to the running client and UI
func (ui *RootUI) onSettingsSaved() {
	previous := ui.client.BaseURL()
	ui.client.Reconfigure(ui.settings.GetAPIBaseURL(), ui.settings.GetRequestTimeout())

	ui.localization.SetLanguage(ui.settings.GetLanguage())
	ui.qualitySelect.SetSelected(ui.settings.GetQualityPreset().Label())
	ui.refreshUITexts()
	ui.createMenu()

	if ui.client.BaseURL() == previous {
		return
	}
	ui.log.Info("backend changed", zap.String("from", previous), zap.String("to", ui.client.BaseURL()))

	ui.sitesLoaded = false
	ui.renderSites(nil)
	ui.startSitesLoad()
	go func() {
		if _, err := ui.workflow.VerifyNow(ui.ctx); err != nil && !errors.Is(err, form.ErrURLTooShort) {
			ui.log.Debug("re-verify after backend change", zap.Error(err))
		}
	}()
}

// onTaskUpdate handles task updates from the download service
func (ui *RootUI) onTaskUpdate(task model.DownloadTask) {
	ui.log.Debug("task update", zap.String("task_id", task.ID), zap.String("status", task.Status.String()))
	fyne.Do(ui.refreshHistory)
}

func (ui *RootUI) refreshHistory() {
	ui.tasks = ui.downloadSvc.GetAllTasks()

	if len(ui.tasks) == 0 {
		ui.noHistoryLabel.Show()
	} else {
		ui.noHistoryLabel.Hide()
	}

	finished := false
	for _, t := range ui.tasks {
		if t.Status.IsFinished() {
			finished = true
			break
		}
	}
	if finished {
		ui.clearBtn.Enable()
	} else {
		ui.clearBtn.Disable()
	}

	ui.historyList.Refresh()
}

func (ui *RootUI) onClearHistory() {
	removed := ui.downloadSvc.ClearFinished()
	ui.log.Debug("history cleared", zap.Int("removed", removed))
	ui.refreshHistory()
}

func (ui *RootUI) createHistoryItem() fyne.CanvasObject {
	icon := widget.NewLabel(IconChecking)
	title := widget.NewLabel("")
	title.Truncation = fyne.TextTruncateEllipsis
	meta := widget.NewLabel("")
	meta.Importance = widget.LowImportance
	return container.NewBorder(nil, nil, icon, meta, title)
}

// updateHistoryItem fills a row. Border puts the center object first.
func (ui *RootUI) updateHistoryItem(id widget.ListItemID, item fyne.CanvasObject) {
	if id >= len(ui.tasks) {
		return
	}
	task := ui.tasks[id]

	row, ok := item.(*fyne.Container)
	if !ok || len(row.Objects) < 3 {
		return
	}
	title, _ := row.Objects[0].(*widget.Label)
	icon, _ := row.Objects[1].(*widget.Label)
	meta, _ := row.Objects[2].(*widget.Label)
	if title == nil || icon == nil || meta == nil {
		return
	}

	icon.SetText(taskIcon(task.Status))
	text := task.GetDisplayTitle()
	if task.Message != "" && task.Status != model.TaskStatusCompleted {
		text += MiddleDotSeparator + task.Message
	}
	title.SetText(text)
	meta.SetText(historyMeta(task))
}

func taskIcon(status model.TaskStatus) string {
	switch status {
	case model.TaskStatusCompleted:
		return IconSupported
	case model.TaskStatusWarning:
		return IconWarning
	case model.TaskStatusError:
		return IconError
	default:
		return IconChecking
	}
}

// historyMeta renders "720p · 3 minutes ago · 00:12"
func historyMeta(task model.DownloadTask) string {
	parts := []string{task.Quality}
	if !task.SubmittedAt.IsZero() {
		parts = append(parts, humanize.Time(task.SubmittedAt))
	}
	if elapsed := task.GetElapsedString(); elapsed != DashPlaceholder {
		parts = append(parts, elapsed)
	}
	return strings.Join(parts, MiddleDotSeparator)
}
