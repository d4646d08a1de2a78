package ui

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/gin-gonic/gin"

	"github.com/ytget/remote-downloader/internal/api"
	"github.com/ytget/remote-downloader/internal/apitest"
	"github.com/ytget/remote-downloader/internal/config"
	"github.com/ytget/remote-downloader/internal/download"
	"github.com/ytget/remote-downloader/internal/form"
	"github.com/ytget/remote-downloader/internal/model"
)

const videoURL = "https://youtu.be/dQw4w9WgXcQ"

type testUI struct {
	*RootUI
	srv      *apitest.Server
	settings *config.Settings
}

// newTestUI builds a window against a fake backend. The sites list is loaded
// before it returns.
func newTestUI(t *testing.T, debounce time.Duration, prepare func(*apitest.Server)) testUI {
	t.Helper()

	app := test.NewApp()
	window := test.NewWindow(nil)
	t.Cleanup(window.Close)

	srv := apitest.NewServer(t)
	if prepare != nil {
		prepare(srv)
	}

	settings := config.NewSettings(app)
	settings.SetLanguage("en")
	settings.SetAPIBaseURL(srv.URL)

	client := api.NewClient(settings.GetAPIBaseURL(), api.WithTimeout(5*time.Second))
	svc := download.NewService(client)
	wf := form.New(client, svc, form.WithDebounce(debounce), form.WithSitesSource(client))

	ui := NewRootUI(window, settings, client, wf, svc)
	t.Cleanup(ui.Close)
	ui.sitesLoads.Wait()

	return testUI{RootUI: ui, srv: srv, settings: settings}
}

func supportedResult(title string) *model.VerificationResult {
	duration := 125.0
	views := int64(1234567)
	v := model.NewVerificationResult(model.VerificationParams{
		Supported:  true,
		Title:      title,
		Uploader:   "Chan",
		Duration:   &duration,
		Extractor:  "youtube",
		ViewCount:  &views,
		UploadDate: "20091025",
	})
	return &v
}

func TestNewRootUI_InitialState(t *testing.T) {
	ui := newTestUI(t, time.Hour, nil)

	if !ui.downloadBtn.Disabled() {
		t.Error("Download button should start disabled")
	}
	if ui.videoCard.Visible() {
		t.Error("Video card should start hidden")
	}
	if ui.statusLabel.Visible() {
		t.Error("Status should start hidden")
	}
	if ui.siteIcon.Text != IconGlobe {
		t.Errorf("Expected globe icon, got %s", ui.siteIcon.Text)
	}
	if ui.window.Title() != "Universal Video Downloader" {
		t.Errorf("unexpected window title %q", ui.window.Title())
	}
	if ui.qualitySelect.Selected != config.QualityBest.Label() {
		t.Errorf("Expected default quality selected, got %q", ui.qualitySelect.Selected)
	}
}

func TestApplyState_SupportedVideo(t *testing.T) {
	ui := newTestUI(t, time.Hour, nil)

	ui.applyState(model.InputState{
		RawURL:         videoURL,
		LastCheckedURL: videoURL,
		Verification:   supportedResult("Test"),
		Status:         model.Status{Kind: model.StatusSupported},
	})

	if ui.downloadBtn.Disabled() {
		t.Error("Download button should be enabled for a supported URL")
	}
	if !ui.videoCard.Visible() {
		t.Fatal("Video card should be visible")
	}
	if ui.titleLabel.Text != "Test" {
		t.Errorf("Expected title Test, got %q", ui.titleLabel.Text)
	}
	if !strings.Contains(ui.durationLabel.Text, "2:05") {
		t.Errorf("Expected duration 2:05, got %q", ui.durationLabel.Text)
	}
	if !strings.Contains(ui.viewsLabel.Text, "1,234,567") {
		t.Errorf("Expected formatted views, got %q", ui.viewsLabel.Text)
	}
	if !strings.Contains(ui.uploadedLabel.Text, "2009-10-25") {
		t.Errorf("Expected upload date, got %q", ui.uploadedLabel.Text)
	}
	if !strings.Contains(ui.statusLabel.Text, "URL supported - video found") {
		t.Errorf("unexpected status %q", ui.statusLabel.Text)
	}
	if ui.statusLabel.Importance != widget.SuccessImportance {
		t.Errorf("Expected success importance, got %v", ui.statusLabel.Importance)
	}
	if ui.siteIcon.Text != "🎬" {
		t.Errorf("Expected YouTube icon, got %s", ui.siteIcon.Text)
	}
}

func TestApplyState_StaleVerificationIsHidden(t *testing.T) {
	ui := newTestUI(t, time.Hour, nil)

	ui.applyState(model.InputState{
		RawURL:         videoURL + "&t=1",
		LastCheckedURL: videoURL,
		Verification:   supportedResult("Test"),
	})

	if !ui.downloadBtn.Disabled() {
		t.Error("Download button must be disabled for a stale verification")
	}
	if ui.videoCard.Visible() {
		t.Error("Video card must be hidden for a stale verification")
	}
}

func TestApplyState_Busy(t *testing.T) {
	ui := newTestUI(t, time.Hour, nil)

	ui.applyState(model.InputState{RawURL: videoURL, IsChecking: true})
	if !ui.spinner.Visible() {
		t.Error("Spinner should be visible while checking")
	}
	if ui.siteIcon.Text != IconChecking {
		t.Errorf("Expected checking icon, got %s", ui.siteIcon.Text)
	}

	ui.applyState(model.InputState{
		RawURL:         videoURL,
		LastCheckedURL: videoURL,
		Verification:   supportedResult("Test"),
		IsSubmitting:   true,
		Status:         model.Status{Kind: model.StatusSubmitting},
	})
	if !ui.urlEntry.Disabled() {
		t.Error("URL entry should be disabled while submitting")
	}
	if !ui.downloadBtn.Disabled() {
		t.Error("Download button should be disabled while submitting")
	}

	ui.applyState(model.InputState{RawURL: videoURL})
	if ui.spinner.Visible() || ui.urlEntry.Disabled() {
		t.Error("Expected idle widgets")
	}
}

func TestApplyState_StatusKinds(t *testing.T) {
	tests := []struct {
		status     model.Status
		text       string
		importance widget.Importance
	}{
		{model.Status{Kind: model.StatusUnsupported}, "URL not supported", widget.DangerImportance},
		{model.Status{Kind: model.StatusVerifyFailed}, "Could not verify the URL", widget.WarningImportance},
		{model.Status{Kind: model.StatusDownloadWarning, Text: "Already downloaded"}, "Already downloaded", widget.WarningImportance},
		{model.Status{Kind: model.StatusDownloadFailed, Text: "boom"}, "Error: boom", widget.DangerImportance},
		{model.Status{Kind: model.StatusDownloadOK, Text: "Done"}, "Done", widget.SuccessImportance},
		{model.Status{Kind: model.StatusSubmitting}, "Sending download request...", widget.MediumImportance},
	}

	ui := newTestUI(t, time.Hour, nil)
	for _, tt := range tests {
		t.Run(tt.status.Kind.String(), func(t *testing.T) {
			ui.applyState(model.InputState{RawURL: videoURL, Status: tt.status})

			if !strings.HasSuffix(ui.statusLabel.Text, tt.text) {
				t.Errorf("Expected status ending with %q, got %q", tt.text, ui.statusLabel.Text)
			}
			if ui.statusLabel.Importance != tt.importance {
				t.Errorf("Expected importance %v, got %v", tt.importance, ui.statusLabel.Importance)
			}
		})
	}
}

func TestTypingURLVerifiesOnce(t *testing.T) {
	ui := newTestUI(t, 50*time.Millisecond, func(srv *apitest.Server) {
		srv.SetCheckReply(videoURL, http.StatusOK, apitest.SupportedVideo("Test", "Chan", 125, "youtube"))
	})

	test.Type(ui.urlEntry, videoURL)

	deadline := time.Now().Add(3 * time.Second)
	for !ui.workflow.State().CanSubmit() {
		if time.Now().After(deadline) {
			t.Fatalf("URL never verified, state %+v", ui.workflow.State())
		}
		time.Sleep(10 * time.Millisecond)
	}

	if calls := ui.srv.CheckCalls(); len(calls) != 1 || calls[0] != videoURL {
		t.Errorf("Expected one check for the full URL, got %v", calls)
	}
}

func TestSubmitAndHistory(t *testing.T) {
	ui := newTestUI(t, time.Hour, func(srv *apitest.Server) {
		srv.SetCheckReply(videoURL, http.StatusOK, apitest.SupportedVideo("Test", "Chan", 125, "youtube"))
	})

	ui.workflow.SetURL(videoURL)
	if _, err := ui.workflow.VerifyNow(context.Background()); err != nil {
		t.Fatal(err)
	}
	ui.applyState(ui.workflow.State())

	ui.submit(config.Quality720p)

	calls := ui.srv.DownloadCalls()
	if len(calls) != 1 || calls[0].Quality != config.Quality720p.Selector() {
		t.Fatalf("unexpected download calls %v", calls)
	}

	ui.refreshHistory()
	if ui.historyList.Length() != 1 {
		t.Fatalf("Expected one history row, got %d", ui.historyList.Length())
	}
	if ui.noHistoryLabel.Visible() {
		t.Error("Empty-history label should be hidden")
	}
	if ui.clearBtn.Disabled() {
		t.Error("Clear button should be enabled with a finished task")
	}

	ui.onClearHistory()
	if ui.historyList.Length() != 0 {
		t.Errorf("Expected empty history, got %d", ui.historyList.Length())
	}
}

func TestSupportedSitesRendering(t *testing.T) {
	ui := newTestUI(t, time.Hour, func(srv *apitest.Server) {
		srv.SetSitesReply(http.StatusOK, gin.H{
			"supported_sites": []string{"YouTube", "Vimeo"},
			"total_supported": "1000+",
		})
	})

	if ui.sitesLabel.Text != "YouTube · Vimeo (1000+)" {
		t.Errorf("unexpected sites text %q", ui.sitesLabel.Text)
	}
}

func TestSupportedSitesFailure(t *testing.T) {
	ui := newTestUI(t, time.Hour, func(srv *apitest.Server) {
		srv.SetSitesReply(http.StatusInternalServerError, gin.H{"error": "down"})
	})

	if ui.sitesLabel.Text != ui.localization.GetText(KeySitesUnavailable) {
		t.Errorf("unexpected sites text %q", ui.sitesLabel.Text)
	}
	if ui.statusLabel.Visible() {
		t.Error("sites failure must not show a status")
	}
}

func TestLanguageChange(t *testing.T) {
	ui := newTestUI(t, time.Hour, nil)

	ui.onLanguageChange("es")

	if ui.downloadBtn.Text != "Descargar" {
		t.Errorf("Expected Spanish button text, got %q", ui.downloadBtn.Text)
	}
	if ui.settings.GetLanguage() != "es" {
		t.Errorf("Expected language saved, got %s", ui.settings.GetLanguage())
	}
	if ui.window.Title() != "Descargador Universal de Videos" {
		t.Errorf("unexpected title %q", ui.window.Title())
	}
}

func TestSettingsSavedReconfiguresClient(t *testing.T) {
	ui := newTestUI(t, time.Hour, nil)
	other := apitest.NewServer(t)

	ui.settings.SetAPIBaseURL(other.URL)
	ui.settings.SetRequestTimeout(30)
	ui.onSettingsSaved()
	ui.sitesLoads.Wait()

	if ui.client.BaseURL() != other.URL {
		t.Errorf("Expected client on %s, got %s", other.URL, ui.client.BaseURL())
	}
	if other.SitesCalls() != 1 {
		t.Errorf("Expected sites reloaded from the new backend, got %d calls", other.SitesCalls())
	}
}

func TestHistoryMeta(t *testing.T) {
	start := time.Now().Add(-2 * time.Hour)
	task := model.DownloadTask{
		Quality:     "720p",
		SubmittedAt: start,
		FinishedAt:  start.Add(12 * time.Second),
	}

	if got := historyMeta(task); got != "720p · 2 hours ago · 00:12" {
		t.Errorf("unexpected meta %q", got)
	}
	if got := historyMeta(model.DownloadTask{Quality: "best"}); got != "best" {
		t.Errorf("unexpected meta %q", got)
	}
}
