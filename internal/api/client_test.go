package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ytget/remote-downloader/internal/api"
	"github.com/ytget/remote-downloader/internal/apitest"
)

const testURL = "https://youtu.be/dQw4w9WgXcQ"

func TestCheckURL_Supported(t *testing.T) {
	srv := apitest.NewServer(t)
	srv.SetCheckReply(testURL, http.StatusOK, gin.H{
		"supported":   true,
		"title":       "Test",
		"uploader":    "Chan",
		"duration":    125,
		"extractor":   "youtube",
		"view_count":  42,
		"upload_date": "20091025",
	})

	client := api.NewClient(srv.URL)
	result, err := client.CheckURL(context.Background(), testURL)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !result.Supported() {
		t.Fatal("Expected supported result")
	}
	if result.Title() != "Test" || result.Uploader() != "Chan" || result.Extractor() != "youtube" {
		t.Errorf("unexpected metadata: %q %q %q", result.Title(), result.Uploader(), result.Extractor())
	}
	if secs, ok := result.DurationSeconds(); !ok || secs != 125 {
		t.Errorf("Expected duration 125, got %d", secs)
	}

	calls := srv.CheckCalls()
	if len(calls) != 1 || calls[0] != testURL {
		t.Errorf("Expected one check call for %s, got %v", testURL, calls)
	}
	if ids := srv.RequestIDs(); len(ids) != 1 || ids[0] == "" {
		t.Errorf("Expected request to carry an ID, got %v", ids)
	}
}

func TestCheckURL_Unsupported(t *testing.T) {
	srv := apitest.NewServer(t)

	result, err := api.NewClient(srv.URL).CheckURL(context.Background(), "https://example.com/page")
	if err != nil {
		t.Fatalf("Unsupported URL must not be an error, got %v", err)
	}
	if result.Supported() {
		t.Error("Expected unsupported result")
	}
}

func TestCheckURL_Idempotent(t *testing.T) {
	srv := apitest.NewServer(t)
	srv.SetCheckReply(testURL, http.StatusOK, apitest.SupportedVideo("Test", "Chan", 125, "youtube"))
	client := api.NewClient(srv.URL)

	first, err := client.CheckURL(context.Background(), testURL)
	if err != nil {
		t.Fatal(err)
	}
	second, err := client.CheckURL(context.Background(), testURL)
	if err != nil {
		t.Fatal(err)
	}
	if !first.Equal(second) {
		t.Error("Expected equal results for the same URL")
	}
}

func TestCheckURL_Failures(t *testing.T) {
	t.Run("connection refused", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		base := srv.URL
		srv.Close()

		_, err := api.NewClient(base).CheckURL(context.Background(), testURL)
		if !errors.Is(err, api.ErrNetwork) {
			t.Errorf("Expected ErrNetwork, got %v", err)
		}
	})

	t.Run("server error", func(t *testing.T) {
		srv := apitest.NewServer(t)
		srv.SetCheckReply(testURL, http.StatusInternalServerError, gin.H{"error": "boom"})

		_, err := api.NewClient(srv.URL).CheckURL(context.Background(), testURL)
		if !errors.Is(err, api.ErrNetwork) {
			t.Errorf("Expected ErrNetwork, got %v", err)
		}
		var se *api.StatusError
		if !errors.As(err, &se) || se.StatusCode != http.StatusInternalServerError || se.Message != "boom" {
			t.Errorf("Expected StatusError 500 boom, got %v", err)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html>not json</html>"))
		}))
		defer srv.Close()

		_, err := api.NewClient(srv.URL).CheckURL(context.Background(), testURL)
		if !errors.Is(err, api.ErrDecode) {
			t.Errorf("Expected ErrDecode, got %v", err)
		}
	})

	t.Run("timeout", func(t *testing.T) {
		srv := apitest.NewServer(t)
		release := srv.Hold(testURL)
		defer release()

		client := api.NewClient(srv.URL, api.WithTimeout(50*time.Millisecond))
		_, err := client.CheckURL(context.Background(), testURL)
		if !errors.Is(err, api.ErrNetwork) {
			t.Errorf("Expected ErrNetwork on timeout, got %v", err)
		}
	})
}

func TestDownload(t *testing.T) {
	selector := "bestvideo[height<=720]+bestaudio/best[height<=720]"

	t.Run("success with video info", func(t *testing.T) {
		srv := apitest.NewServer(t)
		srv.SetDownloadReply(http.StatusOK, gin.H{
			"success":    true,
			"message":    `Video "Test" downloaded`,
			"video_info": gin.H{"title": "Test", "uploader": "Chan", "duration": 125, "extractor": "youtube"},
		})

		resp, err := api.NewClient(srv.URL).Download(context.Background(), testURL, selector)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if !resp.Success || resp.Message != `Video "Test" downloaded` {
			t.Errorf("unexpected response %+v", resp)
		}
		info, ok := resp.Verification()
		if !ok || info.Title() != "Test" || !info.Supported() {
			t.Errorf("Expected video info to decode, got ok=%v title=%q", ok, info.Title())
		}

		calls := srv.DownloadCalls()
		if len(calls) != 1 || calls[0].URL != testURL || calls[0].Quality != selector {
			t.Errorf("unexpected download calls %+v", calls)
		}
	})

	t.Run("success without video info", func(t *testing.T) {
		srv := apitest.NewServer(t)
		srv.SetDownloadReply(http.StatusOK, gin.H{"success": true, "message": "ok", "video_info": nil})

		resp, err := api.NewClient(srv.URL).Download(context.Background(), testURL, "best")
		if err != nil {
			t.Fatal(err)
		}
		if _, ok := resp.Verification(); ok {
			t.Error("null video_info should not decode")
		}
	})

	t.Run("warning", func(t *testing.T) {
		srv := apitest.NewServer(t)
		srv.SetDownloadReply(http.StatusOK, gin.H{"success": false, "warning": "Already downloaded"})

		resp, err := api.NewClient(srv.URL).Download(context.Background(), testURL, "best")
		if err != nil {
			t.Fatalf("warning must not be an error, got %v", err)
		}
		if resp.Warning != "Already downloaded" {
			t.Errorf("unexpected warning %q", resp.Warning)
		}
	})

	t.Run("backend error", func(t *testing.T) {
		srv := apitest.NewServer(t)
		srv.SetDownloadReply(http.StatusInternalServerError, gin.H{"error": "ERROR: Requested format is not available"})

		_, err := api.NewClient(srv.URL).Download(context.Background(), testURL, "best")
		var de *api.DownloadError
		if !errors.As(err, &de) {
			t.Fatalf("Expected DownloadError, got %v", err)
		}
		if de.Message != "ERROR: Requested format is not available" || de.StatusCode != http.StatusInternalServerError {
			t.Errorf("unexpected download error %+v", de)
		}
	})

	t.Run("success false without details", func(t *testing.T) {
		srv := apitest.NewServer(t)
		srv.SetDownloadReply(http.StatusOK, gin.H{"success": false})

		_, err := api.NewClient(srv.URL).Download(context.Background(), testURL, "best")
		var de *api.DownloadError
		if !errors.As(err, &de) || de.Error() != "download failed" {
			t.Errorf("Expected generic DownloadError, got %v", err)
		}
	})
}

func TestSupportedSites(t *testing.T) {
	srv := apitest.NewServer(t)
	srv.SetSitesReply(http.StatusOK, gin.H{
		"supported_sites": []string{"YouTube", " ", "Vimeo"},
		"total_supported": "1000+",
		"note":            "sample",
	})

	sites, err := api.NewClient(srv.URL + "/").SupportedSites(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(sites.Sites) != 2 || sites.Sites[0] != "YouTube" || sites.Sites[1] != "Vimeo" {
		t.Errorf("unexpected sites %v", sites.Sites)
	}
	if sites.Total != "1000+" || sites.Note != "sample" {
		t.Errorf("unexpected totals %+v", sites)
	}

	srv.SetSitesReply(http.StatusInternalServerError, gin.H{"error": "down"})
	if _, err := api.NewClient(srv.URL).SupportedSites(context.Background()); !errors.Is(err, api.ErrNetwork) {
		t.Errorf("Expected ErrNetwork, got %v", err)
	}
}

func TestReconfigure(t *testing.T) {
	first := apitest.NewServer(t)
	second := apitest.NewServer(t)

	client := api.NewClient(first.URL)
	client.Reconfigure(second.URL+"/", 5*time.Second)

	if client.BaseURL() != second.URL {
		t.Errorf("Expected base URL %s, got %s", second.URL, client.BaseURL())
	}
	if _, err := client.SupportedSites(context.Background()); err != nil {
		t.Fatalf("SupportedSites() error = %v", err)
	}
	if first.SitesCalls() != 0 || second.SitesCalls() != 1 {
		t.Errorf("Expected the request on the new backend, got %d/%d", first.SitesCalls(), second.SitesCalls())
	}
}
