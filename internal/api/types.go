package api

import (
	"bytes"
	"encoding/json"

	"github.com/ytget/remote-downloader/internal/model"
)

// Endpoint paths, relative to the base URL
const (
	PathSupportedSites = "/api/supported-sites/"
	PathCheckURL       = "/api/check-url/"
	PathDownload       = "/api/download/"
)

// HeaderRequestID tags every request so backend logs can be correlated.
const HeaderRequestID = "X-Request-ID"

// CheckURLRequest is the body of POST /api/check-url/
type CheckURLRequest struct {
	URL string `json:"url"`
}

// DownloadRequest is the body of POST /api/download/
type DownloadRequest struct {
	URL     string `json:"url"`
	Quality string `json:"quality"`
}

// SupportedSitesResponse is the body of GET /api/supported-sites/
type SupportedSitesResponse struct {
	SupportedSites []string `json:"supported_sites"`
	TotalSupported string   `json:"total_supported,omitempty"`
	Note           string   `json:"note,omitempty"`
	Error          string   `json:"error,omitempty"`
}

// VideoInfo is the metadata object shared by check-url and download answers.
type VideoInfo struct {
	Title      string   `json:"title,omitempty"`
	Uploader   string   `json:"uploader,omitempty"`
	Duration   *float64 `json:"duration,omitempty"`
	Extractor  string   `json:"extractor,omitempty"`
	Thumbnail  string   `json:"thumbnail,omitempty"`
	ViewCount  *int64   `json:"view_count,omitempty"`
	UploadDate string   `json:"upload_date,omitempty"`
}

// CheckURLResponse is the body of POST /api/check-url/
type CheckURLResponse struct {
	Supported bool   `json:"supported"`
	Error     string `json:"error,omitempty"`
	VideoInfo
}

// DownloadResponse is the body of POST /api/download/
type DownloadResponse struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message,omitempty"`
	Warning   string          `json:"warning,omitempty"`
	Error     string          `json:"error,omitempty"`
	Title     string          `json:"title,omitempty"`
	Quality   string          `json:"quality,omitempty"`
	Format    string          `json:"format,omitempty"`
	VideoInfo json.RawMessage `json:"video_info,omitempty"`
}

func (info VideoInfo) params(supported bool) model.VerificationParams {
	return model.VerificationParams{
		Supported:  supported,
		Title:      info.Title,
		Uploader:   info.Uploader,
		Duration:   info.Duration,
		Extractor:  info.Extractor,
		Thumbnail:  info.Thumbnail,
		ViewCount:  info.ViewCount,
		UploadDate: info.UploadDate,
	}
}

// Result converts the answer into an immutable verification result.
func (r CheckURLResponse) Result() model.VerificationResult {
	return model.NewVerificationResult(r.VideoInfo.params(r.Supported))
}

// Verification decodes video_info into a supported result. It returns false when
// the field is absent, null or not an object.
func (r DownloadResponse) Verification() (model.VerificationResult, bool) {
	raw := bytes.TrimSpace(r.VideoInfo)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) || raw[0] != '{' {
		return model.VerificationResult{}, false
	}

	var info VideoInfo
	if err := json.Unmarshal(raw, &info); err != nil {
		return model.VerificationResult{}, false
	}
	if info.Title == "" && r.Title != "" {
		info.Title = r.Title
	}
	return model.NewVerificationResult(info.params(true)), true
}
