package model

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/dustin/go-humanize"
)

// UnknownPlaceholder is shown for metadata the backend did not provide.
const UnknownPlaceholder = "Unknown"

// VerificationParams carries the raw fields of a check-url answer.
type VerificationParams struct {
	Supported  bool
	Title      string
	Uploader   string
	Duration   *float64 // seconds, nil when unknown
	Extractor  string
	Thumbnail  string
	ViewCount  *int64
	UploadDate string // YYYYMMDD as reported by the extractor
}

// VerificationResult is the backend's verdict on a URL. It is immutable: fields
// are only reachable through getters and the constructor copies everything.
type VerificationResult struct {
	supported       bool
	title           string
	uploader        string
	durationSeconds int
	hasDuration     bool
	extractor       string
	thumbnail       string
	viewCount       int64
	hasViewCount    bool
	uploadDate      time.Time
}

// NewVerificationResult builds a result from the decoded response fields.
// An unparseable upload date is dropped rather than rejected.
func NewVerificationResult(p VerificationParams) VerificationResult {
	r := VerificationResult{
		supported: p.Supported,
		title:     strings.TrimSpace(p.Title),
		uploader:  strings.TrimSpace(p.Uploader),
		extractor: strings.TrimSpace(p.Extractor),
		thumbnail: strings.TrimSpace(p.Thumbnail),
	}
	if p.Duration != nil && *p.Duration >= 0 && !math.IsNaN(*p.Duration) {
		r.durationSeconds = int(math.Round(*p.Duration))
		r.hasDuration = true
	}
	if p.ViewCount != nil && *p.ViewCount >= 0 {
		r.viewCount = *p.ViewCount
		r.hasViewCount = true
	}
	if d := strings.TrimSpace(p.UploadDate); d != "" {
		if t, err := dateparse.ParseIn(d, time.UTC); err == nil {
			r.uploadDate = t
		}
	}
	return r
}

func (r VerificationResult) Supported() bool   { return r.supported }
func (r VerificationResult) Title() string     { return r.title }
func (r VerificationResult) Uploader() string  { return r.uploader }
func (r VerificationResult) Extractor() string { return r.extractor }
func (r VerificationResult) Thumbnail() string { return r.thumbnail }

// DurationSeconds returns the duration and whether the backend reported one.
func (r VerificationResult) DurationSeconds() (int, bool) {
	return r.durationSeconds, r.hasDuration
}

// ViewCount returns the view count and whether the backend reported one.
func (r VerificationResult) ViewCount() (int64, bool) {
	return r.viewCount, r.hasViewCount
}

// UploadDate returns the upload date, zero when unknown.
func (r VerificationResult) UploadDate() time.Time {
	return r.uploadDate
}

// Equal compares two results field by field.
func (r VerificationResult) Equal(o VerificationResult) bool {
	return r.supported == o.supported &&
		r.title == o.title &&
		r.uploader == o.uploader &&
		r.durationSeconds == o.durationSeconds &&
		r.hasDuration == o.hasDuration &&
		r.extractor == o.extractor &&
		r.thumbnail == o.thumbnail &&
		r.viewCount == o.viewCount &&
		r.hasViewCount == o.hasViewCount &&
		r.uploadDate.Equal(o.uploadDate)
}

// DurationString returns m:ss or h:mm:ss, or UnknownPlaceholder.
func (r VerificationResult) DurationString() string {
	if !r.hasDuration || r.durationSeconds <= 0 {
		return UnknownPlaceholder
	}

	hours := r.durationSeconds / 3600
	minutes := (r.durationSeconds % 3600) / 60
	seconds := r.durationSeconds % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

// ViewsString renders the view count with thousands separators.
func (r VerificationResult) ViewsString() string {
	if !r.hasViewCount {
		return UnknownPlaceholder
	}
	return humanize.Comma(r.viewCount)
}

// UploadDateString renders the upload date as YYYY-MM-DD.
func (r VerificationResult) UploadDateString() string {
	if r.uploadDate.IsZero() {
		return UnknownPlaceholder
	}
	return r.uploadDate.Format("2006-01-02")
}

// GetDisplayTitle returns the title, or the placeholder when empty.
func (r VerificationResult) GetDisplayTitle() string {
	if r.title == "" {
		return UnknownPlaceholder
	}
	return r.title
}

// SupportedSites is the list shown under the form.
type SupportedSites struct {
	Sites []string
	Total string
	Note  string
}
