package model

import (
	"fmt"
	"strings"
	"time"
)

// DownloadTask records one download request sent to the backend
type DownloadTask struct {
	ID          string
	URL         string
	Quality     string // preset name, e.g. "720p"
	Selector    string // format selector sent to the backend
	Status      TaskStatus
	Message     string // backend message, warning or error text
	Title       string // video title, from the verification or the backend answer
	SubmittedAt time.Time
	FinishedAt  time.Time
}

// GetElapsedString returns the request duration formatted as mm:ss, or "—" while unknown
func (dt *DownloadTask) GetElapsedString() string {
	if dt.SubmittedAt.IsZero() || dt.FinishedAt.IsZero() || dt.FinishedAt.Before(dt.SubmittedAt) {
		return "—"
	}

	total := int(dt.FinishedAt.Sub(dt.SubmittedAt).Seconds())
	minutes := total / 60
	seconds := total % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// GetDisplayTitle returns title or URL in order of preference
func (dt *DownloadTask) GetDisplayTitle() string {
	if dt.Title != "" && !strings.HasPrefix(dt.Title, "http") {
		return dt.Title
	}
	return dt.URL
}
