package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/ytget/remote-downloader/internal/model"
)

// syncWriter serializes writes coming from workflow callbacks and the command
// goroutine.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

// printVerification writes the status line and, for supported URLs, the video
// details.
func printVerification(w io.Writer, state model.InputState) {
	if !state.Status.IsZero() {
		fmt.Fprintln(w, state.Status.String())
	}

	v := state.CurrentVerification()
	if v == nil || !v.Supported() {
		return
	}
	fmt.Fprintf(w, "  Title:     %s\n", v.GetDisplayTitle())
	fmt.Fprintf(w, "  Uploader:  %s\n", orUnknown(v.Uploader()))
	fmt.Fprintf(w, "  Duration:  %s\n", v.DurationString())
	fmt.Fprintf(w, "  Site:      %s\n", orUnknown(v.Extractor()))
	if _, ok := v.ViewCount(); ok {
		fmt.Fprintf(w, "  Views:     %s\n", v.ViewsString())
	}
	if !v.UploadDate().IsZero() {
		fmt.Fprintf(w, "  Uploaded:  %s\n", v.UploadDateString())
	}
}

// describe renders one line per state change for watch.
func describe(s model.InputState) string {
	switch {
	case s.IsSubmitting:
		return "submitting " + s.RawURL
	case s.IsChecking:
		return "checking   " + s.RawURL
	case !s.Status.IsZero():
		line := s.Status.String()
		if v := s.CurrentVerification(); v != nil && v.Supported() && s.Status.Kind == model.StatusSupported {
			line += ": " + v.GetDisplayTitle() + " (" + v.DurationString() + ")"
		}
		return line
	default:
		return "input      " + s.RawURL
	}
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return model.UnknownPlaceholder
	}
	return s
}
