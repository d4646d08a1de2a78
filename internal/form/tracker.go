package form

import (
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/ytget/remote-downloader/internal/model"
)

// SetURL records a new value of the URL field. A value different from the last
// checked URL drops the displayed verification and its status, and the debounce
// timer is re-armed for the new value. Short input cancels the timer instead.
func (w *Workflow) SetURL(value string) {
	w.mu.Lock()
	if w.closed || value == w.state.RawURL {
		w.mu.Unlock()
		return
	}

	w.state.RawURL = value
	w.state.IsChecking = false
	if value != w.state.LastCheckedURL {
		w.state.Verification = nil
		if !w.state.IsSubmitting {
			w.state.Status = model.Status{}
		}
	}

	if eligible(value) {
		w.pending = true
		w.scheduler.Trigger(func() {
			w.verifyScheduled(value)
		})
	} else {
		w.pending = false
		w.scheduler.Cancel()
	}

	snapshot, version := w.commitLocked()
	w.mu.Unlock()

	w.publish(snapshot, version)
}

// URL returns the current raw value
func (w *Workflow) URL() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state.RawURL
}

// Idle reports whether nothing is scheduled or in flight: no pending timer, no
// verification and no download request.
func (w *Workflow) Idle() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return !w.pending && !w.state.IsChecking && !w.state.IsSubmitting
}

// eligible reports whether input is long enough to be sent for verification.
func eligible(value string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(value)) >= MinURLLength
}

func (w *Workflow) verifyScheduled(url string) {
	if _, err := w.runVerification(w.ctx, url); err != nil {
		w.log.Debug("scheduled verification skipped", zap.String("url", url), zap.Error(err))
	}
}
