package form

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ytget/remote-downloader/internal/api"
	"github.com/ytget/remote-downloader/internal/config"
	"github.com/ytget/remote-downloader/internal/model"
)

// Submit sends the current URL for download with the given quality. It is
// rejected unless the current URL has a fresh, supported verification. A failed
// download keeps the verification so the user can submit again.
func (w *Workflow) Submit(ctx context.Context, quality config.QualityPreset) (model.DownloadTask, error) {
	if !quality.Valid() {
		return model.DownloadTask{}, fmt.Errorf("unknown quality preset %q", quality)
	}

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return model.DownloadTask{}, ErrClosed
	}
	if w.state.IsSubmitting {
		w.mu.Unlock()
		return model.DownloadTask{}, ErrSubmitInFlight
	}
	if !w.state.CanSubmit() {
		w.mu.Unlock()
		return model.DownloadTask{}, ErrSubmitDisabled
	}

	url := w.state.RawURL
	title := w.state.Verification.Title()
	w.state.IsSubmitting = true
	w.state.Status = model.Status{Kind: model.StatusSubmitting}
	snapshot, version := w.commitLocked()
	w.mu.Unlock()
	w.publish(snapshot, version)

	task, resp, err := w.downloads.Submit(ctx, url, quality, title)

	w.mu.Lock()
	w.state.IsSubmitting = false
	if !w.closed {
		w.state.Status = downloadStatus(resp, err)
		if err == nil && resp.Success && url == w.state.RawURL && url == w.state.LastCheckedURL {
			if info, ok := resp.Verification(); ok {
				w.state.Verification = &info
			}
		}
	}
	snapshot, version = w.commitLocked()
	w.mu.Unlock()
	w.publish(snapshot, version)

	if err != nil {
		w.log.Warn("download request failed", zap.String("url", url), zap.Error(err))
	}
	return task, err
}

// downloadStatus maps a download answer to the status line.
func downloadStatus(resp api.DownloadResponse, err error) model.Status {
	var de *api.DownloadError
	switch {
	case errors.As(err, &de):
		return model.Status{Kind: model.StatusDownloadFailed, Text: de.Message}
	case err != nil:
		return model.Status{Kind: model.StatusDownloadFailed}
	case resp.Success:
		return model.Status{Kind: model.StatusDownloadOK, Text: resp.Message}
	default:
		return model.Status{Kind: model.StatusDownloadWarning, Text: resp.Warning}
	}
}
