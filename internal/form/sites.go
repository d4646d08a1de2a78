package form

import (
	"context"

	"go.uber.org/zap"

	"github.com/ytget/remote-downloader/internal/model"
)

// LoadSupportedSites fetches the sites list once. A failure is logged and
// leaves an empty list; it never affects the rest of the form.
func (w *Workflow) LoadSupportedSites(ctx context.Context) model.SupportedSites {
	if w.sites == nil {
		return model.SupportedSites{}
	}

	sites, err := w.sites.SupportedSites(ctx)
	if err != nil {
		w.log.Warn("loading supported sites failed", zap.Error(err))
		sites = model.SupportedSites{Sites: []string{}}
	}

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return sites
	}
	w.state.SupportedSites = append([]string{}, sites.Sites...)
	snapshot, version := w.commitLocked()
	w.mu.Unlock()
	w.publish(snapshot, version)

	return sites
}
