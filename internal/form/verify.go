package form

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/ytget/remote-downloader/internal/model"
)

// VerifyNow checks the current URL immediately, cancelling the pending timer.
// The same staleness rule applies as for scheduled checks. A transport failure
// is returned alongside the state that already shows the warning.
func (w *Workflow) VerifyNow(ctx context.Context) (model.InputState, error) {
	w.mu.Lock()
	url := w.state.RawURL
	w.mu.Unlock()

	if !eligible(url) {
		return w.State(), ErrURLTooShort
	}
	w.scheduler.Cancel()
	return w.runVerification(ctx, url)
}

// runVerification issues one check tagged with url and a sequence number.
func (w *Workflow) runVerification(ctx context.Context, url string) (model.InputState, error) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return model.InputState{}, ErrClosed
	}
	if url != w.state.RawURL {
		state := w.state.Clone()
		w.mu.Unlock()
		return state, ErrSuperseded
	}
	w.pending = false
	w.seq++
	seq := w.seq
	w.state.IsChecking = true
	snapshot, version := w.commitLocked()
	w.mu.Unlock()
	w.publish(snapshot, version)

	w.log.Debug("verifying url", zap.String("url", url), zap.Uint64("seq", seq))
	result, err := w.verifier.CheckURL(ctx, strings.TrimSpace(url))
	return w.applyVerification(url, seq, result, err)
}

// applyVerification reconciles an answer with the current input. Answers for a
// URL that is no longer in the field, or older than an answer already applied,
// are dropped without touching the state.
func (w *Workflow) applyVerification(url string, seq uint64, result model.VerificationResult, checkErr error) (model.InputState, error) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return model.InputState{}, ErrClosed
	}
	if url != w.state.RawURL || seq < w.appliedSeq {
		state := w.state.Clone()
		w.mu.Unlock()
		w.log.Debug("discarding stale verification",
			zap.String("url", url),
			zap.Uint64("seq", seq),
			zap.String("current_url", state.RawURL))
		return state, ErrSuperseded
	}

	w.appliedSeq = seq
	w.state.IsChecking = seq != w.seq
	w.state.LastCheckedURL = url

	switch {
	case checkErr != nil:
		w.state.Verification = nil
		w.state.Status = model.Status{Kind: model.StatusVerifyFailed}
	default:
		v := result
		w.state.Verification = &v
		if result.Supported() {
			w.state.Status = model.Status{Kind: model.StatusSupported}
		} else {
			w.state.Status = model.Status{Kind: model.StatusUnsupported}
		}
	}

	snapshot, version := w.commitLocked()
	w.mu.Unlock()
	w.publish(snapshot, version)

	if checkErr != nil {
		w.log.Warn("verification failed", zap.String("url", url), zap.Error(checkErr))
		return snapshot, checkErr
	}
	w.log.Info("url verified",
		zap.String("url", url),
		zap.Bool("supported", result.Supported()),
		zap.String("extractor", result.Extractor()))
	return snapshot, nil
}
