package model

// InputState is a snapshot of the form. Verification is only meaningful while
// LastCheckedURL equals RawURL; CurrentVerification enforces that.
type InputState struct {
	RawURL         string
	IsChecking     bool
	IsSubmitting   bool
	LastCheckedURL string
	Verification   *VerificationResult
	Status         Status
	SupportedSites []string
}

// IsStale reports whether the stored verification belongs to another URL.
func (s InputState) IsStale() bool {
	return s.Verification == nil || s.LastCheckedURL != s.RawURL
}

// CurrentVerification returns the verification for RawURL, or nil when there is
// none or it is stale.
func (s InputState) CurrentVerification() *VerificationResult {
	if s.IsStale() {
		return nil
	}
	return s.Verification
}

// CanSubmit implements download gating: a fresh, supported verification and no
// submission already in flight.
func (s InputState) CanSubmit() bool {
	v := s.CurrentVerification()
	return v != nil && v.Supported() && !s.IsSubmitting && s.RawURL != ""
}

// Clone returns a copy that shares no mutable memory with s.
func (s InputState) Clone() InputState {
	out := s
	if s.Verification != nil {
		v := *s.Verification
		out.Verification = &v
	}
	if s.SupportedSites != nil {
		out.SupportedSites = append([]string(nil), s.SupportedSites...)
	}
	return out
}
