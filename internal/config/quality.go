package config

import (
	"fmt"
	"strings"
)

// QualityPreset names one entry of the closed set of format selectors the
// backend accepts.
type QualityPreset string

const (
	QualityBest  QualityPreset = "best"
	QualityWorst QualityPreset = "worst"
	Quality2160p QualityPreset = "2160p"
	Quality1440p QualityPreset = "1440p"
	Quality1080p QualityPreset = "1080p"
	Quality720p  QualityPreset = "720p"
	Quality480p  QualityPreset = "480p"
	Quality360p  QualityPreset = "360p"
)

// qualityHeights maps the height-capped presets to their limit.
var qualityHeights = map[QualityPreset]int{
	Quality2160p: 2160,
	Quality1440p: 1440,
	Quality1080p: 1080,
	Quality720p:  720,
	Quality480p:  480,
	Quality360p:  360,
}

var qualityLabels = map[QualityPreset]string{
	QualityBest:  "Best available quality (MP4)",
	QualityWorst: "Lowest quality (MP4, small file)",
	Quality2160p: "2160p (4K UHD, MP4)",
	Quality1440p: "1440p (2K QHD, MP4)",
	Quality1080p: "1080p (Full HD, MP4)",
	Quality720p:  "720p (HD, MP4)",
	Quality480p:  "480p (MP4)",
	Quality360p:  "360p (MP4)",
}

// QualityPresets returns the presets in display order.
func QualityPresets() []QualityPreset {
	return []QualityPreset{
		QualityBest, QualityWorst,
		Quality2160p, Quality1440p, Quality1080p, Quality720p, Quality480p, Quality360p,
	}
}

// ParseQualityPreset accepts a preset name or a raw selector from the set.
func ParseQualityPreset(value string) (QualityPreset, error) {
	v := strings.TrimSpace(value)
	for _, p := range QualityPresets() {
		if strings.EqualFold(v, string(p)) || v == p.Selector() {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown quality preset %q", value)
}

// Valid reports whether p belongs to the closed set.
func (p QualityPreset) Valid() bool {
	_, ok := qualityLabels[p]
	return ok
}

// Selector returns the format selector sent to the backend.
func (p QualityPreset) Selector() string {
	if h, ok := qualityHeights[p]; ok {
		return fmt.Sprintf("bestvideo[height<=%d]+bestaudio/best[height<=%d]", h, h)
	}
	return string(p)
}

// Label returns the English description used in select lists.
func (p QualityPreset) Label() string {
	if l, ok := qualityLabels[p]; ok {
		return l
	}
	return string(p)
}

func (p QualityPreset) String() string {
	return string(p)
}
