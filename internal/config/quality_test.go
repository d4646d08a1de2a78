package config

import "testing"

func TestQualityPreset_Selector(t *testing.T) {
	tests := []struct {
		preset   QualityPreset
		expected string
	}{
		{QualityBest, "best"},
		{QualityWorst, "worst"},
		{Quality2160p, "bestvideo[height<=2160]+bestaudio/best[height<=2160]"},
		{Quality1440p, "bestvideo[height<=1440]+bestaudio/best[height<=1440]"},
		{Quality1080p, "bestvideo[height<=1080]+bestaudio/best[height<=1080]"},
		{Quality720p, "bestvideo[height<=720]+bestaudio/best[height<=720]"},
		{Quality480p, "bestvideo[height<=480]+bestaudio/best[height<=480]"},
		{Quality360p, "bestvideo[height<=360]+bestaudio/best[height<=360]"},
	}

	for _, test := range tests {
		if got := test.preset.Selector(); got != test.expected {
			t.Errorf("%s.Selector() = %s, expected %s", test.preset, got, test.expected)
		}
	}
}

func TestParseQualityPreset(t *testing.T) {
	tests := []struct {
		input    string
		expected QualityPreset
		wantErr  bool
	}{
		{"best", QualityBest, false},
		{"720P", Quality720p, false},
		{" 1080p ", Quality1080p, false},
		{"bestvideo[height<=480]+bestaudio/best[height<=480]", Quality480p, false},
		{"8k", "", true},
		{"", "", true},
	}

	for _, test := range tests {
		got, err := ParseQualityPreset(test.input)
		if (err != nil) != test.wantErr {
			t.Errorf("ParseQualityPreset(%q) error = %v, wantErr %v", test.input, err, test.wantErr)
			continue
		}
		if got != test.expected {
			t.Errorf("ParseQualityPreset(%q) = %s, expected %s", test.input, got, test.expected)
		}
	}
}

func TestQualityPresets_ClosedSet(t *testing.T) {
	presets := QualityPresets()
	if len(presets) != 8 {
		t.Fatalf("Expected 8 presets, got %d", len(presets))
	}
	for _, p := range presets {
		if !p.Valid() {
			t.Errorf("preset %s should be valid", p)
		}
		if p.Label() == string(p) {
			t.Errorf("preset %s has no label", p)
		}
	}
	if QualityPreset("medium").Valid() {
		t.Error("medium is not part of the set")
	}
}
