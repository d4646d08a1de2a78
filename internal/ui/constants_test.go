package ui

import "testing"

func TestSiteIcon(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"", IconGlobe},
		{"https://www.youtube.com/watch?v=abc", "🎬"},
		{"https://youtu.be/abc", "🎬"},
		{"https://vimeo.com/1", "🎭"},
		{"https://www.tiktok.com/@a/video/1", "🎵"},
		{"https://www.twitch.tv/videos/1", "🎮"},
		{"https://x.com/a/status/1", "🐦"},
		{"https://www.dailymotion.com/video/x1", "📺"},
		{"https://example.org/video", IconGlobe},
	}

	for _, tt := range tests {
		if got := SiteIcon(tt.url); got != tt.want {
			t.Errorf("SiteIcon(%q) = %s, want %s", tt.url, got, tt.want)
		}
	}
}
