package ui

import "strings"

// Icons (emojis/symbols)
const (
	IconChecking  = "⏳"
	IconSupported = "✅"
	IconWarning   = "⚠️"
	IconError     = "❌"
	IconGlobe     = "🌐"
	IconUploader  = "👤"
	IconDuration  = "⏱️"
	IconViews     = "👁"
	IconCalendar  = "📅"
)

// Text fragments
const (
	MiddleDotSeparator = " · "
	DashPlaceholder    = "—"
)

// SitesMaxShown caps the supported sites rendered under the form
const SitesMaxShown = 12

// siteIcons maps host fragments to the icon shown next to the URL field. The
// first match wins.
var siteIcons = []struct {
	fragments []string
	icon      string
}{
	{[]string{"youtube.com", "youtu.be"}, "🎬"},
	{[]string{"vimeo.com"}, "🎭"},
	{[]string{"tiktok.com"}, "🎵"},
	{[]string{"twitch.tv"}, "🎮"},
	{[]string{"facebook.com"}, "📘"},
	{[]string{"instagram.com"}, "📷"},
	{[]string{"twitter.com", "x.com"}, "🐦"},
	{[]string{"dailymotion.com"}, "📺"},
}

// SiteIcon returns the icon for the site a URL points to.
func SiteIcon(url string) string {
	if url == "" {
		return IconGlobe
	}
	for _, site := range siteIcons {
		for _, f := range site.fragments {
			if strings.Contains(url, f) {
				return site.icon
			}
		}
	}
	return IconGlobe
}
