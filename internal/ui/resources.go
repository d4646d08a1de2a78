package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// AppIcon is looked up next to the binary.
const AppIcon = "remote-downloader.png"

// LogoResource returns the application logo, falling back to the theme's
// download icon when the file is not shipped.
func LogoResource() fyne.Resource {
	if res, err := fyne.LoadResourceFromPath(AppIcon); err == nil {
		return res
	}
	return theme.DownloadIcon()
}
