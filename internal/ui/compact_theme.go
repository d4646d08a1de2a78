package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// CompactTheme is a slate dark palette with reduced padding and font sizes
type CompactTheme struct{}

// NewCompactTheme creates a new compact theme
func NewCompactTheme() fyne.Theme {
	return &CompactTheme{}
}

// Color returns theme colors. The palette is dark regardless of the variant.
func (t *CompactTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameSuccess:
		return color.RGBA{R: 16, G: 185, B: 129, A: 255} // emerald
	case theme.ColorNameError:
		return color.RGBA{R: 239, G: 68, B: 68, A: 255}
	case theme.ColorNameWarning:
		return color.RGBA{R: 245, G: 158, B: 11, A: 255} // amber
	case theme.ColorNamePrimary, theme.ColorNameFocus:
		return color.RGBA{R: 59, G: 130, B: 246, A: 255}
	case theme.ColorNameBackground:
		return color.RGBA{R: 30, G: 41, B: 59, A: 255} // slate-800
	case theme.ColorNameInputBackground, theme.ColorNameMenuBackground, theme.ColorNameOverlayBackground:
		return color.RGBA{R: 51, G: 65, B: 85, A: 255} // slate-700
	case theme.ColorNameInputBorder, theme.ColorNameSeparator:
		return color.RGBA{R: 71, G: 85, B: 105, A: 255}
	case theme.ColorNameForeground:
		return color.RGBA{R: 248, G: 250, B: 252, A: 255}
	case theme.ColorNamePlaceHolder, theme.ColorNameDisabled:
		return color.RGBA{R: 148, G: 163, B: 184, A: 255}
	}

	return theme.DefaultTheme().Color(name, theme.VariantDark)
}

// Font returns theme fonts
func (t *CompactTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns theme icons
func (t *CompactTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns theme sizes with compact adjustments
func (t *CompactTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 4
	case theme.SizeNameInnerPadding:
		return 8
	case theme.SizeNameLineSpacing:
		return 3
	case theme.SizeNameScrollBar:
		return 12
	case theme.SizeNameText:
		return 14
	case theme.SizeNameHeadingText:
		return 20 // window header
	case theme.SizeNameSubHeadingText:
		return 16
	case theme.SizeNameCaptionText:
		return 11
	case theme.SizeNameInputRadius:
		return 8
	case theme.SizeNameSelectionRadius:
		return 4
	}

	return theme.DefaultTheme().Size(name)
}
