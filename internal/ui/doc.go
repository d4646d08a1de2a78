// Package ui contains the Fyne desktop window. It feeds every edit of the URL
// field into the form workflow and renders the published state: status line,
// video card, quality choice, supported sites and the submission history. All UI
// strings are localized via Localization.
package ui
