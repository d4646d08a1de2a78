package download

// Package download submits download requests to the remote backend. Each
// submission is a single fire-and-forget POST recorded as a DownloadTask so the
// UI and CLI can show a history; there is no retry, progress or cancellation.
