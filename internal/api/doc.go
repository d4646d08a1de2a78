package api

// Package api is the HTTP client for the remote download backend. It speaks the
// three JSON endpoints (supported-sites, check-url, download) and converts their
// answers into model values and typed errors.
