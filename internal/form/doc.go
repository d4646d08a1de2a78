package form

// Package form implements the URL verification workflow behind the download
// form. Every edit of the URL re-arms a debounce timer; when input settles the
// current URL is checked against the backend and the answer is applied only if
// the URL is still the one being edited. The verified state gates submission.
