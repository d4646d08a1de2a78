package model

// TaskStatus represents the status of a download submission
type TaskStatus string

const (
	// TaskStatusPending means the submission is recorded but not sent yet
	TaskStatusPending TaskStatus = "Pending"

	// TaskStatusSubmitting means the download request is in flight
	TaskStatusSubmitting TaskStatus = "Submitting"

	// TaskStatusCompleted means the backend reported success
	TaskStatusCompleted TaskStatus = "Completed"

	// TaskStatusWarning means the backend answered with a warning instead of success
	TaskStatusWarning TaskStatus = "Warning"

	// TaskStatusError means the request failed or the backend reported an error
	TaskStatusError TaskStatus = "Error"
)

// String returns the string representation of TaskStatus
func (ts TaskStatus) String() string {
	return string(ts)
}

// IsActive returns true while the request is outstanding
func (ts TaskStatus) IsActive() bool {
	return ts == TaskStatusPending || ts == TaskStatusSubmitting
}

// IsFinished returns true if the task is in a finished state (completed, warning, or error)
func (ts TaskStatus) IsFinished() bool {
	return ts == TaskStatusCompleted || ts == TaskStatusWarning || ts == TaskStatusError
}

// StatusKind classifies the message shown under the URL field.
type StatusKind int

const (
	StatusNone StatusKind = iota
	StatusSupported
	StatusUnsupported
	StatusVerifyFailed
	StatusSubmitting
	StatusDownloadOK
	StatusDownloadWarning
	StatusDownloadFailed
)

// String returns a stable identifier for the kind.
func (k StatusKind) String() string {
	switch k {
	case StatusNone:
		return "none"
	case StatusSupported:
		return "supported"
	case StatusUnsupported:
		return "unsupported"
	case StatusVerifyFailed:
		return "verify-failed"
	case StatusSubmitting:
		return "submitting"
	case StatusDownloadOK:
		return "download-ok"
	case StatusDownloadWarning:
		return "download-warning"
	case StatusDownloadFailed:
		return "download-failed"
	default:
		return "unknown"
	}
}

// IsError reports kinds rendered as errors.
func (k StatusKind) IsError() bool {
	return k == StatusUnsupported || k == StatusDownloadFailed
}

// IsWarning reports kinds rendered as warnings.
func (k StatusKind) IsWarning() bool {
	return k == StatusVerifyFailed || k == StatusDownloadWarning
}

// Status is the user-visible status line. Text carries the backend message
// verbatim for the download kinds and is empty otherwise.
type Status struct {
	Kind StatusKind
	Text string
}

// IsZero reports whether no status is set.
func (s Status) IsZero() bool {
	return s.Kind == StatusNone && s.Text == ""
}

// String renders the status in English.
func (s Status) String() string {
	switch s.Kind {
	case StatusNone:
		return s.Text
	case StatusSupported:
		return "URL supported - video found"
	case StatusUnsupported:
		return "URL not supported"
	case StatusVerifyFailed:
		return "Could not verify the URL"
	case StatusSubmitting:
		return "Sending download request..."
	case StatusDownloadOK, StatusDownloadWarning:
		return s.Text
	case StatusDownloadFailed:
		if s.Text == "" {
			return "Error: unknown error"
		}
		return "Error: " + s.Text
	default:
		return s.Text
	}
}
