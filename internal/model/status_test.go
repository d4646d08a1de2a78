package model

import "testing"

func TestTaskStatus_IsActive(t *testing.T) {
	tests := []struct {
		status   TaskStatus
		expected bool
	}{
		{TaskStatusPending, true},
		{TaskStatusSubmitting, true},
		{TaskStatusCompleted, false},
		{TaskStatusWarning, false},
		{TaskStatusError, false},
	}

	for _, test := range tests {
		result := test.status.IsActive()
		if result != test.expected {
			t.Errorf("TaskStatus(%s).IsActive() = %v, expected %v", test.status, result, test.expected)
		}
	}
}

func TestTaskStatus_IsFinished(t *testing.T) {
	tests := []struct {
		status   TaskStatus
		expected bool
	}{
		{TaskStatusPending, false},
		{TaskStatusSubmitting, false},
		{TaskStatusCompleted, true},
		{TaskStatusWarning, true},
		{TaskStatusError, true},
	}

	for _, test := range tests {
		result := test.status.IsFinished()
		if result != test.expected {
			t.Errorf("TaskStatus(%s).IsFinished() = %v, expected %v", test.status, result, test.expected)
		}
	}
}

func TestStatus_String(t *testing.T) {
	tests := []struct {
		status   Status
		expected string
	}{
		{Status{}, ""},
		{Status{Kind: StatusSupported}, "URL supported - video found"},
		{Status{Kind: StatusUnsupported}, "URL not supported"},
		{Status{Kind: StatusVerifyFailed}, "Could not verify the URL"},
		{Status{Kind: StatusDownloadOK, Text: "Video \"Test\" downloaded"}, "Video \"Test\" downloaded"},
		{Status{Kind: StatusDownloadWarning, Text: "already downloaded"}, "already downloaded"},
		{Status{Kind: StatusDownloadFailed, Text: "boom"}, "Error: boom"},
		{Status{Kind: StatusDownloadFailed}, "Error: unknown error"},
	}

	for _, test := range tests {
		if got := test.status.String(); got != test.expected {
			t.Errorf("Status{%s, %q}.String() = %q, expected %q", test.status.Kind, test.status.Text, got, test.expected)
		}
	}
}

func TestStatusKind_Severity(t *testing.T) {
	if !StatusUnsupported.IsError() || !StatusDownloadFailed.IsError() {
		t.Error("unsupported and download-failed should render as errors")
	}
	if !StatusVerifyFailed.IsWarning() || !StatusDownloadWarning.IsWarning() {
		t.Error("verify-failed and download-warning should render as warnings")
	}
	if StatusVerifyFailed.IsError() {
		t.Error("a failed verification must stay distinct from an unsupported URL")
	}
	if StatusSupported.IsError() || StatusSupported.IsWarning() {
		t.Error("supported should be neither error nor warning")
	}
}
