package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestUserError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *UserError
		contains []string
	}{
		{
			name: "full error with all fields",
			err: &UserError{
				Title:       "Test Title",
				Message:     "Test message",
				Remediation: "Test remediation",
			},
			contains: []string{"Test Title", "Test message", "💡 Test remediation"},
		},
		{
			name: "title only",
			err: &UserError{
				Title: "Just a title",
			},
			contains: []string{"Just a title"},
		},
		{
			name: "message and remediation",
			err: &UserError{
				Message:     "Something broke",
				Remediation: "Fix it",
			},
			contains: []string{"Something broke", "💡 Fix it"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("Error() = %q, should contain %q", got, want)
				}
			}
		})
	}
}

func TestUserError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := NewGatewayError("list projects", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestNewGhNotInstalledError(t *testing.T) {
	err := NewGhNotInstalledError(errors.New("exec: \"gh\": executable file not found"))

	if !strings.Contains(err.Error(), "cli.github.com") {
		t.Errorf("Expected install hint, got: %s", err.Error())
	}
}

func TestNewGhAuthError(t *testing.T) {
	err := NewGhAuthError()

	if !strings.Contains(err.Error(), "gh auth login") {
		t.Errorf("Expected auth login remediation, got: %s", err.Error())
	}
}

func TestNewGatewayError_Remediation(t *testing.T) {
	tests := []struct {
		name       string
		cause      error
		wantInText string
	}{
		{
			name:       "resolution failure suggests project list",
			cause:      errors.New("Could not resolve to a ProjectV2"),
			wantInText: "gh project list",
		},
		{
			name:       "auth failure suggests login",
			cause:      errors.New("HTTP 401: authentication required"),
			wantInText: "gh auth login",
		},
		{
			name:       "rate limit suggests waiting",
			cause:      errors.New("API rate limit exceeded"),
			wantInText: "rate limit",
		},
		{
			name:       "generic failure suggests verbose",
			cause:      errors.New("boom"),
			wantInText: "--verbose",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewGatewayError("list projects", tt.cause)
			if !strings.Contains(err.Error(), tt.wantInText) {
				t.Errorf("Expected %q in error, got: %s", tt.wantInText, err.Error())
			}
		})
	}
}

func TestNewStatusResolutionError(t *testing.T) {
	err := NewStatusResolutionError("In Review", nil)

	if !strings.Contains(err.Error(), `"In Review"`) {
		t.Errorf("Expected status name in error, got: %s", err.Error())
	}
	if !strings.Contains(err.Error(), "ghp setup") {
		t.Errorf("Expected setup remediation, got: %s", err.Error())
	}
}

func TestNewIssueNotFoundError(t *testing.T) {
	err := NewIssueNotFoundError("acme/widgets", 42)

	if !strings.Contains(err.Error(), "acme/widgets#42") {
		t.Errorf("Expected repo#number in error, got: %s", err.Error())
	}
}

func TestNewConfigError_Remediation(t *testing.T) {
	tests := []struct {
		cause      string
		wantInText string
	}{
		{"open config: permission denied", "chmod 644"},
		{"open config: no such file or directory", "ghp setup"},
		{"failed to decode config file", "ghp config doctor"},
		{"something else entirely", "ghp config doctor"},
	}

	for _, tt := range tests {
		t.Run(tt.cause, func(t *testing.T) {
			err := NewConfigError("load", fmt.Errorf("%s", tt.cause))
			if !strings.Contains(err.Error(), tt.wantInText) {
				t.Errorf("Expected %q in error, got: %s", tt.wantInText, err.Error())
			}
		})
	}
}

func TestWrapWithContext(t *testing.T) {
	t.Run("passes through existing UserError", func(t *testing.T) {
		orig := NewGhAuthError()
		wrapped := WrapWithContext(orig, "list_projects")
		if wrapped != orig {
			t.Error("Expected existing UserError to pass through unchanged")
		}
	})

	t.Run("wraps by context", func(t *testing.T) {
		wrapped := WrapWithContext(errors.New("exit status 1"), "list_items")
		userErr, ok := wrapped.(*UserError)
		if !ok {
			t.Fatal("Expected *UserError")
		}
		if !strings.Contains(userErr.Message, "list project items") {
			t.Errorf("Expected operation in message, got: %s", userErr.Message)
		}
	})

	t.Run("unknown context gets generic wrapper", func(t *testing.T) {
		wrapped := WrapWithContext(errors.New("boom"), "mystery")
		userErr, ok := wrapped.(*UserError)
		if !ok {
			t.Fatal("Expected *UserError")
		}
		if userErr.Message != "boom" {
			t.Errorf("Expected original message, got: %s", userErr.Message)
		}
	})
}
