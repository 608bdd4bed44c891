package errors

import (
	"fmt"
	"strings"
)

// UserError represents an error with user-friendly messaging and remediation hints
type UserError struct {
	Title       string // Brief title of the error
	Message     string // Detailed error message
	Remediation string // What the user can do to fix it
	Cause       error  // Underlying error, if any
}

func (e *UserError) Error() string {
	var parts []string

	if e.Title != "" {
		parts = append(parts, e.Title)
	}

	if e.Message != "" {
		parts = append(parts, e.Message)
	}

	if e.Remediation != "" {
		parts = append(parts, fmt.Sprintf("💡 %s", e.Remediation))
	}

	return strings.Join(parts, "\n")
}

func (e *UserError) Unwrap() error {
	return e.Cause
}

// Common error constructors with built-in remediation

// NewGhNotInstalledError is returned when the gh binary cannot be found or run.
func NewGhNotInstalledError(err error) *UserError {
	return &UserError{
		Title:       "❌ GitHub CLI Not Found",
		Message:     "The gh command line tool is not installed or not on PATH.",
		Remediation: "Install it from https://cli.github.com and re-run",
		Cause:       err,
	}
}

// NewGhAuthError is returned when gh has no active logged-in session.
func NewGhAuthError() *UserError {
	return &UserError{
		Title:       "❌ Not Authenticated",
		Message:     "The gh CLI has no active GitHub session.",
		Remediation: "Run: gh auth login",
		Cause:       nil,
	}
}

// NewGatewayError wraps a failed gh invocation (non-zero exit or bad JSON)
// for one of the read operations.
func NewGatewayError(operation string, err error) *UserError {
	errStr := err.Error()
	var remediation string

	switch {
	case strings.Contains(errStr, "Could not resolve"), strings.Contains(errStr, "not found"):
		remediation = "Check the owner and project number. Run: gh project list --owner <owner>"
	case strings.Contains(errStr, "auth"), strings.Contains(errStr, "401"):
		remediation = "Your gh session may have expired. Run: gh auth login"
	case strings.Contains(errStr, "rate limit"):
		remediation = "GitHub API rate limit reached. Wait a few minutes and retry"
	default:
		remediation = "Run with --verbose to see the underlying gh invocation"
	}

	return &UserError{
		Title:       "❌ GitHub CLI Error",
		Message:     fmt.Sprintf("Failed to %s: %s", operation, errStr),
		Remediation: remediation,
		Cause:       err,
	}
}

// NewStatusResolutionError is returned when a status mutation cannot resolve
// the status field or the named option on the target project.
func NewStatusResolutionError(status string, cause error) *UserError {
	return &UserError{
		Title:       "❌ Status Not Resolvable",
		Message:     fmt.Sprintf("Could not resolve status %q to a field option on this project.", status),
		Remediation: "Check the project's Status field options, or adjust status_options via ghp setup",
		Cause:       cause,
	}
}

// NewIssueNotFoundError is returned when an issue-detail lookup finds nothing.
func NewIssueNotFoundError(repository string, number int) *UserError {
	return &UserError{
		Title:       "❌ Issue Not Found",
		Message:     fmt.Sprintf("Issue %s#%d does not exist or is not visible to you.", repository, number),
		Remediation: "Check the repository name and issue number",
		Cause:       nil,
	}
}

func NewConfigError(operation string, err error) *UserError {
	var remediation string
	errStr := err.Error()

	switch {
	case strings.Contains(errStr, "permission denied"):
		remediation = "Check file permissions. Run: chmod 644 ~/.config/ghp/config.toml"
	case strings.Contains(errStr, "no such file"):
		remediation = "Run: ghp setup to create a configuration file"
	case strings.Contains(errStr, "decode") || strings.Contains(errStr, "parse"):
		remediation = "Configuration file format is invalid. Run: ghp config doctor"
	default:
		remediation = "Run: ghp config doctor to diagnose configuration issues"
	}

	return &UserError{
		Title:       "❌ Configuration Error",
		Message:     fmt.Sprintf("Failed to %s configuration: %s", operation, errStr),
		Remediation: remediation,
		Cause:       err,
	}
}

// NewDiscoveryError wraps a failed project discovery during setup.
func NewDiscoveryError(owner string, err error) *UserError {
	return &UserError{
		Title:       "❌ Project Discovery Error",
		Message:     fmt.Sprintf("Failed to discover projects for %q.", owner),
		Remediation: "Check the owner name and your gh permissions. Some projects may be restricted",
		Cause:       err,
	}
}

// Helper function to wrap existing errors with better messaging
func WrapWithContext(err error, context string) error {
	if userErr, ok := err.(*UserError); ok {
		// Already a user error, just return it
		return userErr
	}

	switch context {
	case "list_projects":
		return NewGatewayError("list projects", err)
	case "list_items":
		return NewGatewayError("list project items", err)
	case "config_load", "config_save":
		return NewConfigError(context, err)
	default:
		return &UserError{
			Title:       "❌ Error",
			Message:     err.Error(),
			Remediation: "Run with --verbose flag for more details",
			Cause:       err,
		}
	}
}
