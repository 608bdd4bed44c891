// Package ghexec runs external commands with consistent timeout and
// error-reporting behavior. Every gateway call goes through a Runner so that
// stderr capture, JSON decoding, and debug logging happen in one place.
package ghexec

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"ghp/internal/logger"
)

// DefaultTimeout is the standard timeout for external CLI calls
const DefaultTimeout = 30 * time.Second

// Runner executes external commands with a bounded context
type Runner struct {
	timeout time.Duration
}

// NewRunner creates a runner with the given per-call timeout
func NewRunner(timeout time.Duration) *Runner {
	return &Runner{timeout: timeout}
}

// NewDefaultRunner creates a runner with the standard timeout
func NewDefaultRunner() *Runner {
	return NewRunner(DefaultTimeout)
}

// Run executes a command and returns its stdout. On a non-zero exit the
// returned error carries the trimmed stderr output, which is what gh uses
// for its human-readable failure messages.
func (r *Runner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	// Bound the call if the caller didn't
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	logger.Exec(name, args)

	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	logger.Debug("EXEC done in %v (err=%v)", time.Since(start), err)

	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%s timed out after %v", name, r.timeout)
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return nil, fmt.Errorf("%s failed: %s", name, msg)
	}

	return stdout.Bytes(), nil
}

// RunJSON executes a command and decodes its stdout into result
func (r *Runner) RunJSON(ctx context.Context, result interface{}, name string, args ...string) error {
	out, err := r.Run(ctx, name, args...)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(out, result); err != nil {
		return fmt.Errorf("%s returned malformed JSON: %v", name, err)
	}
	return nil
}
