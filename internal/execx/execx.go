// Package execx runs shell commands for scaffold post hooks and demo
// callers. Commands are screened against a deny-list of shell
// metacharacter patterns before any process is spawned; there is no time
// limit, only an output size cap.
package execx

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/stencilworks/stencil/internal/errors"
)

// MaxOutputBytes caps how much combined output Run returns.
const MaxOutputBytes = 10 * 1024 * 1024

// unsafePatterns are rejected before spawning. Chaining, piping,
// substitution, absolute-path redirection, and path traversal all disqualify
// a command.
var unsafePatterns = []string{
	";",
	"&",
	"|",
	"`",
	"$",
	"$(",
	"> /",
	"../",
}

// Validate reports whether command is safe to run.
func Validate(workDir, command string) error {
	if workDir == "" {
		return errors.NewConfigError(errors.ErrCodeUnsafeCommand, "working directory is not set")
	}
	if strings.TrimSpace(command) == "" {
		return errors.NewConfigError(errors.ErrCodeUnsafeCommand, "no command given")
	}
	for _, pattern := range unsafePatterns {
		if strings.Contains(command, pattern) {
			return errors.NewCommandError(errors.ErrCodeUnsafeCommand,
				fmt.Sprintf("command contains unsafe pattern %q", pattern), nil)
		}
	}
	return nil
}

// Run executes command in workDir and returns its stdout, or stderr when
// stdout is empty. The command line is split on whitespace and executed
// directly, never through a shell.
func Run(ctx context.Context, workDir, command string) (string, error) {
	if err := Validate(workDir, command); err != nil {
		return "", err
	}

	fields := strings.Fields(command)
	cmd := exec.CommandContext(ctx, fields[0], fields[1:]...)
	cmd.Dir = workDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &limitWriter{w: &stdout, remaining: MaxOutputBytes}
	cmd.Stderr = &limitWriter{w: &stderr, remaining: MaxOutputBytes}

	if err := cmd.Run(); err != nil {
		return "", errors.NewCommandError(errors.ErrCodeCommandFailed,
			fmt.Sprintf("command %q failed: %s", command, strings.TrimSpace(stderr.String())), err)
	}

	out := strings.TrimSpace(stdout.String())
	if out == "" {
		out = strings.TrimSpace(stderr.String())
	}
	return out, nil
}

// limitWriter discards bytes past its budget.
type limitWriter struct {
	w         io.Writer
	remaining int
}

func (lw *limitWriter) Write(p []byte) (int, error) {
	n := len(p)
	if lw.remaining <= 0 {
		return n, nil
	}
	if len(p) > lw.remaining {
		p = p[:lw.remaining]
	}
	written, err := lw.w.Write(p)
	lw.remaining -= written
	if err != nil {
		return written, err
	}
	return n, nil
}
