package llm

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"
	"unicode/utf8"
)

// cliExecutor runs the Claude CLI as a subprocess. The prompt travels
// over stdin (long texts would blow past ARG_MAX as an argument) and the
// transformed text comes back on stdout. Cancelling the context kills
// the process, not just the wait.
type cliExecutor struct {
	binary string
}

func (c *cliExecutor) execute(ctx context.Context, plan Plan, req Request) (string, error) {
	bin, err := exec.LookPath(c.binary)
	if err != nil {
		return "", errf(KindCLINotFound, "%s not found on PATH; install the Claude CLI to use this model", c.binary)
	}

	cmd := exec.CommandContext(ctx, bin, "-p", "--model", plan.Model)
	cmd.Stdin = strings.NewReader(joinPrompt(req.SystemPrompt, req.UserText))
	cmd.WaitDelay = 5 * time.Second

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	if ctx.Err() != nil {
		// classify() turns this into Timeout or Cancelled.
		return "", ctx.Err()
	}
	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			return "", errf(KindCLIFailure, "exit code %d: %s", exitErr.ExitCode(), firstLine(stderr.String()))
		}
		return "", errf(KindCLINotFound, "failed to start %s: %v", c.binary, runErr)
	}

	out := cleanCLIOutput(stdout.String())
	if out == "" {
		return "", errf(KindCLIFailure, "CLI produced no output")
	}
	if !utf8.ValidString(out) {
		return "", errf(KindCLIFailure, "CLI produced non-UTF-8 output")
	}
	return out, nil
}

// joinPrompt concatenates the system prompt and the user text with a
// blank line between them; an empty system prompt yields just the text.
func joinPrompt(system, text string) string {
	if system == "" {
		return text
	}
	return system + "\n\n" + text
}

// cleanCLIOutput trims whitespace and a surrounding code fence, which the
// CLI sometimes wraps around transformed text.
func cleanCLIOutput(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}
