//go:build !windows

package llm

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// fakeCLI installs a shell script named claude as the only thing on PATH.
func fakeCLI(t *testing.T, script string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "claude")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATH", dir)
}

func cliPlan() Plan {
	return Plan{Family: FamilyClaude, Transport: TransportCLI, Model: "claude-3-5-sonnet-20241022"}
}

func TestCLISuccess(t *testing.T) {
	fakeCLI(t, `cat >/dev/null
printf 'Fixed text.'`)

	out, err := NewDispatcher().Dispatch(context.Background(), Request{UserText: "fx text"}, cliPlan())
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if out != "Fixed text." {
		t.Errorf("output = %q, want %q", out, "Fixed text.")
	}
}

func TestCLIPromptOnStdin(t *testing.T) {
	// Echo stdin back so we can observe exactly what the CLI received.
	fakeCLI(t, `cat`)

	req := Request{SystemPrompt: "Fix the grammar.", UserText: "teh text"}
	out, err := NewDispatcher().Dispatch(context.Background(), req, cliPlan())
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	want := "Fix the grammar.\n\nteh text"
	if out != want {
		t.Errorf("stdin payload = %q, want %q", out, want)
	}
}

func TestCLIStripsCodeFence(t *testing.T) {
	fakeCLI(t, `cat >/dev/null
printf '%s' '`+"```"+`
fixed
`+"```"+`'`)

	out, err := NewDispatcher().Dispatch(context.Background(), Request{UserText: "x"}, cliPlan())
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if out != "fixed" {
		t.Errorf("output = %q, want %q", out, "fixed")
	}
}

func TestCLINonZeroExit(t *testing.T) {
	fakeCLI(t, `cat >/dev/null
echo 'model not available' >&2
exit 2`)

	_, err := NewDispatcher().Dispatch(context.Background(), Request{UserText: "x"}, cliPlan())
	if KindOf(err) != KindCLIFailure {
		t.Fatalf("kind = %v, want cli failure (err: %v)", KindOf(err), err)
	}
	if !strings.Contains(err.Error(), "exit code 2") || !strings.Contains(err.Error(), "model not available") {
		t.Errorf("error %q lacks exit code or stderr detail", err)
	}
}

func TestCLIEmptyOutput(t *testing.T) {
	fakeCLI(t, `cat >/dev/null`)

	_, err := NewDispatcher().Dispatch(context.Background(), Request{UserText: "x"}, cliPlan())
	if KindOf(err) != KindCLIFailure {
		t.Fatalf("kind = %v, want cli failure (err: %v)", KindOf(err), err)
	}
}

func TestCLINotFound(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	_, err := NewDispatcher().Dispatch(context.Background(), Request{UserText: "x"}, cliPlan())
	if KindOf(err) != KindCLINotFound {
		t.Fatalf("kind = %v, want cli not found (err: %v)", KindOf(err), err)
	}
}

func TestCLICancelKillsProcess(t *testing.T) {
	fakeCLI(t, `cat >/dev/null
sleep 30`)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	_, err := NewDispatcher().Dispatch(ctx, Request{UserText: "x"}, cliPlan())
	elapsed := time.Since(start)

	if KindOf(err) != KindCancelled {
		t.Fatalf("kind = %v, want cancelled (err: %v)", KindOf(err), err)
	}
	if elapsed > 10*time.Second {
		t.Errorf("cancel took %v; subprocess was not killed", elapsed)
	}
}

func TestCLITimeout(t *testing.T) {
	fakeCLI(t, `cat >/dev/null
sleep 30`)

	d := NewDispatcher()
	d.Timeout = 200 * time.Millisecond

	start := time.Now()
	_, err := d.Dispatch(context.Background(), Request{UserText: "x"}, cliPlan())
	elapsed := time.Since(start)

	if KindOf(err) != KindTimeout {
		t.Fatalf("kind = %v, want timeout (err: %v)", KindOf(err), err)
	}
	if elapsed > 10*time.Second {
		t.Errorf("timeout took %v; subprocess was not killed", elapsed)
	}
}
