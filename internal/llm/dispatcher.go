package llm

import (
	"context"
	"net/http"
	"os/exec"
	"sync"
	"time"
)

// DefaultTimeout bounds a single dispatch, CLI or API, wall-clock.
const DefaultTimeout = 60 * time.Second

// Request is one text-transformation request. Ephemeral, never persisted.
type Request struct {
	Model        string
	SystemPrompt string
	UserText     string
}

// executor runs a request against one backend family. The CLI executor
// and the three API executors all satisfy this, so cancellation and
// timeout handling stay uniform across subprocess and network paths.
type executor interface {
	execute(ctx context.Context, plan Plan, req Request) (string, error)
}

// Dispatcher executes resolved plans. It is stateless per request and
// safe for overlapping invocations; each call owns its context and the
// caller cancels via that context.
type Dispatcher struct {
	Timeout time.Duration

	cli        *cliExecutor
	anthropic  *anthropicExecutor
	openai     *openaiExecutor
	atlascloud *atlasExecutor
}

// NewDispatcher builds a Dispatcher with production endpoints and the
// default timeout. Tests override endpoints via the executor fields on
// the returned value.
func NewDispatcher() *Dispatcher {
	httpClient := &http.Client{}
	return &Dispatcher{
		Timeout:    DefaultTimeout,
		cli:        &cliExecutor{binary: "claude"},
		anthropic:  &anthropicExecutor{baseURL: anthropicBaseURL, client: httpClient},
		openai:     &openaiExecutor{},
		atlascloud: &atlasExecutor{baseURL: atlasCloudBaseURL},
	}
}

// Dispatch runs one request against the resolved plan. Unconfigured and
// unsupported plans fail immediately without any I/O. Exactly one attempt
// is made; there is no CLI-to-API fallback at dispatch time.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request, plan Plan) (string, error) {
	if plan.Family == FamilyUnsupported {
		return "", errf(KindUnsupportedModel, "model %q matches no known provider family", req.Model)
	}
	if plan.Transport == TransportNone {
		return "", errf(KindNotConfigured, "%s", plan.Hint)
	}

	timeout := d.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	out, err := d.executorFor(plan).execute(ctx, plan, req)
	if err != nil {
		return "", classify(ctx, err)
	}
	return out, nil
}

func (d *Dispatcher) executorFor(plan Plan) executor {
	if plan.Transport == TransportCLI {
		return d.cli
	}
	switch plan.Family {
	case FamilyOpenAI:
		return d.openai
	case FamilyAtlasCloud:
		return d.atlascloud
	default:
		return d.anthropic
	}
}

// classify maps a raw executor error into the typed taxonomy, giving the
// context verdict priority: a deadline that fired is a timeout and a
// cancelled context is a cancellation, whatever the transport reported.
func classify(ctx context.Context, err error) error {
	switch ctx.Err() {
	case context.DeadlineExceeded:
		return errf(KindTimeout, "operation exceeded the dispatch deadline")
	case context.Canceled:
		return &Error{Kind: KindCancelled}
	}
	if e, ok := err.(*Error); ok {
		return e
	}
	return errf(KindNetworkFailure, "%v", err)
}

// --- CLI discoverability probe ---

var (
	cliProbeOnce  sync.Once
	cliProbeFound bool
)

// CLIAvailable reports whether the claude binary is on PATH. The probe
// runs once per process; the cached answer may be read concurrently.
func CLIAvailable() bool {
	cliProbeOnce.Do(func() {
		cliProbeFound = LookupCLI()
	})
	return cliProbeFound
}

// LookupCLI performs a fresh PATH lookup, bypassing the cache. The
// settings surface uses this so a newly installed CLI shows up without a
// restart.
func LookupCLI() bool {
	_, err := exec.LookPath("claude")
	return err == nil
}
