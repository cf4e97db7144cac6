// Package sandbox runs untrusted source inside a disposable, per-execution
// workspace bound to a language toolchain image.
package sandbox

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"algojudge/internal/judge/registry"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	msgExecutionFailed   = "Execution failed"
	msgExecutionTimedOut = "Execution timed out"
	msgUnsupported       = "Unsupported language"
)

// Outcome is the result of one sandboxed execution. A failed launch or an
// abnormal exit comes back as a tagged failure here, never as an error that
// escapes the evaluator.
type Outcome struct {
	Success bool
	Output  string
	Error   string
	Details string
}

type Resolver interface {
	Resolve(language string) (registry.Descriptor, error)
}

type Options struct {
	WorkspaceRoot string
	Timeout       time.Duration
	MaxConcurrent int
}

type Engine struct {
	resolver Resolver
	root     string
	timeout  time.Duration
	slots    chan struct{}
	logger   *zap.Logger
}

func NewEngine(resolver Resolver, opts Options, logger *zap.Logger) *Engine {
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 1
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 20 * time.Second
	}
	return &Engine{
		resolver: resolver,
		root:     opts.WorkspaceRoot,
		timeout:  opts.Timeout,
		slots:    make(chan struct{}, opts.MaxConcurrent),
		logger:   logger,
	}
}

// Execute writes source into a fresh workspace, launches the language's
// sandbox command with args as a vector, and parses the harness verdict line.
// The workspace is removed on every exit path.
func (e *Engine) Execute(ctx context.Context, language, source string, args []string) Outcome {
	desc, err := e.resolver.Resolve(language)
	if err != nil {
		return Outcome{Error: msgUnsupported, Details: err.Error()}
	}

	// Bound concurrent sandbox launches; waiting respects the caller's deadline.
	select {
	case e.slots <- struct{}{}:
		defer func() { <-e.slots }()
	case <-ctx.Done():
		return Outcome{Error: msgExecutionFailed, Details: ctx.Err().Error()}
	}

	workDir := filepath.Join(e.root, uuid.NewString())
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return Outcome{Error: msgExecutionFailed, Details: "create workspace: " + err.Error()}
	}
	defer os.RemoveAll(workDir)

	if err := os.WriteFile(filepath.Join(workDir, desc.FileName), []byte(source+"\n"), 0o644); err != nil {
		return Outcome{Error: msgExecutionFailed, Details: "write source: " + err.Error()}
	}

	runCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	argv := desc.Command(workDir, desc.FileName, args)
	cmd := exec.CommandContext(runCtx, argv[0], argv[1:]...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()

	if runCtx.Err() != nil && errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		e.logger.Warn("sandbox execution timed out",
			zap.String("language", language),
			zap.Duration("timeout", e.timeout))
		return Outcome{Error: msgExecutionTimedOut, Details: strings.TrimSpace(stderr.String())}
	}

	if runErr != nil {
		details := strings.TrimSpace(stderr.String())
		if details == "" {
			details = runErr.Error()
		}
		e.logger.Debug("sandbox execution failed",
			zap.String("language", language),
			zap.String("details", details))
		return Outcome{Error: msgExecutionFailed, Details: details}
	}

	success, output, ok := parseVerdict(stdout.String())
	if !ok {
		// Harness broke the verdict contract: non-passing, raw output kept
		// as diagnostic.
		return Outcome{Success: false, Output: strings.TrimSpace(stdout.String()), Error: strings.TrimSpace(stderr.String())}
	}
	return Outcome{Success: success, Output: output, Error: strings.TrimSpace(stderr.String())}
}

// parseVerdict reads the harness protocol line "<0|1>:<value>". Anything else
// is reported as unparsable.
func parseVerdict(stdout string) (success bool, output string, ok bool) {
	s := strings.TrimSpace(stdout)
	if len(s) < 2 || (s[0] != '0' && s[0] != '1') || s[1] != ':' {
		return false, "", false
	}
	return s[0] == '1', s[2:], true
}
