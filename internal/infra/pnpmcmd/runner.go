package pnpmcmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"

	"github.com/tasuku43/wsdeps/internal/infra/debuglog"
)

const DefaultBinary = "pnpm"

// Sink receives child process output as it arrives. Chunks are not aligned
// to lines. Calls are serialized.
type Sink interface {
	Stdout(text string)
	Stderr(text string)
}

type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

type Options struct {
	Dir string
	// Binary overrides the pnpm executable.
	Binary string
	// Sink streams output; nil only buffers it in Result.
	Sink Sink
	// FailOnExitCode turns a non-zero exit into an *ExitError. By default the
	// exit code is only reported.
	FailOnExitCode bool
}

// Install runs `pnpm install` with extra arguments appended.
func Install(ctx context.Context, extraArgs []string, opts Options) (Result, error) {
	args := append([]string{"install"}, extraArgs...)
	return Run(ctx, args, opts)
}

// Version runs `pnpm --version` and returns the trimmed output.
func Version(ctx context.Context, opts Options) (string, error) {
	opts.Sink = nil
	opts.FailOnExitCode = true
	res, err := Run(ctx, []string{"--version"}, opts)
	if err != nil {
		if strings.TrimSpace(res.Stderr) != "" {
			return "", fmt.Errorf("pnpm --version failed: %s", strings.TrimSpace(res.Stderr))
		}
		return "", err
	}
	return strings.TrimSpace(res.Stdout), nil
}

func Run(ctx context.Context, args []string, opts Options) (Result, error) {
	if err := validateArgs(args); err != nil {
		return Result{
			Stderr:   err.Error(),
			ExitCode: -1,
		}, err
	}

	binary := strings.TrimSpace(opts.Binary)
	if binary == "" {
		binary = DefaultBinary
	}
	cmd := exec.CommandContext(ctx, binary, args...)
	if opts.Dir != "" {
		cmd.Dir = opts.Dir
	}

	trace := ""
	if debuglog.Enabled() {
		trace = debuglog.NewTrace("pnpm")
		debuglog.LogCommand(trace, debuglog.FormatCommand(binary, args))
	}

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	var mu sync.Mutex
	cmd.Stdout = io.MultiWriter(&stdout, &streamWriter{mu: &mu, emit: sinkFunc(opts.Sink, false)})
	cmd.Stderr = io.MultiWriter(&stderr, &streamWriter{mu: &mu, emit: sinkFunc(opts.Sink, true)})

	if err := cmd.Start(); err != nil {
		debuglog.LogError(trace, err)
		return Result{ExitCode: -1}, &ProcessError{Args: append([]string{binary}, args...), Err: err}
	}
	err := cmd.Wait()
	result := Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode(err),
	}
	if debuglog.Enabled() {
		debuglog.LogStdoutLines(trace, result.Stdout)
		debuglog.LogStderrLines(trace, result.Stderr)
		debuglog.LogExit(trace, result.ExitCode)
	}
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			debuglog.LogError(trace, err)
			return result, &ProcessError{Args: append([]string{binary}, args...), Err: err}
		}
	}
	if opts.FailOnExitCode && result.ExitCode != 0 {
		return result, &ExitError{Args: append([]string{binary}, args...), Code: result.ExitCode}
	}
	return result, nil
}

func validateArgs(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("pnpm command is required")
	}
	if !isAllowedSubcommand(args[0]) {
		return fmt.Errorf("pnpm subcommand %q is not allowed", args[0])
	}
	return nil
}

func isAllowedSubcommand(subcommand string) bool {
	_, ok := allowedSubcommands[subcommand]
	return ok
}

var allowedSubcommands = map[string]struct{}{
	"install":   {},
	"--version": {},
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return -1
	}
	return exitErr.ExitCode()
}

func sinkFunc(sink Sink, stderr bool) func(string) {
	if sink == nil {
		return nil
	}
	if stderr {
		return sink.Stderr
	}
	return sink.Stdout
}

type streamWriter struct {
	mu   *sync.Mutex
	emit func(string)
}

func (w *streamWriter) Write(p []byte) (int, error) {
	if w.emit == nil || len(p) == 0 {
		return len(p), nil
	}
	w.mu.Lock()
	w.emit(string(p))
	w.mu.Unlock()
	return len(p), nil
}
