package debuglog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDisabledByDefault(t *testing.T) {
	if Enabled() {
		t.Fatalf("expected debug logging to be disabled")
	}
	if Path() != "" {
		t.Fatalf("expected empty path, got %q", Path())
	}
	LogCommand("pnpm:1", "pnpm install")
}

func TestEnableWritesLogfmtLines(t *testing.T) {
	rootDir := t.TempDir()
	if err := Enable(rootDir); err != nil {
		t.Fatalf("Enable: %v", err)
	}
	defer func() { _ = Close() }()

	path := Path()
	if filepath.Dir(path) != Dir(rootDir) {
		t.Fatalf("log path = %s, want dir %s", path, Dir(rootDir))
	}

	SetPhase("steps")
	defer SetPhase("")
	trace := NewTrace("pnpm")
	LogCommand(trace, FormatCommand("pnpm", []string{"install"}))
	LogStdoutLines(trace, "Lockfile is up to date\n\nDone in 1.2s\n")
	LogExit(trace, 0)

	if err := Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	text := string(data)
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) != 4 {
		t.Fatalf("log lines = %d, want 4:\n%s", len(lines), text)
	}
	for _, want := range []string{"msg=cmd", `cmd="pnpm install"`, "Lockfile is up to date", "msg=exit", "code=0", "phase=steps", "run="} {
		if !strings.Contains(text, want) {
			t.Fatalf("log missing %q:\n%s", want, text)
		}
	}
	if Enabled() {
		t.Fatalf("expected logging disabled after Close")
	}
}

func TestEnableRequiresRoot(t *testing.T) {
	if err := Enable("  "); err == nil {
		t.Fatalf("expected error for empty root")
	}
}

func TestNewTraceDefaultsPrefix(t *testing.T) {
	trace := NewTrace("")
	if !strings.HasPrefix(trace, "cmd:") {
		t.Fatalf("trace = %q, want cmd: prefix", trace)
	}
	if FormatCommand("pnpm", nil) != "pnpm" {
		t.Fatalf("FormatCommand without args = %q", FormatCommand("pnpm", nil))
	}
}
