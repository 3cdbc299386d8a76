package doctor

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func issueKinds(issues []Issue) map[string]int {
	kinds := map[string]int{}
	for _, issue := range issues {
		kinds[issue.Kind]++
	}
	return kinds
}

func TestCheckFindsManifestIssues(t *testing.T) {
	rootDir := t.TempDir()
	writeFile(t, filepath.Join(rootDir, "pnpm-workspace.yaml"), "packages:\n  - packages/*\n")
	writeFile(t, filepath.Join(rootDir, "packages", "a", "package.json"), `{"name":"a","version":"1.0.0"}`)
	writeFile(t, filepath.Join(rootDir, "packages", "b", "package.json"), `{"name":"a"}`)
	writeFile(t, filepath.Join(rootDir, "packages", "c", "package.json"), `{"version":"1.0.0"}`)

	result, err := Check(rootDir)
	if err != nil {
		t.Fatalf("doctor check: %v", err)
	}
	if result.Packages != 3 {
		t.Fatalf("packages = %d, want 3", result.Packages)
	}
	kinds := issueKinds(result.Issues)
	for _, kind := range []string{"missing_name", "missing_version", "duplicate_name"} {
		if kinds[kind] != 1 {
			t.Fatalf("expected one %s issue, got %v", kind, kinds)
		}
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "pnpm-lock.yaml") {
		t.Fatalf("expected lockfile warning, got %v", result.Warnings)
	}
}

func TestCheckMissingWorkspaceConfig(t *testing.T) {
	rootDir := t.TempDir()

	result, err := Check(rootDir)
	if err != nil {
		t.Fatalf("doctor check: %v", err)
	}
	kinds := issueKinds(result.Issues)
	if kinds["missing_workspace_config"] != 1 {
		t.Fatalf("expected missing_workspace_config issue, got %v", kinds)
	}
}

func TestCheckInvalidManifest(t *testing.T) {
	rootDir := t.TempDir()
	writeFile(t, filepath.Join(rootDir, "pnpm-workspace.yaml"), "packages:\n  - packages/*\n")
	writeFile(t, filepath.Join(rootDir, "packages", "a", "package.json"), `{"name":`)

	result, err := Check(rootDir)
	if err != nil {
		t.Fatalf("doctor check: %v", err)
	}
	if len(result.Issues) != 1 || result.Issues[0].Kind != "invalid_manifest" {
		t.Fatalf("expected invalid_manifest issue, got %v", result.Issues)
	}
}

func TestCheckHealthyWorkspace(t *testing.T) {
	rootDir := t.TempDir()
	writeFile(t, filepath.Join(rootDir, "pnpm-workspace.yaml"), "packages:\n  - packages/*\n")
	writeFile(t, filepath.Join(rootDir, "pnpm-lock.yaml"), "lockfileVersion: '9.0'\n")
	writeFile(t, filepath.Join(rootDir, "packages", "a", "package.json"), `{"name":"a","version":"1.0.0"}`)

	result, err := Check(rootDir)
	if err != nil {
		t.Fatalf("doctor check: %v", err)
	}
	if len(result.Issues) != 0 || len(result.Warnings) != 0 {
		t.Fatalf("expected no findings, got issues=%v warnings=%v", result.Issues, result.Warnings)
	}
}

func TestParsePnpmVersion(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{in: "9.12.3", want: "9.12.3", ok: true},
		{in: "8.6", want: "8.6.0", ok: true},
		{in: "pnpm 10.0.0-rc.1", want: "10.0.0", ok: true},
		{in: "unknown", ok: false},
	}
	for _, tc := range cases {
		got, ok := parsePnpmVersion(tc.in)
		if ok != tc.ok {
			t.Fatalf("parsePnpmVersion(%q) ok = %v, want %v", tc.in, ok, tc.ok)
		}
		if ok && got.String() != tc.want {
			t.Fatalf("parsePnpmVersion(%q) = %s, want %s", tc.in, got.String(), tc.want)
		}
	}
}

func fakePnpm(t *testing.T, version string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fake binary")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "pnpm")
	script := "#!/bin/sh\necho " + version + "\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write fake pnpm: %v", err)
	}
	return path
}

func TestSelfCheckAcceptsRecentPnpm(t *testing.T) {
	binary := fakePnpm(t, "9.1.0")

	result, err := SelfCheck(context.Background(), binary)
	if err != nil {
		t.Fatalf("self check: %v", err)
	}
	if len(result.Issues) != 0 {
		t.Fatalf("unexpected issues: %v", result.Issues)
	}
}

func TestSelfCheckRejectsOldPnpm(t *testing.T) {
	binary := fakePnpm(t, "7.33.0")

	result, err := SelfCheck(context.Background(), binary)
	if err != nil {
		t.Fatalf("self check: %v", err)
	}
	if kinds := issueKinds(result.Issues); kinds["pnpm_version_too_old"] != 1 {
		t.Fatalf("expected pnpm_version_too_old, got %v", result.Issues)
	}
}

func TestSelfCheckMissingBinary(t *testing.T) {
	result, err := SelfCheck(context.Background(), filepath.Join(t.TempDir(), "no-such-pnpm"))
	if err != nil {
		t.Fatalf("self check: %v", err)
	}
	if kinds := issueKinds(result.Issues); kinds["missing_dependency"] != 1 {
		t.Fatalf("expected missing_dependency, got %v", result.Issues)
	}
}
