package doctor

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tasuku43/wsdeps/internal/domain/deps"
	"github.com/tasuku43/wsdeps/internal/domain/pkgjson"
	"github.com/tasuku43/wsdeps/internal/domain/workspace"
	"github.com/tasuku43/wsdeps/internal/infra/paths"
)

const lockfileName = "pnpm-lock.yaml"

type Issue struct {
	Kind    string
	Path    string
	Message string
}

type Result struct {
	RootDir  string
	Packages int
	Issues   []Issue
	Warnings []string
}

// Check scans the workspace at rootDir and reports problems with its
// configuration and manifests. Scan failures that describe the workspace
// itself become issues; anything else is returned as an error.
func Check(rootDir string) (Result, error) {
	if strings.TrimSpace(rootDir) == "" {
		return Result{}, fmt.Errorf("root directory is required")
	}
	result := Result{RootDir: rootDir}

	packages, err := workspace.Search(rootDir)
	if err != nil {
		issue, ok := scanIssue(err)
		if !ok {
			return Result{}, err
		}
		result.Issues = append(result.Issues, issue)
		return result, nil
	}
	result.Packages = len(packages)
	if len(packages) == 0 {
		result.Warnings = append(result.Warnings, "no packages matched the workspace patterns")
	}

	for _, issue := range deps.Check(packages) {
		result.Issues = append(result.Issues, Issue{
			Kind:    string(issue.Kind),
			Path:    strings.Join(issue.Paths, ", "),
			Message: issue.Message,
		})
	}

	lockfile := filepath.Join(rootDir, lockfileName)
	exists, err := paths.FileExists(lockfile)
	if err != nil {
		return Result{}, err
	}
	if !exists {
		result.Warnings = append(result.Warnings, fmt.Sprintf("%s not found; run wsdeps install", lockfileName))
	}
	return result, nil
}

func scanIssue(err error) (Issue, bool) {
	var notFound *workspace.ConfigNotFoundError
	if errors.As(err, &notFound) {
		return Issue{Kind: "missing_workspace_config", Path: notFound.Path, Message: err.Error()}, true
	}
	var configErr *workspace.ParseError
	if errors.As(err, &configErr) {
		return Issue{Kind: "invalid_workspace_config", Path: configErr.Path, Message: err.Error()}, true
	}
	var manifestErr *pkgjson.ParseError
	if errors.As(err, &manifestErr) {
		return Issue{Kind: "invalid_manifest", Path: manifestErr.Path, Message: err.Error()}, true
	}
	return Issue{}, false
}
