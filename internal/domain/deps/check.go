package deps

import (
	"fmt"
	"sort"

	"github.com/tasuku43/wsdeps/internal/domain/workspace"
)

type IssueKind string

const (
	IssueMissingName    IssueKind = "missing_name"
	IssueMissingVersion IssueKind = "missing_version"
	IssueDuplicateName  IssueKind = "duplicate_name"
)

type Issue struct {
	Kind    IssueKind
	Name    string
	Paths   []string
	Message string
}

// Check reports manifests that queries cannot address reliably. None of
// these block a query: nameless packages never match, the first duplicate
// wins in FindReferences and the last one in Versions.
func Check(packages []workspace.Package) []Issue {
	var issues []Issue
	byName := map[string][]string{}
	for _, pkg := range packages {
		name := pkg.Name()
		if name == "" {
			issues = append(issues, Issue{
				Kind:    IssueMissingName,
				Paths:   []string{pkg.ManifestPath},
				Message: "package has no name and can not be referenced",
			})
			continue
		}
		if pkg.Version() == "" {
			issues = append(issues, Issue{
				Kind:    IssueMissingVersion,
				Name:    name,
				Paths:   []string{pkg.ManifestPath},
				Message: fmt.Sprintf("package %s has no version", name),
			})
		}
		byName[name] = append(byName[name], pkg.ManifestPath)
	}

	var duplicates []string
	for name, paths := range byName {
		if len(paths) > 1 {
			duplicates = append(duplicates, name)
		}
	}
	sort.Strings(duplicates)
	for _, name := range duplicates {
		issues = append(issues, Issue{
			Kind:    IssueDuplicateName,
			Name:    name,
			Paths:   byName[name],
			Message: fmt.Sprintf("package name %s is declared %d times", name, len(byName[name])),
		})
	}
	return issues
}
