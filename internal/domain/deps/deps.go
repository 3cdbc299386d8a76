package deps

import (
	"fmt"

	"github.com/tasuku43/wsdeps/internal/domain/workspace"
)

// Report is the result of a reverse dependency query.
type Report struct {
	Dependency workspace.Package
	Dependents []workspace.Package
}

// PackageNotFoundError is returned when no workspace package has the
// requested name.
type PackageNotFoundError struct {
	Name string
}

func (e *PackageNotFoundError) Error() string {
	return fmt.Sprintf("could not find package %q", e.Name)
}

// FindReferences scans rootDir and returns the package called name together
// with every package that lists it in dependencies or devDependencies.
func FindReferences(rootDir, name string) (Report, error) {
	packages, err := workspace.Search(rootDir)
	if err != nil {
		return Report{}, err
	}
	return References(packages, name)
}

// References is FindReferences over an already scanned workspace. The first
// package named name wins; a package depending on itself is its own
// dependent.
func References(packages []workspace.Package, name string) (Report, error) {
	dependency, ok := Find(packages, name)
	if !ok {
		return Report{}, &PackageNotFoundError{Name: name}
	}
	dependents := []workspace.Package{}
	for _, pkg := range packages {
		if pkg.Manifest.DependsOn(name) {
			dependents = append(dependents, pkg)
		}
	}
	return Report{Dependency: dependency, Dependents: dependents}, nil
}

// Find returns the first package named name. Packages without a name never
// match.
func Find(packages []workspace.Package, name string) (workspace.Package, bool) {
	if name == "" {
		return workspace.Package{}, false
	}
	for _, pkg := range packages {
		if pkg.Name() == name {
			return pkg, true
		}
	}
	return workspace.Package{}, false
}

// Versions maps package names to versions. With duplicate names the later
// package wins.
func Versions(packages []workspace.Package) map[string]string {
	out := make(map[string]string, len(packages))
	for _, pkg := range packages {
		out[pkg.Name()] = pkg.Version()
	}
	return out
}

// Names returns the non-empty package names in workspace order, without
// duplicates.
func Names(packages []workspace.Package) []string {
	seen := make(map[string]struct{}, len(packages))
	var names []string
	for _, pkg := range packages {
		name := pkg.Name()
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}
