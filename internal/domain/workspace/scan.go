package workspace

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tasuku43/wsdeps/internal/domain/pkgjson"
)

const manifestFileName = pkgjson.FileName

// Package is one workspace member.
type Package struct {
	// Dir is the absolute package directory.
	Dir string
	// ManifestPath is the absolute path of the package.json.
	ManifestPath string
	Manifest     pkgjson.Manifest
}

func (p Package) Name() string {
	return p.Manifest.Name
}

func (p Package) Version() string {
	return p.Manifest.Version
}

// Search reads pnpm-workspace.yaml under rootDir and loads every member
// package. Any failure aborts the scan.
func Search(rootDir string) ([]Package, error) {
	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("resolve root %s: %w", rootDir, err)
	}
	cfg, err := LoadConfig(absRoot)
	if err != nil {
		return nil, err
	}
	return Scan(os.DirFS(absRoot), absRoot, cfg)
}

// Scan runs expansion, manifest filtering and loading against fsys. rootDir
// is the absolute directory fsys is rooted at and is only used to build
// absolute paths.
func Scan(fsys fs.FS, rootDir string, cfg Config) ([]Package, error) {
	matches, err := Expand(fsys, cfg.Packages)
	if err != nil {
		var parseErr *ParseError
		if errors.As(err, &parseErr) {
			parseErr.Path = ConfigPath(rootDir)
		}
		return nil, err
	}
	dirs := FilterManifests(fsys, matches)
	packages := make([]Package, 0, len(dirs))
	for _, dir := range dirs {
		absDir := filepath.Join(rootDir, filepath.FromSlash(dir))
		manifest, err := pkgjson.ReadFS(fsys, dir)
		if err != nil {
			return nil, fmt.Errorf("load package %s: %w", absDir, err)
		}
		packages = append(packages, Package{
			Dir:          absDir,
			ManifestPath: pkgjson.Path(absDir),
			Manifest:     manifest,
		})
	}
	return packages, nil
}

// ManifestPaths returns the package.json path of every package, in order.
func ManifestPaths(packages []Package) []string {
	out := make([]string, 0, len(packages))
	for _, pkg := range packages {
		out = append(out, pkg.ManifestPath)
	}
	return out
}
