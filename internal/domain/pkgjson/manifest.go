package pkgjson

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/package-url/packageurl-go"
)

const FileName = "package.json"

// Dependency kinds as they appear in package.json.
const (
	KindDependencies         = "dependencies"
	KindDevDependencies      = "devDependencies"
	KindPeerDependencies     = "peerDependencies"
	KindOptionalDependencies = "optionalDependencies"
)

// Manifest is the subset of package.json wsdeps cares about. Every field is
// optional; an empty Name means the manifest did not declare one.
type Manifest struct {
	Name                 string            `json:"name,omitempty"`
	Version              string            `json:"version,omitempty"`
	Dependencies         map[string]string `json:"dependencies,omitempty"`
	DevDependencies      map[string]string `json:"devDependencies,omitempty"`
	PeerDependencies     map[string]string `json:"peerDependencies,omitempty"`
	OptionalDependencies map[string]string `json:"optionalDependencies,omitempty"`
}

func Path(dir string) string {
	return filepath.Join(dir, FileName)
}

// Read loads dir/package.json.
func Read(dir string) (Manifest, error) {
	file := Path(dir)
	data, err := os.ReadFile(file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Manifest{}, &NotFoundError{Dir: dir}
		}
		return Manifest{}, fmt.Errorf("read %s: %w", file, err)
	}
	return Parse(file, data)
}

// ReadFS loads dir/package.json from fsys. dir is a slash separated path
// inside fsys.
func ReadFS(fsys fs.FS, dir string) (Manifest, error) {
	file := path.Join(dir, FileName)
	data, err := fs.ReadFile(fsys, file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Manifest{}, &NotFoundError{Dir: dir}
		}
		return Manifest{}, fmt.Errorf("read %s: %w", file, err)
	}
	return Parse(file, data)
}

// Parse decodes package.json content. file is only used for error context.
func Parse(file string, data []byte) (Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return Manifest{}, &ParseError{Path: file, Err: err}
	}
	return m, nil
}

// DependsOn reports whether name is a key of dependencies or
// devDependencies. The declared range is not inspected.
func (m Manifest) DependsOn(name string) bool {
	if name == "" {
		return false
	}
	if _, ok := m.Dependencies[name]; ok {
		return true
	}
	_, ok := m.DevDependencies[name]
	return ok
}

// DeclaredRange returns the first dependency map declaring name, checked in
// dependencies, devDependencies, peerDependencies, optionalDependencies order.
func (m Manifest) DeclaredRange(name string) (string, string, bool) {
	for _, entry := range []struct {
		kind string
		deps map[string]string
	}{
		{KindDependencies, m.Dependencies},
		{KindDevDependencies, m.DevDependencies},
		{KindPeerDependencies, m.PeerDependencies},
		{KindOptionalDependencies, m.OptionalDependencies},
	} {
		if rng, ok := entry.deps[name]; ok {
			return entry.kind, rng, true
		}
	}
	return "", "", false
}

// PURL returns the npm package URL, or "" when the manifest has no name.
func (m Manifest) PURL() string {
	name := strings.TrimSpace(m.Name)
	if name == "" {
		return ""
	}
	namespace := ""
	if strings.HasPrefix(name, "@") {
		if idx := strings.Index(name, "/"); idx > 0 {
			namespace = name[:idx]
			name = name[idx+1:]
		}
	}
	purl := packageurl.NewPackageURL(packageurl.TypeNPM, namespace, name, strings.TrimSpace(m.Version), nil, "")
	return purl.ToString()
}
