package pkgjson

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644))
}

func TestReadParsesFields(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `{
  "name": "@acme/ui",
  "version": "1.2.3",
  "private": true,
  "dependencies": {"left-pad": "^1.3.0"},
  "devDependencies": {"@acme/tsconfig": "workspace:*"},
  "peerDependencies": {"react": ">=18"},
  "scripts": {"build": "tsc"}
}`)

	m, err := Read(dir)
	require.NoError(t, err)
	require.Equal(t, "@acme/ui", m.Name)
	require.Equal(t, "1.2.3", m.Version)
	require.Equal(t, map[string]string{"left-pad": "^1.3.0"}, m.Dependencies)
	require.Equal(t, map[string]string{"@acme/tsconfig": "workspace:*"}, m.DevDependencies)
	require.Equal(t, map[string]string{"react": ">=18"}, m.PeerDependencies)
	require.Nil(t, m.OptionalDependencies)
}

func TestReadMissingManifest(t *testing.T) {
	dir := t.TempDir()

	_, err := Read(dir)
	require.Error(t, err)

	var notFound *NotFoundError
	require.True(t, errors.As(err, &notFound))
	require.Equal(t, dir, notFound.Dir)
	require.True(t, errors.Is(err, fs.ErrNotExist))

	var parseErr *ParseError
	require.False(t, errors.As(err, &parseErr))
}

func TestReadMalformedManifest(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `{"name": "broken",`)

	_, err := Read(dir)
	require.Error(t, err)

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	require.Equal(t, filepath.Join(dir, FileName), parseErr.Path)

	var notFound *NotFoundError
	require.False(t, errors.As(err, &notFound))
}

func TestReadWithoutName(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `{"version": "0.0.1"}`)

	m, err := Read(dir)
	require.NoError(t, err)
	require.Empty(t, m.Name)
	require.False(t, m.DependsOn(""))
	require.Empty(t, m.PURL())
}

func TestReadIgnoresNonBooleanPrivate(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `{"name": "a", "private": "true"}`)

	m, err := Read(dir)
	require.NoError(t, err)
	require.Equal(t, "a", m.Name)
}

func TestReadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"packages/a/package.json": {Data: []byte(`{"name":"a","version":"1.0.0"}`)},
	}

	m, err := ReadFS(fsys, "packages/a")
	require.NoError(t, err)
	require.Equal(t, "a", m.Name)

	_, err = ReadFS(fsys, "packages/b")
	var notFound *NotFoundError
	require.True(t, errors.As(err, &notFound))
	require.Equal(t, "packages/b", notFound.Dir)
}

func TestDependsOnIgnoresRange(t *testing.T) {
	m := Manifest{
		Dependencies:     map[string]string{"left-pad": "*"},
		DevDependencies:  map[string]string{"a": "workspace:*"},
		PeerDependencies: map[string]string{"peer-only": "^1.0.0"},
	}

	require.True(t, m.DependsOn("left-pad"))
	require.True(t, m.DependsOn("a"))
	require.False(t, m.DependsOn("peer-only"))
	require.False(t, m.DependsOn("missing"))
	require.False(t, Manifest{}.DependsOn("left-pad"))
}

func TestDeclaredRange(t *testing.T) {
	m := Manifest{
		DevDependencies:      map[string]string{"a": "workspace:^"},
		OptionalDependencies: map[string]string{"fsevents": "^2.3.0"},
	}

	kind, rng, ok := m.DeclaredRange("a")
	require.True(t, ok)
	require.Equal(t, KindDevDependencies, kind)
	require.Equal(t, "workspace:^", rng)

	kind, _, ok = m.DeclaredRange("fsevents")
	require.True(t, ok)
	require.Equal(t, KindOptionalDependencies, kind)

	_, _, ok = m.DeclaredRange("nope")
	require.False(t, ok)
}

func TestPURL(t *testing.T) {
	tests := []struct {
		name string
		m    Manifest
		want string
	}{
		{name: "plain", m: Manifest{Name: "left-pad", Version: "1.3.0"}, want: "pkg:npm/left-pad@1.3.0"},
		{name: "scoped", m: Manifest{Name: "@acme/ui", Version: "2.0.0"}, want: "pkg:npm/%40acme/ui@2.0.0"},
		{name: "no version", m: Manifest{Name: "tool"}, want: "pkg:npm/tool"},
		{name: "no name", m: Manifest{Version: "1.0.0"}, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.m.PURL())
		})
	}
}
