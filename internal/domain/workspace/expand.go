package workspace

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/gobwas/glob"
)

const nodeModulesDir = "node_modules"

type pattern struct {
	raw       string
	base      string
	depth     int
	recursive bool
	matcher   glob.Glob
}

// Expand resolves workspace patterns to directories of fsys. Results keep
// pattern order, then walk order inside a pattern; a directory matched by
// two patterns appears twice. Patterns prefixed with "!" remove matches.
// node_modules and dot directories below the literal prefix are not walked.
func Expand(fsys fs.FS, patterns []string) ([]string, error) {
	var includes []pattern
	var excludes []glob.Glob
	for _, raw := range patterns {
		trimmed := strings.TrimSpace(raw)
		if negated, ok := strings.CutPrefix(trimmed, "!"); ok {
			g, err := glob.Compile(normalizePattern(negated), '/')
			if err != nil {
				return nil, &ParseError{Path: ConfigFileName, Err: fmt.Errorf("invalid pattern %q: %w", raw, err)}
			}
			excludes = append(excludes, g)
			continue
		}
		p, err := compilePattern(trimmed)
		if err != nil {
			return nil, &ParseError{Path: ConfigFileName, Err: fmt.Errorf("invalid pattern %q: %w", raw, err)}
		}
		if p.raw == "" {
			continue
		}
		includes = append(includes, p)
	}

	var matches []string
	for _, p := range includes {
		found, err := p.walk(fsys)
		if err != nil {
			return nil, err
		}
		for _, dir := range found {
			if excluded(excludes, dir) {
				continue
			}
			matches = append(matches, dir)
		}
	}
	return matches, nil
}

func compilePattern(raw string) (pattern, error) {
	normalized := normalizePattern(raw)
	if normalized == "" {
		return pattern{}, nil
	}
	if !fs.ValidPath(normalized) {
		return pattern{}, errOutsideRoot
	}
	g, err := glob.Compile(normalized, '/')
	if err != nil {
		return pattern{}, err
	}
	segments := strings.Split(normalized, "/")
	var literal []string
	for _, segment := range segments {
		if hasMeta(segment) {
			break
		}
		literal = append(literal, segment)
	}
	base := "."
	if len(literal) > 0 {
		base = strings.Join(literal, "/")
	}
	return pattern{
		raw:       normalized,
		base:      base,
		depth:     len(segments),
		recursive: strings.Contains(normalized, "**"),
		matcher:   g,
	}, nil
}

func (p pattern) walk(fsys fs.FS) ([]string, error) {
	info, err := fs.Stat(fsys, p.base)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("expand %q: %w", p.raw, err)
	}
	if !info.IsDir() {
		return nil, nil
	}

	var found []string
	err = fs.WalkDir(fsys, p.base, func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type()&fs.ModeSymlink != 0 {
			if name != p.base && !skipDir(d.Name()) && p.matcher.Match(name) && isDir(fsys, name) {
				found = append(found, name)
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if name != p.base && skipDir(d.Name()) {
			return fs.SkipDir
		}
		if name == "." {
			if p.raw == "." {
				found = append(found, name)
				return fs.SkipDir
			}
			return nil
		}
		if p.matcher.Match(name) {
			found = append(found, name)
		}
		if !p.recursive && strings.Count(name, "/")+1 >= p.depth {
			return fs.SkipDir
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("expand %q: %w", p.raw, err)
	}
	return found, nil
}

// isDir follows symlinks. Linked directories are matched but never walked.
func isDir(fsys fs.FS, name string) bool {
	info, err := fs.Stat(fsys, name)
	return err == nil && info.IsDir()
}

func normalizePattern(raw string) string {
	p := strings.TrimSpace(raw)
	p = strings.ReplaceAll(p, "\\", "/")
	for strings.HasPrefix(p, "./") {
		p = strings.TrimPrefix(p, "./")
	}
	p = strings.TrimLeft(p, "/")
	return strings.TrimRight(p, "/")
}

func hasMeta(segment string) bool {
	return strings.ContainsAny(segment, "*?[{\\")
}

func skipDir(name string) bool {
	return name == nodeModulesDir || strings.HasPrefix(name, ".")
}

func excluded(excludes []glob.Glob, dir string) bool {
	for _, g := range excludes {
		if g.Match(dir) || g.Match(dir+"/") {
			return true
		}
	}
	return false
}

// FilterManifests keeps the directories that contain a package.json. A
// directory without one is dropped without error.
func FilterManifests(fsys fs.FS, dirs []string) []string {
	out := make([]string, 0, len(dirs))
	for _, dir := range dirs {
		info, err := fs.Stat(fsys, path.Join(dir, manifestFileName))
		if err != nil || info.IsDir() {
			continue
		}
		out = append(out, dir)
	}
	return out
}
