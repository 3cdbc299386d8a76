package workspace

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const ConfigFileName = "pnpm-workspace.yaml"

// Config is the parsed pnpm-workspace.yaml.
type Config struct {
	Packages []string `yaml:"packages"`
}

func ConfigPath(rootDir string) string {
	return filepath.Join(rootDir, ConfigFileName)
}

func LoadConfig(rootDir string) (Config, error) {
	path := ConfigPath(rootDir)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Config{}, &ConfigNotFoundError{Root: rootDir, Path: path}
		}
		return Config{}, fmt.Errorf("read %s: %w", ConfigFileName, err)
	}
	return ParseConfig(path, data)
}

// ParseConfig decodes pnpm-workspace.yaml content. A document without a
// packages list is rejected.
func ParseConfig(path string, data []byte) (Config, error) {
	var raw struct {
		Packages *[]string `yaml:"packages"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Config{}, &ParseError{Path: path, Err: err}
	}
	if raw.Packages == nil {
		return Config{}, &ParseError{Path: path, Err: errMissingPackages}
	}
	return Config{Packages: *raw.Packages}, nil
}
