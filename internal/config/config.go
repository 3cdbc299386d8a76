package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const FileName = ".wsdeps.toml"

const (
	defaultCommand  = "pnpm"
	defaultDebounce = 300 * time.Millisecond
)

type Config struct {
	Install Install `toml:"install"`
	Watch   Watch   `toml:"watch"`
}

type Install struct {
	Command   string   `toml:"command"`
	ExtraArgs []string `toml:"extra_args"`
	// FailOnExitCode makes a non-zero pnpm exit an error instead of a warning.
	FailOnExitCode bool `toml:"fail_on_exit_code"`
}

type Watch struct {
	Debounce time.Duration `toml:"debounce"`
}

// ParseError reports an invalid .wsdeps.toml.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func Default() Config {
	cfg := Config{}
	applyDefaults(&cfg)
	return cfg
}

func Path(rootDir string) string {
	return filepath.Join(rootDir, FileName)
}

// Load reads <root>/.wsdeps.toml. A missing file yields Default().
func Load(rootDir string) (Config, error) {
	path := Path(rootDir)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("read %s: %w", FileName, err)
	}
	return Parse(path, data)
}

func Parse(path string, data []byte) (Config, error) {
	var cfg Config
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, &ParseError{Path: path, Err: err}
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		return Config{}, &ParseError{Path: path, Err: fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))}
	}
	applyDefaults(&cfg)
	if err := validate(&cfg); err != nil {
		return Config{}, &ParseError{Path: path, Err: err}
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.Install.Command) == "" {
		cfg.Install.Command = defaultCommand
	}
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = defaultDebounce
	}
}

func validate(cfg *Config) error {
	if cfg.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative: %s", cfg.Watch.Debounce)
	}
	for i, arg := range cfg.Install.ExtraArgs {
		if strings.TrimSpace(arg) == "" {
			return fmt.Errorf("install.extra_args[%d] is empty", i)
		}
	}
	return nil
}
