package debuglog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const logDirName = ".wsdeps"

type loggerState struct {
	mu      sync.Mutex
	enabled atomic.Bool
	logger  *logrus.Logger
	file    *os.File
	runID   string
	path    string
}

var state loggerState
var traceSeq uint64
var phase atomic.Value

// Dir returns the directory debug logs are written to for rootDir.
func Dir(rootDir string) string {
	return filepath.Join(rootDir, logDirName, "logs")
}

// Enable starts writing debug lines to <root>/.wsdeps/logs/debug-YYYYMMDD.log.
func Enable(rootDir string) error {
	if strings.TrimSpace(rootDir) == "" {
		return fmt.Errorf("root directory is required")
	}
	logDir := Dir(rootDir)
	if err := os.MkdirAll(logDir, 0o700); err != nil {
		return fmt.Errorf("create debug log dir: %w", err)
	}
	name := fmt.Sprintf("debug-%s.log", time.Now().Format("20060102"))
	path := filepath.Join(logDir, name)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("open debug log file: %w", err)
	}

	logger := logrus.New()
	logger.SetOutput(file)
	logger.SetLevel(logrus.DebugLevel)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339Nano,
	})

	state.mu.Lock()
	if state.file != nil {
		_ = state.file.Close()
	}
	state.logger = logger
	state.file = file
	state.path = path
	state.runID = uuid.NewString()
	state.enabled.Store(true)
	state.mu.Unlock()
	return nil
}

func Close() error {
	state.mu.Lock()
	defer state.mu.Unlock()
	state.enabled.Store(false)
	var err error
	if state.file != nil {
		err = state.file.Close()
		state.file = nil
	}
	state.logger = nil
	return err
}

func Enabled() bool {
	return state.enabled.Load()
}

// Path returns the active log file, or "" when logging is disabled.
func Path() string {
	state.mu.Lock()
	defer state.mu.Unlock()
	if !state.enabled.Load() {
		return ""
	}
	return state.path
}

func NewTrace(prefix string) string {
	value := atomic.AddUint64(&traceSeq, 1)
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "cmd"
	}
	return fmt.Sprintf("%s:%x", prefix, value)
}

func FormatCommand(name string, args []string) string {
	if len(args) == 0 {
		return strings.TrimSpace(name)
	}
	return strings.TrimSpace(name + " " + strings.Join(args, " "))
}

func SetPhase(value string) {
	phase.Store(strings.TrimSpace(value))
}

func LogCommand(trace, cmd string) {
	logLine(trace, "cmd", logrus.Fields{"cmd": cmd})
}

func LogStdoutLines(trace, text string) {
	logOutputLines(trace, "stdout", text)
}

func LogStderrLines(trace, text string) {
	logOutputLines(trace, "stderr", text)
}

func LogExit(trace string, code int) {
	logLine(trace, "exit", logrus.Fields{"code": code})
}

func LogError(trace string, err error) {
	if err == nil {
		return
	}
	logLine(trace, "error", logrus.Fields{"error": err.Error()})
}

// Logf writes a free form line outside any command trace.
func Logf(format string, args ...any) {
	logLine("", "info", logrus.Fields{"line": fmt.Sprintf(format, args...)})
}

func logOutputLines(trace, kind, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		logLine(trace, kind, logrus.Fields{"line": line})
	}
}

func logLine(trace, kind string, fields logrus.Fields) {
	if !Enabled() {
		return
	}
	trace = strings.TrimSpace(trace)
	if trace == "" {
		trace = "none"
	}
	current, _ := phase.Load().(string)
	if current == "" {
		current = "none"
	}
	state.mu.Lock()
	defer state.mu.Unlock()
	if state.logger == nil {
		return
	}
	entry := state.logger.WithFields(logrus.Fields{
		"run":   state.runID,
		"pid":   os.Getpid(),
		"trace": trace,
		"phase": current,
	})
	if len(fields) > 0 {
		entry = entry.WithFields(fields)
	}
	entry.Debug(kind)
}
