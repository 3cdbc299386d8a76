package ui

import (
	"strings"
	"sync"
)

// LineSink buffers streamed output chunks and hands complete, non-blank
// lines to a Renderer.
type LineSink struct {
	r      *Renderer
	mu     sync.Mutex
	stdout strings.Builder
	stderr strings.Builder
}

func NewLineSink(r *Renderer) *LineSink {
	return &LineSink{r: r}
}

func (s *LineSink) Stdout(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.feed(&s.stdout, text, s.r.Stdout)
}

func (s *LineSink) Stderr(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.feed(&s.stderr, text, s.r.Stderr)
}

// Flush emits any trailing partial lines.
func (s *LineSink) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()
	emitLine(s.stdout.String(), s.r.Stdout)
	emitLine(s.stderr.String(), s.r.Stderr)
	s.stdout.Reset()
	s.stderr.Reset()
}

func (s *LineSink) feed(buf *strings.Builder, text string, emit func(string)) {
	buf.WriteString(text)
	pending := buf.String()
	idx := strings.LastIndexByte(pending, '\n')
	if idx < 0 {
		return
	}
	for _, line := range strings.Split(pending[:idx], "\n") {
		emitLine(line, emit)
	}
	buf.Reset()
	buf.WriteString(pending[idx+1:])
}

func emitLine(line string, emit func(string)) {
	line = strings.TrimRight(line, "\r")
	if strings.TrimSpace(line) == "" {
		return
	}
	emit(line)
}
