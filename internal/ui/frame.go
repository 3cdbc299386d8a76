package ui

import (
	"io"
	"strings"
)

const (
	SectionInputs = "inputs"
	SectionInfo   = "info"
	SectionSteps  = "steps"
	SectionResult = "result"
)

// Frame collects lines per section and renders them in a fixed order.
type Frame struct {
	sections map[string][]frameLine
	theme    Theme
	useColor bool
}

type frameLine struct {
	text   string
	prefix string
	kind   frameLineKind
}

type frameLineKind int

const (
	lineBullet frameLineKind = iota
	linePrompt
	lineTree
	lineTreeMuted
)

var frameOrder = []struct {
	key   string
	title string
}{
	{SectionInputs, "Inputs"},
	{SectionInfo, "Info"},
	{SectionSteps, "Steps"},
	{SectionResult, "Result"},
}

func NewFrame(theme Theme, useColor bool) *Frame {
	return &Frame{sections: make(map[string][]frameLine), theme: theme, useColor: useColor}
}

func (f *Frame) Prompt(section, text string) {
	f.add(section, frameLine{text: text, kind: linePrompt})
}

func (f *Frame) Bullet(section, text string) {
	f.add(section, frameLine{text: text, kind: lineBullet})
}

func (f *Frame) Tree(section, prefix, text string) {
	f.add(section, frameLine{text: text, prefix: prefix, kind: lineTree})
}

func (f *Frame) TreeMuted(section, prefix, text string) {
	f.add(section, frameLine{text: text, prefix: prefix, kind: lineTreeMuted})
}

func (f *Frame) Render() string {
	var b strings.Builder
	_, _ = f.WriteTo(&b)
	return b.String()
}

func (f *Frame) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	r := NewRenderer(cw, f.theme, f.useColor)
	first := true
	for _, section := range frameOrder {
		lines := f.sections[section.key]
		if len(lines) == 0 {
			continue
		}
		if !first {
			r.Blank()
		}
		first = false
		r.Section(section.title)
		for _, line := range lines {
			renderLine(r, line)
		}
	}
	return cw.n, cw.err
}

func (f *Frame) add(section string, line frameLine) {
	if strings.TrimSpace(line.text) == "" {
		return
	}
	f.sections[section] = append(f.sections[section], line)
}

type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	if cw.err != nil {
		return 0, cw.err
	}
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	if err != nil {
		cw.err = err
	}
	return n, err
}

func renderLine(r *Renderer, line frameLine) {
	switch line.kind {
	case linePrompt:
		r.Prompt(line.text)
	case lineTree:
		r.TreeLine(line.prefix, line.text)
	case lineTreeMuted:
		r.TreeLineMuted(line.prefix, line.text)
	default:
		r.Bullet(line.text)
	}
}
