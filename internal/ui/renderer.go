package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/tasuku43/wsdeps/internal/infra/debuglog"
	"github.com/tasuku43/wsdeps/internal/infra/output"
)

type Renderer struct {
	out       io.Writer
	theme     Theme
	useColor  bool
	wrapWidth int
}

func NewRenderer(out io.Writer, theme Theme, useColor bool) *Renderer {
	return &Renderer{
		out:       out,
		theme:     theme,
		useColor:  useColor,
		wrapWidth: currentWrapWidth(),
	}
}

func (r *Renderer) Header(text string) {
	r.writeLine(r.style(text, r.theme.Header))
}

func (r *Renderer) Blank() {
	fmt.Fprintln(r.out)
}

// Section prints a section title and tags subsequent debug log lines with it.
func (r *Renderer) Section(title string) {
	phase := strings.ToLower(strings.TrimSpace(title))
	switch phase {
	case SectionInputs, SectionInfo, SectionSteps, SectionResult:
		debuglog.SetPhase(phase)
	default:
		debuglog.SetPhase("none")
	}
	r.writeLine(r.style(title, r.theme.SectionTitle))
}

func (r *Renderer) Bullet(text string) {
	prefix := output.StepPrefix + " "
	if r.useColor {
		prefix = r.theme.Muted.Render(prefix)
	}
	r.writeWithPrefix(output.Indent+prefix, text)
}

func (r *Renderer) Prompt(text string) {
	prefix := output.StepPrefix + " "
	if r.useColor {
		prefix = r.theme.Accent.Render(output.StepPrefix) + " "
	}
	r.writeWithPrefix(output.Indent+prefix, text)
}

// BulletWithDescription renders "id - description suffix" with the tail muted.
func (r *Renderer) BulletWithDescription(id, description, suffix string) {
	line := id
	if desc := strings.TrimSpace(description); desc != "" {
		line += r.style(" - "+desc, r.theme.Muted)
	}
	if s := strings.TrimSpace(suffix); s != "" {
		line += r.style(" "+s, r.theme.Muted)
	}
	r.Bullet(line)
}

func (r *Renderer) BulletError(text string) {
	prefix := output.StepPrefix + " "
	if r.useColor {
		prefix = r.theme.Error.Render(prefix)
		text = r.theme.Error.Render(text)
	}
	r.writeWithPrefix(output.Indent+prefix, text)
}

func (r *Renderer) BulletWarn(text string) {
	prefix := output.StepPrefix + " "
	if r.useColor {
		prefix = r.theme.Warn.Render(prefix)
		text = r.theme.Warn.Render(text)
	}
	r.writeWithPrefix(output.Indent+prefix, text)
}

func (r *Renderer) BulletSuccess(text string) {
	prefix := output.StepPrefix + " "
	if r.useColor {
		prefix = r.theme.Success.Render(prefix)
	}
	r.writeWithPrefix(output.Indent+prefix, text)
}

func (r *Renderer) Warn(text string) {
	r.writeWithPrefix(output.Indent, r.style(text, r.theme.Warn))
}

func (r *Renderer) TreeLine(prefix, text string) {
	r.writeWithPrefix(output.Indent+prefix+" ", text)
}

func (r *Renderer) TreeLineMuted(prefix, text string) {
	r.treeLineStyled(prefix, text, r.theme.Muted)
}

func (r *Renderer) TreeLineWarn(prefix, text string) {
	r.treeLineStyled(prefix, text, r.theme.Warn)
}

func (r *Renderer) TreeLineError(prefix, text string) {
	r.treeLineStyled(prefix, text, r.theme.Error)
}

func (r *Renderer) StepLogOutput(text string) {
	r.writeWithPrefix(output.LogOutputPrefix(), r.style(text, r.theme.Muted))
}

// Stdout and Stderr print one line of subprocess output. See LineSink for
// streamed chunks.
func (r *Renderer) Stdout(line string) {
	r.StepLogOutput(line)
}

func (r *Renderer) Stderr(line string) {
	r.writeWithPrefix(output.LogOutputPrefix(), r.style(line, r.theme.Warn))
}

func (r *Renderer) treeLineStyled(prefix, text string, style lipgloss.Style) {
	fullPrefix := output.Indent + prefix + " "
	if r.useColor {
		fullPrefix = style.Render(fullPrefix)
		text = style.Render(text)
	}
	r.writeWithPrefix(fullPrefix, text)
}

func (r *Renderer) style(text string, style lipgloss.Style) string {
	if !r.useColor {
		return text
	}
	return style.Render(text)
}

func (r *Renderer) writeWithPrefix(prefix, text string) {
	if r.wrapWidth <= 0 {
		r.writeLine(prefix + text)
		return
	}
	prefixWidth := lipgloss.Width(prefix)
	available := r.wrapWidth - prefixWidth
	if available <= 0 {
		r.writeLine(prefix + text)
		return
	}
	wrapped := ansi.Wrap(text, available, "")
	lines := strings.Split(wrapped, "\n")
	r.writeLine(prefix + lines[0])
	padding := strings.Repeat(" ", prefixWidth)
	for _, line := range lines[1:] {
		r.writeLine(padding + line)
	}
}

func (r *Renderer) writeLine(text string) {
	fmt.Fprintln(r.out, strings.TrimRight(text, "\n"))
}
