package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tasuku43/wsdeps/internal/infra/output"
)

var ErrPromptCanceled = errors.New("prompt canceled")

const pickerVisibleItems = 10

type PackageChoice struct {
	Name    string
	Version string
	Dir     string
}

// PromptPackage lets the user pick one workspace package by name.
func PromptPackage(title string, choices []PackageChoice, theme Theme, useColor bool) (string, error) {
	model := newPackageSelectModel(title, choices, theme, useColor)
	prog := tea.NewProgram(model)
	out, err := prog.Run()
	if err != nil {
		return "", err
	}
	final := out.(packageSelectModel)
	if final.err != nil {
		return "", final.err
	}
	return final.selected, nil
}

type packageSelectModel struct {
	title    string
	choices  []PackageChoice
	theme    Theme
	useColor bool

	input    textinput.Model
	filtered []PackageChoice
	cursor   int
	err      error

	selected string
}

func newPackageSelectModel(title string, choices []PackageChoice, theme Theme, useColor bool) packageSelectModel {
	input := textinput.New()
	input.Prompt = ""
	input.Placeholder = "search"
	input.Focus()
	if useColor {
		input.PlaceholderStyle = theme.Muted
	}
	m := packageSelectModel{
		title:    title,
		choices:  choices,
		theme:    theme,
		useColor: useColor,
		input:    input,
	}
	m.filtered = m.filterChoices()
	return m
}

func (m packageSelectModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m packageSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.err = ErrPromptCanceled
			return m, tea.Quit
		case tea.KeyUp:
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case tea.KeyDown:
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
			}
			return m, nil
		case tea.KeyEnter:
			if len(m.filtered) == 0 {
				return m, nil
			}
			m.selected = m.filtered[m.cursor].Name
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.filtered = m.filterChoices()
	if m.cursor >= len(m.filtered) {
		m.cursor = max(0, len(m.filtered)-1)
	}
	return m, cmd
}

func (m packageSelectModel) View() string {
	var b strings.Builder
	header := m.title
	if m.selected != "" {
		header = fmt.Sprintf("%s (package: %s)", m.title, m.selected)
	}
	if m.useColor {
		header = m.theme.Header.Render(header)
	}
	b.WriteString(header)
	b.WriteString("\n\n")

	title := "Inputs"
	if m.useColor {
		title = m.theme.SectionTitle.Render(title)
	}
	b.WriteString(title)
	b.WriteString("\n")

	prefix := output.StepPrefix
	label := "package"
	if m.useColor {
		prefix = m.theme.Accent.Render(prefix)
		label = m.theme.Accent.Render(label)
	}
	fmt.Fprintf(&b, "%s%s %s: %s\n", output.Indent, prefix, label, m.input.View())
	m.renderChoices(&b)
	return b.String()
}

func (m packageSelectModel) renderChoices(b *strings.Builder) {
	connector := output.LogConnector
	if m.useColor {
		connector = m.theme.Muted.Render(connector)
	}
	if len(m.filtered) == 0 {
		msg := "no matches"
		if m.useColor {
			msg = m.theme.Muted.Render(msg)
		}
		fmt.Fprintf(b, "%s%s %s\n", output.Indent+output.Indent, connector, msg)
		return
	}
	start, end := visibleWindow(len(m.filtered), m.cursor, pickerVisibleItems)
	for i := start; i < end; i++ {
		item := m.filtered[i]
		name := item.Name
		if i == m.cursor {
			if m.useColor {
				name = lipgloss.NewStyle().Bold(true).Render(name)
			} else {
				name = "> " + name
			}
		}
		detail := strings.TrimSpace(item.Version)
		if detail != "" {
			detail = "@" + detail
		}
		if m.useColor {
			detail = m.theme.Muted.Render(detail)
		}
		fmt.Fprintf(b, "%s%s %s%s\n", output.Indent+output.Indent, connector, name, detail)
	}
	if hidden := len(m.filtered) - (end - start); hidden > 0 {
		msg := fmt.Sprintf("(%d more)", hidden)
		if m.useColor {
			msg = m.theme.Muted.Render(msg)
		}
		fmt.Fprintf(b, "%s%s\n", output.LogOutputPrefix(), msg)
	}
}

func (m packageSelectModel) filterChoices() []PackageChoice {
	q := strings.ToLower(strings.TrimSpace(m.input.Value()))
	if q == "" {
		return append([]PackageChoice(nil), m.choices...)
	}
	var out []PackageChoice
	for _, item := range m.choices {
		if strings.Contains(strings.ToLower(item.Name), q) {
			out = append(out, item)
		}
	}
	return out
}

// visibleWindow keeps cursor inside a window of at most size items.
func visibleWindow(total, cursor, size int) (int, int) {
	if total <= size {
		return 0, total
	}
	start := cursor - size/2
	if start < 0 {
		start = 0
	}
	if start+size > total {
		start = total - size
	}
	return start, start + size
}
