package output

import (
	"strings"
	"unicode/utf8"
)

const (
	Indent       = "  "
	StepPrefix   = "•"
	LogConnector = "└─"
	TreeBranch   = "├─"
)

// LogOutputPrefix aligns raw command output under a LogConnector line.
func LogOutputPrefix() string {
	spaces := utf8.RuneCountInString(LogConnector) + 1
	return Indent + Indent + strings.Repeat(" ", spaces)
}

// TreeConnector returns the connector for item i of n.
func TreeConnector(i, n int) string {
	if i == n-1 {
		return LogConnector
	}
	return TreeBranch
}

// SplitLines drops blank lines and normalizes CRLF.
func SplitLines(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	var out []string
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}
