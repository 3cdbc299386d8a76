package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrintCommandHelp_KnownCommands(t *testing.T) {
	cases := map[string]string{
		"ls":       "Usage: wsdeps ls",
		"refs":     "Usage: wsdeps refs",
		"versions": "Usage: wsdeps versions",
		"install":  "Usage: wsdeps install",
		"doctor":   "Usage: wsdeps doctor",
		"watch":    "Usage: wsdeps watch",
	}
	for cmd, want := range cases {
		t.Run(cmd, func(t *testing.T) {
			var buf bytes.Buffer
			if ok := printCommandHelp(cmd, &buf); !ok {
				t.Fatalf("expected ok=true")
			}
			if !strings.Contains(buf.String(), want) {
				t.Fatalf("expected %q, got:\n%s", want, buf.String())
			}
		})
	}
}

func TestPrintCommandHelp_Unknown(t *testing.T) {
	var buf bytes.Buffer
	if ok := printCommandHelp("apply", &buf); ok {
		t.Fatalf("expected ok=false")
	}
}

func TestPrintGlobalHelpListsCommands(t *testing.T) {
	var buf bytes.Buffer
	printGlobalHelp(&buf)
	for _, cmd := range []string{"ls", "refs", "versions", "install", "doctor", "watch"} {
		if !strings.Contains(buf.String(), "  "+cmd) {
			t.Fatalf("expected %s in global help:\n%s", cmd, buf.String())
		}
	}
}

func TestIsHelpArg(t *testing.T) {
	for _, arg := range []string{"-h", "--help", "help", " help "} {
		if !isHelpArg(arg) {
			t.Fatalf("isHelpArg(%q) = false", arg)
		}
	}
	if isHelpArg("ls") {
		t.Fatalf("isHelpArg(ls) = true")
	}
}
