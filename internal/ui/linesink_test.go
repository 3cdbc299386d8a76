package ui

import (
	"bytes"
	"testing"

	"github.com/tasuku43/wsdeps/internal/infra/output"
)

func TestLineSinkJoinsPartialChunks(t *testing.T) {
	var buf bytes.Buffer
	sink := NewLineSink(NewRenderer(&buf, DefaultTheme(), false))

	sink.Stdout("Lockfile is up")
	if buf.Len() != 0 {
		t.Fatalf("expected partial line to be buffered, got %q", buf.String())
	}
	sink.Stdout(" to date\r\n\nDone in 1s")
	sink.Stderr("WARN x\n")
	sink.Flush()

	prefix := output.LogOutputPrefix()
	want := prefix + "Lockfile is up to date\n" + prefix + "WARN x\n" + prefix + "Done in 1s\n"
	if buf.String() != want {
		t.Fatalf("output = %q, want %q", buf.String(), want)
	}
}
