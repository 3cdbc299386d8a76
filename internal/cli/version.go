package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"
)

// Set via -ldflags, for example:
//
//	go build -ldflags "-X github.com/tasuku43/wsdeps/internal/cli.version=v0.1.0 -X github.com/tasuku43/wsdeps/internal/cli.commit=abc123"
var (
	version = "dev"
	commit  = ""
	date    = ""
)

func versionLine() string {
	v := strings.TrimSpace(version)
	if v == "" {
		v = "dev"
	}
	parts := []string{"wsdeps " + v}
	for _, extra := range []string{commit, date} {
		if e := strings.TrimSpace(extra); e != "" {
			parts = append(parts, e)
		}
	}
	parts = append(parts, fmt.Sprintf("(%s %s/%s)", runtime.Version(), runtime.GOOS, runtime.GOARCH))
	return strings.Join(parts, " ")
}

func printVersion(w io.Writer) {
	fmt.Fprintln(w, versionLine())
}
