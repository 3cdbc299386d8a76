package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/tasuku43/wsdeps/internal/cli"
	"github.com/tasuku43/wsdeps/internal/ui"
)

func main() {
	if err := cli.Run(); err != nil {
		if isatty.IsTerminal(os.Stderr.Fd()) {
			renderer := ui.NewRenderer(os.Stderr, ui.DefaultTheme(), true)
			renderer.Blank()
			renderer.BulletError(fmt.Sprintf("error: %s", err.Error()))
		} else {
			fmt.Fprintf(os.Stderr, "wsdeps: %s\n", err)
		}
		os.Exit(1)
	}
}
