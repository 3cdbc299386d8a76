package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/tasuku43/wsdeps/internal/domain/deps"
	"github.com/tasuku43/wsdeps/internal/domain/workspace"
	"github.com/tasuku43/wsdeps/internal/ui"
)

func runRefs(env cmdEnv, args []string) error {
	fs, helpFlag := newCommandFlags("refs", env.out, printRefsHelp)
	var jsonFlag bool
	fs.BoolVar(&jsonFlag, "json", false, "print JSON")
	rest, err := parseInterspersed(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if *helpFlag {
		printRefsHelp(env.out)
		return nil
	}
	if len(rest) > 1 {
		return fmt.Errorf("usage: wsdeps refs [<PACKAGE>] [--json]")
	}

	packages, err := workspace.Search(env.rootDir)
	if err != nil {
		return err
	}

	name := ""
	if len(rest) == 1 {
		name = strings.TrimSpace(rest[0])
	}
	if name == "" {
		if env.noPrompt || !isatty.IsTerminal(os.Stdin.Fd()) {
			return fmt.Errorf("package name is required without an interactive prompt")
		}
		name, err = ui.PromptPackage("wsdeps refs", packageChoices(packages), ui.DefaultTheme(), isTerminalWriter(env.out))
		if err != nil {
			return err
		}
	}

	report, err := deps.References(packages, name)
	if err != nil {
		return err
	}
	if jsonFlag {
		return writeJSON(env.out, refsRecord{
			Dependency: toRecord(env.rootDir, report.Dependency),
			Dependents: toRecords(env.rootDir, report.Dependents),
		})
	}
	writeRefsText(env.out, env.rootDir, report)
	return nil
}

// packageChoices lists each addressable name once, in scan order.
func packageChoices(packages []workspace.Package) []ui.PackageChoice {
	var choices []ui.PackageChoice
	for _, name := range deps.Names(packages) {
		pkg, _ := deps.Find(packages, name)
		choices = append(choices, ui.PackageChoice{
			Name:    name,
			Version: pkg.Version(),
			Dir:     pkg.Dir,
		})
	}
	return choices
}
