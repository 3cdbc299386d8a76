package cli

import (
	"errors"
	"flag"
	"fmt"

	"github.com/tasuku43/wsdeps/internal/domain/workspace"
)

func runList(env cmdEnv, args []string) error {
	fs, helpFlag := newCommandFlags("ls", env.out, printListHelp)
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
		printListHelp(env.out)
		return nil
	}
	if len(rest) != 0 {
		return fmt.Errorf("usage: wsdeps ls [--json]")
	}

	packages, err := workspace.Search(env.rootDir)
	if err != nil {
		return err
	}
	if jsonFlag {
		return writeJSON(env.out, toRecords(env.rootDir, packages))
	}
	writePackageListText(env.out, env.rootDir, packages)
	return nil
}
