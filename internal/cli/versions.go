package cli

import (
	"errors"
	"flag"
	"fmt"

	"github.com/tasuku43/wsdeps/internal/domain/deps"
	"github.com/tasuku43/wsdeps/internal/domain/workspace"
)

func runVersions(env cmdEnv, args []string) error {
	fs, helpFlag := newCommandFlags("versions", env.out, printVersionsHelp)
	var jsonFlag bool
	fs.BoolVar(&jsonFlag, "json", false, "print JSON object")
	rest, err := parseInterspersed(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if *helpFlag {
		printVersionsHelp(env.out)
		return nil
	}
	if len(rest) != 0 {
		return fmt.Errorf("usage: wsdeps versions [--json]")
	}

	packages, err := workspace.Search(env.rootDir)
	if err != nil {
		return err
	}
	versions := deps.Versions(packages)
	if jsonFlag {
		return writeJSON(env.out, versions)
	}
	r := newRenderer(env.out)
	r.Header("wsdeps versions")
	r.Blank()
	writeVersionsText(r, versions)
	return nil
}
