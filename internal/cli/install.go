package cli

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/tasuku43/wsdeps/internal/infra/debuglog"
	"github.com/tasuku43/wsdeps/internal/infra/pnpmcmd"
	"github.com/tasuku43/wsdeps/internal/ui"
)

func runInstall(env cmdEnv, args []string) error {
	fs, helpFlag := newCommandFlags("install", env.out, printInstallHelp)
	var strict bool
	var filters stringSliceFlag
	fs.BoolVar(&strict, "strict", false, "fail when pnpm exits non-zero")
	fs.Var(&filters, "filter", "pass --filter to pnpm")
	rest, err := parseInterspersed(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if *helpFlag {
		printInstallHelp(env.out)
		return nil
	}

	extraArgs := append([]string(nil), env.cfg.Install.ExtraArgs...)
	for _, filter := range filters {
		extraArgs = append(extraArgs, "--filter", filter)
	}
	extraArgs = append(extraArgs, rest...)

	r := newRenderer(env.out)
	binary := env.cfg.Install.Command
	r.Section("Steps")
	r.Bullet(strings.Join(append([]string{binary, "install"}, extraArgs...), " "))

	sink := ui.NewLineSink(r)
	result, err := pnpmcmd.Install(env.ctx, extraArgs, pnpmcmd.Options{
		Dir:            env.rootDir,
		Binary:         binary,
		Sink:           sink,
		FailOnExitCode: strict || env.cfg.Install.FailOnExitCode,
	})
	sink.Flush()
	if err != nil {
		return err
	}

	r.Blank()
	r.Section("Result")
	if result.ExitCode != 0 {
		debuglog.Logf("install exited with code %d", result.ExitCode)
		r.BulletWarn(fmt.Sprintf("pnpm install exited with code %d", result.ExitCode))
		renderTreeLines(r, []string{"rerun with --strict to treat this as an error"}, treeLineMuted)
		return nil
	}
	r.BulletSuccess("pnpm install finished")
	return nil
}
