package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tasuku43/wsdeps/internal/config"
	"github.com/tasuku43/wsdeps/internal/domain/workspace"
	"github.com/tasuku43/wsdeps/internal/infra/debuglog"
	"github.com/tasuku43/wsdeps/internal/infra/paths"
	"github.com/tasuku43/wsdeps/internal/ui"
)

// cmdEnv carries what every subcommand needs after global flags are parsed.
type cmdEnv struct {
	ctx      context.Context
	rootDir  string
	cfg      config.Config
	out      io.Writer
	noPrompt bool
}

func Run() error {
	return run(context.Background(), os.Args[1:], os.Stdout)
}

func run(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("wsdeps", flag.ContinueOnError)
	var rootFlag string
	var noPrompt bool
	debugFlag := envBool("WSDEPS_DEBUG")
	var helpFlag bool
	var versionFlag bool
	fs.StringVar(&rootFlag, "root", "", "override workspace root")
	fs.BoolVar(&noPrompt, "no-prompt", false, "disable interactive prompt")
	fs.BoolVar(&debugFlag, "debug", debugFlag, "write debug logs to file")
	fs.BoolVar(&versionFlag, "version", false, "print version")
	fs.BoolVar(&helpFlag, "help", false, "show help")
	fs.BoolVar(&helpFlag, "h", false, "show help")
	fs.SetOutput(out)
	fs.Usage = func() {
		printGlobalHelp(out)
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	rest := fs.Args()
	if versionFlag {
		printVersion(out)
		return nil
	}
	if helpFlag {
		if len(rest) > 0 && printCommandHelp(rest[0], out) {
			return nil
		}
		printGlobalHelp(out)
		return nil
	}
	if len(rest) == 0 {
		printGlobalHelp(out)
		return nil
	}
	switch rest[0] {
	case "help":
		if len(rest) > 1 && printCommandHelp(rest[1], out) {
			return nil
		}
		printGlobalHelp(out)
		return nil
	case "version":
		printVersion(out)
		return nil
	}

	rootDir, err := paths.ResolveRoot(rootFlag, workspace.ConfigFileName)
	if err != nil {
		return err
	}
	if _, err := paths.DirExists(rootDir); err != nil {
		return err
	}
	cfg, err := config.Load(rootDir)
	if err != nil {
		return err
	}
	if debugFlag {
		if err := debuglog.Enable(rootDir); err != nil {
			return fmt.Errorf("enable debug log: %w", err)
		}
		defer func() { _ = debuglog.Close() }()
		debuglog.Logf("command: %s root=%s", strings.Join(rest, " "), rootDir)
	}
	ui.SetWrapWidth(ui.WrapWidthFromEnv())

	env := cmdEnv{
		ctx:      ctx,
		rootDir:  rootDir,
		cfg:      cfg,
		out:      out,
		noPrompt: noPrompt,
	}
	switch rest[0] {
	case "ls":
		return runList(env, rest[1:])
	case "refs":
		return runRefs(env, rest[1:])
	case "versions":
		return runVersions(env, rest[1:])
	case "install":
		return runInstall(env, rest[1:])
	case "doctor":
		return runDoctor(env, rest[1:])
	case "watch":
		return runWatch(env, rest[1:])
	default:
		return fmt.Errorf("unknown command: %s", rest[0])
	}
}

func envBool(key string) bool {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return false
	}
	switch strings.ToLower(val) {
	case "0", "false", "no", "off":
		return false
	default:
		return true
	}
}
