package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/tasuku43/wsdeps/internal/ui"
)

func isHelpArg(arg string) bool {
	switch strings.TrimSpace(arg) {
	case "-h", "--help", "help":
		return true
	default:
		return false
	}
}

func printGlobalHelp(w io.Writer) {
	theme, useColor := helpTheme(w)
	fmt.Fprintln(w, "Usage: wsdeps [global flags] <command> [flags] [args]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, helpSectionTitle(theme, useColor, "Commands:"))
	fmt.Fprintln(w, helpCommand(theme, useColor, "ls [--json]", "list workspace packages"))
	fmt.Fprintln(w, helpCommand(theme, useColor, "refs [<PACKAGE>] [--json]", "show packages that depend on a package"))
	fmt.Fprintln(w, helpCommand(theme, useColor, "versions [--json]", "print package name to version map"))
	fmt.Fprintln(w, helpCommand(theme, useColor, "install [--strict] [-- <args>]", "run pnpm install at the workspace root"))
	fmt.Fprintln(w, helpCommand(theme, useColor, "doctor [--self]", "check workspace manifests and pnpm"))
	fmt.Fprintln(w, helpCommand(theme, useColor, "watch", "print versions again when manifests change"))
	fmt.Fprintln(w, helpCommand(theme, useColor, "version", "print wsdeps version"))
	fmt.Fprintln(w, helpCommand(theme, useColor, "help [command]", "show help for a command"))
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, helpSectionTitle(theme, useColor, "Global flags:"))
	fmt.Fprintln(w, helpFlag(theme, useColor, "--root <path>", "override workspace root"))
	fmt.Fprintln(w, helpFlag(theme, useColor, "--no-prompt", "disable interactive prompt"))
	fmt.Fprintln(w, helpFlag(theme, useColor, "--debug", "write debug logs to file"))
	fmt.Fprintln(w, helpFlag(theme, useColor, "--version", "print version"))
	fmt.Fprintln(w, helpFlag(theme, useColor, "--help, -h", "show help"))
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, helpSectionTitle(theme, useColor, "Environment:"))
	fmt.Fprintln(w, helpFlag(theme, useColor, "WSDEPS_ROOT", "workspace root when --root is not set"))
	fmt.Fprintln(w, helpFlag(theme, useColor, "WSDEPS_DEBUG", "same as --debug"))
}

func printCommandHelp(cmd string, w io.Writer) bool {
	switch cmd {
	case "ls":
		printListHelp(w)
	case "refs":
		printRefsHelp(w)
	case "versions":
		printVersionsHelp(w)
	case "install":
		printInstallHelp(w)
	case "doctor":
		printDoctorHelp(w)
	case "watch":
		printWatchHelp(w)
	case "version":
		printVersion(w)
	default:
		return false
	}
	return true
}

func printListHelp(w io.Writer) {
	theme, useColor := helpTheme(w)
	fmt.Fprintln(w, "Usage: wsdeps ls [--json]")
	fmt.Fprintln(w, "  List packages matched by pnpm-workspace.yaml")
	fmt.Fprintln(w, helpFlag(theme, useColor, "--json", "print JSON"))
}

func printRefsHelp(w io.Writer) {
	theme, useColor := helpTheme(w)
	fmt.Fprintln(w, "Usage: wsdeps refs [<PACKAGE>] [--json]")
	fmt.Fprintln(w, "  Show the packages listing PACKAGE in dependencies or devDependencies")
	fmt.Fprintln(w, "  Without PACKAGE a picker is shown (omit --no-prompt)")
	fmt.Fprintln(w, helpFlag(theme, useColor, "--json", "print JSON"))
}

func printVersionsHelp(w io.Writer) {
	theme, useColor := helpTheme(w)
	fmt.Fprintln(w, "Usage: wsdeps versions [--json]")
	fmt.Fprintln(w, "  Print every named package with its version")
	fmt.Fprintln(w, helpFlag(theme, useColor, "--json", "print JSON object"))
}

func printInstallHelp(w io.Writer) {
	theme, useColor := helpTheme(w)
	fmt.Fprintln(w, "Usage: wsdeps install [--strict] [--filter <selector>]... [-- <pnpm args>]")
	fmt.Fprintln(w, "  Run pnpm install at the workspace root and stream its output")
	fmt.Fprintln(w, helpFlag(theme, useColor, "--strict", "fail when pnpm exits non-zero"))
	fmt.Fprintln(w, helpFlag(theme, useColor, "--filter <selector>", "pass --filter to pnpm (repeatable)"))
}

func printDoctorHelp(w io.Writer) {
	theme, useColor := helpTheme(w)
	fmt.Fprintln(w, "Usage: wsdeps doctor [--self]")
	fmt.Fprintln(w, "  Check workspace configuration, manifests and the pnpm binary")
	fmt.Fprintln(w, helpFlag(theme, useColor, "--self", "only check the pnpm binary"))
}

func printWatchHelp(w io.Writer) {
	fmt.Fprintln(w, "Usage: wsdeps watch")
	fmt.Fprintln(w, "  Print versions, then again whenever package.json or pnpm-workspace.yaml changes")
	fmt.Fprintln(w, "  Stop with Ctrl-C")
}

func helpTheme(w io.Writer) (ui.Theme, bool) {
	theme := ui.DefaultTheme()
	if file, ok := w.(*os.File); ok {
		return theme, isatty.IsTerminal(file.Fd())
	}
	return theme, false
}

func helpSectionTitle(theme ui.Theme, useColor bool, title string) string {
	if !useColor {
		return title
	}
	return theme.SectionTitle.Render(title)
}

func helpCommand(theme ui.Theme, useColor bool, name, description string) string {
	if useColor {
		return fmt.Sprintf("  %s  %s", theme.Accent.Render(name), description)
	}
	return fmt.Sprintf("  %-32s %s", name, description)
}

func helpFlag(theme ui.Theme, useColor bool, flag, description string) string {
	if useColor {
		return fmt.Sprintf("  %s  %s", theme.Accent.Render(flag), description)
	}
	return fmt.Sprintf("  %-20s %s", flag, description)
}
