package cli

import (
	"errors"
	"flag"
	"io"
	"strings"
)

type stringSliceFlag []string

func (s *stringSliceFlag) String() string {
	return strings.Join(*s, ",")
}

func (s *stringSliceFlag) Set(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return errors.New("value must not be empty")
	}
	*s = append(*s, value)
	return nil
}

// newCommandFlags returns a flag set wired to print help for -h/--help.
func newCommandFlags(name string, out io.Writer, help func(io.Writer)) (*flag.FlagSet, *bool) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)
	fs.Usage = func() {
		help(out)
	}
	helpFlag := fs.Bool("help", false, "show help")
	fs.BoolVar(helpFlag, "h", false, "show help")
	return fs, helpFlag
}

// parseInterspersed parses flags that may appear before or after positional
// arguments. Everything after "--" is positional.
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		rest := fs.Args()
		if len(rest) == 0 {
			return positional, nil
		}
		if consumedTerminator(args, rest) {
			return append(positional, rest...), nil
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}
}

func consumedTerminator(args, rest []string) bool {
	idx := len(args) - len(rest) - 1
	return idx >= 0 && args[idx] == "--"
}
