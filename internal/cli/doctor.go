package cli

import (
	"errors"
	"flag"
	"fmt"

	"github.com/tasuku43/wsdeps/internal/ops/doctor"
)

func runDoctor(env cmdEnv, args []string) error {
	fs, helpFlag := newCommandFlags("doctor", env.out, printDoctorHelp)
	var selfOnly bool
	fs.BoolVar(&selfOnly, "self", false, "only check the pnpm binary")
	rest, err := parseInterspersed(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if *helpFlag {
		printDoctorHelp(env.out)
		return nil
	}
	if len(rest) != 0 {
		return fmt.Errorf("usage: wsdeps doctor [--self]")
	}

	self, err := doctor.SelfCheck(env.ctx, env.cfg.Install.Command)
	if err != nil {
		return err
	}
	if selfOnly {
		writeDoctorText(env.out, nil, self)
		return nil
	}
	check, err := doctor.Check(env.rootDir)
	if err != nil {
		return err
	}
	writeDoctorText(env.out, &check, self)
	return nil
}
