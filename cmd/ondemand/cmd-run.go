package main

import (
	"context"
	"flag"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/thijzert/ondemand/pkg/supervisor"
)

func run_main(log *logrus.Logger) {
	exe, err := os.Executable()
	croak(log, err)

	state := supervisor.NewState()
	stop := supervisor.Notify(state, func(err error) {
		log.WithError(err).Fatal("could not forward signal")
	})

	launcher := supervisor.ExecLauncher{
		Path: exe,
		Args: childArgs(os.Args[1:], flag.Args()),
	}

	rc := Config.Driver(launcher, state, log).Run(context.Background())
	stop()
	os.Exit(rc)
}

// childArgs repeats our own options for the child and appends the cycle
// subcommand. rest is what the flag package left as positional arguments.
func childArgs(all, rest []string) []string {
	n := len(all) - len(rest)
	if n < 0 {
		n = 0
	}
	rv := make([]string, 0, n+1)
	rv = append(rv, all[:n]...)
	return append(rv, cycleCommand)
}
