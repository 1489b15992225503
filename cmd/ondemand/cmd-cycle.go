package main

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/thijzert/ondemand/pkg/supervisor"
)

// cycleCommand is the hidden subcommand run by each child process
const cycleCommand = "cycle"

func cycle_main(log *logrus.Logger) {
	// SIGINT and SIGTERM keep their default disposition
	supervisor.DieOnQuit()

	var entry logrus.FieldLogger = log
	if id := os.Getenv(supervisor.CycleIDVariable); id != "" {
		entry = log.WithField("cycle", id)
	}

	os.Exit(Config.Cycle(entry).Run(context.Background()))
}
