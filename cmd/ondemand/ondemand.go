package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/thijzert/go-rcfile"
	"github.com/thijzert/ondemand"
	"github.com/thijzert/ondemand/internal/plumbing"
	"github.com/thijzert/ondemand/pkg/supervisor"
)

var Config ondemand.Config

var (
	intervalSeconds int
	repeatCount     int
)

func init() {
	// Episode selection
	flag.StringVar(&Config.SiteID, "s", "", "Only play episodes from this `siteid`")
	flag.StringVar(&Config.CornerID, "c", "", "Only play episodes from this `cornerid`")
	flag.StringVar(&Config.FileID, "f", "", "Play the episode with this `fileid`")
	flag.BoolVar(&Config.Random, "r", false, "Pick episodes at random")
	flag.StringVar(&Config.Query, "q", "", "Only play episodes whose title contains this `text`")

	// Repetition
	flag.IntVar(&intervalSeconds, "i", int(supervisor.DefaultInterval/time.Second), "Pause between two runs (`seconds`)")
	flag.IntVar(&repeatCount, "R", 0, "Number of times to repeat (default: forever)")

	flag.BoolVar(&Config.Verbose, "v", false, "Verbose logging")

	// External programs
	flag.StringVar(&Config.Catalog.ToolPath, "tools.catalog", "", "Path to the catalog tool (default nhk_radio_ondemand.py)")
	flag.StringVar(&Config.TimeManager.TMPath, "tools.tm", "", "Path to the time manager (default tm)")
	flag.StringVar(&Config.TimeManager.FFmpegPath, "tools.ffmpeg", "", "Path to ffmpeg")
	flag.StringVar(&Config.TimeManager.MPlayerPath, "tools.mplayer", "", "Path to mplayer")
	flag.IntVar(&Config.TimeManager.Volume, "mplayer.volume", 5, "Software volume for playback")
	flag.IntVar(&Config.TimeManager.CacheKB, "mplayer.cache", 256, "Playback cache size in kB")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: %s [options]

Plays the most recent on-demand radio episode in free time reserved with
the time manager, then repeats after an interval. Use the options below to
narrow down which episodes are played.

Requires nhk_radio_ondemand.py, tm, ffmpeg, mplayer and xargs in your PATH.

Options:
`, filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
}

func main() {
	// Parse config file first, and override with anything on the commandline
	rcfile.Parse()
	flag.Parse()

	Config.Interval = time.Duration(intervalSeconds) * time.Second
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "R" {
			Config.Repeat = &repeatCount
		}
	})

	log := plumbing.NewLogger(Config.Verbose)
	croak(log, Config.Validate())

	defer func() {
		if r := recover(); r != nil {
			log.Errorf("panic: %v", r)
			os.Exit(1)
		}
	}()

	args := flag.Args()
	if len(args) == 0 || args[0] == "run" {
		run_main(log)
	} else if args[0] == cycleCommand {
		cycle_main(log)
	} else {
		fmt.Fprintf(os.Stderr, "Unknown subcommand %s.\n", args[0])
		flag.Usage()
		os.Exit(1)
	}
}

func croak(log logrus.FieldLogger, e error) {
	if e != nil {
		log.WithError(e).Fatal("cannot continue")
	}
}
