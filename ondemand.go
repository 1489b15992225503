// Package ondemand plays on-demand radio episodes inside free time reserved
// with the `tm` time manager.
//
// Each cycle runs in its own process group: it checks for free time, picks
// an episode from the catalog, computes its length from the HLS manifest,
// reserves that much time and plays the episode. Cycles repeat on an
// interval until the repeat count runs out or a termination signal arrives.
package ondemand

import (
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/thijzert/ondemand/pkg/catalog"
	"github.com/thijzert/ondemand/pkg/manifest"
	"github.com/thijzert/ondemand/pkg/schedule"
	"github.com/thijzert/ondemand/pkg/supervisor"
	"github.com/thijzert/ondemand/pkg/timemanager"
)

// A Config holds everything one run needs. It is not modified after the
// command line has been parsed.
type Config struct {
	// Episode filters; empty means "any"
	SiteID   string
	CornerID string
	FileID   string

	// Pick randomly instead of taking the first episode
	Random bool

	// Only consider episodes whose caption contains this text
	Query string

	Interval time.Duration

	// Additional cycles after the first; nil repeats forever
	Repeat *int

	Verbose bool

	Catalog     catalog.Config
	TimeManager timemanager.Config
}

// Validate checks the configuration for values that can never work
func (c Config) Validate() error {
	if c.Interval < 0 {
		return errors.Errorf("negative interval %s", c.Interval)
	}
	return nil
}

// Composer returns the schedule composer for the configured filters
func (c Config) Composer(log logrus.FieldLogger) *schedule.Composer {
	return &schedule.Composer{
		Catalog: &catalog.Tool{
			Config: c.Catalog,
			Log:    log,
		},
		Manifest: manifest.Fetcher{
			Client: &http.Client{Timeout: time.Minute},
		},
		SiteID:   c.SiteID,
		CornerID: c.CornerID,
		FileID:   c.FileID,
		Random:   c.Random,
		Query:    catalog.NewQuery(c.Query),
		Courtesy: schedule.DefaultCourtesy,
		Log:      log,
	}
}

// Cycle returns the work performed by one child process
func (c Config) Cycle(log logrus.FieldLogger) *supervisor.Cycle {
	return &supervisor.Cycle{
		Slots:    c.TimeManager,
		Composer: c.Composer(log),
		Player:   c.TimeManager,
		Log:      log,
	}
}

// Driver returns the loop that launches cycles through l
func (c Config) Driver(l supervisor.Launcher, state *supervisor.State, log logrus.FieldLogger) *supervisor.Driver {
	return &supervisor.Driver{
		Launcher: l,
		State:    state,
		Interval: c.Interval,
		Repeat:   c.Repeat,
		Log:      log,
	}
}
