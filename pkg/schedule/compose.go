// Package schedule resolves the configured filters into a single episode and
// turns it into a time manager schedule.
package schedule

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	oderrors "github.com/thijzert/ondemand/internal/plumbing/errors"
	"github.com/thijzert/ondemand/pkg/catalog"
)

// DefaultCourtesy is the pause between two consecutive catalog invocations
const DefaultCourtesy = 100 * time.Millisecond

// A Lister produces catalog records; see catalog.Tool
type Lister interface {
	List(ctx context.Context, detail string) ([]catalog.Record, error)
}

// A Timer computes the play time of an episode; see manifest.Fetcher
type Timer interface {
	Duration(ctx context.Context, masterURL string) (int, error)
}

// A Composer picks one episode matching its filters and builds a Schedule
// for it.
type Composer struct {
	Catalog  Lister
	Manifest Timer

	SiteID   string
	CornerID string
	FileID   string
	Random   bool

	// Optional caption filter applied before every selection step
	Query *catalog.Query

	// Pause between the discovery listing and the detail listing
	Courtesy time.Duration

	Log logrus.FieldLogger
}

// Compose returns the schedule for the selected episode. When no episode
// matches, ok is false and err is nil.
func (c *Composer) Compose(ctx context.Context) (sched Schedule, ok bool, err error) {
	siteID, cornerID := c.SiteID, c.CornerID

	if siteID == "" || cornerID == "" {
		records, err := c.Catalog.List(ctx, "")
		if err != nil {
			return sched, false, oderrors.Runtime(err, "listing catalog")
		}
		records = c.Query.Filter(records)
		records = catalog.BySiteID(records, catalog.Selection{Key: siteID, Random: c.Random})
		r, found := catalog.ByCornerID(records, catalog.Selection{Key: cornerID, Random: c.Random})
		if !found {
			c.logger().Info("No record found.")
			return sched, false, nil
		}
		siteID, cornerID = r.SiteID(), r.CornerID()

		if err := c.pause(ctx); err != nil {
			return sched, false, oderrors.Runtime(err, "composing schedule")
		}
	}

	records, err := c.Catalog.List(ctx, catalog.Detail(siteID, cornerID))
	if err != nil {
		return sched, false, oderrors.Runtime(err, "listing corner "+catalog.Detail(siteID, cornerID))
	}
	records = c.Query.Filter(records)

	r, found := catalog.ByFileID(records, catalog.Selection{Key: c.FileID, Random: c.Random})
	if !found {
		c.logger().Info("No record found.")
		return sched, false, nil
	}

	duration, err := c.Manifest.Duration(ctx, r.URL())
	if err != nil {
		return sched, false, oderrors.Runtime(err, "calculating duration")
	}

	sched = Schedule{
		Duration: duration,
		Caption:  r.Caption(),
		URL:      r.URL(),
	}
	c.logger().Debug(sched.String())

	return sched, true, nil
}

func (c *Composer) pause(ctx context.Context) error {
	if c.Courtesy <= 0 {
		return nil
	}
	t := time.NewTimer(c.Courtesy)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (c *Composer) logger() logrus.FieldLogger {
	if c.Log == nil {
		return logrus.StandardLogger()
	}
	return c.Log
}
