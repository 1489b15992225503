// Package supervisor runs cycles in child processes, one at a time, and
// repeats them until the configured count runs out or a termination signal
// arrives.
package supervisor

import (
	"context"
	"time"

	humanize "github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
)

// DefaultInterval is the pause between two cycles
const DefaultInterval = 30 * time.Second

// A Process is a running cycle that leads its own process group
type Process interface {
	Pgid() int
	CycleID() string
	Wait() (int, error)
}

// A Launcher starts a new cycle
type Launcher interface {
	Launch(ctx context.Context) (Process, error)
}

// A Driver repeatedly launches cycles and waits for them
type Driver struct {
	Launcher Launcher
	State    *State
	Interval time.Duration

	// Number of additional cycles after the first one; nil repeats forever
	Repeat *int

	Log logrus.FieldLogger
}

// Run loops until done and returns the program's exit status: 0 when the
// repeat count is exhausted, 1 when a cycle fails, 128+n after signal n.
func (d *Driver) Run(ctx context.Context) int {
	d.Log.Info("[START]")

	var remaining int
	if d.Repeat != nil {
		remaining = *d.Repeat
	}

	for !d.State.Terminating() {
		rc, err := d.execute(ctx)
		if err != nil {
			d.Log.WithError(err).Error("cycle could not be run")
			return 1
		}
		if rc == 1 {
			return 1
		}

		if d.State.Terminating() {
			break
		}

		if d.Repeat != nil {
			remaining--
			if remaining < 0 {
				break
			}
		}

		interval := d.interval()
		d.Log.WithField("next", humanize.Time(time.Now().Add(interval))).Infof("[INTERVAL] %dsec", int(interval/time.Second))
		if !d.sleep(ctx, interval) {
			break
		}
	}

	if d.State.Terminating() {
		sig := d.State.Signal()
		d.Log.Infof("[EXIT] signal %d.", int(sig))
		return 128 + int(sig)
	}

	d.Log.Info("[EXIT] OK")
	return 0
}

func (d *Driver) execute(ctx context.Context) (int, error) {
	// The previous group is gone; a signal during Launch must not go there
	d.State.SetPgid(0)
	p, err := d.Launcher.Launch(ctx)
	if err != nil {
		return 1, err
	}

	d.State.SetPgid(p.Pgid())
	log := d.Log.WithField("cycle", p.CycleID())
	log.Infof("[SPAWN] pgid:%d", p.Pgid())

	if d.State.Terminating() {
		// The signal arrived before the group was known
		if err := d.State.Forward(d.State.Signal()); err != nil {
			log.WithError(err).Warn("could not forward signal")
		}
	}

	rc, err := p.Wait()
	if err != nil {
		return 1, err
	}
	log.Infof("[DIED] rc:%d", rc)

	return rc, nil
}

// sleep waits for the interval. It returns false if it was cut short by a
// termination signal or a cancelled context.
func (d *Driver) sleep(ctx context.Context, interval time.Duration) bool {
	t := time.NewTimer(interval)
	defer t.Stop()

	select {
	case <-t.C:
		return true
	case <-d.State.Done():
		return false
	case <-ctx.Done():
		return false
	}
}

func (d *Driver) interval() time.Duration {
	if d.Interval < 0 {
		return 0
	}
	return d.Interval
}
