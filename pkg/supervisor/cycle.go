package supervisor

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/thijzert/ondemand/pkg/schedule"
)

// A SlotChecker reports whether the time manager has free time
type SlotChecker interface {
	Unoccupied(ctx context.Context) (bool, error)
}

// A Composer resolves the next episode into a schedule
type Composer interface {
	Compose(ctx context.Context) (schedule.Schedule, bool, error)
}

// A Player reserves time for a schedule and plays it, returning the exit
// status of the playback pipeline
type Player interface {
	Play(ctx context.Context, schedule string) (int, error)
}

// A Cycle is the work done inside one child process: check for free time,
// pick an episode, play it.
type Cycle struct {
	Slots    SlotChecker
	Composer Composer
	Player   Player
	Log      logrus.FieldLogger
}

// Run performs the cycle and returns the exit status for the child process.
// Skipping (no free time, no episode) is status 0; any error is status 1.
func (c *Cycle) Run(ctx context.Context) (status int) {
	defer func() {
		if r := recover(); r != nil {
			c.Log.WithError(errors.Errorf("panic: %v", r)).Error("cycle failed")
			status = 1
		}
	}()

	status, err := c.run(ctx)
	if err != nil {
		c.Log.WithError(err).Error("cycle failed")
		return 1
	}
	return status
}

func (c *Cycle) run(ctx context.Context) (int, error) {
	free, err := c.Slots.Unoccupied(ctx)
	if err != nil {
		return 1, err
	}
	if !free {
		c.Log.Info("No unoccupied sched found, skip.")
		return 0, nil
	}

	sched, ok, err := c.Composer.Compose(ctx)
	if err != nil {
		return 1, err
	}
	if !ok {
		c.Log.Info("No story found, skip.")
		return 0, nil
	}

	return c.Player.Play(ctx, sched.String())
}
