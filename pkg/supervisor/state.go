package supervisor

import (
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/tevino/abool"
	"github.com/thijzert/ondemand/lib/procgroup"
)

// State is shared between the signal handler and the driver loop: the
// process group of the running cycle, and whether (and by which signal)
// the program was asked to terminate.
type State struct {
	pgid        atomic.Int64
	signo       atomic.Int32
	terminating *abool.AtomicBool

	done     chan struct{}
	doneOnce sync.Once

	// Sends a signal to a process group. Defaults to procgroup.Signal.
	kill func(pgid int, sig syscall.Signal) error
}

// NewState returns a State with no child and no pending termination
func NewState() *State {
	return &State{
		terminating: abool.New(),
		done:        make(chan struct{}),
		kill:        procgroup.Signal,
	}
}

// SetPgid records the process group of the cycle that is about to be waited on
func (s *State) SetPgid(pgid int) {
	s.pgid.Store(int64(pgid))
}

// Pgid is the process group of the most recently started cycle, or 0
func (s *State) Pgid() int {
	return int(s.pgid.Load())
}

// Terminating reports whether a termination signal has been received
func (s *State) Terminating() bool {
	return s.terminating.IsSet()
}

// Signal returns the last termination signal received
func (s *State) Signal() syscall.Signal {
	return syscall.Signal(s.signo.Load())
}

// Done is closed once the first termination signal arrives
func (s *State) Done() <-chan struct{} {
	return s.done
}

// Forward marks the program as terminating and passes sig on to the
// current cycle's process group. A group that has already exited is fine.
func (s *State) Forward(sig syscall.Signal) error {
	s.signo.Store(int32(sig))
	s.terminating.Set()
	s.doneOnce.Do(func() { close(s.done) })

	pgid := s.Pgid()
	if pgid == 0 {
		return nil
	}
	return s.kill(pgid, sig)
}
