package supervisor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"golang.org/x/sys/unix"
)

type fakeProcess struct {
	pgid   int
	status int
	during func()
}

func (p fakeProcess) Pgid() int { return p.pgid }
func (p fakeProcess) CycleID() string { return fmt.Sprintf("cycle-%d", p.pgid) }

func (p fakeProcess) Wait() (int, error) {
	if p.during != nil {
		p.during()
	}
	return p.status, nil
}

// fakeLauncher hands out processes with increasing pgids and the given
// statuses; after the list runs out every cycle exits 0.
type fakeLauncher struct {
	mu       sync.Mutex
	statuses []int
	launched int
	during   func(n int)
	onLaunch func(n int)
	err      error
}

func (l *fakeLauncher) Launch(ctx context.Context) (Process, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return nil, l.err
	}

	n := l.launched
	l.launched++
	if l.onLaunch != nil {
		l.onLaunch(n)
	}
	p := fakeProcess{pgid: 1000 + n}
	if n < len(l.statuses) {
		p.status = l.statuses[n]
	}
	if l.during != nil {
		p.during = func() { l.during(n) }
	}
	return p, nil
}

func (l *fakeLauncher) Launched() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.launched
}

func repeat(n int) *int {
	return &n
}

func newDriver(l Launcher, s *State, rep *int) *Driver {
	return &Driver{
		Launcher: l,
		State:    s,
		Interval: time.Millisecond,
		Repeat:   rep,
		Log:      quietLog(),
	}
}

func TestRepeatZero(t *testing.T) {
	l := &fakeLauncher{}
	s, _ := recordingState()
	if rc := newDriver(l, s, repeat(0)).Run(context.Background()); rc != 0 {
		t.Errorf("expected exit status 0; got %d", rc)
	}
	if l.Launched() != 1 {
		t.Errorf("expected exactly one cycle; got %d", l.Launched())
	}
}

func TestRepeatCount(t *testing.T) {
	trepeat(t, 2, 3)
	trepeat(t, 5, 6)
	// A negative count still runs once
	trepeat(t, -3, 1)
}

func trepeat(t *testing.T, rep, exp int) {
	l := &fakeLauncher{statuses: []int{0, 2, 130}}
	s, _ := recordingState()
	if rc := newDriver(l, s, repeat(rep)).Run(context.Background()); rc != 0 {
		t.Errorf("repeat %d: expected exit status 0; got %d", rep, rc)
	}
	if l.Launched() != exp {
		t.Errorf("repeat %d: expected %d cycles; got %d", rep, exp, l.Launched())
	}
}

func TestCycleStatusOne(t *testing.T) {
	l := &fakeLauncher{statuses: []int{0, 1, 0}}
	s, _ := recordingState()
	if rc := newDriver(l, s, nil).Run(context.Background()); rc != 1 {
		t.Errorf("expected exit status 1; got %d", rc)
	}
	if l.Launched() != 2 {
		t.Errorf("expected the loop to stop after the failing cycle; got %d cycles", l.Launched())
	}
}

func TestLaunchFailure(t *testing.T) {
	l := &fakeLauncher{err: errors.New("fork/exec: no such file or directory")}
	s, _ := recordingState()
	if rc := newDriver(l, s, nil).Run(context.Background()); rc != 1 {
		t.Errorf("expected exit status 1; got %d", rc)
	}
}

func TestSignalDuringCycle(t *testing.T) {
	s, k := recordingState()
	l := &fakeLauncher{statuses: []int{128 + int(unix.SIGINT)}}
	l.during = func(n int) {
		s.Forward(unix.SIGINT)
	}

	rc := newDriver(l, s, nil).Run(context.Background())
	if rc != 128+int(unix.SIGINT) {
		t.Errorf("expected exit status %d; got %d", 128+int(unix.SIGINT), rc)
	}
	if l.Launched() != 1 {
		t.Errorf("no cycle should start after the signal; got %d", l.Launched())
	}
	if calls := k.Calls(); len(calls) != 1 || calls[0] != (killCall{1000, unix.SIGINT}) {
		t.Errorf("expected SIGINT forwarded to group 1000; got %v", calls)
	}
}

func TestSignalDuringLaunch(t *testing.T) {
	s, k := recordingState()
	s.SetPgid(999)
	l := &fakeLauncher{}
	l.onLaunch = func(n int) {
		s.Forward(unix.SIGTERM)
	}

	rc := newDriver(l, s, nil).Run(context.Background())
	if rc != 128+int(unix.SIGTERM) {
		t.Errorf("expected exit status %d; got %d", 128+int(unix.SIGTERM), rc)
	}
	if l.Launched() != 1 {
		t.Errorf("expected one cycle; got %d", l.Launched())
	}
	if calls := k.Calls(); len(calls) != 1 || calls[0] != (killCall{1000, unix.SIGTERM}) {
		t.Errorf("expected SIGTERM forwarded to the new group only; got %v", calls)
	}
}

func TestSignalDuringInterval(t *testing.T) {
	s, k := recordingState()
	l := &fakeLauncher{}
	d := newDriver(l, s, nil)
	d.Interval = time.Hour

	stop := Notify(s, nil)
	defer stop()

	result := make(chan int, 1)
	go func() {
		result <- d.Run(context.Background())
	}()

	// Wait for the first cycle to finish, then interrupt the sleep
	deadline := time.Now().Add(5 * time.Second)
	for l.Launched() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	time.Sleep(50 * time.Millisecond)
	if err := unix.Kill(unix.Getpid(), unix.SIGTERM); err != nil {
		t.Fatal(err)
	}

	select {
	case rc := <-result:
		if rc != 128+int(unix.SIGTERM) {
			t.Errorf("expected exit status %d; got %d", 128+int(unix.SIGTERM), rc)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("driver kept sleeping after SIGTERM")
	}

	if l.Launched() != 1 {
		t.Errorf("expected one cycle; got %d", l.Launched())
	}
	calls := waitCalls(k, 1)
	if len(calls) != 1 || calls[0] != (killCall{1000, unix.SIGTERM}) {
		t.Errorf("expected SIGTERM forwarded to the last group (1000); got %v", calls)
	}
}

func TestContextCancel(t *testing.T) {
	s, _ := recordingState()
	d := newDriver(&fakeLauncher{}, s, nil)
	d.Interval = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	if rc := d.Run(ctx); rc != 0 {
		t.Errorf("expected exit status 0; got %d", rc)
	}
}
