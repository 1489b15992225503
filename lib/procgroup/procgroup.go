// Package procgroup runs commands as the leader of a new process group, so
// that one signal reaches the command and everything it spawns.
//
// Usage:
//
//	g, err := procgroup.Start(exec.Command("sh", "-c", "a | b | c"))
//	if err != nil {
//		return err
//	}
//	// elsewhere: g.Signal(unix.SIGTERM)
//	status, err := g.Wait()
//
// Commands passed to Start must not use non-file Stdin, Stdout or Stderr:
// Wait reaps the process itself and never joins os/exec's copy goroutines.
package procgroup

import (
	"os"
	"os/exec"
	"syscall"

	"github.com/pkg/errors"
	oderrors "github.com/thijzert/ondemand/internal/plumbing/errors"
	"golang.org/x/sys/unix"
)

// A Group is a started command leading its own process group
type Group struct {
	cmd *exec.Cmd
}

// Start starts cmd in a new process group whose id equals the command's pid
func Start(cmd *exec.Cmd) (*Group, error) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.Setpgid = true
	cmd.SysProcAttr.Pgid = 0

	if err := cmd.Start(); err != nil {
		return nil, oderrors.Runtime(err, "starting "+cmd.Path)
	}

	return &Group{cmd: cmd}, nil
}

// Pgid returns the process group id, which is also the leader's pid
func (g *Group) Pgid() int {
	return g.cmd.Process.Pid
}

// Signal sends sig to every process in the group
func (g *Group) Signal(sig syscall.Signal) error {
	return Signal(g.Pgid(), sig)
}

// Wait blocks until the group leader terminates and returns its exit status.
func (g *Group) Wait() (int, error) {
	status, err := WaitPid(g.cmd.Process.Pid)
	if err != nil {
		return status, err
	}
	g.cmd.Process.Release()
	return status, nil
}

// Signal sends sig to process group pgid. A group that no longer exists is
// not an error.
func Signal(pgid int, sig syscall.Signal) error {
	if pgid <= 0 {
		return errors.Errorf("invalid process group %d", pgid)
	}
	err := unix.Kill(-pgid, sig)
	if err == nil || err == unix.ESRCH {
		return nil
	}
	return oderrors.Runtime(err, "signalling process group")
}

// WaitPid waits for pid to exit. Interrupted waits are retried. A normal
// exit yields its exit code; death by signal yields 128 + the signal number.
func WaitPid(pid int) (int, error) {
	for {
		var ws unix.WaitStatus
		_, err := unix.Wait4(pid, &ws, 0, nil)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return 1, oderrors.Runtime(err, "waiting for child")
		}

		if ws.Exited() {
			return ws.ExitStatus(), nil
		}
		if ws.Signaled() {
			return 128 + int(ws.Signal()), nil
		}
	}
}

// ExitCode translates the state of a process waited for by os/exec the same
// way WaitPid does.
func ExitCode(ps *os.ProcessState) int {
	if ps == nil {
		return 1
	}
	if ws, ok := ps.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return 128 + int(ws.Signal())
	}
	return ps.ExitCode()
}
