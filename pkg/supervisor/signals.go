package supervisor

import (
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sys/unix"
)

// TerminationSignals are forwarded to the running cycle and end the loop
var TerminationSignals = []os.Signal{unix.SIGINT, unix.SIGQUIT, unix.SIGTERM}

// Notify forwards termination signals received by this process to s until
// stop is called. Forwarding failures other than a vanished process group
// are passed to onError.
func Notify(s *State, onError func(error)) (stop func()) {
	ch := make(chan os.Signal, len(TerminationSignals))
	quit := make(chan struct{})
	signal.Notify(ch, TerminationSignals...)

	go func() {
		for {
			select {
			case <-quit:
				return
			case sig := <-ch:
				ssig, ok := sig.(syscall.Signal)
				if !ok {
					continue
				}
				if err := s.Forward(ssig); err != nil && onError != nil {
					onError(err)
				}
			}
		}
	}()

	return func() {
		signal.Stop(ch)
		close(quit)
	}
}

// DieOnQuit makes a SIGQUIT end this process with the status a shell
// reports for a death by that signal, rather than the runtime's goroutine
// dump. The rest of the process group is signalled by whoever sent it.
func DieOnQuit() (stop func()) {
	ch := make(chan os.Signal, 1)
	quit := make(chan struct{})
	signal.Notify(ch, unix.SIGQUIT)

	go func() {
		select {
		case <-quit:
		case <-ch:
			os.Exit(128 + int(unix.SIGQUIT))
		}
	}()

	return func() {
		signal.Stop(ch)
		close(quit)
	}
}
