// Package timemanager talks to the `tm` time manager: it checks for free
// time and plays a schedule inside a reservation.
package timemanager

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	oderrors "github.com/thijzert/ondemand/internal/plumbing/errors"
	"github.com/thijzert/ondemand/lib/procgroup"
)

// probe is a zero-length schedule; `tm unoccupied` accepts it only if some
// free time exists.
const probe = "0:0:C\n"

// Unoccupied reports whether the time manager has any free interval.
func (c Config) Unoccupied(ctx context.Context) (bool, error) {
	cmd := exec.CommandContext(ctx, c.tm(), "unoccupied")
	cmd.Stdin = strings.NewReader(probe)

	err := cmd.Run()
	if err == nil {
		return true, nil
	}
	if _, ok := err.(*exec.ExitError); ok {
		return false, nil
	}
	return false, oderrors.Runtime(err, "checking for unoccupied time")
}

// PipelineCommand returns the shell command that reserves time for a
// schedule read from stdin, streams the reserved episode through ffmpeg into
// mplayer, and releases the reservation afterwards.
func (c Config) PipelineCommand() string {
	tm := shellQuote(c.tm())
	return fmt.Sprintf("%s unoccupied | %s set - | xargs -i%%%% %s -loglevel quiet -i %%%% -vn -acodec copy pipe:1.ts | %s -vo null -msglevel all=0 -cache %d -af volume=%d -; %s terminate",
		tm, tm,
		shellQuote(c.ffmpeg()),
		shellQuote(c.mplayer()), c.cache(), c.volume(),
		tm)
}

// Play runs the pipeline for one schedule and returns its exit status. The
// pipeline stays in the caller's process group, so signalling that group
// stops playback.
func (c Config) Play(ctx context.Context, schedule string) (int, error) {
	cmd := exec.CommandContext(ctx, "/bin/sh", "-c", c.PipelineCommand())
	cmd.Stdout = os.Stdout

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return 1, oderrors.Runtime(err, "pipeline stdin")
	}

	if err := cmd.Start(); err != nil {
		return 1, oderrors.Runtime(err, "starting pipeline")
	}

	_, werr := io.WriteString(stdin, schedule+"\n")
	stdin.Close()

	err = cmd.Wait()
	if _, ok := err.(*exec.ExitError); err != nil && !ok {
		return 1, oderrors.Runtime(err, "waiting for pipeline")
	}
	if werr != nil && cmd.ProcessState.Success() {
		return 1, oderrors.Runtime(werr, "writing schedule")
	}

	return procgroup.ExitCode(cmd.ProcessState), nil
}

// shellQuote quotes s for /bin/sh unless it consists of safe characters only
func shellQuote(s string) string {
	if s != "" && strings.IndexFunc(s, unsafeShellRune) < 0 {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func unsafeShellRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return false
	case strings.ContainsRune("-_./:=+,@%", r):
		return false
	}
	return true
}
