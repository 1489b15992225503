package supervisor

import (
	"context"
	"os"
	"os/exec"

	"github.com/google/uuid"
	"github.com/thijzert/ondemand/lib/procgroup"
)

// CycleIDVariable carries the cycle id from the parent into the child
const CycleIDVariable = "ONDEMAND_CYCLE_ID"

// An ExecLauncher runs each cycle as a separate program, typically this
// binary re-executed with a hidden subcommand.
type ExecLauncher struct {
	Path string
	Args []string
}

type execProcess struct {
	*procgroup.Group
	id string
}

func (p execProcess) CycleID() string {
	return p.id
}

// Launch starts the cycle program in a new process group. Its standard
// streams are those of the current process.
func (l ExecLauncher) Launch(ctx context.Context) (Process, error) {
	id := uuid.New().String()

	cmd := exec.Command(l.Path, l.Args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(), CycleIDVariable+"="+id)

	g, err := procgroup.Start(cmd)
	if err != nil {
		return nil, err
	}
	return execProcess{Group: g, id: id}, nil
}
