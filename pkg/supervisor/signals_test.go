package supervisor

import (
	"bytes"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/thijzert/ondemand/lib/procgroup"
	"golang.org/x/sys/unix"
)

const quitHelperVariable = "ONDEMAND_TEST_QUIT_HELPER"

// Runs in a child copy of the test binary: installs the handler and sends
// itself SIGQUIT
func quitHelper() {
	DieOnQuit()
	unix.Kill(unix.Getpid(), unix.SIGQUIT)
	time.Sleep(10 * time.Second)
	os.Exit(0)
}

func TestDieOnQuit(t *testing.T) {
	if os.Getenv(quitHelperVariable) == "1" {
		quitHelper()
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestDieOnQuit$")
	cmd.Env = append(os.Environ(), quitHelperVariable+"=1")
	out, _ := cmd.CombinedOutput()

	if rc := procgroup.ExitCode(cmd.ProcessState); rc != 128+int(unix.SIGQUIT) {
		t.Errorf("expected exit status %d; got %d (output %q)", 128+int(unix.SIGQUIT), rc, out)
	}
	if bytes.Contains(out, []byte("goroutine ")) {
		t.Errorf("expected no goroutine dump; got %q", out)
	}
}
