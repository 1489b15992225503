package catalog

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"
	oderrors "github.com/thijzert/ondemand/internal/plumbing/errors"
)

// A Config wraps options for invoking the catalog tool
type Config struct {
	// Path to the catalog tool (`nhk_radio_ondemand.py`)
	ToolPath string
}

func (c Config) tool() string {
	if c.ToolPath != "" {
		return c.ToolPath
	}
	return "nhk_radio_ondemand.py"
}

// A Tool lists episodes by running the external catalog program
type Tool struct {
	Config Config
	Log    logrus.FieldLogger
}

// List runs the catalog tool and parses its output. An empty detail lists
// the full catalog; otherwise it is passed as the `-d` option (see Detail).
// Malformed lines are logged and skipped.
func (t *Tool) List(ctx context.Context, detail string) ([]Record, error) {
	args := []string{}
	if detail != "" {
		args = append(args, "-d", detail)
	}

	cmd := exec.CommandContext(ctx, t.Config.tool(), args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, oderrors.Runtime(err, "catalog tool")
	}
	if err := cmd.Start(); err != nil {
		return nil, oderrors.Runtime(err, "catalog tool")
	}

	var rv []Record
	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		r, err := ParseRecord(scanner.Text())
		if err != nil {
			t.logger().WithError(err).Warn("skipping catalog line")
			continue
		}
		rv = append(rv, r)
	}
	scanErr := scanner.Err()
	if scanErr != nil {
		// Keep the tool from blocking on a full pipe
		io.Copy(io.Discard, stdout)
	}

	if err := cmd.Wait(); err != nil {
		msg := "catalog tool " + strings.Join(cmd.Args, " ")
		if s := strings.TrimSpace(stderr.String()); s != "" {
			msg += " (" + s + ")"
		}
		return nil, oderrors.Runtime(err, msg)
	}
	if scanErr != nil {
		return nil, oderrors.Runtime(scanErr, "reading catalog")
	}

	return rv, nil
}

func (t *Tool) logger() logrus.FieldLogger {
	if t.Log == nil {
		return logrus.StandardLogger()
	}
	return t.Log
}
