package plumbing

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	tc "github.com/thijzert/go-termcolours"
	"golang.org/x/term"
)

// TimestampFormat is the layout used for every log line
const TimestampFormat = "2006-01-02 15:04:05,000"

// LineFormatter writes entries as `prog: timestamp LEVEL: message key=value ...`
type LineFormatter struct {
	Program string
	Colour  bool
}

// Format implements logrus.Formatter
func (f *LineFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer

	level := strings.ToUpper(entry.Level.String())
	if level == "WARNING" {
		level = "WARN"
	}
	if f.Colour {
		level = colourLevel(entry.Level, level)
	}

	fmt.Fprintf(&b, "%s: %s %s: %s", f.Program, entry.Time.Format(TimestampFormat), level, entry.Message)

	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		if k == logrus.ErrorKey {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, entry.Data[k])
	}

	if err, ok := entry.Data[logrus.ErrorKey].(error); ok {
		if entry.Level <= logrus.ErrorLevel {
			// Full trace for anything that ends a cycle or the program
			fmt.Fprintf(&b, "\n%+v", err)
		} else {
			fmt.Fprintf(&b, " error=%q", err.Error())
		}
	}

	b.WriteByte('\n')
	return b.Bytes(), nil
}

func colourLevel(l logrus.Level, s string) string {
	switch l {
	case logrus.DebugLevel, logrus.TraceLevel:
		return tc.Cyan(s)
	case logrus.InfoLevel:
		return tc.Green(s)
	default:
		return tc.Yellow(s)
	}
}

// NewLogger creates the logger shared by the whole program. Output goes to
// stderr; verbose enables debug messages, otherwise only warnings and worse
// are shown.
func NewLogger(verbose bool) *logrus.Logger {
	return newLogger(os.Stderr, term.IsTerminal(int(os.Stderr.Fd())), verbose)
}

func newLogger(w io.Writer, colour bool, verbose bool) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&LineFormatter{
		Program: filepath.Base(os.Args[0]),
		Colour:  colour,
	})
	if verbose {
		l.SetLevel(logrus.DebugLevel)
	} else {
		l.SetLevel(logrus.WarnLevel)
	}
	return l
}
