package schedule

import (
	"fmt"
	"strings"
)

// A Schedule is one entry for the time manager: reserve Duration seconds
// under Caption, then play URL.
type Schedule struct {
	Duration int
	Caption  string
	URL      string
}

// String formats the schedule in the time manager's two-line input format
func (s Schedule) String() string {
	// A newline in the caption would break the line format
	caption := strings.NewReplacer("\n", " ", "\r", " ").Replace(s.Caption)
	return fmt.Sprintf("0:%d:%s\n%s", s.Duration, caption, s.URL)
}
