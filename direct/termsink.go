package direct

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// TermSink is the default ProgressSink: a single `\r`-rewritten status
// line on a TTY, or one line per event when writing to a
// non-interactive destination (redirected to a file, CI log). Grounded
// on traiproject-same's internal/ui/output.New (NO_COLOR-aware profile
// selection, termenv.NewOutput construction).
type TermSink struct {
	mu    sync.Mutex
	out   *termenv.Output
	tty   bool
	total int
	done  int
}

// NewTermSink wraps w (os.Stdout by default) with a color-profile-aware
// termenv.Output and detects whether it is a terminal.
func NewTermSink(w io.Writer) *TermSink {
	if w == nil {
		w = os.Stdout
	}
	profile := termenv.Ascii
	if os.Getenv("NO_COLOR") == "" {
		profile = termenv.EnvColorProfile()
	}
	out := termenv.NewOutput(w, termenv.WithProfile(profile))

	var isTTY bool
	if f, ok := w.(*os.File); ok {
		isTTY = isatty.IsTerminal(f.Fd())
	}
	return &TermSink{out: out, tty: isTTY}
}

func (s *TermSink) Plan(total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.total = total
}

func (s *TermSink) Started(pc *PendingCommand) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeLine(pc, "running")
}

func (s *TermSink) Finished(pc *PendingCommand, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.done++
	status := "ok"
	if err != nil {
		status = "FAILED"
	}
	s.writeLine(pc, status)
}

func (s *TermSink) writeLine(pc *PendingCommand, status string) {
	desc := pc.Description
	if desc == "" {
		desc = pc.Command
	}
	line := fmt.Sprintf("[%d/%d] %s: %s", s.done, s.total, status, desc)
	if s.tty {
		fmt.Fprint(s.out, "\r\x1b[K"+line)
	} else {
		fmt.Fprintln(s.out, line)
	}
}

func (s *TermSink) Close() error {
	if s.tty {
		fmt.Fprintln(s.out)
	}
	return nil
}
