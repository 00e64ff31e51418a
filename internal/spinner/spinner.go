// Package spinner draws a progress indicator on a terminal while a slow
// comparison (for example a large bootstrap) is running.
package spinner

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"
)

var frames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// DefaultInterval is the time between two frames.
const DefaultInterval = 80 * time.Millisecond

// Spinner animates a message on a writer until stopped.
type Spinner struct {
	w        io.Writer
	message  string
	interval time.Duration

	once    sync.Once
	done    chan struct{}
	cleared chan struct{}
}

// New returns a spinner that draws message on w.
func New(w io.Writer, message string) *Spinner {
	return &Spinner{w: w, message: message, interval: DefaultInterval}
}

// WithInterval overrides the frame interval.
func (s *Spinner) WithInterval(d time.Duration) *Spinner {
	if d > 0 {
		s.interval = d
	}
	return s
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Start begins drawing in the background. Call the returned function to stop
// the spinner and clear the line; it is safe to call more than once.
func (s *Spinner) Start() (stop func()) {
	s.done = make(chan struct{})
	s.cleared = make(chan struct{})
	go s.loop()
	return s.stop
}

func (s *Spinner) loop() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for i := 0; ; i++ {
		select {
		case <-s.done:
			fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", len([]rune(s.message))+2)) //nolint:errcheck
			close(s.cleared)
			return
		case <-ticker.C:
			fmt.Fprintf(s.w, "\r%s %s", frames[i%len(frames)], s.message) //nolint:errcheck
		}
	}
}

func (s *Spinner) stop() {
	s.once.Do(func() { close(s.done) })
	<-s.cleared
}

// StartOnTerminal starts a spinner only when w is a terminal, so redirected
// output stays clean. The returned stop function is never nil.
func StartOnTerminal(w io.Writer, message string) (stop func()) {
	if !IsTerminal(w) {
		return func() {}
	}
	return New(w, message).Start()
}
