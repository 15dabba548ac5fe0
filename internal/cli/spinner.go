package cli

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// spinner animates a status line on uiOut while a blocking startup step
// runs. It is replaced by a success or error line when the step ends.
type spinner struct {
	message string
	done    chan struct{}
	stopped chan struct{}
	once    sync.Once
}

// startSpinner shows message until the spinner is stopped or ctx ends.
func startSpinner(ctx context.Context, message string) *spinner {
	s := &spinner{message: message, done: make(chan struct{}), stopped: make(chan struct{})}
	go s.run(ctx)
	return s
}

func (s *spinner) run(ctx context.Context) {
	defer close(s.stopped)
	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for i := 0; ; i++ {
		select {
		case <-ctx.Done():
			return
		case <-s.done:
			return
		case <-ticker.C:
			frame := spinnerFrames[i%len(spinnerFrames)]
			fmt.Fprintf(uiOut, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.message))
		}
	}
}

// stop ends the animation and clears the line. Later calls do nothing.
func (s *spinner) stop() {
	s.once.Do(func() {
		close(s.done)
		<-s.stopped
		fmt.Fprintf(uiOut, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
	})
}

func (s *spinner) succeed(format string, args ...any) {
	s.stop()
	printSuccess(format, args...)
}

func (s *spinner) fail(format string, args ...any) {
	s.stop()
	printError(format, args...)
}
