package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerTick = 80 * time.Millisecond

// batchSpinner animates batch progress on one terminal line: the puzzle
// being solved and how many of the batch have been started.
type batchSpinner struct {
	w     io.Writer
	total int

	mu      sync.Mutex
	current int
	puzzle  string
	width   int // widest line drawn, for clearing

	ctx      context.Context
	cancel   context.CancelFunc
	stopOnce sync.Once
	stopped  chan struct{}
}

// newBatchSpinner returns a spinner for a batch of total puzzles. It stops
// drawing when ctx is done.
func newBatchSpinner(ctx context.Context, w io.Writer, total int) *batchSpinner {
	ctx, cancel := context.WithCancel(ctx)
	return &batchSpinner{
		w:       w,
		total:   total,
		ctx:     ctx,
		cancel:  cancel,
		stopped: make(chan struct{}),
	}
}

// Start draws frames until Stop or cancellation.
func (s *batchSpinner) Start() {
	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(spinnerTick)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.draw(spinnerFrames[i%len(spinnerFrames)])
			}
		}
	}()
}

// Advance moves on to the named puzzle.
func (s *batchSpinner) Advance(puzzle string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current++
	s.puzzle = puzzle
}

// message is the text next to the frame. Callers hold s.mu.
func (s *batchSpinner) message() string {
	if s.current == 0 {
		return fmt.Sprintf("Solving %d %s...", s.total, plural(s.total, "puzzle", "puzzles"))
	}
	return fmt.Sprintf("Solving %s (%d/%d)...", s.puzzle, s.current, s.total)
}

func (s *batchSpinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg := s.message()
	s.width = max(s.width, len(msg)+2)
	fmt.Fprintf(s.w, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(msg))
}

// Stop ends the animation and clears the line. Calling it again is a no-op.
func (s *batchSpinner) Stop() {
	s.stopOnce.Do(func() {
		s.cancel()
		<-s.stopped

		s.mu.Lock()
		defer s.mu.Unlock()
		if s.width > 0 {
			fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", s.width))
		}
	})
}

// Cancelled reports whether the spinner has stopped.
func (s *batchSpinner) Cancelled() bool {
	return s.ctx.Err() != nil
}

// isTerminal reports whether w is a terminal. Batch progress is only drawn
// on one, since solver logs share stderr.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
