package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"
)

func TestBatchSpinnerStop(t *testing.T) {
	s := newBatchSpinner(context.Background(), io.Discard, 3)
	s.Start()
	time.Sleep(100 * time.Millisecond)
	s.Stop()
	s.Stop()

	if !s.Cancelled() {
		t.Error("Cancelled() should be true after Stop")
	}
}

func TestBatchSpinnerContextCancel(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	s := newBatchSpinner(ctx, io.Discard, 1)
	s.Start()
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("spinner should stop when its context expires")
	}
	s.Stop()
}

func TestBatchSpinnerMessages(t *testing.T) {
	var buf bytes.Buffer
	s := newBatchSpinner(context.Background(), &buf, 2)
	s.Start()
	time.Sleep(150 * time.Millisecond)
	s.Advance("warmup")
	time.Sleep(150 * time.Millisecond)
	s.Advance("reversed-six")
	time.Sleep(150 * time.Millisecond)
	s.Stop()

	out := buf.String()
	for _, want := range []string{"Solving 2 puzzles...", "Solving warmup (1/2)...", "Solving reversed-six (2/2)..."} {
		if !strings.Contains(out, want) {
			t.Errorf("spinner output missing %q:\n%q", want, out)
		}
	}
	if !strings.HasSuffix(out, "\r") {
		t.Errorf("spinner output = %q, want the line cleared", out)
	}
}

func TestBatchSpinnerStopWithoutFrames(t *testing.T) {
	var buf bytes.Buffer
	s := newBatchSpinner(context.Background(), &buf, 1)
	s.Start()
	s.Stop()

	if buf.Len() != 0 {
		t.Errorf("output = %q, want nothing drawn", buf.String())
	}
}
