package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func discardLogger() *log.Logger {
	return newLogger(io.Discard, log.InfoLevel)
}

func TestSpinnerStartStop(t *testing.T) {
	s := newSpinner(context.Background(), discardLogger(), "working")
	s.Start()
	time.Sleep(100 * time.Millisecond)

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop hung")
	}
}

func TestSpinnerContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := newSpinner(ctx, discardLogger(), "working")
	s.Start()

	cancel()

	select {
	case <-s.stopped:
	case <-time.After(time.Second):
		t.Fatal("spinner did not stop on context cancellation")
	}
	if !s.Cancelled() {
		t.Error("Cancelled() = false after context cancellation")
	}
}

func TestSpinnerDoubleStop(t *testing.T) {
	s := newSpinner(context.Background(), discardLogger(), "working")
	s.Start()
	s.Stop()
	s.Stop() // must be idempotent
}

func TestSpinnerStopWithSuccessLogsElapsed(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(context.Background(), newLogger(&buf, log.InfoLevel), "exporting")
	s.Start()

	s.StopWithSuccess("Exported png")

	out := buf.String()
	if !strings.Contains(out, "Exported png (") {
		t.Errorf("log output missing message with elapsed time: %q", out)
	}
}
