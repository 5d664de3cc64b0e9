package observability

import (
	"context"
	"testing"
	"time"
)

type recordingCanvasHooks struct {
	NoopCanvasHooks
	layoutStarts    int
	layoutCompletes int
}

func (h *recordingCanvasHooks) OnLayoutStart(context.Context, string, int) {
	h.layoutStarts++
}

func (h *recordingCanvasHooks) OnLayoutComplete(context.Context, string, time.Duration, error) {
	h.layoutCompletes++
}

type recordingCacheHooks struct {
	NoopCacheHooks
	hits, misses int
}

func (h *recordingCacheHooks) OnCacheHit(context.Context, string)  { h.hits++ }
func (h *recordingCacheHooks) OnCacheMiss(context.Context, string) { h.misses++ }

func TestDefaultsAreNoop(t *testing.T) {
	Reset()

	// Must not panic and must be non-nil.
	if Canvas() == nil {
		t.Fatal("Canvas() returned nil")
	}
	if Cache() == nil {
		t.Fatal("Cache() returned nil")
	}
	Canvas().OnLayoutStart(context.Background(), "dagre", 3)
	Cache().OnCacheMiss(context.Background(), "layout:abc")
}

func TestSetCanvasHooks(t *testing.T) {
	t.Cleanup(Reset)

	rec := &recordingCanvasHooks{}
	SetCanvasHooks(rec)

	Canvas().OnLayoutStart(context.Background(), "dagre", 3)
	Canvas().OnLayoutComplete(context.Background(), "dagre", time.Millisecond, nil)

	if rec.layoutStarts != 1 || rec.layoutCompletes != 1 {
		t.Errorf("starts=%d completes=%d, want 1, 1", rec.layoutStarts, rec.layoutCompletes)
	}
}

func TestSetCacheHooks(t *testing.T) {
	t.Cleanup(Reset)

	rec := &recordingCacheHooks{}
	SetCacheHooks(rec)

	Cache().OnCacheHit(context.Background(), "k")
	Cache().OnCacheMiss(context.Background(), "k")
	Cache().OnCacheMiss(context.Background(), "k")

	if rec.hits != 1 || rec.misses != 2 {
		t.Errorf("hits=%d misses=%d, want 1, 2", rec.hits, rec.misses)
	}
}

func TestSetNilIgnored(t *testing.T) {
	t.Cleanup(Reset)

	rec := &recordingCanvasHooks{}
	SetCanvasHooks(rec)
	SetCanvasHooks(nil)

	// A nil registration keeps the current hooks instead of clearing them.
	Canvas().OnLayoutStart(context.Background(), "dagre", 1)
	if rec.layoutStarts != 1 {
		t.Error("nil registration replaced active hooks")
	}

	SetCacheHooks(nil)
	Cache().OnCacheSet(context.Background(), "k", 10)
}

func TestReset(t *testing.T) {
	rec := &recordingCanvasHooks{}
	SetCanvasHooks(rec)
	Reset()

	Canvas().OnLayoutStart(context.Background(), "dagre", 1)
	if rec.layoutStarts != 0 {
		t.Error("hooks still registered after Reset")
	}
}
