package scanner

import (
	"testing"
	"time"

	"github.com/fieldscan/scancore/internal/geom"
)

func TestAnalyzerRunStopsCleanly(t *testing.T) {
	a := NewAnalyzer(nil)

	runDone := make(chan struct{})
	go func() {
		a.Run()
		close(runDone)
	}()

	a.Submit(blankFrame(200, 200))
	time.Sleep(20 * time.Millisecond)
	a.Stop()

	select {
	case <-runDone:
	case <-time.After(time.Second):
		t.Fatal("Analyzer.Run did not return after Stop")
	}
}

func TestAnalyzerTriggerManualCaptureForwardsToSession(t *testing.T) {
	a := NewAnalyzer(nil)
	a.TriggerManualCapture()
	// No observable effect without a detected quad to capture; this
	// exercises the forwarding path without asserting on detection.
	stats := a.Stats()
	if stats.FramesProcessed != 0 {
		t.Fatalf("got FramesProcessed %d, want 0 before any frame is processed", stats.FramesProcessed)
	}
}

// TestAnalyzerPublishesDetectedOnRectificationFailure reproduces the
// documented behavior of a degenerate smoothed quad at capture time: the
// detection callback still fires with the smoothed quad even though
// rectification fails and no capture callback is published.
func TestAnalyzerPublishesDetectedOnRectificationFailure(t *testing.T) {
	a := NewAnalyzer(nil)

	degenerate := geom.Quad{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 10}}
	a.session.tracker.Update(&degenerate, 0)
	a.session.tracker.TriggerManualCapture()

	runDone := make(chan struct{})
	go func() {
		a.Run()
		close(runDone)
	}()

	a.Submit(blankFrame(200, 200))

	select {
	case ev := <-a.Detected():
		if ev.Doc == nil {
			t.Fatal("expected a non-nil DetectedDocument despite rectification failure")
		}
		if ev.Doc.Quad != degenerate {
			t.Fatalf("got quad %+v, want the primed degenerate quad %+v", ev.Doc.Quad, degenerate)
		}
	case <-time.After(time.Second):
		t.Fatal("expected a DocumentDetected event despite rectification failure")
	}

	select {
	case ev := <-a.Captured():
		t.Fatalf("expected no DocumentCaptured event after a rectification failure, got %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}

	a.Stop()
	select {
	case <-runDone:
	case <-time.After(time.Second):
		t.Fatal("Analyzer.Run did not return after Stop")
	}
}
