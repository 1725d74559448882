package tracker

import (
	"math"
	"testing"

	"github.com/fieldscan/scancore/internal/geom"
)

func rectQuad(x1, y1, x2, y2 float64) geom.Quad {
	return geom.Quad{
		{X: x1, Y: y1},
		{X: x2, Y: y1},
		{X: x2, Y: y2},
		{X: x1, Y: y2},
	}
}

func perturb(q geom.Quad, dx, dy float64) geom.Quad {
	var out geom.Quad
	for i, p := range q {
		out[i] = geom.Point{X: p.X + dx, Y: p.Y + dy}
	}
	return out
}

// TestEMAConverges checks that feeding the exact same observation
// repeatedly converges the smoothed quad to that observation within
// epsilon after ceil(log(eps)/log(1-alpha)) frames.
func TestEMAConverges(t *testing.T) {
	target := rectQuad(200, 100, 800, 900)
	cfg := NewConfig(WithSmoothingAlpha(0.15))
	tr := New(cfg)

	eps := 0.5
	n := int(math.Ceil(math.Log(eps) / math.Log(1-float64(cfg.SmoothingAlpha))))

	var out Outcome
	for i := 0; i < n+5; i++ {
		out = tr.Update(&target, uint64(i*33))
	}

	for i := 0; i < 4; i++ {
		if geom.Distance(out.Smoothed[i], target[i]) > eps {
			t.Fatalf("corner %d did not converge: got %v, want ~%v", i, out.Smoothed[i], target[i])
		}
	}
}

// TestS1CleanStaticDocument verifies that a clean, static document
// reaches the required stable-frame count and auto-captures exactly
// once stability is reached.
func TestS1CleanStaticDocument(t *testing.T) {
	target := rectQuad(200, 100, 800, 900)
	tr := New(DefaultConfig())

	var captureFrame int
	for i := 1; i <= 30; i++ {
		out := tr.Update(&target, uint64(i*33))
		if out.Captured && captureFrame == 0 {
			captureFrame = i
		}
	}

	if captureFrame != 20 {
		t.Fatalf("got capture at frame %d, want frame 20", captureFrame)
	}
}

// TestS2JitteredDocumentStillConverges verifies that per-corner jitter
// small enough to stay under MinPolygonDistance keeps accumulating
// stability and still auto-captures at frame 20, exactly as a perfectly
// static document would.
func TestS2JitteredDocumentStillConverges(t *testing.T) {
	base := rectQuad(200, 100, 800, 900)
	tr := New(DefaultConfig())

	var captureFrame int
	for i := 1; i <= 30; i++ {
		dx := float64(i%3) * 10 // 0, 10, or 20px: well under the 50px threshold
		dy := float64((i+1)%3) * 10
		jittered := perturb(base, dx, dy)
		out := tr.Update(&jittered, uint64(i*33))
		if out.Captured && captureFrame == 0 {
			captureFrame = i
		}
	}

	if captureFrame != 20 {
		t.Fatalf("got capture at frame %d, want frame 20", captureFrame)
	}
}

// TestS3LargeMovementResetsStability verifies that a large jump in the
// candidate quad resets the stability counter and delays capture.
func TestS3LargeMovementResetsStability(t *testing.T) {
	target := rectQuad(200, 100, 800, 900)
	jumped := rectQuad(400, 300, 1000, 1100)
	tr := New(DefaultConfig())

	for i := 1; i <= 10; i++ {
		tr.Update(&target, uint64(i*33))
	}

	out := tr.Update(&jumped, uint64(11*33))
	if out.StableFrameCount != 0 {
		t.Fatalf("expected stable_frame_count to reset to 0 after large jump, got %d", out.StableFrameCount)
	}

	for i := 12; i < 30; i++ {
		out := tr.Update(&jumped, uint64(i*33))
		if out.Captured {
			t.Fatalf("capture fired at frame %d, expected no earlier than frame 30", i)
		}
	}
}

// TestS4CooldownSuppressesSecondCapture verifies that a second capture
// does not fire while still inside the post-capture cooldown window.
func TestS4CooldownSuppressesSecondCapture(t *testing.T) {
	target := rectQuad(200, 100, 800, 900)
	cfg := DefaultConfig()
	tr := New(cfg)

	var firstCaptureMs uint64
	for i := 1; i <= 20; i++ {
		out := tr.Update(&target, uint64(i*33))
		if out.Captured {
			firstCaptureMs = uint64(i * 33)
		}
	}
	if firstCaptureMs == 0 {
		t.Fatal("expected first capture by frame 20")
	}

	// Immediately re-accumulate stability and try to capture again well
	// inside the 2500ms cooldown window.
	secondCaptureFired := false
	for i := 21; i <= 41; i++ {
		out := tr.Update(&target, firstCaptureMs+uint64(i-20)*33)
		if out.Captured {
			secondCaptureFired = true
		}
	}
	if secondCaptureFired {
		t.Fatal("second capture fired before cooldown elapsed")
	}
}

// TestS5ManualTriggerIgnoresStability verifies that a manual trigger
// forces a capture even when the stability window hasn't been reached.
func TestS5ManualTriggerIgnoresStability(t *testing.T) {
	base := rectQuad(200, 100, 800, 900)
	tr := New(DefaultConfig())

	for i := 1; i <= 4; i++ {
		jittered := perturb(base, float64(i*37%97), float64(i*59%97)) // large, non-converging jitter
		tr.Update(&jittered, uint64(i*33))
	}

	tr.TriggerManualCapture()
	jittered := perturb(base, 80, 80)
	out := tr.Update(&jittered, uint64(5*33))

	if !out.Captured {
		t.Fatal("expected manual trigger to force a capture regardless of stability")
	}
}

// TestDropoutTolerance verifies the one-frame dropout tolerance: a
// single frame with no candidate retains last_smoothed, a second
// consecutive one clears it.
func TestDropoutTolerance(t *testing.T) {
	target := rectQuad(200, 100, 800, 900)
	tr := New(DefaultConfig())

	tr.Update(&target, 0)
	out := tr.Update(nil, 33)
	if out.Smoothed == nil {
		t.Fatal("expected last_smoothed to survive a single dropout frame")
	}
	if out.StableFrameCount != 0 {
		t.Fatal("expected stable_frame_count to reset on dropout")
	}

	out = tr.Update(nil, 66)
	if out.Smoothed != nil {
		t.Fatal("expected last_smoothed to clear after a second consecutive dropout")
	}
}

// TestManualTriggerIsWriteOnceReadOnce ensures the flag does not stay
// set across calls to Update.
func TestManualTriggerIsWriteOnceReadOnce(t *testing.T) {
	target := rectQuad(0, 0, 100, 100)
	tr := New(DefaultConfig())
	tr.TriggerManualCapture()

	out := tr.Update(&target, 0)
	if !out.Captured {
		t.Fatal("expected first Update after trigger to capture")
	}

	out = tr.Update(&target, 1)
	if out.Captured {
		t.Fatal("manual trigger should not persist across calls")
	}
}
