package tracker

import (
	"sync/atomic"

	"github.com/fieldscan/scancore/internal/geom"
)

// State is the tracker's private, per-session state. It lives for the
// lifetime of one scanner session and is touched only from the frame
// processing thread.
type State struct {
	LastSmoothed      *geom.Quad
	StableFrameCount  uint32
	LastCaptureTimeMs uint64
	HasCaptured       bool
	droppedOnce       bool
}

// Outcome is the result of feeding one frame's candidate quad (or lack
// thereof) through the tracker.
type Outcome struct {
	Smoothed         *geom.Quad
	StableFrameCount uint32
	Captured         bool
}

// Tracker implements C4. Config is stored behind an atomic pointer so a
// config swap takes effect no later than the next frame without tearing
// within a single frame's processing. The manual-trigger flag is a
// write-once-read-once atomic bool settable from another goroutine.
type Tracker struct {
	cfg           atomic.Pointer[Config]
	manualTrigger atomic.Bool
	state         State
}

// New creates a Tracker with the given starting configuration.
func New(cfg *Config) *Tracker {
	t := &Tracker{}
	t.cfg.Store(cfg)
	return t
}

// UpdateConfig atomically replaces the active configuration. The swap is
// visible no later than the next call to Update.
func (t *Tracker) UpdateConfig(cfg *Config) {
	t.cfg.Store(cfg)
}

// Config returns the currently active configuration.
func (t *Tracker) Config() *Config {
	return t.cfg.Load()
}

// TriggerManualCapture sets the manual-trigger flag. Safe to call from a
// goroutine other than the one calling Update.
func (t *Tracker) TriggerManualCapture() {
	t.manualTrigger.Store(true)
}

// State returns a copy of the tracker's current state, for diagnostics
// and tests.
func (t *Tracker) State() State {
	return t.state
}

// Reset clears all tracker state, as if the session had just started.
func (t *Tracker) Reset() {
	t.state = State{}
	t.manualTrigger.Store(false)
}

// Update feeds one frame's validated candidate quad (nil if the frame
// produced no candidate) through the smoothing, stability, dropout, and
// auto-capture logic of C4. nowMs is the caller's monotonic wall-clock
// reading for this frame, in milliseconds.
func (t *Tracker) Update(candidate *geom.Quad, nowMs uint64) Outcome {
	cfg := t.cfg.Load()
	manual := t.manualTrigger.Swap(false)

	if candidate == nil {
		t.handleDropout()
	} else {
		t.handleObservation(*candidate, cfg)
	}

	cooldownElapsed := !t.state.HasCaptured || nowMs-t.state.LastCaptureTimeMs >= cfg.PostCaptureCooldownMs

	captured := false
	if manual {
		captured = true
	} else if cfg.AutoCapture &&
		t.state.StableFrameCount >= cfg.RequiredStableFrames &&
		cooldownElapsed {
		captured = true
	}

	if captured {
		t.state.LastCaptureTimeMs = nowMs
		t.state.HasCaptured = true
		t.state.StableFrameCount = 0
	}

	return Outcome{
		Smoothed:         t.state.LastSmoothed,
		StableFrameCount: t.state.StableFrameCount,
		Captured:         captured,
	}
}

// handleDropout implements the "loss of detection" rule: the first
// consecutive dropout keeps last_smoothed around for one more frame; a
// second consecutive dropout clears it and returns the tracker to
// SEEKING.
func (t *Tracker) handleDropout() {
	t.state.StableFrameCount = 0
	if t.state.LastSmoothed != nil && !t.state.droppedOnce {
		t.state.droppedOnce = true
		return
	}
	t.state.LastSmoothed = nil
	t.state.droppedOnce = false
}

// handleObservation implements smoothing and the stability check for a
// frame that produced a valid candidate quad.
func (t *Tracker) handleObservation(candidate geom.Quad, cfg *Config) {
	t.state.droppedOnce = false

	if t.state.LastSmoothed == nil {
		smoothed := candidate
		t.state.LastSmoothed = &smoothed
		t.state.StableFrameCount = 1
		return
	}

	prev := *t.state.LastSmoothed
	alpha := float64(cfg.SmoothingAlpha)

	stable := true
	var smoothed geom.Quad
	for i := 0; i < 4; i++ {
		if geom.Distance(candidate[i], prev[i]) > float64(cfg.MinPolygonDistance) {
			stable = false
		}
		smoothed[i] = geom.Point{
			X: alpha*candidate[i].X + (1-alpha)*prev[i].X,
			Y: alpha*candidate[i].Y + (1-alpha)*prev[i].Y,
		}
	}

	if stable {
		t.state.StableFrameCount++
	} else {
		t.state.StableFrameCount = 0
	}

	t.state.LastSmoothed = &smoothed
}
