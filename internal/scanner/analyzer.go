package scanner

import (
	"errors"
	"log"

	"github.com/fieldscan/scancore/internal/imaging"
	"github.com/fieldscan/scancore/internal/render"
	"github.com/fieldscan/scancore/internal/tracker"
)

// DocumentDetected is published once per processed frame that produced
// a smoothed quad: the current DetectedDocument plus a downscaled
// preview bitmap suitable for drawing the live overlay.
type DocumentDetected struct {
	Doc     *DetectedDocument
	Preview imaging.Frame
}

// DocumentCaptured is published when a capture fires, carrying the
// rectified output image.
type DocumentCaptured struct {
	Image imaging.Frame
}

// Analyzer is the streaming adapter: it replaces a callback-setter API
// with two Go channels. Submit accepts frames through a keep-only-latest
// Intake and a caller-driven Run loop performs the actual
// ProcessFrameSmooth call, with no internal goroutine hop for the
// CPU-bound work itself, so callbacks still execute on the caller's
// thread; Run is the thread that plays the role of "caller" here for
// asynchronous producers.
type Analyzer struct {
	session *Session
	intake  *Intake

	detected chan DocumentDetected
	captured chan DocumentCaptured

	debug bool
}

// NewAnalyzer creates an Analyzer wrapping a new Session with cfg (nil
// for defaults). Channel buffers are small and non-blocking from the
// consumer's perspective is not guaranteed; callers that can't keep up
// should drain promptly, since Run blocks on a full captured channel
// only (detected events are dropped, never block, consistent with the
// keep-latest philosophy).
func NewAnalyzer(cfg *tracker.Config) *Analyzer {
	return &Analyzer{
		session:  NewSession(cfg),
		intake:   NewIntake(),
		detected: make(chan DocumentDetected, 4),
		captured: make(chan DocumentCaptured, 4),
	}
}

// Submit hands a frame to the intake mailbox, replacing any
// not-yet-processed frame.
func (a *Analyzer) Submit(f imaging.Frame) {
	a.intake.Submit(f)
}

// Detected returns the channel of per-frame detection events.
func (a *Analyzer) Detected() <-chan DocumentDetected {
	return a.detected
}

// Captured returns the channel of capture events.
func (a *Analyzer) Captured() <-chan DocumentCaptured {
	return a.captured
}

// TriggerManualCapture forwards to the underlying session.
func (a *Analyzer) TriggerManualCapture() {
	a.session.TriggerManualCapture()
}

// UpdateConfig forwards to the underlying session.
func (a *Analyzer) UpdateConfig(cfg *tracker.Config) {
	a.session.UpdateConfig(cfg)
}

// Stats returns the underlying session's running counters.
func (a *Analyzer) Stats() Stats {
	return a.session.Stats()
}

// Stop unblocks Run and causes it to return once its current frame (if
// any) finishes processing.
func (a *Analyzer) Stop() {
	a.intake.Close()
}

// Run drains the intake mailbox on the calling goroutine until Stop is
// called, publishing DocumentDetected and DocumentCaptured events in
// strict frame-arrival order: a capture event, when published, always
// follows the detection event for the same frame.
func (a *Analyzer) Run() {
	for {
		f, ok := a.intake.Take()
		if !ok {
			return
		}

		doc, err := a.session.ProcessFrameSmooth(f)
		if err != nil {
			if a.debug {
				log.Printf("scanner: ProcessFrameSmooth: %v", err)
			}
			// ErrRectificationFailed still carries the smoothed doc:
			// the detection callback fires even though the capture
			// callback does not.
			if !errors.Is(err, ErrRectificationFailed) {
				continue
			}
		}
		if doc == nil {
			continue
		}

		select {
		case a.detected <- DocumentDetected{Doc: doc, Preview: render.Preview(f, render.DefaultPreviewMaxDim)}:
		default:
		}

		if img, ok := a.session.TakeCapture(); ok {
			a.captured <- DocumentCaptured{Image: img}
		}
	}
}
