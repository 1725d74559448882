package scanner

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fieldscan/scancore/internal/geom"
	"github.com/fieldscan/scancore/internal/imaging"
	"github.com/fieldscan/scancore/internal/quad"
	"github.com/fieldscan/scancore/internal/rectify"
	"github.com/fieldscan/scancore/internal/render"
	"github.com/fieldscan/scancore/internal/tracker"
)

// DetectedDocument is the quadrilateral a frame produced (raw from
// ProcessFrame, smoothed from ProcessFrameSmooth), the frame's
// dimensions, a confidence score presently always 1.0, and the
// wall-clock timestamp of the frame.
type DetectedDocument struct {
	Quad        geom.Quad
	FrameWidth  uint32
	FrameHeight uint32
	Confidence  float32
	TimestampMs uint64
}

// Session is one scanner session: one camera stream's worth of frame
// processing state. It is not safe for concurrent calls to
// ProcessFrame/ProcessFrameSmooth from more than one goroutine; a session
// is single-threaded per stream. UpdateConfig and TriggerManualCapture
// may be called from another goroutine.
type Session struct {
	id       string
	pipeline *imaging.Pipeline
	tracker  *tracker.Tracker
	stats    sessionStats

	lastCapture *imaging.Frame
}

// NewSession creates a Session with the given starting configuration.
// A nil cfg uses tracker.DefaultConfig().
func NewSession(cfg *tracker.Config) *Session {
	if cfg == nil {
		cfg = tracker.DefaultConfig()
	}
	return &Session{
		id:       uuid.NewString(),
		pipeline: imaging.NewPipeline(imaging.DefaultPipelineConfig()),
		tracker:  tracker.New(cfg),
	}
}

// ID returns the session's unique identifier.
func (s *Session) ID() string {
	return s.id
}

// UpdateConfig atomically swaps the session's tracker configuration,
// effective no later than the next ProcessFrame/ProcessFrameSmooth call.
func (s *Session) UpdateConfig(cfg *tracker.Config) {
	s.tracker.UpdateConfig(cfg)
}

// TriggerManualCapture requests a capture on the next
// ProcessFrameSmooth call regardless of stability or cooldown.
func (s *Session) TriggerManualCapture() {
	s.tracker.TriggerManualCapture()
}

// Stats returns a snapshot of the session's running counters.
func (s *Session) Stats() Stats {
	return s.stats.snapshot()
}

// TakeCapture returns the most recently rectified captured image, if
// any capture has fired since the last call, and clears it.
func (s *Session) TakeCapture() (imaging.Frame, bool) {
	if s.lastCapture == nil {
		return imaging.Frame{}, false
	}
	f := *s.lastCapture
	s.lastCapture = nil
	return f, true
}

// ProcessFrame runs C1, C2, and C3 on f and returns the current frame's
// raw validated quad, with no temporal smoothing or capture side
// effects. It fires on every frame.
func (s *Session) ProcessFrame(f imaging.Frame) (*DetectedDocument, error) {
	q, err := s.detect(f)
	s.stats.incProcessed()
	if err != nil {
		if errors.Is(err, errValidationRejected) {
			s.stats.incRejected()
			return nil, nil
		}
		return nil, err
	}
	if q == nil {
		s.stats.incNoCandidate()
		return nil, nil
	}
	return &DetectedDocument{
		Quad:        *q,
		FrameWidth:  uint32(f.Width),
		FrameHeight: uint32(f.Height),
		Confidence:  1.0,
		TimestampMs: nowMs(),
	}, nil
}

// ProcessFrameSmooth runs the full pipeline: C1 through C3 as
// ProcessFrame does, then feeds the result through C4 for smoothing,
// stability counting, and the cooldown-gated auto-capture decision. If
// a capture fires, it rectifies the frame through C5 and stores the
// result for retrieval via TakeCapture.
func (s *Session) ProcessFrameSmooth(f imaging.Frame) (*DetectedDocument, error) {
	q, err := s.detect(f)
	s.stats.incProcessed()
	if err != nil {
		if !errors.Is(err, errValidationRejected) {
			return nil, err
		}
		s.stats.incRejected()
	} else if q == nil {
		s.stats.incNoCandidate()
	}

	now := nowMs()
	outcome := s.tracker.Update(q, now)
	if outcome.Smoothed == nil {
		return nil, nil
	}

	doc := &DetectedDocument{
		Quad:        *outcome.Smoothed,
		FrameWidth:  uint32(f.Width),
		FrameHeight: uint32(f.Height),
		Confidence:  1.0,
		TimestampMs: now,
	}

	if outcome.Captured {
		cropped, err := rectify.Rectify(f, *outcome.Smoothed)
		if err != nil {
			return doc, ErrRectificationFailed
		}
		s.lastCapture = &cropped
		s.stats.incCaptured()
	}

	return doc, nil
}

// detect runs the preprocessing and quad-extraction stages common to
// both ProcessFrame and ProcessFrameSmooth. A nil, nil return means the
// frame produced no candidate; that is not an error.
func (s *Session) detect(f imaging.Frame) (*geom.Quad, error) {
	if err := f.Validate(); err != nil {
		return nil, ErrInvalidFrame
	}

	edges, err := s.pipeline.Run(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternalImaging, err)
	}

	cfg := s.tracker.Config()
	params := quad.DefaultParams(float64(f.Width), float64(f.Height))
	params.MinContourArea = cfg.MinContourArea
	params.MinFrameAreaPercent = cfg.MinFrameAreaPercent

	res, err := quad.Extract(edges, params)
	if err != nil {
		if errors.Is(err, quad.ErrRejected) {
			return nil, errValidationRejected
		}
		if errors.Is(err, quad.ErrNoCandidate) {
			return nil, nil
		}
		return nil, err
	}
	return &res.Quad, nil
}

func nowMs() uint64 {
	return uint64(time.Now().UnixMilli())
}

// CropDocument rectifies f through q (C5) and returns the axis-aligned
// crop, independent of any Session.
func CropDocument(f imaging.Frame, q geom.Quad) (imaging.Frame, error) {
	out, err := rectify.Rectify(f, q)
	if err != nil {
		return imaging.Frame{}, ErrRectificationFailed
	}
	return out, nil
}

// DrawPolygonOverlay renders q's stroke and translucent fill onto a
// copy of f. It is a pure rendering function with no detection side
// effects.
func DrawPolygonOverlay(f imaging.Frame, q geom.Quad, opts render.OverlayOptions) (imaging.Frame, error) {
	return render.DrawPolygonOverlay(f, q, opts)
}
