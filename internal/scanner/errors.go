package scanner

import "errors"

// ErrInvalidFrame is returned when a frame fails basic dimension or
// channel-layout validation before entering the pipeline.
var ErrInvalidFrame = errors.New("scanner: invalid frame")

// ErrRectificationFailed is returned by CropDocument and by
// ProcessFrameSmooth's capture path when the stored quad produces a
// degenerate rectification transform.
var ErrRectificationFailed = errors.New("scanner: rectification failed")

// errValidationRejected is internal: it marks a frame where at least
// one of C2's three strategies found a shape to hand to C3 and C3
// rejected it, as opposed to no strategy finding anything to evaluate
// in the first place. detect folds it out of the (*DetectedDocument,
// error) contract the same way it folds plain "no candidate" into
// (nil, nil) — a rejection is still "nothing detected this frame" to
// any caller — but it drives FramesRejected separately from
// FramesNoCandidate in Stats.
var errValidationRejected = errors.New("scanner: quad rejected by geometry validator")

// ErrInternalImaging wraps an error returned by the preprocessing
// pipeline (C1). ProcessFrame and ProcessFrameSmooth return it to the
// caller without a partial result and without updating the tracker.
// Panics raised inside the imaging libraries are not recovered, and the
// error is not logged here.
var ErrInternalImaging = errors.New("scanner: internal imaging failure")
