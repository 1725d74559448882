// Package tracker implements the temporal filter and stability tracker
// (C4): exponential smoothing of the detected quad across frames,
// consecutive-stable-frame counting, one-frame dropout tolerance, and
// the cooldown-gated auto-capture decision (including the manual-trigger
// override).
//
// Tracker is private to one scanner session. Config may be swapped
// between frames via an atomic pointer replace; the manual-trigger flag
// is a write-once-read-once atomic bool settable from another goroutine.
package tracker
