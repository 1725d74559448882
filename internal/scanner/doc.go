// Package scanner is the frame analyzer glue: it wires the
// preprocessor, quad extractor, geometry validator, stability tracker,
// and rectifier into one per-session pipeline and exposes both a
// synchronous call-per-frame API (Session.ProcessFrame) and a
// channel-based streaming adapter (Analyzer) for callers that want
// detection and capture events delivered asynchronously.
package scanner
