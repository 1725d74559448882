package scanner

import "sync/atomic"

// Stats is a point-in-time snapshot of a session's running counters,
// grounded on the pack's framebus.Stats() published-counter pattern:
// the counters themselves have no effect on detection behavior, they
// only report on it.
type Stats struct {
	FramesProcessed   uint64
	FramesNoCandidate uint64
	FramesRejected    uint64
	Captures          uint64
}

type sessionStats struct {
	processed   atomic.Uint64
	noCandidate atomic.Uint64
	rejected    atomic.Uint64
	captures    atomic.Uint64
}

func (s *sessionStats) incProcessed()   { s.processed.Add(1) }
func (s *sessionStats) incNoCandidate() { s.noCandidate.Add(1) }
func (s *sessionStats) incRejected()    { s.rejected.Add(1) }
func (s *sessionStats) incCaptured()    { s.captures.Add(1) }

func (s *sessionStats) snapshot() Stats {
	return Stats{
		FramesProcessed:   s.processed.Load(),
		FramesNoCandidate: s.noCandidate.Load(),
		FramesRejected:    s.rejected.Load(),
		Captures:          s.captures.Load(),
	}
}
