package scanner

import (
	"sync"

	"github.com/fieldscan/scancore/internal/imaging"
)

// Intake is a single-slot "keep only latest" mailbox, grounded on the
// pack's frame-bus DropOld subscriber (a sync.Cond-guarded latest-frame
// holder): drop frames, never queue, latency over completeness. Submit
// always succeeds and overwrites whatever frame was waiting; Take
// blocks until a frame is available or the Intake is closed.
type Intake struct {
	mu      sync.Mutex
	cond    *sync.Cond
	pending *imaging.Frame
	dropped uint64
	closed  bool
}

// NewIntake creates an empty mailbox.
func NewIntake() *Intake {
	in := &Intake{}
	in.cond = sync.NewCond(&in.mu)
	return in
}

// Submit stores f as the pending frame, replacing and counting as
// dropped any frame that was waiting and never picked up.
func (in *Intake) Submit(f imaging.Frame) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.closed {
		return
	}
	if in.pending != nil {
		in.dropped++
	}
	in.pending = &f
	in.cond.Broadcast()
}

// Take blocks until a frame is available or the Intake is closed, in
// which case ok is false.
func (in *Intake) Take() (f imaging.Frame, ok bool) {
	in.mu.Lock()
	defer in.mu.Unlock()
	for in.pending == nil && !in.closed {
		in.cond.Wait()
	}
	if in.pending == nil {
		return imaging.Frame{}, false
	}
	out := *in.pending
	in.pending = nil
	return out, true
}

// TryTake returns the pending frame without blocking.
func (in *Intake) TryTake() (f imaging.Frame, ok bool) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.pending == nil {
		return imaging.Frame{}, false
	}
	out := *in.pending
	in.pending = nil
	return out, true
}

// Dropped returns the number of frames overwritten before being taken.
func (in *Intake) Dropped() uint64 {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.dropped
}

// Close unblocks any pending Take call; subsequent Submits are no-ops.
func (in *Intake) Close() {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.closed = true
	in.cond.Broadcast()
}
