package host

// FrameID identifies a pending frame callback. Zero is never issued.
type FrameID uint64

type FrameFunc func(t float64)

type frameReq struct {
	id FrameID
	fn FrameFunc
}

// Scheduler is a requestAnimationFrame-style callback queue. Hosts call
// RunFrame once per display refresh; callbacks requested while a frame
// is running are deferred to the next one.
type Scheduler struct {
	next    FrameID
	pending []*frameReq
	running []*frameReq
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

func (s *Scheduler) RequestFrame(fn FrameFunc) FrameID {
	s.next++
	s.pending = append(s.pending, &frameReq{id: s.next, fn: fn})
	return s.next
}

// CancelFrame drops a pending callback. Unknown or already-run ids are ignored.
func (s *Scheduler) CancelFrame(id FrameID) {
	for i, r := range s.pending {
		if r.id == id {
			s.pending = append(s.pending[:i:i], s.pending[i+1:]...)
			return
		}
	}
	// Cancelled from inside a running frame, before its turn came.
	for _, r := range s.running {
		if r.id == id {
			r.fn = nil
		}
	}
}

func (s *Scheduler) Pending() int {
	return len(s.pending)
}

// RunFrame invokes every callback queued before the call with timestamp t
// (milliseconds since the host started) and returns how many ran.
func (s *Scheduler) RunFrame(t float64) int {
	s.running = s.pending
	s.pending = nil
	n := 0
	for _, r := range s.running {
		if r.fn == nil {
			continue
		}
		fn := r.fn
		r.fn = nil
		fn(t)
		n++
	}
	s.running = nil
	return n
}
