package metrics

// CPUSample is one cumulative (idle, total) scheduler-time observation
// for a logical CPU.
type CPUSample struct {
	Idle  float64
	Total float64
}

// CoreUsageState carries the previous per-logical-CPU scheduler sample
// across polls so utilization deltas can be computed. It is the only
// state that survives between passes. The polling contract is
// single-threaded: one poll mutates the state at a time.
type CoreUsageState struct {
	prev map[int]CPUSample
}

// NewCoreUsageState returns an empty usage state, as at process start.
func NewCoreUsageState() *CoreUsageState {
	return &CoreUsageState{prev: make(map[int]CPUSample)}
}

// Update records the current sample for a logical CPU and returns the
// utilization percentage over the interval since the previous sample.
// The first observation of a CPU seeds the state and yields 0.
func (s *CoreUsageState) Update(cpu int, sample CPUSample) float64 {
	last, seen := s.prev[cpu]
	s.prev[cpu] = sample

	if !seen {
		return 0
	}
	dIdle := sample.Idle - last.Idle
	dTotal := sample.Total - last.Total
	if dTotal <= 0 {
		return 0
	}
	usage := 100 * (1 - dIdle/dTotal)
	if usage < 0 {
		usage = 0
	}
	if usage > 100 {
		usage = 100
	}
	return usage
}

// Seen reports whether a logical CPU has been observed before.
func (s *CoreUsageState) Seen(cpu int) bool {
	_, ok := s.prev[cpu]
	return ok
}
