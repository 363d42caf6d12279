package render

// teardownStack records destructors in acquisition order and runs them in
// exact reverse order. Unwinding is total: every pushed destructor runs
// exactly once, even when construction failed partway through.
type teardownStack struct {
	entries []teardownEntry
}

type teardownEntry struct {
	name    string
	destroy func()
}

func (s *teardownStack) push(name string, destroy func()) {
	s.entries = append(s.entries, teardownEntry{name: name, destroy: destroy})
}

func (s *teardownStack) unwind() {
	for i := len(s.entries) - 1; i >= 0; i-- {
		s.entries[i].destroy()
	}
	s.entries = nil
}
