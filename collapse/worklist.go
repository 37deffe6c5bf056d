package collapse

// worklist is a FIFO queue of coordinates pending re-evaluation.
// A coordinate is pending at most once at a time.
type worklist[C comparable] struct {
	items   []C
	head    int
	pending map[C]struct{}
}

func newWorklist[C comparable](capacity int) *worklist[C] {
	return &worklist[C]{
		items:   make([]C, 0, capacity),
		pending: make(map[C]struct{}, capacity),
	}
}

// push queues c unless it is already pending.
func (w *worklist[C]) push(c C) {
	if _, ok := w.pending[c]; ok {
		return
	}
	w.pending[c] = struct{}{}
	w.items = append(w.items, c)
}

// pop removes and returns the oldest pending coordinate.
func (w *worklist[C]) pop() (C, bool) {
	var zero C
	if w.head == len(w.items) {
		// drained: reuse the backing array
		w.items = w.items[:0]
		w.head = 0
		return zero, false
	}
	c := w.items[w.head]
	w.items[w.head] = zero
	w.head++
	delete(w.pending, c)
	return c, true
}

