package display

import "sync"

// Buffer is an in-memory Surface for hosts that pull the current output.
type Buffer struct {
	mu  sync.Mutex
	cur *Output
	gen int
}

func NewBuffer() *Buffer { return &Buffer{} }

func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cur = nil
	b.gen++
}

func (b *Buffer) Render(out Output) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cur = &out
	b.gen++
	return nil
}

// Current returns the visible output, if any.
func (b *Buffer) Current() (Output, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cur == nil {
		return Output{}, false
	}
	return *b.cur, true
}

// Generation increments on every Clear and Render.
func (b *Buffer) Generation() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.gen
}
