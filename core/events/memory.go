package events

import "sync"

// MemoryEmitter retains the most recent events in a bounded ring. The gateway
// uses it to serve a best-effort event feed without an external broker.
type MemoryEmitter struct {
	mu     sync.Mutex
	buf    []Event
	limit  int
	cursor int
	full   bool
}

// NewMemoryEmitter constructs an emitter retaining at most limit events.
func NewMemoryEmitter(limit int) *MemoryEmitter {
	if limit <= 0 {
		limit = 256
	}
	return &MemoryEmitter{buf: make([]Event, limit), limit: limit}
}

// Emit implements the Emitter interface.
func (m *MemoryEmitter) Emit(evt Event) {
	if m == nil || evt == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.buf[m.cursor] = evt
	m.cursor = (m.cursor + 1) % m.limit
	if m.cursor == 0 {
		m.full = true
	}
}

// Recent returns the retained events, oldest first.
func (m *MemoryEmitter) Recent() []Event {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Event, 0, m.limit)
	if m.full {
		out = append(out, m.buf[m.cursor:]...)
	}
	out = append(out, m.buf[:m.cursor]...)
	filtered := out[:0]
	for _, evt := range out {
		if evt != nil {
			filtered = append(filtered, evt)
		}
	}
	return filtered
}
