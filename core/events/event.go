package events

// Event represents a structured state change emitted by the marketplace.
type Event interface {
	EventType() string
}

// Emitter broadcasts events to downstream subscribers (e.g. RPC, indexers).
type Emitter interface {
	Emit(Event)
}

// NoopEmitter is a helper that satisfies the Emitter interface while discarding
// all events. It is useful when a component wants to optionally expose events.
type NoopEmitter struct{}

// Emit implements the Emitter interface.
func (NoopEmitter) Emit(Event) {}

// Attributed is the canonical attribute-bag event payload used across the
// marketplace modules.
type Attributed struct {
	Type       string
	Attributes map[string]string
}

// EventType implements the Event interface.
func (e *Attributed) EventType() string {
	if e == nil {
		return ""
	}
	return e.Type
}
