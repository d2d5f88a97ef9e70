package editor

import (
	"bytes"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"isoflow/diagram"
)

// DefaultHistoryCapacity bounds History when no capacity is given.
const DefaultHistoryCapacity = 100

// History keeps undo/redo snapshots of the model in a ring buffer. Snapshots
// are msgpack-encoded so they share nothing with the live model.
type History struct {
	states   [][]byte
	start    int // ring index of the oldest snapshot
	size     int // number of snapshots held
	current  int // logical index of the active snapshot, -1 when empty
	capacity int
}

// NewHistory creates a history holding at most capacity snapshots.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultHistoryCapacity
	}
	return &History{
		states:   make([][]byte, capacity),
		current:  -1,
		capacity: capacity,
	}
}

// Save records m as the newest snapshot. Anything that was undone is lost.
func (h *History) Save(m diagram.Model) error {
	data, err := encodeModel(m)
	if err != nil {
		return fmt.Errorf("snapshot model: %w", err)
	}

	// Drop the redo tail.
	for h.size > h.current+1 {
		h.size--
		h.states[h.index(h.size)] = nil
	}
	if h.size == h.capacity {
		h.states[h.start] = nil
		h.start = (h.start + 1) % h.capacity
		h.size--
	}
	h.states[h.index(h.size)] = data
	h.size++
	h.current = h.size - 1
	return nil
}

// CanUndo reports whether an older snapshot exists.
func (h *History) CanUndo() bool {
	return h.current > 0
}

// CanRedo reports whether an undone snapshot can be restored.
func (h *History) CanRedo() bool {
	return h.current >= 0 && h.current < h.size-1
}

// Undo steps back and returns the snapshot made active.
func (h *History) Undo() (diagram.Model, bool, error) {
	if !h.CanUndo() {
		return diagram.Model{}, false, nil
	}
	h.current--
	return h.load()
}

// Redo steps forward and returns the snapshot made active.
func (h *History) Redo() (diagram.Model, bool, error) {
	if !h.CanRedo() {
		return diagram.Model{}, false, nil
	}
	h.current++
	return h.load()
}

// Clear forgets every snapshot.
func (h *History) Clear() {
	for i := range h.states {
		h.states[i] = nil
	}
	h.start, h.size, h.current = 0, 0, -1
}

// Stats returns the 1-based position of the active snapshot and the total held.
func (h *History) Stats() (current, total int) {
	return h.current + 1, h.size
}

func (h *History) index(logical int) int {
	return (h.start + logical) % h.capacity
}

func (h *History) load() (diagram.Model, bool, error) {
	m, err := decodeModel(h.states[h.index(h.current)])
	if err != nil {
		return diagram.Model{}, false, fmt.Errorf("restore snapshot: %w", err)
	}
	return m, true, nil
}

func encodeModel(m diagram.Model) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(&m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeModel(data []byte) (diagram.Model, error) {
	var m diagram.Model
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetCustomStructTag("json")
	err := dec.Decode(&m)
	return m, err
}
