package agent

import "sync"

// History is the process-lifetime conversation log. It is safe for
// concurrent use.
type History struct {
	mu    sync.Mutex
	turns []ConversationTurn
}

// NewHistory creates an empty history
func NewHistory() *History {
	return &History{turns: []ConversationTurn{}}
}

// Append adds a turn to the end of the history
func (h *History) Append(turn ConversationTurn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.turns = append(h.turns, turn)
}

// Turns returns a copy of the recorded turns, oldest first
func (h *History) Turns() []ConversationTurn {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]ConversationTurn, len(h.turns))
	copy(out, h.turns)
	return out
}

// Clear drops every recorded turn
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.turns = []ConversationTurn{}
}

// Len returns the number of recorded turns
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.turns)
}
