// Package telemetry ring-buffers per-step snapshots of a running episode so
// a caller can dump a trace for cross-build parity comparison. It is owned
// and injected by the caller; nothing in internal/physics, internal/control
// or internal/contact touches a file or a network socket.
package telemetry

import (
	"encoding/json"
	"log"
	"sync"
)

// Snapshot is one recorded step or event.
type Snapshot struct {
	Tick       uint64  `json:"tick"`
	ScoreTime  float64 `json:"score_time"`
	Score      float64 `json:"score"`
	Fallen     bool    `json:"fallen"`
	Jumped     bool    `json:"jumped"`
	JumpLanded bool    `json:"jump_landed"`
	GameEnded  bool    `json:"game_ended"`
	Event      string  `json:"event,omitempty"`
}

// Recorder keeps the last maxEntries snapshots. It is safe for concurrent
// use.
type Recorder struct {
	mu         sync.Mutex
	enabled    bool
	entries    []Snapshot
	maxEntries int
	logger     *log.Logger
}

// NewRecorder creates a Recorder holding at most maxEntries snapshots. A
// nil logger falls back to log.Default().
func NewRecorder(maxEntries int, logger *log.Logger) *Recorder {
	if maxEntries <= 0 {
		maxEntries = 200
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Recorder{
		enabled:    true,
		maxEntries: maxEntries,
		logger:     logger,
	}
}

// SetEnabled toggles recording. Disabled recorders drop every Record call
// with no allocation.
func (r *Recorder) SetEnabled(enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enabled = enabled
}

// Record appends a snapshot, evicting the oldest entry once maxEntries is
// exceeded.
func (r *Recorder) Record(s Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.enabled {
		return
	}
	r.entries = append(r.entries, s)
	if len(r.entries) > r.maxEntries {
		r.entries = r.entries[len(r.entries)-r.maxEntries:]
	}
}

// RecordEvent records a snapshot tagged with a named event, e.g. "fallen"
// or "jumpLanded", so a trace consumer can locate the exact tick a
// transition happened.
func (r *Recorder) RecordEvent(s Snapshot, event string) {
	s.Event = event
	r.Record(s)
	r.logger.Printf("[telemetry] %s at tick %d (score=%.2f)", event, s.Tick, s.Score)
}

// Snapshots returns a copy of the currently buffered snapshots, oldest
// first.
func (r *Recorder) Snapshots() []Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Snapshot, len(r.entries))
	copy(out, r.entries)
	return out
}

// DumpJSON marshals the currently buffered snapshots. It never touches the
// filesystem; the caller decides where the bytes go.
func (r *Recorder) DumpJSON() ([]byte, error) {
	return json.Marshal(r.Snapshots())
}

// Reset clears the buffer without disabling recording.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = r.entries[:0]
}
