package shellfie

import (
	"log"
	"sync"
)

// --- Progress Provider ---

// ProgressProvider receives progress events from a [Renderer].
// Implementations must be safe to call from the rendering goroutine.
type ProgressProvider interface {
	// FrameRendered is called after frame index (0-based) of total is written.
	FrameRendered(index, total int)
	// Composed is called once the final output file exists.
	Composed(path string, frames int)
}

// NoopProgress ignores all progress events.
type NoopProgress struct{}

func (NoopProgress) FrameRendered(index, total int)   {}
func (NoopProgress) Composed(path string, frames int) {}

// --- Progress Implementations ---

// LogProgress writes progress events to a logger.
//
// Example:
//
//	logger := log.New(os.Stderr, "shellfie: ", 0)
//	r := shellfie.NewRenderer(shellfie.WithProgress(shellfie.LogProgress{Logger: logger}))
type LogProgress struct {
	Logger *log.Logger
}

func (p LogProgress) FrameRendered(index, total int) {
	p.Logger.Printf("rendered frame %d/%d", index+1, total)
}

func (p LogProgress) Composed(path string, frames int) {
	p.Logger.Printf("composed %d frame(s) into %s", frames, path)
}

// ProgressEvent is one recorded progress event.
type ProgressEvent struct {
	Frame  int    // frame index, -1 for a compose event
	Total  int    // frame count
	Output string // output path of a compose event
}

// MemoryProgress stores progress events in memory for inspection.
type MemoryProgress struct {
	mu     sync.Mutex
	events []ProgressEvent
}

// NewMemoryProgress creates an empty progress recorder.
func NewMemoryProgress() *MemoryProgress {
	return &MemoryProgress{}
}

// FrameRendered records a frame event.
func (m *MemoryProgress) FrameRendered(index, total int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, ProgressEvent{Frame: index, Total: total})
}

// Composed records a compose event.
func (m *MemoryProgress) Composed(path string, frames int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, ProgressEvent{Frame: -1, Total: frames, Output: path})
}

// Events returns a copy of the recorded events.
func (m *MemoryProgress) Events() []ProgressEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ProgressEvent, len(m.events))
	copy(out, m.events)
	return out
}

// Ensure implementations satisfy their interfaces
var (
	_ ProgressProvider = NoopProgress{}
	_ ProgressProvider = LogProgress{}
	_ ProgressProvider = (*MemoryProgress)(nil)
)
