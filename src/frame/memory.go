package frame

import (
	"sync"

	"lifelapse/src/universe"
)

//MemorySink keeps the snapshots in memory
type MemorySink struct {
	mu     sync.Mutex
	frames []universe.Snapshot
}

func (s *MemorySink) WriteFrame(index int, snapshot universe.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index != len(s.frames) {
		return ErrOutOfOrder
	}
	s.frames = append(s.frames, snapshot)
	return nil
}

//Frames returns the frames received so far
func (s *MemorySink) Frames() []universe.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]universe.Snapshot(nil), s.frames...)
}

//Multi passes every frame to all the sinks, stops on the first error
type Multi []universe.FrameSink

func (m Multi) WriteFrame(index int, snapshot universe.Snapshot) error {
	for _, s := range m {
		if err := s.WriteFrame(index, snapshot); err != nil {
			return err
		}
	}
	return nil
}
