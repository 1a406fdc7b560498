package plan

import "fmt"

// Sequence hands out derived segment IDs. Each source narration_id owns a
// private zero-based counter shared by every loop that derives segments
// from it, so all IDs minted for one source are disjoint.
type Sequence struct {
	counters map[string]int
}

// NewSequence creates an empty sequence generator
func NewSequence() *Sequence {
	return &Sequence{counters: make(map[string]int)}
}

// Next mints the next segment ID for a source narration_id
func (s *Sequence) Next(narrationID string) string {
	i := s.counters[narrationID]
	s.counters[narrationID] = i + 1
	return fmt.Sprintf("%s_%d", narrationID, i)
}
