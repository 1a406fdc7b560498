package transform

// Truncate drops every frame past MaxFrames, realizing action-completeness
// truncation: the output clip simply ends early. Frames up to and including
// MaxFrames pass through unchanged.
type Truncate struct {
	MaxFrames int
}

// Apply returns the frame unchanged within the limit and nil past it
func (t *Truncate) Apply(frame *Frame, pos Position) (*Frame, error) {
	if pos.Index > t.MaxFrames {
		return nil, nil
	}
	return frame, nil
}
