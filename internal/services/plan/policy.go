package plan

import (
	"github.com/kt902/dissertation/internal/models"
)

// Policy decides which augmentation variants a source segment receives.
// This is the per-experiment customization point: construct a Policy with
// different knobs (or a different ShouldAugment predicate) to change the
// derived dataset.
type Policy struct {
	// ShouldAugment gates a source row entirely. Nil means every row is
	// augmented.
	ShouldAugment func(*models.SegmentRecord) bool

	// CompletenessFrameThreshold is the minimum frame count before a
	// truncation variant is worthwhile.
	CompletenessFrameThreshold int

	// HasAnnotations reports whether a spatial annotation file exists for a
	// video; occlusion is only planned when it does.
	HasAnnotations func(videoID string) bool
}

// Augmentations returns the variant kinds to derive from a source segment,
// in generation order. An empty slice with ok=false means the row is
// skipped entirely.
func (p *Policy) Augmentations(rec *models.SegmentRecord) ([]models.AugmentType, bool) {
	if p.ShouldAugment != nil && !p.ShouldAugment(rec) {
		return nil, false
	}

	kinds := []models.AugmentType{models.AugmentDarken}
	if rec.FrameCount() > p.CompletenessFrameThreshold {
		kinds = append(kinds, models.AugmentCompleteness)
	}
	if p.HasAnnotations != nil && p.HasAnnotations(rec.VideoID) {
		kinds = append(kinds, models.AugmentOcclusion)
	}
	return kinds, true
}
