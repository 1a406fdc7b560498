// Package plan derives the declarative augmentation plan and the augmented
// segment quality table from a source annotation table.
package plan

import (
	"fmt"
	"log"

	"github.com/kt902/dissertation/internal/models"
	"github.com/kt902/dissertation/internal/services/negatives"
)

// Generator turns source segments into plan entries and relabeled quality
// rows. Construction fixes the experiment parameters; Generate is pure with
// respect to its inputs apart from miner randomness.
type Generator struct {
	policy          *Policy
	miner           *negatives.Miner
	fps             float64
	capFrames       int
	negativeSamples int
}

// NewGenerator creates a plan generator. capFrames bounds completeness
// truncation (fps * cap seconds); negativeSamples is the number of donors
// mined per source segment.
func NewGenerator(policy *Policy, miner *negatives.Miner, fps float64, capFrames, negativeSamples int) *Generator {
	return &Generator{
		policy:          policy,
		miner:           miner,
		fps:             fps,
		capFrames:       capFrames,
		negativeSamples: negativeSamples,
	}
}

// Result bundles the two index-aligned outputs of plan generation
type Result struct {
	// Plan holds the machine-executable work items, one per derived segment.
	Plan []*models.PlanEntry

	// Quality holds the human/ML-consumable label table: originals followed
	// by augmented and negative rows, all with computed quality scores.
	Quality []*models.SegmentRecord
}

// Generate derives all augmentation and negative entries for the source
// table. Derived IDs for one source share a single counter across both
// phases, so they are pairwise distinct.
func (g *Generator) Generate(records []*models.SegmentRecord) (*Result, error) {
	seq := NewSequence()

	var planEntries []*models.PlanEntry
	var derived []*models.SegmentRecord

	for _, rec := range records {
		kinds, ok := g.policy.Augmentations(rec)
		if !ok {
			continue
		}

		for _, kind := range kinds {
			entry, row := g.deriveAugmented(rec, kind, seq.Next(rec.NarrationID))
			if err := entry.Validate(); err != nil {
				return nil, err
			}
			planEntries = append(planEntries, entry)
			derived = append(derived, row)
		}
	}

	negativeEntries, negativeRows, err := g.deriveNegatives(records, seq)
	if err != nil {
		return nil, err
	}
	planEntries = append(planEntries, negativeEntries...)
	derived = append(derived, negativeRows...)

	// The quality table is originals plus everything derived; the score is
	// computed uniformly over the union.
	quality := make([]*models.SegmentRecord, 0, len(records)+len(derived))
	for _, rec := range records {
		original := *rec
		quality = append(quality, &original)
	}
	quality = append(quality, derived...)
	for _, row := range quality {
		row.QualityScore = models.ComputeQualityScore(row)
	}

	log.Printf("[INFO] Generated %d plan entries (%d augmented, %d negative) from %d source segments",
		len(planEntries), len(planEntries)-len(negativeEntries), len(negativeEntries), len(records))

	return &Result{Plan: planEntries, Quality: quality}, nil
}

// deriveAugmented builds the plan entry and the relabeled quality row for
// one augmentation of one source segment. The quality row is re-based to a
// clip that starts at frame 1, since the augmented segment is materialized
// as its own file.
func (g *Generator) deriveAugmented(rec *models.SegmentRecord, kind models.AugmentType, segmentID string) (*models.PlanEntry, *models.SegmentRecord) {
	frameCount := rec.FrameCount()

	row := *rec
	row.NarrationID = segmentID
	row.VideoID = segmentID
	row.NarrationTimestamp = models.ZeroTimestamp
	row.StartTimestamp = models.ZeroTimestamp
	row.StartFrame = 1
	row.StopFrame = frameCount
	row.StopTimestamp = models.FrameCountToTimestamp(frameCount, g.fps)

	var params models.AugmentParams
	switch kind {
	case models.AugmentDarken:
		row.Lighting = 1
	case models.AugmentOcclusion:
		row.ObjectPresence = 1
	case models.AugmentCompleteness:
		truncated := frameCount / 2
		if truncated > g.capFrames {
			truncated = g.capFrames
		}
		row.ActionCompleteness = 1
		row.StopFrame = truncated
		row.StopTimestamp = models.FrameCountToTimestamp(truncated, g.fps)
		params.FrameCount = truncated
	}

	entry := &models.PlanEntry{
		SegmentID:     segmentID,
		NarrationID:   rec.NarrationID,
		ParticipantID: rec.ParticipantID,
		VideoID:       rec.VideoID,
		StartFrame:    rec.StartFrame,
		StopFrame:     rec.StopFrame,
		Narration:     rec.Narration,
		Type:          kind,
		Params:        params,
	}
	return entry, &row
}

// deriveNegatives mines one batch of mismatched donors per source segment,
// continuing each source's ID counter so negative IDs never collide with
// augmentation IDs.
func (g *Generator) deriveNegatives(records []*models.SegmentRecord, seq *Sequence) ([]*models.PlanEntry, []*models.SegmentRecord, error) {
	var entries []*models.PlanEntry
	var rows []*models.SegmentRecord

	for _, rec := range records {
		donors, err := g.miner.Sample(rec, g.negativeSamples)
		if err != nil {
			return nil, nil, fmt.Errorf("mining negatives: %w", err)
		}

		for _, donor := range donors {
			segmentID := seq.Next(rec.NarrationID)

			entry := &models.PlanEntry{
				SegmentID:     segmentID,
				NarrationID:   rec.NarrationID,
				ParticipantID: donor.ParticipantID,
				VideoID:       donor.VideoID,
				StartFrame:    donor.StartFrame,
				StopFrame:     donor.StopFrame,
				Narration:     donor.Narration,
				Type:          models.AugmentNegative,
				Params:        models.AugmentParams{NegativeNarrationID: donor.NegativeNarrationID},
			}
			if err := entry.Validate(); err != nil {
				return nil, nil, err
			}

			donor.NarrationID = segmentID
			entries = append(entries, entry)
			rows = append(rows, donor)
		}
	}

	return entries, rows, nil
}
