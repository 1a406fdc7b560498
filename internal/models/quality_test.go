package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeQualityScore(t *testing.T) {
	base := func() *SegmentRecord {
		return &SegmentRecord{
			NarrationID:        "P01_01_0",
			ActionPresence:     1,
			CameraMotion:       5,
			Lighting:           5,
			Focus:              5,
			ActionCompleteness: 5,
			ObjectPresence:     5,
		}
	}

	t.Run("absent action scores exactly zero", func(t *testing.T) {
		rec := base()
		rec.ActionPresence = 0
		assert.Equal(t, 0.0, ComputeQualityScore(rec))
	})

	t.Run("all dimensions five scores one", func(t *testing.T) {
		assert.InDelta(t, 1.0, ComputeQualityScore(base()), 1e-12)
	})

	t.Run("all dimensions one scores zero", func(t *testing.T) {
		rec := base()
		rec.CameraMotion = 1
		rec.Lighting = 1
		rec.Focus = 1
		rec.ActionCompleteness = 1
		rec.ObjectPresence = 1
		assert.InDelta(t, 0.0, ComputeQualityScore(rec), 1e-12)
	})

	t.Run("all dimensions zero scores zero", func(t *testing.T) {
		rec := base()
		rec.CameraMotion = 0
		rec.Lighting = 0
		rec.Focus = 0
		rec.ActionCompleteness = 0
		rec.ObjectPresence = 0
		assert.Equal(t, 0.0, ComputeQualityScore(rec))
	})

	t.Run("zero dimensions are excluded, not counted", func(t *testing.T) {
		rec := base()
		rec.CameraMotion = 0
		// Harmonic mean keeps the full dimension count as numerator:
		// 5 / (4 * 1/5) = 6.25, normalized (6.25-1)/4.
		assert.InDelta(t, (6.25-1.0)/4.0, ComputeQualityScore(rec), 1e-12)
	})

	t.Run("mixed dimensions", func(t *testing.T) {
		rec := base()
		rec.CameraMotion = 1
		rec.Lighting = 2
		rec.Focus = 3
		rec.ActionCompleteness = 4
		rec.ObjectPresence = 5
		sum := 1.0 + 1.0/2 + 1.0/3 + 1.0/4 + 1.0/5
		want := (5.0/sum - 1.0) / 4.0
		assert.InDelta(t, want, ComputeQualityScore(rec), 1e-12)
	})

	t.Run("score stays in unit interval for ordinal dimensions", func(t *testing.T) {
		for camera := 1; camera <= 5; camera++ {
			for focus := 1; focus <= 5; focus++ {
				rec := base()
				rec.CameraMotion = camera
				rec.Focus = focus
				score := ComputeQualityScore(rec)
				assert.GreaterOrEqual(t, score, 0.0)
				assert.LessOrEqual(t, score, 1.0)
			}
		}
	})
}
