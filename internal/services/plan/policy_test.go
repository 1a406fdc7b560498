package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kt902/dissertation/internal/models"
)

func policyRecord(startFrame, stopFrame int) *models.SegmentRecord {
	return &models.SegmentRecord{
		NarrationID: "P01_101_1",
		VideoID:     "P01_101",
		StartFrame:  startFrame,
		StopFrame:   stopFrame,
	}
}

func TestPolicyAugmentations(t *testing.T) {
	tests := []struct {
		name   string
		policy Policy
		rec    *models.SegmentRecord
		want   []models.AugmentType
		wantOK bool
	}{
		{
			name:   "short segment gets darken only",
			policy: Policy{CompletenessFrameThreshold: 120},
			rec:    policyRecord(1, 101),
			want:   []models.AugmentType{models.AugmentDarken},
			wantOK: true,
		},
		{
			name:   "long segment adds completeness",
			policy: Policy{CompletenessFrameThreshold: 120},
			rec:    policyRecord(1, 201),
			want:   []models.AugmentType{models.AugmentDarken, models.AugmentCompleteness},
			wantOK: true,
		},
		{
			name: "annotated video adds occlusion",
			policy: Policy{
				CompletenessFrameThreshold: 120,
				HasAnnotations:             func(videoID string) bool { return videoID == "P01_101" },
			},
			rec:    policyRecord(1, 51),
			want:   []models.AugmentType{models.AugmentDarken, models.AugmentOcclusion},
			wantOK: true,
		},
		{
			name: "predicate can skip a row",
			policy: Policy{
				ShouldAugment: func(*models.SegmentRecord) bool { return false },
			},
			rec:    policyRecord(1, 201),
			wantOK: false,
		},
		{
			name:   "threshold is strict",
			policy: Policy{CompletenessFrameThreshold: 120},
			rec:    policyRecord(1, 121), // exactly 120 frames
			want:   []models.AugmentType{models.AugmentDarken},
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.policy.Augmentations(tt.rec)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
