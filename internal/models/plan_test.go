package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAugmentType(t *testing.T) {
	for _, valid := range []string{"darken", "completeness", "occlusion", "negative"} {
		parsed, err := ParseAugmentType(valid)
		require.NoError(t, err)
		assert.Equal(t, AugmentType(valid), parsed)
	}

	_, err := ParseAugmentType("blur")
	assert.Error(t, err)
}

func TestAugmentParamsValidateFor(t *testing.T) {
	tests := []struct {
		name    string
		kind    AugmentType
		params  AugmentParams
		wantErr bool
	}{
		{"darken takes no params", AugmentDarken, AugmentParams{}, false},
		{"darken rejects frame count", AugmentDarken, AugmentParams{FrameCount: 10}, true},
		{"occlusion takes no params", AugmentOcclusion, AugmentParams{}, false},
		{"completeness requires frame count", AugmentCompleteness, AugmentParams{}, true},
		{"completeness with frame count", AugmentCompleteness, AugmentParams{FrameCount: 100}, false},
		{"completeness rejects donor", AugmentCompleteness, AugmentParams{FrameCount: 100, NegativeNarrationID: "P02_02_3"}, true},
		{"negative requires donor", AugmentNegative, AugmentParams{}, true},
		{"negative with donor", AugmentNegative, AugmentParams{NegativeNarrationID: "P02_02_3"}, false},
		{"negative rejects frame count", AugmentNegative, AugmentParams{FrameCount: 5, NegativeNarrationID: "P02_02_3"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.ValidateFor(tt.kind)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAugmentParamsEncodeParse(t *testing.T) {
	t.Run("empty params encode as empty object", func(t *testing.T) {
		assert.Equal(t, "{}", AugmentParams{}.Encode())
	})

	t.Run("frame count round trips", func(t *testing.T) {
		encoded := AugmentParams{FrameCount: 150}.Encode()
		assert.Equal(t, `{"frame_count":150}`, encoded)

		parsed, err := ParseAugmentParams(encoded)
		require.NoError(t, err)
		assert.Equal(t, 150, parsed.FrameCount)
	})

	t.Run("donor id round trips", func(t *testing.T) {
		parsed, err := ParseAugmentParams(`{"negative_narration_id":"P22_05_17"}`)
		require.NoError(t, err)
		assert.Equal(t, "P22_05_17", parsed.NegativeNarrationID)
	})

	t.Run("unknown fields are rejected", func(t *testing.T) {
		_, err := ParseAugmentParams(`{"level":0.5}`)
		assert.Error(t, err)
	})

	t.Run("blank column means no params", func(t *testing.T) {
		parsed, err := ParseAugmentParams("")
		require.NoError(t, err)
		assert.Equal(t, AugmentParams{}, parsed)
	})
}

func TestPlanEntryValidate(t *testing.T) {
	entry := &PlanEntry{
		SegmentID:     "P01_101_0",
		NarrationID:   "P01_101",
		ParticipantID: "P01",
		VideoID:       "P01_01",
		StartFrame:    100,
		StopFrame:     400,
		Narration:     "open fridge",
		Type:          AugmentDarken,
	}
	require.NoError(t, entry.Validate())

	entry.Params.FrameCount = 3
	assert.Error(t, entry.Validate())
}

func TestProgressStatus(t *testing.T) {
	completed := &ProgressRecord{Status: StatusCompleted}
	assert.True(t, completed.Completed())

	failed := &ProgressRecord{Status: ErrorStatus(errors.New("decode blew up"))}
	assert.False(t, failed.Completed())
	assert.Equal(t, "error: decode blew up", failed.Status)
}
