package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrameCountToTimestamp(t *testing.T) {
	tests := []struct {
		name       string
		frameCount int
		fps        float64
		want       string
	}{
		{"zero frames", 0, 60, "00:00:00.000"},
		{"half a second", 30, 60, "00:00:00.500"},
		{"whole seconds", 180, 60, "00:00:03.000"},
		{"minute boundary", 3600, 60, "00:01:00.000"},
		{"hour boundary", 216000, 60, "01:00:00.000"},
		{"truncated milliseconds", 100, 60, "00:00:01.666"},
		{"thirty fps", 90, 30, "00:00:03.000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FrameCountToTimestamp(tt.frameCount, tt.fps))
		})
	}
}
