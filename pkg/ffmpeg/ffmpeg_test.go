package ffmpeg

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	ffmpeg := New("ffmpeg", "ffprobe", 30*time.Second)
	if ffmpeg.ffmpegPath != "ffmpeg" {
		t.Errorf("Expected ffmpegPath to be 'ffmpeg', got %s", ffmpeg.ffmpegPath)
	}
	if ffmpeg.ffprobePath != "ffprobe" {
		t.Errorf("Expected ffprobePath to be 'ffprobe', got %s", ffmpeg.ffprobePath)
	}
	if ffmpeg.timeout != 30*time.Second {
		t.Errorf("Expected timeout to be 30s, got %v", ffmpeg.timeout)
	}
}

func TestParseFrameRate(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{"60/1", 60},
		{"30000/1001", 30000.0 / 1001.0},
		{"60000/1001", 60000.0 / 1001.0},
		{"25", 25},
		{"23.976", 23.976},
		{"0/0", 0},
		{"", 0},
		{"garbage", 0},
		{"1/0", 0},
		{" 50/1 ", 50},
	}

	for _, test := range tests {
		result := parseFrameRate(test.input)
		if result != test.expected {
			t.Errorf("parseFrameRate(%q) = %v, expected %v", test.input, result, test.expected)
		}
	}
}

func TestFrameSize(t *testing.T) {
	meta := &VideoMetadata{Width: 456, Height: 256}
	if got := meta.FrameSize(); got != 456*256*4 {
		t.Errorf("Expected frame size %d, got %d", 456*256*4, got)
	}
}

func TestProcessingError(t *testing.T) {
	cause := errors.New("exit status 1")

	withStderr := NewProcessingError("decode", "clip.mp4", cause, "moov atom not found")
	msg := withStderr.Error()
	for _, want := range []string{"decode", "clip.mp4", "exit status 1", "moov atom not found"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Expected error message to contain %q, got %q", want, msg)
		}
	}

	if !errors.Is(withStderr, cause) {
		t.Error("Expected ProcessingError to unwrap to its cause")
	}

	withoutStderr := NewProcessingError("probe", "clip.mp4", cause, "")
	if strings.Contains(withoutStderr.Error(), "stderr") {
		t.Errorf("Expected no stderr section, got %q", withoutStderr.Error())
	}
}

// Integration test - only runs if ffmpeg/ffprobe are available
func TestValidateBinaries(t *testing.T) {
	ffmpeg := New("ffmpeg", "ffprobe", 30*time.Second)

	// This test will pass if ffmpeg/ffprobe are installed, skip otherwise
	err := ffmpeg.ValidateBinaries()
	if err != nil {
		t.Skipf("FFmpeg binaries not available: %v", err)
	}
}

func TestValidateBinariesMissing(t *testing.T) {
	ffmpeg := New("definitely-not-ffmpeg-binary", "definitely-not-ffprobe-binary", time.Second)
	err := ffmpeg.ValidateBinaries()
	if err == nil {
		t.Fatal("Expected an error for missing binaries")
	}
	if !errors.Is(err, ErrFFmpegNotFound) {
		t.Errorf("Expected ErrFFmpegNotFound, got %v", err)
	}
}
