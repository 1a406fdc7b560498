package models

import "fmt"

// ZeroTimestamp is the re-based start timestamp for materialized clips
const ZeroTimestamp = "00:00:00.000"

// FrameCountToTimestamp renders a frame count as an HH:MM:SS.mmm timestamp
// at the given frame rate.
func FrameCountToTimestamp(frameCount int, fps float64) string {
	totalSeconds := float64(frameCount) / fps

	whole := int(totalSeconds)
	hours := whole / 3600
	minutes := (whole % 3600) / 60
	seconds := whole % 60
	milliseconds := int((totalSeconds - float64(whole)) * 1000)

	return fmt.Sprintf("%02d:%02d:%02d.%03d", hours, minutes, seconds, milliseconds)
}
