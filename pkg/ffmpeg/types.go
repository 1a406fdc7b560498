package ffmpeg

// VideoMetadata represents metadata extracted from a video file
type VideoMetadata struct {
	Width        int     `json:"width"`          // Frame width in pixels
	Height       int     `json:"height"`         // Frame height in pixels
	FrameRate    float64 `json:"frame_rate"`     // Average frame rate
	FrameRateRaw string  `json:"frame_rate_raw"` // Frame rate as the ffprobe fraction, e.g. "60000/1001"
	Duration     float64 `json:"duration"`       // Duration in seconds
	FrameCount   int     `json:"frame_count"`    // Declared frame count, 0 if unknown
	Codec        string  `json:"codec"`          // Video codec
	Format       string  `json:"format"`         // Container format
	Size         int64   `json:"size"`           // File size in bytes
}

// bytesPerPixel for the packed RGBA transport format used on the pipes
const bytesPerPixel = 4

// FrameSize returns the byte length of one raw RGBA frame
func (m *VideoMetadata) FrameSize() int {
	return m.Width * m.Height * bytesPerPixel
}
