package ffmpeg

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// ffprobeOutput represents the JSON structure returned by ffprobe
type ffprobeOutput struct {
	Format struct {
		Duration   string `json:"duration"`
		Size       string `json:"size"`
		FormatName string `json:"format_name"`
	} `json:"format"`
	Streams []struct {
		CodecType    string `json:"codec_type"`
		CodecName    string `json:"codec_name"`
		Width        int    `json:"width"`
		Height       int    `json:"height"`
		AvgFrameRate string `json:"avg_frame_rate"`
		NbFrames     string `json:"nb_frames"`
	} `json:"streams"`
}

// ProbeVideo extracts metadata from a video file using ffprobe
func (f *FFmpeg) ProbeVideo(ctx context.Context, path string) (*VideoMetadata, error) {
	args := []string{
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	}

	cmd := exec.CommandContext(ctx, f.ffprobePath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	output, err := cmd.Output()
	if err != nil {
		return nil, NewProcessingError("probe", path, err, stderr.String())
	}

	var probe ffprobeOutput
	if err := json.Unmarshal(output, &probe); err != nil {
		return nil, NewProcessingError("probe", path, fmt.Errorf("parsing ffprobe output: %w", err), "")
	}

	meta := &VideoMetadata{Format: probe.Format.FormatName}
	if probe.Format.Duration != "" {
		meta.Duration, _ = strconv.ParseFloat(probe.Format.Duration, 64)
	}
	if probe.Format.Size != "" {
		meta.Size, _ = strconv.ParseInt(probe.Format.Size, 10, 64)
	}

	for _, stream := range probe.Streams {
		if stream.CodecType != "video" {
			continue
		}
		meta.Width = stream.Width
		meta.Height = stream.Height
		meta.Codec = stream.CodecName
		meta.FrameRateRaw = stream.AvgFrameRate
		meta.FrameRate = parseFrameRate(stream.AvgFrameRate)
		if stream.NbFrames != "" {
			meta.FrameCount, _ = strconv.Atoi(stream.NbFrames)
		}
		break
	}

	if meta.Width <= 0 || meta.Height <= 0 {
		return nil, NewProcessingError("probe", path, ErrNoVideoStream, "")
	}
	if meta.FrameRate <= 0 {
		return nil, NewProcessingError("probe", path,
			fmt.Errorf("%w: unusable frame rate %q", ErrInvalidVideoFile, meta.FrameRateRaw), "")
	}

	return meta, nil
}

// parseFrameRate converts an ffprobe rate fraction like "60000/1001" (or a
// plain number) to a float. Returns 0 when the rate is missing or "0/0".
func parseFrameRate(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}

	if num, den, found := strings.Cut(raw, "/"); found {
		n, err1 := strconv.ParseFloat(num, 64)
		d, err2 := strconv.ParseFloat(den, 64)
		if err1 != nil || err2 != nil || d == 0 {
			return 0
		}
		return n / d
	}

	rate, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return rate
}
