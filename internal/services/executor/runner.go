package executor

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/kt902/dissertation/internal/models"
	"github.com/kt902/dissertation/internal/services/transform"
	"github.com/kt902/dissertation/pkg/errors"
	"github.com/kt902/dissertation/pkg/ffmpeg"
)

// ClipRunner materializes one augmented clip: it opens the pre-clipped
// source video for the entry's original narration_id, streams its frames
// through the entry's transform in order, and re-encodes the survivors
// under the new segment_id at the source frame rate.
type ClipRunner struct {
	ffmpeg        *ffmpeg.FFmpeg
	originalsRoot string
	outputRoot    string
	opts          transform.Options
}

// NewClipRunner creates a runner. originalsRoot holds the pre-clipped
// source videos (one per original narration_id); outputRoot receives the
// augmented clips.
func NewClipRunner(ff *ffmpeg.FFmpeg, originalsRoot, outputRoot string, opts transform.Options) *ClipRunner {
	return &ClipRunner{
		ffmpeg:        ff,
		originalsRoot: originalsRoot,
		outputRoot:    outputRoot,
		opts:          opts,
	}
}

// SourcePath returns where the entry's original clip must already exist
func (r *ClipRunner) SourcePath(entry *models.PlanEntry) string {
	return filepath.Join(r.originalsRoot, entry.NarrationID+".mp4")
}

// OutputPath returns where the augmented clip is written
func (r *ClipRunner) OutputPath(entry *models.PlanEntry) string {
	return filepath.Join(r.outputRoot, entry.SegmentID+".mp4")
}

// Process implements Runner
func (r *ClipRunner) Process(ctx context.Context, entry *models.PlanEntry) error {
	src := r.SourcePath(entry)
	if _, err := os.Stat(src); err != nil {
		return errors.SourceUnavailable(entry.NarrationID, err)
	}

	tr, err := transform.ForEntry(entry, r.opts)
	if err != nil {
		return err
	}

	meta, err := r.ffmpeg.ProbeVideo(ctx, src)
	if err != nil {
		return err
	}

	reader, err := r.ffmpeg.ReadFrames(ctx, src, meta)
	if err != nil {
		return err
	}
	defer reader.Close()

	writer, err := r.ffmpeg.WriteFrames(ctx, r.OutputPath(entry), meta.Width, meta.Height, meta.FrameRateRaw)
	if err != nil {
		return err
	}

	// Frame numbers continue from the segment's position in the source
	// video, since annotation lookups are keyed by source frame number.
	index := 0
	for {
		pix, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			writer.Abort()
			return err
		}

		index++
		frame := &transform.Frame{Pix: pix, Width: meta.Width, Height: meta.Height}
		out, err := tr.Apply(frame, transform.Position{
			Index:    index,
			FrameNum: entry.StartFrame + index - 1,
		})
		if err != nil {
			writer.Abort()
			return err
		}
		if out == nil {
			continue
		}

		if err := writer.Write(out.Pix); err != nil {
			writer.Abort()
			return err
		}
	}

	return writer.Close()
}
