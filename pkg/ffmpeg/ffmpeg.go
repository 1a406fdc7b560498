// Package ffmpeg wraps the ffmpeg and ffprobe binaries for video work:
// metadata probing, streaming raw-frame decode, and H.264 encode from a
// raw-frame pipe.
package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// FFmpeg wraps ffmpeg and ffprobe functionality
type FFmpeg struct {
	ffmpegPath  string
	ffprobePath string
	timeout     time.Duration
}

// New creates a new FFmpeg instance
func New(ffmpegPath, ffprobePath string, timeout time.Duration) *FFmpeg {
	return &FFmpeg{
		ffmpegPath:  ffmpegPath,
		ffprobePath: ffprobePath,
		timeout:     timeout,
	}
}

// ValidateBinaries checks if ffmpeg and ffprobe are available
func (f *FFmpeg) ValidateBinaries() error {
	if _, err := exec.LookPath(f.ffmpegPath); err != nil {
		return fmt.Errorf("%w: %s", ErrFFmpegNotFound, f.ffmpegPath)
	}
	if _, err := exec.LookPath(f.ffprobePath); err != nil {
		return fmt.Errorf("%w: %s", ErrFFprobeNotFound, f.ffprobePath)
	}
	return nil
}

// FrameReader streams decoded RGBA frames from an ffmpeg process
type FrameReader struct {
	cmd      *exec.Cmd
	stdout   io.ReadCloser
	stderr   bytes.Buffer
	path     string
	frameLen int
	done     bool
}

// ReadFrames starts a decode of the whole clip into a stream of raw RGBA
// frames. Frames are delivered strictly in presentation order. The caller
// must Close the reader.
func (f *FFmpeg) ReadFrames(ctx context.Context, path string, meta *VideoMetadata) (*FrameReader, error) {
	args := []string{
		"-v", "error",
		"-i", path,
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
		"pipe:1",
	}

	cmd := exec.CommandContext(ctx, f.ffmpegPath, args...)
	reader := &FrameReader{cmd: cmd, path: path, frameLen: meta.FrameSize()}
	cmd.Stderr = &reader.stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, NewProcessingError("decode", path, err, "")
	}
	reader.stdout = stdout

	if err := cmd.Start(); err != nil {
		return nil, NewProcessingError("decode", path, err, "")
	}

	return reader, nil
}

// Read returns the next frame's raw RGBA bytes, or io.EOF after the last
// frame. The returned slice is freshly allocated per frame.
func (r *FrameReader) Read() ([]byte, error) {
	if r.done {
		return nil, io.EOF
	}

	buf := make([]byte, r.frameLen)
	_, err := io.ReadFull(r.stdout, buf)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		r.done = true
		if waitErr := r.cmd.Wait(); waitErr != nil {
			return nil, NewProcessingError("decode", r.path, waitErr, r.stderr.String())
		}
		return nil, io.EOF
	}
	if err != nil {
		return nil, NewProcessingError("decode", r.path, err, r.stderr.String())
	}
	return buf, nil
}

// Close releases the decoder process
func (r *FrameReader) Close() error {
	if r.done {
		return nil
	}
	r.done = true
	r.stdout.Close()
	_ = r.cmd.Process.Kill()
	_ = r.cmd.Wait()
	return nil
}

// FrameWriter streams raw RGBA frames into an H.264 encode
type FrameWriter struct {
	cmd       *exec.Cmd
	stdin     io.WriteCloser
	stderr    bytes.Buffer
	path      string
	scratch   string
	frameLen  int
	frames    int
	finalized bool
}

// WriteFrames starts an H.264 encode consuming raw RGBA frames. The output
// lands at path only when Close succeeds; until then the encode targets a
// scratch file in the same directory, so a crashed unit never leaves a
// half-written clip under the final name.
func (f *FFmpeg) WriteFrames(ctx context.Context, path string, width, height int, frameRate string) (*FrameWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, NewProcessingError("encode", path, err, "")
	}

	scratch := filepath.Join(filepath.Dir(path), fmt.Sprintf(".%s.%s.mp4", filepath.Base(path), uuid.NewString()))

	args := []string{
		"-v", "error",
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
		"-s", fmt.Sprintf("%dx%d", width, height),
		"-r", frameRate,
		"-i", "pipe:0",
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		"-r", frameRate,
		"-y",
		scratch,
	}

	cmd := exec.CommandContext(ctx, f.ffmpegPath, args...)
	writer := &FrameWriter{
		cmd:      cmd,
		path:     path,
		scratch:  scratch,
		frameLen: width * height * bytesPerPixel,
	}
	cmd.Stderr = &writer.stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, NewProcessingError("encode", path, err, "")
	}
	writer.stdin = stdin

	if err := cmd.Start(); err != nil {
		return nil, NewProcessingError("encode", path, err, "")
	}

	return writer, nil
}

// Write feeds one raw RGBA frame to the encoder
func (w *FrameWriter) Write(frame []byte) error {
	if len(frame) != w.frameLen {
		return NewProcessingError("encode", w.path,
			fmt.Errorf("frame is %d bytes, expected %d", len(frame), w.frameLen), "")
	}
	if _, err := w.stdin.Write(frame); err != nil {
		return NewProcessingError("encode", w.path, err, w.stderr.String())
	}
	w.frames++
	return nil
}

// FrameCount returns the number of frames written so far
func (w *FrameWriter) FrameCount() int {
	return w.frames
}

// Close finishes the encode and moves the clip into place
func (w *FrameWriter) Close() error {
	if w.finalized {
		return nil
	}
	w.finalized = true

	w.stdin.Close()
	if err := w.cmd.Wait(); err != nil {
		os.Remove(w.scratch)
		return NewProcessingError("encode", w.path, err, w.stderr.String())
	}
	if w.frames == 0 {
		os.Remove(w.scratch)
		return NewProcessingError("encode", w.path, fmt.Errorf("no frames written"), "")
	}
	if err := os.Rename(w.scratch, w.path); err != nil {
		os.Remove(w.scratch)
		return NewProcessingError("encode", w.path, err, "")
	}
	return nil
}

// Abort discards the encode and any scratch output
func (w *FrameWriter) Abort() {
	if w.finalized {
		return
	}
	w.finalized = true

	w.stdin.Close()
	_ = w.cmd.Process.Kill()
	_ = w.cmd.Wait()
	os.Remove(w.scratch)
}
