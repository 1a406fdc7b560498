package annotations

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/kt902/dissertation/pkg/errors"
)

// ObjectAnnotation is one annotated object in a frame: its noun class and
// the polygon segments outlining it. Polygon points are [x, y] pairs in the
// reference resolution.
type ObjectAnnotation struct {
	ClassID  int           `json:"class_id"`
	Segments [][][]float64 `json:"segments"`
}

// FrameAnnotation holds all object annotations for a single frame
type FrameAnnotation struct {
	FrameID int
	Objects []ObjectAnnotation
}

type annotationFile struct {
	VideoAnnotations []struct {
		Image struct {
			Name string `json:"name"`
		} `json:"image"`
		Annotations []ObjectAnnotation `json:"annotations"`
	} `json:"video_annotations"`
}

// Index answers nearest-frame annotation lookups for one video. Annotated
// frames are a sparse, irregular subset of the video's frames, so lookups
// binary-search a sorted key slice.
type Index struct {
	frameIDs []int
	byFrame  map[int]*FrameAnnotation
}

// Len returns the number of annotated frames
func (ix *Index) Len() int {
	return len(ix.frameIDs)
}

// Nearest returns the annotation for the frame numerically closest to
// frameID. Exact matches win; before the first key the first annotation is
// returned, past the last key the last; equidistant lookups resolve to the
// predecessor.
func (ix *Index) Nearest(frameID int) (*FrameAnnotation, error) {
	if len(ix.frameIDs) == 0 {
		return nil, fmt.Errorf("annotation index is empty")
	}

	if ann, ok := ix.byFrame[frameID]; ok {
		return ann, nil
	}

	pos := sort.SearchInts(ix.frameIDs, frameID)
	switch {
	case pos == 0:
		return ix.byFrame[ix.frameIDs[0]], nil
	case pos == len(ix.frameIDs):
		return ix.byFrame[ix.frameIDs[len(ix.frameIDs)-1]], nil
	}

	prev := ix.frameIDs[pos-1]
	next := ix.frameIDs[pos]
	if frameID-prev <= next-frameID {
		return ix.byFrame[prev], nil
	}
	return ix.byFrame[next], nil
}

// extractFrameID parses the frame number out of an annotated image name,
// e.g. "P01_01_frame_0000093349.jpg" -> 93349.
func extractFrameID(imageName string) (int, error) {
	idx := strings.LastIndex(imageName, "_")
	if idx < 0 || idx == len(imageName)-1 {
		return 0, fmt.Errorf("image name %q has no frame suffix", imageName)
	}
	raw := strings.TrimSuffix(imageName[idx+1:], ".jpg")
	frameID, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("image name %q: %w", imageName, err)
	}
	return frameID, nil
}

// Store locates and loads per-video annotation files from a root directory
// laid out as <root>/<video_id>.json.
type Store struct {
	root string
}

// NewStore creates a Store rooted at the annotations directory
func NewStore(root string) *Store {
	return &Store{root: root}
}

// Path returns the annotation file path for a video
func (s *Store) Path(videoID string) string {
	return filepath.Join(s.root, videoID+".json")
}

// Exists reports whether an annotation file is present for the video
func (s *Store) Exists(videoID string) bool {
	_, err := os.Stat(s.Path(videoID))
	return err == nil
}

// Load parses a video's annotation file into a frame-ordered Index
func (s *Store) Load(videoID string) (*Index, error) {
	data, err := os.ReadFile(s.Path(videoID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.AnnotationNotFound(videoID)
		}
		return nil, fmt.Errorf("reading annotations for %s: %w", videoID, err)
	}

	var file annotationFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing annotations for %s: %w", videoID, err)
	}

	ix := &Index{byFrame: make(map[int]*FrameAnnotation, len(file.VideoAnnotations))}
	for _, frame := range file.VideoAnnotations {
		frameID, err := extractFrameID(frame.Image.Name)
		if err != nil {
			return nil, fmt.Errorf("annotations for %s: %w", videoID, err)
		}
		if _, seen := ix.byFrame[frameID]; !seen {
			ix.frameIDs = append(ix.frameIDs, frameID)
		}
		ix.byFrame[frameID] = &FrameAnnotation{FrameID: frameID, Objects: frame.Annotations}
	}
	sort.Ints(ix.frameIDs)

	return ix, nil
}
