package transform

import (
	"github.com/fogleman/gg"

	"github.com/kt902/dissertation/internal/services/annotations"
)

// AnnotationLookup resolves a video's annotation index. Satisfied by
// *annotations.Cache; the cache is owned by the caller and injected here.
type AnnotationLookup interface {
	Get(videoID string) (*annotations.Index, error)
}

// Occlude masks annotated objects: for the nearest annotated frame, every
// polygon segment is reduced to its minimum-area bounding rectangle and
// filled solid black. Multiple polygons mask cumulatively on the same
// frame.
type Occlude struct {
	VideoID     string
	Annotations AnnotationLookup

	// RefWidth and RefHeight are the resolution the annotation polygons
	// were drawn against; coordinates are scaled when the frame differs.
	RefWidth  int
	RefHeight int
}

// Apply masks a copy of the frame using the annotations nearest to its
// source frame number.
func (o *Occlude) Apply(frame *Frame, pos Position) (*Frame, error) {
	index, err := o.Annotations.Get(o.VideoID)
	if err != nil {
		return nil, err
	}
	nearest, err := index.Nearest(pos.FrameNum)
	if err != nil {
		return nil, err
	}

	out := frame.Clone()
	dc := gg.NewContextForRGBA(out.RGBA())
	dc.SetRGB(0, 0, 0)

	scaleX := 1.0
	scaleY := 1.0
	if frame.Width != o.RefWidth || frame.Height != o.RefHeight {
		scaleX = float64(frame.Width) / float64(o.RefWidth)
		scaleY = float64(frame.Height) / float64(o.RefHeight)
	}

	for _, object := range nearest.Objects {
		for _, segment := range object.Segments {
			points := make([]Point, 0, len(segment))
			for _, coord := range segment {
				if len(coord) < 2 {
					continue
				}
				points = append(points, Point{X: coord[0] * scaleX, Y: coord[1] * scaleY})
			}
			if len(points) == 0 {
				continue
			}

			box := MinAreaRect(points)
			dc.MoveTo(box[0].X, box[0].Y)
			for _, corner := range box[1:] {
				dc.LineTo(corner.X, corner.Y)
			}
			dc.ClosePath()
			dc.Fill()
		}
	}

	return out, nil
}
