package transform

import (
	"fmt"

	"github.com/kt902/dissertation/internal/models"
)

// Options carries the experiment parameters transforms are built from
type Options struct {
	Gamma       float64
	Annotations AnnotationLookup
	RefWidth    int
	RefHeight   int
}

// ForEntry builds the transform a plan entry names. Negative entries have
// no frame work and are rejected here; the executor settles them without
// touching video.
func ForEntry(entry *models.PlanEntry, opts Options) (Transform, error) {
	switch entry.Type {
	case models.AugmentDarken:
		return NewDarken(opts.Gamma), nil
	case models.AugmentCompleteness:
		return &Truncate{MaxFrames: entry.Params.FrameCount}, nil
	case models.AugmentOcclusion:
		return &Occlude{
			VideoID:     entry.VideoID,
			Annotations: opts.Annotations,
			RefWidth:    opts.RefWidth,
			RefHeight:   opts.RefHeight,
		}, nil
	case models.AugmentNegative:
		return nil, fmt.Errorf("negative entries carry no frame transform")
	default:
		return nil, fmt.Errorf("unknown augment_type %q", entry.Type)
	}
}
