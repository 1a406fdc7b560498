package models

// Quality dimension bounds: each dimension is an ordinal judgment in 1..5,
// so the harmonic mean over them lives in the same range.
const (
	harmonicMeanMin = 1.0
	harmonicMeanMax = 5.0
	dimensionCount  = 5
)

// ComputeQualityScore derives the normalized [0,1] quality score for a
// segment. A segment whose action is absent scores exactly 0. Otherwise the
// score is the harmonic mean over the nonzero quality dimensions (zero-valued
// dimensions are excluded, not counted as zero), shifted and scaled so that
// all-1s maps to 0 and all-5s maps to 1.
func ComputeQualityScore(r *SegmentRecord) float64 {
	if r.ActionPresence == 0 {
		return 0
	}

	dimensions := [dimensionCount]int{
		r.CameraMotion,
		r.Lighting,
		r.Focus,
		r.ActionCompleteness,
		r.ObjectPresence,
	}

	sumOfInverses := 0.0
	for _, dim := range dimensions {
		if dim != 0 {
			sumOfInverses += 1.0 / float64(dim)
		}
	}
	if sumOfInverses == 0 {
		return 0
	}

	harmonicMean := dimensionCount / sumOfInverses
	return (harmonicMean - harmonicMeanMin) / (harmonicMeanMax - harmonicMeanMin)
}
