package models

import (
	"fmt"
	"strconv"
)

// SegmentRecord is one row of the EPIC-KITCHENS style annotation table:
// a labeled temporal span of a source video plus its five human-judged
// quality dimensions.
type SegmentRecord struct {
	NarrationID        string
	ParticipantID      string
	VideoID            string
	NarrationTimestamp string
	StartTimestamp     string
	StopTimestamp      string
	StartFrame         int
	StopFrame          int
	Narration          string
	VerbClass          int
	NounClass          int
	ActionPresence     int
	CameraMotion       int
	Lighting           int
	Focus              int
	ActionCompleteness int
	ObjectPresence     int

	// QualityScore is computed when the quality table is emitted; it is not
	// part of the source annotation table.
	QualityScore float64

	// NegativeNarrationID records the donor identity of a negative sample.
	// It is a working field and never reaches the quality table.
	NegativeNarrationID string
}

// FrameCount returns the number of frames the segment spans
func (r *SegmentRecord) FrameCount() int {
	return r.StopFrame - r.StartFrame
}

// Validate checks the invariants the rest of the pipeline relies on
func (r *SegmentRecord) Validate() error {
	if r.NarrationID == "" {
		return fmt.Errorf("segment has empty narration_id")
	}
	if r.StopFrame <= r.StartFrame {
		return fmt.Errorf("segment %s: stop_frame %d <= start_frame %d", r.NarrationID, r.StopFrame, r.StartFrame)
	}
	if r.ActionPresence != 0 && r.ActionPresence != 1 {
		return fmt.Errorf("segment %s: action_presence must be 0 or 1, got %d", r.NarrationID, r.ActionPresence)
	}
	return nil
}

// segmentColumns is the source annotation table column order
var segmentColumns = []string{
	"narration_id",
	"participant_id",
	"video_id",
	"narration_timestamp",
	"start_timestamp",
	"stop_timestamp",
	"start_frame",
	"stop_frame",
	"narration",
	"verb_class",
	"noun_class",
	"action_presence",
	"camera_motion",
	"lighting",
	"focus",
	"action_completeness",
	"object_presence",
}

// QualityColumns is the quality table header: the source columns plus the
// computed quality score.
func QualityColumns() []string {
	return append(append([]string{}, segmentColumns...), "quality_score")
}

// SegmentColumns returns the source annotation table header
func SegmentColumns() []string {
	return append([]string{}, segmentColumns...)
}

// segmentFromFields builds a SegmentRecord from a header-indexed row
func segmentFromFields(get func(column string) (string, bool)) (*SegmentRecord, error) {
	rec := &SegmentRecord{}

	str := func(column string, dst *string) error {
		v, ok := get(column)
		if !ok {
			return fmt.Errorf("missing column %q", column)
		}
		*dst = v
		return nil
	}
	num := func(column string, dst *int) error {
		v, ok := get(column)
		if !ok {
			return fmt.Errorf("missing column %q", column)
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("column %q: %w", column, err)
		}
		*dst = n
		return nil
	}

	for _, step := range []error{
		str("narration_id", &rec.NarrationID),
		str("participant_id", &rec.ParticipantID),
		str("video_id", &rec.VideoID),
		str("narration_timestamp", &rec.NarrationTimestamp),
		str("start_timestamp", &rec.StartTimestamp),
		str("stop_timestamp", &rec.StopTimestamp),
		num("start_frame", &rec.StartFrame),
		num("stop_frame", &rec.StopFrame),
		str("narration", &rec.Narration),
		num("verb_class", &rec.VerbClass),
		num("noun_class", &rec.NounClass),
		num("action_presence", &rec.ActionPresence),
		num("camera_motion", &rec.CameraMotion),
		num("lighting", &rec.Lighting),
		num("focus", &rec.Focus),
		num("action_completeness", &rec.ActionCompleteness),
		num("object_presence", &rec.ObjectPresence),
	} {
		if step != nil {
			return nil, step
		}
	}

	return rec, nil
}

// fields renders the record in segmentColumns order
func (r *SegmentRecord) fields() []string {
	return []string{
		r.NarrationID,
		r.ParticipantID,
		r.VideoID,
		r.NarrationTimestamp,
		r.StartTimestamp,
		r.StopTimestamp,
		strconv.Itoa(r.StartFrame),
		strconv.Itoa(r.StopFrame),
		r.Narration,
		strconv.Itoa(r.VerbClass),
		strconv.Itoa(r.NounClass),
		strconv.Itoa(r.ActionPresence),
		strconv.Itoa(r.CameraMotion),
		strconv.Itoa(r.Lighting),
		strconv.Itoa(r.Focus),
		strconv.Itoa(r.ActionCompleteness),
		strconv.Itoa(r.ObjectPresence),
	}
}

// qualityFields renders the record as a quality table row
func (r *SegmentRecord) qualityFields() []string {
	return append(r.fields(), strconv.FormatFloat(r.QualityScore, 'g', -1, 64))
}
